package main

import (
	"fmt"
	"log"
	"net/http"

	"linkup/backend/internal/auth"
	"linkup/backend/internal/config"
	"linkup/backend/internal/database"
	"linkup/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "linkup/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Linkup API
// @version         1.0
// @description     This is the API for the Linkup social service.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Auth routes
	router.POST("/signup", handler.Signup)
	router.POST("/login", handler.Login)
	router.POST("/token/refresh", handler.RefreshToken)

	// Protected routes
	protected := router.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/search", handler.SearchUsers)
		protected.GET("/friends", handler.ListFriends)

		friendRequests := protected.Group("/friend-requests")
		{
			friendRequests.POST("",
				auth.RateLimitMiddleware(config.AppConfig.FriendRequestRate, config.AppConfig.FriendRequestBurst),
				handler.SendFriendRequest)
			friendRequests.POST("/respond", handler.RespondFriendRequest)
			friendRequests.GET("/pending", handler.ListPendingRequests)
		}
	}

	fmt.Println("Server is running on :8080")
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(":8080"))
}
