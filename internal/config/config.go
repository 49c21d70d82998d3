package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	DatabaseURL          string  `mapstructure:"DATABASE_URL"`
	JWTSecret            string  `mapstructure:"JWT_SECRET"`
	AccessTokenTTLMin    int     `mapstructure:"ACCESS_TOKEN_TTL_MIN"`
	RefreshTokenTTLHours int     `mapstructure:"REFRESH_TOKEN_TTL_HOURS"`
	FriendRequestRate    float64 `mapstructure:"FRIEND_REQUEST_RATE"`
	FriendRequestBurst   int     `mapstructure:"FRIEND_REQUEST_BURST"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("ACCESS_TOKEN_TTL_MIN", 15)
	viper.SetDefault("REFRESH_TOKEN_TTL_HOURS", 168) // 7 days
	viper.SetDefault("FRIEND_REQUEST_RATE", 1.0)     // requests per second
	viper.SetDefault("FRIEND_REQUEST_BURST", 3)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
