package handler

import (
	"errors"
	"net/http"
	"time"

	"linkup/backend/internal/database"
	"linkup/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// SendFriendRequestInput defines the structure for sending a friend request.
type SendFriendRequestInput struct {
	ToUserID uint `json:"to_user_id" binding:"required" example:"2"`
}

// RespondFriendRequestInput defines the structure for answering a friend request.
type RespondFriendRequestInput struct {
	RequestID uint   `json:"request_id" binding:"required" example:"1"`
	Action    string `json:"action" binding:"required,oneof=accept reject" example:"accept"`
}

// FriendRequestResponse is the external representation of a friend request.
type FriendRequestResponse struct {
	ID        uint                 `json:"id" example:"1"`
	FromUser  UserResponse         `json:"from_user"`
	ToUserID  uint                 `json:"to_user_id" example:"2"`
	Status    models.RequestStatus `json:"status" example:"pending"`
	CreatedAt time.Time            `json:"created_at"`
}

// endregion

// region --- Friend Request Handlers ---

// SendFriendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request to another user. Only one pending or accepted request may exist per pair of users.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body SendFriendRequestInput true "Target user"
// @Success      201  {object}  map[string]string "{"message": "Friend request sent"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Request already exists"
// @Failure      429  {object}  ErrorResponse "Rate limited"
// @Failure      500  {object}  ErrorResponse
// @Router       /friend-requests [post]
func SendFriendRequest(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var input SendFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to_user_id is required"})
		return
	}

	if input.ToUserID == viewerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send a friend request to yourself"})
		return
	}

	var target models.User
	if err := database.DB.First(&target, input.ToUserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// At most one pending or accepted request may exist between the pair,
	// regardless of direction.
	var existing models.FriendRequest
	err := database.DB.
		Where("((from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)) AND status IN ?",
			viewerID, input.ToUserID, input.ToUserID, viewerID,
			[]models.RequestStatus{models.StatusPending, models.StatusAccepted}).
		First(&existing).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": "A friend request already exists between these users"})
		return
	}

	request := models.FriendRequest{
		FromUserID: viewerID,
		ToUserID:   input.ToUserID,
		Status:     models.StatusPending,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create friend request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Friend request sent"})
}

// RespondFriendRequest godoc
// @Summary      Respond to a friend request
// @Description  Accepts or rejects a pending friend request. Only the recipient may respond, and a request can be answered exactly once.
// @Tags         friends
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RespondFriendRequestInput true "Request and action"
// @Success      200  {object}  map[string]string "{"message": "Friend request accepted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Caller is not the recipient"
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Failure      409  {object}  ErrorResponse "Request already answered"
// @Failure      500  {object}  ErrorResponse
// @Router       /friend-requests/respond [post]
func RespondFriendRequest(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var input RespondFriendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request_id and an action of 'accept' or 'reject' are required"})
		return
	}

	var request models.FriendRequest
	if err := database.DB.First(&request, input.RequestID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
		return
	}

	if request.ToUserID != viewerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	newStatus := models.StatusAccepted
	if input.Action == "reject" {
		newStatus = models.StatusRejected
	}

	// Conditional update: of two concurrent responses exactly one wins, the
	// other sees zero rows and a terminal state is never overwritten.
	result := database.DB.Model(&models.FriendRequest{}).
		Where("id = ? AND status = ?", request.ID, models.StatusPending).
		Update("status", newStatus)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update friend request"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Friend request has already been answered"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request " + input.Action + "ed"})
}

// ListFriends godoc
// @Summary      List friends
// @Description  Lists the users on the other side of every accepted friend request involving the caller.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friends [get]
func ListFriends(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var accepted []models.FriendRequest
	err := database.DB.
		Where("(from_user_id = ? OR to_user_id = ?) AND status = ?", viewerID, viewerID, models.StatusAccepted).
		Find(&accepted).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	friendIDs := make([]uint, 0, len(accepted))
	for _, r := range accepted {
		if r.FromUserID == viewerID {
			friendIDs = append(friendIDs, r.ToUserID)
		} else {
			friendIDs = append(friendIDs, r.FromUserID)
		}
	}

	if len(friendIDs) == 0 {
		c.JSON(http.StatusOK, []UserResponse{})
		return
	}

	var friends []models.User
	if err := database.DB.Where("id IN ?", friendIDs).Find(&friends).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	c.JSON(http.StatusOK, toUserResponses(friends))
}

// ListPendingRequests godoc
// @Summary      List pending friend requests
// @Description  Lists pending friend requests where the caller is the recipient.
// @Tags         friends
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   FriendRequestResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /friend-requests/pending [get]
func ListPendingRequests(c *gin.Context) {
	viewerID := c.GetUint("userID")

	var requests []models.FriendRequest
	err := database.DB.
		Where("to_user_id = ? AND status = ?", viewerID, models.StatusPending).
		Preload("FromUser").
		Find(&requests).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending requests"})
		return
	}

	responses := make([]FriendRequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = FriendRequestResponse{
			ID:        r.ID,
			FromUser:  toUserResponse(r.FromUser),
			ToUserID:  r.ToUserID,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, responses)
}

// endregion
