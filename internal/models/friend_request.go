package models

import "gorm.io/gorm"

// RequestStatus defines the state of a friend request between two users.
type RequestStatus string

const (
	// StatusPending means the request has been sent but not yet answered.
	StatusPending RequestStatus = "pending"

	// StatusAccepted means the recipient accepted and the users are now friends.
	StatusAccepted RequestStatus = "accepted"

	// StatusRejected means the recipient declined the request.
	StatusRejected RequestStatus = "rejected"
)

// FriendRequest represents a friend request from one user to another.
// A request starts pending and moves exactly once to accepted or rejected.
type FriendRequest struct {
	gorm.Model
	FromUserID uint          `gorm:"not null;index:idx_friend_requests_pair"`
	ToUserID   uint          `gorm:"not null;index:idx_friend_requests_pair"`
	Status     RequestStatus `gorm:"type:varchar(20);not null;default:'pending'"`

	// Define foreign key relationships
	FromUser User `gorm:"foreignKey:FromUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ToUser   User `gorm:"foreignKey:ToUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
