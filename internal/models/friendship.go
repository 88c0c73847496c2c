package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Friend request lifecycle states. A declined or removed pair has no row at
// all, so "none" never appears in the database.
const (
	FriendStatusPending  = "pending"
	FriendStatusAccepted = "accepted"
)

// FriendRequest represents a friend request between two users. One row covers
// the whole lifecycle of the unordered pair: pending after the send, accepted
// after the receiver confirms, deleted on decline, cancel or unfriend.
//
// PairKey is the canonical "low:high" encoding of the two user ids and carries
// a unique index, so concurrent sends for the same pair race at the store and
// exactly one row survives.
type FriendRequest struct {
	gorm.Model
	SenderID   uint   `json:"sender_id" gorm:"index"`
	ReceiverID uint   `json:"receiver_id" gorm:"index"`
	PairKey    string `json:"-" gorm:"type:varchar(50);uniqueIndex"`
	Status     string `json:"status" gorm:"type:varchar(20);default:'pending'"`
}

// PairKey returns the canonical key for the unordered user pair {a, b}.
func PairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// CreateFriendRequest defines the request body for sending a friend request
type CreateFriendRequest struct {
	ReceiverID uint `json:"receiver_id" validate:"required"`
}

// FriendRequestView is a friend request joined with the counterpart's profile.
type FriendRequestView struct {
	FriendRequest
	User UserProfile `json:"user"`
}
