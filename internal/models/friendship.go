// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// FriendshipStatus represents the status of a friendship edge.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates a pending friend request.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusAccepted indicates an accepted friendship.
	FriendshipStatusAccepted FriendshipStatus = "accepted"
	// FriendshipStatusDeclined indicates a declined friend request. The row
	// is kept so a later request from either party can reuse it.
	FriendshipStatusDeclined FriendshipStatus = "declined"
)

// Friendship is the single edge between two users. FromUserID is the user
// who initiated the current request and stays fixed after acceptance; a
// re-request after a decline reassigns both endpoints on the same row.
//
// PairKey is the canonicalized unordered pair "lo:hi". Its unique index is
// the storage-level guarantee that at most one edge exists per pair,
// regardless of request direction or concurrent senders.
type Friendship struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	FromUserID uint             `gorm:"not null;index" json:"from_user_id"`
	ToUserID   uint             `gorm:"not null;index" json:"to_user_id"`
	PairKey    string           `gorm:"type:varchar(50);not null;uniqueIndex:idx_friendship_pair" json:"-"`
	Status     FriendshipStatus `gorm:"type:varchar(20);default:'pending';index:idx_friendships_status" json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`

	// Relationships
	FromUser User `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

// BeforeSave keeps PairKey consistent with the endpoints even when a
// transition reassigns them (decline followed by a re-request).
func (f *Friendship) BeforeSave(_ *gorm.DB) error {
	f.PairKey = FriendshipPairKey(f.FromUserID, f.ToUserID)
	return nil
}

// FriendshipPairKey canonicalizes an unordered user id pair into the key
// used for the uniqueness constraint.
func FriendshipPairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// Involves reports whether the user is one of the edge's endpoints.
func (f *Friendship) Involves(userID uint) bool {
	return f.FromUserID == userID || f.ToUserID == userID
}

// OtherUserID returns the endpoint that is not the given user.
func (f *Friendship) OtherUserID(userID uint) uint {
	if f.FromUserID == userID {
		return f.ToUserID
	}
	return f.FromUserID
}
