// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a post in the Circle application.
//
// CommentCount and Reactions are denormalized counters recomputed from the
// comments and reactions tables after every mutation that can change them.
// Soft deletion via DeletedAt is what the feed's "not deleted" filter and
// the post-count recompute key off.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	ImageURL string `json:"image_url"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`

	CommentCount int           `gorm:"not null;default:0" json:"comment_count"`
	Reactions    ReactionTally `gorm:"embedded" json:"reactions"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostPage is one page of posts together with pagination totals.
type PostPage struct {
	Posts      []*Post `json:"posts"`
	TotalPages int     `json:"total_pages"`
	Count      int64   `json:"count"`
}
