// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user account in the Circle application.
//
// FriendCount and PostCount are denormalized projections maintained by the
// counter service; the authoritative values are the friendship and post
// tables. They are overwritten by full recomputes, never incremented.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	AvatarURL string `json:"avatar_url"`
	CoverURL  string `json:"cover_url"`

	AboutMe       string `json:"about_me"`
	City          string `json:"city"`
	Country       string `json:"country"`
	Company       string `json:"company"`
	JobTitle      string `json:"job_title"`
	FacebookLink  string `json:"facebook_link"`
	InstagramLink string `json:"instagram_link"`
	LinkedinLink  string `json:"linkedin_link"`
	TwitterLink   string `json:"twitter_link"`

	FriendCount int `gorm:"not null;default:0" json:"friend_count"`
	PostCount   int `gorm:"not null;default:0" json:"post_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Posts []Post `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// UserWithFriendship is a user annotated with the friendship edge between
// that user and the requesting user, if one exists. Used by the user and
// friend list endpoints.
type UserWithFriendship struct {
	User
	Friendship *Friendship `json:"friendship"`
}

// UserPage is one page of users together with pagination totals.
type UserPage struct {
	Users      []UserWithFriendship `json:"users"`
	TotalPages int                  `json:"total_pages"`
	Count      int64                `json:"count"`
}
