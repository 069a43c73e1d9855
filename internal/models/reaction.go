// Package models contains data structures for the application's domain models.
package models

import "time"

// ReactionTargetKind names the entity kind a reaction points at. The set is
// closed: dispatch happens through an explicit lookup table, not reflection.
type ReactionTargetKind string

const (
	// ReactionTargetPost marks a reaction on a post.
	ReactionTargetPost ReactionTargetKind = "Post"
	// ReactionTargetComment marks a reaction on a comment.
	ReactionTargetComment ReactionTargetKind = "Comment"
)

// Valid reports whether the kind is one of the known target kinds.
func (k ReactionTargetKind) Valid() bool {
	return k == ReactionTargetPost || k == ReactionTargetComment
}

// ReactionEmoji is the vote a reaction carries.
type ReactionEmoji string

const (
	// ReactionEmojiLike is an upvote.
	ReactionEmojiLike ReactionEmoji = "like"
	// ReactionEmojiDislike is a downvote.
	ReactionEmojiDislike ReactionEmoji = "dislike"
)

// Valid reports whether the emoji is one of the known kinds.
func (e ReactionEmoji) Valid() bool {
	return e == ReactionEmojiLike || e == ReactionEmojiDislike
}

// Reaction is one user's vote on one target. The unique index over
// (target_type, target_id, author_id) enforces at most one reaction per
// author per target; creation is guarded by it rather than find-then-create.
// Rows are hard-deleted on toggle-off so the index can be reused.
type Reaction struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	TargetType ReactionTargetKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_reaction_target_author" json:"target_type"`
	TargetID   uint               `gorm:"not null;uniqueIndex:idx_reaction_target_author" json:"target_id"`
	AuthorID   uint               `gorm:"not null;uniqueIndex:idx_reaction_target_author" json:"author_id"`
	Emoji      ReactionEmoji      `gorm:"type:varchar(20);not null" json:"emoji"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// ReactionTally is the denormalized like/dislike aggregate stored on the
// reacted-to entity and returned by the reaction endpoint.
type ReactionTally struct {
	Like    int `gorm:"column:like_count;not null;default:0" json:"like"`
	Dislike int `gorm:"column:dislike_count;not null;default:0" json:"dislike"`
}
