package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix    = "user:%d"
	PostKeyPrefix    = "post:%d"
	FriendsKeyPrefix = "user:%d:friends"
	FeedKeyPrefix    = "user:%d:feed:%d:%d"
)

const (
	UserTTL    = 5 * time.Minute
	PostTTL    = 30 * time.Minute
	FriendsTTL = 2 * time.Minute
	FeedTTL    = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func FriendsKey(userID uint) string {
	return fmt.Sprintf(FriendsKeyPrefix, userID)
}

func FeedKey(userID uint, page, limit int) string {
	return fmt.Sprintf(FeedKeyPrefix, userID, page, limit)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, FriendsKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

// InvalidateFeed drops all cached feed pages for a user. Feed keys embed
// page and limit, so a pattern scan is required.
func InvalidateFeed(ctx context.Context, userID uint) {
	if client == nil {
		return
	}
	pattern := fmt.Sprintf("user:%d:feed:*", userID)
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}
