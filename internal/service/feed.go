package service

import (
	"context"

	"circle/internal/cache"
	"circle/internal/featureflags"
	"circle/internal/models"
	"circle/internal/repository"
)

// cachedFeedFlag gates the feed page cache per feed owner.
const cachedFeedFlag = "cached_feed"

// FeedService resolves which posts are visible on a user's feed.
//
// Visibility is keyed off the feed owner's graph: the feed shows the
// owner's own posts plus posts by the owner's accepted friends. Pending
// and declined edges grant nothing, and soft-deleted posts never appear.
type FeedService struct {
	userRepo   repository.UserRepository
	friendRepo repository.FriendRepository
	postRepo   repository.PostRepository
	flags      *featureflags.Manager
}

// NewFeedService returns a new FeedService.
func NewFeedService(userRepo repository.UserRepository, friendRepo repository.FriendRepository, postRepo repository.PostRepository, flags *featureflags.Manager) *FeedService {
	return &FeedService{
		userRepo:   userRepo,
		friendRepo: friendRepo,
		postRepo:   postRepo,
		flags:      flags,
	}
}

// GetFeed returns one page of the feed for the given user, newest first.
//
// When the cached_feed flag is on for the feed owner, pages go through a
// short-TTL cache; mutations invalidate the owner's own pages and the TTL
// bounds staleness from friends' activity.
func (s *FeedService) GetFeed(ctx context.Context, userID uint, page, limit int) (*models.PostPage, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	limit, offset := normalizePage(page, limit)

	if !s.flags.Enabled(cachedFeedFlag, userID) {
		return s.buildFeedPage(ctx, userID, limit, offset)
	}

	feedPage := &models.PostPage{}
	err := cache.CacheAside(ctx, cache.FeedKey(userID, offset/limit+1, limit), feedPage, cache.FeedTTL, func() error {
		built, err := s.buildFeedPage(ctx, userID, limit, offset)
		if err != nil {
			return err
		}
		*feedPage = *built
		return nil
	})
	if err != nil {
		return nil, err
	}
	return feedPage, nil
}

func (s *FeedService) buildFeedPage(ctx context.Context, userID uint, limit, offset int) (*models.PostPage, error) {
	authorIDs, err := s.friendRepo.AcceptedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, userID)

	count, err := s.postRepo.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, limit, offset)
	if err != nil {
		return nil, err
	}

	return &models.PostPage{
		Posts:      posts,
		TotalPages: totalPages(count, limit),
		Count:      count,
	}, nil
}
