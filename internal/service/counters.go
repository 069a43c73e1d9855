package service

import (
	"context"

	"circle/internal/middleware"
	"circle/internal/models"
	"circle/internal/repository"
)

// CounterService maintains the denormalized aggregates (friend counts, post
// counts, comment counts, reaction tallies). Every recompute re-counts from
// the authoritative table and overwrites the stored value, so a recompute is
// idempotent and self-healing: stale or drifted counters converge on the
// next mutation that touches them.
type CounterService struct {
	userRepo     repository.UserRepository
	friendRepo   repository.FriendRepository
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	reactionRepo repository.ReactionRepository
}

// NewCounterService returns a new CounterService.
func NewCounterService(
	userRepo repository.UserRepository,
	friendRepo repository.FriendRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	reactionRepo repository.ReactionRepository,
) *CounterService {
	return &CounterService{
		userRepo:     userRepo,
		friendRepo:   friendRepo,
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
	}
}

// RecomputeFriendCount overwrites a user's friend_count with the live count
// of accepted edges.
func (s *CounterService) RecomputeFriendCount(ctx context.Context, userID uint) error {
	count, err := s.friendRepo.CountAccepted(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdateFriendCount(ctx, userID, int(count)); err != nil {
		return err
	}
	middleware.CounterRecomputes.WithLabelValues("friend_count").Inc()
	return nil
}

// RecomputePostCount overwrites a user's post_count with the live count of
// non-deleted posts.
func (s *CounterService) RecomputePostCount(ctx context.Context, userID uint) error {
	count, err := s.postRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePostCount(ctx, userID, int(count)); err != nil {
		return err
	}
	middleware.CounterRecomputes.WithLabelValues("post_count").Inc()
	return nil
}

// RecomputeCommentCount overwrites a post's comment_count with the live
// count of non-deleted comments.
func (s *CounterService) RecomputeCommentCount(ctx context.Context, postID uint) error {
	count, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.postRepo.UpdateCommentCount(ctx, postID, int(count)); err != nil {
		return err
	}
	middleware.CounterRecomputes.WithLabelValues("comment_count").Inc()
	return nil
}

// RecomputeReactionTally recounts a target's reactions by emoji and
// overwrites the tally stored on the target row. Returns the fresh tally.
func (s *CounterService) RecomputeReactionTally(ctx context.Context, kind models.ReactionTargetKind, targetID uint) (models.ReactionTally, error) {
	tally, err := s.reactionRepo.Tally(ctx, kind, targetID)
	if err != nil {
		return models.ReactionTally{}, err
	}

	switch kind {
	case models.ReactionTargetPost:
		err = s.postRepo.UpdateReactionTally(ctx, targetID, tally)
	case models.ReactionTargetComment:
		err = s.commentRepo.UpdateReactionTally(ctx, targetID, tally)
	default:
		return models.ReactionTally{}, models.NewValidationError("Unknown reaction target type")
	}
	if err != nil {
		return models.ReactionTally{}, err
	}

	middleware.CounterRecomputes.WithLabelValues("reaction_tally").Inc()
	return tally, nil
}
