package service

import (
	"context"

	"circle/internal/middleware"
	"circle/internal/models"
	"circle/internal/repository"
)

// ReactionOutcome names what a reaction toggle did.
type ReactionOutcome string

const (
	// ReactionCreated means a fresh reaction was recorded.
	ReactionCreated ReactionOutcome = "created"
	// ReactionRemoved means the same emoji was sent again and toggled off.
	ReactionRemoved ReactionOutcome = "removed"
	// ReactionSwitched means an existing reaction changed emoji.
	ReactionSwitched ReactionOutcome = "switched"
)

// ReactionResult is the outcome of a toggle plus the fresh tally on the
// target after the recompute.
type ReactionResult struct {
	Outcome ReactionOutcome      `json:"outcome"`
	Tally   models.ReactionTally `json:"tally"`
}

// targetLookup binds a reaction target kind to the operations the engine
// needs on it. New reactable kinds register a row here; nothing dispatches
// by reflection.
type targetLookup struct {
	exists func(ctx context.Context, id uint) error
}

// ReactionService is the toggle engine: one reaction per author per
// target, same emoji toggles off, different emoji switches.
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	counters     *CounterService
	targets      map[models.ReactionTargetKind]targetLookup
}

// NewReactionService returns a new ReactionService.
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	counters *CounterService,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		counters:     counters,
		targets: map[models.ReactionTargetKind]targetLookup{
			models.ReactionTargetPost: {
				exists: func(ctx context.Context, id uint) error {
					_, err := postRepo.GetByID(ctx, id)
					return err
				},
			},
			models.ReactionTargetComment: {
				exists: func(ctx context.Context, id uint) error {
					_, err := commentRepo.GetByID(ctx, id)
					return err
				},
			},
		},
	}
}

// React applies one author's reaction to a target and returns what
// happened together with the recomputed tally.
func (s *ReactionService) React(ctx context.Context, authorID uint, kind models.ReactionTargetKind, targetID uint, emoji models.ReactionEmoji) (*ReactionResult, error) {
	if !kind.Valid() {
		return nil, models.NewValidationError("Target type must be Post or Comment")
	}
	if !emoji.Valid() {
		return nil, models.NewValidationError("Emoji must be like or dislike")
	}

	lookup := s.targets[kind]
	if err := lookup.exists(ctx, targetID); err != nil {
		return nil, err
	}

	outcome, err := s.toggle(ctx, authorID, kind, targetID, emoji)
	if err != nil {
		return nil, err
	}

	tally, err := s.counters.RecomputeReactionTally(ctx, kind, targetID)
	if err != nil {
		return nil, err
	}

	middleware.ReactionOutcomes.WithLabelValues(string(outcome)).Inc()
	return &ReactionResult{Outcome: outcome, Tally: tally}, nil
}

// toggle performs the create / remove / switch decision against whatever
// reaction currently exists for (author, target). A lost insert race falls
// through to the read path and toggles against the surviving row.
func (s *ReactionService) toggle(ctx context.Context, authorID uint, kind models.ReactionTargetKind, targetID uint, emoji models.ReactionEmoji) (ReactionOutcome, error) {
	existing, err := s.reactionRepo.GetByTargetAndAuthor(ctx, kind, targetID, authorID)
	if err != nil {
		return "", err
	}

	if existing == nil {
		created, err := s.reactionRepo.Create(ctx, &models.Reaction{
			TargetType: kind,
			TargetID:   targetID,
			AuthorID:   authorID,
			Emoji:      emoji,
		})
		if err != nil {
			return "", err
		}
		if created {
			return ReactionCreated, nil
		}
		existing, err = s.reactionRepo.GetByTargetAndAuthor(ctx, kind, targetID, authorID)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return "", models.NewConflictError("Reaction could not be recorded, try again")
		}
	}

	if existing.Emoji == emoji {
		if err := s.reactionRepo.Delete(ctx, existing.ID); err != nil {
			return "", err
		}
		return ReactionRemoved, nil
	}

	if err := s.reactionRepo.UpdateEmoji(ctx, existing.ID, emoji); err != nil {
		return "", err
	}
	return ReactionSwitched, nil
}
