package service

import (
	"context"

	"circle/internal/middleware"
	"circle/internal/models"
	"circle/internal/repository"
)

// sendOutcome is the decision the lifecycle takes when a user sends a
// request while some edge may already exist for the pair.
type sendOutcome int

const (
	sendCreate sendOutcome = iota
	sendResurrect
)

// resolveSend inspects the existing edge for a pair and decides what
// sending a request from fromID does. Pure function; the persistence is
// the caller's problem.
//
// No edge means create. A declined edge is resurrected: the same row is
// reused with the endpoints reassigned to the new direction. A pending or
// accepted edge rejects the send with a conflict, pending distinguishing
// who initiated it.
func resolveSend(existing *models.Friendship, fromID uint) (sendOutcome, error) {
	if existing == nil {
		return sendCreate, nil
	}
	switch existing.Status {
	case models.FriendshipStatusAccepted:
		return 0, models.NewConflictError("You are already friends")
	case models.FriendshipStatusPending:
		if existing.FromUserID == fromID {
			return 0, models.NewConflictError("Friend request already sent")
		}
		return 0, models.NewConflictError("This user has already sent you a friend request")
	case models.FriendshipStatusDeclined:
		return sendResurrect, nil
	default:
		return 0, models.NewInvalidStateError(string(existing.Status))
	}
}

// FriendService owns the friend-request lifecycle and the friendship views
// derived from it.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
	counters   *CounterService
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository, counters *CounterService) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		counters:   counters,
	}
}

// SendFriendRequest sends a friend request to the target user.
//
// The insert races against concurrent senders of the same pair: the
// pair_key index admits only one edge, and a lost insert is retried as a
// read so the loser resolves against whichever edge survived.
func (s *FriendService) SendFriendRequest(ctx context.Context, userID, targetUserID uint) (*models.Friendship, error) {
	if userID == targetUserID {
		return nil, models.NewValidationError("Cannot send friend request to yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		existing, err := s.friendRepo.GetByPair(ctx, userID, targetUserID)
		if err != nil {
			return nil, err
		}

		outcome, err := resolveSend(existing, userID)
		if err != nil {
			middleware.FriendshipTransitions.WithLabelValues("send", "rejected").Inc()
			return nil, err
		}

		switch outcome {
		case sendCreate:
			edge := &models.Friendship{
				FromUserID: userID,
				ToUserID:   targetUserID,
				Status:     models.FriendshipStatusPending,
			}
			created, err := s.friendRepo.Create(ctx, edge)
			if err != nil {
				return nil, err
			}
			if !created {
				// Lost the insert race; re-read and resolve.
				continue
			}
			middleware.FriendshipTransitions.WithLabelValues("send", "created").Inc()
			return edge, nil

		case sendResurrect:
			existing.FromUserID = userID
			existing.ToUserID = targetUserID
			existing.Status = models.FriendshipStatusPending
			if err := s.friendRepo.Save(ctx, existing); err != nil {
				return nil, err
			}
			middleware.FriendshipTransitions.WithLabelValues("send", "resurrected").Inc()
			return existing, nil
		}
	}

	return nil, models.NewConflictError("Friend request could not be created, try again")
}

// RespondToRequest accepts or declines the pending request the initiator
// sent to the acting user. Only the recipient may respond; the initiator
// gets a forbidden error rather than a not-found so the distinction is
// visible to the client.
func (s *FriendService) RespondToRequest(ctx context.Context, userID, initiatorID uint, decision models.FriendshipStatus) (*models.Friendship, error) {
	if decision != models.FriendshipStatusAccepted && decision != models.FriendshipStatusDeclined {
		return nil, models.NewValidationError("Status must be accepted or declined")
	}

	edge, err := s.friendRepo.GetByPair(ctx, userID, initiatorID)
	if err != nil {
		return nil, err
	}
	if edge == nil || edge.Status != models.FriendshipStatusPending || edge.FromUserID != initiatorID {
		if edge != nil && edge.Status == models.FriendshipStatusPending && edge.FromUserID == userID {
			return nil, models.NewForbiddenError("You cannot respond to your own friend request")
		}
		return nil, models.NewNotFoundError("Friend request", initiatorID)
	}

	edge.Status = decision
	if err := s.friendRepo.Save(ctx, edge); err != nil {
		return nil, err
	}

	if decision == models.FriendshipStatusAccepted {
		s.recomputeFriendCounts(ctx, edge.FromUserID, edge.ToUserID)
		middleware.FriendshipTransitions.WithLabelValues("accept", "ok").Inc()
	} else {
		middleware.FriendshipTransitions.WithLabelValues("decline", "ok").Inc()
	}
	return edge, nil
}

// CancelRequest withdraws a pending request the acting user sent. From the
// recipient's side no cancellable request exists, so anything but a pending
// edge initiated by the actor is a not-found.
func (s *FriendService) CancelRequest(ctx context.Context, userID, targetUserID uint) error {
	edge, err := s.friendRepo.GetByPair(ctx, userID, targetUserID)
	if err != nil {
		return err
	}
	if edge == nil || edge.Status != models.FriendshipStatusPending || edge.FromUserID != userID {
		return models.NewNotFoundError("Friend request", targetUserID)
	}

	if err := s.friendRepo.Delete(ctx, edge.ID); err != nil {
		return err
	}
	middleware.FriendshipTransitions.WithLabelValues("cancel", "ok").Inc()
	return nil
}

// Unfriend removes an accepted friendship between the acting user and the
// target and recomputes both friend counts.
func (s *FriendService) Unfriend(ctx context.Context, userID, targetUserID uint) error {
	edge, err := s.friendRepo.GetByPair(ctx, userID, targetUserID)
	if err != nil {
		return err
	}
	if edge == nil || edge.Status != models.FriendshipStatusAccepted {
		return models.NewNotFoundError("Friendship", targetUserID)
	}

	if err := s.friendRepo.Delete(ctx, edge.ID); err != nil {
		return err
	}
	s.recomputeFriendCounts(ctx, edge.FromUserID, edge.ToUserID)
	middleware.FriendshipTransitions.WithLabelValues("unfriend", "ok").Inc()
	return nil
}

// ListIncomingRequests returns one page of pending requests sent to the user.
func (s *FriendService) ListIncomingRequests(ctx context.Context, userID uint, name string, page, limit int) (*models.UserPage, error) {
	ids, err := s.friendRepo.IncomingRequesterIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.pageOfUsers(ctx, userID, ids, name, page, limit)
}

// ListOutgoingRequests returns one page of the users the given user has a
// pending request out to.
func (s *FriendService) ListOutgoingRequests(ctx context.Context, userID uint, name string, page, limit int) (*models.UserPage, error) {
	ids, err := s.friendRepo.OutgoingRecipientIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.pageOfUsers(ctx, userID, ids, name, page, limit)
}

// ListFriends returns one page of the user's accepted friends, optionally
// filtered by name, each annotated with the connecting edge.
func (s *FriendService) ListFriends(ctx context.Context, userID uint, name string, page, limit int) (*models.UserPage, error) {
	ids, err := s.friendRepo.AcceptedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.pageOfUsers(ctx, userID, ids, name, page, limit)
}

// pageOfUsers resolves an id set into one annotated, name-filtered user
// page. Friends and request listings all share this shape.
func (s *FriendService) pageOfUsers(ctx context.Context, viewerID uint, ids []uint, name string, page, limit int) (*models.UserPage, error) {
	limit, offset := normalizePage(page, limit)

	count, err := s.userRepo.CountByIDs(ctx, ids, name)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListByIDs(ctx, ids, name, limit, offset)
	if err != nil {
		return nil, err
	}

	annotated, err := s.AnnotateWithFriendships(ctx, viewerID, users)
	if err != nil {
		return nil, err
	}
	return &models.UserPage{
		Users:      annotated,
		TotalPages: totalPages(count, limit),
		Count:      count,
	}, nil
}

// AnnotateWithFriendships attaches the edge between the viewer and each
// listed user, when one exists. One query regardless of page size.
func (s *FriendService) AnnotateWithFriendships(ctx context.Context, viewerID uint, users []models.User) ([]models.UserWithFriendship, error) {
	edges, err := s.friendRepo.ListInvolving(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	byOther := make(map[uint]*models.Friendship, len(edges))
	for i := range edges {
		byOther[edges[i].OtherUserID(viewerID)] = &edges[i]
	}

	annotated := make([]models.UserWithFriendship, 0, len(users))
	for _, u := range users {
		annotated = append(annotated, models.UserWithFriendship{
			User:       u,
			Friendship: byOther[u.ID],
		})
	}
	return annotated, nil
}

// recomputeFriendCounts refreshes both endpoints' counters. The mutation
// has already committed; a failed recompute is logged and left for the
// next recompute to repair.
func (s *FriendService) recomputeFriendCounts(ctx context.Context, a, b uint) {
	for _, id := range []uint{a, b} {
		if err := s.counters.RecomputeFriendCount(ctx, id); err != nil {
			middleware.Logger.WarnContext(ctx, "friend count recompute failed",
				"user_id", id, "error", err)
		}
	}
}
