package services

import (
	"errors"

	"github.com/decidly/backend/internal/models"
	"github.com/decidly/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SocialService maintains the symmetric friend relation between users via the
// request/accept/decline state machine, plus user discovery.
type SocialService struct {
	friendships repositories.FriendshipRepository
	users       repositories.UserRepository
	logger      *zap.Logger
}

// NewSocialService creates a new SocialService
func NewSocialService(friendships repositories.FriendshipRepository, users repositories.UserRepository, logger *zap.Logger) *SocialService {
	return &SocialService{friendships: friendships, users: users, logger: logger}
}

// SearchUsers looks up users by a name or email fragment, never including the
// caller.
func (s *SocialService) SearchUsers(callerID uint, query string) ([]models.UserProfile, error) {
	if query == "" {
		return nil, validationf("search query is required")
	}
	users, err := s.users.SearchUsers(query, callerID)
	if err != nil {
		return nil, storeErr(err)
	}
	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}

// SendFriendRequest opens a pending request from the caller to target. An
// existing pending or accepted row for the pair, in either direction, is a
// conflict; so is losing the insert race, via the pair's unique index.
func (s *SocialService) SendFriendRequest(callerID, targetID uint) (*models.FriendRequest, error) {
	if targetID == callerID {
		return nil, validationf("cannot send a friend request to yourself")
	}
	if _, err := s.users.GetUserByID(targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("user %d does not exist", targetID)
		}
		return nil, storeErr(err)
	}

	// Pre-check for a friendlier message; the unique index on the pair is
	// what actually decides a concurrent race.
	existing, err := s.friendships.GetFriendRequestByPair(callerID, targetID)
	if err == nil {
		if existing.Status == models.FriendStatusAccepted {
			return nil, conflictf("users are already friends")
		}
		return nil, conflictf("a pending friend request already exists between these users")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeErr(err)
	}

	req := &models.FriendRequest{SenderID: callerID, ReceiverID: targetID}
	if err := s.friendships.CreateFriendRequest(req); err != nil {
		return nil, storeErr(err)
	}
	return req, nil
}

// AcceptFriendRequest transitions a pending request to accepted. Only the
// addressee of the request may do so.
func (s *SocialService) AcceptFriendRequest(callerID, requestID uint) (*models.FriendRequest, error) {
	req, err := s.pendingAddressedTo(callerID, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.friendships.UpdateFriendRequestStatus(req.ID, models.FriendStatusAccepted); err != nil {
		return nil, storeErr(err)
	}
	req.Status = models.FriendStatusAccepted
	return req, nil
}

// DeclineFriendRequest removes a pending request addressed to the caller.
// The row is deleted outright: a declined pair leaves no trace and may be
// re-requested later.
func (s *SocialService) DeclineFriendRequest(callerID, requestID uint) error {
	req, err := s.pendingAddressedTo(callerID, requestID)
	if err != nil {
		return err
	}
	if err := s.friendships.DeleteFriendRequest(req.ID); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *SocialService) pendingAddressedTo(callerID, requestID uint) (*models.FriendRequest, error) {
	req, err := s.friendships.GetFriendRequestByID(requestID)
	if err != nil {
		return nil, storeErr(err)
	}
	if req.ReceiverID != callerID {
		return nil, forbiddenf("friend request %d is not addressed to the caller", requestID)
	}
	if req.Status != models.FriendStatusPending {
		return nil, conflictf("friend request %d is not pending", requestID)
	}
	return req, nil
}

// DeleteFriend removes an accepted friendship with friendUserID. Removing a
// friendship that does not exist is a no-op, so retries are harmless.
func (s *SocialService) DeleteFriend(callerID, friendUserID uint) error {
	req, err := s.friendships.GetFriendRequestByPair(callerID, friendUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug("unfriend of absent friendship ignored",
				zap.Uint("caller_id", callerID),
				zap.Uint("friend_user_id", friendUserID))
			return nil
		}
		return storeErr(err)
	}
	if req.Status != models.FriendStatusAccepted {
		return conflictf("users are not friends")
	}
	if err := s.friendships.DeleteFriendRequest(req.ID); err != nil {
		return storeErr(err)
	}
	return nil
}

// GetFriends returns the caller's accepted friends as profiles. One row per
// pair serves both directions: the counterpart is whichever side of the row
// is not the caller.
func (s *SocialService) GetFriends(callerID uint) ([]models.UserProfile, error) {
	rows, err := s.friendships.GetAcceptedByUser(callerID)
	if err != nil {
		return nil, storeErr(err)
	}
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, counterpart(row, callerID))
	}
	users, err := s.users.GetUsersByIDs(ids)
	if err != nil {
		return nil, storeErr(err)
	}
	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}

// ReceivedFriendRequests returns the caller's pending incoming requests
// joined with the sender's profile.
func (s *SocialService) ReceivedFriendRequests(callerID uint) ([]models.FriendRequestView, error) {
	rows, err := s.friendships.GetPendingReceived(callerID)
	if err != nil {
		return nil, storeErr(err)
	}
	return s.joinCounterparts(rows, callerID)
}

// SentFriendRequests returns the caller's pending outgoing requests joined
// with the addressee's profile.
func (s *SocialService) SentFriendRequests(callerID uint) ([]models.FriendRequestView, error) {
	rows, err := s.friendships.GetPendingSent(callerID)
	if err != nil {
		return nil, storeErr(err)
	}
	return s.joinCounterparts(rows, callerID)
}

func (s *SocialService) joinCounterparts(rows []models.FriendRequest, callerID uint) ([]models.FriendRequestView, error) {
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, counterpart(row, callerID))
	}
	users, err := s.users.GetUsersByIDs(ids)
	if err != nil {
		return nil, storeErr(err)
	}
	byID := make(map[uint]models.UserProfile, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Profile()
	}

	views := make([]models.FriendRequestView, 0, len(rows))
	for _, row := range rows {
		views = append(views, models.FriendRequestView{
			FriendRequest: row,
			User:          byID[counterpart(row, callerID)],
		})
	}
	return views, nil
}

func counterpart(row models.FriendRequest, callerID uint) uint {
	if row.SenderID == callerID {
		return row.ReceiverID
	}
	return row.SenderID
}
