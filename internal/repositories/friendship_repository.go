package repositories

import (
	"github.com/decidly/backend/internal/models"
	"gorm.io/gorm"
)

// FriendshipRepository defines the interface for friendship data operations
type FriendshipRepository interface {
	CreateFriendRequest(req *models.FriendRequest) error
	GetFriendRequestByID(id uint) (*models.FriendRequest, error)
	GetFriendRequestByPair(userA, userB uint) (*models.FriendRequest, error)
	GetPendingReceived(userID uint) ([]models.FriendRequest, error)
	GetPendingSent(userID uint) ([]models.FriendRequest, error)
	GetAcceptedByUser(userID uint) ([]models.FriendRequest, error)
	AreFriends(userA, userB uint) (bool, error)
	UpdateFriendRequestStatus(id uint, status string) error
	DeleteFriendRequest(id uint) error
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// CreateFriendRequest inserts a new pending request. The unique index on
// PairKey is the real guard against a second row for the pair: a lost race
// surfaces as gorm.ErrDuplicatedKey, never as two surviving rows.
func (r *PostgresFriendshipRepository) CreateFriendRequest(req *models.FriendRequest) error {
	req.PairKey = models.PairKey(req.SenderID, req.ReceiverID)
	req.Status = models.FriendStatusPending
	return r.db.Create(req).Error
}

// GetFriendRequestByID retrieves a friend request by ID
func (r *PostgresFriendshipRepository) GetFriendRequestByID(id uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// GetFriendRequestByPair retrieves the row for the unordered pair {userA,
// userB} regardless of which side sent it
func (r *PostgresFriendshipRepository) GetFriendRequestByPair(userA, userB uint) (*models.FriendRequest, error) {
	var req models.FriendRequest
	if err := r.db.Where("pair_key = ?", models.PairKey(userA, userB)).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// GetPendingReceived retrieves all pending requests addressed to a user
func (r *PostgresFriendshipRepository) GetPendingReceived(userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := r.db.Where("receiver_id = ? AND status = ?", userID, models.FriendStatusPending).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// GetPendingSent retrieves all pending requests a user has sent
func (r *PostgresFriendshipRepository) GetPendingSent(userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := r.db.Where("sender_id = ? AND status = ?", userID, models.FriendStatusPending).
		Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// GetAcceptedByUser retrieves all accepted friendships a user takes part in,
// from either side of the row
func (r *PostgresFriendshipRepository) GetAcceptedByUser(userID uint) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := r.db.Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
		userID, userID, models.FriendStatusAccepted).
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// AreFriends reports whether the pair has an accepted friendship
func (r *PostgresFriendshipRepository) AreFriends(userA, userB uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.FriendRequest{}).
		Where("pair_key = ? AND status = ?", models.PairKey(userA, userB), models.FriendStatusAccepted).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateFriendRequestStatus updates the status of a friend request
func (r *PostgresFriendshipRepository) UpdateFriendRequestStatus(id uint, status string) error {
	return r.db.Model(&models.FriendRequest{}).Where("id = ?", id).Update("status", status).Error
}

// DeleteFriendRequest removes a friend request row for good. A soft delete
// would leave the pair key occupied in the unique index and block the pair
// from ever requesting again.
func (r *PostgresFriendshipRepository) DeleteFriendRequest(id uint) error {
	return r.db.Unscoped().Delete(&models.FriendRequest{}, id).Error
}
