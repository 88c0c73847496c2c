package repositories

import (
	"github.com/decidly/backend/internal/models"
	"gorm.io/gorm"
)

// MemberRepository defines the interface for family member data operations
type MemberRepository interface {
	CreateMember(member *models.Member) error
	GetMemberByID(id uint) (*models.Member, error)
	GetMembersByApplication(applicationID uint) ([]models.Member, error)
	UpdateMember(member *models.Member) error
	DeleteMember(id uint) error
}

// PostgresMemberRepository implements MemberRepository for PostgreSQL
type PostgresMemberRepository struct {
	db *gorm.DB
}

// NewPostgresMemberRepository creates a new PostgresMemberRepository
func NewPostgresMemberRepository(db *gorm.DB) *PostgresMemberRepository {
	return &PostgresMemberRepository{db: db}
}

// CreateMember creates a new member. A second is_self member for the same
// application trips the partial unique index and comes back as
// gorm.ErrDuplicatedKey.
func (r *PostgresMemberRepository) CreateMember(member *models.Member) error {
	return r.db.Create(member).Error
}

// GetMemberByID retrieves a member by ID
func (r *PostgresMemberRepository) GetMemberByID(id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// GetMembersByApplication retrieves all members of an application
func (r *PostgresMemberRepository) GetMembersByApplication(applicationID uint) ([]models.Member, error) {
	var members []models.Member
	if err := r.db.Where("application_id = ?", applicationID).Order("created_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// UpdateMember updates an existing member
func (r *PostgresMemberRepository) UpdateMember(member *models.Member) error {
	return r.db.Save(member).Error
}

// DeleteMember deletes a member and every relation referencing it as either
// endpoint, in one transaction. Cascading here rather than filtering on the
// read path means no dangling edge ever reaches the tree view. Deletes are
// unscoped; a soft-deleted self member would keep its slot in the partial
// unique index and block the application from ever getting another one.
func (r *PostgresMemberRepository) DeleteMember(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("from_member_id = ? OR to_member_id = ?", id, id).
			Delete(&models.Relation{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Member{}, id).Error
	})
}
