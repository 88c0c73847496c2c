package repositories

import (
	"github.com/decidly/backend/internal/models"
	"gorm.io/gorm"
)

// RelationRepository defines the interface for relation edge data operations
type RelationRepository interface {
	CreateRelation(relation *models.Relation) error
	GetRelationByID(id uint) (*models.Relation, error)
	GetRelationsByApplication(applicationID uint) ([]models.Relation, error)
	DeleteRelation(id uint) error
}

// PostgresRelationRepository implements RelationRepository for PostgreSQL
type PostgresRelationRepository struct {
	db *gorm.DB
}

// NewPostgresRelationRepository creates a new PostgresRelationRepository
func NewPostgresRelationRepository(db *gorm.DB) *PostgresRelationRepository {
	return &PostgresRelationRepository{db: db}
}

// CreateRelation creates a new relation edge. A duplicate (from, to, type)
// triple within the application trips the composite unique index and comes
// back as gorm.ErrDuplicatedKey.
func (r *PostgresRelationRepository) CreateRelation(relation *models.Relation) error {
	return r.db.Create(relation).Error
}

// GetRelationByID retrieves a relation by ID
func (r *PostgresRelationRepository) GetRelationByID(id uint) (*models.Relation, error) {
	var relation models.Relation
	if err := r.db.First(&relation, id).Error; err != nil {
		return nil, err
	}
	return &relation, nil
}

// GetRelationsByApplication retrieves all relations of an application
func (r *PostgresRelationRepository) GetRelationsByApplication(applicationID uint) ([]models.Relation, error) {
	var relations []models.Relation
	if err := r.db.Where("application_id = ?", applicationID).Find(&relations).Error; err != nil {
		return nil, err
	}
	return relations, nil
}

// DeleteRelation removes a relation row for good, freeing its
// (application, from, to, type) slot in the unique edge index so the same
// edge can be re-created later.
func (r *PostgresRelationRepository) DeleteRelation(id uint) error {
	return r.db.Unscoped().Delete(&models.Relation{}, id).Error
}
