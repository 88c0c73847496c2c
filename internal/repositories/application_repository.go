package repositories

import (
	"github.com/decidly/backend/internal/models"
	"gorm.io/gorm"
)

// ApplicationRepository defines the interface for application container and
// configuration-item data operations
type ApplicationRepository interface {
	CreateApplication(app *models.Application) error
	GetApplicationByID(id uint) (*models.Application, error)
	GetApplicationsByOwner(ownerID uint) ([]models.Application, error)
	DeleteApplication(id uint) error
	ReplaceItems(applicationID uint, items []models.ApplicationItem) error
	GetItems(applicationID uint) ([]models.ApplicationItem, error)
}

// PostgresApplicationRepository implements ApplicationRepository for PostgreSQL
type PostgresApplicationRepository struct {
	db *gorm.DB
}

// NewPostgresApplicationRepository creates a new PostgresApplicationRepository
func NewPostgresApplicationRepository(db *gorm.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

// CreateApplication creates a new application container
func (r *PostgresApplicationRepository) CreateApplication(app *models.Application) error {
	return r.db.Create(app).Error
}

// GetApplicationByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetApplicationByID(id uint) (*models.Application, error) {
	var app models.Application
	if err := r.db.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// GetApplicationsByOwner retrieves all applications owned by a user,
// newest first
func (r *PostgresApplicationRepository) GetApplicationsByOwner(ownerID uint) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// DeleteApplication deletes an application and everything scoped to it in one
// transaction, so no member, relation or item row can outlive its container.
// Questions that referenced the application stay but lose the scope. The
// cascaded deletes are unscoped, matching the member and relation deletes.
func (r *PostgresApplicationRepository) DeleteApplication(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("application_id = ?", id).Delete(&models.Relation{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("application_id = ?", id).Delete(&models.Member{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("application_id = ?", id).Delete(&models.ApplicationItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Question{}).Where("application_id = ?", id).
			Update("application_id", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Application{}, id).Error
	})
}

// ReplaceItems replaces the full item list of an application. Delete and
// insert run in one transaction so readers never observe the empty
// intermediate state.
func (r *PostgresApplicationRepository) ReplaceItems(applicationID uint, items []models.ApplicationItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("application_id = ?", applicationID).Delete(&models.ApplicationItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

// GetItems retrieves an application's items in stored order
func (r *PostgresApplicationRepository) GetItems(applicationID uint) ([]models.ApplicationItem, error) {
	var items []models.ApplicationItem
	if err := r.db.Where("application_id = ?", applicationID).Order("position ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
