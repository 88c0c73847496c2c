package repositories

import (
	"time"

	"github.com/decidly/backend/internal/models"
	"gorm.io/gorm"
)

// QuestionRepository defines the interface for question data operations
type QuestionRepository interface {
	CreateQuestion(question *models.Question) error
	GetQuestionByID(id uint) (*models.Question, error)
	// SetAnswer records the answer on an unanswered question and reports
	// whether this call was the one that answered it.
	SetAnswer(id uint, answer string) (bool, error)
	GetQuestionsByUser(userID uint, applicationID *uint) ([]models.Question, error)
}

// PostgresQuestionRepository implements QuestionRepository for PostgreSQL
type PostgresQuestionRepository struct {
	db *gorm.DB
}

// NewPostgresQuestionRepository creates a new PostgresQuestionRepository
func NewPostgresQuestionRepository(db *gorm.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

// CreateQuestion creates a new question
func (r *PostgresQuestionRepository) CreateQuestion(question *models.Question) error {
	return r.db.Create(question).Error
}

// GetQuestionByID retrieves a question by ID
func (r *PostgresQuestionRepository) GetQuestionByID(id uint) (*models.Question, error) {
	var question models.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// SetAnswer writes the answer with a single conditional UPDATE guarded on
// "answer IS NULL". Two racing calls both reach the store, but only the
// first matches a row; the second sees zero rows affected and reports false.
func (r *PostgresQuestionRepository) SetAnswer(id uint, answer string) (bool, error) {
	now := time.Now()
	res := r.db.Model(&models.Question{}).
		Where("id = ? AND answer IS NULL", id).
		Updates(map[string]interface{}{"answer": answer, "answered_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetQuestionsByUser retrieves every question the user sent or received,
// optionally narrowed to one application, newest first
func (r *PostgresQuestionRepository) GetQuestionsByUser(userID uint, applicationID *uint) ([]models.Question, error) {
	q := r.db.Where("from_user_id = ? OR to_user_id = ?", userID, userID)
	if applicationID != nil {
		q = q.Where("application_id = ?", *applicationID)
	}
	var questions []models.Question
	if err := q.Order("created_at DESC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
