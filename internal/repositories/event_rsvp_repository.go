package repositories

import (
	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// EventRSVPRepository defines the interface for event RSVP data operations
type EventRSVPRepository interface {
	CreateRSVP(rsvp *models.EventRSVP) error
	DeleteRSVP(eventID string, userID uint) error
	HasUserRSVPed(eventID string, userID uint) (bool, error)
	GetRSVPCount(eventID string) (int64, error)
	GetRSVPUserIDs(eventID string) ([]uint, error)
}

// PostgresEventRSVPRepository implements EventRSVPRepository for PostgreSQL
type PostgresEventRSVPRepository struct {
	db *gorm.DB
}

// NewPostgresEventRSVPRepository creates a new PostgresEventRSVPRepository
func NewPostgresEventRSVPRepository(db *gorm.DB) *PostgresEventRSVPRepository {
	return &PostgresEventRSVPRepository{db: db}
}

func (r *PostgresEventRSVPRepository) CreateRSVP(rsvp *models.EventRSVP) error {
	return r.db.Create(rsvp).Error
}

func (r *PostgresEventRSVPRepository) DeleteRSVP(eventID string, userID uint) error {
	res := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.EventRSVP{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("rsvp not found")
	}
	return nil
}

func (r *PostgresEventRSVPRepository) HasUserRSVPed(eventID string, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.EventRSVP{}).Where("event_id = ? AND user_id = ?", eventID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresEventRSVPRepository) GetRSVPCount(eventID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.EventRSVP{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

// GetRSVPUserIDs returns the ids of users who RSVPed to the event; used as the
// recipient set for event reminders
func (r *PostgresEventRSVPRepository) GetRSVPUserIDs(eventID string) ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&models.EventRSVP{}).Where("event_id = ?", eventID).Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
