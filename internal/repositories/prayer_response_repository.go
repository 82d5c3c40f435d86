package repositories

import (
	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// PrayerResponseRepository defines the interface for "I prayed" responses
type PrayerResponseRepository interface {
	CreateResponse(response *models.PrayerResponse) error
	DeleteResponse(prayerID string, userID uint) error
	HasUserResponded(prayerID string, userID uint) (bool, error)
	GetResponseCount(prayerID string) (int64, error)
}

// PostgresPrayerResponseRepository implements PrayerResponseRepository
type PostgresPrayerResponseRepository struct {
	db *gorm.DB
}

func NewPostgresPrayerResponseRepository(db *gorm.DB) *PostgresPrayerResponseRepository {
	return &PostgresPrayerResponseRepository{db: db}
}

func (r *PostgresPrayerResponseRepository) CreateResponse(response *models.PrayerResponse) error {
	return r.db.Create(response).Error
}

func (r *PostgresPrayerResponseRepository) DeleteResponse(prayerID string, userID uint) error {
	res := r.db.Where("prayer_id = ? AND user_id = ?", prayerID, userID).Delete(&models.PrayerResponse{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("prayer response not found")
	}
	return nil
}

func (r *PostgresPrayerResponseRepository) HasUserResponded(prayerID string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.PrayerResponse{}).Where("prayer_id = ? AND user_id = ?", prayerID, userID).Count(&count).Error
	return count > 0, err
}

func (r *PostgresPrayerResponseRepository) GetResponseCount(prayerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.PrayerResponse{}).Where("prayer_id = ?", prayerID).Count(&count).Error
	return count, err
}
