package repositories

import (
	"github.com/gracepointapp/church-connect/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeviceTokenRepository defines the interface for FCM token storage
type DeviceTokenRepository interface {
	UpsertToken(token *models.DeviceToken) error
	GetTokensByUserID(userID uint) ([]string, error)
	DeleteToken(token string) error
}

// PostgresDeviceTokenRepository implements DeviceTokenRepository
type PostgresDeviceTokenRepository struct {
	db *gorm.DB
}

func NewPostgresDeviceTokenRepository(db *gorm.DB) *PostgresDeviceTokenRepository {
	return &PostgresDeviceTokenRepository{db: db}
}

// UpsertToken inserts the token or reassigns it to the current user
func (r *PostgresDeviceTokenRepository) UpsertToken(token *models.DeviceToken) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "platform", "updated_at"}),
	}).Create(token).Error
}

func (r *PostgresDeviceTokenRepository) GetTokensByUserID(userID uint) ([]string, error) {
	var tokens []string
	if err := r.db.Model(&models.DeviceToken{}).Where("user_id = ?", userID).Pluck("token", &tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

// DeleteToken removes a token, typically after FCM reports it invalid
func (r *PostgresDeviceTokenRepository) DeleteToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&models.DeviceToken{}).Error
}
