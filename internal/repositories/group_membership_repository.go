package repositories

import (
	"github.com/gracepointapp/church-connect/backend/internal/models"
	"github.com/gracepointapp/church-connect/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// GroupMembershipRepository defines the interface for group membership
// invite/request/member state
type GroupMembershipRepository interface {
	CreateMembership(m *models.GroupMembership) error
	GetMembership(groupID string, userID uint) (*models.GroupMembership, error)
	GetMembershipsByGroup(groupID string, status string) ([]models.GroupMembership, error)
	GetMembershipsByUser(userID uint) ([]models.GroupMembership, error)
	UpdateMembershipStatus(groupID string, userID uint, status string) error
	DeleteMembership(groupID string, userID uint) error
}

// PostgresGroupMembershipRepository implements GroupMembershipRepository
type PostgresGroupMembershipRepository struct {
	db *gorm.DB
}

// NewPostgresGroupMembershipRepository creates a new PostgresGroupMembershipRepository
func NewPostgresGroupMembershipRepository(db *gorm.DB) *PostgresGroupMembershipRepository {
	return &PostgresGroupMembershipRepository{db: db}
}

// CreateMembership creates a membership row, rejecting duplicates
func (r *PostgresGroupMembershipRepository) CreateMembership(m *models.GroupMembership) error {
	var existing models.GroupMembership
	err := r.db.Where("group_id = ? AND user_id = ?", m.GroupID, m.UserID).First(&existing).Error
	if err == nil {
		if existing.Status == models.MembershipMember {
			return apperrors.AlreadyExists("user is already a member of this group")
		}
		return apperrors.AlreadyExists("a pending " + existing.Status + " already exists for this user and group")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.Create(m).Error
}

func (r *PostgresGroupMembershipRepository) GetMembership(groupID string, userID uint) (*models.GroupMembership, error) {
	var m models.GroupMembership
	if err := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMembershipsByGroup lists memberships for a group, optionally filtered by status
func (r *PostgresGroupMembershipRepository) GetMembershipsByGroup(groupID string, status string) ([]models.GroupMembership, error) {
	var memberships []models.GroupMembership
	q := r.db.Where("group_id = ?", groupID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *PostgresGroupMembershipRepository) GetMembershipsByUser(userID uint) ([]models.GroupMembership, error) {
	var memberships []models.GroupMembership
	if err := r.db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *PostgresGroupMembershipRepository) UpdateMembershipStatus(groupID string, userID uint, status string) error {
	res := r.db.Model(&models.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("membership not found")
	}
	return nil
}

func (r *PostgresGroupMembershipRepository) DeleteMembership(groupID string, userID uint) error {
	res := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.GroupMembership{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("membership not found")
	}
	return nil
}
