package repo

import (
	"dialdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository handles user data access
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update updates a user
func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// List lists users with pagination, scoped to a company when given
func (r *UserRepository) List(companyID *uuid.UUID, limit, offset int) ([]models.User, error) {
	var users []models.User
	query := r.db.Limit(limit).Offset(offset)

	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}

	err := query.Find(&users).Error
	return users, err
}

// SetLegacyNumber writes the legacy outbound-number mirror on a user row.
// The mirror is derived state; callers treat failures as non-fatal.
func (r *UserRepository) SetLegacyNumber(userID uuid.UUID, number, connectionID string) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"telnyx_number":        number,
			"telnyx_connection_id": connectionID,
		}).Error
}

// ClearLegacyNumberIfMatches clears the legacy mirror only while it still
// holds the given number. Guards against clobbering a number the agent
// was reassigned by a more recent operation.
func (r *UserRepository) ClearLegacyNumberIfMatches(userID uuid.UUID, number string) error {
	return r.db.Model(&models.User{}).
		Where("id = ? AND telnyx_number = ?", userID, number).
		Updates(map[string]interface{}{
			"telnyx_number":        "",
			"telnyx_connection_id": "",
		}).Error
}
