package repo

import (
	"errors"

	"dialdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registry errors
var (
	// ErrDuplicateNumber means the E.164 value is already registered
	ErrDuplicateNumber = errors.New("phone number already registered")
	// ErrNumberConflict means a conditional assignment lost: the number
	// changed state between read and write, or the agent already holds an
	// active number
	ErrNumberConflict = errors.New("phone number assignment conflict")
)

// PhoneNumberRepository is the authoritative store of purchased numbers.
// All state transitions go through the conditional updates below; no
// caller does read-modify-write on a number row.
type PhoneNumberRepository struct {
	db *gorm.DB
}

// NewPhoneNumberRepository creates a new phone number repository
func NewPhoneNumberRepository(db *gorm.DB) *PhoneNumberRepository {
	return &PhoneNumberRepository{db: db}
}

// Create registers a purchased number as available
func (r *PhoneNumberRepository) Create(number *models.PhoneNumber) error {
	err := r.db.Create(number).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateNumber
	}
	return err
}

// GetByID gets a phone number by ID
func (r *PhoneNumberRepository) GetByID(id uuid.UUID) (*models.PhoneNumber, error) {
	var number models.PhoneNumber
	err := r.db.Where("id = ?", id).First(&number).Error
	if err != nil {
		return nil, err
	}
	return &number, nil
}

// GetByNumber gets a phone number by its E.164 value
func (r *PhoneNumberRepository) GetByNumber(phoneNumber string) (*models.PhoneNumber, error) {
	var number models.PhoneNumber
	err := r.db.Where("phone_number = ?", phoneNumber).First(&number).Error
	if err != nil {
		return nil, err
	}
	return &number, nil
}

// GetAssignedToUser gets the number currently assigned to an agent
func (r *PhoneNumberRepository) GetAssignedToUser(userID uuid.UUID) (*models.PhoneNumber, error) {
	var number models.PhoneNumber
	err := r.db.Where("assigned_user_id = ? AND status = ?", userID, models.NumberStatusAssigned).
		First(&number).Error
	if err != nil {
		return nil, err
	}
	return &number, nil
}

// ListByCompany lists all numbers owned by a company with pagination
func (r *PhoneNumberRepository) ListByCompany(companyID uuid.UUID, limit, offset int) (models.PaginationResult[models.PhoneNumber], error) {
	var numbers []models.PhoneNumber
	var total int64

	if err := r.db.Model(&models.PhoneNumber{}).Where("company_id = ?", companyID).Count(&total).Error; err != nil {
		return models.PaginationResult[models.PhoneNumber]{}, err
	}

	err := r.db.Where("company_id = ?", companyID).
		Order("purchased_at DESC").
		Limit(limit).Offset(offset).
		Find(&numbers).Error
	if err != nil {
		return models.PaginationResult[models.PhoneNumber]{}, err
	}

	page := 1
	totalPages := 1
	if limit > 0 {
		page = (offset / limit) + 1
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return models.PaginationResult[models.PhoneNumber]{
		Data:       numbers,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}, nil
}

// ListAvailable lists unassigned numbers for a company, newest purchase first
func (r *PhoneNumberRepository) ListAvailable(companyID uuid.UUID) ([]models.PhoneNumber, error) {
	var numbers []models.PhoneNumber
	err := r.db.Where("company_id = ? AND status = ?", companyID, models.NumberStatusAvailable).
		Order("purchased_at DESC").
		Find(&numbers).Error
	return numbers, err
}

// Assign moves a number from available to assigned in a single
// conditional update. Two concurrent assigns for the same number race on
// the WHERE clause; exactly one sees RowsAffected == 1. The partial
// unique index on assigned_user_id rejects a second active number for
// the same agent.
func (r *PhoneNumberRepository) Assign(id, userID uuid.UUID) error {
	result := r.db.Model(&models.PhoneNumber{}).
		Where("id = ? AND status = ? AND assigned_user_id IS NULL", id, models.NumberStatusAvailable).
		Updates(map[string]interface{}{
			"status":           models.NumberStatusAssigned,
			"assigned_user_id": userID,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrNumberConflict
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing row from one that lost the race
		if err := r.db.Where("id = ?", id).First(&models.PhoneNumber{}).Error; err != nil {
			return err
		}
		return ErrNumberConflict
	}
	return nil
}

// Release moves a number from assigned back to available, again as a
// single conditional update.
func (r *PhoneNumberRepository) Release(id uuid.UUID) error {
	result := r.db.Model(&models.PhoneNumber{}).
		Where("id = ? AND status = ?", id, models.NumberStatusAssigned).
		Updates(map[string]interface{}{
			"status":           models.NumberStatusAvailable,
			"assigned_user_id": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if err := r.db.Where("id = ?", id).First(&models.PhoneNumber{}).Error; err != nil {
			return err
		}
		return ErrNumberConflict
	}
	return nil
}
