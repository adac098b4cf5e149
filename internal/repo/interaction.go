package repo

import (
	"dialdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InteractionRepository handles the append-only interaction log
type InteractionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository
func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

// Create appends an interaction
func (r *InteractionRepository) Create(interaction *models.Interaction) error {
	return r.db.Create(interaction).Error
}

// ListByCompany lists a company's interactions newest-first with pagination
func (r *InteractionRepository) ListByCompany(companyID uuid.UUID, limit, offset int) (models.PaginationResult[models.Interaction], error) {
	var interactions []models.Interaction
	var total int64

	if err := r.db.Model(&models.Interaction{}).Where("company_id = ?", companyID).Count(&total).Error; err != nil {
		return models.PaginationResult[models.Interaction]{}, err
	}

	err := r.db.Preload("Contact").Preload("User").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&interactions).Error
	if err != nil {
		return models.PaginationResult[models.Interaction]{}, err
	}

	page := 1
	totalPages := 1
	if limit > 0 {
		page = (offset / limit) + 1
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return models.PaginationResult[models.Interaction]{
		Data:       interactions,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}, nil
}

// ListByContact lists interactions with one contact, newest-first
func (r *InteractionRepository) ListByContact(contactID, companyID uuid.UUID, limit, offset int) ([]models.Interaction, error) {
	var interactions []models.Interaction
	err := r.db.Where("contact_id = ? AND company_id = ?", contactID, companyID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&interactions).Error
	return interactions, err
}
