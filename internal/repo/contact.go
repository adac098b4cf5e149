package repo

import (
	"dialdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactRepository handles contact data access
type ContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// GetByID gets a contact by ID
func (r *ContactRepository) GetByID(id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.Where("id = ?", id).First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// GetByIDAndCompany gets a contact by ID scoped to a company
func (r *ContactRepository) GetByIDAndCompany(id, companyID uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.Where("id = ? AND company_id = ?", id, companyID).First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// FindByPhone finds a contact by phone within a company. Inbound numbers
// arrive in E.164 while stored contacts may carry bare ten-digit values,
// so both spellings are matched.
func (r *ContactRepository) FindByPhone(companyID uuid.UUID, phone string) (*models.Contact, error) {
	var contact models.Contact

	candidates := []string{phone}
	if len(phone) == 12 && phone[:2] == "+1" {
		candidates = append(candidates, phone[2:], phone[1:])
	}

	err := r.db.Where("company_id = ? AND phone IN ?", companyID, candidates).First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}
