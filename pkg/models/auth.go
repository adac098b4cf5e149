package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseCompanyModel is the base model for all company-scoped entities
type BaseCompanyModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID       `gorm:"type:uuid;index;not null;constraint:OnDelete:RESTRICT" json:"company_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt *gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty" swaggerignore:"true"`
}

// BaseModel is the base model for system-wide entities
type BaseModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt *gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty" swaggerignore:"true"`
}

// BeforeCreate hook to generate UUID if not set
func (b *BaseCompanyModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook to generate UUID if not set
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Company represents an organization running call campaigns on the platform
type Company struct {
	BaseModel
	Name     string `gorm:"not null" json:"name" validate:"required"`
	Status   string `gorm:"default:'active'" json:"status"`
	Timezone string `gorm:"default:'America/Los_Angeles'" json:"timezone"`
	MaxUsers int    `gorm:"default:10" json:"max_users"`
}

// User roles
const (
	RoleSuperAdmin   = "super_admin"
	RoleCompanyAdmin = "company_admin"
	RoleAgent        = "agent"
)

// User represents a platform user (super admin, company admin or agent)
type User struct {
	BaseModel
	CompanyID   *uuid.UUID `gorm:"type:uuid;index;constraint:OnDelete:SET NULL" json:"company_id,omitempty"` // null for super admins
	Email       string     `gorm:"unique;not null" json:"email" validate:"required,email"`
	Password    string     `gorm:"not null" json:"-"`
	Name        string     `gorm:"not null" json:"name" validate:"required"`
	Role        string     `gorm:"not null" json:"role" validate:"required"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`

	// Legacy outbound-number mirror. Predates the phone_numbers registry
	// and is kept as a best-effort fallback only; the registry row is
	// authoritative whenever the two disagree.
	TelnyxNumber       string `gorm:"column:telnyx_number" json:"telnyx_number,omitempty"`
	TelnyxConnectionID string `gorm:"column:telnyx_connection_id" json:"telnyx_connection_id,omitempty"`
}

// IsSuperAdmin reports whether the user has system-wide scope
func (u *User) IsSuperAdmin() bool {
	return u.Role == RoleSuperAdmin
}

// Role represents a role in the system
type Role struct {
	BaseModel
	Name        string `gorm:"unique;not null" json:"name" validate:"required"`
	Description string `json:"description"`
	Scope       string `gorm:"not null" json:"scope"` // 'system' or 'company'
}
