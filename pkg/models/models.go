package models

// PaginationResult represents paginated results
type PaginationResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

// Swagger-specific types (non-generic to avoid swag parsing issues)

// SwaggerPhoneNumber represents a phone number for swagger docs (without GORM dependencies)
type SwaggerPhoneNumber struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	PhoneNumber    string `json:"phone_number"`
	ConnectionID   string `json:"connection_id,omitempty"`
	AssignedUserID string `json:"assigned_user_id,omitempty"`
	Status         string `json:"status"`
	AreaCode       string `json:"area_code,omitempty"`
	PurchasedAt    string `json:"purchased_at"`
	CreatedAt      string `json:"created_at"`
}

// PhoneNumberListResponse represents paginated phone number results for Swagger docs
type PhoneNumberListResponse struct {
	Data       []SwaggerPhoneNumber `json:"data"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PerPage    int                  `json:"per_page"`
	TotalPages int                  `json:"total_pages"`
}

// SwaggerInteraction represents an interaction for swagger docs (without GORM dependencies)
type SwaggerInteraction struct {
	ID         string `json:"id"`
	CompanyID  string `json:"company_id"`
	UserID     string `json:"user_id,omitempty"`
	ContactID  string `json:"contact_id,omitempty"`
	Type       string `json:"type"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	Direction  string `json:"direction"`
	FromNumber string `json:"from_number"`
	ToNumber   string `json:"to_number"`
	CreatedAt  string `json:"created_at"`
}

// InteractionListResponse represents paginated interaction results for Swagger docs
type InteractionListResponse struct {
	Data       []SwaggerInteraction `json:"data"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PerPage    int                  `json:"per_page"`
	TotalPages int                  `json:"total_pages"`
}

// GetAllModels returns all models for GORM AutoMigrate
func GetAllModels() []interface{} {
	return []interface{}{
		// Core models
		&Company{},
		&User{},
		&Role{},
		&Contact{},

		// Telephony models
		&PhoneNumber{},
		&Interaction{},
		&WebhookEvent{},
		&SchemaInfo{},
	}
}
