package models

import (
	"time"

	"github.com/google/uuid"
)

// Phone number lifecycle states
const (
	NumberStatusAvailable = "available"
	NumberStatusAssigned  = "assigned"
)

// PhoneNumber represents a purchased, dialable number owned by a company.
// A number is either available or assigned to exactly one agent; the
// agent's telnyx_number mirror is derived from this row, never the other
// way around.
type PhoneNumber struct {
	BaseCompanyModel
	PhoneNumber        string     `gorm:"uniqueIndex;not null" json:"phone_number" validate:"required"`
	TelnyxNumberID     string     `gorm:"column:telnyx_number_id" json:"telnyx_number_id"`
	ConnectionID       string     `json:"connection_id"`
	MessagingProfileID string     `json:"messaging_profile_id"`
	AssignedUserID     *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL" json:"assigned_user_id"`
	Status             string     `gorm:"default:'available';not null" json:"status"`
	AreaCode           string     `gorm:"size:10" json:"area_code"`
	PurchasedAt        time.Time  `json:"purchased_at"`

	// Relations
	AssignedUser *User `gorm:"foreignKey:AssignedUserID" json:"assigned_user,omitempty"`
}

// Interaction types
const (
	InteractionTypeSMS       = "sms"
	InteractionTypeCall      = "call"
	InteractionTypeVoicemail = "voicemail"
)

// Interaction read states
const (
	InteractionStatusUnread    = "unread"
	InteractionStatusRead      = "read"
	InteractionStatusResponded = "responded"
)

// Interaction directions
const (
	DirectionInbound  = "in"
	DirectionOutbound = "out"
)

// Interaction is an immutable log entry of one communication event.
// Created here by the dispatcher (outbound) and the webhook ingestor
// (inbound); read-state transitions belong to the dashboard layer.
type Interaction struct {
	BaseCompanyModel
	UserID            *uuid.UUID `gorm:"type:uuid;index;constraint:OnDelete:SET NULL" json:"user_id"`    // null for inbound events not yet attributable
	ContactID         *uuid.UUID `gorm:"type:uuid;index;constraint:OnDelete:SET NULL" json:"contact_id"` // null if the sender could not be resolved
	Type              string     `gorm:"not null" json:"type"`
	Content           string     `gorm:"type:text" json:"content"`
	Status            string     `gorm:"default:'unread'" json:"status"`
	Direction         string     `gorm:"not null" json:"direction"`
	FromNumber        string     `json:"from_number"`
	ToNumber          string     `json:"to_number"`
	ProviderMessageID string     `gorm:"index" json:"provider_message_id"`
	MediaURL          string     `json:"media_url,omitempty"`

	// Relations
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Contact *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
}

// WebhookEvent is the durable inbox used to de-duplicate provider
// redeliveries: the first insert of an event id wins, later deliveries
// hit the unique index and are acknowledged without side effects.
type WebhookEvent struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EventID    string    `gorm:"uniqueIndex;not null" json:"event_id"`
	EventType  string    `gorm:"not null" json:"event_type"`
	Payload    string    `gorm:"type:text" json:"payload"`
	ReceivedAt time.Time `gorm:"not null" json:"received_at"`
}

// SchemaInfo pins the schema version the binary expects. Checked once at
// startup instead of sniffing driver errors at request time.
type SchemaInfo struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Version   int       `gorm:"not null" json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}
