package repo

import (
	"time"

	"dialdesk/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WebhookEventRepository is the durable inbox for provider events
type WebhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a new webhook event repository
func NewWebhookEventRepository(db *gorm.DB) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

// Claim records an event id if it has not been seen before. Returns
// false when another delivery of the same event already claimed it;
// providers redeliver on timeout, so this happens routinely.
func (r *WebhookEventRepository) Claim(eventID, eventType, payload string) (bool, error) {
	event := models.WebhookEvent{
		ID:         uuid.New(),
		EventID:    eventID,
		EventType:  eventType,
		Payload:    payload,
		ReceivedAt: time.Now(),
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}},
		DoNothing: true,
	}).Create(&event)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// PruneOlderThan deletes inbox rows past the provider's redelivery window
func (r *WebhookEventRepository) PruneOlderThan(age time.Duration) (int64, error) {
	result := r.db.Unscoped().
		Where("received_at < ?", time.Now().Add(-age)).
		Delete(&models.WebhookEvent{})
	return result.RowsAffected, result.Error
}
