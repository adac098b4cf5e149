package webhook

import "dialdesk/pkg/models"

// Notifier pushes new inbound interactions to connected dashboards
type Notifier interface {
	BroadcastInteraction(companyID string, interaction *models.Interaction)
}
