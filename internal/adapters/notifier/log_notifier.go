package notifier

import (
	"context"
	"log"

	"github.com/cadenceapp/cadence-insights-engine/internal/core/domain"
)

// LogNotifier is the fallback when no broker is configured. Deliveries go
// to the application log and nowhere else.
type LogNotifier struct{}

var _ domain.Notifier = (*LogNotifier)(nil)

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, notification domain.Notification) error {
	log.Printf("[NOTIFY] %s user=%s period=%s rank=%d/%d score=%d",
		notification.Kind, notification.UserID, notification.Period,
		notification.Rank, notification.TotalUsers, notification.Score)
	return nil
}
