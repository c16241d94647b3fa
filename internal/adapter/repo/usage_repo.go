package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Aditya-myst/hookflow/internal/domain"
)

// UsageRepositoryPG persists generation usage events for dashboard history.
type UsageRepositoryPG struct {
	db DB
}

func NewUsageRepository(db DB) *UsageRepositoryPG {
	return &UsageRepositoryPG{db: db}
}

// Insert stores the event, assigning an id when the caller left it empty.
func (r *UsageRepositoryPG) Insert(ctx context.Context, event *domain.UsageEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx, `
INSERT INTO usage_events (id, user_id, template, success, latency_ms)
VALUES ($1, $2, $3, $4, $5);
`, event.ID, event.UserID, event.Template, event.Success, event.LatencyMS)
	return err
}

// ListRecent returns the caller's latest events, newest first.
func (r *UsageRepositoryPG) ListRecent(ctx context.Context, userID string, limit int) ([]domain.UsageEvent, error) {
	rows, err := r.db.Query(ctx, `
SELECT id, user_id, template, success, latency_ms, created_at
FROM usage_events
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;
`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.UsageEvent
	for rows.Next() {
		var ev domain.UsageEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Template, &ev.Success, &ev.LatencyMS, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
