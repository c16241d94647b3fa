package repo

import (
	"context"

	"github.com/Aditya-myst/hookflow/internal/domain"
)

// HookTemplateRepositoryPG retrieves curated hook examples from PostgreSQL.
type HookTemplateRepositoryPG struct {
	db DB
}

func NewHookTemplateRepository(db DB) *HookTemplateRepositoryPG {
	return &HookTemplateRepositoryPG{db: db}
}

// ListByTrigger returns up to limit examples whose psychology triggers match
// the given trigger (case-insensitive substring).
func (r *HookTemplateRepositoryPG) ListByTrigger(ctx context.Context, trigger string, limit int) ([]domain.HookExample, error) {
	rows, err := r.db.Query(ctx, `
SELECT hook_text, hook_structure
FROM hook_templates
WHERE psychology_triggers ILIKE '%' || $1 || '%'
LIMIT $2;
`, trigger, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var examples []domain.HookExample
	for rows.Next() {
		var ex domain.HookExample
		if err := rows.Scan(&ex.Text, &ex.Structure); err != nil {
			return nil, err
		}
		examples = append(examples, ex)
	}
	return examples, rows.Err()
}
