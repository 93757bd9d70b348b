package conversation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Vovarama1992/openauto-assist/internal/diagnosis"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id          BIGSERIAL PRIMARY KEY,
	thread_id   TEXT        NOT NULL,
	message_id  BIGINT      NOT NULL,
	role        TEXT        NOT NULL,
	kind        TEXT        NOT NULL,
	content     TEXT        NOT NULL,
	payload     JSONB       NOT NULL DEFAULT '{}'::jsonb,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS messages_thread_idx ON messages (thread_id, message_id);
`

type pgJournal struct {
	db *sql.DB
}

func NewPGJournal(db *sql.DB) Journal {
	return &pgJournal{db: db}
}

func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("journal: migrate: %w", err)
	}
	return nil
}

func (j *pgJournal) Record(ctx context.Context, threadID string, msg Message) error {
	payload, err := json.Marshal(struct {
		Diagnoses []diagnosis.Diagnosis `json:"diagnoses,omitempty"`
		Parts     []diagnosis.PartSpec  `json:"parts,omitempty"`
	}{msg.Diagnoses, msg.Parts})
	if err != nil {
		return fmt.Errorf("journal: encode payload: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO messages (thread_id, message_id, role, kind, content, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		threadID,
		msg.ID,
		string(msg.Role),
		string(msg.Kind),
		msg.Content,
		string(payload),
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("journal: insert message %d: %w", msg.ID, err)
	}
	return nil
}
