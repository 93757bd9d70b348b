package conversation

import (
	"context"
	"time"

	"github.com/Vovarama1992/openauto-assist/internal/diagnosis"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

type Message struct {
	ID        int64                 `json:"id"`
	Role      Role                  `json:"role"`
	Kind      diagnosis.Kind        `json:"kind"`
	Content   string                `json:"content"`
	Diagnoses []diagnosis.Diagnosis `json:"diagnoses,omitempty"`
	Parts     []diagnosis.PartSpec  `json:"parts,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}

// Result rebuilds the ChatResult an assistant message was made from.
func (m Message) Result() diagnosis.ChatResult {
	r := diagnosis.ChatResult{
		Kind:      m.Kind,
		Message:   m.Content,
		Diagnoses: m.Diagnoses,
		Parts:     m.Parts,
	}
	if r.Diagnoses == nil {
		r.Diagnoses = []diagnosis.Diagnosis{}
	}
	if r.Parts == nil {
		r.Parts = []diagnosis.PartSpec{}
	}
	return r
}

// Counter allocates message ids shared by every thread.
type Counter interface {
	Next() int64
}

// Journal — write-only transcript sink, never read back.
type Journal interface {
	Record(ctx context.Context, threadID string, msg Message) error
}
