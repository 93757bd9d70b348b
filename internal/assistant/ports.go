package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/Vovarama1992/openauto-assist/internal/ai"
	"github.com/Vovarama1992/openauto-assist/internal/conversation"
	"github.com/Vovarama1992/openauto-assist/internal/diagnosis"
)

var ErrThreadBusy = errors.New("assistant: a request is already pending for this thread")

// Vehicle — the profile a thread belongs to. Every field is optional.
type Vehicle struct {
	Make  string `json:"make,omitempty"`
	Model string `json:"model,omitempty"`
	Year  Year   `json:"year,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Year accepts both 2015 and "2015" on the wire.
type Year string

func (y *Year) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*y = Year(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*y = Year(strconv.FormatInt(i, 10))
		return nil
	}
	*y = Year(n.String())
	return nil
}

// Service — request orchestration between the UI and the completion provider.
type Service interface {
	// Complete runs one stateless round trip over the given history.
	Complete(ctx context.Context, history []ai.Message, v Vehicle) (diagnosis.ChatResult, error)

	// Submit appends the user turn and answers it asynchronously. A blank
	// utterance is a no-op and yields a nil *Pending.
	Submit(ctx context.Context, threadID, utterance string, v Vehicle) (*Pending, error)

	NewThread() string
	History(threadID string) []conversation.Message
	InFlight(threadID string) bool
}
