package assistant

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Vovarama1992/openauto-assist/internal/ai"
	"github.com/Vovarama1992/openauto-assist/internal/conversation"
	"github.com/Vovarama1992/openauto-assist/internal/diagnosis"
)

const (
	defaultTimeout        = 60 * time.Second
	defaultJournalTimeout = 5 * time.Second
)

type service struct {
	store    *conversation.Store
	provider ai.Provider
	journal  conversation.Journal
	timeout  time.Duration
	jtimeout time.Duration

	mu       sync.Mutex
	inflight map[string]bool
}

type Options struct {
	Journal conversation.Journal
	Timeout time.Duration
	// JournalTimeout bounds each transcript write.
	JournalTimeout time.Duration
}

func NewService(store *conversation.Store, provider ai.Provider, opts Options) Service {
	if opts.Journal == nil {
		opts.Journal = conversation.NopJournal
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.JournalTimeout <= 0 {
		opts.JournalTimeout = defaultJournalTimeout
	}
	return &service{
		store:    store,
		provider: provider,
		journal:  opts.Journal,
		timeout:  opts.Timeout,
		jtimeout: opts.JournalTimeout,
		inflight: make(map[string]bool),
	}
}

// Pending is the not-yet-arrived assistant reply to one submitted turn.
type Pending struct {
	User conversation.Message

	done  chan struct{}
	reply conversation.Message
}

// Done is closed once the reply has been appended.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the reply is appended or ctx ends. A nil Pending (the
// no-op submit) reports false immediately.
func (p *Pending) Wait(ctx context.Context) (conversation.Message, bool) {
	if p == nil {
		return conversation.Message{}, false
	}
	select {
	case <-p.done:
		return p.reply, true
	case <-ctx.Done():
		return conversation.Message{}, false
	}
}

func (s *service) NewThread() string {
	id := uuid.NewString()
	s.store.Ensure(id)
	return id
}

func (s *service) History(threadID string) []conversation.Message {
	return s.store.Get(threadID)
}

func (s *service) InFlight(threadID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[threadID]
}

func (s *service) Submit(ctx context.Context, threadID, utterance string, v Vehicle) (*Pending, error) {
	if strings.TrimSpace(utterance) == "" {
		return nil, nil
	}
	if !s.acquire(threadID) {
		return nil, ErrThreadBusy
	}

	log.Printf("[assistant] thread=%s text=%q", threadID, ai.Short(utterance))

	user := s.append(threadID, conversation.Message{
		Role:    conversation.RoleUser,
		Kind:    diagnosis.KindText,
		Content: utterance,
	})

	history := toProvider(s.store.Get(threadID))
	p := &Pending{User: user, done: make(chan struct{})}

	// The reply outlives the caller's request; there is no cancel.
	bg := context.WithoutCancel(ctx)

	go func() {
		defer close(p.done)
		defer s.release(threadID)

		p.reply = s.append(threadID, s.answer(bg, threadID, history, v))
	}()

	return p, nil
}

// answer never fails: provider errors become the apology message.
func (s *service) answer(ctx context.Context, threadID string, history []ai.Message, v Vehicle) conversation.Message {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.Complete(ctx, history, v)
	if err != nil {
		log.Printf("[assistant] thread=%s provider failure: %v", threadID, err)
		return conversation.Message{
			Role:    conversation.RoleAssistant,
			Kind:    diagnosis.KindText,
			Content: ApologyMessage,
		}
	}

	return conversation.Message{
		Role:      conversation.RoleAssistant,
		Kind:      res.Kind,
		Content:   res.Message,
		Diagnoses: res.Diagnoses,
		Parts:     res.Parts,
	}
}

func (s *service) Complete(ctx context.Context, history []ai.Message, v Vehicle) (diagnosis.ChatResult, error) {
	ctx, span := otel.Tracer("openauto/assistant").Start(ctx, "assistant.complete")
	defer span.End()
	span.SetAttributes(attribute.Int("history.len", len(history)))

	raw, err := s.provider.Complete(ctx, ai.Request{
		System:   Instructions(v),
		Messages: history,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider failure")
		return diagnosis.ChatResult{}, fmt.Errorf("assistant: complete: %w", err)
	}

	res, err := diagnosis.Decode(raw)
	if err != nil {
		log.Printf("[assistant] JSON decode failed, using defaults: %v raw=%s", err, ai.Short(raw))
	}
	span.SetAttributes(
		attribute.String("result.kind", string(res.Kind)),
		attribute.Int("result.diagnoses", len(res.Diagnoses)),
		attribute.Int("result.parts", len(res.Parts)),
	)
	return res, nil
}

// append commits to the store; the journal write runs in the background
// so a slow database never holds up the thread.
func (s *service) append(threadID string, msg conversation.Message) conversation.Message {
	stored := s.store.Append(threadID, msg)
	go s.record(threadID, stored)
	return stored
}

func (s *service) record(threadID string, msg conversation.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), s.jtimeout)
	defer cancel()

	if err := s.journal.Record(ctx, threadID, msg); err != nil {
		log.Printf("[journal] thread=%s id=%d: %v", threadID, msg.ID, err)
	}
}

func (s *service) acquire(threadID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[threadID] {
		return false
	}
	s.inflight[threadID] = true
	return true
}

func (s *service) release(threadID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, threadID)
}

// toProvider replays only role and content; diagnoses and parts stay local.
func toProvider(msgs []conversation.Message) []ai.Message {
	out := make([]ai.Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ai.Message{Role: string(m.Role), Content: m.Content})
	}
	return out
}
