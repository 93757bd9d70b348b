package conversation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/openauto-assist/internal/diagnosis"
)

func TestIDsAreGlobalAndIncreasing(t *testing.T) {
	s := NewStore(nil)

	threads := []string{"civic", "tacoma", "civic", "f150", "tacoma", "civic"}
	var last int64
	seen := map[int64]bool{}
	for i, th := range threads {
		m := s.Append(th, Message{Role: RoleUser, Content: "msg"})
		assert.Greater(t, m.ID, last, "append %d", i)
		assert.False(t, seen[m.ID])
		seen[m.ID] = true
		last = m.ID
	}
	assert.Len(t, seen, len(threads))
}

func TestThreadsAreIndependent(t *testing.T) {
	s := NewStore(nil)

	s.Append("civic", Message{Role: RoleUser, Content: "squeal"})
	s.Append("tacoma", Message{Role: RoleUser, Content: "misfire"})
	s.Append("civic", Message{Role: RoleAssistant, Kind: diagnosis.KindText, Content: "ok"})

	civic := s.Get("civic")
	require.Len(t, civic, 2)
	assert.Equal(t, "squeal", civic[0].Content)
	assert.Equal(t, "ok", civic[1].Content)

	tacoma := s.Get("tacoma")
	require.Len(t, tacoma, 1)
	assert.Equal(t, "misfire", tacoma[0].Content)
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore(nil)
	s.Append("civic", Message{Content: "a"})

	got := s.Get("civic")
	got[0].Content = "mutated"

	assert.Equal(t, "a", s.Get("civic")[0].Content)
}

func TestEnsure(t *testing.T) {
	s := NewStore(nil)
	assert.False(t, s.Exists("civic"))
	assert.Equal(t, []Message{}, s.Get("civic"))

	s.Ensure("civic")
	assert.True(t, s.Exists("civic"))
	assert.Empty(t, s.Get("civic"))

	s.Append("civic", Message{Content: "a"})
	s.Ensure("civic")
	assert.Len(t, s.Get("civic"), 1)
}

type fixedCounter struct{ n int64 }

func (c *fixedCounter) Next() int64 { c.n += 10; return c.n }

func TestInjectedCounter(t *testing.T) {
	s := NewStore(&fixedCounter{})
	assert.Equal(t, int64(10), s.Append("a", Message{}).ID)
	assert.Equal(t, int64(20), s.Append("b", Message{}).ID)
}

func TestConcurrentAppendsNeverShareIDs(t *testing.T) {
	s := NewStore(nil)
	threads := []string{"a", "b", "c", "d"}

	var wg sync.WaitGroup
	for _, th := range threads {
		wg.Add(1)
		go func(th string) {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				s.Append(th, Message{Role: RoleUser})
			}
		}(th)
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, th := range threads {
		msgs := s.Get(th)
		require.Len(t, msgs, 250)
		for i, m := range msgs {
			assert.False(t, seen[m.ID])
			seen[m.ID] = true
			if i > 0 {
				assert.Greater(t, m.ID, msgs[i-1].ID)
			}
		}
	}
	assert.Len(t, seen, 1000)
}

func TestMessageResult(t *testing.T) {
	m := Message{Role: RoleAssistant, Kind: diagnosis.KindText, Content: "hi"}
	r := m.Result()
	assert.Equal(t, diagnosis.KindText, r.Kind)
	assert.Equal(t, "hi", r.Message)
	assert.NotNil(t, r.Diagnoses)
	assert.NotNil(t, r.Parts)
}

func TestNopJournal(t *testing.T) {
	assert.NoError(t, NopJournal.Record(context.Background(), "civic", Message{}))
}
