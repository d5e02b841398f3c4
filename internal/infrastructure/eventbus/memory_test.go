package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/internal/domain/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMemory_EntregaEnOrdenYDaDeBaja(t *testing.T) {
	bus := NewMemory()
	var got []string
	unsubA := bus.Subscribe(func(_ context.Context, e event.Event) { got = append(got, "a:"+e.Collection) })
	bus.Subscribe(func(_ context.Context, e event.Event) { got = append(got, "b:"+e.Collection) })

	require.NoError(t, bus.Publish(context.Background(), event.Event{Collection: event.CollectionProducts}))
	unsubA()
	unsubA()
	require.NoError(t, bus.Publish(context.Background(), event.Event{Collection: event.CollectionNotes}))

	assert.Equal(t, []string{"a:products", "b:products", "b:notes"}, got)
}

func TestMemory_PublicacionConcurrente(t *testing.T) {
	bus := NewMemory()
	var mu sync.Mutex
	count := 0
	bus.Subscribe(func(context.Context, event.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = bus.Publish(context.Background(), event.Event{Collection: event.CollectionSteps})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, count)
}

func TestMemorySessions_TTLYCopia(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	s := NewMemorySessions(time.Minute)
	s.now = func() time.Time { return now }

	st := navigation.State{ProductID: "p1", History: []string{"inicio"}}
	require.NoError(t, s.Save(ctx, "c1", "u1", st))
	st.History[0] = "mutado"

	got, err := s.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"inicio"}, got.History)

	other, err := s.Get(ctx, "c2", "u1")
	require.NoError(t, err)
	assert.Nil(t, other)

	now = now.Add(2 * time.Minute)
	got, err = s.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
