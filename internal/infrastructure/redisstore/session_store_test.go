package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jhoicas/roteiro-api/internal/domain"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/internal/domain/navigation"
	"github.com/jhoicas/roteiro-api/internal/infrastructure/eventbus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "nav:c1:u1", sessionKey("c1", "u1"))
}

func TestSessionStore_GuardaLeeYBorra(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)
	store := NewSessionStore(client, 10*time.Minute)

	missing, err := store.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	started := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	state := navigation.State{ProductID: "p1", History: []string{"inicio", "datos"}, AttendanceType: "receptivo", PersonType: "fisica", StartedAt: started}
	require.NoError(t, store.Save(ctx, "c1", "u1", state))

	assert.True(t, mr.Exists("nav:c1:u1"))
	assert.Equal(t, 10*time.Minute, mr.TTL("nav:c1:u1"))

	got, err := store.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.ProductID)
	assert.Equal(t, []string{"inicio", "datos"}, got.History)
	assert.Equal(t, "receptivo", got.AttendanceType)
	assert.True(t, started.Equal(got.StartedAt))

	other, err := store.Get(ctx, "c1", "u2")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, store.Delete(ctx, "c1", "u1"))
	assert.False(t, mr.Exists("nav:c1:u1"))
	gone, err := store.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Nil(t, gone)
	require.NoError(t, store.Delete(ctx, "c1", "u1"))
}

func TestSessionStore_VenceConElTTL(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)
	store := NewSessionStore(client, time.Minute)

	require.NoError(t, store.Save(ctx, "c1", "u1", navigation.State{ProductID: "p1", History: []string{"inicio"}}))
	mr.FastForward(30 * time.Second)
	require.NoError(t, store.Save(ctx, "c1", "u1", navigation.State{ProductID: "p1", History: []string{"inicio", "datos"}}))
	mr.FastForward(45 * time.Second)

	got, err := store.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	require.NotNil(t, got, "cada Save renueva el vencimiento")

	mr.FastForward(2 * time.Minute)
	got, err = store.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_SesionIlegibleEquivaleANinguna(t *testing.T) {
	mr, client := newRedis(t)
	require.NoError(t, mr.Set("nav:c1:u1", "{no es json"))

	got, err := NewSessionStore(client, time.Minute).Get(context.Background(), "c1", "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_RedisCaido(t *testing.T) {
	mr, client := newRedis(t)
	store := NewSessionStore(client, time.Minute)
	mr.Close()

	_, err := store.Get(context.Background(), "c1", "u1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	err = store.Save(context.Background(), "c1", "u1", navigation.State{ProductID: "p1"})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestBus_OrigenPorInstancia(t *testing.T) {
	a := NewBus(nil, eventbus.NewMemory(), nil)
	b := NewBus(nil, eventbus.NewMemory(), nil)
	assert.NotEmpty(t, a.Origin())
	assert.NotEqual(t, a.Origin(), b.Origin())
	assert.NoError(t, a.Close())
}

func TestBus_ReenviaEntreInstancias(t *testing.T) {
	ctx := context.Background()
	_, client := newRedis(t)

	busA := NewBus(client, eventbus.NewMemory(), nil)
	busB := NewBus(client, eventbus.NewMemory(), nil)
	require.NoError(t, busA.Start(ctx))
	require.NoError(t, busB.Start(ctx))

	gotA := make(chan event.Event, 8)
	gotB := make(chan event.Event, 8)
	busA.Subscribe(func(_ context.Context, e event.Event) { gotA <- e })
	busB.Subscribe(func(_ context.Context, e event.Event) { gotB <- e })

	require.NoError(t, busA.Publish(ctx, event.Event{Collection: event.CollectionProducts, CompanyID: "c1", ProductID: "p1", Action: event.ActionUpdated}))

	// Entrega local síncrona en A
	select {
	case e := <-gotA:
		assert.Equal(t, "p1", e.ProductID)
	default:
		t.Fatal("A no recibió su propio evento")
	}

	select {
	case e := <-gotB:
		assert.Equal(t, event.CollectionProducts, e.Collection)
		assert.Equal(t, "c1", e.CompanyID)
		assert.Equal(t, "p1", e.ProductID)
		assert.Equal(t, busA.Origin(), e.Origin)
	case <-time.After(3 * time.Second):
		t.Fatal("B no recibió el evento de A")
	}

	// Redis entrega en orden: cuando llega el evento de B, el eco de p1 ya habría llegado a A.
	require.NoError(t, busB.Publish(ctx, event.Event{Collection: event.CollectionNotes, CompanyID: "c1", Action: event.ActionDeleted}))
	<-gotB
	select {
	case e := <-gotA:
		assert.Equal(t, event.CollectionNotes, e.Collection, "A recibió el eco de su propio evento")
	case <-time.After(3 * time.Second):
		t.Fatal("A no recibió el evento de B")
	}

	require.NoError(t, busA.Close())
	require.NoError(t, busB.Close())
	assert.Empty(t, gotA)
	assert.Empty(t, gotB)
}
