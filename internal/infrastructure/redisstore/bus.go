package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/roteiro-api/internal/application/ports"
	"github.com/jhoicas/roteiro-api/internal/domain/event"
	"github.com/jhoicas/roteiro-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Channel canal Pub/Sub compartido por todas las instancias.
const Channel = "roteiro:store-updated"

var _ ports.EventBus = (*Bus)(nil)

// Bus relé de eventos entre instancias sobre Redis Pub/Sub.
// Publish entrega primero a los suscriptores locales y luego difunde; los mensajes
// que vuelven con el Origin propio se descartan.
type Bus struct {
	local  ports.EventBus
	client *redis.Client
	origin string
	log    *logger.Logger

	mu     sync.Mutex
	pubsub *redis.PubSub
	done   chan struct{}
}

// NewBus construye el relé sobre local (el bus en proceso de la instancia).
func NewBus(client *redis.Client, local ports.EventBus, log *logger.Logger) *Bus {
	if log == nil {
		log = logger.Nop()
	}
	return &Bus{
		local:  local,
		client: client,
		origin: uuid.NewString(),
		log:    log.Named("redis-bus"),
	}
}

// Origin identificador de esta instancia.
func (b *Bus) Origin() string { return b.origin }

// Publish notifica localmente y difunde al resto de instancias.
// Un fallo de Redis se devuelve, pero los suscriptores locales ya fueron notificados.
func (b *Bus) Publish(ctx context.Context, e event.Event) error {
	if err := b.local.Publish(ctx, e); err != nil {
		return err
	}
	e.Origin = b.origin
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := b.client.Publish(ctx, Channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Subscribe registra el handler en el bus local.
func (b *Bus) Subscribe(handler ports.EventHandler) func() {
	return b.local.Subscribe(handler)
}

// Start se suscribe al canal y reenvía al bus local los eventos de otras instancias
// hasta que ctx se cancele o se llame a Close.
func (b *Bus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pubsub != nil {
		return nil
	}
	ps := b.client.Subscribe(ctx, Channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}
	b.pubsub = ps
	b.done = make(chan struct{})
	go b.loop(ctx, ps.Channel(), b.done)
	return nil
}

func (b *Bus) loop(ctx context.Context, ch <-chan *redis.Message, done chan struct{}) {
	defer close(done)
	for msg := range ch {
		var e event.Event
		if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
			b.log.Warn().Err(err).Msg("evento remoto ilegible")
			continue
		}
		if e.Origin == b.origin {
			continue
		}
		if err := b.local.Publish(ctx, e); err != nil {
			b.log.Warn().Err(err).Str("collection", e.Collection).Msg("no se pudo reenviar el evento remoto")
		}
	}
}

// Close cierra la suscripción y espera a que termine el reenvío.
func (b *Bus) Close() error {
	b.mu.Lock()
	ps, done := b.pubsub, b.done
	b.pubsub = nil
	b.mu.Unlock()
	if ps == nil {
		return nil
	}
	err := ps.Close()
	<-done
	return err
}
