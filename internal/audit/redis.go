package audit

import (
	"context"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/relata/relata/internal/domain"
)

// defaultStream is the Redis stream conversions are appended to.
const defaultStream = "relata:conversions"

// RedisPublisher publishes conversion events to a Redis stream so outreach
// systems can react to funnel promotions without polling the database.
type RedisPublisher struct {
	client *backend.Client
	stream string
}

// Option configures a RedisPublisher.
type Option func(*RedisPublisher)

// WithStream overrides the stream key.
func WithStream(stream string) Option {
	return func(p *RedisPublisher) {
		p.stream = stream
	}
}

// NewRedisPublisher connects to the Redis at addr.
func NewRedisPublisher(addr string, opts ...Option) *RedisPublisher {
	client := backend.NewClient(&backend.Options{Addr: addr})
	return NewRedisPublisherFromClient(client, opts...)
}

// NewRedisPublisherFromClient wraps an existing client.
func NewRedisPublisherFromClient(client *backend.Client, opts ...Option) *RedisPublisher {
	p := &RedisPublisher{
		client: client,
		stream: defaultStream,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Notify implements Notifier by appending the event to the stream.
func (p *RedisPublisher) Notify(ctx context.Context, conv *domain.Conversion) error {
	err := p.client.XAdd(ctx, &backend.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"id":            conv.ID,
			"tenant_id":     conv.TenantID,
			"contact_id":    conv.ContactID,
			"from_pipeline": conv.FromPipeline,
			"from_stage":    conv.FromStage,
			"to_pipeline":   conv.ToPipeline,
			"to_stage":      conv.ToStage,
			"occurred_at":   conv.OccurredAt,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish conversion: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
