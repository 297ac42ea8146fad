// Package messaging publishes domain change events to RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/ecooy/backend/internal/domain/entity"
)

// Circuit breaker states.
const (
	StateClosed int32 = iota
	StateOpen
	StateHalfOpen
)

const (
	maxFailures    = 5
	openTimeout    = 30 * time.Second
	maxBackoff     = 30 * time.Second
	publishTimeout = 5 * time.Second
)

// ErrCircuitOpen is returned while the broker is considered unavailable.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// AMQPPublisher publishes change events on a topic exchange, routed by
// "<collection>.<operation>".
type AMQPPublisher struct {
	url      string
	exchange string

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel

	state        int32
	failureCount int64
	lastFailure  time.Time
}

// NewAMQPPublisher creates a publisher and tries to connect once. A failed
// first dial is logged; Run keeps retrying in the background.
func NewAMQPPublisher(url, exchange string) *AMQPPublisher {
	p := &AMQPPublisher{
		url:      url,
		exchange: exchange,
	}
	if err := p.connect(); err != nil {
		slog.Warn("amqp broker unavailable, will retry", "exchange", exchange, "error", err)
	}
	return p
}

func (p *AMQPPublisher) connect() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil && !p.channel.IsClosed() {
		return nil
	}
	p.closeLocked()

	conn, err := amqp091.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		p.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	p.conn = conn
	p.channel = channel
	slog.Info("amqp publisher connected", "exchange", p.exchange)
	return nil
}

// Run reconnects with exponential backoff whenever the connection drops,
// until ctx is cancelled.
func (p *AMQPPublisher) Run(ctx context.Context) error {
	attempt := 0
	for {
		if err := p.connect(); err != nil {
			wait := exponentialBackoff(attempt)
			attempt++
			slog.Warn("amqp reconnect failed", "attempt", attempt, "retry_in", wait, "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(wait):
			}
			continue
		}
		attempt = 0

		closed := p.notifyClose()
		select {
		case <-ctx.Done():
			return nil
		case err := <-closed:
			slog.Warn("amqp connection closed", "error", err)
		}
	}
}

func (p *AMQPPublisher) notifyClose() chan *amqp091.Error {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch := make(chan *amqp091.Error, 1)
	if p.conn == nil {
		close(ch)
		return ch
	}
	return p.conn.NotifyClose(ch)
}

// Publish sends the event as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, event *entity.ChangeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.isCircuitOpen() {
		return fmt.Errorf("publish %s: %w", event.RoutingKey(), ErrCircuitOpen)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := p.connect(); err != nil {
		p.recordFailure()
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	channel := p.channel
	p.mu.Unlock()

	err = channel.PublishWithContext(
		ctx,
		p.exchange,         // exchange
		event.RoutingKey(), // routing key
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		p.recordFailure()
		if isConnectionError(err) {
			p.mu.Lock()
			p.closeLocked()
			p.mu.Unlock()
		}
		return fmt.Errorf("publish message: %w", err)
	}

	p.recordSuccess()
	slog.DebugContext(ctx, "published change event",
		"routing_key", event.RoutingKey(),
		"document_id", event.DocumentID)
	return nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *AMQPPublisher) closeLocked() error {
	var err error
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		if !p.conn.IsClosed() {
			err = p.conn.Close()
		}
		p.conn = nil
	}
	return err
}

func (p *AMQPPublisher) recordFailure() {
	p.mu.Lock()
	p.lastFailure = time.Now()
	p.mu.Unlock()
	if atomic.AddInt64(&p.failureCount, 1) >= maxFailures {
		atomic.StoreInt32(&p.state, StateOpen)
	}
}

func (p *AMQPPublisher) recordSuccess() {
	atomic.StoreInt64(&p.failureCount, 0)
	atomic.StoreInt32(&p.state, StateClosed)
}

// isCircuitOpen moves an open breaker to half-open once openTimeout has passed.
func (p *AMQPPublisher) isCircuitOpen() bool {
	if atomic.LoadInt32(&p.state) != StateOpen {
		return false
	}
	p.mu.Lock()
	since := time.Since(p.lastFailure)
	p.mu.Unlock()
	if since > openTimeout {
		atomic.CompareAndSwapInt32(&p.state, StateOpen, StateHalfOpen)
		return false
	}
	return true
}

// exponentialBackoff returns 1s, 2s, 4s, ... capped at maxBackoff.
func exponentialBackoff(attempt int) time.Duration {
	if attempt > 5 {
		return maxBackoff
	}
	d := time.Second << attempt
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) {
		return true
	}
	msg := err.Error()
	for _, s := range []string{"connection refused", "connection closed", "EOF", "broken pipe", "use of closed network connection"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
