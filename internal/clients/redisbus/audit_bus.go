package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/salonledger/salonledger-backend/internal/domain"
	"github.com/salonledger/salonledger-backend/internal/platform/logger"
)

// AuditBus fans committed audit entries out over redis pub/sub so external
// consumers (dashboards, alerting) can follow the trail live. Publishing is
// best-effort: the database row is the source of truth and a failed publish
// never fails the request.
type AuditBus interface {
	Publish(ctx context.Context, entry *domain.AuditLogEntry) error
	StartForwarder(ctx context.Context, onEntry func(entry *domain.AuditLogEntry)) error
	Close() error
}

type auditBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewAuditBus(log *logger.Logger) (AuditBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_AUDIT_CHANNEL"))
	if ch == "" {
		ch = "audit"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &auditBus{
		log:     log.With("service", "RedisAuditBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *auditBus) Publish(ctx context.Context, entry *domain.AuditLogEntry) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis audit bus not initialized")
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

func (b *auditBus) StartForwarder(ctx context.Context, onEntry func(entry *domain.AuditLogEntry)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("redis audit bus not initialized")
	}
	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}
	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var entry domain.AuditLogEntry
				if err := json.Unmarshal([]byte(msg.Payload), &entry); err != nil {
					b.log.Warn("Dropping malformed audit message", "error", err)
					continue
				}
				onEntry(&entry)
			}
		}
	}()
	return nil
}

func (b *auditBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
