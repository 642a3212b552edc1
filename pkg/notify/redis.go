// Package notify fans deficit alerts out to other services over redis
// pub/sub.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
	"liyu1981.xyz/trailer-fleet-service/pkg/models"
)

const (
	DefaultChannel = "fleet:alerts:deficit"

	// DedupTTL is how long an announced unit and severity pair stays quiet.
	DedupTTL = 24 * time.Hour
)

type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
	now     func() time.Time
}

func NewRedisPublisher(ctx context.Context, addr string, channel string) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		PoolSize:     4,
		MinIdleConns: 1,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisPublisherWithClient(client, channel), nil
}

func NewRedisPublisherWithClient(client redis.UniversalClient, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel, now: time.Now}
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

func dedupKey(a models.DeficitAlert) string {
	return fmt.Sprintf("fleet:alert:%d:%s", a.UnitID, a.Severity)
}

type alertMessage struct {
	models.DeficitAlert
	PublishedAt int64 `json:"publishedAt"`
}

func (p *RedisPublisher) message(a models.DeficitAlert) ([]byte, error) {
	return json.Marshal(alertMessage{DeficitAlert: a, PublishedAt: p.now().Unix()})
}

// Publish announces every alert whose unit and severity were not announced
// within DedupTTL. Failures of single alerts do not stop the others.
func (p *RedisPublisher) Publish(ctx context.Context, alerts []models.DeficitAlert) error {
	logger := common.GetCategoryLogger(common.LoggerNameNotify, common.LoggerCategoryAlert)

	var errs []error
	published := 0
	for _, a := range alerts {
		fresh, err := p.client.SetNX(ctx, dedupKey(a), p.now().Unix(), DedupTTL).Result()
		if err != nil {
			errs = append(errs, fmt.Errorf("dedup unit %d: %w", a.UnitID, err))
			continue
		}
		if !fresh {
			continue
		}

		payload, err := p.message(a)
		if err != nil {
			errs = append(errs, fmt.Errorf("encoding alert of unit %d: %w", a.UnitID, err))
			continue
		}
		if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
			// let the next cycle try again
			p.client.Del(ctx, dedupKey(a))
			errs = append(errs, fmt.Errorf("publishing alert of unit %d: %w", a.UnitID, err))
			continue
		}
		published++
		logger.Info("Published deficit alert",
			zap.Int64("unit_id", a.UnitID),
			zap.String("severity", string(a.Severity)),
			zap.Int("streak_days", a.StreakDays),
		)
	}

	if published > 0 || len(errs) > 0 {
		logger.Debug("Alert publish finished",
			zap.Int("alerts", len(alerts)), zap.Int("published", published), zap.Int("failed", len(errs)))
	}
	return errors.Join(errs...)
}
