package publisher

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const dashboardStream = "gamecast.dashboard.basketball_nba"

// RedisPublisher fans each poll's dashboard payload out to a Redis stream
// so consumers other than the websocket clients (recorders, notifiers) can
// follow the live feed. The underlying client is safe for concurrent use,
// so one publisher is shared by all sessions.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher from a Redis URL.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{client: client}, nil
}

// Close closes the Redis connection.
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishDashboard appends one serialized dashboard payload to the stream.
func (rp *RedisPublisher) PublishDashboard(ctx context.Context, payload []byte) error {
	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: dashboardStream,
		MaxLen: 1000,
		Approx: true,
		Values: map[string]interface{}{
			"data":      string(payload),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
