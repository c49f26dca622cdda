package redis

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/candyledger/internal/storage"
)

// Storage is a Redis-backed implementation of the storage backend.
// Each family is one JSON string key; saves replace all keys in a single
// MULTI/EXEC transaction.
type Storage struct {
	client *redis.Client
	cfg    Config
	logger *slog.Logger
}

// New creates a new Redis storage instance
func New(cfg Config, logger *slog.Logger) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg, logger), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, logger *slog.Logger) *Storage {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "redis_storage")),
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Backend = (*Storage)(nil)

func (s *Storage) Save(ctx context.Context, snap *storage.Snapshot) error {
	encoded, err := storage.Encode(snap)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, f := range storage.Families {
			pipe.Set(ctx, familyKey(s.cfg.KeyPrefix, f), encoded[f], 0)
		}
		return nil
	})
	return err
}

func (s *Storage) Load(ctx context.Context) (*storage.Snapshot, error) {
	keys := make([]string, len(storage.Families))
	for i, f := range storage.Families {
		keys[i] = familyKey(s.cfg.KeyPrefix, f)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	raw := make(map[storage.Family][]byte, len(values))
	for i, v := range values {
		// Missing keys come back as nil
		if str, ok := v.(string); ok {
			raw[storage.Families[i]] = []byte(str)
		}
	}
	return storage.Decode(raw, s.logger), nil
}
