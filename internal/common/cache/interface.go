package cache

import "context"

// Cache is the subset of key-value operations the scoreboard mirror relies on.
type Cache interface {
	HashOps
	ZSetOps
	PipelineOps

	// Ping verifies the cache connection is alive
	Ping(ctx context.Context) error

	// Close closes the cache connection
	Close() error
}

// HashOps defines hash (map) operations
type HashOps interface {
	// HGetAll returns all fields and values of the hash stored at key
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

// ZSetOps defines sorted set operations
type ZSetOps interface {
	// ZCard returns the number of members in a sorted set
	ZCard(ctx context.Context, key string) (int64, error)
}

// PipelineOps defines pipeline operations for batching commands
type PipelineOps interface {
	// TxPipeline queues the commands issued by fn and runs them atomically
	TxPipeline(ctx context.Context, fn func(pipe Pipeliner) error) error
}

// Pipeliner defines the commands that can be queued in a pipeline
type Pipeliner interface {
	Del(keys ...string) error
	HMSet(key string, fields map[string]interface{}) error
	ZAdd(key string, members ...ZMember) error
}

// ZMember represents a member in a sorted set with its score
type ZMember struct {
	Score  float64
	Member string
}
