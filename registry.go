package replicapool

import (
	"context"

	cmap "github.com/orcaman/concurrent-map"
	"github.com/pkg/errors"
)

// ShardRegistry maps shard names to their failover pools so callers that
// route by shard share one process-wide set of pools. All methods are safe
// for concurrent use.
type ShardRegistry[P, C any] struct {
	pools cmap.ConcurrentMap
}

func NewShardRegistry[P, C any]() *ShardRegistry[P, C] {
	return &ShardRegistry[P, C]{pools: cmap.New()}
}

// Register adds or replaces the pool serving a shard.
func (r *ShardRegistry[P, C]) Register(shard string, pool *Pool[P, C]) {
	r.pools.Set(shard, pool)
}

func (r *ShardRegistry[P, C]) Get(shard string) (*Pool[P, C], bool) {
	v, ok := r.pools.Get(shard)
	if !ok {
		return nil, false
	}
	return v.(*Pool[P, C]), true
}

func (r *ShardRegistry[P, C]) Remove(shard string) {
	r.pools.Remove(shard)
}

// Shards returns the registered shard names, in no particular order.
func (r *ShardRegistry[P, C]) Shards() []string {
	return r.pools.Keys()
}

// AcquireShard fans out into the named shard's pool.
func (r *ShardRegistry[P, C]) AcquireShard(ctx context.Context, shard string, s *Settings) ([]C, error) {
	pool, ok := r.Get(shard)
	if !ok {
		return nil, errors.Errorf("replicapool: unknown shard %q", shard)
	}
	return pool.AcquireMany(ctx, s)
}
