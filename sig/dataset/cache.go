package dataset

import (
	"container/list"
	"fmt"
	"sync"
)

const cacheShards = 8

// Cached wraps a Sampler with a bounded, sharded LRU cache keyed by
// sample index. Because samples are pure functions of their index, the
// cache is strictly a performance layer: wrapping a sampler never
// changes what Next returns.
type Cached struct {
	inner  Sampler
	shards [cacheShards]cacheShard
}

type cacheShard struct {
	mu       sync.Mutex
	capacity int
	entries  map[int]*list.Element
	order    *list.List
}

type cacheEntry struct {
	index  int
	sample Sample
}

// NewCached wraps s with an LRU cache holding up to capacity samples.
func NewCached(s Sampler, capacity int) (*Cached, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil sampler", ErrInvalidConfiguration)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: cache capacity must be > 0: %d", ErrInvalidConfiguration, capacity)
	}

	c := &Cached{inner: s}
	per := (capacity + cacheShards - 1) / cacheShards
	for i := range c.shards {
		c.shards[i] = cacheShard{
			capacity: per,
			entries:  make(map[int]*list.Element, per),
			order:    list.New(),
		}
	}
	return c, nil
}

// Len returns the wrapped sampler's length.
func (c *Cached) Len() int { return c.inner.Len() }

// Next returns the cached sample for index, generating and storing it on
// a miss. Callers receive an independent copy of the signal buffer, so a
// consumer mutating its sample cannot poison later reads.
func (c *Cached) Next(index int) (Sample, error) {
	shard := &c.shards[index%cacheShards]

	shard.mu.Lock()
	if el, ok := shard.entries[index]; ok {
		shard.order.MoveToFront(el)
		s := el.Value.(*cacheEntry).sample
		shard.mu.Unlock()
		return copySample(s), nil
	}
	shard.mu.Unlock()

	s, err := c.inner.Next(index)
	if err != nil {
		return Sample{}, err
	}

	shard.mu.Lock()
	defer shard.mu.Unlock()
	// Another goroutine may have filled the slot in the meantime; samples
	// for equal indices are identical, so keeping the existing entry is fine.
	if _, ok := shard.entries[index]; !ok {
		shard.entries[index] = shard.order.PushFront(&cacheEntry{index: index, sample: copySample(s)})
		for shard.order.Len() > shard.capacity {
			oldest := shard.order.Back()
			shard.order.Remove(oldest)
			delete(shard.entries, oldest.Value.(*cacheEntry).index)
		}
	}
	return s, nil
}

func copySample(s Sample) Sample {
	out := s
	out.Signal = s.Signal.Clone()
	if s.Label.OneHot != nil {
		out.Label.OneHot = append([]float64(nil), s.Label.OneHot...)
	}
	return out
}
