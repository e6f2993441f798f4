package lru

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/jchoker/lru/simplelru"
)

type traceEntry struct {
	k string
	v int64
}

func makeTrace(n int) []traceEntry {
	rng := rand.New(rand.NewSource(1))

	trace := make([]traceEntry, n)
	for i := range trace {
		k := rng.Intn(n/2 + 1)
		trace[i] = traceEntry{k: strconv.Itoa(k), v: int64(k)}
	}
	return trace
}

func TestNewSharded(t *testing.T) {
	c, err := NewSharded[int64](4096, 16)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if c.Cap() != 4096 {
		t.Fatalf("bad cap: %v", c.Cap())
	}

	for i := 0; i < 1024; i++ {
		c.Put(strconv.Itoa(i), int64(i))
	}
	if c.Len() != 1024 {
		t.Fatalf("bad len: %v", c.Len())
	}

	for i := 0; i < 1024; i++ {
		k := strconv.Itoa(i)
		if v, err := c.Get(k); err != nil || v != int64(i) {
			t.Fatalf("bad key %s: %v, %v", k, v, err)
		}
	}
	if _, err := c.Get("missing"); !errors.Is(err, simplelru.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	if !c.Remove("7") {
		t.Fatalf("7 should have been present")
	}
	if c.Contains("7") {
		t.Fatalf("7 should be gone")
	}

	c.Purge()
	if c.Len() != 0 {
		t.Fatalf("bad len: %v", c.Len())
	}
}

func TestNewSharded_Defaults(t *testing.T) {
	// A non-positive shard count falls back to the default, and the total
	// size is rounded to a multiple of it.
	c, err := NewSharded[int64](1000, 0)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if c.Cap()%defaultShardCount != 0 {
		t.Fatalf("cap %d not a multiple of shard count", c.Cap())
	}
}

func TestSharded_ContainsOrPut(t *testing.T) {
	c, err := NewSharded[int64](16, 2)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if ok, evicted := c.ContainsOrPut("a", 1); ok || evicted {
		t.Errorf("first add: contained %v evicted %v", ok, evicted)
	}
	if ok, evicted := c.ContainsOrPut("a", 100); !ok || evicted {
		t.Errorf("existing key should be reported contained")
	}
	if v, _ := c.Peek("a"); v != 1 {
		t.Errorf("ContainsOrPut must not overwrite, got %v", v)
	}
}

func TestSharded_PeekOrPut(t *testing.T) {
	c, err := NewSharded[int64](16, 2)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if prev, ok, evicted := c.PeekOrPut("a", 1); ok || evicted || prev != 0 {
		t.Errorf("first add: %v, %v, %v", prev, ok, evicted)
	}
	if prev, ok, evicted := c.PeekOrPut("a", 100); !ok || evicted || prev != 1 {
		t.Errorf("existing key: %v, %v, %v", prev, ok, evicted)
	}
	if v, _ := c.Peek("a"); v != 1 {
		t.Errorf("PeekOrPut must not overwrite, got %v", v)
	}
}

func TestSharded_PerShardEviction(t *testing.T) {
	evictCounter := 0
	c, err := NewShardedWithEvict[int64](4, 2, func(k string, v int64) { evictCounter++ })
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	for i := 0; i < 64; i++ {
		c.Put(strconv.Itoa(i), int64(i))
		if c.Len() > c.Cap() {
			t.Fatalf("len %d exceeds capacity %d", c.Len(), c.Cap())
		}
	}
	if evictCounter == 0 {
		t.Fatalf("expected evictions")
	}
}

func BenchmarkShardedCache(b *testing.B) {
	c, err := NewSharded[int64](128*1024, defaultShardCount)
	if err != nil {
		b.Fatalf("err: %v", err)
	}

	trace := makeTrace(b.N * 2)

	b.ResetTimer()

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		seed := rand.Intn(len(trace))

		var hit, miss int
		i := seed
		for pb.Next() {
			// use a predictable if rather than % len(trace) to eek a little more perf out
			if i >= len(trace) {
				i = 0
			}

			t := trace[i]
			if i%2 == 0 {
				c.Put(t.k, t.v)
			} else {
				if _, err := c.Get(t.k); err == nil {
					hit++
				} else {
					miss++
				}
			}

			i++
		}
		// b.Logf("hit: %d miss: %d ratio: %f", hit, miss, float64(hit)/float64(miss))
	})
}
