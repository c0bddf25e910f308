/*
 * Copyright 2024 The Ascendore Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package memory provides the bounded in-process blob cache that fronts the
// durable attachment store. Eviction is byte-budgeted strict LRU: inserting
// a blob first removes least-recently-accessed entries until the new blob
// fits the budget. Eviction makes room but does not guarantee fit; a blob
// larger than the entire budget is still inserted.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/metrics"
)

const provider = "memory"

// Object contains a resident blob and its access-recency metadata
type Object struct {
	// Key is the accessor of the Object in the cache
	Key string
	// Value is the blob held by the Object
	Value []byte
	// Expiration is the absolute expiry of the Object; zero means no expiry
	Expiration time.Time
	// LastAccess is the time the Object was last read or written
	LastAccess time.Time
	// seq orders Objects by access recency; identical LastAccess timestamps
	// break deterministically toward the earliest-touched entry
	seq uint64
}

// Size returns the byte size of the Object's blob
func (o *Object) Size() int64 {
	return int64(len(o.Value))
}

// Cache is a byte-budgeted LRU blob cache
type Cache struct {
	// Name identifies the Cache in logs and metrics
	Name string

	mtx       sync.Mutex
	objects   map[string]*Object
	size      int64
	maxSize   int64
	accessSeq uint64
}

// New returns a new memory Cache with the provided byte budget.
// A budget of 0 or less disables eviction (the cache is unbounded).
func New(name string, maxSizeBytes int64) *Cache {
	metrics.ObserveCacheSizeLimit(name, provider, maxSizeBytes)
	return &Cache{
		Name:    name,
		objects: make(map[string]*Object),
		maxSize: maxSizeBytes,
	}
}

// Store places a blob in the Cache under the provided key, evicting
// least-recently-accessed entries as needed to honor the byte budget.
// A zero expiresAt means the blob does not expire.
func (c *Cache) Store(cacheKey string, value []byte, expiresAt time.Time) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if old, ok := c.objects[cacheKey]; ok {
		c.size -= old.Size()
		delete(c.objects, cacheKey)
	}

	if c.maxSize > 0 && c.size+int64(len(value)) > c.maxSize && len(c.objects) > 0 {
		c.evict(int64(len(value)))
	}

	c.accessSeq++
	o := &Object{Key: cacheKey, Value: value, Expiration: expiresAt,
		LastAccess: time.Now(), seq: c.accessSeq}
	c.objects[cacheKey] = o
	c.size += o.Size()
	metrics.ObserveCacheOperation(c.Name, provider, "set", "none", float64(len(value)))
	metrics.ObserveCacheSizeChange(c.Name, provider, c.size, int64(len(c.objects)))
}

// evict removes least-recently-accessed Objects until incomingBytes fits
// within the budget, or the cache is empty. Caller holds the lock.
func (c *Cache) evict(incomingBytes int64) {
	candidates := make(objectsAtime, 0, len(c.objects))
	for _, o := range c.objects {
		candidates = append(candidates, o)
	}
	sort.Sort(candidates)

	var evicted int64
	for _, o := range candidates {
		if c.size+incomingBytes <= c.maxSize {
			break
		}
		delete(c.objects, o.Key)
		c.size -= o.Size()
		evicted++
		metrics.ObserveCacheOperation(c.Name, provider, "del", "none", float64(o.Size()))
	}
	if evicted > 0 {
		metrics.ObserveCacheEvent(c.Name, provider, "eviction", "size_bytes")
	}
}

// Retrieve looks up a blob in the Cache, updating its access recency on
// hit. A blob whose expiration has passed relative to now is removed and
// reads as a miss.
func (c *Cache) Retrieve(cacheKey string, now time.Time) ([]byte, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	o, ok := c.objects[cacheKey]
	if !ok {
		metrics.ObserveCacheMiss(c.Name, provider)
		return nil, false
	}
	if !o.Expiration.IsZero() && now.After(o.Expiration) {
		c.size -= o.Size()
		delete(c.objects, cacheKey)
		metrics.ObserveCacheEvent(c.Name, provider, "eviction", "ttl")
		metrics.ObserveCacheMiss(c.Name, provider)
		return nil, false
	}
	c.accessSeq++
	o.seq = c.accessSeq
	o.LastAccess = time.Now()
	metrics.ObserveCacheOperation(c.Name, provider, "get", "hit", float64(o.Size()))
	return o.Value, true
}

// Remove removes the provided keys from the Cache
func (c *Cache) Remove(cacheKeys ...string) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	for _, k := range cacheKeys {
		if o, ok := c.objects[k]; ok {
			c.size -= o.Size()
			delete(c.objects, k)
			metrics.ObserveCacheOperation(c.Name, provider, "del", "none", float64(o.Size()))
		}
	}
	metrics.ObserveCacheSizeChange(c.Name, provider, c.size, int64(len(c.objects)))
}

// Clear removes all Objects from the Cache
func (c *Cache) Clear() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.objects = make(map[string]*Object)
	c.size = 0
	metrics.ObserveCacheSizeChange(c.Name, provider, 0, 0)
}

// Len returns the count of Objects resident in the Cache
func (c *Cache) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return len(c.objects)
}

// Size returns the total byte size of the blobs resident in the Cache
func (c *Cache) Size() int64 {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.size
}

type objectsAtime []*Object

func (o objectsAtime) Len() int { return len(o) }

// Less orders by access sequence, which agrees with LastAccess and breaks
// timestamp ties deterministically
func (o objectsAtime) Less(i, j int) bool { return o[i].seq < o[j].seq }

func (o objectsAtime) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
