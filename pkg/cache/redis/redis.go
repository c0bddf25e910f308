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

// Package redis is the Redis implementation of the attachment store.
// Keys are scoped with a configurable prefix so Iterate and Clear only
// touch this store's records within a shared deployment.
package redis

import (
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/metrics"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/options"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/status"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/observability/logging"
	"github.com/go-redis/redis"
)

// CacheClient implements the cache.Client interface
var _ cache.Client = &CacheClient{}

// CacheClient describes a Redis attachment store client
type CacheClient struct {
	Name   string
	Config *options.Options
	client *redis.Client
}

// New returns a new redis attachment store
func New(name string, opts *options.Options) *CacheClient {
	if opts == nil {
		opts = options.New()
	}
	return &CacheClient{Name: name, Config: opts}
}

// Configuration returns the Configuration for the store
func (c *CacheClient) Configuration() *options.Options {
	return c.Config
}

// Connect connects to the configured Redis endpoint.
// Connect is idempotent; repeated calls reuse the open client.
func (c *CacheClient) Connect() error {
	if c.client != nil {
		return nil
	}
	logging.Info("connecting to redis", logging.Pairs{"name": c.Name,
		"endpoint": c.Config.Redis.Endpoint})
	client := redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Endpoint,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})
	if err := client.Ping().Err(); err != nil {
		client.Close()
		return err
	}
	c.client = client
	return nil
}

func (c *CacheClient) scopedKey(cacheKey string) string {
	return c.Config.Redis.KeyPrefix + cacheKey
}

// Store places a record in the store using the provided key
func (c *CacheClient) Store(cacheKey string, data []byte) error {
	if c.client == nil {
		return cache.ErrNotConnected
	}
	metrics.ObserveCacheOperation(c.Name, c.Config.Provider, "set", "none", float64(len(data)))
	return c.client.Set(c.scopedKey(cacheKey), data, 0).Err()
}

// Retrieve gets a record from the store using the provided key
func (c *CacheClient) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	if c.client == nil {
		return nil, status.LookupStatusError, cache.ErrNotConnected
	}
	data, err := c.client.Get(c.scopedKey(cacheKey)).Bytes()
	if err == redis.Nil {
		metrics.ObserveCacheMiss(c.Name, c.Config.Provider)
		return nil, status.LookupStatusKeyMiss, cache.ErrKNF
	}
	if err != nil {
		return nil, status.LookupStatusError, err
	}
	metrics.ObserveCacheOperation(c.Name, c.Config.Provider, "get", "hit", float64(len(data)))
	return data, status.LookupStatusHit, nil
}

// Remove removes the provided keys from the store
func (c *CacheClient) Remove(cacheKeys ...string) error {
	if c.client == nil {
		return cache.ErrNotConnected
	}
	scoped := make([]string, len(cacheKeys))
	for i, k := range cacheKeys {
		scoped[i] = c.scopedKey(k)
		metrics.ObserveCacheOperation(c.Name, c.Config.Provider, "del", "none", 0)
	}
	return c.client.Del(scoped...).Err()
}

// Iterate calls fn for every record in the store until fn returns false
func (c *CacheClient) Iterate(fn func(cacheKey string, data []byte) bool) error {
	if c.client == nil {
		return cache.ErrNotConnected
	}
	keys, err := c.scopedKeys()
	if err != nil {
		return err
	}
	prefixLen := len(c.Config.Redis.KeyPrefix)
	for _, k := range keys {
		data, err := c.client.Get(k).Bytes()
		if err == redis.Nil {
			// a record removed mid-scan is not an error
			continue
		}
		if err != nil {
			return err
		}
		if !fn(k[prefixLen:], data) {
			return nil
		}
	}
	return nil
}

// Clear removes all records from the store
func (c *CacheClient) Clear() error {
	if c.client == nil {
		return cache.ErrNotConnected
	}
	keys, err := c.scopedKeys()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(keys...).Err()
}

func (c *CacheClient) scopedKeys() ([]string, error) {
	var out []string
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(cursor, c.Config.Redis.KeyPrefix+"*", 512).Result()
		if err != nil {
			return nil, err
		}
		out = append(out, keys...)
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}

// Close disconnects from Redis
func (c *CacheClient) Close() error {
	if c.client == nil {
		return nil
	}
	logging.Info("closing redis connection", logging.Pairs{"name": c.Name})
	client := c.client
	c.client = nil
	return client.Close()
}
