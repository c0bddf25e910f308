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

// Package bbolt is the bbolt implementation of the attachment store
package bbolt

import (
	"fmt"
	"time"

	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/metrics"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/options"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/status"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/observability/logging"
	"go.etcd.io/bbolt"
)

// CacheClient implements the cache.Client interface
var _ cache.Client = &CacheClient{}

// CacheClient describes a BBolt attachment store client
type CacheClient struct {
	Name   string
	Config *options.Options
	dbh    *bbolt.DB
}

// New returns a new bbolt attachment store
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

// Connect opens the configured BBolt database and ensures the bucket exists.
// Connect is idempotent; repeated calls reuse the open handle.
func (c *CacheClient) Connect() error {
	if c.dbh != nil {
		return nil
	}
	logging.Info("bbolt store setup", logging.Pairs{"name": c.Name,
		"cacheFile": c.Config.BBolt.Filename})
	dbh, err := bbolt.Open(c.Config.BBolt.Filename, 0o644, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return err
	}
	err = dbh.Update(func(tx *bbolt.Tx) error {
		_, err2 := tx.CreateBucketIfNotExists([]byte(c.Config.BBolt.Bucket))
		if err2 != nil {
			return fmt.Errorf("create bucket: %w", err2)
		}
		return nil
	})
	if err != nil {
		dbh.Close()
		return err
	}
	c.dbh = dbh
	return nil
}

// Store places a record in the store using the provided key
func (c *CacheClient) Store(cacheKey string, data []byte) error {
	if c.dbh == nil {
		return cache.ErrNotConnected
	}
	metrics.ObserveCacheOperation(c.Name, c.Config.Provider, "set", "none", float64(len(data)))
	return c.dbh.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(c.Config.BBolt.Bucket))
		return b.Put([]byte(cacheKey), data)
	})
}

// Retrieve gets a record from the store using the provided key
func (c *CacheClient) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	if c.dbh == nil {
		return nil, status.LookupStatusError, cache.ErrNotConnected
	}
	var data []byte
	err := c.dbh.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(c.Config.BBolt.Bucket))
		v := b.Get([]byte(cacheKey))
		if v == nil {
			return cache.ErrKNF
		}
		// v is only valid inside the transaction
		data = make([]byte, len(v))
		copy(data, v)
		return nil
	})
	if err == cache.ErrKNF {
		metrics.ObserveCacheMiss(c.Name, c.Config.Provider)
		return nil, status.LookupStatusKeyMiss, err
	}
	if err != nil {
		return nil, status.LookupStatusError, err
	}
	metrics.ObserveCacheOperation(c.Name, c.Config.Provider, "get", "hit", float64(len(data)))
	return data, status.LookupStatusHit, nil
}

// Remove removes the provided keys from the store
func (c *CacheClient) Remove(cacheKeys ...string) error {
	if c.dbh == nil {
		return cache.ErrNotConnected
	}
	return c.dbh.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(c.Config.BBolt.Bucket))
		for _, k := range cacheKeys {
			if err := b.Delete([]byte(k)); err != nil {
				return err
			}
			metrics.ObserveCacheOperation(c.Name, c.Config.Provider, "del", "none", 0)
		}
		return nil
	})
}

// Iterate calls fn for every record in the store until fn returns false
func (c *CacheClient) Iterate(fn func(cacheKey string, data []byte) bool) error {
	if c.dbh == nil {
		return cache.ErrNotConnected
	}
	stop := fmt.Errorf("iteration stopped")
	err := c.dbh.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(c.Config.BBolt.Bucket))
		return b.ForEach(func(k, v []byte) error {
			data := make([]byte, len(v))
			copy(data, v)
			if !fn(string(k), data) {
				return stop
			}
			return nil
		})
	})
	if err == stop {
		return nil
	}
	return err
}

// Clear removes all records from the store
func (c *CacheClient) Clear() error {
	if c.dbh == nil {
		return cache.ErrNotConnected
	}
	return c.dbh.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(c.Config.BBolt.Bucket)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(c.Config.BBolt.Bucket))
		return err
	})
}

// Close closes the store and the underlying database handle
func (c *CacheClient) Close() error {
	if c.dbh == nil {
		return nil
	}
	dbh := c.dbh
	c.dbh = nil
	return dbh.Close()
}
