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

// Package badger is the BadgerDB implementation of the attachment store
package badger

import (
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/metrics"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/options"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/status"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/observability/logging"
	"github.com/dgraph-io/badger"
)

// CacheClient implements the cache.Client interface
var _ cache.Client = &CacheClient{}

// CacheClient describes a BadgerDB attachment store client
type CacheClient struct {
	Name   string
	Config *options.Options
	dbh    *badger.DB
}

// New returns a new badger attachment store
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

// Connect opens the configured Badger key-value store.
// Connect is idempotent; repeated calls reuse the open handle.
func (c *CacheClient) Connect() error {
	if c.dbh != nil {
		return nil
	}
	logging.Info("badger store setup", logging.Pairs{"name": c.Name,
		"cacheDir": c.Config.Badger.Directory})
	opts := badger.DefaultOptions(c.Config.Badger.Directory)
	opts.ValueDir = c.Config.Badger.ValueDirectory
	opts.Logger = nil

	dbh, err := badger.Open(opts)
	if err != nil {
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
	return c.dbh.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(cacheKey), data)
	})
}

// Retrieve gets a record from the store using the provided key
func (c *CacheClient) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	if c.dbh == nil {
		return nil, status.LookupStatusError, cache.ErrNotConnected
	}
	var data []byte
	err := c.dbh.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(cacheKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
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
	if c.dbh == nil {
		return cache.ErrNotConnected
	}
	return c.dbh.Update(func(txn *badger.Txn) error {
		for _, k := range cacheKeys {
			if err := txn.Delete([]byte(k)); err != nil {
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
	return c.dbh.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			data, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if !fn(string(item.KeyCopy(nil)), data) {
				return nil
			}
		}
		return nil
	})
}

// Clear removes all records from the store
func (c *CacheClient) Clear() error {
	if c.dbh == nil {
		return cache.ErrNotConnected
	}
	return c.dbh.DropAll()
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
