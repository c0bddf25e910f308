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

// Package filesystem is the filesystem implementation of the attachment store
package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/metrics"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/options"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/status"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/observability/logging"
)

// CacheClient implements the cache.Client interface
var _ cache.Client = &CacheClient{}

const dataSuffix = ".data"

// "~" is escaped first so a key containing a literal escape sequence
// round-trips; ".." is listed before "." so it wins the match
var keyEscaper = strings.NewReplacer("~", "~0", "/", "~1", "\\", "~2", "..", "~3", ".", "~4")
var keyUnescaper = strings.NewReplacer("~0", "~", "~1", "/", "~2", "\\", "~3", "..", "~4", ".")

// CacheClient describes a filesystem attachment store client
type CacheClient struct {
	Name      string
	Config    *options.Options
	connected bool
}

// New returns a new filesystem attachment store
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

// Connect creates the store directory and verifies it is writeable.
// Connect is idempotent.
func (c *CacheClient) Connect() error {
	if c.connected {
		return nil
	}
	logging.Info("filesystem store setup", logging.Pairs{"name": c.Name,
		"cachePath": c.Config.Filesystem.CachePath})
	if err := makeDirectory(c.Config.Filesystem.CachePath); err != nil {
		return err
	}
	c.connected = true
	return nil
}

// Store places a record in the store using the provided key
func (c *CacheClient) Store(cacheKey string, data []byte) error {
	if !c.connected {
		return cache.ErrNotConnected
	}
	if cacheKey == "" {
		return errors.New("cacheKey required")
	}
	metrics.ObserveCacheOperation(c.Name, c.Config.Provider, "set", "none", float64(len(data)))
	return os.WriteFile(c.getFileName(cacheKey), data, os.FileMode(0o644))
}

// Retrieve gets a record from the store using the provided key
func (c *CacheClient) Retrieve(cacheKey string) ([]byte, status.LookupStatus, error) {
	if !c.connected {
		return nil, status.LookupStatusError, cache.ErrNotConnected
	}
	data, err := os.ReadFile(c.getFileName(cacheKey))
	if err != nil {
		if os.IsNotExist(err) {
			metrics.ObserveCacheMiss(c.Name, c.Config.Provider)
			return nil, status.LookupStatusKeyMiss, cache.ErrKNF
		}
		return nil, status.LookupStatusError, err
	}
	metrics.ObserveCacheOperation(c.Name, c.Config.Provider, "get", "hit", float64(len(data)))
	return data, status.LookupStatusHit, nil
}

// Remove removes the provided keys from the store
func (c *CacheClient) Remove(cacheKeys ...string) error {
	if !c.connected {
		return cache.ErrNotConnected
	}
	for _, k := range cacheKeys {
		if err := os.Remove(c.getFileName(k)); err != nil && !os.IsNotExist(err) {
			return err
		}
		metrics.ObserveCacheOperation(c.Name, c.Config.Provider, "del", "none", 0)
	}
	return nil
}

// Iterate calls fn for every record in the store until fn returns false
func (c *CacheClient) Iterate(fn func(cacheKey string, data []byte) bool) error {
	if !c.connected {
		return cache.ErrNotConnected
	}
	entries, err := os.ReadDir(c.Config.Filesystem.CachePath)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), dataSuffix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.Config.Filesystem.CachePath, e.Name()))
		if err != nil {
			// a record removed mid-scan is not an error
			if os.IsNotExist(err) {
				continue
			}
			return err
		}
		key := keyUnescaper.Replace(strings.TrimSuffix(e.Name(), dataSuffix))
		if !fn(key, data) {
			return nil
		}
	}
	return nil
}

// Clear removes all records from the store
func (c *CacheClient) Clear() error {
	if !c.connected {
		return cache.ErrNotConnected
	}
	entries, err := os.ReadDir(c.Config.Filesystem.CachePath)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), dataSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(c.Config.Filesystem.CachePath, e.Name())); err != nil &&
			!os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Close closes the store
func (c *CacheClient) Close() error {
	c.connected = false
	return nil
}

func (c *CacheClient) getFileName(cacheKey string) string {
	return filepath.Join(c.Config.Filesystem.CachePath, keyEscaper.Replace(cacheKey)+dataSuffix)
}

// makeDirectory creates a directory on the filesystem and verifies it is
// writeable by touching a probe file
func makeDirectory(path string) error {
	err := os.MkdirAll(path, 0o755)
	if err == nil {
		tf := filepath.Join(path, ".test."+strconv.FormatInt(time.Now().Unix(), 10))
		err = os.WriteFile(tf, []byte(""), 0o600)
		if err == nil {
			os.Remove(tf)
		}
	}
	if err != nil {
		return fmt.Errorf("[%s] directory is not writeable by the attachment store: %w", path, err)
	}
	return nil
}
