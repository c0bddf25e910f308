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

// Package cache defines the attachment store interfaces and provides
// general cache functionality
package cache

import (
	"errors"

	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/options"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/status"
)

// ErrKNF represents the error "key not found in cache"
var ErrKNF = errors.New("key not found in cache")

// ErrNotConnected is returned when a store operation runs before Connect
var ErrNotConnected = errors.New("store is not connected")

// Client is the interface for the supported durable attachment stores.
// When making new store providers, Retrieve() must return ErrKNF on key miss,
// and Connect() must be idempotent: repeated calls reuse the open handle.
type Client interface {
	Connect() error
	Store(cacheKey string, data []byte) error
	Retrieve(cacheKey string) ([]byte, status.LookupStatus, error)
	Remove(cacheKeys ...string) error
	// Iterate calls fn for every record in the store, in unspecified order,
	// until fn returns false or the scan completes. It is a cold path used
	// for expiry sweeps and statistics.
	Iterate(fn func(cacheKey string, data []byte) bool) error
	Clear() error
	Close() error
	Configuration() *options.Options
}
