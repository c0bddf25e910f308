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

// Package registry handles construction of attachment store implementations
// from their configured provider
package registry

import (
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/badger"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/bbolt"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/filesystem"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/options"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/providers"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/redis"
)

// NewStore returns an unconnected attachment store based on the provided
// options; the caller owns Connect and Close
func NewStore(name string, opts *options.Options) cache.Client {
	if opts == nil {
		opts = options.New()
	}
	switch opts.ProviderID {
	case providers.FilesystemID:
		return filesystem.New(name, opts)
	case providers.BadgerDBID:
		return badger.New(name, opts)
	case providers.RedisID:
		return redis.New(name, opts)
	default:
		return bbolt.New(name, opts)
	}
}
