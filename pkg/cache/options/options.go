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

package options

import (
	"errors"
	"strings"

	badger "github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/badger/options"
	bbolt "github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/bbolt/options"
	filesystem "github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/filesystem/options"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/providers"
	redis "github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/redis/options"
)

// DefaultProvider is the attachment store provider used when none is configured
const DefaultProvider = providers.BBolt

var (
	// ErrInvalidName is returned when a store options name is empty or reserved
	ErrInvalidName = errors.New("invalid store name")
	// ErrInvalidProvider is returned when the configured provider is not registered
	ErrInvalidProvider = errors.New("invalid store provider")
)

// Options is a collection of configurations defining the attachment store behavior
type Options struct {
	// Name is the name of the store, taken from the key in the Stores lookup
	Name string `yaml:"-"`
	// Provider represents the type of durable store we wish to use:
	// "bbolt", "filesystem", "badger" or "redis"
	Provider string `yaml:"provider,omitempty"`
	// Compression indicates whether serialized records are snappy-compressed at rest
	Compression bool `yaml:"compression,omitempty"`
	// BBolt provides options for BBolt-backed storage
	BBolt *bbolt.Options `yaml:"bbolt,omitempty"`
	// Filesystem provides options for filesystem-backed storage
	Filesystem *filesystem.Options `yaml:"filesystem,omitempty"`
	// Badger provides options for BadgerDB-backed storage
	Badger *badger.Options `yaml:"badger,omitempty"`
	// Redis provides options for Redis-backed storage
	Redis *redis.Options `yaml:"redis,omitempty"`

	// ProviderID is the internal constant for the configured Provider string,
	// populated during Initialize
	ProviderID providers.Provider `yaml:"-"`
}

// New returns a pointer to an Options with the default configuration settings
func New() *Options {
	return &Options{
		Provider:    DefaultProvider,
		ProviderID:  providers.BBoltID,
		Compression: true,
		BBolt:       bbolt.New(),
		Filesystem:  filesystem.New(),
		Badger:      badger.New(),
		Redis:       redis.New(),
	}
}

// Clone returns an exact copy of the subject Options
func (o *Options) Clone() *Options {
	out := New()
	out.Name = o.Name
	out.Provider = o.Provider
	out.ProviderID = o.ProviderID
	out.Compression = o.Compression

	out.BBolt.Filename = o.BBolt.Filename
	out.BBolt.Bucket = o.BBolt.Bucket

	out.Filesystem.CachePath = o.Filesystem.CachePath

	out.Badger.Directory = o.Badger.Directory
	out.Badger.ValueDirectory = o.Badger.ValueDirectory

	out.Redis.Endpoint = o.Redis.Endpoint
	out.Redis.Password = o.Redis.Password
	out.Redis.DB = o.Redis.DB
	out.Redis.KeyPrefix = o.Redis.KeyPrefix

	return out
}

// Initialize sets up the Options with default values for any sub-options
// left unset during YAML unmarshaling, and resolves the ProviderID
func (o *Options) Initialize(name string) error {
	o.Name = name
	if o.Provider == "" {
		o.Provider = DefaultProvider
	}
	o.Provider = strings.ToLower(o.Provider)
	id, ok := providers.Names[o.Provider]
	if !ok {
		return ErrInvalidProvider
	}
	o.ProviderID = id

	if o.BBolt == nil {
		o.BBolt = bbolt.New()
	}
	if o.Filesystem == nil {
		o.Filesystem = filesystem.New()
	}
	if o.Badger == nil {
		o.Badger = badger.New()
	}
	if o.Redis == nil {
		o.Redis = redis.New()
	}
	return nil
}

// Validate confirms the Options are usable
func (o *Options) Validate() error {
	if o.Name == "" || o.Name == "none" {
		return ErrInvalidName
	}
	if !providers.IsValid(strings.ToLower(o.Provider)) {
		return ErrInvalidProvider
	}
	return nil
}
