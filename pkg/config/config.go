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

// Package config provides YAML-based configuration for the attachment cache
// service, composing the store, derivation and logging option sets
package config

import (
	"errors"
	"os"

	attach "github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/attachments/options"
	cache "github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/options"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/observability/logging"
	"gopkg.in/yaml.v3"
)

// DefaultStoreName is the store key used when the configuration names none
const DefaultStoreName = "default"

// ErrNoStores is returned when a processed configuration contains no stores
var ErrNoStores = errors.New("no stores configured")

// Config is the root configuration object for the attachment cache service
type Config struct {
	// Stores is a map of store names to store configurations; each named
	// store backs one independent cache service
	Stores map[string]*cache.Options `yaml:"stores,omitempty"`
	// Attachments configures budgets, TTL and derivative bounding boxes
	Attachments *attach.Options `yaml:"attachments,omitempty"`
	// Logging configures the process logger
	Logging *logging.Options `yaml:"logging,omitempty"`
}

// New returns a Config with a single default store and default settings
func New() *Config {
	c := &Config{
		Stores:      map[string]*cache.Options{DefaultStoreName: cache.New()},
		Attachments: attach.New(),
		Logging:     logging.NewOptions(),
	}
	c.Stores[DefaultStoreName].Name = DefaultStoreName
	return c
}

// Load reads, parses and validates the YAML configuration at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	c := New()
	// a fresh Stores map so configured stores are not merged over the default
	c.Stores = nil
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if err := c.process(); err != nil {
		return nil, err
	}
	return c, nil
}

// process applies defaults to unset sub-options and validates the result
func (c *Config) process() error {
	if len(c.Stores) == 0 {
		c.Stores = map[string]*cache.Options{DefaultStoreName: cache.New()}
	}
	for name, o := range c.Stores {
		if o == nil {
			o = cache.New()
			c.Stores[name] = o
		}
		if err := o.Initialize(name); err != nil {
			return err
		}
		if err := o.Validate(); err != nil {
			return err
		}
	}
	if c.Attachments == nil {
		c.Attachments = attach.New()
	}
	if err := c.Attachments.Validate(); err != nil {
		return err
	}
	if c.Logging == nil {
		c.Logging = logging.NewOptions()
	}
	return nil
}

// Validate confirms the Config is usable
func (c *Config) Validate() error {
	if len(c.Stores) == 0 {
		return ErrNoStores
	}
	for _, o := range c.Stores {
		if err := o.Validate(); err != nil {
			return err
		}
	}
	return c.Attachments.Validate()
}
