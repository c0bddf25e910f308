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

const (
	// DefaultEndpoint is the default Redis endpoint for the attachment store
	DefaultEndpoint = "redis:6379"
	// DefaultKeyPrefix scopes this store's keys within a shared Redis deployment
	DefaultKeyPrefix = "attachment-cache:"
)

// Options is a collection of configurations for a Redis attachment store
type Options struct {
	// Endpoint represents the host:port of the Redis server
	Endpoint string `yaml:"endpoint,omitempty"`
	// Password can be set when the Redis server requires a password
	Password string `yaml:"password,omitempty"`
	// DB is the Database to be selected after connecting to the server
	DB int `yaml:"db,omitempty"`
	// KeyPrefix is prepended to every key so Iterate and Clear only
	// touch this store's records
	KeyPrefix string `yaml:"key_prefix,omitempty"`
}

// New returns a reference to a new redis Options
func New() *Options {
	return &Options{Endpoint: DefaultEndpoint, KeyPrefix: DefaultKeyPrefix}
}
