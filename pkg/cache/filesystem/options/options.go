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

// DefaultCachePath is the default directory for the filesystem attachment store
const DefaultCachePath = "/tmp/attachment-cache"

// Options is a collection of configurations for a filesystem attachment store
type Options struct {
	// CachePath represents the path on disk where the store lives
	CachePath string `yaml:"cache_path,omitempty"`
}

// New returns a reference to a new filesystem Options
func New() *Options {
	return &Options{CachePath: DefaultCachePath}
}
