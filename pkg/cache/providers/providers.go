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

// Package providers enumerates the supported attachment store providers
package providers

import "strconv"

// Provider enumerates the attachment store providers
type Provider int

const (
	// BBoltID indicates a BBolt attachment store
	BBoltID = Provider(iota)
	// FilesystemID indicates a filesystem attachment store
	FilesystemID
	// BadgerDBID indicates a BadgerDB attachment store
	BadgerDBID
	// RedisID indicates a Redis attachment store
	RedisID

	BBolt      = "bbolt"
	Filesystem = "filesystem"
	BadgerDB   = "badger"
	Redis      = "redis"
)

// Names is a map of store providers keyed by name
var Names = map[string]Provider{
	BBolt:      BBoltID,
	Filesystem: FilesystemID,
	BadgerDB:   BadgerDBID,
	Redis:      RedisID,
}

// Values is a map of store providers keyed by internal id
var Values = make(map[Provider]string)

func init() {
	for k, v := range Names {
		Values[v] = k
	}
}

func (p Provider) String() string {
	if v, ok := Values[p]; ok {
		return v
	}
	return strconv.Itoa(int(p))
}

// IsValid returns true if the providerName is a registered store provider
// providerName is expected to already be lowercase/no-space
func IsValid(providerName string) bool {
	_, ok := Names[providerName]
	return ok
}
