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

// Package locks provides Named Locks functionality for managing
// mutexes by string name (e.g., attachment ids)
package locks

import (
	"fmt"
	"sync"
)

// NamedLocker provides a locker for handling Named Locks
type NamedLocker interface {
	Acquire(lockName string) (NamedLock, error)
}

// NamedLock defines the interface for implementing Named Locks
type NamedLock interface {
	Release()
}

// NewNamedLocker returns a new Named Locker
func NewNamedLocker() NamedLocker {
	return &namedLocker{locks: make(map[string]*namedLock)}
}

type namedLocker struct {
	locks   map[string]*namedLock
	mapLock sync.Mutex
}

type namedLock struct {
	sync.Mutex
	name      string
	queueSize int
	locker    *namedLocker
}

// Acquire locks the named lock, creating it on first use, and blocks until
// the lock is held. The lock entry is removed from the map once the last
// holder releases, so the map only holds names with active contention.
func (lk *namedLocker) Acquire(lockName string) (NamedLock, error) {
	if lockName == "" {
		return nil, fmt.Errorf("invalid lock name: %s", lockName)
	}
	lk.mapLock.Lock()
	nl, ok := lk.locks[lockName]
	if !ok {
		nl = &namedLock{name: lockName, locker: lk}
		lk.locks[lockName] = nl
	}
	nl.queueSize++
	lk.mapLock.Unlock()

	nl.Lock()
	return nl, nil
}

// Release releases the subject Named Lock
func (nl *namedLock) Release() {
	nl.locker.mapLock.Lock()
	nl.queueSize--
	if nl.queueSize == 0 {
		delete(nl.locker.locks, nl.name)
	}
	nl.locker.mapLock.Unlock()
	nl.Unlock()
}
