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

package badger

import (
	"bytes"
	"testing"

	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/options"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/status"
)

func newTestClient(t *testing.T) *CacheClient {
	t.Helper()
	dir := t.TempDir()
	o := options.New()
	o.Badger.Directory = dir
	o.Badger.ValueDirectory = dir
	c := New("test", o)
	if err := c.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestStoreRetrieveRemove(t *testing.T) {
	c := newTestClient(t)
	if err := c.Store("att1", []byte("data")); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	data, ls, err := c.Retrieve("att1")
	if err != nil {
		t.Fatalf("retrieve failed: %v", err)
	}
	if ls != status.LookupStatusHit || !bytes.Equal(data, []byte("data")) {
		t.Errorf("unexpected result: %s %q", ls, string(data))
	}
	if err := c.Remove("att1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ls, err := c.Retrieve("att1"); err != cache.ErrKNF ||
		ls != status.LookupStatusKeyMiss {
		t.Errorf("expected ErrKNF/kmiss got %v/%s", err, ls)
	}
}

func TestIterate(t *testing.T) {
	c := newTestClient(t)
	c.Store("a", []byte("1"))
	c.Store("b", []byte("2"))

	seen := make(map[string]string)
	err := c.Iterate(func(k string, v []byte) bool {
		seen[k] = string(v)
		return true
	})
	if err != nil {
		t.Fatalf("iterate failed: %v", err)
	}
	if len(seen) != 2 || seen["a"] != "1" || seen["b"] != "2" {
		t.Errorf("unexpected scan result: %v", seen)
	}
}

func TestClear(t *testing.T) {
	c := newTestClient(t)
	c.Store("a", []byte("1"))
	if err := c.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, _, err := c.Retrieve("a"); err != cache.ErrKNF {
		t.Errorf("expected ErrKNF got %v", err)
	}
}

func TestNotConnected(t *testing.T) {
	o := options.New()
	o.Badger.Directory = t.TempDir()
	o.Badger.ValueDirectory = o.Badger.Directory
	c := New("test", o)
	if err := c.Store("k", nil); err != cache.ErrNotConnected {
		t.Errorf("expected ErrNotConnected got %v", err)
	}
}
