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

package filesystem

import (
	"bytes"
	"testing"

	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/options"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/status"
)

func newTestClient(t *testing.T) *CacheClient {
	t.Helper()
	o := options.New()
	o.Filesystem.CachePath = t.TempDir()
	c := New("test", o)
	if err := c.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
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
	if _, _, err := c.Retrieve("att1"); err != cache.ErrKNF {
		t.Errorf("expected ErrKNF got %v", err)
	}
}

func TestEmptyKeyRejected(t *testing.T) {
	c := newTestClient(t)
	if err := c.Store("", []byte("data")); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestKeyEscaping(t *testing.T) {
	c := newTestClient(t)
	keys := []string{
		"plain",
		"msg/123/att.jpg",
		"..\\traversal",
		"dotted.name.ext",
		// literal escape sequences must round-trip unchanged and must not
		// collide with the keys they would otherwise encode
		"a~1",
		"a/",
		"tilde~key~4x",
		"~0",
	}
	for _, k := range keys {
		if err := c.Store(k, []byte(k)); err != nil {
			t.Fatalf("store %q failed: %v", k, err)
		}
	}
	seen := make(map[string]bool)
	err := c.Iterate(func(k string, v []byte) bool {
		if string(v) != k {
			t.Errorf("key %q round-tripped with wrong value %q", k, string(v))
		}
		seen[k] = true
		return true
	})
	if err != nil {
		t.Fatalf("iterate failed: %v", err)
	}
	for _, k := range keys {
		if !seen[k] {
			t.Errorf("key %q missing from scan", k)
		}
		data, _, err := c.Retrieve(k)
		if err != nil || string(data) != k {
			t.Errorf("key %q retrieved %q, %v", k, string(data), err)
		}
	}
}

func TestRemoveMissingKeyTolerated(t *testing.T) {
	c := newTestClient(t)
	if err := c.Remove("nope"); err != nil {
		t.Errorf("remove of missing key failed: %v", err)
	}
}

func TestClear(t *testing.T) {
	c := newTestClient(t)
	c.Store("a", []byte("1"))
	c.Store("b", []byte("2"))
	if err := c.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	count := 0
	c.Iterate(func(k string, v []byte) bool { count++; return true })
	if count != 0 {
		t.Errorf("expected empty store got %d records", count)
	}
}

func TestNotConnected(t *testing.T) {
	o := options.New()
	o.Filesystem.CachePath = t.TempDir()
	c := New("test", o)
	if err := c.Store("k", nil); err != cache.ErrNotConnected {
		t.Errorf("expected ErrNotConnected got %v", err)
	}
}

func TestCloseThenReconnect(t *testing.T) {
	c := newTestClient(t)
	c.Store("k", []byte("v"))
	if err := c.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, _, err := c.Retrieve("k"); err != cache.ErrNotConnected {
		t.Errorf("expected ErrNotConnected after close got %v", err)
	}
	if err := c.Connect(); err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
	data, _, err := c.Retrieve("k")
	if err != nil || string(data) != "v" {
		t.Errorf("record not durable across reconnect: %q %v", string(data), err)
	}
}
