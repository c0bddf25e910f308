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
	"testing"

	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/providers"
)

func TestNewDefaults(t *testing.T) {
	o := New()
	if o.Provider != providers.BBolt || o.ProviderID != providers.BBoltID {
		t.Errorf("unexpected default provider %s/%d", o.Provider, o.ProviderID)
	}
	if !o.Compression {
		t.Error("expected compression on by default")
	}
	if o.BBolt == nil || o.Filesystem == nil || o.Badger == nil || o.Redis == nil {
		t.Error("expected all sub-options to be populated")
	}
}

func TestClone(t *testing.T) {
	o := New()
	o.Name = "test"
	o.Provider = providers.Redis
	o.Redis.Endpoint = "localhost:6379"

	c := o.Clone()
	if c.Name != o.Name || c.Provider != o.Provider ||
		c.Redis.Endpoint != o.Redis.Endpoint {
		t.Error("clone did not copy fields")
	}
	c.Redis.Endpoint = "changed"
	if o.Redis.Endpoint == "changed" {
		t.Error("clone shares sub-option pointers with original")
	}
}

func TestInitialize(t *testing.T) {
	o := &Options{Provider: "BADGER"}
	if err := o.Initialize("test"); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if o.Name != "test" || o.ProviderID != providers.BadgerDBID {
		t.Errorf("unexpected result: %s/%d", o.Name, o.ProviderID)
	}
	if o.BBolt == nil || o.Badger == nil {
		t.Error("expected sub-options to be defaulted")
	}

	o = &Options{}
	if err := o.Initialize("test"); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if o.Provider != DefaultProvider {
		t.Errorf("expected default provider got %s", o.Provider)
	}

	o = &Options{Provider: "leveldb"}
	if err := o.Initialize("test"); err != ErrInvalidProvider {
		t.Errorf("expected ErrInvalidProvider got %v", err)
	}
}

func TestValidate(t *testing.T) {
	o := New()
	o.Name = "test"
	if err := o.Validate(); err != nil {
		t.Errorf("validate failed: %v", err)
	}

	o.Name = ""
	if err := o.Validate(); err != ErrInvalidName {
		t.Errorf("expected ErrInvalidName got %v", err)
	}

	o.Name = "test"
	o.Provider = "leveldb"
	if err := o.Validate(); err != ErrInvalidProvider {
		t.Errorf("expected ErrInvalidProvider got %v", err)
	}
}
