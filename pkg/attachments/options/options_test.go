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
	"time"
)

func TestNewDefaults(t *testing.T) {
	o := New()
	if err := o.Validate(); err != nil {
		t.Errorf("default options failed validation: %v", err)
	}
	if o.MaxSizeMB != 100 || o.MaxAgeDays != 30 || o.JPEGQuality != 80 {
		t.Errorf("unexpected defaults: %+v", o)
	}
}

func TestMaxAge(t *testing.T) {
	o := New()
	o.MaxAgeDays = 7
	if o.MaxAge() != 7*24*time.Hour {
		t.Errorf("expected 168h got %s", o.MaxAge())
	}
}

func TestMemoryBudgetBytes(t *testing.T) {
	o := New()
	o.MaxSizeMB = 100
	if o.MemoryBudgetBytes() != 50*1024*1024 {
		t.Errorf("expected half the overall budget got %d", o.MemoryBudgetBytes())
	}
}

func TestValidate(t *testing.T) {
	o := New()
	o.MaxSizeMB = 0
	if err := o.Validate(); err != ErrInvalidBudget {
		t.Errorf("expected ErrInvalidBudget got %v", err)
	}

	o = New()
	o.MaxAgeDays = -1
	if err := o.Validate(); err != ErrInvalidBudget {
		t.Errorf("expected ErrInvalidBudget got %v", err)
	}

	o = New()
	o.PreviewMaxHeight = 0
	if err := o.Validate(); err != ErrInvalidDimensions {
		t.Errorf("expected ErrInvalidDimensions got %v", err)
	}
}

func TestClone(t *testing.T) {
	o := New()
	o.ThumbnailMaxWidth = 128
	c := o.Clone()
	if c.ThumbnailMaxWidth != 128 {
		t.Error("clone did not copy fields")
	}
	c.ThumbnailMaxWidth = 256
	if o.ThumbnailMaxWidth != 128 {
		t.Error("clone aliases the original")
	}
}
