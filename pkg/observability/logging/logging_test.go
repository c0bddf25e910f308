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

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "warn")

	l.Debug("debug event", Pairs{"k": "v"})
	l.Info("info event", Pairs{"k": "v"})
	l.Warn("warn event", Pairs{"k": "v"})
	l.Error("error event", Pairs{"k": "v"})

	out := buf.String()
	if strings.Contains(out, "debug event") || strings.Contains(out, "info event") {
		t.Errorf("events below warn were not filtered: %s", out)
	}
	if !strings.Contains(out, "warn event") || !strings.Contains(out, "error event") {
		t.Errorf("warn/error events missing: %s", out)
	}
}

func TestEventAndPairsRendered(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "info")
	l.Info("store setup", Pairs{"provider": "bbolt"})

	out := buf.String()
	if !strings.Contains(out, "event=\"store setup\"") {
		t.Errorf("event key missing: %s", out)
	}
	if !strings.Contains(out, "provider=bbolt") {
		t.Errorf("detail pair missing: %s", out)
	}
	if !strings.Contains(out, "app=attachment-cache") {
		t.Errorf("app annotation missing: %s", out)
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "chatty")
	l.Debug("debug event", nil)
	l.Info("info event", nil)

	out := buf.String()
	if strings.Contains(out, "debug event") {
		t.Errorf("debug not filtered at default level: %s", out)
	}
	if !strings.Contains(out, "info event") {
		t.Errorf("info missing at default level: %s", out)
	}
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	// must not panic
	l.Info("event", Pairs{"k": "v"})
	l.Close()
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	orig := current()
	defer SetLogger(orig)

	SetLogger(newLogger(&buf, "info"))
	Info("package level event", nil)
	if !strings.Contains(buf.String(), "package level event") {
		t.Errorf("package-level logging missed the default logger: %s", buf.String())
	}

	// nil is ignored
	SetLogger(nil)
	Info("still routed", nil)
	if !strings.Contains(buf.String(), "still routed") {
		t.Error("SetLogger(nil) replaced the default logger")
	}
}
