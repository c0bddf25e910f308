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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/providers"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestNewDefaults(t *testing.T) {
	c := New()
	require.NoError(t, c.Validate())
	require.Contains(t, c.Stores, DefaultStoreName)
	require.Equal(t, providers.BBolt, c.Stores[DefaultStoreName].Provider)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
stores:
  previews:
    provider: redis
    compression: true
    redis:
      endpoint: localhost:6379
      db: 2
attachments:
  max_size_mb: 250
  max_age_days: 14
logging:
  log_level: debug
`)
	c, err := Load(path)
	require.NoError(t, err)

	st, ok := c.Stores["previews"]
	require.True(t, ok)
	require.Equal(t, "previews", st.Name)
	require.Equal(t, providers.RedisID, st.ProviderID)
	require.Equal(t, "localhost:6379", st.Redis.Endpoint)
	require.Equal(t, 2, st.Redis.DB)
	// unset sub-options are defaulted, not nil
	require.NotNil(t, st.BBolt)

	require.Equal(t, int64(250), c.Attachments.MaxSizeMB)
	require.Equal(t, 14, c.Attachments.MaxAgeDays)
	// unset attachment fields keep their defaults
	require.Equal(t, 80, c.Attachments.JPEGQuality)

	require.Equal(t, "debug", c.Logging.LogLevel)
}

func TestLoadEmptyGetsDefaults(t *testing.T) {
	c, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Contains(t, c.Stores, DefaultStoreName)
	require.NotNil(t, c.Attachments)
	require.NotNil(t, c.Logging)
}

func TestLoadInvalidProvider(t *testing.T) {
	_, err := Load(writeConfig(t, `
stores:
  previews:
    provider: leveldb
`))
	require.Error(t, err)
}

func TestLoadInvalidAttachments(t *testing.T) {
	_, err := Load(writeConfig(t, `
attachments:
  max_size_mb: -5
`))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "stores: [}"))
	require.Error(t, err)
}
