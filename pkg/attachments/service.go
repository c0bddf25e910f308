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

// Package attachments implements the attachment preview cache service: a
// bounded in-memory blob cache layered over a durable attachment store,
// with single-flight derivative generation and lazy time-based expiry.
//
// The cache is a best-effort performance layer. No failure of either tier
// escapes a Service operation; every failure mode resolves to an absent
// result and the caller regenerates from the original.
package attachments

import (
	"errors"
	"time"

	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/attachments/options"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/attachments/transform"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/memory"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/cache/metrics"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/locks"
	"github.com/andrewjsmart-S55/AscendoreAI-Email-UX-sub003/pkg/observability/logging"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// memory-tier cache keys; thumbnail and preview of the same attachment are
// independent keys
const (
	thumbKeyPrefix   = "thumb_"
	previewKeyPrefix = "preview_"
)

// CleanupResult reports the outcome of an expiry sweep
type CleanupResult struct {
	// Removed is the count of expired records deleted
	Removed int
	// FreedBytes is the total byte footprint of the deleted records
	FreedBytes int64
}

// Stats aggregates attachment store contents for diagnostics
type Stats struct {
	// TotalItems is the count of records in the durable store
	TotalItems int
	// TotalSizeMB is the byte footprint of all records in megabytes
	TotalSizeMB float64
	// OldestEntry and NewestEntry are the min/max record creation times;
	// zero when the store is empty
	OldestEntry time.Time
	NewestEntry time.Time
}

// Service is the attachment preview cache orchestrator. Multiple independent
// Services with distinct configurations may coexist; instances do not share
// state.
type Service struct {
	name        string
	opts        *options.Options
	store       cache.Client
	mem         *memory.Cache
	transformer transform.Transformer
	flights     singleflight.Group
	locker      locks.NamedLocker
	clock       clockwork.Clock
}

// Option modifies a Service during construction
type Option func(*Service)

// WithClock substitutes the wall clock, enabling tests to backdate records
func WithClock(clk clockwork.Clock) Option {
	return func(s *Service) { s.clock = clk }
}

// WithTransformer substitutes the image derivation pipeline
func WithTransformer(tr transform.Transformer) Option {
	return func(s *Service) { s.transformer = tr }
}

// WithMemoryBudget overrides the memory-tier byte budget derived from
// the service options
func WithMemoryBudget(maxSizeBytes int64) Option {
	return func(s *Service) { s.mem = memory.New(s.name, maxSizeBytes) }
}

// New returns a Service using the provided options and durable store.
// The store must already be constructed (see cache/registry); New connects
// it and degrades to memory-only operation if the connection fails.
func New(name string, o *options.Options, store cache.Client, svcOpts ...Option) *Service {
	if o == nil {
		o = options.New()
	}
	s := &Service{
		name:        name,
		opts:        o,
		store:       store,
		transformer: transform.New(o.JPEGQuality),
		locker:      locks.NewNamedLocker(),
		clock:       clockwork.NewRealClock(),
	}
	for _, opt := range svcOpts {
		opt(s)
	}
	if s.mem == nil {
		s.mem = memory.New(name, o.MemoryBudgetBytes())
	}
	if err := store.Connect(); err != nil {
		// best-effort: reads miss and writes no-op until the store recovers
		logging.Warn("attachment store unavailable", logging.Pairs{
			"name": name, "provider": store.Configuration().Provider, "error": err.Error()})
	}
	return s
}

// GetThumbnail returns the cached thumbnail blob for the attachment id,
// or absent on miss, expiry, or any storage failure
func (s *Service) GetThumbnail(attachmentID string) ([]byte, bool) {
	return s.getBlob(attachmentID, thumbKeyPrefix)
}

// GetPreview returns the cached preview blob for the attachment id,
// or absent on miss, expiry, or any storage failure
func (s *Service) GetPreview(attachmentID string) ([]byte, bool) {
	return s.getBlob(attachmentID, previewKeyPrefix)
}

func (s *Service) getBlob(attachmentID, keyPrefix string) ([]byte, bool) {
	cacheKey := keyPrefix + attachmentID
	if blob, ok := s.mem.Retrieve(cacheKey, s.clock.Now()); ok {
		return blob, true
	}

	rec, ok := s.fetchRecord(attachmentID)
	if !ok {
		return nil, false
	}
	if rec.Expired(s.clock.Now()) {
		// lazy expiry: expired records read as absent but are only
		// deleted by Cleanup
		metrics.ObserveCacheEvent(s.name, s.store.Configuration().Provider, "expired", "ttl")
		return nil, false
	}

	var blob []byte
	if keyPrefix == thumbKeyPrefix {
		blob = rec.Thumbnail
	} else {
		blob = rec.Preview
	}
	if len(blob) == 0 {
		return nil, false
	}

	s.touch(rec)
	s.mem.Store(cacheKey, blob, rec.ExpiresAt)
	return blob, true
}

// fetchRecord retrieves and decodes the durable record for the attachment
// id; all failure modes resolve to absent
func (s *Service) fetchRecord(attachmentID string) (*Record, bool) {
	data, _, err := s.store.Retrieve(attachmentID)
	if err != nil {
		if !errors.Is(err, cache.ErrKNF) {
			logging.Warn("attachment store retrieve failed", logging.Pairs{
				"name": s.name, "id": attachmentID, "error": err.Error()})
		}
		return nil, false
	}
	rec, err := RecordFromBytes(data)
	if err != nil {
		logging.Warn("attachment record decode failed", logging.Pairs{
			"name": s.name, "id": attachmentID, "error": err.Error()})
		return nil, false
	}
	return rec, true
}

// touch updates the record's LastAccessed time in the durable store. The
// per-id named lock serializes the read-modify-write against concurrent
// touches of the same record.
func (s *Service) touch(rec *Record) {
	nl, err := s.locker.Acquire("touch." + rec.ID)
	if err != nil {
		return
	}
	defer nl.Release()
	rec.LastAccessed = s.clock.Now()
	s.putRecord(rec)
}

// CacheAttachment builds and upserts the durable record for the attachment
// and write-through populates the memory tier for whichever derivative
// blobs were supplied. The memory write proceeds even if the durable write
// fails (logged, not raised).
func (s *Service) CacheAttachment(att Attachment, thumbnail, preview []byte) {
	now := s.clock.Now()
	rec := &Record{
		Attachment:   att,
		Thumbnail:    thumbnail,
		Preview:      preview,
		CachedAt:     now,
		LastAccessed: now,
		ExpiresAt:    now.Add(s.opts.MaxAge()),
	}
	s.putRecord(rec)
	if len(thumbnail) > 0 {
		s.mem.Store(thumbKeyPrefix+att.ID, thumbnail, rec.ExpiresAt)
	}
	if len(preview) > 0 {
		s.mem.Store(previewKeyPrefix+att.ID, preview, rec.ExpiresAt)
	}
}

func (s *Service) putRecord(rec *Record) {
	data, err := rec.ToBytes(s.store.Configuration().Compression)
	if err != nil {
		logging.Error("attachment record encode failed", logging.Pairs{
			"name": s.name, "id": rec.ID, "error": err.Error()})
		return
	}
	if err := s.store.Store(rec.ID, data); err != nil {
		logging.Warn("attachment store write failed", logging.Pairs{
			"name": s.name, "id": rec.ID, "error": err.Error()})
	}
}

// GenerateThumbnail derives a thumbnail from the original image blob and
// caches the result. Generation is single-flight per attachment id:
// concurrent callers share one derivation and observe the same result.
// Returns absent if the image cannot be decoded or encoded.
func (s *Service) GenerateThumbnail(attachmentID string, image []byte,
	emailID, filename string) ([]byte, bool) {
	return s.generate(thumbKeyPrefix, attachmentID, image, emailID, filename,
		s.opts.ThumbnailMaxWidth, s.opts.ThumbnailMaxHeight)
}

// GeneratePreview derives a preview from the original image blob and caches
// the result, with the same single-flight semantics as GenerateThumbnail
func (s *Service) GeneratePreview(attachmentID string, image []byte,
	emailID, filename string) ([]byte, bool) {
	return s.generate(previewKeyPrefix, attachmentID, image, emailID, filename,
		s.opts.PreviewMaxWidth, s.opts.PreviewMaxHeight)
}

func (s *Service) generate(keyPrefix, attachmentID string, image []byte,
	emailID, filename string, maxWidth, maxHeight int) ([]byte, bool) {
	// the flight key is forgotten when Do returns, so a failed generation
	// can be retried by a later caller
	v, _, _ := s.flights.Do(keyPrefix+attachmentID, func() (any, error) {
		derived, err := s.transformer.Transform(image, maxWidth, maxHeight)
		if err != nil {
			logging.Info("derivative generation failed", logging.Pairs{
				"name": s.name, "id": attachmentID, "error": err.Error()})
			return []byte(nil), nil
		}
		att := Attachment{
			ID:       attachmentID,
			EmailID:  emailID,
			Filename: filename,
			MimeType: "image/jpeg",
			Size:     int64(len(image)),
		}
		if keyPrefix == thumbKeyPrefix {
			s.CacheAttachment(att, derived, nil)
		} else {
			s.CacheAttachment(att, nil, derived)
		}
		return derived, nil
	})
	blob := v.([]byte)
	return blob, len(blob) > 0
}

// Cleanup sweeps the durable store and deletes every expired record. The
// memory tier is not swept; stale entries age out of the LRU and a deleted
// record cannot repopulate it. Calling Cleanup again with no intervening
// writes removes nothing.
func (s *Service) Cleanup() CleanupResult {
	now := s.clock.Now()
	var result CleanupResult
	var removals []string

	err := s.store.Iterate(func(cacheKey string, data []byte) bool {
		rec, err := RecordFromBytes(data)
		if err != nil {
			logging.Warn("skipping undecodable attachment record", logging.Pairs{
				"name": s.name, "key": cacheKey, "error": err.Error()})
			return true
		}
		if rec.Expired(now) {
			removals = append(removals, cacheKey)
			result.Removed++
			result.FreedBytes += rec.TotalBytes()
		}
		return true
	})
	if err != nil {
		logging.Warn("attachment store sweep failed", logging.Pairs{
			"name": s.name, "error": err.Error()})
		return CleanupResult{}
	}

	if len(removals) > 0 {
		if err := s.store.Remove(removals...); err != nil {
			logging.Warn("attachment store remove failed", logging.Pairs{
				"name": s.name, "error": err.Error()})
			return CleanupResult{}
		}
		metrics.ObserveCacheEvent(s.name, s.store.Configuration().Provider, "eviction", "ttl")
	}
	return result
}

// GetStats aggregates record count, byte footprint and creation-time range
// across the durable store
func (s *Service) GetStats() Stats {
	var st Stats
	var totalBytes int64
	err := s.store.Iterate(func(cacheKey string, data []byte) bool {
		rec, err := RecordFromBytes(data)
		if err != nil {
			return true
		}
		st.TotalItems++
		totalBytes += rec.TotalBytes()
		if st.OldestEntry.IsZero() || rec.CachedAt.Before(st.OldestEntry) {
			st.OldestEntry = rec.CachedAt
		}
		if st.NewestEntry.IsZero() || rec.CachedAt.After(st.NewestEntry) {
			st.NewestEntry = rec.CachedAt
		}
		return true
	})
	if err != nil {
		logging.Warn("attachment store stats scan failed", logging.Pairs{
			"name": s.name, "error": err.Error()})
		return Stats{}
	}
	st.TotalSizeMB = float64(totalBytes) / (1024 * 1024)
	return st
}

// ClearAll unconditionally removes every record from both tiers. The
// durable store is cleared first so the memory tier cannot end up holding
// a blob whose record was already deleted.
func (s *Service) ClearAll() {
	if err := s.store.Clear(); err != nil {
		logging.Warn("attachment store clear failed", logging.Pairs{
			"name": s.name, "error": err.Error()})
	}
	s.mem.Clear()
}

// Close closes the durable store
func (s *Service) Close() error {
	return s.store.Close()
}
