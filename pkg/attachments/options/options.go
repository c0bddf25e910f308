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
	"errors"
	"time"
)

const (
	// DefaultMaxSizeMB is the default overall cache byte budget in megabytes
	DefaultMaxSizeMB = 100
	// DefaultMaxAgeDays is the default time-to-live for a cached record in days
	DefaultMaxAgeDays = 30
	// DefaultThumbnailMaxWidth is the default thumbnail bounding-box width
	DefaultThumbnailMaxWidth = 200
	// DefaultThumbnailMaxHeight is the default thumbnail bounding-box height
	DefaultThumbnailMaxHeight = 200
	// DefaultPreviewMaxWidth is the default preview bounding-box width
	DefaultPreviewMaxWidth = 800
	// DefaultPreviewMaxHeight is the default preview bounding-box height
	DefaultPreviewMaxHeight = 600
	// DefaultJPEGQuality is the default quality setting for re-encoded derivatives
	DefaultJPEGQuality = 80
)

// ErrInvalidBudget is returned when the configured sizes or ages are not positive
var ErrInvalidBudget = errors.New("max_size_mb and max_age_days must be positive")

// ErrInvalidDimensions is returned when a bounding box dimension is not positive
var ErrInvalidDimensions = errors.New("bounding box dimensions must be positive")

// Options defines the operation of the attachment cache service
type Options struct {
	// MaxSizeMB is the overall cache byte budget in megabytes; the memory
	// tier is allotted half of this budget, the other half is a soft
	// housekeeping target for the durable tier
	MaxSizeMB int64 `yaml:"max_size_mb,omitempty"`
	// MaxAgeDays is the time-to-live for any cached record in days
	MaxAgeDays int `yaml:"max_age_days,omitempty"`
	// ThumbnailMaxWidth and ThumbnailMaxHeight bound generated thumbnails
	ThumbnailMaxWidth  int `yaml:"thumbnail_max_width,omitempty"`
	ThumbnailMaxHeight int `yaml:"thumbnail_max_height,omitempty"`
	// PreviewMaxWidth and PreviewMaxHeight bound generated previews
	PreviewMaxWidth  int `yaml:"preview_max_width,omitempty"`
	PreviewMaxHeight int `yaml:"preview_max_height,omitempty"`
	// JPEGQuality is the quality setting used when re-encoding derivatives
	JPEGQuality int `yaml:"jpeg_quality,omitempty"`
}

// New returns a pointer to an Options with the default configuration settings
func New() *Options {
	return &Options{
		MaxSizeMB:          DefaultMaxSizeMB,
		MaxAgeDays:         DefaultMaxAgeDays,
		ThumbnailMaxWidth:  DefaultThumbnailMaxWidth,
		ThumbnailMaxHeight: DefaultThumbnailMaxHeight,
		PreviewMaxWidth:    DefaultPreviewMaxWidth,
		PreviewMaxHeight:   DefaultPreviewMaxHeight,
		JPEGQuality:        DefaultJPEGQuality,
	}
}

// Clone returns an exact copy of the subject Options
func (o *Options) Clone() *Options {
	out := *o
	return &out
}

// MaxAge returns the record time-to-live as a Duration
func (o *Options) MaxAge() time.Duration {
	return time.Duration(o.MaxAgeDays) * 24 * time.Hour
}

// MemoryBudgetBytes returns the byte budget allotted to the memory tier
func (o *Options) MemoryBudgetBytes() int64 {
	return o.MaxSizeMB * 1024 * 1024 / 2
}

// Validate confirms the Options are usable
func (o *Options) Validate() error {
	if o.MaxSizeMB <= 0 || o.MaxAgeDays <= 0 {
		return ErrInvalidBudget
	}
	if o.ThumbnailMaxWidth <= 0 || o.ThumbnailMaxHeight <= 0 ||
		o.PreviewMaxWidth <= 0 || o.PreviewMaxHeight <= 0 {
		return ErrInvalidDimensions
	}
	return nil
}
