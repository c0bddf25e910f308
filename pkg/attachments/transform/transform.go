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

// Package transform implements the image derivation pipeline: decode an
// original attachment image and produce a bounding-box-constrained
// derivative blob
package transform

import (
	"bytes"
	"fmt"
	"math"

	"github.com/disintegration/imaging"
)

// Transformer produces a derivative image blob from an original image blob,
// constrained to the provided bounding box
type Transformer interface {
	Transform(src []byte, maxWidth, maxHeight int) ([]byte, error)
}

// ImageTransformer implements Transformer
var _ Transformer = &ImageTransformer{}

// ImageTransformer decodes, resizes and re-encodes images as JPEG
type ImageTransformer struct {
	// Quality is the JPEG quality setting used when re-encoding (1-100)
	Quality int
}

// New returns a new ImageTransformer with the provided JPEG quality
func New(quality int) *ImageTransformer {
	return &ImageTransformer{Quality: quality}
}

// Transform decodes src, clamps its dimensions to the bounding box, and
// re-encodes the result as JPEG. Images already within the bounding box are
// not upscaled but are still re-encoded.
func (t *ImageTransformer) Transform(src []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("image decode: %w", err)
	}

	b := img.Bounds()
	w, h := fitDimensions(b.Dx(), b.Dy(), maxWidth, maxHeight)
	if w != b.Dx() || h != b.Dy() {
		img = imaging.Resize(img, w, h, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(t.Quality)); err != nil {
		return nil, fmt.Errorf("image encode: %w", err)
	}
	return buf.Bytes(), nil
}

// fitDimensions clamps (w, h) into the bounding box preserving aspect ratio.
// The clamp is sequential: width first, then height re-checked against the
// already-width-adjusted dimensions. The order matters for extreme aspect
// ratios. Dimensions within the box are returned unchanged (no upscaling).
func fitDimensions(w, h, maxWidth, maxHeight int) (int, int) {
	fw, fh := float64(w), float64(h)
	if fw > float64(maxWidth) {
		fh = fh * float64(maxWidth) / fw
		fw = float64(maxWidth)
	}
	if fh > float64(maxHeight) {
		fw = fw * float64(maxHeight) / fh
		fh = float64(maxHeight)
	}
	ow, oh := int(math.Round(fw)), int(math.Round(fh))
	if ow < 1 {
		ow = 1
	}
	if oh < 1 {
		oh = 1
	}
	return ow, oh
}
