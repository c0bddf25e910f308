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

package transform

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// testImage returns a PNG-encoded image of the given dimensions
func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 128, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodedSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestTransformDownscalesWide(t *testing.T) {
	tr := New(80)
	out, err := tr.Transform(testImage(t, 400, 100), 200, 200)
	require.NoError(t, err)
	w, h := decodedSize(t, out)
	require.Equal(t, 200, w)
	require.Equal(t, 50, h)
}

func TestTransformDownscalesTall(t *testing.T) {
	tr := New(80)
	out, err := tr.Transform(testImage(t, 100, 400), 200, 200)
	require.NoError(t, err)
	w, h := decodedSize(t, out)
	require.Equal(t, 50, w)
	require.Equal(t, 200, h)
}

func TestTransformNeverUpscales(t *testing.T) {
	tr := New(80)
	out, err := tr.Transform(testImage(t, 50, 40), 200, 200)
	require.NoError(t, err)
	w, h := decodedSize(t, out)
	require.Equal(t, 50, w)
	require.Equal(t, 40, h)
}

func TestTransformReencodesInBoxImages(t *testing.T) {
	tr := New(80)
	src := testImage(t, 50, 40)
	out, err := tr.Transform(src, 200, 200)
	require.NoError(t, err)
	// output is JPEG regardless of source format
	_, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
}

func TestTransformDecodeFailure(t *testing.T) {
	tr := New(80)
	_, err := tr.Transform([]byte("not an image"), 200, 200)
	require.Error(t, err)
}

func TestFitDimensionsTwoPassOrder(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxW, maxH   int
		wantW, wantH int
	}{
		{"within box", 100, 80, 200, 200, 100, 80},
		{"exact fit", 200, 200, 200, 200, 200, 200},
		{"wide", 400, 100, 200, 200, 200, 50},
		{"tall", 100, 400, 200, 200, 50, 200},
		{"both over, landscape", 1600, 1200, 800, 600, 800, 600},
		{"both over, portrait", 1200, 1600, 800, 600, 450, 600},
		// extreme aspect ratios clamp to 1, never 0
		{"hairline wide", 10000, 10, 200, 200, 200, 1},
		{"hairline tall", 10, 10000, 200, 200, 1, 200},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h := fitDimensions(tc.w, tc.h, tc.maxW, tc.maxH)
			require.Equal(t, tc.wantW, w)
			require.Equal(t, tc.wantH, h)
		})
	}
}
