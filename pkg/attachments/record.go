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

package attachments

import (
	"errors"
	"time"

	"github.com/golang/snappy"
	"github.com/tinylib/msgp/msgp"
)

// Attachment carries the descriptive metadata of an original attachment,
// provided by the caller when populating the cache
type Attachment struct {
	// ID is the unique attachment identifier, stable across sessions
	ID string
	// EmailID identifies the owning message
	EmailID string
	// Filename is the original attachment filename
	Filename string
	// MimeType is the media type of the original attachment
	MimeType string
	// Size is the byte size of the original attachment
	Size int64
}

// Record is one durable attachment-cache entry. Once created a Record is
// immutable except for LastAccessed (touched on read hit) and deletion.
type Record struct {
	Attachment
	// Thumbnail is the small derivative image; empty means not cached
	Thumbnail []byte
	// Preview is the large derivative image; empty means not cached
	Preview []byte
	// CachedAt is the time the Record was created
	CachedAt time.Time
	// LastAccessed is the time the Record was last read; an access-recency
	// signal only, it does not slide ExpiresAt
	LastAccessed time.Time
	// ExpiresAt is the absolute expiration time, computed at write time
	ExpiresAt time.Time
}

// Expired returns true if the Record has passed its expiration time
func (r *Record) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// TotalBytes returns the byte footprint of the Record: the original
// attachment size plus any resident derivative blobs
func (r *Record) TotalBytes() int64 {
	return r.Size + int64(len(r.Thumbnail)) + int64(len(r.Preview))
}

// record serialization framing: one codec byte ahead of the msgpack body
const (
	codecRaw    = byte(0)
	codecSnappy = byte(1)
)

// ErrInvalidRecord is returned when stored bytes cannot be decoded into a Record
var ErrInvalidRecord = errors.New("invalid attachment record")

// ToBytes returns the serialized byte representation of the Record,
// snappy-compressed when compress is true
func (r *Record) ToBytes(compress bool) ([]byte, error) {
	body, err := r.MarshalMsg(nil)
	if err != nil {
		return nil, err
	}
	if !compress {
		return append([]byte{codecRaw}, body...), nil
	}
	return append([]byte{codecSnappy}, snappy.Encode(nil, body)...), nil
}

// RecordFromBytes returns a deserialized Record from a serialized byte slice
func RecordFromBytes(data []byte) (*Record, error) {
	if len(data) < 1 {
		return nil, ErrInvalidRecord
	}
	body := data[1:]
	switch data[0] {
	case codecRaw:
	case codecSnappy:
		var err error
		body, err = snappy.Decode(nil, body)
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidRecord
	}
	r := &Record{}
	if _, err := r.UnmarshalMsg(body); err != nil {
		return nil, err
	}
	return r, nil
}

// MarshalMsg appends the msgpack representation of the Record to b
func (r *Record) MarshalMsg(b []byte) ([]byte, error) {
	o := msgp.Require(b, r.Msgsize())
	o = msgp.AppendMapHeader(o, 10)
	o = msgp.AppendString(o, "id")
	o = msgp.AppendString(o, r.ID)
	o = msgp.AppendString(o, "email_id")
	o = msgp.AppendString(o, r.EmailID)
	o = msgp.AppendString(o, "filename")
	o = msgp.AppendString(o, r.Filename)
	o = msgp.AppendString(o, "mime_type")
	o = msgp.AppendString(o, r.MimeType)
	o = msgp.AppendString(o, "size")
	o = msgp.AppendInt64(o, r.Size)
	o = msgp.AppendString(o, "thumbnail")
	o = msgp.AppendBytes(o, r.Thumbnail)
	o = msgp.AppendString(o, "preview")
	o = msgp.AppendBytes(o, r.Preview)
	o = msgp.AppendString(o, "cached_at")
	o = msgp.AppendTime(o, r.CachedAt)
	o = msgp.AppendString(o, "last_accessed")
	o = msgp.AppendTime(o, r.LastAccessed)
	o = msgp.AppendString(o, "expires_at")
	o = msgp.AppendTime(o, r.ExpiresAt)
	return o, nil
}

// UnmarshalMsg decodes the msgpack representation of the Record from b,
// returning any leftover bytes
func (r *Record) UnmarshalMsg(b []byte) ([]byte, error) {
	fields, b, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return b, err
	}
	for i := uint32(0); i < fields; i++ {
		var key []byte
		key, b, err = msgp.ReadMapKeyZC(b)
		if err != nil {
			return b, err
		}
		switch string(key) {
		case "id":
			r.ID, b, err = msgp.ReadStringBytes(b)
		case "email_id":
			r.EmailID, b, err = msgp.ReadStringBytes(b)
		case "filename":
			r.Filename, b, err = msgp.ReadStringBytes(b)
		case "mime_type":
			r.MimeType, b, err = msgp.ReadStringBytes(b)
		case "size":
			r.Size, b, err = msgp.ReadInt64Bytes(b)
		case "thumbnail":
			r.Thumbnail, b, err = msgp.ReadBytesBytes(b, nil)
		case "preview":
			r.Preview, b, err = msgp.ReadBytesBytes(b, nil)
		case "cached_at":
			r.CachedAt, b, err = msgp.ReadTimeBytes(b)
		case "last_accessed":
			r.LastAccessed, b, err = msgp.ReadTimeBytes(b)
		case "expires_at":
			r.ExpiresAt, b, err = msgp.ReadTimeBytes(b)
		default:
			b, err = msgp.Skip(b)
		}
		if err != nil {
			return b, err
		}
	}
	return b, nil
}

// Msgsize returns an upper bound estimate of the serialized Record size
func (r *Record) Msgsize() int {
	return msgp.MapHeaderSize + 20*msgp.StringPrefixSize + 100 +
		len(r.ID) + len(r.EmailID) + len(r.Filename) + len(r.MimeType) +
		msgp.Int64Size + 2*msgp.BytesPrefixSize +
		len(r.Thumbnail) + len(r.Preview) + 3*msgp.TimeSize
}
