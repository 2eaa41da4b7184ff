// Copyright 2026 The qris-dev Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package qris reads EMV merchant-presented QR payloads (QRIS) and turns
// static payloads into dynamic ones carrying an amount and an optional fee.
package qris

import (
	"fmt"
	"io"
)

const (
	tagLen    = 2
	lengthLen = 2
	headerLen = tagLen + lengthLen

	// MaxValueLen is the longest value a two-digit length can describe.
	MaxValueLen = 99
)

// Field is a single Tag-Length-Value record of a payload.
type Field struct {
	Tag    string
	Length int
	Value  string
	// Offset is the index of the first tag digit within the payload.
	Offset int
}

// End returns the index just past the field's value.
func (f Field) End() int {
	return f.Offset + headerLen + f.Length
}

// String renders the field back into its wire form.
func (f Field) String() string {
	return f.Tag + fmt.Sprintf("%02d", f.Length) + f.Value
}

// Reader walks a payload one field at a time. It never copies the payload and
// can be restarted with Reset.
type Reader struct {
	payload string
	start   int
	pos     int
}

// NewReader returns a Reader that begins scanning payload at offset.
func NewReader(payload string, offset int) *Reader {
	return &Reader{payload: payload, start: offset, pos: offset}
}

// Reset rewinds the reader to the offset it was created with.
func (r *Reader) Reset() {
	r.pos = r.start
}

// Next returns the next field, or io.EOF once the payload is exhausted.
func (r *Reader) Next() (Field, error) {
	if r.pos >= len(r.payload) {
		return Field{}, io.EOF
	}

	offset := r.pos
	if len(r.payload)-offset < headerLen {
		return Field{}, malformed(offset, "need %d characters for tag and length, got %d", headerLen, len(r.payload)-offset)
	}

	tag := r.payload[offset : offset+tagLen]
	if !isDigits(tag) {
		return Field{}, malformed(offset, "invalid tag %q", tag)
	}

	lengthStr := r.payload[offset+tagLen : offset+headerLen]
	if !isDigits(lengthStr) {
		return Field{}, malformed(offset+tagLen, "invalid length %q", lengthStr)
	}
	length := int(lengthStr[0]-'0')*10 + int(lengthStr[1]-'0')

	valueStart := offset + headerLen
	if len(r.payload)-valueStart < length {
		return Field{}, malformed(valueStart, "tag %s needs %d characters for value, got %d", tag, length, len(r.payload)-valueStart)
	}

	r.pos = valueStart + length
	return Field{
		Tag:    tag,
		Length: length,
		Value:  r.payload[valueStart:r.pos],
		Offset: offset,
	}, nil
}

// Parse reads every field of payload in order.
func Parse(payload string) ([]Field, error) {
	r := NewReader(payload, 0)
	fields := make([]Field, 0, 16)
	for {
		f, err := r.Next()
		if err == io.EOF {
			return fields, nil
		}
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
}

// Find returns the first field with the given tag.
func Find(fields []Field, tag string) (Field, bool) {
	for _, f := range fields {
		if f.Tag == tag {
			return f, true
		}
	}
	return Field{}, false
}

// Encode renders a field as tag + two-digit length + value.
func Encode(tag, value string) (string, error) {
	if len(value) > MaxValueLen {
		return "", &FieldError{Field: "tag " + tag, Err: ErrValueTooLong}
	}
	return tag + len2(value) + value, nil
}

func len2(s string) string {
	return fmt.Sprintf("%02d", len(s))
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
