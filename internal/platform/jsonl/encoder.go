// Package jsonl writes JSON Lines: one compact JSON document per value,
// each followed by a single newline, with nothing before, between or after.
//
// The package is write-only. There is no decoder; see Binding for the
// read-side stub required by gin's binding registry.
package jsonl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/jsamuelsen/quote-jsonl-service/internal/domain"
)

// MediaType is the content type advertised for JSON Lines responses.
const MediaType = "application/x-jsonlines"

// formatName identifies the format in serialization errors.
const formatName = "jsonl"

// Encoder writes values to an underlying writer as JSON Lines.
// It never closes the writer; the caller owns its lifecycle.
type Encoder struct {
	w     io.Writer
	buf   bytes.Buffer
	enc   *json.Encoder
	count int
}

// NewEncoder returns an encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	e := &Encoder{w: w}
	e.enc = json.NewEncoder(&e.buf)
	e.enc.SetEscapeHTML(false)

	return e
}

// Encode writes v as one compact JSON document followed by '\n'.
//
// If v cannot be represented as JSON, Encode returns a *domain.SerializationError
// and writes nothing for v. Lines written by earlier calls are left in place.
func (e *Encoder) Encode(v any) error {
	e.buf.Reset()

	// json.Encoder terminates every document with '\n'.
	if err := e.enc.Encode(v); err != nil {
		return domain.NewSerializationError(formatName, e.count, err)
	}

	if _, err := e.w.Write(e.buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s value %d: %w", formatName, e.count, err)
	}

	e.count++

	return nil
}

// Count returns the number of values written so far.
func (e *Encoder) Count() int {
	return e.count
}

// WriteValues writes each value in order. An empty slice writes zero bytes.
func WriteValues[T any](w io.Writer, values []T) error {
	enc := NewEncoder(w)
	for i := range values {
		if err := enc.Encode(values[i]); err != nil {
			return err
		}
	}

	return nil
}

// WriteSeq writes each value produced by seq in order and stops at the first error.
func WriteSeq[T any](w io.Writer, seq iter.Seq[T]) error {
	enc := NewEncoder(w)
	for v := range seq {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}

	return nil
}
