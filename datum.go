// Package datum is a collection of precise data-representation libraries
// sharing one theme: lossless values at serialization boundaries.
//
// The three cores are independent; none depends on another and there is no
// unified API across them.
//
// # Civil time (civil)
//
// Fixed-range calendar types: Timestamp, Date, Time, Duration, Month, all
// covering the years -9999 through 9999 with nanosecond precision, checked
// and saturating arithmetic, RFC 3339 parsing, and unit-parameterized JSON
// codecs:
//
//	ts, _ := civil.ParseTimestamp("2022-01-15T13:45:30Z")
//	later, err := ts.CheckedAdd(civil.DurationOf(90, civil.UnitSeconds))
//	fmt.Println(later.AsISO8601()) // 2022-01-15T13:47:00Z
//
// # Rose trees (rosetree)
//
// An owned n-ary tree with parent back-references, cursor navigation, and
// preorder-pair round-tripping. Every traversal and teardown path is
// iterative, so arbitrarily deep trees never overflow the stack:
//
//	tree, _ := rosetree.FromPreorderPairList(pairs)
//	for v := range tree.All() {
//	    // preorder
//	}
//
// # Protobuf rows (protorow)
//
// A runtime-schema protobuf serializer for streaming rows into a columnar
// warehouse, with batch framing and optional payload compression (Zstd,
// S2, LZ4 via the compress package):
//
//	schema := protorow.MustNewSchema([]protorow.Field{
//	    {Name: "name", Number: 1, Wire: protorow.WireLengthDelimited, Type: protorow.TypeString, Mode: protorow.ModeRequired},
//	})
//	row, _ := protorow.Marshal(nil, schema, &record)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the most
// common protorow flows. For fine-grained control, and for the civil and
// rosetree cores, use the subpackages directly.
package datum

import (
	"github.com/arloliu/datum/protorow"
)

// MarshalRow serializes one record against the schema into a fresh buffer.
//
// This is protorow.Marshal without buffer reuse; callers encoding many rows
// should use protorow.Marshal with a shared destination buffer or a batch
// writer instead.
//
// Parameters:
//   - schema: validated schema from protorow.NewSchema
//   - record: struct or pointer to struct carrying the row values
//
// Returns:
//   - []byte: The encoded protobuf row.
//   - error: A typed protorow error (unknown field, missing required,
//     invalid type, invalid key).
//
// Example:
//
//	row, err := datum.MarshalRow(schema, &event)
func MarshalRow(schema *protorow.Schema, record any) ([]byte, error) {
	return protorow.Marshal(nil, schema, record)
}

// NewBatchWriter creates a protorow batch writer for the schema.
//
// Parameters:
//   - schema: validated schema from protorow.NewSchema
//   - opts: Optional configuration functions (see protorow.BatchOption)
//
// Returns:
//   - *protorow.BatchWriter: The created batch writer.
//   - error: An error if the configuration is invalid.
//
// Available options:
//   - protorow.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - protorow.WithLittleEndian() / protorow.WithBigEndian()
//   - protorow.WithRowCapacity(sizeBytes)
//
// Example:
//
//	w, err := datum.NewBatchWriter(schema,
//	    protorow.WithCompression(format.CompressionZstd),
//	)
//	for _, rec := range records {
//	    if err := w.WriteRow(rec); err != nil { ... }
//	}
//	frame, err := w.Finish()
func NewBatchWriter(schema *protorow.Schema, opts ...protorow.BatchOption) (*protorow.BatchWriter, error) {
	return protorow.NewBatchWriter(schema, opts...)
}

// NewBatchReader decodes a batch frame produced by a BatchWriter.
//
// Parameters:
//   - frame: complete frame bytes from BatchWriter.Finish
//   - schema: the schema the frame must match by fingerprint
//
// Returns:
//   - *protorow.BatchReader: The created batch reader.
//   - error: protorow.ErrInvalidFrame or protorow.ErrSchemaMismatch.
//
// Example:
//
//	r, err := datum.NewBatchReader(frame, schema)
//	defer r.Close()
//	for row := range r.Rows() {
//	    // decode row with any protobuf reader sharing the schema
//	}
func NewBatchReader(frame []byte, schema *protorow.Schema) (*protorow.BatchReader, error) {
	return protorow.NewBatchReader(frame, schema)
}
