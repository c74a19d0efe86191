package protorow

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/datum/compress"
	"github.com/arloliu/datum/endian"
	"github.com/arloliu/datum/format"
	"github.com/arloliu/datum/internal/options"
	"github.com/arloliu/datum/internal/pool"
)

// Batch frame layout:
//
//	[0:4]   magic
//	[4]     flags: bits 0-2 compression type, bit 7 big-endian
//	[5:13]  schema fingerprint
//	[13:17] row count
//	[17:]   payload, optionally compressed: per row a uvarint byte
//	        length followed by the protobuf row bytes
//
// Magic and flags are raw bytes; fingerprint and row count are encoded with
// the frame's endian engine, selected by the flags byte so a reader can
// decode the rest of the header without out-of-band configuration.
var batchMagic = [4]byte{0xF1, 'R', 'O', 'W'}

const (
	batchHeaderSize = 17

	flagCompressionMask = 0x07
	flagBigEndian       = 0x80
)

// BatchOption configures a BatchWriter.
type BatchOption = options.Option[*BatchWriter]

// WithCompression selects the payload compression codec. The default is
// format.CompressionNone.
func WithCompression(typ format.CompressionType) BatchOption {
	return options.New(func(w *BatchWriter) error {
		if !typ.IsValid() {
			return fmt.Errorf("protorow: invalid compression type: %s", typ)
		}
		w.compression = typ

		return nil
	})
}

// WithLittleEndian encodes the frame header integers in little-endian byte
// order. This is the default.
func WithLittleEndian() BatchOption {
	return options.NoError(func(w *BatchWriter) {
		w.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian encodes the frame header integers in big-endian byte order.
func WithBigEndian() BatchOption {
	return options.NoError(func(w *BatchWriter) {
		w.engine = endian.GetBigEndianEngine()
	})
}

// WithRowCapacity pre-sizes the payload buffer for the expected total size
// of the batch in bytes. Purely an allocation hint.
func WithRowCapacity(sizeBytes int) BatchOption {
	return options.New(func(w *BatchWriter) error {
		if sizeBytes < 0 {
			return fmt.Errorf("protorow: negative row capacity: %d", sizeBytes)
		}
		w.capacityHint = sizeBytes

		return nil
	})
}

// BatchWriter accumulates serialized rows for one schema and frames them
// into a single self-describing byte blob.
//
// Note: The BatchWriter is NOT thread-safe and NOT reusable. After calling
// Finish, a new writer must be created for further batches.
type BatchWriter struct {
	schema      *Schema
	engine      endian.EndianEngine
	compression format.CompressionType

	payload      *pool.ByteBuffer
	rowBuf       *pool.ByteBuffer
	rowCount     int
	capacityHint int
	finished     bool

	stats compress.CompressionStats
}

// NewBatchWriter creates a writer for the given schema.
//
// Parameters:
//   - schema: validated row schema; its fingerprint is embedded in the frame
//   - opts: optional configuration (compression, endianness, capacity hint)
//
// Returns the writer, or an error when an option is invalid.
func NewBatchWriter(schema *Schema, opts ...BatchOption) (*BatchWriter, error) {
	if schema == nil {
		return nil, fmt.Errorf("protorow: nil schema")
	}

	w := &BatchWriter{
		schema:      schema,
		engine:      endian.GetLittleEndianEngine(),
		compression: format.CompressionNone,
	}
	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	w.payload = pool.GetBatchBuffer()
	w.rowBuf = pool.GetRowBuffer()
	if w.capacityHint > 0 {
		w.payload.Grow(w.capacityHint)
	}

	return w, nil
}

// WriteRow marshals one record and appends it to the batch.
//
// A marshal failure leaves the batch exactly as it was before the call, so
// the caller may skip the bad record and continue.
func (w *BatchWriter) WriteRow(record any) error {
	if w.finished {
		return fmt.Errorf("protorow: batch writer already finished")
	}

	row, err := Marshal(w.rowBuf.Bytes(), w.schema, record)
	if err != nil {
		return err
	}

	w.appendFramed(row)

	return nil
}

// AppendRow appends an already-serialized protobuf row. The bytes are
// framed as-is; the caller is responsible for schema consistency.
func (w *BatchWriter) AppendRow(row []byte) error {
	if w.finished {
		return fmt.Errorf("protorow: batch writer already finished")
	}

	w.appendFramed(row)

	return nil
}

func (w *BatchWriter) appendFramed(row []byte) {
	var scratch [10]byte
	w.payload.MustWrite(AppendUvarint(scratch[:0], uint64(len(row))))
	w.payload.MustWrite(row)
	w.rowCount++
}

// RowCount returns the number of rows written so far.
func (w *BatchWriter) RowCount() int {
	return w.rowCount
}

// Finish compresses the payload, prepends the frame header, and returns
// the complete batch frame. The writer's pooled buffers are released;
// the writer must not be used afterwards.
//
// Returns the framed bytes, or an error from the compression codec.
func (w *BatchWriter) Finish() ([]byte, error) {
	if w.finished {
		return nil, fmt.Errorf("protorow: batch writer already finished")
	}
	w.finished = true
	defer w.release()

	if uint64(w.rowCount) > math.MaxUint32 {
		return nil, fmt.Errorf("protorow: batch of %d rows exceeds the frame row-count limit", w.rowCount)
	}

	codec, err := compress.GetCodec(w.compression)
	if err != nil {
		return nil, err
	}

	raw := w.payload.Bytes()
	payload, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("protorow: compress batch payload: %w", err)
	}

	w.stats = compress.CompressionStats{
		Algorithm:      w.compression,
		OriginalSize:   int64(len(raw)),
		CompressedSize: int64(len(payload)),
	}

	frame := make([]byte, 0, batchHeaderSize+len(payload))
	frame = append(frame, batchMagic[:]...)
	frame = append(frame, w.flags())
	frame = w.engine.AppendUint64(frame, w.schema.Fingerprint())
	frame = w.engine.AppendUint32(frame, uint32(w.rowCount)) //nolint:gosec
	frame = append(frame, payload...)

	return frame, nil
}

// Stats returns the compression statistics of the finished batch. Zero
// before Finish succeeds.
func (w *BatchWriter) Stats() compress.CompressionStats {
	return w.stats
}

func (w *BatchWriter) flags() byte {
	f := byte(w.compression) & flagCompressionMask
	if w.engine.String() == "BigEndian" {
		f |= flagBigEndian
	}

	return f
}

func (w *BatchWriter) release() {
	if w.payload != nil {
		pool.PutBatchBuffer(w.payload)
		w.payload = nil
	}
	if w.rowBuf != nil {
		pool.PutRowBuffer(w.rowBuf)
		w.rowBuf = nil
	}
}

// BatchReader decodes a frame produced by BatchWriter and yields the
// serialized rows.
type BatchReader struct {
	payload  []byte
	rowCount int
	stats    compress.CompressionStats

	// Lazy row index, built on the first At call.
	index        [][]byte
	releaseIndex func()
}

// NewBatchReader validates the frame header against the schema, selects the
// endian engine from the flags byte, and decompresses the payload.
//
// Parameters:
//   - frame: complete batch frame from BatchWriter.Finish
//   - schema: the schema the frame is expected to carry; fingerprints must match
//
// Returns the reader, ErrInvalidFrame for malformed frames, or
// ErrSchemaMismatch when the fingerprint differs.
func NewBatchReader(frame []byte, schema *Schema) (*BatchReader, error) {
	if schema == nil {
		return nil, fmt.Errorf("protorow: nil schema")
	}
	if len(frame) < batchHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", ErrInvalidFrame, len(frame), batchHeaderSize)
	}
	if [4]byte(frame[:4]) != batchMagic {
		return nil, fmt.Errorf("%w: bad magic % X", ErrInvalidFrame, frame[:4])
	}

	flags := frame[4]
	compression := format.CompressionType(flags & flagCompressionMask)
	if !compression.IsValid() {
		return nil, fmt.Errorf("%w: unknown compression flag %d", ErrInvalidFrame, flags&flagCompressionMask)
	}

	engine := endian.GetLittleEndianEngine()
	if flags&flagBigEndian != 0 {
		engine = endian.GetBigEndianEngine()
	}

	fingerprint := engine.Uint64(frame[5:13])
	if fingerprint != schema.Fingerprint() {
		return nil, fmt.Errorf("%w: frame %016x, schema %016x", ErrSchemaMismatch, fingerprint, schema.Fingerprint())
	}

	rowCount := int(engine.Uint32(frame[13:17]))

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(frame[batchHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: decompress payload: %w", ErrInvalidFrame, err)
	}

	return &BatchReader{
		payload:  payload,
		rowCount: rowCount,
		stats: compress.CompressionStats{
			Algorithm:      compression,
			OriginalSize:   int64(len(payload)),
			CompressedSize: int64(len(frame) - batchHeaderSize),
		},
	}, nil
}

// RowCount returns the number of rows recorded in the frame header.
func (r *BatchReader) RowCount() int {
	return r.rowCount
}

// Stats returns the compression statistics observed while decoding.
func (r *BatchReader) Stats() compress.CompressionStats {
	return r.stats
}

// Rows iterates the serialized rows in write order. The yielded slices
// alias the decompressed payload and must not be retained past Close.
func (r *BatchReader) Rows() iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		rest := r.payload
		for n := 0; n < r.rowCount; n++ {
			row, tail, err := nextFramedRow(rest)
			if err != nil {
				return
			}
			if !yield(row) {
				return
			}
			rest = tail
		}
	}
}

// At returns the i-th row. The first call builds a pooled row index; use
// Rows for pure sequential access to avoid it.
func (r *BatchReader) At(i int) ([]byte, error) {
	if i < 0 || i >= r.rowCount {
		return nil, fmt.Errorf("protorow: row index %d out of range [0, %d)", i, r.rowCount)
	}

	if r.index == nil {
		if err := r.buildIndex(); err != nil {
			return nil, err
		}
	}

	return r.index[i], nil
}

func (r *BatchReader) buildIndex() error {
	index, release := pool.GetByteSlices(r.rowCount)

	rest := r.payload
	for n := range r.rowCount {
		row, tail, err := nextFramedRow(rest)
		if err != nil {
			release()

			return fmt.Errorf("%w: row %d: %w", ErrInvalidFrame, n, err)
		}
		index[n] = row
		rest = tail
	}

	r.index = index
	r.releaseIndex = release

	return nil
}

// Close releases the pooled row index, if one was built. The reader and
// any row slices obtained from it must not be used afterwards.
func (r *BatchReader) Close() {
	if r.releaseIndex != nil {
		r.releaseIndex()
		r.index = nil
		r.releaseIndex = nil
	}
	r.payload = nil
}

// nextFramedRow splits one length-prefixed row off the front of buf.
func nextFramedRow(buf []byte) (row, rest []byte, err error) {
	size, n := Uvarint(buf)
	if n <= 0 {
		return nil, nil, fmt.Errorf("malformed row length prefix")
	}
	if size > uint64(len(buf)-n) {
		return nil, nil, fmt.Errorf("row length %d exceeds remaining payload %d", size, len(buf)-n)
	}

	return buf[n : n+int(size)], buf[n+int(size):], nil
}
