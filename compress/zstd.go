package compress

// ZstdCompressor provides Zstandard compression for row batch payloads.
//
// This compressor is designed for scenarios where compression ratio is more
// important than compression speed, making it ideal for:
//   - Bulk loads into a columnar warehouse over constrained links
//   - Long-term retention of serialized row batches
//   - Scenarios where decompression happens infrequently
//
// Two backends are provided behind build tags: a pure-Go implementation
// (klauspost/compress/zstd) and a cgo implementation (valyala/gozstd) that
// trades portability for throughput.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
