// Package compress provides the compression codecs used for protorow batch
// payloads.
//
// Four codecs are available, selected through format.CompressionType:
//
//   - None (NoOpCompressor): passes data through untouched. The right choice
//     for small batches where framing overhead dominates.
//   - Zstd (ZstdCompressor): best compression ratio, moderate speed. Backed
//     by klauspost/compress/zstd by default, or valyala/gozstd when built
//     with the cgozstd tag.
//   - S2 (S2Compressor): Snappy-compatible, fastest compression, lower ratio.
//   - LZ4 (LZ4Compressor): fast block compression with balanced ratio.
//
// # Usage
//
// Codecs are usually obtained through the factory rather than constructed
// directly:
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "payload")
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//
// The stateless built-in codecs can also be shared via GetCodec, which
// returns a cached instance.
//
// # Choosing a codec
//
// For rows streamed into a columnar warehouse the payload is typically
// highly repetitive (same schema, similar values), so even the fast codecs
// achieve useful ratios. Start with S2 when latency matters and Zstd when
// storage or bandwidth matters; measure with CompressionStats before
// committing to either.
//
// All codecs are safe for concurrent use; internal encoder and decoder
// state is pooled per call.
package compress
