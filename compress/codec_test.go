package compress

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/arloliu/datum/format"
	"github.com/stretchr/testify/require"
)

func allCodecTypes() []format.CompressionType {
	return []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
}

// testPayloads covers the shapes the batch writer produces: empty frames,
// tiny single-row payloads, highly repetitive rows, and incompressible data.
func testPayloads() map[string][]byte {
	repetitive := bytes.Repeat([]byte("0A 02 68 69 row payload "), 512)

	random := make([]byte, 8192)
	rng := rand.New(rand.NewSource(42))
	for i := range random {
		random[i] = byte(rng.Intn(256))
	}

	return map[string][]byte{
		"empty":       {},
		"single byte": {0x42},
		"small":       []byte("hello, world"),
		"repetitive":  repetitive,
		"random":      random,
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	for _, ct := range allCodecTypes() {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			for name, payload := range testPayloads() {
				compressed, err := codec.Compress(payload)
				require.NoError(t, err, "compress %s", name)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err, "decompress %s", name)
				require.Equal(t, payload, decompressed, "round trip %s", name)
			}
		})
	}
}

func TestCodec_RepetitiveDataCompresses(t *testing.T) {
	payload := testPayloads()["repetitive"]

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(payload))
		})
	}
}

func TestNoOp_PassesThrough(t *testing.T) {
	codec := NewNoOpCompressor()

	data := []byte("unchanged")
	out, err := codec.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, out)

	out, err = codec.Decompress(data)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestDecompress_CorruptedInput(t *testing.T) {
	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01, 0x02, 0x03}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range allCodecTypes() {
		codec, err := CreateCodec(ct, "payload")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0x7F), "payload")
	require.Error(t, err)
	require.Contains(t, err.Error(), "payload")
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestCompressionStats(t *testing.T) {
	stats := CompressionStats{
		Algorithm:      format.CompressionZstd,
		OriginalSize:   1000,
		CompressedSize: 250,
	}

	require.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	empty := CompressionStats{}
	require.Zero(t, empty.CompressionRatio())
}
