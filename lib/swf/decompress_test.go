// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package swf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/bureau-foundation/flashkit/lib/testutil"
)

// mustRead reads an envelope that is expected to be complete. Fixtures
// store the expanded length in compressed headers, as Flash writers do.
func mustRead(t *testing.T, container []byte) *Envelope {
	t.Helper()
	envelope, err := ReadEnvelope(bytes.NewReader(container), WithExpandedSizes())
	if err != nil {
		t.Fatalf("ReadEnvelope: %v", err)
	}
	return envelope
}

// samplePayload returns a compressible body with some structure.
func samplePayload() []byte {
	payload := make([]byte, 0, 4096)
	for i := 0; len(payload) < 4000; i++ {
		payload = append(payload, []byte("DefineSprite/ShowFrame ")...)
		payload = append(payload, byte(i%251))
	}
	return payload
}

func TestDecompressUncompressed(t *testing.T) {
	envelope := mustRead(t, testutil.FWS(10, []byte("already plain")))

	result, err := NewDecompressor().Decompress(envelope)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if result.Status != StatusAlreadyUncompressed {
		t.Errorf("Status = %s, want already_uncompressed", result.Status)
	}
	if result.Data != nil {
		t.Errorf("Data = %x, want nil", result.Data)
	}
}

func TestDecompressZlib(t *testing.T) {
	payload := samplePayload()
	container := testutil.CWS(t, 10, payload)
	envelope := mustRead(t, container)

	result, err := NewDecompressor().Decompress(envelope)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if result.Status != StatusDecompressed {
		t.Fatalf("Status = %s, want decompressed", result.Status)
	}
	if result.Kind != ZlibCompressed {
		t.Errorf("Kind = %s, want zlib", result.Kind)
	}

	want := append([]byte("FWS"), container[3:8]...)
	want = append(want, payload...)
	if !bytes.Equal(result.Data, want) {
		t.Errorf("reassembled container mismatch: got %d bytes, want %d", len(result.Data), len(want))
	}
	if !bytes.Equal(result.Data, testutil.FWS(10, payload)) {
		t.Error("reassembled container should equal the FWS fixture for the same payload")
	}
}

func TestDecompressConcreteScenario(t *testing.T) {
	payload := []byte("hello flash")
	compressed := testutil.ZlibCompress(t, payload)
	totalLength := int32(8 + len(compressed))

	var container []byte
	container = append(container, "CWS"...)
	container = append(container, 0x0a)
	container = binary.LittleEndian.AppendUint32(container, uint32(totalLength))
	container = append(container, compressed...)

	result, err := NewDecompressor().Decompress(mustRead(t, container))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}

	var want []byte
	want = append(want, "FWS"...)
	want = append(want, container[3:8]...)
	want = append(want, payload...)
	if !bytes.Equal(result.Data, want) {
		t.Errorf("got  %x\nwant %x", result.Data, want)
	}
}

func TestDecompressPreservesHeaderBytesVerbatim(t *testing.T) {
	payload := samplePayload()
	// A declared size that describes neither the compressed file nor
	// the output. The bytes must pass through untouched.
	container := append(testutil.Header("CWS", 17, 0x00012345), testutil.ZlibCompress(t, payload)...)
	container = append(container, make([]byte, 0x00012345-len(container))...)

	result, err := NewDecompressor().Decompress(mustRead(t, container))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(result.Data[3:8], []byte{17, 0x45, 0x23, 0x01, 0x00}) {
		t.Errorf("bytes 3..7 = %x, want 1145230100", result.Data[3:8])
	}
	if !bytes.Equal(result.Data[8:], payload) {
		t.Error("payload mismatch")
	}
}

func TestDecompressSizeFixup(t *testing.T) {
	payload := samplePayload()
	container := append(testutil.Header("CWS", 12, 0), testutil.ZlibCompress(t, payload)...)
	binary.LittleEndian.PutUint32(container[4:8], uint32(len(container)))

	result, err := NewDecompressor(WithSizeFixup()).Decompress(mustRead(t, container))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if got := binary.LittleEndian.Uint32(result.Data[4:8]); got != uint32(len(result.Data)) {
		t.Errorf("fixed size field = %d, want %d", got, len(result.Data))
	}
	if result.Data[3] != 12 {
		t.Errorf("version = %d, want 12", result.Data[3])
	}
}

func TestDecompressDoesNotMutateEnvelope(t *testing.T) {
	container := testutil.CWS(t, 10, samplePayload())
	envelope := mustRead(t, container)
	before := append([]byte{}, envelope.Raw...)

	if _, err := NewDecompressor(WithSizeFixup()).Decompress(envelope); err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(envelope.Raw, before) {
		t.Error("Decompress modified the envelope's Raw buffer")
	}
}

func TestDecompressUnsupportedFormat(t *testing.T) {
	for _, signature := range []string{"XXX", "fws", "PK\x03"} {
		container := append(testutil.Header(signature, 10, 12), []byte("data")...)

		result, err := NewDecompressor().Decompress(mustRead(t, container))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%q: error = %v, want ErrUnsupportedFormat", signature, err)
		}
		var unsupported *UnsupportedFormatError
		if !errors.As(err, &unsupported) || string(unsupported.Signature[:]) != signature {
			t.Errorf("%q: error should carry the signature, got %v", signature, err)
		}
		if result != nil {
			t.Errorf("%q: result = %+v, want nil", signature, result)
		}
	}
}

func TestDecompressLZMAUnavailable(t *testing.T) {
	container := testutil.ZWS(t, 13, samplePayload())
	decompressor := NewDecompressor(WithoutLZMA())

	if decompressor.LZMAAvailable() {
		t.Fatal("LZMAAvailable() = true after WithoutLZMA")
	}

	result, err := decompressor.Decompress(mustRead(t, container))
	if !errors.Is(err, ErrMissingDependency) {
		t.Fatalf("error = %v, want ErrMissingDependency", err)
	}
	if result != nil {
		t.Errorf("result = %+v, want nil", result)
	}
}

func TestDecompressWithoutLZMAStillHandlesZlib(t *testing.T) {
	payload := samplePayload()
	result, err := NewDecompressor(WithoutLZMA()).Decompress(mustRead(t, testutil.CWS(t, 10, payload)))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(result.Data[8:], payload) {
		t.Error("payload mismatch")
	}
}

func TestDecompressMissingDependencyCheckedBeforeBody(t *testing.T) {
	// A ZWS envelope with no body at all still reports the missing
	// codec rather than a truncation.
	envelope := &Envelope{Signature: SignatureLZMA, Version: 13, DeclaredSize: 100}

	_, err := NewDecompressor(WithoutLZMA()).Decompress(envelope)
	if !errors.Is(err, ErrMissingDependency) {
		t.Errorf("error = %v, want ErrMissingDependency", err)
	}
}

func TestDecompressCorruptZlib(t *testing.T) {
	payload := samplePayload()
	compressed := testutil.ZlibCompress(t, payload)

	tests := []struct {
		name string
		tail []byte
	}{
		{name: "invalid stream header", tail: []byte{0xde, 0xad, 0xbe, 0xef, 0x00}},
		{name: "truncated stream", tail: compressed[:len(compressed)/2]},
		{name: "empty stream", tail: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container := append(testutil.Header("CWS", 10, int32(8+len(tt.tail))), tt.tail...)

			result, err := NewDecompressor().Decompress(mustRead(t, container))
			if !errors.Is(err, ErrDecompressionFailed) {
				t.Fatalf("error = %v, want ErrDecompressionFailed", err)
			}
			var decompressionError *DecompressionError
			if !errors.As(err, &decompressionError) || decompressionError.Kind != ZlibCompressed {
				t.Errorf("error should be a zlib DecompressionError, got %T", err)
			}
			if result != nil {
				t.Errorf("result = %+v, want nil (no partial output)", result)
			}
		})
	}
}

func TestDecompressTruncatedStreamUnwrapsToUnexpectedEOF(t *testing.T) {
	compressed := testutil.ZlibCompress(t, samplePayload())
	tail := compressed[:len(compressed)-6]
	container := append(testutil.Header("CWS", 10, int32(8+len(tail))), tail...)

	_, err := NewDecompressor().Decompress(mustRead(t, container))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("error = %v, want it to wrap io.ErrUnexpectedEOF", err)
	}
}

func TestDecompressIncompleteEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		envelope *Envelope
	}{
		{
			name:     "nil raw buffer",
			envelope: &Envelope{Signature: SignatureZlib, Version: 10, DeclaredSize: 4096},
		},
		{
			name:     "raw shorter than header",
			envelope: &Envelope{Signature: SignatureZlib, Version: 10, DeclaredSize: 5, Raw: []byte("CWS\x0a\x05")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NewDecompressor().Decompress(tt.envelope)
			if !errors.Is(err, ErrTruncatedBody) {
				t.Errorf("error = %v, want ErrTruncatedBody", err)
			}
			if result != nil {
				t.Errorf("result = %+v, want nil", result)
			}
		})
	}
}

func TestDecompressTruncatedSourceNeverReachesDispatcherWithData(t *testing.T) {
	compressed := testutil.ZlibCompress(t, samplePayload())
	full := append(testutil.Header("CWS", 10, int32(8+len(compressed))), compressed...)
	envelope, err := ReadEnvelope(bytes.NewReader(full[:len(full)/2]))
	if !errors.Is(err, ErrTruncatedBody) {
		t.Fatalf("ReadEnvelope error = %v, want ErrTruncatedBody", err)
	}

	_, err = NewDecompressor().Decompress(envelope)
	if !errors.Is(err, ErrTruncatedBody) {
		t.Errorf("Decompress error = %v, want ErrTruncatedBody", err)
	}
}

func TestDecompressMaxPayload(t *testing.T) {
	payload := samplePayload()
	container := testutil.CWS(t, 10, payload)

	_, err := NewDecompressor(WithMaxPayload(int64(len(payload)-1))).Decompress(mustRead(t, container))
	if !errors.Is(err, ErrDecompressionFailed) {
		t.Errorf("over limit: error = %v, want ErrDecompressionFailed", err)
	}

	result, err := NewDecompressor(WithMaxPayload(int64(len(payload)))).Decompress(mustRead(t, container))
	if err != nil {
		t.Fatalf("at limit: Decompress: %v", err)
	}
	if !bytes.Equal(result.Data[8:], payload) {
		t.Error("at limit: payload mismatch")
	}
}

func TestDecompressIdempotent(t *testing.T) {
	result, err := NewDecompressor().Decompress(mustRead(t, testutil.CWS(t, 10, samplePayload())))
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}

	// Feed the reassembled container back in, repeatedly.
	current := result.Data
	for pass := range 3 {
		envelope := mustRead(t, current)
		again, err := NewDecompressor().Decompress(envelope)
		if err != nil {
			t.Fatalf("pass %d: Decompress: %v", pass, err)
		}
		if again.Status != StatusAlreadyUncompressed {
			t.Errorf("pass %d: Status = %s, want already_uncompressed", pass, again.Status)
		}
		current = envelope.Raw
	}
}

func TestDecompressConcurrentUse(t *testing.T) {
	decompressor := NewDecompressor()
	payload := samplePayload()
	container := testutil.CWS(t, 10, payload)

	const workers = 8
	results := make(chan []byte, workers)
	for range workers {
		go func() {
			envelope, err := ReadEnvelope(bytes.NewReader(container), WithExpandedSizes())
			if err != nil {
				results <- nil
				return
			}
			result, err := decompressor.Decompress(envelope)
			if err != nil {
				results <- nil
				return
			}
			results <- result.Data
		}()
	}

	for i := range workers {
		data := testutil.RequireReceive(t, results, 5*time.Second, "worker %d", i)
		if len(data) < HeaderSize {
			t.Errorf("worker %d: decompression failed", i)
			continue
		}
		if !bytes.Equal(data[HeaderSize:], payload) {
			t.Errorf("worker %d: payload mismatch", i)
		}
	}
}

func TestStatusString(t *testing.T) {
	if StatusDecompressed.String() != "decompressed" {
		t.Errorf("StatusDecompressed.String() = %q", StatusDecompressed.String())
	}
	if StatusAlreadyUncompressed.String() != "already_uncompressed" {
		t.Errorf("StatusAlreadyUncompressed.String() = %q", StatusAlreadyUncompressed.String())
	}
}
