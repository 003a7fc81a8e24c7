package gateway

import (
	"bytes"
	"compress/zlib"
	"io"
)

// zlibSuffix is the four-byte marker (0x0000ffff) the platform appends to
// the final fragment of a compressed payload. A prior eager
// decompress-per-binary-frame approach decompressed too early; this module
// instead accumulates
// fragments until the suffix appears, matching the gateway's actual
// stream-compression framing (a single logical message may arrive split
// across several binary frames under `compress=zlib-stream`).
var zlibSuffix = []byte{0x00, 0x00, 0xff, 0xff}

// decompressor accumulates zlib-stream fragments across binary frames and
// yields a complete decompressed message once a sync-flush boundary is
// observed. Not safe for concurrent use; owned exclusively by the shard's
// single read loop.
type decompressor struct {
	buf    bytes.Buffer
	reader io.ReadCloser
}

func newDecompressor() *decompressor {
	return &decompressor{}
}

// Feed appends a fragment and, if it completes a message, returns the
// decompressed bytes. ok is false when more fragments are needed.
func (d *decompressor) Feed(fragment []byte) (out []byte, ok bool, err error) {
	d.buf.Write(fragment)

	if !bytes.HasSuffix(d.buf.Bytes(), zlibSuffix) {
		return nil, false, nil
	}

	defer d.buf.Reset()

	if d.reader == nil {
		d.reader, err = zlib.NewReader(bytes.NewReader(d.buf.Bytes()))
	} else {
		err = d.reader.(zlib.Resetter).Reset(bytes.NewReader(d.buf.Bytes()), nil)
	}

	if err != nil {
		return nil, false, err
	}

	out, err = io.ReadAll(d.reader)
	if err != nil {
		return nil, false, err
	}

	return out, true, nil
}
