// Package decompress opens possibly compressed input streams.  It supports
// zstd, gzip, s2 (and snappy streams) and lz4 frames, and can detect the
// compression from the file name or from the first bytes of the stream.
package decompress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression is a compression format.
type Compression uint8

const (
	Auto Compression = iota // Detect the format
	None
	Zstd
	Gzip
	S2
	LZ4
)

var compressionNames = [...]string{
	Auto: "auto",
	None: "none",
	Zstd: "zstd",
	Gzip: "gzip",
	S2:   "s2",
	LZ4:  "lz4",
}

var ErrUnknownCompression = errors.New("unknown compression")

func (c Compression) String() string {
	if int(c) < len(compressionNames) {
		return compressionNames[c]
	}
	return fmt.Sprintf("Compression(%d)", c)
}

// ParseCompression returns the Compression called name.
func ParseCompression(name string) (Compression, error) {
	for c, n := range compressionNames {
		if n == name {
			return Compression(c), nil
		}
	}
	return Auto, fmt.Errorf("%w %q", ErrUnknownCompression, name)
}

// FromExtension returns the compression implied by the extension of path, or
// Auto if there is none.
func FromExtension(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return Zstd
	case ".gz":
		return Gzip
	case ".s2", ".sz":
		return S2
	case ".lz4":
		return LZ4
	default:
		return Auto
	}
}

var (
	zstdMagic   = []byte{0x28, 0xB5, 0x2F, 0xFD}
	gzipMagic   = []byte{0x1F, 0x8B}
	lz4Magic    = []byte{0x04, 0x22, 0x4D, 0x18}
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
	s2Magic     = []byte("\xff\x06\x00\x00S2sTwO")
)

const maxMagicLen = 10

// Detect returns the compression of a stream starting with header, or None
// if it is not recognised.
func Detect(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, zstdMagic):
		return Zstd
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip
	case bytes.HasPrefix(header, lz4Magic):
		return LZ4
	case bytes.HasPrefix(header, s2Magic), bytes.HasPrefix(header, snappyMagic):
		return S2
	default:
		return None
	}
}

// Open returns a reader of the decompressed contents of r.  If c is Auto,
// the compression is detected from the first bytes of r.  Closing the
// returned reader does not close r.
func Open(r io.Reader, c Compression) (io.ReadCloser, error) {
	if c == Auto {
		br := bufio.NewReader(r)
		header, err := br.Peek(maxMagicLen)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		c = Detect(header)
		r = br
	}
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Zstd:
		d, err := zstd.NewReader(r,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(true),
		)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return d.IOReadCloser(), nil
	case Gzip:
		z, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return z, nil
	case S2:
		return io.NopCloser(s2.NewReader(r)), nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}
}

// OpenFile opens the file at path and returns a reader of its decompressed
// contents.  If c is Auto, the compression is taken from the file
// extension, or else detected from the contents.  Closing the returned reader
// closes the file.
func OpenFile(path string, c Compression) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if c == Auto {
		c = FromExtension(path)
	}
	rc, err := Open(f, c)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &fileReader{ReadCloser: rc, file: f}, nil
}

type fileReader struct {
	io.ReadCloser
	file *os.File
}

func (r *fileReader) Close() error {
	return errors.Join(r.ReadCloser.Close(), r.file.Close())
}
