package phsp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// BufferCapacity is the default read/write buffer size. Files hold millions
// of 28- or 32-byte records, so per-record syscalls would dominate the
// runtime without it.
const BufferCapacity = 1 * 1024 * 1024

// Options controls how a Reader treats a file.
type Options struct {
	// StrictLength turns the declared-vs-actual file size check into a hard
	// ErrBadLength failure. By default a mismatch is only logged, matching
	// how existing tools treat files that other programs have appended junk
	// to.
	StrictLength bool
	// BufferCapacity overrides the default 1 MiB read buffer. Zero means
	// the default.
	BufferCapacity int
}

// Reader is a forward-only, single-pass producer of decoded records from one
// phase space file. It yields exactly Header.TotalParticles records and then
// reports io.EOF, regardless of any remaining bytes in the stream.
// Re-reading a file requires opening a new Reader.
type Reader struct {
	Header Header

	f    *os.File
	br   *bufio.Reader
	next int64
	buf  [MaxRecordLength]byte
}

// Open opens the phase space file at path with default Options.
func Open(path string) (*Reader, error) {
	return OpenWith(path, Options{ })
}

// OpenWith opens the phase space file at path, decodes its header, and
// leaves the stream cursor at the first record.
func OpenWith(path string, opt Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil { return nil, err }

	rd, err := newReader(f, opt)
	if err != nil {
		f.Close()
		return nil, err
	}
	return rd, nil
}

func newReader(f *os.File, opt Options) (*Reader, error) {
	info, err := f.Stat()
	if err != nil { return nil, err }

	capacity := opt.BufferCapacity
	if capacity <= 0 { capacity = BufferCapacity }
	br := bufio.NewReaderSize(f, capacity)

	var buf [HeaderLength]byte
	if _, err := io.ReadFull(br, buf[:]); err != nil { return nil, err }
	hd, err := DecodeHeader(buf[:])
	if err != nil { return nil, err }

	if info.Size() != hd.ExpectedSize() {
		if opt.StrictLength {
			return nil, fmt.Errorf("expected %d bytes in file %s, not %d: %w",
				hd.ExpectedSize(), f.Name(), info.Size(), ErrBadLength)
		}
		log.WithFields(log.Fields{
			"file": f.Name(), "expected": hd.ExpectedSize(),
			"actual": info.Size(),
		}).Warn("file length does not match header particle count")
	}

	// Skip the padding so the cursor lands on the first record.
	if _, err := br.Discard(hd.RecordSize - HeaderLength); err != nil {
		return nil, err
	}

	return &Reader{ Header: *hd, f: f, br: br }, nil
}

// Next returns the next record. After TotalParticles successful reads it
// returns io.EOF.
func (rd *Reader) Next() (Record, error) {
	if rd.next >= int64(rd.Header.TotalParticles) {
		return Record{ }, io.EOF
	}
	if _, err := io.ReadFull(rd.br, rd.buf[:rd.Header.RecordSize]); err != nil {
		return Record{ }, err
	}
	rd.next++
	return DecodeRecord(rd.buf[:], &rd.Header), nil
}

// Close closes the underlying file.
func (rd *Reader) Close() error {
	return rd.f.Close()
}
