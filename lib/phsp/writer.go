package phsp

import (
	"bufio"
	"io"
	"os"
)

// Writer is a sequential sink for one phase space file. Constructing it
// immediately encodes and writes the header slot, fixing the record layout
// for the stream's lifetime; every Write appends one record in that layout.
// Nothing is durable until Close has flushed the buffer.
type Writer struct {
	Header Header

	f   *os.File
	bw  *bufio.Writer
	buf [MaxRecordLength]byte
}

// Create creates (or truncates) the file at path and writes hd's slot to it.
// The Writer keeps its own copy of the header, so the caller may keep
// mutating hd afterwards, as the sampling operation does with its
// accumulator.
func Create(path string, hd *Header) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil { return nil, err }

	wr, err := NewWriter(f, hd)
	if err != nil {
		f.Close()
		return nil, err
	}
	wr.f = f
	return wr, nil
}

// NewWriter writes hd's slot to w and returns a Writer appending to it. The
// Writer does not own w; Close only flushes.
func NewWriter(w io.Writer, hd *Header) (*Writer, error) {
	bw := bufio.NewWriterSize(w, BufferCapacity)
	if _, err := bw.Write(hd.Encode()); err != nil { return nil, err }
	return &Writer{ Header: *hd, bw: bw }, nil
}

// Write encodes and appends one record.
func (wr *Writer) Write(rec *Record) error {
	rec.Encode(wr.buf[:], &wr.Header)
	_, err := wr.bw.Write(wr.buf[:wr.Header.RecordSize])
	return err
}

// Close flushes the buffer and, if the Writer was opened with Create, closes
// the file.
func (wr *Writer) Close() error {
	err := wr.bw.Flush()
	if wr.f != nil {
		if cerr := wr.f.Close(); err == nil { err = cerr }
	}
	return err
}
