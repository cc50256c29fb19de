// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4"
	"golang.org/x/exp/mmap"
)

// Open opens the kar archive from r. It will also check
// if r actually holds a kar archive and return ErrFileFormat
// when it does not.
func Open(r io.ReaderAt) (*Archive, error) {
	fileMagic := make([]byte, MagicLength)
	if err := readFull(r, fileMagic, 0); err != nil {
		return nil, err
	}
	if !bytes.Equal(fileMagic, magic[:]) {
		return nil, ErrFileFormat
	}

	headerSizeBytes := make([]byte, HeaderSizeNumberLength)
	if err := readFull(r, headerSizeBytes, MagicLength); err != nil {
		return nil, err
	}
	headerSize := binaryToInt64(headerSizeBytes)
	if headerSize <= 0 || headerSize > maxHeaderSize {
		return nil, fmt.Errorf("%w: header size %d", ErrFileFormat, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if err := readFull(r, headerBytes, MagicLength+HeaderSizeNumberLength); err != nil {
		return nil, err
	}

	var header Header
	if err := gobDecode(&header, headerBytes); err != nil {
		return nil, err
	}

	entries := make(map[string]IndexEntry, len(header.Index))
	for _, e := range header.Index {
		if e.Offset < 0 || e.Size < 0 || e.CompressedSize < 0 {
			return nil, fmt.Errorf("%w: bad index entry %q", ErrFileFormat, e.Name)
		}
		if e.Size/maxCompressionRatio > e.CompressedSize {
			return nil, fmt.Errorf("%w: entry %q claims %d bytes from %d compressed", ErrFileFormat, e.Name, e.Size, e.CompressedSize)
		}
		if _, ok := entries[e.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate entry %q", ErrFileFormat, e.Name)
		}
		entries[e.Name] = e
	}

	return &Archive{
		reader:     r,
		header:     header,
		dataOffset: MagicLength + HeaderSizeNumberLength + headerSize,
		entries:    entries,
	}, nil
}

// OpenFile memory maps the archive at path. Close unmaps it.
func OpenFile(path string) (*Archive, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	ar, err := Open(r)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	ar.closer = r
	return ar, nil
}

// readFull treats a short read as a truncated archive
func readFull(r io.ReaderAt, p []byte, off int64) error {
	n, err := r.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == nil || err == io.EOF {
		return fmt.Errorf("%w: truncated at offset %d", ErrFileFormat, off)
	}
	return err
}

// Archive provides concurrent io for a kar file, and can provide
// an io.Reader for each file separately to perform actions on.
type Archive struct {
	reader     io.ReaderAt
	closer     io.Closer
	header     Header
	dataOffset int64
	entries    map[string]IndexEntry
}

// Header returns the archive header, index included
func (a *Archive) Header() Header {
	return a.header
}

// Names lists the files in the order they were added
func (a *Archive) Names() []string {
	names := make([]string, 0, len(a.header.Index))
	for _, e := range a.header.Index {
		names = append(names, e.Name)
	}
	return names
}

// ReadAll returns the entire contents of a file with a given name
func (a *Archive) ReadAll(name string) ([]byte, error) {
	f, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(f, f.Size()+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %v", ErrFileFormat, name, err)
	}
	if int64(len(data)) != f.Size() {
		return nil, fmt.Errorf("%w: %q holds %d bytes, index says %d", ErrFileFormat, name, len(data), f.Size())
	}
	return data, nil
}

// Open returns a Reader for a file in the Archive
func (a *Archive) Open(name string) (*Reader, error) {
	e, ok := a.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	section := io.NewSectionReader(a.reader, a.dataOffset+e.Offset, e.CompressedSize)
	return &Reader{
		entry:  e,
		reader: lz4.NewReader(section),
	}, nil
}

// Close releases the mapping made by OpenFile. Archives opened from a
// plain io.ReaderAt leave closing it to the caller.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// Reader is a reader for a single file in an Archive.
// Abstracts away the location that needs to be known.
type Reader struct {
	entry  IndexEntry
	reader io.Reader
}

// Name of the file being read
func (r *Reader) Name() string {
	return r.entry.Name
}

// Size of the file once decompressed
func (r *Reader) Size() int64 {
	return r.entry.Size
}

// Read reads already decompressed data
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.reader.Read(p)
}
