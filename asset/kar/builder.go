// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in
// the header, it will be overwritten anyway.
func NewBuilder(header Header) (*Builder, error) {
	temp, err := os.MkdirTemp("", "karBuilder")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTempFail, err)
	}
	return &Builder{
		tempDir: temp,
		header:  header,
		names:   make(map[string]struct{}),
	}, nil
}

type tempFile struct {

	// Name is the actual name of the file
	Name string

	// TempName is the temporary name given by the Builder
	TempName string

	// Size in uncompressed state
	Size int64

	Compressed int64
}

// Builder is the high level builder for the archive format.
// Archives are versioned and cannot be appended to, this Builder
// is the way to create one. Every Add compresses into a temporary
// directory, WriteTo bundles the files together. Close removes the
// temporary directory.
type Builder struct {
	tempDir string
	header  Header

	mutex sync.Mutex
	next  int
	names map[string]struct{}
	files []tempFile
}

var _ io.WriterTo = (*Builder)(nil)

// Add compresses everything read from r into the builder under name.
// Blocks until lz4 finishes compression. Is safe to use concurrently
// in different goroutines, files keep the order their Add calls started in.
func (b *Builder) Add(name string, r io.Reader) error {
	b.mutex.Lock()
	if _, ok := b.names[name]; ok {
		b.mutex.Unlock()
		return fmt.Errorf("kar: duplicate file %q", name)
	}
	b.names[name] = struct{}{}
	idx := len(b.files)
	tempName := strconv.Itoa(b.next)
	b.next++
	b.files = append(b.files, tempFile{Name: name, TempName: tempName})
	b.mutex.Unlock()

	written, compressed, err := b.compress(tempName, r)

	b.mutex.Lock()
	defer b.mutex.Unlock()
	if err != nil {
		b.files[idx].TempName = ""
		delete(b.names, name)
		return err
	}
	b.files[idx].Size = written
	b.files[idx].Compressed = compressed
	return nil
}

func (b *Builder) compress(tempName string, r io.Reader) (int64, int64, error) {
	f, err := os.Create(filepath.Join(b.tempDir, tempName))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrTempFail, err)
	}
	defer f.Close()

	writer := lz4.NewWriter(f)
	written, err := io.Copy(writer, r)
	if err != nil {
		return 0, 0, err
	}
	if err := writer.Close(); err != nil {
		return 0, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrTempFail, err)
	}
	return written, info.Size(), nil
}

// Len is the number of files added so far
func (b *Builder) Len() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	n := 0
	for _, f := range b.files {
		if f.TempName != "" {
			n++
		}
	}
	return n
}

// WriteTo bundles and writes all of the files added to the Builder
// into a kar archive that is ready to use. It can be called again
// after more files are added.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	var files []tempFile
	for _, f := range b.files {
		if f.TempName != "" {
			files = append(files, f)
		}
	}

	header := b.header
	header.Index = nil
	var offset int64
	for _, f := range files {
		header.Index = append(header.Index, IndexEntry{
			Name:           f.Name,
			Offset:         offset,
			Size:           f.Size,
			CompressedSize: f.Compressed,
		})
		offset += f.Compressed
	}

	rawHeader, err := gobEncode(header)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, chunk := range [][]byte{magic[:], int64ToBinary(int64(len(rawHeader))), rawHeader} {
		n, err := w.Write(chunk)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	for _, f := range files {
		n, err := b.copyFile(w, f.TempName)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (b *Builder) copyFile(w io.Writer, tempName string) (int64, error) {
	f, err := os.Open(filepath.Join(b.tempDir, tempName))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTempFail, err)
	}
	defer f.Close()
	return io.Copy(w, f)
}

// Close removes the compressed files. The builder cannot be used afterwards.
func (b *Builder) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.files = nil
	return os.RemoveAll(b.tempDir)
}
