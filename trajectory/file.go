/*
 * file.go, part of chemtraj.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// file.go is chemtraj's file layer: it recognises a compression suffix,
// decompresses transparently on open, and gives the codec a plain
// io.ReadWriteSeeker to work with regardless of what's on disk. Following
// the teacher's traj/stf/stf.go, compression is chosen by filename suffix,
// not by sniffing magic bytes.

package trajectory

import (
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	chem "github.com/rmera/chemtraj"
)

// Compression identifies the transparent codec applied to a File's bytes
// on disk.
type Compression int

const (
	NoCompression Compression = iota
	Gzip
	Bzip2
	Zstd
)

func compressionForPath(path string) (Compression, error) {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return Gzip, nil
	case strings.HasSuffix(path, ".bz2"):
		return Bzip2, nil
	case strings.HasSuffix(path, ".zst"):
		return Zstd, nil
	case strings.HasSuffix(path, ".xz"):
		return NoCompression, chem.NewError(chem.ConfigurationErr, "xz compression is recognised but not supported by this build: no .xz codec is wired")
	default:
		return NoCompression, nil
	}
}

// File is a random-access, compression-transparent byte store: either
// backed by a path on disk, or purely in memory for round-tripping tests.
// Content is held fully decompressed in memory; Sync/Close recompress and
// write it out. This keeps Seek meaningful even over gzip/zstd streams,
// which are not seekable in their compressed form.
type File struct {
	path        string
	mode        string // "r", "w", "a"
	compression Compression
	data        []byte
	pos         int64
	dirty       bool
}

// Open opens path in mode ('r', 'w', or 'a'), dispatching compression by
// suffix. A memory-backed file (no disk I/O at all) is obtained with
// OpenMemory instead.
func Open(path, mode string) (*File, error) {
	comp, err := compressionForPath(path)
	if err != nil {
		return nil, err
	}
	f := &File{path: path, mode: mode, compression: comp}
	switch mode {
	case "r", "a":
		raw, err := os.ReadFile(path)
		if err != nil {
			if mode == "a" && os.IsNotExist(err) {
				f.data = nil
				return f, nil
			}
			return nil, chem.NewCriticalError(chem.FileErr, fmt.Sprintf("opening %q: %v", path, err))
		}
		data, err := decompress(comp, raw)
		if err != nil {
			return nil, chem.NewCriticalError(chem.FileErr, fmt.Sprintf("decompressing %q: %v", path, err))
		}
		f.data = data
		if mode == "a" {
			f.pos = int64(len(data))
		}
		return f, nil
	case "w":
		if comp == Bzip2 {
			return nil, chem.NewError(chem.ConfigurationErr, "bzip2 writing is not supported (no compress/bzip2 writer in the standard library or the ecosystem this module depends on)")
		}
		return f, nil
	default:
		return nil, chem.NewError(chem.ConfigurationErr, fmt.Sprintf("unknown file mode %q", mode))
	}
}

// OpenMemory returns a File with no backing path: all reads and writes
// stay in memory, matching the spec's "memory-backed buffer" requirement
// for in-memory round-tripping tests.
func OpenMemory(mode string) *File {
	return &File{mode: mode}
}

// OpenMemoryWithData returns a memory-backed File pre-loaded with data,
// for read-mode round-tripping.
func OpenMemoryWithData(mode string, data []byte) *File {
	return &File{mode: mode, data: data}
}

func decompress(c Compression, raw []byte) ([]byte, error) {
	switch c {
	case NoCompression:
		return raw, nil
	case Gzip:
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case Bzip2:
		return io.ReadAll(bzip2.NewReader(bytes.NewReader(raw)))
	case Zstd:
		zr, err := zstd.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		return io.ReadAll(zr)
	default:
		return raw, nil
	}
}

func compress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case NoCompression:
		return data, nil
	case Gzip:
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case Zstd:
		var buf bytes.Buffer
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return data, nil
	}
}

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)
	return n, nil
}

// Write implements io.Writer: bytes are appended to the in-memory buffer
// at the current position, extending it if writing past the end.
func (f *File) Write(p []byte) (int, error) {
	if f.mode == "r" {
		return 0, chem.NewError(chem.FileErr, "file opened read-only")
	}
	end := f.pos + int64(len(p))
	if end > int64(len(f.data)) {
		grown := make([]byte, end)
		copy(grown, f.data)
		f.data = grown
	}
	copy(f.data[f.pos:end], p)
	f.pos = end
	f.dirty = true
	return len(p), nil
}

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = f.pos + offset
	case io.SeekEnd:
		newPos = int64(len(f.data)) + offset
	default:
		return 0, chem.NewError(chem.FileErr, "invalid seek whence")
	}
	if newPos < 0 {
		return 0, chem.NewError(chem.FileErr, "negative seek position")
	}
	f.pos = newPos
	return f.pos, nil
}

// Pos returns the current read/write offset.
func (f *File) Pos() int64 { return f.pos }

// Size returns the total number of (decompressed) bytes currently held.
func (f *File) Size() int64 { return int64(len(f.data)) }

// AtEOF reports whether the current position is at or past the end of
// the buffered content.
func (f *File) AtEOF() bool { return f.pos >= int64(len(f.data)) }

// ReadLine reads one newline-terminated line starting at the current
// position (the trailing '\n', and any '\r' immediately before it, are
// stripped) and advances past it. Text codecs use this instead of
// bufio.Scanner so that Pos() always reflects an exact byte offset a
// Format's Forward can report as a frame boundary. Returns io.EOF if
// called with nothing left to read.
func (f *File) ReadLine() (string, error) {
	if f.AtEOF() {
		return "", io.EOF
	}
	rest := f.data[f.pos:]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 {
		line := string(rest)
		f.pos = int64(len(f.data))
		return line, nil
	}
	line := string(rest[:nl])
	line = strings.TrimSuffix(line, "\r")
	f.pos += int64(nl) + 1
	return line, nil
}

// WriteLine writes s followed by a newline.
func (f *File) WriteLine(s string) error {
	_, err := f.Write([]byte(s + "\n"))
	return err
}

// Sync flushes pending writes to disk (recompressing as needed) without
// releasing the File: further reads and writes may continue.
func (f *File) Sync() error {
	if f.path == "" || !f.dirty {
		return nil
	}
	out, err := compress(f.compression, f.data)
	if err != nil {
		return chem.NewError(chem.FileErr, fmt.Sprintf("compressing %q: %v", f.path, err))
	}
	if err := os.WriteFile(f.path, out, 0644); err != nil {
		return chem.NewCriticalError(chem.FileErr, fmt.Sprintf("writing %q: %v", f.path, err))
	}
	f.dirty = false
	return nil
}

// Close flushes pending writes and releases the File. Matches the
// library-wide policy of reporting flush errors but releasing the
// resource unconditionally.
func (f *File) Close() error {
	err := f.Sync()
	f.data = nil
	return err
}
