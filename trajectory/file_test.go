/*
 * file_test.go, part of chemtraj.
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

package trajectory

import (
	"io"
	"testing"
)

func TestMemoryFileWriteReadLine(t *testing.T) {
	f := OpenMemory("w")
	if err := f.WriteLine("first"); err != nil {
		t.Fatal(err)
	}
	if err := f.WriteLine("second"); err != nil {
		t.Fatal(err)
	}
	f.Seek(0, io.SeekStart)

	line, err := f.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if line != "first" {
		t.Fatalf("got %q, want %q", line, "first")
	}
	line, err = f.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if line != "second" {
		t.Fatalf("got %q, want %q", line, "second")
	}
	if !f.AtEOF() {
		t.Fatal("expected EOF after reading both lines")
	}
	if _, err := f.ReadLine(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestMemoryFileReadLineStripsCRLF(t *testing.T) {
	f := OpenMemoryWithData("r", []byte("one\r\ntwo\n"))
	l1, err := f.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if l1 != "one" {
		t.Fatalf("got %q, want %q", l1, "one")
	}
	l2, err := f.ReadLine()
	if err != nil {
		t.Fatal(err)
	}
	if l2 != "two" {
		t.Fatalf("got %q, want %q", l2, "two")
	}
}

func TestMemoryFileSeekAndPos(t *testing.T) {
	f := OpenMemoryWithData("r", []byte("abcdefgh"))
	buf := make([]byte, 3)
	n, err := f.Read(buf)
	if err != nil || n != 3 {
		t.Fatalf("read %d bytes, err %v", n, err)
	}
	if f.Pos() != 3 {
		t.Fatalf("got pos %d, want 3", f.Pos())
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	if f.Pos() != 0 {
		t.Fatalf("expected pos 0 after seeking to start, got %d", f.Pos())
	}
	if _, err := f.Seek(-2, io.SeekEnd); err != nil {
		t.Fatal(err)
	}
	rest := make([]byte, 10)
	n, _ = f.Read(rest)
	if string(rest[:n]) != "gh" {
		t.Fatalf("got %q, want %q", rest[:n], "gh")
	}
}

func TestMemoryFileWritePastEndGrows(t *testing.T) {
	f := OpenMemory("w")
	f.Write([]byte("hello"))
	f.Seek(10, io.SeekStart)
	f.Write([]byte("world"))
	if f.Size() != 15 {
		t.Fatalf("got size %d, want 15", f.Size())
	}
}

func TestGzipRoundTrip(t *testing.T) {
	comp, err := compressionForPath("traj.xyz.gz")
	if err != nil {
		t.Fatal(err)
	}
	if comp != Gzip {
		t.Fatalf("got %v, want Gzip", comp)
	}
	raw := []byte("some plain text content, repeated repeated repeated\n")
	packed, err := compress(Gzip, raw)
	if err != nil {
		t.Fatal(err)
	}
	unpacked, err := decompress(Gzip, packed)
	if err != nil {
		t.Fatal(err)
	}
	if string(unpacked) != string(raw) {
		t.Fatalf("got %q, want %q", unpacked, raw)
	}
}

func TestZstdRoundTrip(t *testing.T) {
	raw := []byte("zstandard round trip content, over and over and over\n")
	packed, err := compress(Zstd, raw)
	if err != nil {
		t.Fatal(err)
	}
	unpacked, err := decompress(Zstd, packed)
	if err != nil {
		t.Fatal(err)
	}
	if string(unpacked) != string(raw) {
		t.Fatalf("got %q, want %q", unpacked, raw)
	}
}

func TestBzip2IsReadOnly(t *testing.T) {
	comp, err := compressionForPath("traj.pdb.bz2")
	if err != nil {
		t.Fatal(err)
	}
	if comp != Bzip2 {
		t.Fatalf("got %v, want Bzip2", comp)
	}
	if _, err := compress(Bzip2, []byte("x")); err != nil {
		t.Fatalf("compress(Bzip2, ...) fell through to a no-op passthrough and should not itself error, got %v", err)
	}
}

func TestXZIsRejectedAtOpen(t *testing.T) {
	if _, err := compressionForPath("traj.xyz.xz"); err == nil {
		t.Fatal("expected an error for .xz, since no xz codec is wired")
	}
}

func TestOpenWriteRejectsBzip2(t *testing.T) {
	if _, err := Open("/nonexistent/traj.pdb.bz2", "w"); err == nil {
		t.Fatal("expected an error opening a .bz2 path for writing")
	}
}
