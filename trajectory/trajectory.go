/*
 * trajectory.go, part of chemtraj.
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

// trajectory.go drives one Format over one File: format selection by
// name or extension, lazy frame indexing for random access, and the
// read/write/append state machine.

package trajectory

import (
	"path/filepath"
	"sort"
	"strings"

	chem "github.com/rmera/chemtraj"
)

// FormatConstructor builds a chem.Format bound to f, in the given mode
// ('r', 'w', or 'a'), warning through warn.
type FormatConstructor func(f *File, mode string, warn chem.WarnFunc) (chem.Format, error)

// registry maps a format name (e.g. "PDB") and the file extensions it
// claims to its constructor. Both maps are package-level and shared by
// every Trajectory in the process; they are filled by the RegisterFormat
// calls in the formats package's init functions. There is no way to open
// a Trajectory with a constructor that is not registered here, so a
// caller that does not import chemtraj/formats sees an empty registry
// and every open fails with a ConfigurationError.
var (
	byName extRegistry
	byExt  extRegistry
)

type extRegistry map[string]FormatConstructor

// RegisterFormat installs ctor under name and every extension in exts
// (each including the leading dot, e.g. ".pdb"). Called from each
// concrete codec package's init function.
func RegisterFormat(name string, exts []string, ctor FormatConstructor) {
	if byName == nil {
		byName = make(extRegistry)
	}
	if byExt == nil {
		byExt = make(extRegistry)
	}
	byName[strings.ToUpper(name)] = ctor
	for _, e := range exts {
		byExt[strings.ToLower(e)] = ctor
	}
}

// RegisteredFormats returns the names of every format registered so far
// (by importing its package for side effects), sorted.
func RegisteredFormats() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupFormat(path, explicit string) (FormatConstructor, error) {
	if explicit != "" {
		ctor, ok := byName[strings.ToUpper(explicit)]
		if !ok {
			return nil, chem.NewError(chem.ConfigurationErr, "unknown format name: "+explicit)
		}
		return ctor, nil
	}
	ext := strings.ToLower(filepath.Ext(stripCompressionSuffix(path)))
	ctor, ok := byExt[ext]
	if !ok {
		return nil, chem.NewError(chem.ConfigurationErr, "cannot determine format from extension: "+path)
	}
	return ctor, nil
}

func stripCompressionSuffix(path string) string {
	for _, suf := range []string{".gz", ".bz2", ".zst", ".xz"} {
		if strings.HasSuffix(path, suf) {
			return strings.TrimSuffix(path, suf)
		}
	}
	return path
}

// Trajectory drives one Format over one File, presenting the read /
// write / append / random-access surface described for the engine as a
// whole. It exclusively owns both the File and the Format it opens.
type Trajectory struct {
	file   *File
	format chem.Format
	mode   string
	warn   chem.WarnFunc

	index      []int64
	haveIndex  bool
	cursor     int
	overrideT  *chem.Topology
	overrideC  *chem.UnitCell
	haveOverT  bool
	haveOverC  bool
}

// Option configures a Trajectory at Open time.
type Option func(*Trajectory)

// WithWarn installs a custom warning sink.
func WithWarn(w chem.WarnFunc) Option {
	return func(t *Trajectory) { t.warn = w }
}

// OpenTrajectory opens path in mode ('r', 'w', or 'a'). If format is
// non-empty it names a registered format explicitly; otherwise the
// format is chosen from path's extension (after stripping a
// compression suffix).
func OpenTrajectory(path, mode string, format string, opts ...Option) (*Trajectory, error) {
	if mode != "r" && mode != "w" && mode != "a" {
		return nil, chem.NewError(chem.ConfigurationErr, "unknown trajectory mode: "+mode)
	}
	ctor, err := lookupFormat(path, format)
	if err != nil {
		return nil, err
	}
	f, err := Open(path, mode)
	if err != nil {
		return nil, err
	}
	t := &Trajectory{file: f, mode: mode}
	for _, o := range opts {
		o(t)
	}
	fmtCodec, err := ctor(f, mode, t.warn)
	if err != nil {
		return nil, err
	}
	t.format = fmtCodec

	if mode == "a" {
		if err := t.buildIndex(); err != nil {
			return nil, err
		}
		if _, err := t.file.Seek(0, 2); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// OpenMemoryTrajectory opens a Trajectory over an in-memory buffer,
// dispatching format purely by explicit name (there is no path to infer
// an extension from).
func OpenMemoryTrajectory(mode, format string, data []byte, opts ...Option) (*Trajectory, error) {
	ctor, ok := byName[strings.ToUpper(format)]
	if !ok {
		return nil, chem.NewError(chem.ConfigurationErr, "unknown format name: "+format)
	}
	var f *File
	if mode == "r" || mode == "a" {
		f = OpenMemoryWithData(mode, data)
	} else {
		f = OpenMemory(mode)
	}
	t := &Trajectory{file: f, mode: mode}
	for _, o := range opts {
		o(t)
	}
	fc, err := ctor(f, mode, t.warn)
	if err != nil {
		return nil, err
	}
	t.format = fc
	if mode == "a" {
		if err := t.buildIndex(); err != nil {
			return nil, err
		}
		if _, err := t.file.Seek(0, 2); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// buildIndex seeks to the start of the file and calls Forward repeatedly
// until exhaustion, recording each frame's start offset, then seeks back
// to the position it was called from. The index is cached until the next write.
func (t *Trajectory) buildIndex() error {
	start := t.file.Pos()
	if _, err := t.file.Seek(0, 0); err != nil {
		return err
	}
	var idx []int64
	for {
		off, err := t.format.Forward()
		if err != nil {
			if chem.IsLastFrame(err) {
				break
			}
			return err
		}
		idx = append(idx, off)
	}
	t.index = idx
	t.haveIndex = true
	if _, err := t.file.Seek(start, 0); err != nil {
		return err
	}
	return nil
}

// Nsteps returns the number of frames in the trajectory, building the
// frame index on first call.
func (t *Trajectory) Nsteps() (int, error) {
	if !t.haveIndex {
		if err := t.buildIndex(); err != nil {
			return 0, err
		}
	}
	return len(t.index), nil
}

// Read decodes the next frame from the current cursor position, without
// touching the frame index unless Nsteps was already called.
func (t *Trajectory) Read(fr *chem.Frame) error {
	if err := t.format.ReadNext(fr); err != nil {
		return err
	}
	t.applyOverrides(fr)
	return nil
}

// ReadStep seeks to frame n's indexed offset, then decodes it. Building
// the index the first time this (or Nsteps) is called.
func (t *Trajectory) ReadStep(n int, fr *chem.Frame) error {
	if !t.haveIndex {
		if err := t.buildIndex(); err != nil {
			return err
		}
	}
	if n < 0 || n >= len(t.index) {
		return chem.NewError(chem.FileErr, "step index out of range")
	}
	if _, err := t.file.Seek(t.index[n], 0); err != nil {
		return err
	}
	if err := t.format.ReadNext(fr); err != nil {
		return err
	}
	t.applyOverrides(fr)
	return nil
}

// Write appends fr as the next frame. Invalidates the cached frame
// index, since the underlying file has grown.
func (t *Trajectory) Write(fr *chem.Frame) error {
	if t.mode != "w" && t.mode != "a" {
		return chem.NewError(chem.ConfigurationErr, "trajectory is not open for writing")
	}
	if err := t.format.WriteNext(fr); err != nil {
		return err
	}
	t.haveIndex = false
	t.index = nil
	return nil
}

// SetTopology installs t as an override applied to every frame decoded
// from this point on, replacing whatever the codec produces. Applied
// after decoding, per the engine's override policy.
func (t *Trajectory) SetTopology(top *chem.Topology) {
	t.overrideT = top
	t.haveOverT = true
}

// SetCell installs c as a per-read cell override, analogous to
// SetTopology.
func (t *Trajectory) SetCell(c *chem.UnitCell) {
	t.overrideC = c
	t.haveOverC = true
}

func (t *Trajectory) applyOverrides(fr *chem.Frame) {
	if t.haveOverT {
		fr.SetTopology(t.overrideT)
	}
	if t.haveOverC {
		fr.SetCell(t.overrideC)
	}
}

// Sync flushes the underlying file without releasing it, so writing may
// continue afterward. The format is not flushed: a trailer such as PDB's
// END record is only written by Close.
func (t *Trajectory) Sync() error {
	if err := t.file.Sync(); err != nil {
		return err
	}
	return nil
}

// Close flushes the format (letting a writer emit its trailer) and then
// the file, reporting any error but releasing both unconditionally.
func (t *Trajectory) Close() error {
	var ferr error
	if closer, ok := t.format.(interface{ Close() error }); ok {
		ferr = closer.Close()
	}
	cerr := t.file.Close()
	if ferr != nil {
		return ferr
	}
	return cerr
}
