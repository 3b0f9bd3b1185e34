/*
 * Copyright 2026 Kasabi SDK Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package kasabi

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
)

// splitReadSize is the size of each read from the source file.
const splitReadSize = 4096

// PartFile is one fragment of a source file produced by a Splitter.
type PartFile struct {
	// Path is the location of the part on disk.
	Path string
	// Index is the 1-based position of the part in upload order.
	Index int
	// Lines is the number of lines in the part.
	Lines int
	// Synthetic is true when the part was written by the splitter, and false
	// when it is the caller's source file passed through unchanged.
	Synthetic bool
}

// Splitter cuts line-oriented files, such as N-Triples, into parts of at most
// MaxLines lines. A line is never split across two parts.
type Splitter struct {
	// MaxLines is the maximum number of lines in one part.
	MaxLines int
	// TempDir is the directory under which part files are written.
	TempDir string

	now func() time.Time
}

// NewSplitter creates a splitter writing parts under tempDir.
func NewSplitter(maxLines int, tempDir string) *Splitter {
	return &Splitter{
		MaxLines: maxLines,
		TempDir:  tempDir,
		now:      time.Now,
	}
}

// Split reads source and writes it out as parts of at most MaxLines lines.
//
// A source with fewer than MaxLines lines is not copied: the result is a single
// non-synthetic part pointing at source. Otherwise every line ends up in exactly
// one part, including a shorter trailing part, and concatenating the parts in
// order reproduces source byte for byte.
//
// Parts are written to a fresh directory under TempDir. On failure no parts are
// left behind.
func (s *Splitter) Split(source string) (parts []PartFile, err error) {
	if s.MaxLines <= 0 {
		return nil, fmt.Errorf("%w: max lines per part must be positive, got %d", ErrInvalidArgument, s.MaxLines)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, newError(ErrIO, "split", err)
	}
	defer f.Close()

	now := s.now
	if now == nil {
		now = time.Now
	}
	w := &partWriter{
		tempDir: s.TempDir,
		date:    now().Format("01-02-06"),
		ext:     filepath.Ext(source),
	}
	defer func() {
		if err != nil {
			err = w.abort(err)
		}
	}()

	r := bufio.NewReaderSize(f, splitReadSize)
	var buf bytes.Buffer
	lines, total := 0, 0
	for {
		line, rerr := r.ReadBytes('\n')
		if len(line) > 0 {
			buf.Write(line)
			lines++
			total++
			if lines >= s.MaxLines {
				if err := w.flush(buf.Bytes(), lines); err != nil {
					return nil, err
				}
				buf.Reset()
				lines = 0
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, newError(ErrIO, "split", rerr)
		}
	}

	if total < s.MaxLines {
		return []PartFile{{Path: source, Index: 1, Lines: total}}, nil
	}
	if lines > 0 {
		if err := w.flush(buf.Bytes(), lines); err != nil {
			return nil, err
		}
	}
	return w.parts, nil
}

type partWriter struct {
	tempDir string
	dir     string
	date    string
	ext     string
	parts   []PartFile
}

func (w *partWriter) flush(data []byte, lines int) error {
	if w.dir == "" {
		dir, err := os.MkdirTemp(w.tempDir, "kasabi-split-")
		if err != nil {
			return newError(ErrIO, "split", err)
		}
		w.dir = dir
	}

	index := len(w.parts) + 1
	path := filepath.Join(w.dir, fmt.Sprintf("part_%s_%04d%s", w.date, index, w.ext))
	if err := writePart(path, data); err != nil {
		return newError(ErrIO, "split", err)
	}
	w.parts = append(w.parts, PartFile{
		Path:      path,
		Index:     index,
		Lines:     lines,
		Synthetic: true,
	})
	return nil
}

// abort removes everything written so far and returns cause, joined with any
// cleanup failure.
func (w *partWriter) abort(cause error) error {
	if w.dir == "" {
		return cause
	}
	if err := os.RemoveAll(w.dir); err != nil {
		return multierror.Append(cause, newError(ErrIO, "split cleanup", err))
	}
	return cause
}

func writePart(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = f.Write(data)
	return err
}

// removePart deletes a synthetic part. The caller's own source file is never touched.
func removePart(p PartFile) error {
	if !p.Synthetic {
		return nil
	}
	if err := os.Remove(p.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// removeSplitDir removes the directory holding synthetic parts. It only
// succeeds once every part in it is gone.
func removeSplitDir(parts []PartFile) error {
	if len(parts) == 0 || !parts[0].Synthetic {
		return nil
	}
	if err := os.Remove(filepath.Dir(parts[0].Path)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
