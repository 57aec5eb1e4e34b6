// Package chapters converts the nested chapter list of a documentation
// project config into a flat list of chapter file names and answers
// lookups against it.
//
// A chapter list mixes plain file names with titled entries and nested
// sections:
//
//	chapters:
//	  - index.md
//	  - Usage:
//	      - usage/install.md
//	      - usage/cli.md
//	  - Changelog: changelog.md
//
// List flattens that structure, preserving document order for sequences.
// Mapping entries are visited in sorted key order; in practice every
// mapping in a chapter list has a single entry, so the order only
// matters for malformed input.
package chapters

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrChapterNotFound is returned by lookups for files that are not in
// the chapter list.
var ErrChapterNotFound = errors.New("chapter not found")

// List holds a chapter list together with its flattened form.
// It is not safe for unsynchronized concurrent mutation.
type List struct {
	raw        []any
	flat       []string
	workingDir string
	srcDir     string
}

// ListOption configures New.
type ListOption func(*List)

// WithWorkingDir sets the directory holding the preprocessed copies of
// the chapter files, used by ByPath.
func WithWorkingDir(dir string) ListOption {
	return func(l *List) {
		l.workingDir = dir
	}
}

// WithSrcDir sets the directory holding the chapter sources, used by
// ByPath.
func WithSrcDir(dir string) ListOption {
	return func(l *List) {
		l.srcDir = dir
	}
}

// New builds a List from the raw chapter structure as decoded from the
// project config (strings, []any, and map[string]any nodes).
func New(raw []any, opts ...ListOption) *List {
	l := &List{raw: raw}
	for _, opt := range opts {
		opt(l)
	}
	l.flat = Flatten(raw)
	return l
}

// FromConfig builds a List from a decoded project config. The config
// must contain a "chapters" list; "tmp_dir" and "src_dir" are picked up
// when present.
func FromConfig(config map[string]any) (*List, error) {
	rawChapters, present := config["chapters"]
	if !present {
		return nil, errors.New("config has no chapters list")
	}
	raw, ok := rawChapters.([]any)
	if !ok {
		return nil, fmt.Errorf("chapters must be a list, got %T", rawChapters)
	}

	var opts []ListOption
	if dir, ok := config["tmp_dir"].(string); ok {
		opts = append(opts, WithWorkingDir(dir))
	}
	if dir, ok := config["src_dir"].(string); ok {
		opts = append(opts, WithSrcDir(dir))
	}
	return New(raw, opts...), nil
}

// Raw returns the original chapter structure.
func (l *List) Raw() []any {
	return l.raw
}

// SetRaw replaces the chapter structure and re-flattens it.
func (l *List) SetRaw(raw []any) {
	l.raw = raw
	l.flat = Flatten(raw)
}

// Flat returns a copy of the flattened chapter file names.
func (l *List) Flat() []string {
	out := make([]string, len(l.flat))
	copy(out, l.flat)
	return out
}

// Len returns the number of chapter files.
func (l *List) Len() int {
	return len(l.flat)
}

// At returns the i-th chapter file name.
func (l *List) At(i int) string {
	return l.flat[i]
}

// Contains reports whether name is one of the chapter file names.
func (l *List) Contains(name string) bool {
	for _, chapter := range l.flat {
		if chapter == name {
			return true
		}
	}
	return false
}

// Paths returns every chapter file name joined under parent.
func (l *List) Paths(parent string) []string {
	out := make([]string, len(l.flat))
	for i, chapter := range l.flat {
		out[i] = filepath.Join(parent, chapter)
	}
	return out
}

// ByPath finds the chapter entry matching an absolute or relative file
// path located under the working dir or the src dir, and returns the
// chapter name as it is stated in the chapter list. Returns
// ErrChapterNotFound when the file is outside both dirs or not listed.
func (l *List) ByPath(file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", file, err)
	}

	var chapterPath string
	if rel, ok := relativeTo(l.workingDir, abs); ok {
		chapterPath = rel
	}
	if rel, ok := relativeTo(l.srcDir, abs); ok {
		chapterPath = rel
	}

	if chapterPath != "" && l.Contains(chapterPath) {
		return chapterPath, nil
	}
	return "", fmt.Errorf("%w: %s is not in the chapter list", ErrChapterNotFound, file)
}

// Title returns the title defined for a chapter in the list, or an
// empty string for chapters listed without one. The chapter path must
// be given as it is stated in the chapter list. Returns
// ErrChapterNotFound when the chapter is not listed.
func (l *List) Title(chapterPath string) (string, error) {
	title, found := findChapter(l.raw, chapterPath)
	if !found {
		return "", fmt.Errorf("%w: %s is not in the chapter list", ErrChapterNotFound, chapterPath)
	}
	return title, nil
}

// findChapter walks the raw structure looking for target. A titled
// entry {title: target} yields its title; a plain string match or a
// match nested under a section list yields "".
func findChapter(node any, target string) (string, bool) {
	switch t := node.(type) {
	case string:
		if t == target {
			return "", true
		}
	case []any:
		for _, elem := range t {
			if title, found := findChapter(elem, target); found {
				return title, true
			}
		}
	case map[string]any:
		for _, key := range sortedKeys(t) {
			val := t[key]
			if s, ok := val.(string); ok && s == target {
				return key, true
			}
			if title, found := findChapter(val, target); found {
				return title, true
			}
		}
	}
	return "", false
}

// relativeTo returns abs relative to dir when abs lies under dir.
func relativeTo(dir, abs string) (string, bool) {
	if dir == "" {
		return "", false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absDir, abs)
	if err != nil {
		return "", false
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
