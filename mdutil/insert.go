// Package mdutil inserts text into Markdown sources with awareness of
// YAML front matter and leading headings.
package mdutil

import (
	"fmt"
	"os"
	"strings"
)

const (
	frontMatterOpen  = "---\n"
	frontMatterClose = "\n---\n"
)

type insertConfig struct {
	beforeFrontMatter bool
	afterHeading      bool
}

// InsertOption configures Insert and PrependFile.
type InsertOption func(*insertConfig)

// BeforeFrontMatter places the content before a leading YAML front
// matter block instead of after it.
func BeforeFrontMatter() InsertOption {
	return func(c *insertConfig) {
		c.beforeFrontMatter = true
	}
}

// AfterHeading places the content after a leading heading line instead
// of before it.
func AfterHeading() InsertOption {
	return func(c *insertConfig) {
		c.afterHeading = true
	}
}

// Insert returns source with content inserted at the beginning. By
// default the insertion point skips a leading YAML front matter block
// and sits before a leading heading; BeforeFrontMatter and AfterHeading
// flip either behavior. A line break is added in front of the content
// whenever it lands after an existing block, so the block is not broken.
func Insert(source, content string, opts ...InsertOption) string {
	var cfg insertConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	start := 0

	if !cfg.beforeFrontMatter && strings.HasPrefix(source, frontMatterOpen) {
		if end := strings.Index(source[1:], frontMatterClose); end != -1 {
			start = end + 1 + len(frontMatterClose)
		}
		content = "\n" + content
	}
	if cfg.afterHeading && strings.HasPrefix(source, "#") {
		if nl := strings.IndexByte(source[1:], '\n'); nl != -1 {
			start = nl + 2
		} else {
			start = len(source)
		}
		content = "\n" + content
	}

	return source[:start] + content + source[start:]
}

// PrependFile inserts content at the beginning of the file at path,
// applying the same front-matter and heading rules as Insert. The file
// mode is preserved.
func PrependFile(path, content string, opts ...InsertOption) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("prepend %s: %w", path, err)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("prepend %s: %w", path, err)
	}

	processed := Insert(string(source), content, opts...)

	if err := os.WriteFile(path, []byte(processed), info.Mode().Perm()); err != nil {
		return fmt.Errorf("prepend %s: %w", path, err)
	}
	return nil
}
