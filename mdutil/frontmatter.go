package mdutil

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SplitFrontMatter separates a leading YAML front matter block from the
// document body and decodes it. Sources without a complete block return
// a nil mapping and the source unchanged. A block that is present but
// not valid YAML is an error.
func SplitFrontMatter(source string) (map[string]any, string, error) {
	if !strings.HasPrefix(source, frontMatterOpen) {
		return nil, source, nil
	}
	end := strings.Index(source[1:], frontMatterClose)
	if end == -1 {
		return nil, source, nil
	}

	block := source[len(frontMatterOpen) : end+1]
	body := source[end+1+len(frontMatterClose):]

	var meta map[string]any
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return nil, source, fmt.Errorf("front matter: %w", err)
	}
	return meta, body, nil
}
