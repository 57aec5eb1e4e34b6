package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScan tests decoding the effective mapping into a struct
func TestScan(t *testing.T) {
	type pluginConfig struct {
		Caption string        `yaml:"caption"`
		Width   int           `yaml:"width"`
		Timeout time.Duration `yaml:"timeout"`
		Formats []string      `yaml:"formats"`
	}

	o, err := New(map[string]any{
		"caption": "Diagram",
		"width":   "640", // weakly typed: string into int
		"timeout": "5s",
		"formats": "pdf,html",
	})
	require.NoError(t, err)

	var cfg pluginConfig
	require.NoError(t, o.Scan(&cfg))

	assert.Equal(t, "Diagram", cfg.Caption)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"pdf", "html"}, cfg.Formats)

	t.Run("NonPointerTarget", func(t *testing.T) {
		assert.Error(t, o.Scan(cfg))
	})
}

// TestScanKey tests decoding a nested sub-mapping
func TestScanKey(t *testing.T) {
	type backend struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	}

	o, err := New(map[string]any{
		"backend": map[string]any{"host": "localhost", "port": 8080},
		"flat":    "value",
	})
	require.NoError(t, err)

	var b backend
	require.NoError(t, o.ScanKey("backend", &b))
	assert.Equal(t, "localhost", b.Host)
	assert.Equal(t, 8080, b.Port)

	t.Run("MissingKey", func(t *testing.T) {
		assert.Error(t, o.ScanKey("absent", &b))
	})

	t.Run("NonMappingValue", func(t *testing.T) {
		assert.Error(t, o.ScanKey("flat", &b))
	})
}
