package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMergeSemantics tests the layer combination rules
func TestMergeSemantics(t *testing.T) {
	t.Run("DisjointLayersUnion", func(t *testing.T) {
		l, err := NewLayered([]Layer{
			{Name: "a", Values: map[string]any{"one": 1}},
			{Name: "b", Values: map[string]any{"two": 2}},
			{Name: "c", Values: map[string]any{"three": 3}},
		})
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"one": 1, "two": 2, "three": 3}, l.Map())

		// Priority is irrelevant when no keys overlap
		require.NoError(t, l.SetPriority("c", "a"))
		assert.Equal(t, map[string]any{"one": 1, "two": 2, "three": 3}, l.Map())
	})

	t.Run("FirstListedPriorityWins", func(t *testing.T) {
		l, err := NewLayered([]Layer{
			{Name: "a", Values: map[string]any{"k": "from-a"}},
			{Name: "b", Values: map[string]any{"k": "from-b"}},
		}, WithPriority("a", "b"))
		require.NoError(t, err)

		val, ok := l.Get("k")
		require.True(t, ok)
		assert.Equal(t, "from-a", val)
	})

	t.Run("UnlistedLayersReverseRegistrationOrder", func(t *testing.T) {
		// Neither x nor y is in the priority order: the earlier-registered
		// layer wins the tie.
		l, err := NewLayered([]Layer{
			{Name: "x", Values: map[string]any{"k": "from-x"}},
			{Name: "y", Values: map[string]any{"k": "from-y"}},
		})
		require.NoError(t, err)

		val, _ := l.Get("k")
		assert.Equal(t, "from-x", val)
	})

	t.Run("PriorityBeatsRegistrationOrder", func(t *testing.T) {
		l, err := NewLayered([]Layer{
			{Name: "x", Values: map[string]any{"k": "from-x"}},
			{Name: "y", Values: map[string]any{"k": "from-y"}},
		}, WithPriority("y"))
		require.NoError(t, err)

		val, _ := l.Get("k")
		assert.Equal(t, "from-y", val)
	})

	t.Run("DefaultsLoseToEveryLayer", func(t *testing.T) {
		l, err := NewLayered([]Layer{
			{Name: "file", Values: map[string]any{"y": 3, "z": 4}},
			{Name: "cli", Values: map[string]any{"z": 5}},
		},
			WithDefaults(map[string]any{"x": 1, "y": 2}),
			WithPriority("cli", "file"),
		)
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"x": 1, "y": 3, "z": 5}, l.Map())
	})

	t.Run("DuplicateLayerName", func(t *testing.T) {
		_, err := NewLayered([]Layer{
			{Name: "a", Values: map[string]any{}},
			{Name: "a", Values: map[string]any{}},
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate layer")
	})
}

// TestSetPriority tests priority validation and recomputation
func TestSetPriority(t *testing.T) {
	t.Run("UnknownLayerName", func(t *testing.T) {
		l, err := NewLayered([]Layer{
			{Name: "a", Values: map[string]any{"k": "from-a"}},
			{Name: "b", Values: map[string]any{"k": "from-b"}},
		}, WithPriority("b"))
		require.NoError(t, err)

		err = l.SetPriority("nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownLayer)

		// The previous effective mapping and priority are untouched.
		val, _ := l.Get("k")
		assert.Equal(t, "from-b", val)
		assert.Equal(t, []string{"b"}, l.Priority())
	})

	t.Run("UnknownInitialPriority", func(t *testing.T) {
		_, err := NewLayered([]Layer{
			{Name: "a", Values: map[string]any{}},
		}, WithPriority("missing"))
		assert.ErrorIs(t, err, ErrUnknownLayer)
	})

	t.Run("ReorderChangesWinner", func(t *testing.T) {
		l, err := NewLayered([]Layer{
			{Name: "a", Values: map[string]any{"k": "from-a"}},
			{Name: "b", Values: map[string]any{"k": "from-b"}},
		}, WithPriority("a", "b"))
		require.NoError(t, err)

		val, _ := l.Get("k")
		assert.Equal(t, "from-a", val)

		require.NoError(t, l.SetPriority("b", "a"))
		val, _ = l.Get("k")
		assert.Equal(t, "from-b", val)
	})

	t.Run("RecomputeReconverts", func(t *testing.T) {
		l, err := NewLayered([]Layer{
			{Name: "a", Values: map[string]any{"flag": "yes"}},
			{Name: "b", Values: map[string]any{"flag": "no"}},
		},
			WithConvertors(map[string]Convertor{"flag": ToBool}),
			WithPriority("a"),
		)
		require.NoError(t, err)

		val, _ := l.Get("flag")
		assert.Equal(t, true, val)

		require.NoError(t, l.SetPriority("b"))
		val, _ = l.Get("flag")
		assert.Equal(t, false, val)
	})
}

// TestAddLayer tests layer registration after construction
func TestAddLayer(t *testing.T) {
	t.Run("AppendsAndRecomputes", func(t *testing.T) {
		l, err := NewLayered([]Layer{
			{Name: "file", Values: map[string]any{"k": "from-file"}},
		})
		require.NoError(t, err)

		require.NoError(t, l.AddLayer("cli", map[string]any{"k": "from-cli"}))
		require.NoError(t, l.SetPriority("cli"))

		val, _ := l.Get("k")
		assert.Equal(t, "from-cli", val)
		assert.Equal(t, []string{"file", "cli"}, l.LayerNames())
	})

	t.Run("ReplaceKeepsRegistrationPosition", func(t *testing.T) {
		l, err := NewLayered([]Layer{
			{Name: "x", Values: map[string]any{"k": "old-x"}},
			{Name: "y", Values: map[string]any{"k": "from-y"}},
		})
		require.NoError(t, err)

		require.NoError(t, l.AddLayer("x", map[string]any{"k": "new-x"}))

		// x is still registered first, so it still wins the unlisted tie.
		val, _ := l.Get("k")
		assert.Equal(t, "new-x", val)
		assert.Equal(t, []string{"x", "y"}, l.LayerNames())
	})
}

// TestLayeredValidationState tests the post-failure state contract
func TestLayeredValidationState(t *testing.T) {
	l, err := NewLayered([]Layer{
		{Name: "a", Values: map[string]any{"mode": "broken", "flag": "yes"}},
	},
		WithValidators(map[string]Validator{"mode": In("ok", "fast")}),
		WithConvertors(map[string]Convertor{"flag": ToBool}),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), `"mode"`)

	// The merged values are still visible, but conversion never ran.
	val, _ := l.Get("mode")
	assert.Equal(t, "broken", val)
	val, _ = l.Get("flag")
	assert.Equal(t, "yes", val)
}

// TestIsDefault tests default-comparison both for layered and plain options
func TestIsDefault(t *testing.T) {
	l, err := NewLayered([]Layer{
		{Name: "file", Values: map[string]any{"y": 2, "z": 9}},
	}, WithDefaults(map[string]any{"x": 1, "y": 2}))
	require.NoError(t, err)

	assert.True(t, l.IsDefault("x"), "untouched default")
	assert.True(t, l.IsDefault("y"), "layer value equal to default")
	assert.False(t, l.IsDefault("z"), "key with no registered default")
	assert.False(t, l.IsDefault("absent"))

	require.NoError(t, l.AddLayer("cli", map[string]any{"x": 10}))
	assert.False(t, l.IsDefault("x"), "overridden default")
}
