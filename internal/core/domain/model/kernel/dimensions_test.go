package kernel_test

import (
	"testing"

	"shipquote/internal/core/domain/model/kernel"
	"shipquote/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimensions(t *testing.T) {
	t.Run("should parse three x-separated sides", func(t *testing.T) {
		for _, input := range []string{"30x20x15", "30 x 20 x 15", "30X20X15", " 30x20x15 ", "30.0x20x15"} {
			d, err := kernel.ParseDimensions(input)

			require.NoError(t, err, input)
			require.NoError(t, d.Validate())
			assert.InDelta(t, 30.0, d.Length(), 1e-9)
			assert.InDelta(t, 20.0, d.Width(), 1e-9)
			assert.InDelta(t, 15.0, d.Height(), 1e-9)
			assert.InDelta(t, 9000.0, d.Volume(), 1e-9)
			assert.Equal(t, "30x20x15", d.String())
		}
	})

	t.Run("should reject malformed replies", func(t *testing.T) {
		testCases := map[string]string{
			"wrong token count (two)":  "30x20",
			"wrong token count (four)": "30x20x15x10",
			"empty":                    "",
			"trailing separator":       "30x20x",
			"non-numeric token":        "30xabcx15",
			"zero side":                "30x0x15",
			"negative side":            "30x-20x15",
			"other separator":          "30*20*15",
		}

		for name, input := range testCases {
			t.Run(name, func(t *testing.T) {
				_, err := kernel.ParseDimensions(input)

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})
}

func TestNewDimensions(t *testing.T) {
	t.Run("should report every invalid side", func(t *testing.T) {
		_, err := kernel.NewDimensions(-1, 0, 10)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "length")
		assert.Contains(t, err.Error(), "width")
		assert.NotContains(t, err.Error(), "height")
	})

	t.Run("should compare against limits", func(t *testing.T) {
		d, err := kernel.NewDimensions(200, 150, 150)
		require.NoError(t, err)

		assert.True(t, d.FitsWithin(200, 150, 150))
		assert.False(t, d.FitsWithin(199, 150, 150))
	})

	t.Run("should reject the zero value", func(t *testing.T) {
		var d kernel.Dimensions

		assert.Equal(t, kernel.ErrDimensionsAreNotConstructed, d.Validate())
	})
}
