package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"#ff8000", "#ff8000", false},
		{"FF8000", "#ff8000", false},
		{"  #00ff00 ", "#00ff00", false},
		{"#12", "", true},
		{"zzzzzz", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseClassColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatClassColor(c))
		})
	}
}

func TestClassPalette(t *testing.T) {
	p := ClassPalette(8)
	require.Len(t, p, 8)
	assert.Equal(t, p, ClassPalette(8), "palette must be deterministic")

	for i := range p {
		assert.True(t, p[i].IsValid())
		for j := i + 1; j < len(p); j++ {
			assert.Greater(t, p[i].DistanceLab(p[j]), 0.02, "colours %d and %d too close", i, j)
		}
	}
	assert.Empty(t, ClassPalette(0))
}

func TestSampleColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 2, color.RGBA{255, 0, 0, 255})

	res, err := SampleColor(img, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", res.Hex)
	assert.Equal(t, [3]uint8{255, 0, 0}, res.RGB)
	assert.Greater(t, res.Lab[0], 0.0)

	transparent, err := SampleColor(img, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "#000000", transparent.Hex)

	_, err = SampleColor(img, 4, 0)
	assert.Error(t, err)
}
