package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testAtlas = `
parts.png
size: 64,32
format: RGBA8888
filter: Linear,Nearest
repeat: none
head
  rotate: false
  xy: 0, 0
  size: 32, 32
  orig: 32, 32
  offset: 0, 0
  index: -1
mouth
  rotate: true
  xy: 32, 0
  size: 8, 16
  orig: 8, 16
  offset: 0, 0
  index: -1
body
  bounds: 48, 0, 16, 24
`

func TestParseAtlas(t *testing.T) {
	atlas, err := ParseAtlas(testAtlas)
	require.NoError(t, err)

	require.Equal(t, &AtlasHeader{
		Image:   "parts.png",
		W:       64,
		H:       32,
		Format:  "RGBA8888",
		WFilter: "Linear",
		HFilter: "Nearest",
		Repeat:  "none",
	}, atlas.Header)
	require.Len(t, atlas.Items, 3)

	head, ok := atlas.Item("head")
	require.True(t, ok)
	require.Equal(t, &AtlasItem{Name: "head", W: 32, H: 32, OrigW: 32, OrigH: 32, Index: -1}, head)

	// rotated regions report their size in the page
	mouth, ok := atlas.Item("mouth")
	require.True(t, ok)
	require.Equal(t, 90, mouth.Rotate)
	require.Equal(t, 32, mouth.X)
	require.Equal(t, 16, mouth.W)
	require.Equal(t, 8, mouth.H)
	require.Equal(t, 8, mouth.OrigW)
	require.Equal(t, 16, mouth.OrigH)

	body, ok := atlas.Item("body")
	require.True(t, ok)
	require.Equal(t, 48, body.X)
	require.Equal(t, 16, body.W)
	require.Equal(t, 24, body.H)
	require.Equal(t, 16, body.OrigW)
	require.Equal(t, 24, body.OrigH)

	_, ok = atlas.Item("tail")
	require.False(t, ok)
}

func TestParseAtlasCRLF(t *testing.T) {
	atlas, err := ParseAtlas("parts.png\r\nsize: 4, 4\r\nhead\r\n  xy: 1, 2\r\n  size: 3, 2\r\n")
	require.NoError(t, err)
	require.Equal(t, "parts.png", atlas.Header.Image)
	require.Len(t, atlas.Items, 1)
	require.Equal(t, 1, atlas.Items[0].X)
	require.Equal(t, 2, atlas.Items[0].Y)
}

func TestParseAtlasErrors(t *testing.T) {
	tests := map[string]string{
		"empty":      "\n\n",
		"bad size":   "parts.png\nsize: 64\n",
		"bad xy":     "parts.png\nhead\n  xy: a, b\n",
		"bad rotate": "parts.png\nhead\n  rotate: 45\n",
		"bad bounds": "parts.png\nhead\n  bounds: 1, 2, 3\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAtlas(data)
			require.Error(t, err)
		})
	}
}
