package windowmode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringotypowriter/ringotrack/internal/win32"
)

func TestDestinationAnchors(t *testing.T) {
	work := win32.Rect{Left: 100, Top: 50, Right: 1100, Bottom: 850}
	opts := Options{Width: 300, Height: 200, Margin: 10}

	cases := map[Anchor]win32.Rect{
		AnchorTopRight:    {Left: 790, Top: 60, Right: 1090, Bottom: 260},
		AnchorTopLeft:     {Left: 110, Top: 60, Right: 410, Bottom: 260},
		AnchorBottomRight: {Left: 790, Top: 640, Right: 1090, Bottom: 840},
		AnchorBottomLeft:  {Left: 110, Top: 640, Right: 410, Bottom: 840},
	}
	for anchor, want := range cases {
		opts.Anchor = anchor
		assert.Equal(t, want, Destination(work, opts), string(anchor))
	}
}

func TestParseAnchor(t *testing.T) {
	a, err := ParseAnchor("")
	require.NoError(t, err)
	assert.Equal(t, AnchorTopRight, a)

	a, err = ParseAnchor(" Bottom-Left ")
	require.NoError(t, err)
	assert.Equal(t, AnchorBottomLeft, a)

	_, err = ParseAnchor("center")
	assert.Error(t, err)
}

func TestNewFillsDefaults(t *testing.T) {
	c := New(nil, Options{Margin: -1}, nil)
	assert.Equal(t, DefaultOptions(), c.Options())
}
