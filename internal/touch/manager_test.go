package touch

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestSingleTouchDelta(t *testing.T) {
	m := NewManager()
	m.TouchesBegan(10, 10)
	m.TouchesMoved(13, 14)

	require.Equal(t, mgl32.Vec2{3, 4}, m.Delta())
	require.InDelta(t, 5.0, m.FlickDistance(), 1e-6)
	require.True(t, m.IsFlickAvailable())
	require.True(t, m.IsSingleTouch())
	require.Equal(t, mgl32.Vec2{13, 14}, m.Center())
	require.EqualValues(t, 1, m.Scale())
}

func TestPinchScalesMultiplicatively(t *testing.T) {
	m := NewManager()
	m.TouchesBegan(0, 0)

	// first pair only records the distance
	m.TouchesMovedPair(0, 0, 10, 0)
	require.EqualValues(t, 1, m.Scale())

	m.TouchesMovedPair(0, 0, 20, 0)
	require.InDelta(t, 2.0, m.Scale(), 1e-6)

	m.TouchesMovedPair(0, 0, 40, 0)
	require.InDelta(t, 4.0, m.Scale(), 1e-6)

	require.False(t, m.IsSingleTouch())
	require.False(t, m.IsFlickAvailable())
	require.Equal(t, mgl32.Vec2{20, 0}, m.Center())
}

func TestPinchZeroDistance(t *testing.T) {
	m := NewManager()
	m.TouchesBegan(0, 0)
	m.TouchesMovedPair(0, 0, 10, 0)
	m.TouchesMovedPair(0, 0, 20, 0)
	require.InDelta(t, 2.0, m.Scale(), 1e-6)

	m.TouchesMovedPair(5, 5, 5, 5)
	require.InDelta(t, 2.0, m.Scale(), 1e-6)

	// the zero distance is not a usable reference either
	m.TouchesMovedPair(0, 0, 30, 0)
	require.InDelta(t, 2.0, m.Scale(), 1e-6)

	m.TouchesMovedPair(0, 0, 60, 0)
	require.InDelta(t, 4.0, m.Scale(), 1e-6)
}

func TestDisableFlick(t *testing.T) {
	m := NewManager()
	m.TouchesBegan(0, 0)
	m.TouchesMoved(6, 8)
	m.DisableFlick()

	require.False(t, m.IsFlickAvailable())
	require.InDelta(t, 10.0, m.FlickDistance(), 1e-6)

	m.TouchesBegan(1, 1)
	require.True(t, m.IsFlickAvailable())
	require.Zero(t, m.FlickDistance())
}

func TestPairKeepsStart(t *testing.T) {
	m := NewManager()
	m.TouchesBegan(10, 10)
	m.TouchesMoved(20, 10)
	m.TouchesMovedPair(0, 0, 5, 5)

	require.Equal(t, mgl32.Vec2{10, 10}, m.Start())
	require.InDelta(t, 10.0, m.FlickDistance(), 1e-6)
	require.False(t, m.IsFlickAvailable())

	p1, p2 := m.Pair()
	require.Equal(t, mgl32.Vec2{0, 0}, p1)
	require.Equal(t, mgl32.Vec2{5, 5}, p2)
}

func TestNewGestureForgetsPairDistance(t *testing.T) {
	m := NewManager()
	m.TouchesBegan(0, 0)
	m.TouchesMovedPair(0, 0, 10, 0)

	m.TouchesBegan(0, 0)
	m.TouchesMovedPair(0, 0, 50, 0)
	require.EqualValues(t, 1, m.Scale())
}
