package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestView(t *testing.T, width, height int) (*View, *fakeLoader, *bool) {
	t.Helper()
	manager, loader := newTestManager(t)
	ended := false
	v := NewView(manager, testLogger(), true, func() { ended = true })
	v.Initialize(width, height)
	return v, loader, &ended
}

func TestViewDeviceToScreen(t *testing.T) {
	v, _, _ := newTestView(t, 900, 900)

	require.InDelta(t, 0, v.TransformScreenX(450), 1e-6)
	require.InDelta(t, 1, v.TransformScreenX(900), 1e-6)
	require.InDelta(t, -1, v.TransformScreenX(0), 1e-6)
	require.InDelta(t, 1, v.TransformScreenY(0), 1e-6)
	require.InDelta(t, -1, v.TransformScreenY(900), 1e-6)

	// wide windows keep the logical height and stretch the width
	v.Initialize(1800, 900)
	require.InDelta(t, 2, v.TransformScreenX(1800), 1e-6)
	require.InDelta(t, 1, v.TransformScreenY(0), 1e-6)
}

func TestViewTransformViewFollowsZoom(t *testing.T) {
	v, _, _ := newTestView(t, 900, 900)

	require.InDelta(t, 1, v.TransformViewX(900), 1e-6)

	v.Zoom(450, 450, 2)
	require.InDelta(t, 2, v.ViewMatrix().ScaleX(), 1e-6)
	require.InDelta(t, 0.5, v.TransformViewX(900), 1e-6)
	require.InDelta(t, 0.5, v.TransformViewY(0), 1e-6)

	// zoom stays inside the limits
	v.Zoom(450, 450, 4)
	require.InDelta(t, ViewMaxScale, v.ViewMatrix().ScaleX(), 1e-6)
	v.Zoom(450, 450, 0.01)
	require.InDelta(t, ViewMinScale, v.ViewMatrix().ScaleX(), 1e-6)
}

func TestViewTap(t *testing.T) {
	v, loader, _ := newTestView(t, 900, 900)
	model := loader.models[0]
	model.hit[HitAreaNameHead] = true

	v.OnTouchesBegan(450, 450)
	v.OnTouchesMoved(452, 451)
	v.OnTouchesEnded(452, 451)

	require.Equal(t, []string{"*"}, model.expressions)
	require.Zero(t, model.dragX)
	require.Zero(t, model.dragY)
}

func TestViewDragIsNotATap(t *testing.T) {
	v, loader, _ := newTestView(t, 900, 900)
	model := loader.models[0]
	model.hit[HitAreaNameHead] = true

	v.OnTouchesBegan(450, 450)
	v.OnTouchesMoved(675, 225)
	require.InDelta(t, 0.5, model.dragX, 1e-6)
	require.InDelta(t, 0.5, model.dragY, 1e-6)

	// coming back does not turn the gesture into a tap again
	v.OnTouchesMoved(450, 450)
	v.OnTouchesEnded(450, 450)
	require.Empty(t, model.expressions)
	require.Zero(t, model.dragX)
}

func TestViewPinchZooms(t *testing.T) {
	v, loader, _ := newTestView(t, 900, 900)
	model := loader.models[0]
	model.hit[HitAreaNameBody] = true

	v.OnTouchesBegan(400, 450)
	v.OnTouchesMovedPair(400, 450, 500, 450)
	require.InDelta(t, 1, v.ViewMatrix().ScaleX(), 1e-6)

	v.OnTouchesMovedPair(350, 450, 550, 450)
	require.InDelta(t, 2, v.ViewMatrix().ScaleX(), 1e-6)
	// the pinch center stays in place
	require.InDelta(t, 0, v.TransformViewX(450), 1e-6)

	v.OnTouchesEnded(550, 450)
	require.Empty(t, model.motions)
}

func TestViewButtons(t *testing.T) {
	v, loader, ended := newTestView(t, 900, 900)

	v.gear = NewSprite(850, 50, 100, 100, nil)
	v.power = NewSprite(850, 850, 100, 100, nil)

	v.OnTouchesBegan(850, 50)
	v.OnTouchesEnded(850, 50)
	require.Len(t, loader.models, 2)
	require.True(t, loader.models[0].released)
	require.False(t, *ended)

	v.OnTouchesBegan(850, 850)
	v.OnTouchesEnded(850, 850)
	require.True(t, *ended)
	require.Len(t, loader.models, 2)
}

func TestViewSpriteAlpha(t *testing.T) {
	v, _, _ := newTestView(t, 900, 900)

	require.InDelta(t, 0.25, v.SpriteAlpha(0), 1e-6)
	require.InDelta(t, 0.75, v.SpriteAlpha(1), 1e-6)
	require.InDelta(t, 1, v.SpriteAlpha(2), 1e-6)
	require.InDelta(t, 0.1, v.SpriteAlpha(-1), 1e-6)
}

func TestViewRenderTarget(t *testing.T) {
	v, _, _ := newTestView(t, 900, 900)
	require.Equal(t, RenderTargetNone, v.RenderTarget())

	v.SwitchRenderingTarget(ParseRenderTarget("view"))
	require.Equal(t, RenderTargetViewFrameBuffer, v.RenderTarget())

	require.Equal(t, RenderTargetModelFrameBuffer, ParseRenderTarget(" Model "))
	require.Equal(t, RenderTargetNone, ParseRenderTarget(""))
	require.Equal(t, RenderTargetNone, ParseRenderTarget("screen"))
	require.Equal(t, "view", RenderTargetViewFrameBuffer.String())

	v.SetRenderTargetClearColor(1, 0.5, 2)
	require.Equal(t, uint8(255), v.clearColor.R)
	require.Equal(t, uint8(127), v.clearColor.G)
	require.Equal(t, uint8(255), v.clearColor.B)
	require.Zero(t, v.clearColor.A)
}
