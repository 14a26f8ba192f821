package app

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

func Vec4Mul(v1, v2 mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{v1.X() * v2.X(), v1.Y() * v2.Y(), v1.Z() * v2.Z(), v1.W() * v2.W()}
}

func NewVertex(dx, dy, sx, sy float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   dx,
		DstY:   dy,
		SrcX:   sx,
		SrcY:   sy,
		ColorR: 1,
		ColorG: 1,
		ColorB: 1,
		ColorA: 1,
	}
}

// ClipToPixel maps a point in clip space (-1..1, y up) to pixels of a
// w x h target (y down).
func ClipToPixel(clip mgl32.Vec2, w, h int) mgl32.Vec2 {
	return mgl32.Vec2{
		(clip.X() + 1) * 0.5 * float32(w),
		(1 - clip.Y()) * 0.5 * float32(h),
	}
}

// Transform2D applies m to the point (x, y, 0, 1).
func Transform2D(m mgl32.Mat4, p mgl32.Vec2) mgl32.Vec2 {
	r := m.Mul4x1(mgl32.Vec4{p.X(), p.Y(), 0, 1})
	return mgl32.Vec2{r[0], r[1]}
}

func clamp(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
