package app

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
)

// Rect is in screen pixels, Up is the smaller y.
type Rect struct {
	Left, Right float32
	Up, Down    float32
}

// Sprite draws a texture into a screen rectangle.
type Sprite struct {
	texture *ebiten.Image
	rect    Rect
	color   mgl32.Vec4

	colorM colorm.ColorM
	option colorm.DrawTrianglesOptions
}

// NewSprite creates a sprite centered on (x, y).
func NewSprite(x, y, width, height float32, texture *ebiten.Image) *Sprite {
	s := &Sprite{texture: texture, color: mgl32.Vec4{1, 1, 1, 1}}
	s.ResetRect(x, y, width, height)
	return s
}

func (s *Sprite) ResetRect(x, y, width, height float32) {
	s.rect = Rect{
		Left:  x - width*0.5,
		Right: x + width*0.5,
		Up:    y - height*0.5,
		Down:  y + height*0.5,
	}
}

func (s *Sprite) Rect() Rect {
	return s.rect
}

func (s *Sprite) Texture() *ebiten.Image {
	return s.texture
}

func (s *Sprite) SetColor(r, g, b, a float32) {
	s.color = mgl32.Vec4{r, g, b, a}
}

func (s *Sprite) Render(dst *ebiten.Image) {
	if s == nil {
		return
	}
	s.RenderImmediate(dst, s.texture)
}

// RenderImmediate draws texture stretched over the sprite rect.
func (s *Sprite) RenderImmediate(dst, texture *ebiten.Image) {
	if dst == nil || texture == nil {
		return
	}
	bound := texture.Bounds()
	w, h := float32(bound.Dx()), float32(bound.Dy())
	vertices := []ebiten.Vertex{
		NewVertex(s.rect.Left, s.rect.Up, 0, 0),
		NewVertex(s.rect.Right, s.rect.Up, w, 0),
		NewVertex(s.rect.Right, s.rect.Down, w, h),
		NewVertex(s.rect.Left, s.rect.Down, 0, h),
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	s.colorM.Reset()
	s.colorM.Scale(float64(s.color[0]), float64(s.color[1]), float64(s.color[2]), float64(s.color[3]))
	colorm.DrawTriangles(dst, vertices, indices, texture, s.colorM, &s.option)
}

// IsHit reports whether the screen point lies inside the sprite.
func (s *Sprite) IsHit(pointX, pointY float32) bool {
	return s.rect.Left <= pointX && pointX <= s.rect.Right &&
		s.rect.Up <= pointY && pointY <= s.rect.Down
}
