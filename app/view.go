package app

import (
	"image/color"
	"log/slog"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"my_l2d/internal/touch"
)

// RenderTarget selects where models are drawn before reaching the screen.
type RenderTarget int

const (
	RenderTargetNone             RenderTarget = iota // straight to the screen
	RenderTargetModelFrameBuffer                     // one buffer per model
	RenderTargetViewFrameBuffer                      // one buffer shared by the view
)

func ParseRenderTarget(value string) RenderTarget {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "model":
		return RenderTargetModelFrameBuffer
	case "view":
		return RenderTargetViewFrameBuffer
	default:
		return RenderTargetNone
	}
}

func (t RenderTarget) String() string {
	switch t {
	case RenderTargetModelFrameBuffer:
		return "model"
	case RenderTargetViewFrameBuffer:
		return "view"
	default:
		return "none"
	}
}

// TapSlop is how far in pixels a press may travel and still count as a tap.
const TapSlop = 10

// View turns pointer input into model and scene actions and draws the
// sprites and models of a frame.
type View struct {
	touch          *touch.Manager
	deviceToScreen mgl32.Mat4
	viewMatrix     *ViewMatrix

	width, height int

	back         *Sprite
	gear         *Sprite
	power        *Sprite
	renderSprite *Sprite

	renderTarget RenderTarget
	renderBuffer *ebiten.Image   // RenderTargetViewFrameBuffer
	modelBuffers []*ebiten.Image // RenderTargetModelFrameBuffer
	clearColor   color.NRGBA

	manager *ModelManager
	onEnd   func()

	logger     *slog.Logger
	debugTouch debugLog
}

func NewView(manager *ModelManager, logger *slog.Logger, debugTouch bool, onEnd func()) *View {
	return &View{
		touch:          touch.NewManager(),
		deviceToScreen: mgl32.Ident4(),
		viewMatrix:     NewViewMatrix(),
		clearColor:     color.NRGBA{R: 255, G: 255, B: 255},
		manager:        manager,
		onEnd:          onEnd,
		logger:         logger,
		debugTouch:     debugLog{logger: logger, enabled: debugTouch},
	}
}

// Initialize sets up the matrices for a width x height window.
func (v *View) Initialize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.width, v.height = width, height

	w, h := float32(width), float32(height)
	ratio := w / h
	left, right := -ratio, ratio
	bottom, top := float32(ViewLogicalLeft), float32(ViewLogicalRight)

	v.viewMatrix.SetScreenRect(left, right, bottom, top)
	v.viewMatrix.Scale(ViewScale, ViewScale)

	// device pixels (y down) to screen units (y up), centered on the window
	var unit float32
	if width > height {
		unit = float32(math.Abs(float64(right-left))) / w
	} else {
		unit = float32(math.Abs(float64(top-bottom))) / h
	}
	v.deviceToScreen = mgl32.Scale3D(unit, -unit, 1).Mul4(mgl32.Translate3D(-w*0.5, -h*0.5, 0))

	v.viewMatrix.SetMaxScale(ViewMaxScale)
	v.viewMatrix.SetMinScale(ViewMinScale)
	v.viewMatrix.SetMaxScreenRect(ViewLogicalMaxLeft, ViewLogicalMaxRight, ViewLogicalMaxBottom, ViewLogicalMaxTop)
}

func (v *View) InitializeSprites(textures *TextureManager) error {
	back, err := textures.CreateTextureFromPNG(BackImageName)
	if err != nil {
		return err
	}
	gear, err := textures.CreateTextureFromPNG(GearImageName)
	if err != nil {
		return err
	}
	power, err := textures.CreateTextureFromPNG(PowerImageName)
	if err != nil {
		return err
	}

	v.back = NewSprite(0, 0, float32(back.Width), float32(back.Height), back.Image)
	v.gear = NewSprite(0, 0, float32(gear.Width), float32(gear.Height), gear.Image)
	v.power = NewSprite(0, 0, float32(power.Width), float32(power.Height), power.Image)
	v.renderSprite = NewSprite(0, 0, 0, 0, nil)
	v.ResizeSprites()
	return nil
}

// ResizeSprites lays the sprites out for the current window size.
func (v *View) ResizeSprites() {
	w, h := float32(v.width), float32(v.height)

	if v.back != nil {
		texW := float32(v.back.Texture().Bounds().Dx())
		v.back.ResetRect(w*0.5, h*0.5, texW*2, h*0.95)
	}
	if v.gear != nil {
		bound := v.gear.Texture().Bounds()
		texW, texH := float32(bound.Dx()), float32(bound.Dy())
		v.gear.ResetRect(w-texW*0.5, texH*0.5, texW, texH)
	}
	if v.power != nil {
		bound := v.power.Texture().Bounds()
		texW, texH := float32(bound.Dx()), float32(bound.Dy())
		v.power.ResetRect(w-texW*0.5, h-texH*0.5, texW, texH)
	}
	if v.renderSprite != nil {
		v.renderSprite.ResetRect(w*0.5, h*0.5, w, h)
	}
}

func (v *View) OnTouchesBegan(pointX, pointY float32) {
	v.touch.TouchesBegan(pointX, pointY)
	v.debugTouch.Print("[APP]touchesBegan", slog.Float64("x", float64(pointX)), slog.Float64("y", float64(pointY)))
}

func (v *View) OnTouchesMoved(pointX, pointY float32) {
	v.touch.TouchesMoved(pointX, pointY)
	if v.touch.FlickDistance() > TapSlop {
		v.touch.DisableFlick()
	}

	last := v.touch.Last()
	viewX := v.TransformViewX(last.X())
	viewY := v.TransformViewY(last.Y())
	v.manager.OnDrag(viewX, viewY)
}

// OnTouchesMovedPair zooms the view around the middle of the two fingers.
func (v *View) OnTouchesMovedPair(pointX1, pointY1, pointX2, pointY2 float32) {
	prev := v.touch.Scale()
	v.touch.TouchesMovedPair(pointX1, pointY1, pointX2, pointY2)
	if prev <= 0 {
		return
	}

	ratio := v.touch.Scale() / prev
	if ratio == 1 {
		return
	}
	center := v.touch.Center()
	v.Zoom(center.X(), center.Y(), ratio)
}

func (v *View) OnTouchesEnded(pointX, pointY float32) {
	v.manager.OnDrag(0, 0)

	last := v.touch.Last()
	x := v.TransformScreenX(last.X())
	y := v.TransformScreenY(last.Y())
	v.debugTouch.Print("[APP]touchesEnded", slog.Float64("x", float64(x)), slog.Float64("y", float64(y)))

	if v.touch.IsSingleTouch() && v.touch.IsFlickAvailable() {
		v.manager.OnTap(x, y)
	}

	if v.gear != nil && v.gear.IsHit(pointX, pointY) {
		if err := v.manager.NextScene(); err != nil {
			v.logger.Error("Failed to change scene", slog.Any("err", err))
		}
	}
	if v.power != nil && v.power.IsHit(pointX, pointY) && v.onEnd != nil {
		v.onEnd()
	}
}

// Zoom scales the view by factor around a device point.
func (v *View) Zoom(deviceX, deviceY, factor float32) {
	if factor <= 0 {
		return
	}
	v.viewMatrix.AdjustScale(v.TransformScreenX(deviceX), v.TransformScreenY(deviceY), factor)
}

// TransformViewX converts a device x into view coordinates.
func (v *View) TransformViewX(deviceX float32) float32 {
	return v.viewMatrix.InvertTransformX(v.TransformScreenX(deviceX))
}

func (v *View) TransformViewY(deviceY float32) float32 {
	return v.viewMatrix.InvertTransformY(v.TransformScreenY(deviceY))
}

// TransformScreenX converts a device x into screen coordinates.
func (v *View) TransformScreenX(deviceX float32) float32 {
	return v.deviceToScreen[0]*deviceX + v.deviceToScreen[12]
}

func (v *View) TransformScreenY(deviceY float32) float32 {
	return v.deviceToScreen[5]*deviceY + v.deviceToScreen[13]
}

func (v *View) ViewMatrix() *ViewMatrix {
	return v.viewMatrix
}

func (v *View) Size() (int, int) {
	return v.width, v.height
}

func (v *View) Render(screen *ebiten.Image) {
	v.back.Render(screen)
	v.gear.Render(screen)
	v.power.Render(screen)

	v.manager.SetViewMatrix(v.viewMatrix)
	v.manager.OnUpdate(screen, v.width, v.height, v)

	if v.renderTarget == RenderTargetModelFrameBuffer && v.renderSprite != nil {
		for i := 0; i < v.manager.ModelCount() && i < len(v.modelBuffers); i++ {
			v.renderSprite.SetColor(1, 1, 1, v.SpriteAlpha(i))
			v.renderSprite.RenderImmediate(screen, v.modelBuffers[i])
		}
	}
}

// PreModelDraw picks and clears the image model index is drawn into.
func (v *View) PreModelDraw(index int, model Model, screen *ebiten.Image) *ebiten.Image {
	var target *ebiten.Image
	switch v.renderTarget {
	case RenderTargetViewFrameBuffer:
		v.renderBuffer = v.ensureBuffer(v.renderBuffer)
		target = v.renderBuffer
	case RenderTargetModelFrameBuffer:
		for len(v.modelBuffers) <= index {
			v.modelBuffers = append(v.modelBuffers, nil)
		}
		v.modelBuffers[index] = v.ensureBuffer(v.modelBuffers[index])
		target = v.modelBuffers[index]
	default:
		return screen
	}

	target.Fill(v.clearColor)
	return target
}

func (v *View) PostModelDraw(index int, model Model, screen *ebiten.Image) {
	if v.renderTarget == RenderTargetViewFrameBuffer && v.renderSprite != nil {
		v.renderSprite.SetColor(1, 1, 1, v.SpriteAlpha(0))
		v.renderSprite.RenderImmediate(screen, v.renderBuffer)
	}
}

func (v *View) ensureBuffer(buffer *ebiten.Image) *ebiten.Image {
	if buffer != nil {
		bound := buffer.Bounds()
		if bound.Dx() == v.width && bound.Dy() == v.height {
			return buffer
		}
		buffer.Deallocate()
	}
	return ebiten.NewImage(v.width, v.height)
}

// SpriteAlpha is the opacity used for the buffer of model assign.
func (v *View) SpriteAlpha(assign int) float32 {
	return clamp(0.25+float32(assign)*0.5, 0.1, 1)
}

func (v *View) SwitchRenderingTarget(target RenderTarget) {
	if target != v.renderTarget {
		v.releaseBuffers()
	}
	v.renderTarget = target
}

func (v *View) RenderTarget() RenderTarget {
	return v.renderTarget
}

// SetRenderTargetClearColor sets the color buffers are cleared to. The
// alpha stays zero so only the models show.
func (v *View) SetRenderTargetClearColor(r, g, b float32) {
	v.clearColor = color.NRGBA{
		R: uint8(clamp(r, 0, 1) * 255),
		G: uint8(clamp(g, 0, 1) * 255),
		B: uint8(clamp(b, 0, 1) * 255),
	}
}

func (v *View) releaseBuffers() {
	if v.renderBuffer != nil {
		v.renderBuffer.Deallocate()
		v.renderBuffer = nil
	}
	for _, buffer := range v.modelBuffers {
		if buffer != nil {
			buffer.Deallocate()
		}
	}
	v.modelBuffers = nil
}

func (v *View) Release() {
	v.releaseBuffers()
	v.back, v.gear, v.power, v.renderSprite = nil, nil, nil, nil
}
