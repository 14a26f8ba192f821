package app

import (
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"math"
	"math/rand/v2"
	"path"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"

	"my_l2d/internal/wavfile"
)

const (
	BlendNormal   = 0
	BlendAdditive = 1
	BlendMultiply = 2
	BlendScreen   = 3
)

var (
	BlendMap = map[int]ebiten.Blend{
		BlendNormal:   ebiten.BlendSourceOver,
		BlendAdditive: ebiten.BlendLighter,
		BlendMultiply: {
			// source is multiplied with the destination
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorZero,
			BlendFactorDestinationAlpha: ebiten.BlendFactorZero,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		},
		BlendScreen: {
			// destination is scaled by (1 - source)
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		},
	}
)

// vertical scale of a mouth part with the lip sync value at zero
const mouthClosedScale = 0.15

type puppetPart struct {
	setting *PartSetting
	image   *ebiten.Image
	owned   bool // image was created for this part and must be deallocated

	center mgl32.Vec2 // model units
	size   mgl32.Vec2 // model units
	blend  ebiten.Blend

	colorM colorm.ColorM
	option colorm.DrawTrianglesOptions
}

// Puppet is a stand-in character: textured parts placed on a canvas, moved
// by the drag point and the lip sync level. It has no rig of its own.
type Puppet struct {
	setting *ModelSetting
	fsys    fs.FS
	home    string
	logger  *slog.Logger
	debug   debugLog

	textures *TextureManager
	pageName string
	parts    []*puppetPart

	modelMatrix *ModelMatrix
	motions     motionManager
	wav         *wavfile.Handler

	dragX, dragY float32
	mouthOpen    float32
	expression   *ExpressionSetting
	opacity      float32

	intn func(n int) int
}

func NewPuppet(setting *ModelSetting, fsys fs.FS, home string, logger *slog.Logger, debug bool) *Puppet {
	return &Puppet{
		setting:     setting,
		fsys:        fsys,
		home:        home,
		logger:      logger,
		debug:       debugLog{logger: logger, enabled: debug},
		modelMatrix: NewModelMatrix(setting.units(setting.Canvas.Width), setting.units(setting.Canvas.Height)),
		wav:         wavfile.NewHandler(fsys),
		opacity:     1,
		intn:        rand.IntN,
	}
}

// PuppetLoader loads puppets from fsys, sharing textures through the
// texture manager.
func PuppetLoader(fsys fs.FS, textures *TextureManager, logger *slog.Logger, debug bool) ModelLoader {
	return func(dir, fileName string) (Model, error) {
		settingPath := path.Join(dir, fileName)
		data, err := LoadFileAsBytes(fsys, settingPath)
		if err != nil {
			return nil, err
		}

		setting, err := ParseModelSetting(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", settingPath, err)
		}

		puppet := NewPuppet(setting, fsys, dir, logger, debug)
		if err := puppet.SetupTextures(textures); err != nil {
			puppet.Release()
			return nil, fmt.Errorf("%s: %w", settingPath, err)
		}

		return puppet, nil
	}
}

// SetupTextures loads the atlas page and cuts out one image per part.
func (p *Puppet) SetupTextures(textures *TextureManager) error {
	if p.setting.Atlas == "" {
		if len(p.setting.Parts) > 0 {
			return fmt.Errorf("parts without atlas")
		}
		return nil
	}

	data, err := LoadFileAsBytes(p.fsys, path.Join(p.home, p.setting.Atlas))
	if err != nil {
		return err
	}
	atlas, err := ParseAtlas(string(data))
	if err != nil {
		return err
	}

	p.textures = textures
	p.pageName = path.Join(p.home, atlas.Header.Image)
	page, err := textures.CreateTextureFromPNG(p.pageName)
	if err != nil {
		return err
	}

	for _, part := range p.setting.Parts {
		item, ok := atlas.Item(part.Region)
		if !ok {
			return fmt.Errorf("part %q: region %q not in atlas", part.Id, part.Region)
		}

		img, owned := regionImage(page.Image, item)
		bound := img.Bounds()
		p.parts = append(p.parts, &puppetPart{
			setting: part,
			image:   img,
			owned:   owned,
			center:  mgl32.Vec2{p.setting.units(part.X), p.setting.units(part.Y)},
			size:    mgl32.Vec2{p.setting.units(float32(bound.Dx())), p.setting.units(float32(bound.Dy()))},
			blend:   BlendMap[blendNames[part.Blend]],
		})
	}

	return nil
}

// regionImage cuts an atlas region out of its page, turning rotated
// regions back upright.
func regionImage(page *ebiten.Image, item *AtlasItem) (*ebiten.Image, bool) {
	sub := page.SubImage(image.Rect(item.X, item.Y, item.X+item.W, item.Y+item.H)).(*ebiten.Image)
	if item.Rotate == 0 {
		return sub, false
	}

	// packed regions are turned counter clockwise, draw them back clockwise
	res := ebiten.NewImage(item.H, item.W)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Rotate(math.Pi / 2)
	op.GeoM.Translate(float64(item.H), 0)
	res.DrawImage(sub, op)
	return res, true
}

func (p *Puppet) Update(deltaSeconds float32) {
	if p.motions.IsFinished() {
		p.StartRandomMotion(MotionGroupIdle, PriorityIdle, nil)
	} else {
		p.motions.Update(deltaSeconds)
	}

	if p.setting.LipSync.Enabled {
		p.wav.Update(deltaSeconds)
		p.mouthOpen = clamp(p.wav.Rms()*p.setting.LipSync.Gain, 0, 1)
	}
}

func (p *Puppet) Draw(dst *ebiten.Image, projection mgl32.Mat4) {
	if dst == nil {
		return
	}

	mvp := projection.Mul4(p.modelMatrix.Matrix())
	bound := dst.Bounds()
	w, h := bound.Dx(), bound.Dy()

	tint := mgl32.Vec4{1, 1, 1, 1}
	if p.expression != nil {
		tint = p.expression.Tint
	}

	for _, part := range p.parts {
		center := part.center.Add(p.offset(part.setting.Bind))
		half := part.size.Mul(0.5)
		if part.setting.Bind == BindMouth {
			half[1] *= mouthClosedScale + (1-mouthClosedScale)*p.mouthOpen
		}

		corners := [4]mgl32.Vec2{
			{center.X() - half.X(), center.Y() + half.Y()},
			{center.X() + half.X(), center.Y() + half.Y()},
			{center.X() + half.X(), center.Y() - half.Y()},
			{center.X() - half.X(), center.Y() - half.Y()},
		}

		src := part.image.Bounds()
		sx0, sy0 := float32(src.Min.X), float32(src.Min.Y)
		sx1, sy1 := float32(src.Max.X), float32(src.Max.Y)
		uvs := [4]mgl32.Vec2{{sx0, sy0}, {sx1, sy0}, {sx1, sy1}, {sx0, sy1}}

		vertices := make([]ebiten.Vertex, 0, 4)
		for i, corner := range corners {
			px := ClipToPixel(Transform2D(mvp, corner), w, h)
			vertices = append(vertices, NewVertex(px.X(), px.Y(), uvs[i].X(), uvs[i].Y()))
		}

		clr := Vec4Mul(part.setting.Color, tint)
		clr[3] *= p.opacity

		part.colorM.Reset()
		part.colorM.Scale(float64(clr[0]), float64(clr[1]), float64(clr[2]), float64(clr[3]))
		part.option.Blend = part.blend
		colorm.DrawTriangles(dst, vertices, []uint16{0, 1, 2, 0, 2, 3}, part.image, part.colorM, &part.option)
	}
}

// offset is how far the drag point moves a part, in model units.
func (p *Puppet) offset(bind string) mgl32.Vec2 {
	var travel float32
	switch bind {
	case BindHead, BindMouth:
		travel = p.setting.Drag.Head
	case BindBody:
		travel = p.setting.Drag.Body
	default:
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{p.dragX, p.dragY}.Mul(p.setting.units(travel))
}

func (p *Puppet) HitTest(hitAreaName string, x, y float32) bool {
	// transparent models can not be hit
	if p.opacity < 1 {
		return false
	}

	area, ok := p.setting.HitArea(hitAreaName)
	if !ok {
		return false
	}

	tx := p.modelMatrix.InvertTransformX(x)
	ty := p.modelMatrix.InvertTransformY(y)

	cx, cy := p.setting.units(area.X), p.setting.units(area.Y)
	hw, hh := p.setting.units(area.Width)/2, p.setting.units(area.Height)/2
	return cx-hw <= tx && tx <= cx+hw && cy-hh <= ty && ty <= cy+hh
}

func (p *Puppet) SetDragging(x, y float32) {
	p.dragX = x
	p.dragY = y
}

func (p *Puppet) StartMotion(group string, no int, priority int, onFinished FinishedMotionFunc) MotionHandle {
	motion, ok := p.setting.Motion(group, no)
	if !ok {
		p.logger.Warn("Motion not found", slog.String("group", group), slog.Int("no", no))
		return InvalidMotionHandle
	}

	if priority == PriorityForce {
		p.motions.SetReservePriority(priority)
	} else if !p.motions.ReserveMotion(priority) {
		p.debug.Print("[APP]can't start motion.")
		return InvalidMotionHandle
	}

	if motion.Sound != "" {
		soundPath := path.Join(p.home, motion.Sound)
		if err := p.wav.Start(soundPath); err != nil {
			p.logger.Warn("Failed to start lip sync", slog.String("path", soundPath), slog.Any("err", err))
		}
	}

	p.debug.Print("[APP]start motion", slog.String("group", group), slog.Int("no", no))
	return p.motions.StartMotionPriority(group, no, motion, priority, onFinished)
}

func (p *Puppet) StartRandomMotion(group string, priority int, onFinished FinishedMotionFunc) MotionHandle {
	count := p.setting.MotionCount(group)
	if count == 0 {
		return InvalidMotionHandle
	}
	return p.StartMotion(group, p.intn(count), priority, onFinished)
}

func (p *Puppet) SetExpression(expressionID string) {
	expression, ok := p.setting.Expression(expressionID)
	if !ok {
		p.logger.Warn("Expression not found", slog.String("expression", expressionID))
		return
	}
	p.debug.Print("[APP]expression", slog.String("expression", expressionID))
	p.expression = expression
}

func (p *Puppet) SetRandomExpression() {
	if len(p.setting.Expressions) == 0 {
		return
	}
	p.SetExpression(p.setting.Expressions[p.intn(len(p.setting.Expressions))].Name)
}

func (p *Puppet) SetOpacity(opacity float32) {
	p.opacity = clamp(opacity, 0, 1)
}

func (p *Puppet) CanvasWidth() float32 {
	return p.setting.units(p.setting.Canvas.Width)
}

func (p *Puppet) ModelMatrix() *ModelMatrix {
	return p.modelMatrix
}

func (p *Puppet) MouthOpen() float32 {
	return p.mouthOpen
}

func (p *Puppet) Release() {
	p.motions.StopAllMotions()
	p.wav.Release()

	for _, part := range p.parts {
		if part.owned {
			part.image.Deallocate()
		}
	}
	p.parts = nil

	if p.textures != nil && p.pageName != "" {
		p.textures.ReleaseTextureByName(p.pageName)
	}
}
