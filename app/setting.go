package app

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Part bindings: which runtime value moves a part.
const (
	BindNone  = ""
	BindHead  = "head"
	BindBody  = "body"
	BindMouth = "mouth"
)

// ModelSetting is the content of a <Name>.model.json file. Sizes and
// positions are canvas pixels with the origin in the canvas center, y up.
type ModelSetting struct {
	Version int `json:"Version"`

	Canvas struct {
		Width         float32 `json:"Width"`
		Height        float32 `json:"Height"`
		PixelsPerUnit float32 `json:"PixelsPerUnit"`
	} `json:"Canvas"`

	Atlas string `json:"Atlas"`

	Parts       []*PartSetting              `json:"Parts"`
	HitAreas    []*HitAreaSetting           `json:"HitAreas"`
	Motions     map[string][]*MotionSetting `json:"Motions"`
	Expressions []*ExpressionSetting        `json:"Expressions"`

	LipSync struct {
		Enabled bool    `json:"Enabled"`
		Gain    float32 `json:"Gain"`
	} `json:"LipSync"`

	Drag struct {
		Head float32 `json:"Head"` // pixels the head travels at full drag
		Body float32 `json:"Body"`
	} `json:"Drag"`
}

type PartSetting struct {
	Id     string     `json:"Id"`
	Region string     `json:"Region"`
	X      float32    `json:"X"`
	Y      float32    `json:"Y"`
	Bind   string     `json:"Bind"`
	Blend  string     `json:"Blend"`
	Color  mgl32.Vec4 `json:"Color"`
}

type HitAreaSetting struct {
	Name   string  `json:"Name"`
	X      float32 `json:"X"`
	Y      float32 `json:"Y"`
	Width  float32 `json:"Width"`
	Height float32 `json:"Height"`
}

type MotionSetting struct {
	Name     string  `json:"Name"`
	Duration float32 `json:"Duration"`
	Loop     bool    `json:"Loop"`
	Sound    string  `json:"Sound"`
}

type ExpressionSetting struct {
	Name string     `json:"Name"`
	Tint mgl32.Vec4 `json:"Tint"`
}

var blendNames = map[string]int{
	"":         BlendNormal,
	"normal":   BlendNormal,
	"additive": BlendAdditive,
	"multiply": BlendMultiply,
	"screen":   BlendScreen,
}

func ParseModelSetting(data []byte) (*ModelSetting, error) {
	setting := &ModelSetting{}
	if err := json.Unmarshal(data, setting); err != nil {
		return nil, fmt.Errorf("parse model setting: %w", err)
	}

	if setting.Canvas.Width <= 0 || setting.Canvas.Height <= 0 {
		return nil, fmt.Errorf("model setting: invalid canvas %vx%v", setting.Canvas.Width, setting.Canvas.Height)
	}
	if setting.Canvas.PixelsPerUnit <= 0 {
		setting.Canvas.PixelsPerUnit = setting.Canvas.Width
	}
	if setting.LipSync.Gain <= 0 {
		setting.LipSync.Gain = 1
	}

	for _, part := range setting.Parts {
		if _, ok := blendNames[part.Blend]; !ok {
			return nil, fmt.Errorf("model setting: part %q: unknown blend %q", part.Id, part.Blend)
		}
		switch part.Bind {
		case BindNone, BindHead, BindBody, BindMouth:
		default:
			return nil, fmt.Errorf("model setting: part %q: unknown bind %q", part.Id, part.Bind)
		}
		if part.Color == (mgl32.Vec4{}) {
			part.Color = mgl32.Vec4{1, 1, 1, 1}
		}
	}

	for group, motions := range setting.Motions {
		for no, motion := range motions {
			if motion.Duration <= 0 {
				return nil, fmt.Errorf("model setting: motion %s_%d: duration must be positive", group, no)
			}
		}
	}

	return setting, nil
}

// MotionCount is the number of motions in group.
func (s *ModelSetting) MotionCount(group string) int {
	return len(s.Motions[group])
}

func (s *ModelSetting) Motion(group string, no int) (*MotionSetting, bool) {
	motions := s.Motions[group]
	if no < 0 || no >= len(motions) {
		return nil, false
	}
	return motions[no], true
}

func (s *ModelSetting) Expression(name string) (*ExpressionSetting, bool) {
	for _, expression := range s.Expressions {
		if expression.Name == name {
			return expression, true
		}
	}
	return nil, false
}

func (s *ModelSetting) HitArea(name string) (*HitAreaSetting, bool) {
	for _, area := range s.HitAreas {
		if area.Name == name {
			return area, true
		}
	}
	return nil, false
}

// units converts canvas pixels into model units.
func (s *ModelSetting) units(px float32) float32 {
	return px / s.Canvas.PixelsPerUnit
}
