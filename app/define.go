package app

// view
const (
	ViewScale    = 1.0
	ViewMaxScale = 2.0
	ViewMinScale = 0.8

	ViewLogicalLeft   = -1.0
	ViewLogicalRight  = 1.0
	ViewLogicalBottom = -1.0
	ViewLogicalTop    = 1.0

	ViewLogicalMaxLeft   = -2.0
	ViewLogicalMaxRight  = 2.0
	ViewLogicalMaxBottom = -2.0
	ViewLogicalMaxTop    = 2.0
)

// images around the model, relative to the resource root
const (
	BackImageName  = "back_class_normal.png"
	GearImageName  = "icon_gear.png"
	PowerImageName = "close.png"
)

// ModelDir lists the model directories. The setting file inside must be
// named after its directory, e.g. Mao/Mao.model.json.
var ModelDir = []string{
	"Mao",
}

// ModelFix is the translateY, scaleX, scaleY applied per scene so that
// only the upper body is shown.
var ModelFix = [][3]float32{
	{-0.65, 2.2, 2.2},
}

// motion groups and hit areas, matching the model setting files
const (
	MotionGroupIdle    = "Idle"
	MotionGroupTapBody = "TapBody"

	HitAreaNameHead = "Head"
	HitAreaNameBody = "Body"
)

// motion priorities
const (
	PriorityNone = iota
	PriorityIdle
	PriorityNormal
	PriorityForce
)

const (
	RenderTargetWidth  = 900
	RenderTargetHeight = 900
)
