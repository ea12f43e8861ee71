package components

import (
	"github.com/gonewx/ravelight/internal/lighting"
	"github.com/google/uuid"
)

// LightComponent 挂在地图事件上的灯光集合
//
// Note 是生成这些灯光的注释文本，Page 是注释所在的事件页下标
// （来自 LightNoteComponent 时为 NoteOverridePage）。两者任一变化时
// LightPageSystem 会丢弃旧灯光（连同动画状态）并重建，注释相同的两页之间切换也会重建。
type LightComponent struct {
	Note   string
	Page   int
	Lights []*LightInstance
}

// NoteOverridePage 灯光来自 LightNoteComponent 而非事件页时 LightComponent.Page 的取值
const NoteOverridePage = -2

// LightInstance 一个灯光实例：解析出的描述符加上它自己的运行时状态
type LightInstance struct {
	// Handle 实例的稳定标识，精灵组件按它索引
	Handle     uuid.UUID
	Descriptor lighting.Descriptor
	Runtime    LightRuntime
}

// NewLightInstance 从描述符创建实例，描述符会先被规范化
func NewLightInstance(d lighting.Descriptor) *LightInstance {
	d.Sanitize()
	return &LightInstance{
		Handle:     uuid.New(),
		Descriptor: d,
		Runtime:    NewLightRuntime(&d),
	}
}

// LightRuntime 每帧推进的动画/追踪状态
//
// 关闭或被裁剪的灯光不推进，计数器保持原值，重新可见时从中断处继续。
type LightRuntime struct {
	// Pulsate: 当前偏移量 [0, max-min] 和方向 (+1/-1)
	PulsateValue     float64
	PulsateDirection float64

	// Flicker: 帧计数和模式表下标
	FlickerCounter int
	FlickerIndex   int

	// Phase: 当前过渡进度（帧）和起始颜色下标
	PhaseProgress int
	PhaseIndex    int

	// Fire: 当前角度（度），首次推进时随机初始化
	FireAngle  float64
	FireSeeded bool

	// Beam: 自旋角度（度，[0, 360)）和每条光束平滑后的旋转（弧度）
	SpinAngle     float64
	BeamRotations []float64
	beamRotSet    bool

	// Flashlight: 平滑后的旋转（弧度），首次激活时直接对齐
	FlashRotation    float64
	flashRotationSet bool

	// 本帧输出
	Color      lighting.Color
	Alpha      float64
	Footprints []Footprint
	Visible    bool
}

// NewLightRuntime 创建初始运行时状态
func NewLightRuntime(d *lighting.Descriptor) LightRuntime {
	rt := LightRuntime{
		PulsateDirection: 1,
		Color:            d.Color,
		Alpha:            1,
	}
	if d.Type == lighting.TypeBeam {
		rt.BeamRotations = make([]float64, d.BeamCount)
	}
	return rt
}

// HasFlashRotation 手电筒是否已经有过平滑角度
func (rt *LightRuntime) HasFlashRotation() bool {
	return rt.flashRotationSet
}

// SetFlashRotation 设置手电筒角度并标记为已激活
func (rt *LightRuntime) SetFlashRotation(angle float64) {
	rt.FlashRotation = angle
	rt.flashRotationSet = true
}

// HasBeamRotations 光束是否已经有过平滑角度
func (rt *LightRuntime) HasBeamRotations() bool {
	return rt.beamRotSet
}

// MarkBeamRotations 标记光束角度已初始化
func (rt *LightRuntime) MarkBeamRotations() {
	rt.beamRotSet = true
}

// Hide 隐藏灯光，本帧不产生足迹
func (rt *LightRuntime) Hide() {
	rt.Visible = false
	rt.Footprints = rt.Footprints[:0]
}

// LightNoteComponent 独立于事件页的灯光注释（如调试或脚本动态添加的灯光）
// 存在时覆盖 MapEventComponent 当前页的注释
type LightNoteComponent struct {
	Note string
}
