package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ravelight/internal/lighting"
	"github.com/gonewx/ravelight/pkg/components"
	"github.com/gonewx/ravelight/pkg/config"
	"github.com/gonewx/ravelight/pkg/ecs"
	"github.com/gonewx/ravelight/pkg/game"
)

// FlickerPattern 闪烁灯光依次使用的透明度表，每 Interval 帧前进一项
var FlickerPattern = [...]float64{
	0.25, 0.35, 0.20, 0.40, 0.30, 0.45, 0.15, 0.38, 0.28, 0.33,
	0.22, 0.37, 0.18, 0.42, 0.32, 0.24, 0.17, 0.40, 0.27, 0.35,
	0.19, 0.34, 0.23, 0.39, 0.29, 0.31, 0.16, 0.36, 0.26, 0.31,
}

// LightAnimationSystem 推进所有灯光的动画和追踪状态，并计算本帧的足迹
//
// 每帧对每个带 LightComponent + PositionComponent 的实体：
//   - 关闭的灯光（按ID查询全局状态）隐藏，不推进
//   - 包围范围（原点 ± 照射距离）与扩展后的视口不相交的灯光隐藏，不推进
//   - 其余灯光按类型推进一帧，更新颜色、透明度和足迹
//
// 渲染系统和黑暗系统都只读取这里算出的足迹。
type LightAnimationSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	config        *config.LightingConfig
	rng           *rand.Rand
}

// NewLightAnimationSystem 创建灯光动画系统
//
// 参数:
//   - em: 实体管理器
//   - gs: 全局状态（帧计数、灯光开关与追踪）
//   - cfg: 灯光配置，nil 时使用默认配置
//   - rng: 火焰起始角度的随机源，nil 时以当前时间为种子创建
func NewLightAnimationSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.LightingConfig, rng *rand.Rand) *LightAnimationSystem {
	if cfg == nil {
		cfg = config.DefaultLightingConfig()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LightAnimationSystem{
		entityManager: em,
		gameState:     gs,
		config:        cfg,
		rng:           rng,
	}
}

// trackingTargets 本帧可追踪目标的位置（已抬高到胸口高度）
type trackingTargets struct {
	player    mgl64.Vec2
	hasPlayer bool
	events    map[int]mgl64.Vec2
}

// resolve 返回追踪目标的位置；目标不存在时返回 false
func (t *trackingTargets) resolve(target game.TrackingTarget) (mgl64.Vec2, bool) {
	switch target.Kind {
	case game.TrackPlayer:
		return t.player, t.hasPlayer
	case game.TrackEntity:
		p, ok := t.events[target.EntityID]
		return p, ok
	}
	return mgl64.Vec2{}, false
}

// Update 推进一帧
func (s *LightAnimationSystem) Update() {
	lights := s.gameState.Lights()
	targets := s.collectTargets()
	view := newViewport(s.config.ScreenWidth, s.config.ScreenHeight, s.config.LightBuffer)

	for _, id := range ecs.GetEntitiesWith2[*components.LightComponent, *components.PositionComponent](s.entityManager) {
		light, _ := ecs.GetComponent[*components.LightComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		facing := components.DirDown
		if f, ok := ecs.GetComponent[*components.FacingComponent](s.entityManager, id); ok && f.Direction.IsValid() {
			facing = f.Direction
		}

		for _, inst := range light.Lights {
			d := &inst.Descriptor
			rt := &inst.Runtime

			if !lights.IsOn(d.ID) {
				rt.Hide()
				continue
			}
			origin := mgl64.Vec2{pos.X + d.OffsetX, pos.Y + d.OffsetY}
			if !view.intersectsCircle(origin, d.Reach(s.config.TileSize)) {
				rt.Hide()
				continue
			}

			s.advance(inst, origin, facing, lights, &targets)
			rt.Visible = true
		}
	}
}

// collectTargets 收集玩家和地图事件的位置
func (s *LightAnimationSystem) collectTargets() trackingTargets {
	lift := mgl64.Vec2{0, -s.config.TargetHeightOffset}
	t := trackingTargets{events: make(map[int]mgl64.Vec2)}

	for _, id := range ecs.GetEntitiesWith2[*components.PlayerComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		t.player = mgl64.Vec2{pos.X, pos.Y}.Add(lift)
		t.hasPlayer = true
		break
	}
	for _, id := range ecs.GetEntitiesWith2[*components.MapEventComponent, *components.PositionComponent](s.entityManager) {
		ev, _ := ecs.GetComponent[*components.MapEventComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		t.events[ev.EventID] = mgl64.Vec2{pos.X, pos.Y}.Add(lift)
	}
	return t
}

func (s *LightAnimationSystem) advance(inst *components.LightInstance, origin mgl64.Vec2, facing components.Direction, lights *game.LightState, targets *trackingTargets) {
	d := &inst.Descriptor
	rt := &inst.Runtime
	key := game.TextureKeyFor(d, s.config.TileSize)
	sx, sy := game.TextureScaleFor(d, s.config.TileSize)

	rt.Color = d.Color
	rt.Alpha = 1
	rt.Footprints = rt.Footprints[:0]

	radial := components.Footprint{
		Texture: key,
		X:       origin.X(),
		Y:       origin.Y(),
		ScaleX:  sx,
		ScaleY:  sy,
		AnchorX: radialAnchorX,
		AnchorY: radialAnchorY,
	}

	switch d.Type {
	case lighting.TypePulsate:
		scale := advancePulsate(d, rt)
		radial.ScaleX, radial.ScaleY = scale*sx, scale*sy
		rt.Footprints = append(rt.Footprints, radial)

	case lighting.TypeFlicker:
		rt.Alpha = advanceFlicker(d, rt)
		rt.Footprints = append(rt.Footprints, radial)

	case lighting.TypePhase:
		rt.Color = advancePhase(d, rt)
		rt.Footprints = append(rt.Footprints, radial)

	case lighting.TypeFire:
		rt.Alpha = s.advanceFire(d, rt)
		rt.Footprints = append(rt.Footprints, radial)

	case lighting.TypeFlashlight:
		cone := origin.Sub(mgl64.Vec2{0, s.config.TargetHeightOffset})
		target := DirectionAngle(facing)
		if p, ok := targets.resolve(lights.FlashlightTarget(d.ID)); ok {
			target = TargetAngle(cone, p)
		}
		if rt.HasFlashRotation() {
			rt.SetFlashRotation(SmoothRotate(rt.FlashRotation, target, s.config.RotationSmoothing))
		} else {
			rt.SetFlashRotation(NormalizeAngle(target))
		}
		rt.Footprints = append(rt.Footprints, components.Footprint{
			Texture:  key,
			X:        cone.X(),
			Y:        cone.Y(),
			Rotation: rt.FlashRotation,
			ScaleX:   sx,
			ScaleY:   sy,
			AnchorX:  coneAnchorX,
			AnchorY:  coneAnchorY,
		})

	case lighting.TypeBeam:
		rt.Color = BeamColor(d, s.gameState.FrameCount)
		rt.Alpha = d.BeamOpacity
		s.advanceBeam(inst, origin, facing, lights, targets, key, sx, sy)

	default:
		rt.Footprints = append(rt.Footprints, radial)
	}
}

// advancePulsate 推进三角波，返回相对 MaxRadius 的缩放
func advancePulsate(d *lighting.Descriptor, rt *components.LightRuntime) float64 {
	span := d.MaxRadius - d.MinRadius
	rt.PulsateValue += d.PulsateSpeed * rt.PulsateDirection
	if rt.PulsateValue > span {
		rt.PulsateValue = span
		rt.PulsateDirection = -1
	} else if rt.PulsateValue < 0 {
		rt.PulsateValue = 0
		rt.PulsateDirection = 1
	}
	return (d.MinRadius + rt.PulsateValue) / d.MaxRadius
}

// advanceFlicker 推进闪烁计数，返回当前透明度
func advanceFlicker(d *lighting.Descriptor, rt *components.LightRuntime) float64 {
	rt.FlickerCounter++
	if rt.FlickerCounter >= d.FlickerInterval {
		rt.FlickerCounter = 0
		rt.FlickerIndex = (rt.FlickerIndex + 1) % len(FlickerPattern)
	}
	return FlickerPattern[rt.FlickerIndex]
}

// advancePhase 推进颜色过渡，返回当前颜色
func advancePhase(d *lighting.Descriptor, rt *components.LightRuntime) lighting.Color {
	n := len(d.Colors)
	rt.PhaseProgress++
	if rt.PhaseProgress >= d.PhaseSpeed {
		rt.PhaseProgress = 0
		rt.PhaseIndex = (rt.PhaseIndex + 1) % n
	}
	from := d.Colors[rt.PhaseIndex%n]
	to := d.Colors[(rt.PhaseIndex+1)%n]
	return from.Lerp(to, float64(rt.PhaseProgress)/float64(d.PhaseSpeed))
}

// advanceFire 推进火焰角度，返回当前透明度
// 第一次推进时从随机角度开始，避免同一画面的火焰同步闪动
func (s *LightAnimationSystem) advanceFire(d *lighting.Descriptor, rt *components.LightRuntime) float64 {
	if !rt.FireSeeded {
		rt.FireAngle = s.rng.Float64() * 360
		rt.FireSeeded = true
	}
	rt.FireAngle = math.Mod(rt.FireAngle+d.FireSpeed, 360)
	return FireAlpha(d, rt.FireAngle)
}

// FireAlpha 火焰在给定角度（度）下的透明度，限制在 [MinAlpha, MaxAlpha]
func FireAlpha(d *lighting.Descriptor, angleDeg float64) float64 {
	rad := angleDeg * math.Pi / 180
	wave := 0.6*math.Sin(rad) + 0.4*math.Sin(2*rad)
	alpha := d.FireMinAlpha + (d.FireMaxAlpha-d.FireMinAlpha)*wave
	return math.Max(d.FireMinAlpha, math.Min(d.FireMaxAlpha, alpha))
}

// BeamColor 光束在给定帧的颜色
// Speed > 0 且至少两种颜色时，在前两种颜色之间按 (frame % Speed) / Speed 插值
func BeamColor(d *lighting.Descriptor, frame uint64) lighting.Color {
	if len(d.Colors) == 0 {
		return lighting.White
	}
	if d.BeamSpeed > 0 && len(d.Colors) > 1 {
		speed := uint64(d.BeamSpeed)
		t := float64(frame%speed) / float64(speed)
		return d.Colors[0].Lerp(d.Colors[1], t)
	}
	return d.Colors[0]
}

// advanceBeam 计算光束扇形中每条光束的旋转和长度
//
// 追踪到目标时所有光束立即对准（第一条指向目标），长度截断到目标距离；
// 未追踪（或目标不存在）且有自旋时按自旋角度立即对准；
// 否则向事件朝向平滑转动。
func (s *LightAnimationSystem) advanceBeam(inst *components.LightInstance, origin mgl64.Vec2, facing components.Direction, lights *game.LightState, targets *trackingTargets, key game.TextureKey, sx, sy float64) {
	d := &inst.Descriptor
	rt := &inst.Runtime
	if len(rt.BeamRotations) != d.BeamCount {
		rt.BeamRotations = make([]float64, d.BeamCount)
	}

	scaleY := 1.0
	snap := true
	var base float64

	if p, ok := targets.resolve(lights.BeamTarget(d.ID)); ok {
		base = TargetAngle(origin, p)
		scaleY = math.Min(p.Sub(origin).Len(), d.BeamLength) / d.BeamLength
	} else if d.SpinRate != 0 {
		rt.SpinAngle = math.Mod(rt.SpinAngle+d.SpinRate, 360)
		if rt.SpinAngle < 0 {
			rt.SpinAngle += 360
		}
		base = mgl64.DegToRad(rt.SpinAngle)
	} else {
		base = DirectionAngle(facing)
		snap = !rt.HasBeamRotations()
	}

	between := 2 * math.Pi / float64(d.BeamCount)
	for i := range rt.BeamRotations {
		target := base + float64(i)*between
		if snap {
			rt.BeamRotations[i] = NormalizeAngle(target)
		} else {
			rt.BeamRotations[i] = SmoothRotate(rt.BeamRotations[i], target, s.config.RotationSmoothing)
		}
		rt.Footprints = append(rt.Footprints, components.Footprint{
			Texture:  key,
			X:        origin.X(),
			Y:        origin.Y(),
			Rotation: rt.BeamRotations[i],
			ScaleX:   sx,
			ScaleY:   scaleY * sy,
			AnchorX:  coneAnchorX,
			AnchorY:  coneAnchorY,
		})
	}
	rt.MarkBeamRotations()
}
