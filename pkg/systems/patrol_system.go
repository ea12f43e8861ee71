package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ravelight/pkg/components"
	"github.com/gonewx/ravelight/pkg/ecs"
)

// PatrolSystem 让带 PatrolComponent 的事件在路点之间循环移动，并更新朝向
type PatrolSystem struct {
	entityManager *ecs.EntityManager
}

// NewPatrolSystem 创建巡逻系统
func NewPatrolSystem(em *ecs.EntityManager) *PatrolSystem {
	return &PatrolSystem{entityManager: em}
}

// Update 每帧移动 Speed 像素，到达路点后转向下一个路点
func (s *PatrolSystem) Update() {
	for _, id := range ecs.GetEntitiesWith2[*components.PatrolComponent, *components.PositionComponent](s.entityManager) {
		patrol, _ := ecs.GetComponent[*components.PatrolComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if len(patrol.Waypoints) == 0 || patrol.Speed <= 0 {
			continue
		}
		if patrol.Target < 0 || patrol.Target >= len(patrol.Waypoints) {
			patrol.Target = 0
		}

		wp := patrol.Waypoints[patrol.Target]
		delta := mgl64.Vec2{wp.X - pos.X, wp.Y - pos.Y}
		dist := delta.Len()
		if dist <= patrol.Speed {
			pos.X, pos.Y = wp.X, wp.Y
			patrol.Target = (patrol.Target + 1) % len(patrol.Waypoints)
			continue
		}

		step := delta.Mul(patrol.Speed / dist)
		pos.X += step.X()
		pos.Y += step.Y()

		if facing, ok := ecs.GetComponent[*components.FacingComponent](s.entityManager, id); ok {
			facing.Direction = directionOf(delta)
		}
	}
}

// directionOf 返回位移的主方向
func directionOf(d mgl64.Vec2) components.Direction {
	if math.Abs(d.X()) > math.Abs(d.Y()) {
		if d.X() < 0 {
			return components.DirLeft
		}
		return components.DirRight
	}
	if d.Y() < 0 {
		return components.DirUp
	}
	return components.DirDown
}
