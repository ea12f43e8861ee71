package systems

import (
	"testing"

	"github.com/gonewx/ravelight/pkg/components"
	"github.com/gonewx/ravelight/pkg/ecs"
)

func TestPatrolSystemMovesBetweenWaypoints(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewPatrolSystem(em)

	id := em.CreateEntity()
	pos := &components.PositionComponent{X: 0, Y: 0}
	facing := &components.FacingComponent{Direction: components.DirDown}
	patrol := &components.PatrolComponent{
		Waypoints: []components.PositionComponent{{X: 10, Y: 0}, {X: 0, Y: 0}},
		Speed:     4,
	}
	ecs.AddComponent(em, id, pos)
	ecs.AddComponent(em, id, facing)
	ecs.AddComponent(em, id, patrol)

	sys.Update()
	if pos.X != 4 || facing.Direction != components.DirRight {
		t.Fatalf("after 1 frame: x=%v facing=%d", pos.X, facing.Direction)
	}

	sys.Update()
	sys.Update() // 剩余 2 像素，直接到达
	if pos.X != 10 || patrol.Target != 1 {
		t.Fatalf("should arrive at waypoint 0: x=%v target=%d", pos.X, patrol.Target)
	}

	sys.Update()
	if pos.X != 6 || facing.Direction != components.DirLeft {
		t.Errorf("heading back: x=%v facing=%d", pos.X, facing.Direction)
	}
}

func TestDirectionOf(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   components.Direction
	}{
		{1, 0, components.DirRight},
		{-1, 0.5, components.DirLeft},
		{0, 1, components.DirDown},
		{0.2, -1, components.DirUp},
	}
	for _, tt := range tests {
		if got := directionOf([2]float64{tt.dx, tt.dy}); got != tt.want {
			t.Errorf("directionOf(%v,%v) = %d, want %d", tt.dx, tt.dy, got, tt.want)
		}
	}
}
