package scenes

import (
	"github.com/gonewx/ravelight/pkg/components"
	"github.com/gonewx/ravelight/pkg/ecs"
)

// buildEntities 按地图配置创建玩家和事件实体
func (s *LitMapScene) buildEntities() {
	m := s.mapConfig
	tile := s.config.TileSize

	s.playerEntity = s.entityManager.CreateEntity()
	px, py := m.TileCenter(m.Player.X, m.Player.Y, tile)
	ecs.AddComponent(s.entityManager, s.playerEntity, &components.PlayerComponent{})
	ecs.AddComponent(s.entityManager, s.playerEntity, &components.PositionComponent{X: px, Y: py})
	ecs.AddComponent(s.entityManager, s.playerEntity, &components.FacingComponent{Direction: components.Direction(m.Player.Direction)})

	for _, ev := range m.Events {
		id := s.entityManager.CreateEntity()
		s.eventEntities[ev.ID] = id

		pages := make([]string, len(ev.Pages))
		for i, p := range ev.Pages {
			pages[i] = p.Note
		}
		ecs.AddComponent(s.entityManager, id, &components.MapEventComponent{
			EventID:    ev.ID,
			Name:       ev.Name,
			Pages:      pages,
			ActivePage: ev.ActivePage,
		})

		x, y := m.TileCenter(ev.X, ev.Y, tile)
		ecs.AddComponent(s.entityManager, id, &components.PositionComponent{X: x, Y: y})
		ecs.AddComponent(s.entityManager, id, &components.FacingComponent{Direction: components.Direction(ev.Direction)})

		if len(ev.Patrol) > 0 {
			patrol := &components.PatrolComponent{Speed: ev.PatrolSpeed}
			for _, p := range ev.Patrol {
				wx, wy := m.TileCenter(p.X, p.Y, tile)
				patrol.Waypoints = append(patrol.Waypoints, components.PositionComponent{X: wx, Y: wy})
			}
			ecs.AddComponent(s.entityManager, id, patrol)
		}
	}
}

// EventEntity 返回地图事件对应的实体
func (s *LitMapScene) EventEntity(eventID int) (ecs.EntityID, bool) {
	id, ok := s.eventEntities[eventID]
	return id, ok
}

// PlayerEntity 返回玩家实体
func (s *LitMapScene) PlayerEntity() ecs.EntityID {
	return s.playerEntity
}
