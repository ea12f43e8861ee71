package systems

import (
	"log"
	"sort"

	"github.com/gonewx/ravelight/internal/lighting"
	"github.com/gonewx/ravelight/pkg/components"
	"github.com/gonewx/ravelight/pkg/ecs"
	"github.com/gonewx/ravelight/pkg/game"
	"github.com/google/uuid"
)

// LightPageSystem 维护事件的灯光集合与当前页注释同步
//
// 每帧比较实体当前的注释和页下标与 LightComponent 记录的值，任一变化时
// （页切换、脚本修改注释）丢弃旧灯光及其动画状态，按新注释重新解析并预生成贴图。
// 注释来源优先级：LightNoteComponent > MapEventComponent 当前页。
type LightPageSystem struct {
	entityManager *ecs.EntityManager
	registry      *lighting.Registry
	cache         *game.LightTextureCache
	tileSize      float64
}

// NewLightPageSystem 创建灯光页系统
// registry 和 cache 可为 nil（不支持自定义类型 / 不预生成贴图）
func NewLightPageSystem(em *ecs.EntityManager, registry *lighting.Registry, cache *game.LightTextureCache, tileSize float64) *LightPageSystem {
	return &LightPageSystem{
		entityManager: em,
		registry:      registry,
		cache:         cache,
		tileSize:      tileSize,
	}
}

// Update 检查所有带注释的实体，返回本帧重建灯光的实体数量
func (s *LightPageSystem) Update() int {
	rebuilt := 0
	for _, id := range s.annotatedEntities() {
		note, page := s.currentNote(id)
		light, ok := ecs.GetComponent[*components.LightComponent](s.entityManager, id)
		if ok && light.Note == note && light.Page == page {
			continue
		}
		s.establish(id, note, page)
		rebuilt++
	}
	return rebuilt
}

// Refresh 强制按当前注释重建实体的灯光
func (s *LightPageSystem) Refresh(id ecs.EntityID) {
	if !s.entityManager.Exists(id) {
		return
	}
	note, page := s.currentNote(id)
	s.establish(id, note, page)
}

// annotatedEntities 返回拥有 LightNoteComponent 或 MapEventComponent 的实体（按ID升序）
func (s *LightPageSystem) annotatedEntities() []ecs.EntityID {
	seen := make(map[ecs.EntityID]bool)
	var ids []ecs.EntityID
	for _, group := range [][]ecs.EntityID{
		ecs.GetEntitiesWith1[*components.LightNoteComponent](s.entityManager),
		ecs.GetEntitiesWith1[*components.MapEventComponent](s.entityManager),
	} {
		for _, id := range group {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// currentNote 返回实体当前生效的注释及其页下标
func (s *LightPageSystem) currentNote(id ecs.EntityID) (string, int) {
	if n, ok := ecs.GetComponent[*components.LightNoteComponent](s.entityManager, id); ok {
		return n.Note, components.NoteOverridePage
	}
	if ev, ok := ecs.GetComponent[*components.MapEventComponent](s.entityManager, id); ok {
		return ev.ActiveNote(), ev.ActivePage
	}
	return "", -1
}

// establish 按注释建立实体的灯光集合，旧的灯光和精灵一并替换
func (s *LightPageSystem) establish(id ecs.EntityID, note string, page int) {
	descs := lighting.Parse(note, s.registry)

	light := &components.LightComponent{Note: note, Page: page}
	for _, d := range descs {
		light.Lights = append(light.Lights, components.NewLightInstance(d))
	}
	ecs.AddComponent(s.entityManager, id, light)
	ecs.AddComponent(s.entityManager, id, &components.LightSpriteComponent{
		Sprites: make(map[uuid.UUID][]components.RenderSprite),
	})

	if s.cache != nil && len(descs) > 0 {
		s.cache.Prewarm(descs, s.tileSize)
	}
	if len(descs) > 0 {
		log.Printf("[LightPageSystem] Entity %d: established %d light(s) from %q", id, len(descs), note)
	}
}
