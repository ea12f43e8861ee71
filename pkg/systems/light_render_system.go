package systems

import (
	"github.com/gonewx/ravelight/pkg/components"
	"github.com/gonewx/ravelight/pkg/ecs"
	"github.com/gonewx/ravelight/pkg/game"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// LightRenderSystem 把灯光足迹同步为加色精灵并绘制
//
// Update 在动画系统之后运行，把每个灯光的足迹、颜色和透明度写入
// LightSpriteComponent；Draw 以加色混合把精灵绘制到屏幕上（黑暗遮罩之后）。
type LightRenderSystem struct {
	entityManager *ecs.EntityManager
	cache         *game.LightTextureCache
}

// NewLightRenderSystem 创建灯光渲染系统
func NewLightRenderSystem(em *ecs.EntityManager, cache *game.LightTextureCache) *LightRenderSystem {
	return &LightRenderSystem{
		entityManager: em,
		cache:         cache,
	}
}

// Update 同步所有实体的灯光精灵
func (s *LightRenderSystem) Update() {
	for _, id := range ecs.GetEntitiesWith1[*components.LightComponent](s.entityManager) {
		light, _ := ecs.GetComponent[*components.LightComponent](s.entityManager, id)
		sprites, ok := ecs.GetComponent[*components.LightSpriteComponent](s.entityManager, id)
		if !ok {
			sprites = &components.LightSpriteComponent{}
			ecs.AddComponent(s.entityManager, id, sprites)
		}
		if sprites.Sprites == nil {
			sprites.Sprites = make(map[uuid.UUID][]components.RenderSprite)
		}

		live := make(map[uuid.UUID]bool, len(light.Lights))
		for _, inst := range light.Lights {
			live[inst.Handle] = true
			sprites.Sprites[inst.Handle] = syncSprites(sprites.Sprites[inst.Handle], &inst.Runtime)
		}
		for handle := range sprites.Sprites {
			if !live[handle] {
				delete(sprites.Sprites, handle)
			}
		}
	}
}

// syncSprites 按运行时状态更新一个灯光的精灵列表
// 精灵数量与本帧足迹数量一致；隐藏的灯光保留上一帧的精灵但标记为不可见
func syncSprites(list []components.RenderSprite, rt *components.LightRuntime) []components.RenderSprite {
	if !rt.Visible {
		for i := range list {
			list[i].Visible = false
		}
		return list
	}

	list = list[:0]
	for _, fp := range rt.Footprints {
		list = append(list, components.RenderSprite{
			Footprint: fp,
			Tint:      rt.Color,
			Alpha:     rt.Alpha,
			Visible:   true,
		})
	}
	return list
}

// VisibleSprites 返回当前所有可见精灵（按实体ID和灯光顺序）
func (s *LightRenderSystem) VisibleSprites() []components.RenderSprite {
	var out []components.RenderSprite
	for _, id := range ecs.GetEntitiesWith2[*components.LightComponent, *components.LightSpriteComponent](s.entityManager) {
		light, _ := ecs.GetComponent[*components.LightComponent](s.entityManager, id)
		sprites, _ := ecs.GetComponent[*components.LightSpriteComponent](s.entityManager, id)
		for _, inst := range light.Lights {
			for _, sp := range sprites.Sprites[inst.Handle] {
				if sp.Visible && sp.Alpha > 0 {
					out = append(out, sp)
				}
			}
		}
	}
	return out
}

// Draw 以加色混合绘制所有可见精灵
func (s *LightRenderSystem) Draw(screen *ebiten.Image) {
	for _, sp := range s.VisibleSprites() {
		img := s.cache.GetKey(sp.Footprint.Texture).Image()

		op := &ebiten.DrawImageOptions{}
		op.GeoM = sp.Footprint.GeoM()
		op.ColorScale.Scale(
			float32(sp.Tint.R)/255,
			float32(sp.Tint.G)/255,
			float32(sp.Tint.B)/255,
			1,
		)
		op.ColorScale.ScaleAlpha(float32(sp.Alpha))
		op.Blend = ebiten.BlendLighter
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}
}
