package scenes

import (
	"image/color"
	"log"

	"github.com/gonewx/ravelight/internal/lighting"
	"github.com/gonewx/ravelight/pkg/config"
	"github.com/gonewx/ravelight/pkg/ecs"
	"github.com/gonewx/ravelight/pkg/game"
	"github.com/gonewx/ravelight/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// LitMapScene 带动态光照的地图场景
//
// 地图上的事件按当前页的注释建立灯光。每帧顺序：
// 输入 → 帧计数 → 灯光页刷新 → 巡逻 → 动画/追踪/裁剪 → 精灵同步；
// 绘制顺序：地面 → 角色 → 黑暗遮罩 → 加色灯光 → 调试信息。
type LitMapScene struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	sceneManager  *game.SceneManager
	config        *config.LightingConfig
	mapConfig     *config.LightMapConfig
	cache         *game.LightTextureCache

	pageSystem      *systems.LightPageSystem
	patrolSystem    *systems.PatrolSystem
	animationSystem *systems.LightAnimationSystem
	renderSystem    *systems.LightRenderSystem
	darknessSystem  *systems.DarknessSystem

	playerEntity  ecs.EntityID
	eventEntities map[int]ecs.EntityID

	background *ebiten.Image

	// 屏幕底部的提示信息及剩余显示帧数
	message       string
	messageFrames int
}

// NewLitMapScene 创建地图场景并建立所有实体
//
// 参数:
//   - gs: 全局状态（灯光开关与追踪、帧计数、设置）
//   - sm: 场景管理器，用于切换地图，可为 nil
//   - cfg: 灯光配置
//   - registry: 自定义灯光类型注册表，可为 nil
//   - cache: 共享的贴图缓存
//   - m: 地图配置
func NewLitMapScene(gs *game.GameState, sm *game.SceneManager, cfg *config.LightingConfig, registry *lighting.Registry, cache *game.LightTextureCache, m *config.LightMapConfig) *LitMapScene {
	em := ecs.NewEntityManager()
	s := &LitMapScene{
		entityManager: em,
		gameState:     gs,
		sceneManager:  sm,
		config:        cfg,
		mapConfig:     m,
		cache:         cache,
		eventEntities: make(map[int]ecs.EntityID),
	}

	s.pageSystem = systems.NewLightPageSystem(em, registry, cache, cfg.TileSize)
	s.patrolSystem = systems.NewPatrolSystem(em)
	s.animationSystem = systems.NewLightAnimationSystem(em, gs, cfg, nil)
	s.renderSystem = systems.NewLightRenderSystem(em, cache)
	s.darknessSystem = systems.NewDarknessSystem(em, gs, cache, cfg.DarknessGamma)

	s.buildEntities()
	gs.SetTone(game.ScreenTone{R: m.Tone.R, G: m.Tone.G, B: m.Tone.B, Gray: m.Tone.Gray})

	// 进入地图时立即建立灯光并预生成贴图
	n := s.pageSystem.Update()
	log.Printf("[LitMapScene] Map %q ready: %d events, %d lit, %d textures cached",
		m.ID, len(m.Events), n, cache.Len())
	return s
}

// Update 推进一帧
func (s *LitMapScene) Update(deltaTime float64) {
	s.handleInput()
	s.advance()
}

// advance 推进一帧的灯光与角色状态（不处理输入）
func (s *LitMapScene) advance() {
	s.gameState.Tick()
	s.pageSystem.Update()
	s.patrolSystem.Update()
	s.animationSystem.Update()
	s.renderSystem.Update()

	if s.messageFrames > 0 {
		s.messageFrames--
	}
}

// Draw 绘制场景
func (s *LitMapScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	s.drawGround(screen)
	s.drawActors(screen)

	settings := s.gameState.GetSettingsManager().GetSettings()
	if settings.DarknessEnabled {
		s.darknessSystem.Draw(screen)
	}
	if settings.LightsEnabled {
		s.renderSystem.Draw(screen)
	}

	s.drawHUD(screen)
	if settings.ShowDebug {
		s.drawDebug(screen)
	}
}

// SaveOnExit 离开地图时保存灯光状态
func (s *LitMapScene) SaveOnExit() bool {
	if err := s.gameState.GetLightStateManager().Save(); err != nil {
		log.Printf("[LitMapScene] Warning: failed to save light state: %v", err)
		return false
	}
	return true
}

// MapID 返回当前地图ID
func (s *LitMapScene) MapID() string {
	return s.mapConfig.ID
}

// EntityManager 返回场景的实体管理器（工具与测试使用）
func (s *LitMapScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// showMessage 在屏幕底部显示提示，约 2 秒
func (s *LitMapScene) showMessage(msg string) {
	s.message = msg
	s.messageFrames = 120
}
