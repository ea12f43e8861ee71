package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按地图ID创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(mapID string) (Scene, error)

// SceneManager manages which scene is active.
// Only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentMapID string
	sceneFactory SceneFactory
}

// NewSceneManager creates a SceneManager with no active scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene. The previous scene is saved first if it implements Saveable.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.SaveCurrent()
	sm.currentScene = scene
}

// SaveCurrent 保存当前场景（如果支持）
func (sm *SceneManager) SaveCurrent() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentMapID 返回当前加载的地图ID
func (sm *SceneManager) CurrentMapID() string {
	return sm.currentMapID
}

// LoadMap 加载指定ID的地图场景
// 创建失败时保留当前场景并返回 false
func (sm *SceneManager) LoadMap(mapID string) bool {
	log.Printf("[SceneManager] Loading map: %s", mapID)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return false
	}

	newScene, err := sm.sceneFactory(mapID)
	if err != nil || newScene == nil {
		log.Printf("[SceneManager] Error: cannot create scene for map %s: %v", mapID, err)
		return false
	}

	sm.SwitchTo(newScene)
	sm.currentMapID = mapID
	log.Printf("[SceneManager] Switched to map: %s", mapID)
	return true
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
