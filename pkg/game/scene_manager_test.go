package game

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// savingScene records SaveOnExit calls.
type savingScene struct {
	MockScene
	saved int
}

func (s *savingScene) SaveOnExit() bool {
	s.saved++
	return true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.currentScene != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerSwitchTo verifies that SwitchTo correctly changes the active scene.
func TestSceneManagerSwitchTo(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}

	sm.SwitchTo(mockScene)

	if sm.currentScene != mockScene {
		t.Error("SwitchTo did not set the current scene correctly")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerUpdateNoScene verifies that Update handles nil scene gracefully.
func TestSceneManagerUpdateNoScene(t *testing.T) {
	sm := NewSceneManager()
	// Don't set any scene, currentScene should be nil
	sm.Update(0.016) // Should not panic
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	// Create a dummy screen image
	screen := ebiten.NewImage(800, 600)
	sm.Draw(screen)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerDrawNoScene verifies that Draw handles nil scene gracefully.
func TestSceneManagerDrawNoScene(t *testing.T) {
	sm := NewSceneManager()
	screen := ebiten.NewImage(800, 600)
	// Don't set any scene, currentScene should be nil
	sm.Draw(screen) // Should not panic
}

// TestSceneManagerSwitchBetweenScenes verifies switching between multiple scenes.
func TestSceneManagerSwitchBetweenScenes(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	// Switch to scene1
	sm.SwitchTo(scene1)
	sm.Update(0.016)

	if !scene1.updateCalled {
		t.Error("Scene1's Update was not called")
	}
	if scene2.updateCalled {
		t.Error("Scene2's Update should not have been called yet")
	}

	// Switch to scene2
	sm.SwitchTo(scene2)
	sm.Update(0.016)

	if !scene2.updateCalled {
		t.Error("Scene2's Update was not called after switching")
	}
}

// TestSceneManagerSavesOnSwitch verifies the outgoing scene is saved.
func TestSceneManagerSavesOnSwitch(t *testing.T) {
	sm := NewSceneManager()
	first := &savingScene{}
	sm.SwitchTo(first)
	sm.SwitchTo(&MockScene{})

	if first.saved != 1 {
		t.Errorf("Expected SaveOnExit to be called once, got %d", first.saved)
	}
	if !sm.SaveCurrent() {
		t.Error("Scenes without Saveable should report success")
	}
}

// TestSceneManagerLoadMap verifies LoadMap uses the factory and keeps the old scene on failure.
func TestSceneManagerLoadMap(t *testing.T) {
	sm := NewSceneManager()
	if sm.LoadMap("demo") {
		t.Error("LoadMap without a factory should fail")
	}

	created := &MockScene{}
	sm.SetSceneFactory(func(mapID string) (Scene, error) {
		if mapID != "demo" {
			return nil, errors.New("no such map")
		}
		return created, nil
	})

	if !sm.LoadMap("demo") {
		t.Fatal("LoadMap(demo) should succeed")
	}
	if sm.GetCurrentScene() != created || sm.CurrentMapID() != "demo" {
		t.Error("LoadMap did not switch to the created scene")
	}

	if sm.LoadMap("missing") {
		t.Error("LoadMap(missing) should fail")
	}
	if sm.GetCurrentScene() != created || sm.CurrentMapID() != "demo" {
		t.Error("Failed LoadMap must keep the current scene")
	}
}
