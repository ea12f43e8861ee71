package game

import "testing"

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()

	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if !settings.DarknessEnabled {
		t.Error("DarknessEnabled: got false, want true")
	}
	if !settings.LightsEnabled {
		t.Error("LightsEnabled: got false, want true")
	}
	if settings.ShowDebug {
		t.Error("ShowDebug: got true, want false")
	}
}

// TestNewSettingsManagerNilGdata 测试 gdataManager 为 nil 时的降级场景
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)

	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should not fail: %v", err)
	}
}

// TestSettingsToggles 测试切换方法返回新值
func TestSettingsToggles(t *testing.T) {
	sm := NewSettingsManager(nil)

	if sm.ToggleDarkness() {
		t.Error("first ToggleDarkness() should disable darkness")
	}
	if sm.ToggleLights() {
		t.Error("first ToggleLights() should disable lights")
	}
	if !sm.ToggleDebug() {
		t.Error("first ToggleDebug() should enable debug")
	}
	if !sm.ToggleDarkness() {
		t.Error("second ToggleDarkness() should enable darkness again")
	}
}

// TestSettingsLoadSave 测试 Load() 和 Save() 功能
func TestSettingsLoadSave(t *testing.T) {
	manager := createTestGdataManager(t, "settings")

	sm1 := NewSettingsManager(manager)
	sm1.SetFullscreen(true)
	sm1.ToggleDarkness()
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(manager)
	settings := sm2.GetSettings()
	if !settings.Fullscreen {
		t.Error("Fullscreen should persist")
	}
	if settings.DarknessEnabled {
		t.Error("DarknessEnabled should persist as false")
	}
	if !settings.LightsEnabled {
		t.Error("LightsEnabled should keep its default")
	}
}

// TestSettingsLoadCorruptData 测试数据损坏时回退到默认设置
func TestSettingsLoadCorruptData(t *testing.T) {
	manager := createTestGdataManager(t, "settings_corrupt")
	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("{{{")); err != nil {
		t.Fatalf("SaveObjectProp() error: %v", err)
	}

	sm := NewSettingsManager(manager)
	if !sm.GetSettings().DarknessEnabled {
		t.Error("corrupt data should fall back to defaults")
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report corrupt data")
	}
}
