package scenes

import (
	"fmt"
	"log"
	"strings"

	"github.com/gonewx/ravelight/pkg/components"
	"github.com/gonewx/ravelight/pkg/config"
	"github.com/gonewx/ravelight/pkg/ecs"
	"github.com/gonewx/ravelight/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// playerSpeed 玩家移动速度（像素/帧）
const playerSpeed = 3.0

// handleInput 处理键盘输入
//
//	方向键        移动玩家
//	点击/触摸     移动玩家到该处，点击标题栏切换页
//	地图绑定的字符 执行灯光命令（如 "1" → TurnOffLight 2）
//	Space        所有多页事件切换到下一页
//	Tab          切换到下一张地图
//	Backspace    重置灯光状态
//	F1/F2/F3     开关黑暗遮罩/灯光/调试信息
func (s *LitMapScene) handleInput() {
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy++
	}
	if dx != 0 || dy != 0 {
		s.MovePlayer(dx*playerSpeed, dy*playerSpeed)
	}

	s.handlePointer()

	for _, r := range ebiten.AppendInputChars(nil) {
		s.RunKey(string(r))
	}

	settings := s.gameState.GetSettingsManager()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.CyclePages()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		s.nextMap()
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		s.ResetLights()
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		s.showMessage(fmt.Sprintf("darkness: %v", settings.ToggleDarkness()))
		s.saveSettings()
	case inpututil.IsKeyJustPressed(ebiten.KeyF2):
		s.showMessage(fmt.Sprintf("lights: %v", settings.ToggleLights()))
		s.saveSettings()
	case inpututil.IsKeyJustPressed(ebiten.KeyF3):
		settings.ToggleDebug()
		s.saveSettings()
	}
}

// handlePointer 点击或触摸：点击顶部标题栏切换页，点击其他位置把玩家移到该处
func (s *LitMapScene) handlePointer() {
	pressed, x, y := utils.PointerJustPressed()
	if !pressed {
		return
	}
	if y < hudHeight {
		s.CyclePages()
		return
	}
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.playerEntity); ok {
		s.MovePlayer(float64(x)-pos.X, float64(y)-pos.Y)
	}
}

// MovePlayer 移动玩家并更新朝向，位置限制在地图范围内
func (s *LitMapScene) MovePlayer(dx, dy float64) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.playerEntity)
	if !ok {
		return
	}
	tile := s.config.TileSize
	pos.X = clamp(pos.X+dx, tile/2, float64(s.mapConfig.Width)*tile-tile/2)
	pos.Y = clamp(pos.Y+dy, tile, float64(s.mapConfig.Height)*tile)

	if facing, ok := ecs.GetComponent[*components.FacingComponent](s.entityManager, s.playerEntity); ok {
		switch {
		case dx < 0:
			facing.Direction = components.DirLeft
		case dx > 0:
			facing.Direction = components.DirRight
		case dy < 0:
			facing.Direction = components.DirUp
		case dy > 0:
			facing.Direction = components.DirDown
		}
	}
}

// RunKey 执行地图上绑定到 key 的命令，没有绑定时返回 false
func (s *LitMapScene) RunKey(key string) bool {
	cmd, ok := s.commandFor(key)
	if !ok {
		return false
	}
	if err := s.RunCommand(cmd.Command); err != nil {
		s.showMessage(err.Error())
		return true
	}
	label := cmd.Label
	if label == "" {
		label = cmd.Command
	}
	s.showMessage(label)
	return true
}

func (s *LitMapScene) commandFor(key string) (config.MapCommand, bool) {
	for _, c := range s.mapConfig.Commands {
		if c.Key == key {
			return c, true
		}
	}
	return config.MapCommand{}, false
}

// RunCommand 执行一行灯光命令，如 "SetBeamTargetEvent 3 5"，成功后保存状态
func (s *LitMapScene) RunCommand(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return fmt.Errorf("empty command")
	}
	if err := s.gameState.GetLightStateManager().Execute(fields[0], fields[1:]...); err != nil {
		log.Printf("[LitMapScene] Command %q failed: %v", line, err)
		return err
	}
	return nil
}

// CyclePages 把每个多页事件切换到下一页，返回切换的事件数量
// 灯光在下一次 Update 中按新注释重建
func (s *LitMapScene) CyclePages() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.MapEventComponent](s.entityManager) {
		ev, _ := ecs.GetComponent[*components.MapEventComponent](s.entityManager, id)
		if len(ev.Pages) < 2 {
			continue
		}
		ev.ActivePage = (ev.ActivePage + 1) % len(ev.Pages)
		n++
	}
	if n > 0 {
		s.showMessage(fmt.Sprintf("switched %d event page(s)", n))
	}
	return n
}

// ResetLights 打开所有灯光并清除追踪目标
func (s *LitMapScene) ResetLights() {
	manager := s.gameState.GetLightStateManager()
	manager.State().Reset()
	if err := manager.Save(); err != nil {
		log.Printf("[LitMapScene] Warning: failed to save light state: %v", err)
	}
	s.showMessage("light state reset")
}

func (s *LitMapScene) nextMap() {
	if s.sceneManager == nil {
		return
	}
	ids, err := config.ListLightMaps()
	if err != nil || len(ids) < 2 {
		return
	}
	next := ids[0]
	for i, id := range ids {
		if id == s.mapConfig.ID {
			next = ids[(i+1)%len(ids)]
			break
		}
	}
	s.sceneManager.LoadMap(next)
}

func (s *LitMapScene) saveSettings() {
	if err := s.gameState.GetSettingsManager().Save(); err != nil {
		log.Printf("[LitMapScene] Warning: failed to save settings: %v", err)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
