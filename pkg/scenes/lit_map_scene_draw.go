package scenes

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/gonewx/ravelight/pkg/components"
	"github.com/gonewx/ravelight/pkg/ecs"
	"github.com/gonewx/ravelight/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// hudHeight 顶部标题栏高度（像素）
	hudHeight         = 18
	// messageFadeFrames 提示信息最后淡出的帧数
	messageFadeFrames = 30
)

var (
	groundLight  = color.RGBA{R: 92, G: 84, B: 104, A: 255}
	groundDark   = color.RGBA{R: 78, G: 70, B: 90, A: 255}
	eventColor   = color.RGBA{R: 200, G: 170, B: 90, A: 255}
	playerColor  = color.RGBA{R: 90, G: 180, B: 230, A: 255}
	facingColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	hudBackColor = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

// drawGround 绘制棋盘格地面，首次调用时生成并缓存
func (s *LitMapScene) drawGround(screen *ebiten.Image) {
	if s.background == nil {
		tile := float32(s.config.TileSize)
		w, h := s.mapConfig.Width, s.mapConfig.Height
		s.background = ebiten.NewImage(int(float32(w)*tile), int(float32(h)*tile))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := groundLight
				if (x+y)%2 == 1 {
					c = groundDark
				}
				vector.DrawFilledRect(s.background, float32(x)*tile, float32(y)*tile, tile, tile, c, false)
			}
		}
	}
	screen.DrawImage(s.background, nil)
}

// drawActors 绘制事件和玩家的占位方块，小三角标示朝向
func (s *LitMapScene) drawActors(screen *ebiten.Image) {
	size := float32(s.config.TileSize) * 0.6
	for _, id := range ecs.GetEntitiesWith2[*components.MapEventComponent, *components.PositionComponent](s.entityManager) {
		s.drawActor(screen, id, size, eventColor)
	}
	s.drawActor(screen, s.playerEntity, size, playerColor)
}

func (s *LitMapScene) drawActor(screen *ebiten.Image, id ecs.EntityID, size float32, c color.Color) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}
	x, y := float32(pos.X), float32(pos.Y)
	vector.DrawFilledRect(screen, x-size/2, y-size, size, size, c, false)

	facing, ok := ecs.GetComponent[*components.FacingComponent](s.entityManager, id)
	if !ok {
		return
	}
	cx, cy := x, y-size/2
	ex, ey := cx, cy
	switch facing.Direction {
	case components.DirLeft:
		ex -= size / 2
	case components.DirRight:
		ex += size / 2
	case components.DirUp:
		ey -= size / 2
	default:
		ey += size / 2
	}
	vector.StrokeLine(screen, cx, cy, ex, ey, 2, facingColor, false)
}

// drawHUD 绘制地图名称、按键提示和最近一条消息
func (s *LitMapScene) drawHUD(screen *ebiten.Image) {
	title := s.mapConfig.Name
	if title == "" {
		title = s.mapConfig.ID
	}
	hint := "[arrows] move  [space] pages  [tab] map  [F1-F3] toggles"
	if utils.IsMobile() {
		hint = "tap to move, tap here for pages"
	}
	vector.DrawFilledRect(screen, 0, 0, float32(screen.Bounds().Dx()), hudHeight, hudBackColor, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  %s", title, hint), 4, 1)

	if s.messageFrames > 0 && s.message != "" {
		y := screen.Bounds().Dy() - 20
		back := hudBackColor
		back.A = uint8(float64(back.A) * utils.FadeOut(s.messageFrames, messageFadeFrames))
		vector.DrawFilledRect(screen, 0, float32(y-2), float32(screen.Bounds().Dx()), 20, back, false)
		ebitenutil.DebugPrintAt(screen, s.message, 4, y)
	}
}

// drawDebug 绘制灯光统计与命令绑定
func (s *LitMapScene) drawDebug(screen *ebiten.Image) {
	lights, visible := 0, 0
	for _, id := range ecs.GetEntitiesWith1[*components.LightComponent](s.entityManager) {
		lc, _ := ecs.GetComponent[*components.LightComponent](s.entityManager, id)
		for _, inst := range lc.Lights {
			lights++
			if inst.Runtime.Visible {
				visible++
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "FPS %.1f  frame %d\n", ebiten.ActualFPS(), s.gameState.FrameCount)
	fmt.Fprintf(&b, "lights %d  visible %d  sprites %d  cutouts %d\n",
		lights, visible, len(s.renderSystem.VisibleSprites()), len(s.darknessSystem.Cutouts()))
	fmt.Fprintf(&b, "textures %d  tone %+v\n", s.cache.Len(), s.gameState.Tone)
	px, py := utils.PointerPosition()
	fmt.Fprintf(&b, "off ids %v  pointer (%d,%d)\n", s.gameState.Lights().OffIDs(), px, py)
	for _, c := range s.mapConfig.Commands {
		label := c.Label
		if label == "" {
			label = c.Command
		}
		fmt.Fprintf(&b, "[%s] %s\n", c.Key, label)
	}

	vector.DrawFilledRect(screen, 0, 20, 330, float32(16*(5+len(s.mapConfig.Commands))), hudBackColor, false)
	ebitenutil.DebugPrintAt(screen, b.String(), 4, 22)
}
