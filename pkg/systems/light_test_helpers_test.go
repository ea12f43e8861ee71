package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/gonewx/ravelight/internal/lighting"
	"github.com/gonewx/ravelight/pkg/components"
	"github.com/gonewx/ravelight/pkg/config"
	"github.com/gonewx/ravelight/pkg/ecs"
	"github.com/gonewx/ravelight/pkg/game"
)

const angleEpsilon = 1e-9

// lightWorld 灯光系统测试用的最小世界
type lightWorld struct {
	em        *ecs.EntityManager
	gs        *game.GameState
	cfg       *config.LightingConfig
	animation *LightAnimationSystem
}

func newLightWorld(t *testing.T) *lightWorld {
	t.Helper()
	em := ecs.NewEntityManager()
	gs := game.NewGameStateWithStorage(nil)
	cfg := config.DefaultLightingConfig()
	return &lightWorld{
		em:        em,
		gs:        gs,
		cfg:       cfg,
		animation: NewLightAnimationSystem(em, gs, cfg, rand.New(rand.NewSource(42))),
	}
}

// addLight 创建一个带灯光的实体，note 必须解析出至少一个灯光
func (w *lightWorld) addLight(t *testing.T, x, y float64, facing components.Direction, note string) (ecs.EntityID, *components.LightComponent) {
	t.Helper()
	descs := lighting.Parse(note, nil)
	if len(descs) == 0 {
		t.Fatalf("note %q yields no light", note)
	}

	id := w.em.CreateEntity()
	light := &components.LightComponent{Note: note}
	for _, d := range descs {
		light.Lights = append(light.Lights, components.NewLightInstance(d))
	}
	ecs.AddComponent(w.em, id, light)
	ecs.AddComponent(w.em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(w.em, id, &components.FacingComponent{Direction: facing})
	return id, light
}

// addEvent 创建一个可被追踪的地图事件
func (w *lightWorld) addEvent(eventID int, x, y float64) ecs.EntityID {
	id := w.em.CreateEntity()
	ecs.AddComponent(w.em, id, &components.MapEventComponent{EventID: eventID, ActivePage: -1})
	ecs.AddComponent(w.em, id, &components.PositionComponent{X: x, Y: y})
	return id
}

// addPlayer 创建玩家实体
func (w *lightWorld) addPlayer(x, y float64) ecs.EntityID {
	id := w.em.CreateEntity()
	ecs.AddComponent(w.em, id, &components.PlayerComponent{})
	ecs.AddComponent(w.em, id, &components.PositionComponent{X: x, Y: y})
	return id
}

// step 推进 n 帧（与场景中的顺序一致：先递增帧计数再推进灯光）
func (w *lightWorld) step(n int) {
	for i := 0; i < n; i++ {
		w.gs.Tick()
		w.animation.Update()
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < angleEpsilon
}

// sameAngle 比较两个角度是否指向同一方向
func sameAngle(a, b float64) bool {
	return math.Abs(NormalizeAngle(a-b)) < 1e-6
}

func (w *lightWorld) position(id ecs.EntityID) *components.PositionComponent {
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
	return pos
}

func (w *lightWorld) facing(id ecs.EntityID) *components.FacingComponent {
	f, _ := ecs.GetComponent[*components.FacingComponent](w.em, id)
	return f
}
