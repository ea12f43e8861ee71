package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gonewx/ravelight/pkg/app"
	"github.com/gonewx/ravelight/pkg/config"
	"github.com/gonewx/ravelight/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	mapID   = flag.String("map", "", "要加载的地图ID（data/maps/<id>.yaml），默认 demo")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源，dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Map:     *mapID,
	})
	if err != nil {
		// 非 verbose 模式下 log 输出已被丢弃
		fmt.Fprintf(os.Stderr, "初始化失败: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Ravelight - 动态光照演示")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
