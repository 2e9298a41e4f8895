package main

import (
	"flag"
	"log"

	"github.com/gonewx/ascent/pkg/app"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	seed       = flag.Int64("seed", 1, "地形与装饰物的随机种子")
	configPath = flag.String("config", "", "场景配置文件（默认使用内置 data/ascent.yaml）")
	storyPath  = flag.String("story", "", "叙事配置文件（默认使用内置 data/story.yaml）")
	fullscreen = flag.Bool("fullscreen", false, "以全屏启动")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		Seed:       *seed,
		ConfigPath: *configPath,
		StoryPath:  *storyPath,
		Fullscreen: *fullscreen,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Ascent")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
