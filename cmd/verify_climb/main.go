// verify_climb 无窗口运行一局完整的登山流程并打印轨迹
//
// 用法:
//
//	go run ./cmd/verify_climb -seed 7
//	go run ./cmd/verify_climb -config data/ascent.yaml -down 3 -verbose
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/game"
	"github.com/gonewx/ascent/pkg/rng"
	"github.com/gonewx/ascent/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

const frameStep = 1.0 / 60

var (
	seed       = flag.Int64("seed", 1, "随机种子")
	configPath = flag.String("config", "data/ascent.yaml", "场景配置文件")
	storyPath  = flag.String("story", "data/story.yaml", "叙事配置文件")
	down       = flag.Int("down", 0, "开始攀登前先上行再下行的平台数（验证下行路径）")
	maxFrames  = flag.Int("max-frames", 600, "单次移动允许的最大帧数")
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
)

// nopRenderer 只统计提交的帧
type nopRenderer struct{ frames int }

func (r *nopRenderer) RenderFrame(width, height int) { r.frames++ }

type climber struct {
	scene    *scenes.AscentScene
	sched    *game.FrameScheduler
	story    string
	complete bool
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	ascentCfg, err := config.LoadAscentConfig(*configPath)
	if err != nil {
		fmt.Printf("⚠️  %v，使用内置配置\n", err)
		ascentCfg = config.DefaultAscentConfig()
	}
	storyCfg, err := config.LoadStoryConfig(*storyPath)
	if err != nil {
		fmt.Printf("⚠️  %v，使用内置叙事\n", err)
		storyCfg = config.DefaultStoryConfig()
	}

	c := &climber{sched: game.NewFrameScheduler(0)}
	renderer := &nopRenderer{}
	c.scene = scenes.NewAscentScene(scenes.AscentDeps{
		Config:    ascentCfg,
		Story:     storyCfg,
		Scheduler: c.sched,
		Random:    rng.NewPCG(*seed),
		Renderer:  renderer,
		Seed:      *seed,
	}, func() { c.complete = true })
	defer c.scene.Dispose()

	fmt.Printf("🏔  seed=%d 平台数=%d\n", *seed, c.scene.PlatformCount())
	c.story = c.scene.StoryText()
	fmt.Printf("📖 %q\n", c.story)

	c.scene.Start()
	for i := 0; i < *down; i++ {
		c.move(ebiten.KeyW, "↑")
	}
	for i := 0; i < *down; i++ {
		c.move(ebiten.KeyS, "↓")
	}
	for !c.scene.Player().HasWon {
		c.move(ebiten.KeyW, "↑")
	}

	wonAt := c.sched.Now()
	for !c.complete && c.sched.Now() < wonAt+10 {
		c.sched.Advance(c.sched.Now() + frameStep)
	}
	if !c.complete {
		fmt.Printf("❌ 登顶后 10 秒内未收到完成回调\n")
		os.Exit(1)
	}
	fmt.Printf("✅ 登顶用时 %.2fs，完成回调延迟 %.2fs，共提交 %d 帧\n",
		wonAt, c.sched.Now()-wonAt, renderer.frames)
}

// move 发出一次移动并推进到到达
func (c *climber) move(key ebiten.Key, arrow string) {
	if !c.scene.HandleKey(key) {
		fmt.Printf("❌ 平台 %d 拒绝移动 %s\n", c.scene.Player().CurrentIndex, arrow)
		os.Exit(1)
	}
	frames := 0
	for c.scene.Player().Moving {
		if frames++; frames > *maxFrames {
			fmt.Printf("❌ 前往平台 %d 超过 %d 帧\n", c.scene.Player().CurrentIndex, *maxFrames)
			os.Exit(1)
		}
		c.sched.Advance(c.sched.Now() + frameStep)
	}

	p := c.scene.Player()
	fmt.Printf("%s %2d  %3d 帧  pos=(%6.2f, %6.2f, %6.2f)  sunrise=%.2f\n",
		arrow, p.CurrentIndex, frames, p.Position.X(), p.Position.Y(), p.Position.Z(), c.scene.SunriseProgress())
	if text := c.scene.StoryText(); text != c.story {
		c.story = text
		fmt.Printf("📖 %q\n", text)
	}
}
