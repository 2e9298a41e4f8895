// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/game"
	"github.com/gonewx/ascent/pkg/rng"
	"github.com/gonewx/ascent/pkg/scenes"
	"github.com/gonewx/ascent/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// 场景名
const (
	SceneAscent = "ascent"
	SceneSummit = "summit"
)

// AppName gdata 存储目录名
const AppName = "ascent"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 地形与装饰物的随机种子
	Seed int64
	// ConfigPath 场景配置文件，为空时使用 config.AscentConfigPath
	ConfigPath string
	// StoryPath 叙事配置文件，为空时使用 config.StoryConfigPath
	StoryPath string
	// Fullscreen 以全屏启动（覆盖已保存的设置）
	Fullscreen bool
	// DisableAudio 不创建音频上下文（无声环境）
	DisableAudio bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	resourceManager *game.ResourceManager
	scheduler       *game.FrameScheduler
	clock           game.Clock
	lastTick        float64

	ascentConfig *config.AscentConfig
	storyConfig  *config.StoryConfig
	random       rng.Source
	seed         int64
	sessions     int
	summitSky    color.Color

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	ascentConfig, storyConfig, err := loadConfigs(cfg)
	if err != nil {
		return nil, err
	}

	var audioContext *audio.Context
	if !cfg.DisableAudio {
		audioContext = audio.NewContext(game.AmbienceSampleRate)
	}

	clock := game.NewRealClock()
	a := &App{
		settingsManager: openSettings(),
		resourceManager: game.NewResourceManager(audioContext),
		scheduler:       game.NewFrameScheduler(clock.Now()),
		clock:           clock,
		ascentConfig:    ascentConfig,
		storyConfig:     storyConfig,
		random:          rng.NewPCG(cfg.Seed),
		seed:            cfg.Seed,
		summitSky:       ascentConfig.Lighting.Sunrise.Sky.NRGBA(),
	}
	a.lastTick = a.scheduler.Now()

	if cfg.Fullscreen {
		a.settingsManager.SetFullscreen(true)
	}
	ebiten.SetFullscreen(a.settingsManager.GetSettings().Fullscreen)

	// 创建场景管理器
	a.sceneManager = game.NewSceneManager()
	a.sceneManager.SetSceneFactory(a.newScene)
	a.sceneManager.Load(SceneAscent)

	log.Printf("[App] 初始化完成: seed=%d", cfg.Seed)
	return a, nil
}

// loadConfigs 加载场景与叙事配置
// 默认路径加载失败时退回内置默认值；显式指定的路径加载失败则返回错误
func loadConfigs(cfg Config) (*config.AscentConfig, *config.StoryConfig, error) {
	ascentPath, storyPath := cfg.ConfigPath, cfg.StoryPath
	if ascentPath == "" {
		ascentPath = config.AscentConfigPath
	}
	if storyPath == "" {
		storyPath = config.StoryConfigPath
	}

	ascentConfig, err := config.LoadAscentConfig(ascentPath)
	if err != nil {
		if cfg.ConfigPath != "" {
			return nil, nil, fmt.Errorf("场景配置加载失败: %w", err)
		}
		log.Printf("[App] Warning: %v (using defaults)", err)
		ascentConfig = config.DefaultAscentConfig()
	}

	storyConfig, err := config.LoadStoryConfig(storyPath)
	if err != nil {
		if cfg.StoryPath != "" {
			return nil, nil, fmt.Errorf("叙事配置加载失败: %w", err)
		}
		log.Printf("[App] Warning: %v (using defaults)", err)
		storyConfig = config.DefaultStoryConfig()
	}
	return ascentConfig, storyConfig, nil
}

// openSettings 打开持久化设置；存储不可用时只在内存中保存
func openSettings() *game.SettingsManager {
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	sm, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		log.Printf("[App] Warning: settings manager: %v", err)
		sm, _ = game.NewSettingsManager(nil)
	}
	return sm
}

// newScene 场景工厂
func (a *App) newScene(name string) game.Scene {
	switch name {
	case SceneAscent:
		a.sessions++
		var ascent *scenes.AscentScene
		ascent = scenes.NewAscentScene(scenes.AscentDeps{
			Config:    a.ascentConfig,
			Story:     a.storyConfig,
			Scheduler: a.scheduler,
			Resources: a.resourceManager,
			Settings:  a.settingsManager,
			Random:    a.random,
			Seed:      a.seed,
			Session:   a.sessions,
		}, func() {
			a.summitSky = ascent.SkyColor()
			a.sceneManager.Load(SceneSummit)
		})
		return ascent
	case SceneSummit:
		return scenes.NewSummitScene(a.resourceManager, a.summitSky, func() {
			a.sceneManager.Load(SceneAscent)
		})
	}
	return nil
}

// Update 更新游戏逻辑
// 先处理本帧输入，再推进调度器执行帧回调与定时器
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	now := a.clock.Now()
	deltaTime := now - a.lastTick
	a.lastTick = now

	a.sceneManager.Update(deltaTime)
	a.scheduler.Advance(now)
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	if !fullscreen {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settingsManager.SetFullscreen(fullscreen)
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// Layout 逻辑屏幕尺寸跟随窗口，三维视口随之调整宽高比
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		outsideWidth, outsideHeight = config.GameWindowWidth, config.GameWindowHeight
	}
	a.sceneManager.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Close 释放当前场景并保存设置
func (a *App) Close() {
	a.sceneManager.Dispose()
	if err := a.settingsManager.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
}
