package scenes

import (
	"image/color"
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/entities"
	"github.com/gonewx/ascent/pkg/game"
	"github.com/gonewx/ascent/pkg/rng"
	"github.com/gonewx/ascent/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// AscentDeps 登山场景的依赖
type AscentDeps struct {
	Config    *config.AscentConfig // 为 nil 时使用默认配置
	Story     *config.StoryConfig  // 为 nil 时使用默认叙事
	Scheduler game.Scheduler       // 必需：帧回调与定时器
	Resources *game.ResourceManager
	Settings  *game.SettingsManager
	Random    rng.Source // 为 nil 时使用种子 0

	// Renderer 替换帧提交目标（测试用），为 nil 时使用内置的软件渲染
	Renderer systems.FrameRenderer

	// Seed 随机流的初始种子，用于调试报告并派生雨声噪声的种子
	Seed int64

	// Session 同一随机流上的第几局，从 1 开始；重玩时地形由 Seed 与 Session 共同决定
	Session int
}

// AscentScene 一局登山游戏（会话）
//
// 所有状态都属于本会话：实体、系统、帧回调句柄、定时器、环境音。
// Dispose 释放全部资源，之后的 Resize 等回调直接返回。
type AscentScene struct {
	cfg        *config.AscentConfig
	scheduler  game.Scheduler
	settings   *game.SettingsManager
	onComplete func()
	seed       int64
	session    int

	entityManager *ecs.EntityManager
	scene         entities.SceneEntities

	playerSystem  *systems.PlayerSystem
	sunriseSystem *systems.SunriseSystem
	storySystem   *systems.StorySystem
	rainSystem    *systems.RainSystem
	cameraSystem  *systems.CameraSystem
	inputSystem   *systems.InputSystem
	renderSystem  *systems.RenderSystem
	overlaySystem *systems.OverlayRenderSystem
	renderer      systems.FrameRenderer
	ambience      *game.AmbienceManager

	frameHandle game.Handle
	storyTimer  game.Handle
	winTimer    game.Handle
	lastFrame   float64

	width, height int

	started       bool // 开始遮罩已关闭
	hasInteracted bool // 至少开始过一次（遮罩文案为“继续”）
	completed     bool
	disposed      bool
	showDebug     bool
}

// NewAscentScene 创建并启动一局登山游戏
//
// 参数:
//   - deps: 场景依赖
//   - onComplete: 登顶 WinDelay 秒后调用且只调用一次，可为 nil
//
// 返回:
//   - *AscentScene: 已注册首个帧回调的场景
func NewAscentScene(deps AscentDeps, onComplete func()) *AscentScene {
	s := &AscentScene{
		cfg:        deps.Config,
		scheduler:  deps.Scheduler,
		settings:   deps.Settings,
		onComplete: onComplete,
		seed:       deps.Seed,
		session:    max(deps.Session, 1),
		width:      config.GameWindowWidth,
		height:     config.GameWindowHeight,
	}
	if s.cfg == nil {
		s.cfg = config.DefaultAscentConfig()
	}
	storyCfg := deps.Story
	if storyCfg == nil {
		storyCfg = config.DefaultStoryConfig()
	}
	src := deps.Random
	if src == nil {
		src = rng.NewPCG(0)
	}
	rm := deps.Resources
	if rm == nil {
		rm = game.NewResourceManager(nil)
	}

	s.entityManager = ecs.NewEntityManager()
	s.scene = entities.PopulateScene(s.entityManager, s.cfg, src, float64(s.width)/float64(s.height))
	s.initSystems(storyCfg, rm)
	if deps.Renderer != nil {
		s.renderer = deps.Renderer
	}

	s.lastFrame = s.scheduler.Now()
	s.storyTimer = s.scheduler.AfterFunc(s.cfg.Story.FadeInDelay, s.storySystem.Reveal)
	s.frameHandle = s.scheduler.RequestFrame(s.frame)

	log.Printf("[AscentScene] 新的登山会话: %d 个平台, seed=%d session=%d", len(s.scene.Platforms), s.seed, s.session)
	return s
}

// frame 每帧回调：推进角色、日出、雨、叙事与相机，然后提交一帧
func (s *AscentScene) frame(now float64) {
	if s.disposed {
		return
	}
	dt := min(max(now-s.lastFrame, 0), s.cfg.Loop.MaxFrameDelta)
	s.lastFrame = now

	s.playerSystem.Update(now)
	s.sunriseSystem.Update()

	playerPos := s.playerPosition()
	s.rainSystem.Update(dt, playerPos.Y())
	s.storySystem.Update(dt)
	s.cameraSystem.Update(playerPos)
	if s.started {
		s.ambience.SetRainLevel(s.rainLevel())
	}

	s.renderer.RenderFrame(s.width, s.height)
	s.frameHandle = s.scheduler.RequestFrame(s.frame)
}

// Update 读取本帧输入；帧逻辑在调度器的帧回调中执行
func (s *AscentScene) Update(deltaTime float64) {
	if s.disposed {
		return
	}
	s.handleDebugKeys()
	if !s.started {
		s.handleStartInput()
		return
	}
	if s.handlePauseInput() {
		return
	}
	s.inputSystem.Update(s.height)
}

// Draw 绘制三维画面和浮层
func (s *AscentScene) Draw(screen *ebiten.Image) {
	if s.disposed {
		return
	}
	s.renderSystem.Draw(screen)
	s.overlaySystem.Draw(screen, s.overlayState())
	s.drawDebug(screen)
}

// Start 关闭开始遮罩，启用输入与相机控制
func (s *AscentScene) Start() {
	if s.disposed || s.started {
		return
	}
	s.started = true
	s.hasInteracted = true
	s.inputSystem.SetEnabled(true)
	s.cameraSystem.SetEnabled(true)
	log.Printf("[AscentScene] 开始游戏")
}

// Pause 回到开始遮罩（文案变为“继续”），禁用输入与相机控制
func (s *AscentScene) Pause() {
	if s.disposed || !s.started {
		return
	}
	s.started = false
	s.inputSystem.SetEnabled(false)
	s.cameraSystem.SetEnabled(false)
	s.ambience.Pause()
	log.Printf("[AscentScene] 暂停")
}

// HandleKey 处理一次移动按键，返回是否开始了移动
// 未开始、已暂停、移动中、已登顶时忽略
func (s *AscentScene) HandleKey(key ebiten.Key) bool {
	if s.disposed {
		return false
	}
	return s.inputSystem.HandleKey(key)
}

// Resize 视口尺寸变化；场景销毁后直接返回
func (s *AscentScene) Resize(width, height int) {
	if s.disposed || width <= 0 || height <= 0 {
		return
	}
	s.width, s.height = width, height
	s.cameraSystem.SetAspect(float64(width) / float64(height))
}

// Dispose 取消帧回调与定时器，停止环境音，释放渲染资源并清空实体；可重复调用
func (s *AscentScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.scheduler.Cancel(s.frameHandle)
	s.scheduler.Cancel(s.storyTimer)
	s.scheduler.Cancel(s.winTimer)
	s.ambience.Close()
	s.renderSystem.Dispose()
	s.inputSystem.SetEnabled(false)
	s.entityManager.Clear()
	log.Printf("[AscentScene] 会话已释放")
}

// onWin 登顶：隐藏叙事，延迟通知外部
func (s *AscentScene) onWin() {
	s.storySystem.OnWin()
	s.winTimer = s.scheduler.AfterFunc(s.cfg.Player.WinDelay, s.complete)
	log.Printf("[AscentScene] 登顶！%.1f 秒后完成", s.cfg.Player.WinDelay)
}

func (s *AscentScene) complete() {
	if s.completed || s.disposed {
		return
	}
	s.completed = true
	if s.onComplete != nil {
		s.onComplete()
	}
}

func (s *AscentScene) playerPosition() mgl64.Vec3 {
	if p := s.playerSystem.Player(); p != nil {
		return p.Position
	}
	return mgl64.Vec3{}
}

// StoryText 当前叙事文字
func (s *AscentScene) StoryText() string { return s.storySystem.Text() }

// StoryVisible 叙事浮层是否处于显示状态
func (s *AscentScene) StoryVisible() bool { return s.storySystem.Visible() }

// StoryOpacity 叙事浮层当前透明度
func (s *AscentScene) StoryOpacity() float64 { return s.storySystem.Opacity() }

// ControlsHintVisible 操作提示是否处于显示状态
func (s *AscentScene) ControlsHintVisible() bool { return s.storySystem.ControlsHintVisible() }

// IsStarted 开始遮罩是否已关闭
func (s *AscentScene) IsStarted() bool { return s.started }

// IsDisposed 场景是否已释放
func (s *AscentScene) IsDisposed() bool { return s.disposed }

// Player 返回角色状态；场景释放后返回 nil
func (s *AscentScene) Player() *components.PlayerComponent {
	if s.disposed {
		return nil
	}
	return s.playerSystem.Player()
}

// SunriseProgress 当前日出进度
func (s *AscentScene) SunriseProgress() float64 {
	if sr := s.sunriseSystem.Sunrise(); sr != nil {
		return sr.Progress
	}
	return 0
}

// PlatformCount 平台数量
func (s *AscentScene) PlatformCount() int { return len(s.scene.Platforms) }

var (
	_ game.Scene      = (*AscentScene)(nil)
	_ game.Disposable = (*AscentScene)(nil)
	_ game.Resizable  = (*AscentScene)(nil)
)

// SkyColor 最近一帧的天空颜色
func (s *AscentScene) SkyColor() color.RGBA { return s.renderSystem.SkyColor() }
