package scenes

import (
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/game"
	"github.com/gonewx/ascent/pkg/systems"
)

// 浮层字号
const (
	titleFontSize = 28.0
	bodyFontSize  = 18.0
	smallFontSize = 13.0
)

// rainNoiseSeedSalt 由会话种子派生雨声种子，地形随机流不被音频线程消费
const rainNoiseSeedSalt int64 = 0x5f3759df

// initSystems 创建并连接本局的全部系统
func (s *AscentScene) initSystems(storyCfg *config.StoryConfig, rm *game.ResourceManager) {
	em := s.entityManager
	cfg := s.cfg

	s.playerSystem = systems.NewPlayerSystem(em, s.scene.Player, cfg.Player, s.scheduler)
	s.sunriseSystem = systems.NewSunriseSystem(em, s.scene.Player, s.scene.Environment, s.scene.Sun, cfg.Lighting)
	s.storySystem = systems.NewStorySystem(em, storyCfg, cfg.Story, len(s.scene.Platforms))
	s.rainSystem = systems.NewRainSystem(em, s.scene.Rain, cfg.Rain)
	s.cameraSystem = systems.NewCameraSystem(em, s.scene.Camera, cfg.Camera)
	s.inputSystem = systems.NewInputSystem(s.playerSystem, s.cameraSystem, s.orbitSensitivity)

	s.renderSystem = systems.NewRenderSystem(em, s.rainEnabled)
	s.renderer = s.renderSystem
	s.overlaySystem = systems.NewOverlayRenderSystem(systems.OverlayFonts{
		Title: rm.MustLoadFont(game.FontBold, titleFontSize),
		Body:  rm.MustLoadFont(game.FontRegular, bodyFontSize),
		Small: rm.MustLoadFont(game.FontRegular, smallFontSize),
	})
	s.ambience = game.NewAmbienceManager(rm.AudioContext(), s.settings, s.seed^rainNoiseSeedSalt)

	s.playerSystem.OnArrival(s.storySystem.OnArrival)
	s.playerSystem.OnWin(s.onWin)
}

func (s *AscentScene) settingsOrDefault() *game.GameSettings {
	if s.settings == nil {
		return game.DefaultSettings()
	}
	return s.settings.GetSettings()
}

func (s *AscentScene) rainEnabled() bool {
	return s.settingsOrDefault().RainEnabled
}

func (s *AscentScene) orbitSensitivity() float64 {
	return s.settingsOrDefault().OrbitSensitivity
}

// rainLevel 雨声强度跟随雨滴透明度；关闭雨效时静音
func (s *AscentScene) rainLevel() float64 {
	if !s.rainEnabled() {
		return 0
	}
	return s.rainSystem.Opacity()
}
