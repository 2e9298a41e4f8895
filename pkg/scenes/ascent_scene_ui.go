package scenes

import (
	"github.com/gonewx/ascent/pkg/systems"
	"github.com/gonewx/ascent/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleStartInput 开始遮罩上的点击、触摸或回车/空格开始游戏
func (s *AscentScene) handleStartInput() {
	clicked, _, _ := utils.IsJustTouchedOrClicked()
	if clicked || inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Start()
	}
}

// handlePauseInput Esc 回到开始遮罩；返回是否已暂停
func (s *AscentScene) handlePauseInput() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.Pause()
		return true
	}
	return false
}

// overlayState 汇总本帧浮层内容
func (s *AscentScene) overlayState() systems.OverlayState {
	return systems.OverlayState{
		Story:     *s.storySystem.Story(),
		ShowStart: !s.started,
		Resumed:   s.hasInteracted,
	}
}
