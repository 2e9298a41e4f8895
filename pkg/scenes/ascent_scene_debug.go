package scenes

import (
	"fmt"
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/gonewx/ascent/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// handleDebugKeys F3 切换调试信息，打开时同时把调试信息复制到剪贴板
func (s *AscentScene) handleDebugKeys() {
	if !inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		return
	}
	s.showDebug = !s.showDebug
	if s.showDebug {
		if err := clipboard.WriteAll(s.DebugReport()); err != nil {
			log.Printf("[AscentScene] Warning: 复制调试信息失败: %v", err)
			return
		}
		log.Printf("[AscentScene] 调试信息已复制到剪贴板")
	}
}

// DebugReport 返回当前会话的调试摘要
func (s *AscentScene) DebugReport() string {
	var b strings.Builder
	fmt.Fprintf(&b, "seed: %d session: %d\n", s.seed, s.session)
	fmt.Fprintf(&b, "platforms: %d\n", len(s.scene.Platforms))
	if p := s.Player(); p != nil {
		fmt.Fprintf(&b, "index: %d state: %s\n", p.CurrentIndex, p.State())
		fmt.Fprintf(&b, "position: (%.2f, %.2f, %.2f)\n", p.Position.X(), p.Position.Y(), p.Position.Z())
	}
	fmt.Fprintf(&b, "sunrise: %.3f\n", s.SunriseProgress())
	fmt.Fprintf(&b, "rain: %.3f\n", s.rainSystem.Opacity())
	fmt.Fprintf(&b, "triangles: %d\n", s.renderSystem.TriangleCount())
	fmt.Fprintf(&b, "viewport: %dx%d\n", s.width, s.height)
	if path := utils.GetStoragePath(); path != "" {
		fmt.Fprintf(&b, "storage: %s\n", path)
	}
	return b.String()
}

// drawDebug 左上角绘制调试信息
func (s *AscentScene) drawDebug(screen *ebiten.Image) {
	if !s.showDebug {
		return
	}
	msg := fmt.Sprintf("FPS: %.0f TPS: %.0f\n%s", ebiten.ActualFPS(), ebiten.ActualTPS(), s.DebugReport())
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}
