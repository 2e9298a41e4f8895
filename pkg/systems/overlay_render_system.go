package systems

import (
	"image/color"

	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 浮层布局常量
const (
	storyMaxWidth     = 720.0
	storyPaddingX     = 32.0
	storyPaddingY     = 16.0
	storyBottomMargin = 48.0
	storyLineSpacing  = 1.5

	hintMargin   = 32.0
	hintMinWidth = 768 // 窄屏（移动端）不显示键盘提示
	startCardW   = 420.0
	startCardH   = 220.0
	startPillW   = 120.0
	startPillH   = 36.0
)

var (
	storyPanelColor   = color.NRGBA{255, 255, 255, 230}
	storyTextColor    = color.NRGBA{17, 24, 39, 255}
	hintPanelColor    = color.NRGBA{255, 255, 255, 153}
	hintKeyColor      = color.NRGBA{255, 255, 255, 255}
	hintTextColor     = color.NRGBA{55, 65, 81, 255}
	startDimColor     = color.NRGBA{0, 0, 0, 51}
	startCardColor    = color.NRGBA{255, 255, 255, 26}
	startBorderColor  = color.NRGBA{255, 255, 255, 51}
	startTextColor    = color.NRGBA{255, 255, 255, 255}
	startPillColor    = color.NRGBA{255, 255, 255, 51}
	startPillTextSize = 14.0
)

// OverlayFonts 浮层使用的字体
type OverlayFonts struct {
	Title *text.GoTextFace
	Body  *text.GoTextFace
	Small *text.GoTextFace
}

// OverlayState 一帧的浮层内容
type OverlayState struct {
	Story components.StoryComponent

	// ShowStart 显示开始/继续遮罩
	ShowStart bool
	// Resumed 已经开始过（文案为“继续”）
	Resumed bool
}

// OverlayRenderSystem 在三维画面之上绘制叙事文字、操作提示和开始遮罩
type OverlayRenderSystem struct {
	fonts OverlayFonts
}

// NewOverlayRenderSystem 创建浮层渲染系统
func NewOverlayRenderSystem(fonts OverlayFonts) *OverlayRenderSystem {
	return &OverlayRenderSystem{fonts: fonts}
}

// StartPrompt 返回开始遮罩的提示文字
func StartPrompt(resumed bool) string {
	if resumed {
		return "Click to Resume"
	}
	return "Click to Start Journey"
}

// ShowControlsHint 键盘提示只在宽屏桌面端显示
func ShowControlsHint(width int) bool {
	return width >= hintMinWidth && !utils.IsMobile()
}

// Draw 绘制浮层
func (s *OverlayRenderSystem) Draw(screen *ebiten.Image, state OverlayState) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	// 透明度线性变化，绘制时加缓动
	if state.Story.Opacity > 0 && state.Story.Text != "" {
		s.drawStory(screen, state.Story.Text, float32(utils.EaseInOutQuad(state.Story.Opacity)), float64(w), float64(h))
	}
	if state.Story.ControlsOpacity > 0 && ShowControlsHint(w) {
		s.drawControlsHint(screen, float32(utils.EaseInOutQuad(state.Story.ControlsOpacity)), float64(h))
	}
	if state.ShowStart {
		s.drawStart(screen, state.Resumed, float64(w), float64(h))
	}
}

func (s *OverlayRenderSystem) drawStory(screen *ebiten.Image, msg string, alpha float32, w, h float64) {
	face := s.fonts.Body
	maxText := min(storyMaxWidth, w-2*storyPaddingX-32)
	lines := utils.WrapText(msg, face, maxText)
	lineH := face.Size * storyLineSpacing

	textW := 0.0
	for _, line := range lines {
		lw, _ := text.Measure(line, face, 0)
		textW = max(textW, lw)
	}
	panelW := textW + 2*storyPaddingX
	panelH := float64(len(lines))*lineH + 2*storyPaddingY
	panelX := (w - panelW) / 2
	panelY := h - storyBottomMargin - panelH

	vector.FillRect(screen, float32(panelX), float32(panelY), float32(panelW), float32(panelH), fade(storyPanelColor, alpha), true)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(w/2, panelY+storyPaddingY+float64(i)*lineH+(lineH-face.Size)/2)
		op.PrimaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(storyTextColor)
		op.ColorScale.ScaleAlpha(alpha)
		text.Draw(screen, line, face, op)
	}
}

func (s *OverlayRenderSystem) drawControlsHint(screen *ebiten.Image, alpha float32, h float64) {
	face := s.fonts.Small
	const boxW, boxH, keyW, keyH = 112.0, 52.0, 24.0, 20.0
	x := hintMargin
	y := h - hintMargin - boxH
	vector.FillRect(screen, float32(x), float32(y), boxW, boxH, fade(hintPanelColor, alpha), true)

	keys := []struct{ key, label string }{{"W", "UP"}, {"S", "DOWN"}}
	for i, k := range keys {
		cx := x + boxW/4 + float64(i)*boxW/2
		vector.FillRect(screen, float32(cx-keyW/2), float32(y+8), keyW, keyH, fade(hintKeyColor, alpha), true)
		vector.StrokeRect(screen, float32(cx-keyW/2), float32(y+8), keyW, keyH, 1, fade(hintTextColor, alpha*0.3), true)
		drawCentered(screen, k.key, face, cx, y+10, hintTextColor, alpha)
		drawCentered(screen, k.label, face, cx, y+30, hintTextColor, alpha*0.7)
	}
	vector.StrokeLine(screen, float32(x+boxW/2), float32(y+10), float32(x+boxW/2), float32(y+boxH-10), 1, fade(hintTextColor, alpha*0.3), true)
}

func (s *OverlayRenderSystem) drawStart(screen *ebiten.Image, resumed bool, w, h float64) {
	vector.FillRect(screen, 0, 0, float32(w), float32(h), startDimColor, false)

	x := (w - startCardW) / 2
	y := (h - startCardH) / 2
	vector.FillRect(screen, float32(x), float32(y), startCardW, startCardH, startCardColor, true)
	vector.StrokeRect(screen, float32(x), float32(y), startCardW, startCardH, 1, startBorderColor, true)

	drawCentered(screen, "My Story", s.fonts.Title, w/2, y+32, startTextColor, 1)
	drawCentered(screen, StartPrompt(resumed), s.fonts.Body, w/2, y+32+s.fonts.Title.Size*1.3, startTextColor, 0.9)

	pillY := y + startCardH - startPillH - 28
	vector.FillRect(screen, float32((w-startPillW)/2), float32(pillY), startPillW, startPillH, startPillColor, true)
	drawCentered(screen, "PLAY", s.fonts.Small, w/2, pillY+(startPillH-startPillTextSize)/2, startTextColor, 1)
}

// drawCentered 以 (cx, top) 为顶部中点绘制一行文字
func drawCentered(screen *ebiten.Image, msg string, face *text.GoTextFace, cx, top float64, clr color.NRGBA, alpha float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, top)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(alpha)
	text.Draw(screen, msg, face, op)
}

// fade 按透明度缩放颜色的 alpha
func fade(c color.NRGBA, alpha float32) color.NRGBA {
	a := max(0, min(1, alpha))
	c.A = uint8(float32(c.A) * a)
	return c
}
