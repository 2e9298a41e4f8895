package scenes

import (
	"image/color"
	"log"

	"github.com/gonewx/ascent/pkg/game"
	"github.com/gonewx/ascent/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	summitTitle  = "You reached the summit."
	summitPrompt = "Click to replay the journey"

	summitTitleFade   = 1.0 // 标题淡入时长（秒）
	summitPromptStart = 0.8 // 提示开始淡入
	summitPromptEnd   = 1.6 // 提示完全显示
)

var (
	summitTextColor   = color.NRGBA{255, 255, 255, 255}
	summitPromptColor = color.NRGBA{255, 255, 255, 200}
	summitLineColor   = color.NRGBA{255, 255, 255, 90}
)

// SummitScene 登顶之后的收尾画面
// 点击、触摸或回车时调用 onReplay（只调用一次），由外部重新开始一局
type SummitScene struct {
	sky      color.Color
	title    *text.GoTextFace
	body     *text.GoTextFace
	onReplay func()
	elapsed  float64
	replayed bool
}

// NewSummitScene 创建登顶画面
//
// 参数:
//   - rm: 资源管理器（字体）
//   - sky: 背景色，通常为登顶时的天空颜色
//   - onReplay: 玩家选择重玩时调用，可为 nil
func NewSummitScene(rm *game.ResourceManager, sky color.Color, onReplay func()) *SummitScene {
	return &SummitScene{
		sky:      sky,
		title:    rm.MustLoadFont(game.FontBold, titleFontSize),
		body:     rm.MustLoadFont(game.FontRegular, bodyFontSize),
		onReplay: onReplay,
	}
}

// Update 推进淡入并等待重玩输入
func (s *SummitScene) Update(deltaTime float64) {
	s.elapsed += deltaTime
	clicked, _, _ := utils.IsJustTouchedOrClicked()
	if clicked || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.Replay()
	}
}

// Replay 触发重玩回调
func (s *SummitScene) Replay() {
	if s.replayed {
		return
	}
	s.replayed = true
	log.Printf("[SummitScene] 重新开始旅程")
	if s.onReplay != nil {
		s.onReplay()
	}
}

// TitleAlpha 标题当前透明度
func (s *SummitScene) TitleAlpha() float64 {
	return utils.EaseOutCubic(utils.Clamp01(s.elapsed / summitTitleFade))
}

// PromptAlpha 重玩提示当前透明度
func (s *SummitScene) PromptAlpha() float64 {
	return utils.SmoothStep(summitPromptStart, summitPromptEnd, s.elapsed)
}

// Draw 绘制标题与提示
func (s *SummitScene) Draw(screen *ebiten.Image) {
	screen.Fill(s.sky)
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	cx, cy := w/2, h/2

	title, prompt := float32(s.TitleAlpha()), float32(s.PromptAlpha())
	drawSummitLine(screen, summitTitle, s.title, cx, cy-48, summitTextColor, title)
	vector.StrokeLine(screen, float32(cx-80), float32(cy), float32(cx+80), float32(cy), 1, scaleAlpha(summitLineColor, title), true)
	drawSummitLine(screen, summitPrompt, s.body, cx, cy+20, summitPromptColor, prompt)
}

func drawSummitLine(screen *ebiten.Image, msg string, face *text.GoTextFace, cx, top float64, clr color.NRGBA, alpha float32) {
	if alpha <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, top)
	op.PrimaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(scaleAlpha(clr, alpha))
	text.Draw(screen, msg, face, op)
}

func scaleAlpha(c color.NRGBA, alpha float32) color.NRGBA {
	c.A = uint8(float32(c.A) * alpha)
	return c
}

var _ game.Scene = (*SummitScene)(nil)
