package utils

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// 等宽测量：每个字符 10 像素
func fixedMeasure(s string) float64 {
	return float64(len(s)) * 10
}

func TestWrapWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth float64
		want     []string
	}{
		{"短文本不换行", "one step", 200, []string{"one step"}},
		{"按单词断行", "every step is a lesson", 100, []string{"every step", "is a", "lesson"}},
		{"长单词独占一行", "a mountaineering b", 50, []string{"a", "mountaineering", "b"}},
		{"压缩连续空白", "  a   b  ", 200, []string{"a b"}},
		{"空文本", "", 100, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapWords(tt.input, tt.maxWidth, fixedMeasure)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrapWords(%q, %v) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

// TestWrapText 使用真实字体测试换行
func TestWrapText(t *testing.T) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("无法创建字体源: %v", err)
	}
	face := &text.GoTextFace{Source: src, Size: 20}

	input := "In Nov 2024, I built machine learning models with Python to predict crop yields, learning how data drives sustainability."
	lines := WrapText(input, face, 300)
	if len(lines) < 2 {
		t.Fatalf("期望至少 2 行, got %d: %q", len(lines), lines)
	}
	for i, line := range lines {
		w, _ := text.Measure(line, face, 0)
		if w > 300 && strings.Contains(line, " ") {
			t.Errorf("第 %d 行超宽 (%.1f): %q", i, w, line)
		}
	}
	if strings.Join(lines, " ") != input {
		t.Errorf("换行后内容丢失: %q", strings.Join(lines, " "))
	}

	// 无字体时原样返回
	if got := WrapText("abc", nil, 100); len(got) != 1 || got[0] != "abc" {
		t.Errorf("WrapText(nil face) = %q", got)
	}
}
