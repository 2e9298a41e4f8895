package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// HexColor 24 位 RGB 颜色，YAML 中写作 "#rrggbb"
type HexColor uint32

// ParseHexColor 解析 "#rrggbb" 或 "0xrrggbb" 格式的颜色
func ParseHexColor(s string) (HexColor, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		s = s[1:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s = s[2:]
	}
	if len(s) != 6 {
		return 0, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return HexColor(v), nil
}

// UnmarshalYAML 实现 yaml.Unmarshaler
func (c *HexColor) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML 实现 yaml.Marshaler
func (c HexColor) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// String 返回 "#rrggbb" 形式
func (c HexColor) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// Vec 返回 [0,1] 区间的 RGB 分量
func (c HexColor) Vec() mgl64.Vec3 {
	return mgl64.Vec3{
		float64((c>>16)&0xff) / 255,
		float64((c>>8)&0xff) / 255,
		float64(c&0xff) / 255,
	}
}

// NRGBA 返回不透明的 color.NRGBA
func (c HexColor) NRGBA() color.NRGBA {
	return color.NRGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}
