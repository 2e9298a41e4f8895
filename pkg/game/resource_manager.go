package game

import (
	"bytes"
	"fmt"
	"os"

	"github.com/gonewx/ascent/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体名称
const (
	FontRegular = "regular"
	FontBold    = "bold"
)

// builtinFonts 内置的 Go 字体数据
var builtinFonts = map[string][]byte{
	FontRegular: goregular.TTF,
	FontBold:    gobold.TTF,
}

// ResourceManager is responsible for centralized management of shared runtime resources.
// It owns the audio context and caches font faces so that every scene reuses the
// same parsed font sources.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. The internal caches use standard Go maps.
// For the single-threaded game loop, no synchronization is needed.
//
// Usage:
//
//	rm := NewResourceManager(audio.NewContext(AmbienceSampleRate))
//	face, err := rm.LoadFont(FontBold, 48)
type ResourceManager struct {
	audioContext  *audio.Context                    // 可为 nil（无声模式）
	fontSources   map[string]*text.GoTextFaceSource // 字体名或路径 -> 解析后的字体源
	fontFaceCache map[string]*text.GoTextFace       // "名称:字号" -> 字体
}

// NewResourceManager creates and initializes a new ResourceManager instance.
//
// Parameters:
//   - audioContext: The global audio context, or nil to run silently.
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioContext:  audioContext,
		fontSources:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
	}
}

// AudioContext 返回音频上下文，可能为 nil
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}

// LoadFont loads a font face and caches it for future use.
//
// Parameters:
//   - name: FontRegular / FontBold, or a TTF path (embedded data first, then the OS filesystem).
//   - size: The font size in points.
//
// Returns:
//   - A pointer to the text.GoTextFace ready for rendering.
//   - An error if the font cannot be read or parsed.
func (rm *ResourceManager) LoadFont(name string, size float64) (*text.GoTextFace, error) {
	if cachedFace := rm.GetFont(name, size); cachedFace != nil {
		return cachedFace, nil
	}

	source, err := rm.fontSource(name)
	if err != nil {
		return nil, err
	}

	goTextFace := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[fontCacheKey(name, size)] = goTextFace
	return goTextFace, nil
}

// MustLoadFont 加载内置字体；内置字体解析失败属于程序错误
func (rm *ResourceManager) MustLoadFont(name string, size float64) *text.GoTextFace {
	face, err := rm.LoadFont(name, size)
	if err != nil {
		panic(err)
	}
	return face
}

// GetFont retrieves a previously loaded font face from the cache, or nil.
func (rm *ResourceManager) GetFont(name string, size float64) *text.GoTextFace {
	return rm.fontFaceCache[fontCacheKey(name, size)]
}

func fontCacheKey(name string, size float64) string {
	return fmt.Sprintf("%s:%.1f", name, size)
}

func (rm *ResourceManager) fontSource(name string) (*text.GoTextFaceSource, error) {
	if src, ok := rm.fontSources[name]; ok {
		return src, nil
	}

	data, ok := builtinFonts[name]
	if !ok {
		var err error
		if embedded.IsInitialized() && embedded.Exists(name) {
			data, err = embedded.ReadFile(name)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", name, err)
		}
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", name, err)
	}
	rm.fontSources[name] = source
	return source, nil
}
