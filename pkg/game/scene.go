package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., the climb, the summit screen).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Disposable 是一个可选接口，场景被切换出去时释放自身持有的资源
//
// 实现此接口的场景会在以下时机被调用 Dispose()：
//   - SceneManager.SwitchTo 切换到其他场景
//   - 程序退出
//
// Dispose 必须可以重复调用。
type Disposable interface {
	Dispose()
}

// Resizable 是一个可选接口，窗口尺寸变化时重新计算视口
// 已销毁的场景收到 Resize 时必须直接返回
type Resizable interface {
	Resize(width, height int)
}
