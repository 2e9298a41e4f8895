// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	// 检查触摸
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// GetPointerState 获取指针的完整状态
// 返回：是否按下、X坐标、Y坐标
func GetPointerState() (pressed bool, x, y int) {
	// 检查触摸
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	// 检查鼠标
	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pressed, x, y
}

// PointerDrag 跟踪按住拖动的指针，逐帧给出位移
// 用于轨道相机的旋转；每个场景持有自己的实例
type PointerDrag struct {
	dragging     bool
	lastX, lastY int
}

// Poll 读取当前指针状态并返回本帧位移
func (d *PointerDrag) Poll() (dx, dy int) {
	pressed, x, y := GetPointerState()
	return d.Update(pressed, x, y)
}

// Update 根据指针状态推进拖动
//
// 参数：
//   - pressed: 指针是否按下
//   - x, y: 指针位置
//
// 返回：
//   - dx, dy: 相对上一帧的位移；刚按下或未按下时为 0
func (d *PointerDrag) Update(pressed bool, x, y int) (dx, dy int) {
	if !pressed {
		d.dragging = false
		return 0, 0
	}
	if !d.dragging {
		d.dragging = true
		d.lastX, d.lastY = x, y
		return 0, 0
	}
	dx, dy = x-d.lastX, y-d.lastY
	d.lastX, d.lastY = x, y
	return dx, dy
}

// IsDragging 是否处于拖动中
func (d *PointerDrag) IsDragging() bool {
	return d.dragging
}

// Reset 结束拖动（场景暂停或控制被禁用时调用）
func (d *PointerDrag) Reset() {
	d.dragging = false
}
