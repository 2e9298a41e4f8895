package systems

import (
	"github.com/gonewx/ascent/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSystem 把键盘与指针输入转换成角色移动和相机轨道操作
// 场景未开始或已暂停时禁用
type InputSystem struct {
	player  *PlayerSystem
	camera  *CameraSystem
	drag    utils.PointerDrag
	enabled bool

	// sensitivity 返回当前的相机旋转灵敏度
	sensitivity func() float64
}

// NewInputSystem 创建输入系统
//
// 参数:
//   - player: 角色系统
//   - camera: 相机系统
//   - sensitivity: 灵敏度来源，可为 nil（固定为 1）
func NewInputSystem(player *PlayerSystem, camera *CameraSystem, sensitivity func() float64) *InputSystem {
	if sensitivity == nil {
		sensitivity = func() float64 { return 1 }
	}
	return &InputSystem{player: player, camera: camera, sensitivity: sensitivity}
}

// SetEnabled 启用或禁用输入；禁用时结束正在进行的拖动
func (s *InputSystem) SetEnabled(enabled bool) {
	s.enabled = enabled
	if !enabled {
		s.drag.Reset()
	}
}

// Enabled 输入是否启用
func (s *InputSystem) Enabled() bool {
	return s.enabled
}

// HandleKey 处理一次按键
// W / ↑ 向上，S / ↓ 向下，其他按键忽略；返回是否开始了移动
func (s *InputSystem) HandleKey(key ebiten.Key) bool {
	if !s.enabled {
		return false
	}
	switch key {
	case ebiten.KeyW, ebiten.KeyArrowUp:
		return s.player.MoveUp()
	case ebiten.KeyS, ebiten.KeyArrowDown:
		return s.player.MoveDown()
	}
	return false
}

// Update 读取本帧输入
//
// 参数:
//   - viewportHeight: 视口高度（像素），用于换算拖动角度
func (s *InputSystem) Update(viewportHeight int) {
	if !s.enabled {
		return
	}
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		if s.HandleKey(key) {
			break
		}
	}

	dx, dy := s.drag.Poll()
	if dx != 0 || dy != 0 {
		s.camera.Orbit(float64(dx), float64(dy), float64(viewportHeight), s.sensitivity())
	}
	if _, wheel := ebiten.Wheel(); wheel != 0 {
		s.camera.Zoom(wheel)
	}
}
