package components

// StoryComponent 叙事浮层状态
type StoryComponent struct {
	// Text 当前显示的文字
	Text string

	// Visible 目标可见性；Opacity 向其过渡
	Visible bool
	Opacity float64

	// ControlsVisible 操作提示目标可见性
	ControlsVisible bool
	ControlsOpacity float64
}
