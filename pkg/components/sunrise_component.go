package components

// SunriseComponent 日出过渡状态
// Progress ∈ [0, 1]，由角色所在平台推导，不独立计时
type SunriseComponent struct {
	Active   bool
	Progress float64
}
