//go:build mobile

package utils

// IsMobile 移动端构建（-tags mobile）始终为 true
// 触屏设备上不显示键盘操作提示
func IsMobile() bool {
	return true
}
