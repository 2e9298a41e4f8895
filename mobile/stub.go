//go:build !mobile

// 桌面端构建（go build ./...）时 mobile 包只保留占位函数，
// ebitenmobile 绑定代码在 mobile.go 中，需要 -tags mobile。
package mobile

// Dummy 占位导出
func Dummy() {}
