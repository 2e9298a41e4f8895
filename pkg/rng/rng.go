// Package rng 提供可注入的伪随机数源
//
// 地形噪声、平台抖动、装饰物摆放都通过 Source 取随机数，
// 测试时注入固定种子即可得到可复现的场景。
package rng

import "math/rand/v2"

// Source 随机数源接口
// Next 返回 [0, 1) 区间内的浮点数
type Source interface {
	Next() float64
}

// PCG 基于 math/rand/v2 PCG 算法的确定性随机源
type PCG struct {
	r *rand.Rand
}

// NewPCG 使用给定种子创建确定性随机源
func NewPCG(seed int64) *PCG {
	return &PCG{r: rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))}
}

// Next 返回 [0, 1) 区间内的随机数
func (p *PCG) Next() float64 {
	return p.r.Float64()
}

// Range 返回 [min, max) 区间内的随机数
//
// 参数：
//   - src: 随机源
//   - min, max: 区间端点
//
// 返回：
//   - float64: min + Next()*(max-min)
func Range(src Source, min, max float64) float64 {
	return src.Next()*(max-min) + min
}

// Sequence 按顺序回放一组固定值的随机源，用尽后从头循环
// 主要用于测试中精确控制抖动量
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence 创建回放随机源
// values 为空时恒定返回 0.5（区间中点，即“无抖动”）
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Next 返回下一个预设值
func (s *Sequence) Next() float64 {
	if len(s.values) == 0 {
		return 0.5
	}
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v
}
