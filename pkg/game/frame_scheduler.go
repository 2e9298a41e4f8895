package game

import (
	"slices"
	"time"
)

// Handle 帧回调或定时器的句柄，0 为无效句柄
type Handle uint64

// Scheduler 帧驱动的调度器
//
// RequestFrame 注册的回调只执行一次（下一帧），需要持续运行时在回调中再次注册。
// AfterFunc 注册的函数在调度器时间到达 now+delay 后的第一帧执行。
// 所有回调都在调用 Advance 的同一个 goroutine 中执行。
type Scheduler interface {
	RequestFrame(cb func(now float64)) Handle
	AfterFunc(delay float64, fn func()) Handle
	Cancel(h Handle)
	Now() float64
}

// Clock 时间源，返回单调递增的秒数
type Clock interface {
	Now() float64
}

// RealClock 基于系统单调时钟的时间源
type RealClock struct {
	start time.Time
}

// NewRealClock 创建从当前时刻开始计时的时钟
func NewRealClock() *RealClock {
	return &RealClock{start: time.Now()}
}

// Now 返回自创建以来经过的秒数
func (c *RealClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

type frameRequest struct {
	id Handle
	cb func(now float64)
}

type timer struct {
	id  Handle
	due float64
	fn  func()
}

// FrameScheduler Scheduler 的默认实现
// 由 App.Update 以真实时钟驱动；测试中直接调用 Advance 注入时间
type FrameScheduler struct {
	now     float64
	nextID  Handle
	frames  []frameRequest
	running []frameRequest
	timers  []timer
}

// NewFrameScheduler 创建调度器，初始时间为 start
func NewFrameScheduler(start float64) *FrameScheduler {
	return &FrameScheduler{now: start, nextID: 1}
}

// Now 返回最近一次 Advance 的时间
func (s *FrameScheduler) Now() float64 {
	return s.now
}

// RequestFrame 注册下一帧执行的回调
func (s *FrameScheduler) RequestFrame(cb func(now float64)) Handle {
	id := s.allocID()
	s.frames = append(s.frames, frameRequest{id: id, cb: cb})
	return id
}

// AfterFunc 注册延迟执行的函数（delay 单位为秒，负数视为 0）
func (s *FrameScheduler) AfterFunc(delay float64, fn func()) Handle {
	id := s.allocID()
	s.timers = append(s.timers, timer{id: id, due: s.now + max(0, delay), fn: fn})
	return id
}

// Cancel 取消帧回调或定时器；已执行或未知的句柄直接忽略
func (s *FrameScheduler) Cancel(h Handle) {
	s.frames = slices.DeleteFunc(s.frames, func(f frameRequest) bool { return f.id == h })
	for i := range s.running {
		if s.running[i].id == h {
			s.running[i].cb = nil
		}
	}
	s.timers = slices.DeleteFunc(s.timers, func(t timer) bool { return t.id == h })
}

// Advance 推进到 now 并执行到期的定时器与本帧回调
//
// 执行顺序：
//  1. 到期时间 <= now 的定时器，按到期时间、注册顺序执行
//  2. 本次 Advance 之前注册的帧回调，按注册顺序执行；
//     回调中新注册的帧回调留到下一次 Advance
//
// 时间不会倒退：now 小于当前时间时按当前时间处理。
func (s *FrameScheduler) Advance(now float64) {
	if now > s.now {
		s.now = now
	}

	for {
		idx := s.nextDueTimer()
		if idx < 0 {
			break
		}
		t := s.timers[idx]
		s.timers = slices.Delete(s.timers, idx, idx+1)
		t.fn()
	}

	s.running = s.frames
	s.frames = nil
	for i := range s.running {
		// 同批次中先执行的回调可能已取消后面的请求
		if cb := s.running[i].cb; cb != nil {
			cb(s.now)
		}
	}
	s.running = nil
}

// PendingFrames 返回等待执行的帧回调数量
func (s *FrameScheduler) PendingFrames() int {
	return len(s.frames)
}

// PendingTimers 返回等待执行的定时器数量
func (s *FrameScheduler) PendingTimers() int {
	return len(s.timers)
}

func (s *FrameScheduler) allocID() Handle {
	id := s.nextID
	s.nextID++
	return id
}

func (s *FrameScheduler) nextDueTimer() int {
	best := -1
	for i, t := range s.timers {
		if t.due > s.now {
			continue
		}
		if best < 0 || t.due < s.timers[best].due {
			best = i
		}
	}
	return best
}
