package systems

import (
	"math"
	"slices"

	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
)

// Milestone 到达某个平台索引后显示的叙事文字
type Milestone struct {
	Threshold int
	Text      string
}

// ResolveMilestones 把配置中的比例换算成平台索引阈值
//
// At 形式：threshold = floor(platformCount * at)；
// FromEnd 形式：threshold = platformCount - fromEnd（不小于 0）。
// 结果按阈值稳定排序。
func ResolveMilestones(sc *config.StoryConfig, platformCount int) []Milestone {
	if sc == nil {
		return nil
	}
	ms := make([]Milestone, 0, len(sc.Milestones))
	for _, entry := range sc.Milestones {
		threshold := int(math.Floor(float64(platformCount) * entry.At))
		if entry.FromEnd > 0 {
			threshold = max(0, platformCount-entry.FromEnd)
		}
		ms = append(ms, Milestone{Threshold: threshold, Text: entry.Text})
	}
	slices.SortStableFunc(ms, func(a, b Milestone) int { return a.Threshold - b.Threshold })
	return ms
}

// ActiveMilestone 返回阈值不超过 index 的最后一个里程碑
// milestones 需按阈值升序；没有匹配时返回 false
func ActiveMilestone(milestones []Milestone, index int) (Milestone, bool) {
	for i := len(milestones) - 1; i >= 0; i-- {
		if index >= milestones[i].Threshold {
			return milestones[i], true
		}
	}
	return Milestone{}, false
}

// StorySystem 叙事浮层
//
// 到达平台时切换到对应里程碑的文字并显示；没有匹配的里程碑时保留原文字。
// 开局后延迟淡入，登顶后叙事与操作提示同时淡出。
type StorySystem struct {
	entityManager *ecs.EntityManager
	entity        ecs.EntityID
	milestones    []Milestone
	timing        config.StoryTiming
}

// NewStorySystem 创建叙事系统及其浮层实体
//
// 参数:
//   - em: 实体管理器
//   - sc: 叙事文本配置
//   - timing: 淡入淡出时间
//   - platformCount: 平台数量，用于换算里程碑阈值
func NewStorySystem(em *ecs.EntityManager, sc *config.StoryConfig, timing config.StoryTiming, platformCount int) *StorySystem {
	intro := ""
	if sc != nil {
		intro = sc.Intro
	}
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.StoryComponent{
		Text:            intro,
		ControlsVisible: true,
		ControlsOpacity: 1,
	})
	return &StorySystem{
		entityManager: em,
		entity:        id,
		milestones:    ResolveMilestones(sc, platformCount),
		timing:        timing,
	}
}

// Milestones 返回换算后的里程碑
func (s *StorySystem) Milestones() []Milestone {
	return s.milestones
}

// Story 返回浮层组件
func (s *StorySystem) Story() *components.StoryComponent {
	sc, ok := ecs.GetComponent[*components.StoryComponent](s.entityManager, s.entity)
	if !ok {
		return &components.StoryComponent{}
	}
	return sc
}

// Reveal 显示叙事浮层（开局延迟后调用）
func (s *StorySystem) Reveal() {
	s.Story().Visible = true
}

// OnArrival 角色到达平台
func (s *StorySystem) OnArrival(index int) {
	m, ok := ActiveMilestone(s.milestones, index)
	if !ok {
		return
	}
	story := s.Story()
	story.Text = m.Text
	story.Visible = true
}

// OnWin 登顶后隐藏叙事与操作提示
func (s *StorySystem) OnWin() {
	story := s.Story()
	story.Visible = false
	story.ControlsVisible = false
}

// Update 按淡入淡出时长推进透明度
func (s *StorySystem) Update(dt float64) {
	story := s.Story()
	story.Opacity = approach(story.Opacity, story.Visible, dt, s.timing.FadeDuration)
	story.ControlsOpacity = approach(story.ControlsOpacity, story.ControlsVisible, dt, s.timing.ControlsFadeDuration)
}

// Text 当前叙事文字
func (s *StorySystem) Text() string { return s.Story().Text }

// Visible 叙事浮层是否处于显示状态
func (s *StorySystem) Visible() bool { return s.Story().Visible }

// Opacity 叙事浮层当前透明度
func (s *StorySystem) Opacity() float64 { return s.Story().Opacity }

// ControlsHintVisible 操作提示是否处于显示状态
func (s *StorySystem) ControlsHintVisible() bool { return s.Story().ControlsVisible }

// approach 以 1/duration 的速率把透明度推向 0 或 1；duration<=0 时立即到位
func approach(current float64, visible bool, dt, duration float64) float64 {
	target := 0.0
	if visible {
		target = 1
	}
	if duration <= 0 {
		return target
	}
	step := dt / duration
	if current < target {
		return math.Min(target, current+step)
	}
	return math.Max(target, current-step)
}
