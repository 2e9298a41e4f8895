package systems

import (
	"testing"

	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
)

func TestResolveMilestonesDefault(t *testing.T) {
	ms := ResolveMilestones(config.DefaultStoryConfig(), 16)
	want := []int{0, 2, 4, 5, 7, 8, 10, 12, 13}
	if len(ms) != len(want) {
		t.Fatalf("len: got %d, want %d", len(ms), len(want))
	}
	for i, m := range ms {
		if m.Threshold != want[i] {
			t.Errorf("milestone %d threshold: got %d, want %d", i, m.Threshold, want[i])
		}
		if m.Text == "" {
			t.Errorf("milestone %d has empty text", i)
		}
	}
}

// TestResolveMilestonesSorted FromEnd 换算后小于前面的阈值时按阈值排序
func TestResolveMilestonesSorted(t *testing.T) {
	sc := &config.StoryConfig{Milestones: []config.MilestoneEntry{
		{At: 0.5, Text: "half"},
		{FromEnd: 10, Text: "late"},
	}}
	ms := ResolveMilestones(sc, 4)
	if ms[0].Text != "late" || ms[0].Threshold != 0 || ms[1].Threshold != 2 {
		t.Errorf("got %+v, want late@0 then half@2", ms)
	}
	if ResolveMilestones(nil, 10) != nil {
		t.Error("nil config should resolve to no milestones")
	}
}

func TestActiveMilestone(t *testing.T) {
	var ms []Milestone
	for _, th := range []int{0, 2, 4, 6, 8, 10, 12, 14, 17} {
		ms = append(ms, Milestone{Threshold: th, Text: "m"})
	}

	tests := []struct {
		index int
		want  int
	}{
		{0, 0},
		{1, 0},
		{5, 4},
		{14, 14},
		{16, 14},
		{19, 17},
	}
	for _, tt := range tests {
		m, ok := ActiveMilestone(ms, tt.index)
		if !ok || m.Threshold != tt.want {
			t.Errorf("index %d: got %d (ok=%v), want %d", tt.index, m.Threshold, ok, tt.want)
		}
	}

	if _, ok := ActiveMilestone(ms[1:], 1); ok {
		t.Error("index below the first threshold should not match")
	}
}

// TestStoryKeepsTextWithoutMatch 没有匹配的里程碑时保留原文字
func TestStoryKeepsTextWithoutMatch(t *testing.T) {
	em := ecs.NewEntityManager()
	sc := &config.StoryConfig{
		Intro:      "intro",
		Milestones: []config.MilestoneEntry{{At: 0.5, Text: "halfway"}},
	}
	s := NewStorySystem(em, sc, config.DefaultAscentConfig().Story, 10)

	s.OnArrival(2)
	if s.Text() != "intro" {
		t.Errorf("Text: got %q, want intro", s.Text())
	}
	if s.Visible() {
		t.Error("no match should not reveal the overlay")
	}

	s.OnArrival(5)
	if s.Text() != "halfway" || !s.Visible() {
		t.Errorf("after milestone: text=%q visible=%v", s.Text(), s.Visible())
	}

	s.OnArrival(3)
	if s.Text() != "halfway" {
		t.Errorf("walking back below the threshold should keep the text, got %q", s.Text())
	}
}

func TestStoryFades(t *testing.T) {
	em := ecs.NewEntityManager()
	s := NewStorySystem(em, config.DefaultStoryConfig(), config.DefaultAscentConfig().Story, 16)

	if s.Opacity() != 0 || !s.ControlsHintVisible() {
		t.Fatalf("initial: opacity=%v controls=%v, want 0/true", s.Opacity(), s.ControlsHintVisible())
	}
	if s.Text() != config.DefaultStoryConfig().Intro {
		t.Errorf("initial text: got %q", s.Text())
	}

	s.Reveal()
	s.Update(0.5)
	if !approxEqual(s.Opacity(), 0.5) {
		t.Errorf("opacity after 0.5s: got %v, want 0.5", s.Opacity())
	}
	s.Update(1)
	if s.Opacity() != 1 {
		t.Errorf("opacity after fade: got %v, want 1", s.Opacity())
	}

	s.OnWin()
	if s.ControlsHintVisible() || s.Visible() {
		t.Error("win should hide story and controls")
	}
	s.Update(0.25)
	story := s.Story()
	if !approxEqual(story.Opacity, 0.75) || !approxEqual(story.ControlsOpacity, 0.5) {
		t.Errorf("fade out: story=%v controls=%v, want 0.75/0.5", story.Opacity, story.ControlsOpacity)
	}
}
