package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStoryConfig_DataFile(t *testing.T) {
	cfg, err := LoadStoryConfig("../../data/story.yaml")
	if err != nil {
		t.Fatalf("LoadStoryConfig failed: %v", err)
	}

	def := DefaultStoryConfig()
	if cfg.Intro != def.Intro {
		t.Errorf("Intro: got %q, want %q", cfg.Intro, def.Intro)
	}
	if len(cfg.Milestones) != len(def.Milestones) {
		t.Fatalf("Milestones: got %d, want %d", len(cfg.Milestones), len(def.Milestones))
	}
	for i := range cfg.Milestones {
		if cfg.Milestones[i] != def.Milestones[i] {
			t.Errorf("Milestones[%d]: got %+v, want %+v", i, cfg.Milestones[i], def.Milestones[i])
		}
	}
}

func TestStoryConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		milestones []MilestoneEntry
		wantErr    bool
	}{
		{"空列表", nil, false},
		{"正常", []MilestoneEntry{{At: 0.1, Text: "a"}, {At: 0.5, Text: "b"}, {FromEnd: 2, Text: "c"}}, false},
		{"文字为空", []MilestoneEntry{{At: 0.1}}, true},
		{"比例超出范围", []MilestoneEntry{{At: 1.5, Text: "a"}}, true},
		{"同时设置两种位置", []MilestoneEntry{{At: 0.5, FromEnd: 1, Text: "a"}}, true},
		{"负的 fromEnd", []MilestoneEntry{{FromEnd: -1, Text: "a"}}, true},
		{"比例未升序", []MilestoneEntry{{At: 0.5, Text: "a"}, {At: 0.2, Text: "b"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &StoryConfig{Intro: "intro", Milestones: tt.milestones}
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadStoryConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.yaml")
	content := "intro: hi\nmilestones:\n  - at: 0.3\n    text: \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	if _, err := LoadStoryConfig(path); err == nil {
		t.Error("expected validation error for empty milestone text")
	}
}
