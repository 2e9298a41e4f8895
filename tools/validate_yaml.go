package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/systems"
	"gopkg.in/yaml.v3"
)

// strictDecode 拒绝未知字段，捕获拼写错误的配置键
func strictDecode(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("读取文件失败: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("YAML 解析失败: %w", err)
	}
	return nil
}

func main() {
	ascentPath, storyPath := "data/ascent.yaml", "data/story.yaml"
	if len(os.Args) > 2 {
		ascentPath, storyPath = os.Args[1], os.Args[2]
	}

	failed := false

	ascent := config.DefaultAscentConfig()
	if err := strictDecode(ascentPath, ascent); err != nil {
		fmt.Printf("❌ %s: %v\n", ascentPath, err)
		failed = true
	} else if err := ascent.Validate(); err != nil {
		fmt.Printf("❌ %s: %v\n", ascentPath, err)
		failed = true
	} else {
		fmt.Printf("✅ %s 格式正确，平台数 %d\n", ascentPath, ascent.TotalPlatforms()+1)
	}

	var story config.StoryConfig
	if err := strictDecode(storyPath, &story); err != nil {
		fmt.Printf("❌ %s: %v\n", storyPath, err)
		os.Exit(1)
	}
	if err := story.Validate(); err != nil {
		fmt.Printf("❌ %s: %v\n", storyPath, err)
		os.Exit(1)
	}
	fmt.Printf("✅ %s 格式正确，里程碑数量 %d\n", storyPath, len(story.Milestones))

	// 阈值按当前平台数解析，重复的阈值意味着后一条会覆盖前一条
	n := ascent.TotalPlatforms() + 1
	seen := make(map[int]string)
	for _, m := range systems.ResolveMilestones(&story, n) {
		if m.Threshold >= n {
			fmt.Printf("❌ 里程碑阈值 %d 超出平台范围 [0, %d]: %q\n", m.Threshold, n-1, m.Text)
			failed = true
		}
		if prev, dup := seen[m.Threshold]; dup {
			fmt.Printf("⚠️  阈值 %d 重复，%q 将被 %q 覆盖\n", m.Threshold, prev, m.Text)
		}
		seen[m.Threshold] = m.Text
		fmt.Printf("   平台 %2d → %.40q\n", m.Threshold, m.Text)
	}

	if failed {
		os.Exit(1)
	}
}
