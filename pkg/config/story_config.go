package config

import (
	"fmt"
	"log"

	"gopkg.in/yaml.v3"
)

// StoryConfig 叙事里程碑配置
//
// 配置文件位置: data/story.yaml
// 里程碑位置用攀登进度比例描述，与平台总数解耦；
// 最后一条通常用 fromEnd 锚定在山顶前若干个平台。
type StoryConfig struct {
	// Intro 游戏开始时显示的文字
	Intro string `yaml:"intro"`

	// Milestones 按进度升序排列的里程碑
	Milestones []MilestoneEntry `yaml:"milestones"`
}

// MilestoneEntry 单条里程碑
// At 与 FromEnd 二选一：
//   - At: 平台总数的比例，阈值 = floor(total * At)
//   - FromEnd: 距离末尾的平台数，阈值 = total - FromEnd
type MilestoneEntry struct {
	At      float64 `yaml:"at,omitempty"`
	FromEnd int     `yaml:"fromEnd,omitempty"`
	Text    string  `yaml:"text"`
}

// DefaultStoryConfig 返回内置叙事
func DefaultStoryConfig() *StoryConfig {
	return &StoryConfig{
		Intro: "The ascent begins. Every step is a lesson.",
		Milestones: []MilestoneEntry{
			{At: 0.05, Text: "It started with a fascination for tech products and how they shape the way we live and interact."},
			{At: 0.15, Text: "That curiosity evolved into a drive to build complex systems and understand the financial engines behind them."},
			{At: 0.25, Text: "I chose Computer Science to bridge the gap between product vision and technical reality."},
			{At: 0.35, Text: "Summer 2022. That's when I wrote my first lines of code."},
			{At: 0.45, Text: "In Nov 2024, I built machine learning models with Python to predict crop yields, learning how data drives sustainability."},
			{At: 0.55, Text: "In early 2025, I delved into Android development, building Wandr which won the Singtel InfoSys Award."},
			{At: 0.65, Text: "At AI Singapore, I engineered multi-agent systems using LangGraph and Gemini to automate complex workflows."},
			{At: 0.75, Text: "Now, I'm diving deep into Web3 and Finance, exploring the future of value."},
			{FromEnd: 3, Text: "My aspiration? To keep learning, keep building, and keep climbing mountains."},
		},
	}
}

// LoadStoryConfig 加载叙事配置
//
// 参数:
//   - path: 配置文件路径（如 "data/story.yaml"）
//
// 返回:
//   - *StoryConfig: 加载成功后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadStoryConfig(path string) (*StoryConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story config: %w", err)
	}

	var cfg StoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse story config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid story config: %w", err)
	}

	log.Printf("[Config] 加载叙事配置: %s (%d 个里程碑)", path, len(cfg.Milestones))
	return &cfg, nil
}

// Validate 验证叙事配置
//
// 检查:
//   - 每条里程碑文字非空
//   - At 位于 [0, 1]，FromEnd 非负，二者不能同时设置
//   - 以 At 描述的条目按升序排列
//
// 返回:
//   - error: 验证失败时返回错误，成功返回 nil
func (c *StoryConfig) Validate() error {
	lastAt := -1.0
	for i, m := range c.Milestones {
		if m.Text == "" {
			return fmt.Errorf("milestone %d has empty text", i)
		}
		if m.At != 0 && m.FromEnd != 0 {
			return fmt.Errorf("milestone %d sets both at(%.2f) and fromEnd(%d)", i, m.At, m.FromEnd)
		}
		if m.At < 0 || m.At > 1 {
			return fmt.Errorf("milestone %d: at must be in [0, 1], got %.2f", i, m.At)
		}
		if m.FromEnd < 0 {
			return fmt.Errorf("milestone %d: fromEnd must be >= 0, got %d", i, m.FromEnd)
		}
		if m.FromEnd == 0 {
			if m.At < lastAt {
				return fmt.Errorf("milestone %d: at(%.2f) is lower than previous (%.2f)", i, m.At, lastAt)
			}
			lastAt = m.At
		}
	}
	return nil
}
