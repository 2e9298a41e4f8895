package config

// 窗口与数据文件路径常量

const (
	// GameWindowWidth 默认窗口宽度（像素）
	GameWindowWidth = 1280

	// GameWindowHeight 默认窗口高度（像素）
	GameWindowHeight = 720
)

const (
	// AscentConfigPath 场景/玩法配置文件
	AscentConfigPath = "data/ascent.yaml"

	// StoryConfigPath 叙事里程碑配置文件
	StoryConfigPath = "data/story.yaml"
)
