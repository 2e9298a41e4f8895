package config

import (
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// AscentConfig 登山场景的全部可调参数
//
// 配置文件位置: data/ascent.yaml
type AscentConfig struct {
	Mountain MountainConfig `yaml:"mountain"`
	Platform PlatformConfig `yaml:"platform"`
	Palette  PaletteConfig  `yaml:"palette"`
	Lighting LightingConfig `yaml:"lighting"`
	Player   PlayerConfig   `yaml:"player"`
	Story    StoryTiming    `yaml:"story"`
	Loop     LoopConfig     `yaml:"loop"`
	Rain     RainConfig     `yaml:"rain"`
	Camera   CameraConfig   `yaml:"camera"`
	Scenery  SceneryConfig  `yaml:"scenery"`
}

// MountainConfig 地形圆锥参数
type MountainConfig struct {
	Height           float64 `yaml:"height"`
	BottomRadius     float64 `yaml:"bottomRadius"`
	TopRadius        float64 `yaml:"topRadius"`
	RadialSegments   int     `yaml:"radialSegments"`
	HeightSegments   int     `yaml:"heightSegments"`
	Turns            float64 `yaml:"turns"`
	PlatformsPerTurn float64 `yaml:"platformsPerTurn"`

	// Noise 顶点扰动幅度
	Noise NoiseConfig `yaml:"noise"`

	// Snow 雪线着色
	Snow SnowConfig `yaml:"snow"`
}

// NoiseConfig 顶点噪声
type NoiseConfig struct {
	Horizontal float64 `yaml:"horizontal"` // x/z 方向最大偏移
	Vertical   float64 `yaml:"vertical"`   // y 方向最大偏移
	BaseMargin float64 `yaml:"baseMargin"` // 距底面此高度以内的顶点不扰动
}

// SnowConfig 高度着色参数
type SnowConfig struct {
	Threshold float64 `yaml:"threshold"` // 归一化高度超过此值开始积雪
	Band      float64 `yaml:"band"`      // 从草到雪的过渡带宽
	Jitter    float64 `yaml:"jitter"`    // 亮度随机抖动比例
}

// PlatformConfig 平台尺寸与摆放抖动
type PlatformConfig struct {
	Width        float64 `yaml:"width"`
	Depth        float64 `yaml:"depth"`
	Height       float64 `yaml:"height"`
	AngleJitter  float64 `yaml:"angleJitter"`  // 角度抖动 ±rad
	InwardBias   float64 `yaml:"inwardBias"`   // 半径向内偏移 [−bias, 0]
	HeightJitter float64 `yaml:"heightJitter"` // 高度抖动 ±
}

// PaletteConfig 物体固有色
type PaletteConfig struct {
	MountainGrass HexColor `yaml:"mountainGrass"`
	MountainSnow  HexColor `yaml:"mountainSnow"`
	Platform      HexColor `yaml:"platform"`
	PlatformDark  HexColor `yaml:"platformDark"`
	TreeTrunk     HexColor `yaml:"treeTrunk"`
	TreeDark      HexColor `yaml:"treeDark"`
	Shirt         HexColor `yaml:"shirt"`
	Skin          HexColor `yaml:"skin"`
	Pants         HexColor `yaml:"pants"`
	Cloud         HexColor `yaml:"cloud"`
	FlagPole      HexColor `yaml:"flagPole"`
	Flag          HexColor `yaml:"flag"`
	Sun           HexColor `yaml:"sun"`
}

// LightingPreset 某一时刻（白天/日出）的天空与光照
type LightingPreset struct {
	Sky                 HexColor   `yaml:"sky"`
	Fog                 HexColor   `yaml:"fog"`
	SunColor            HexColor   `yaml:"sunColor"`
	SunIntensity        float64    `yaml:"sunIntensity"`
	SunPosition         mgl64.Vec3 `yaml:"sunPosition"`   // 太阳圆盘位置
	LightPosition       mgl64.Vec3 `yaml:"lightPosition"` // 平行光来源位置
	HemisphereSky       HexColor   `yaml:"hemisphereSky"`
	HemisphereGround    HexColor   `yaml:"hemisphereGround"`
	HemisphereIntensity float64    `yaml:"hemisphereIntensity"`
}

// LightingConfig 日出过渡参数
type LightingConfig struct {
	SunriseZone      int            `yaml:"sunriseZone"` // 最后 N 个平台为日出区
	DecayStep        float64        `yaml:"decayStep"`   // 离开日出区后每次更新的衰减量
	AmbientIntensity float64        `yaml:"ambientIntensity"`
	FogNear          float64        `yaml:"fogNear"`
	FogFar           float64        `yaml:"fogFar"`
	Day              LightingPreset `yaml:"day"`
	Sunrise          LightingPreset `yaml:"sunrise"`
}

// PlayerConfig 角色移动与动画
type PlayerConfig struct {
	MoveDuration     float64 `yaml:"moveDuration"`   // 仅用于跳跃弧线与摆腿节奏
	Damping          float64 `yaml:"damping"`        // 每帧向目标靠近的比例
	ArrivalEpsilon   float64 `yaml:"arrivalEpsilon"` // 到达判定距离
	HopHeight        float64 `yaml:"hopHeight"`
	WalkFrequency    float64 `yaml:"walkFrequency"`
	LimbSwing        float64 `yaml:"limbSwing"`
	IdleBobFrequency float64 `yaml:"idleBobFrequency"`
	IdleBobAmplitude float64 `yaml:"idleBobAmplitude"`
	TorsoHeight      float64 `yaml:"torsoHeight"`
	WinDelay         float64 `yaml:"winDelay"` // 登顶后延迟多久通知外部（秒）
}

// StoryTiming 叙事浮层的淡入淡出时间
type StoryTiming struct {
	FadeInDelay          float64 `yaml:"fadeInDelay"`
	FadeDuration         float64 `yaml:"fadeDuration"`
	ControlsFadeDuration float64 `yaml:"controlsFadeDuration"`
}

// LoopConfig 帧循环参数
type LoopConfig struct {
	MaxFrameDelta float64 `yaml:"maxFrameDelta"` // 单帧 dt 上限，防止切回标签页时大跳
}

// RainConfig 雨滴粒子场
type RainConfig struct {
	Count      int      `yaml:"count"`
	Speed      float64  `yaml:"speed"`
	Floor      float64  `yaml:"floor"`
	Ceiling    float64  `yaml:"ceiling"`
	Spread     float64  `yaml:"spread"`
	FadeHeight float64  `yaml:"fadeHeight"`
	Opacity    float64  `yaml:"opacity"`
	Size       float64  `yaml:"size"`
	Color      HexColor `yaml:"color"`
}

// CameraConfig 透视相机与轨道控制
type CameraConfig struct {
	FOV          float64    `yaml:"fov"` // 垂直视角（度）
	Near         float64    `yaml:"near"`
	Far          float64    `yaml:"far"`
	Position     mgl64.Vec3 `yaml:"position"`
	MinDistance  float64    `yaml:"minDistance"`
	MaxDistance  float64    `yaml:"maxDistance"`
	Damping      float64    `yaml:"damping"`
	PolarMargin  float64    `yaml:"polarMargin"` // 最大俯仰角 = π/2 − margin
	RotateSpeed  float64    `yaml:"rotateSpeed"`
	ZoomSpeed    float64    `yaml:"zoomSpeed"`
	FollowLerp   float64    `yaml:"followLerp"`
	FollowOffset float64    `yaml:"followOffset"`
}

// SceneryConfig 静态装饰物
type SceneryConfig struct {
	GroundRadius  float64 `yaml:"groundRadius"`
	TreeCount     int     `yaml:"treeCount"`
	TreeMinRadius float64 `yaml:"treeMinRadius"`
	TreeMaxRadius float64 `yaml:"treeMaxRadius"`
	TreeMinScale  float64 `yaml:"treeMinScale"`
	TreeMaxScale  float64 `yaml:"treeMaxScale"`
	CloudCount    int     `yaml:"cloudCount"`
	SunRadius     float64 `yaml:"sunRadius"`
	FlagOffset    float64 `yaml:"flagOffset"` // 旗帜相对最后一个平台的 X 偏移
}

// DefaultAscentConfig 返回内置默认配置
// 与 data/ascent.yaml 的内容保持一致，配置文件缺失或损坏时使用
func DefaultAscentConfig() *AscentConfig {
	return &AscentConfig{
		Mountain: MountainConfig{
			Height:           22,
			BottomRadius:     14,
			TopRadius:        0.5,
			RadialSegments:   9,
			HeightSegments:   6,
			Turns:            3.0,
			PlatformsPerTurn: 5,
			Noise:            NoiseConfig{Horizontal: 0.8, Vertical: 0.3, BaseMargin: 0.5},
			Snow:             SnowConfig{Threshold: 0.55, Band: 0.35, Jitter: 0.02},
		},
		Platform: PlatformConfig{
			Width:        2.2,
			Depth:        1.0,
			Height:       0.2,
			AngleJitter:  0.2,
			InwardBias:   0.6,
			HeightJitter: 0.1,
		},
		Palette: PaletteConfig{
			MountainGrass: 0x4caf50,
			MountainSnow:  0xffffff,
			Platform:      0xd4b483,
			PlatformDark:  0x8b5a2b,
			TreeTrunk:     0x5c4033,
			TreeDark:      0x2e7d32,
			Shirt:         0xe63946,
			Skin:          0xffccaa,
			Pants:         0x333333,
			Cloud:         0xf0f0f0,
			FlagPole:      0x888888,
			Flag:          0xffcc00,
			Sun:           0xffff00,
		},
		Lighting: LightingConfig{
			SunriseZone:      4,
			DecayStep:        0.05,
			AmbientIntensity: 0.6,
			FogNear:          20,
			FogFar:           70,
			Day: LightingPreset{
				Sky:                 0xdbebf0,
				Fog:                 0xdbebf0,
				SunColor:            0xfff0dd,
				SunIntensity:        1.2,
				SunPosition:         mgl64.Vec3{50, -15, -50},
				LightPosition:       mgl64.Vec3{10, 30, 10},
				HemisphereSky:       0xdbebf0,
				HemisphereGround:    0x4caf50,
				HemisphereIntensity: 0.5,
			},
			Sunrise: LightingPreset{
				Sky:                 0xffa07a,
				Fog:                 0xffd700,
				SunColor:            0xffaa00,
				SunIntensity:        2.0,
				SunPosition:         mgl64.Vec3{50, 35, -50},
				LightPosition:       mgl64.Vec3{50, 35, -50},
				HemisphereSky:       0xffe0a0,
				HemisphereGround:    0xffa07a,
				HemisphereIntensity: 1.0,
			},
		},
		Player: PlayerConfig{
			MoveDuration:     0.3,
			Damping:          0.15,
			ArrivalEpsilon:   0.1,
			HopHeight:        0.1,
			WalkFrequency:    20,
			LimbSwing:        0.5,
			IdleBobFrequency: 3,
			IdleBobAmplitude: 0.02,
			TorsoHeight:      0.75,
			WinDelay:         2.0,
		},
		Story: StoryTiming{
			FadeInDelay:          1.0,
			FadeDuration:         1.0,
			ControlsFadeDuration: 0.5,
		},
		Loop: LoopConfig{MaxFrameDelta: 0.1},
		Rain: RainConfig{
			Count:      1500,
			Speed:      15,
			Floor:      -2,
			Ceiling:    30,
			Spread:     30,
			FadeHeight: 12,
			Opacity:    0.6,
			Size:       0.15,
			Color:      0xaaddff,
		},
		Camera: CameraConfig{
			FOV:          50,
			Near:         0.1,
			Far:          1000,
			Position:     mgl64.Vec3{20, 15, 20},
			MinDistance:  5,
			MaxDistance:  40,
			Damping:      0.05,
			PolarMargin:  0.05,
			RotateSpeed:  1.0,
			ZoomSpeed:    1.0,
			FollowLerp:   0.05,
			FollowOffset: 2,
		},
		Scenery: SceneryConfig{
			GroundRadius:  30,
			TreeCount:     60,
			TreeMinRadius: 16,
			TreeMaxRadius: 28,
			TreeMinScale:  0.6,
			TreeMaxScale:  1.2,
			CloudCount:    3,
			SunRadius:     5,
			FlagOffset:    0.5,
		},
	}
}

// TotalPlatforms 返回螺旋分段数 floor(turns * platformsPerTurn)
// 实际生成的平台数量为该值 + 1（包含山脚起点）
func (c *AscentConfig) TotalPlatforms() int {
	return int(math.Floor(c.Mountain.Turns * c.Mountain.PlatformsPerTurn))
}

// LoadAscentConfig 加载场景配置
//
// 优先从嵌入数据读取，嵌入数据中不存在时回退到本地文件系统（用于 -config 覆盖）。
//
// 参数:
//   - path: 配置文件路径（如 "data/ascent.yaml"）
//
// 返回:
//   - *AscentConfig: 加载成功后的配置结构（未出现的字段保留默认值）
//   - error: 加载失败时返回错误
func LoadAscentConfig(path string) (*AscentConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ascent config: %w", err)
	}

	cfg := DefaultAscentConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ascent config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ascent config: %w", err)
	}

	log.Printf("[Config] 加载场景配置: %s (平台数 %d)", path, cfg.TotalPlatforms()+1)
	return cfg, nil
}

// Validate 验证配置有效性
//
// 检查:
//   - 山体尺寸为正，顶部半径不大于底部半径
//   - 至少能生成 2 个平台（否则无法游玩）
//   - 日出区、衰减步长、阻尼、相机距离在合理范围内
//
// 返回:
//   - error: 验证失败时返回错误，成功返回 nil
func (c *AscentConfig) Validate() error {
	m := c.Mountain
	if m.Height <= 0 || m.BottomRadius <= 0 {
		return fmt.Errorf("mountain size must be positive: height=%.2f bottomRadius=%.2f", m.Height, m.BottomRadius)
	}
	if m.TopRadius < 0 || m.TopRadius > m.BottomRadius {
		return fmt.Errorf("topRadius(%.2f) must be in [0, bottomRadius(%.2f)]", m.TopRadius, m.BottomRadius)
	}
	if m.RadialSegments < 3 || m.HeightSegments < 1 {
		return fmt.Errorf("segments too small: radial=%d height=%d", m.RadialSegments, m.HeightSegments)
	}
	if c.TotalPlatforms() < 1 {
		return fmt.Errorf("turns(%.2f) * platformsPerTurn(%.2f) must yield at least 1 step", m.Turns, m.PlatformsPerTurn)
	}
	if m.Snow.Band <= 0 {
		return fmt.Errorf("snow band must be positive, got %.2f", m.Snow.Band)
	}

	if c.Lighting.SunriseZone < 1 {
		return fmt.Errorf("sunriseZone must be >= 1, got %d", c.Lighting.SunriseZone)
	}
	if c.Lighting.DecayStep <= 0 || c.Lighting.DecayStep > 1 {
		return fmt.Errorf("decayStep must be in (0, 1], got %.3f", c.Lighting.DecayStep)
	}
	if c.Lighting.FogNear >= c.Lighting.FogFar {
		return fmt.Errorf("fogNear(%.1f) must be < fogFar(%.1f)", c.Lighting.FogNear, c.Lighting.FogFar)
	}

	p := c.Player
	if p.Damping <= 0 || p.Damping > 1 {
		return fmt.Errorf("player damping must be in (0, 1], got %.3f", p.Damping)
	}
	if p.MoveDuration <= 0 || p.ArrivalEpsilon <= 0 {
		return fmt.Errorf("moveDuration(%.2f) and arrivalEpsilon(%.2f) must be positive", p.MoveDuration, p.ArrivalEpsilon)
	}
	if p.WinDelay < 0 {
		return fmt.Errorf("winDelay must be >= 0, got %.2f", p.WinDelay)
	}

	if c.Loop.MaxFrameDelta <= 0 {
		return fmt.Errorf("maxFrameDelta must be positive, got %.3f", c.Loop.MaxFrameDelta)
	}
	if c.Rain.Count < 0 || c.Rain.Floor >= c.Rain.Ceiling {
		return fmt.Errorf("rain field invalid: count=%d floor=%.1f ceiling=%.1f", c.Rain.Count, c.Rain.Floor, c.Rain.Ceiling)
	}

	cam := c.Camera
	if cam.Near <= 0 || cam.Far <= cam.Near || cam.FOV <= 0 || cam.FOV >= 180 {
		return fmt.Errorf("camera projection invalid: fov=%.1f near=%.2f far=%.1f", cam.FOV, cam.Near, cam.Far)
	}
	if cam.MinDistance <= 0 || cam.MaxDistance < cam.MinDistance {
		return fmt.Errorf("camera distance range invalid: [%.1f, %.1f]", cam.MinDistance, cam.MaxDistance)
	}
	return nil
}

// readConfigFile 读取配置文件内容
// 嵌入数据优先，其次本地文件
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
