package game

import (
	"encoding/binary"
	"io"
	"log"

	"github.com/gonewx/ascent/pkg/rng"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AmbienceSampleRate 雨声使用的采样率
const AmbienceSampleRate = 44100

// rainNoiseCutoff 单极点低通滤波系数，越小雨声越“闷”
const rainNoiseCutoff = 0.18

// RainNoise 程序生成的雨声 PCM 流
// 输出 16 位小端立体声，永不结束；白噪声经单极点低通后左右声道各自独立
type RainNoise struct {
	src        rng.Source
	left       float64
	right      float64
	amplitude  float64
	smoothness float64
}

// NewRainNoise 创建雨声噪声流
//
// 参数：
//   - src: 随机源，测试时可注入固定序列
//
// 返回：
//   - *RainNoise: 实现 io.Reader 的噪声流
func NewRainNoise(src rng.Source) *RainNoise {
	return &RainNoise{src: src, amplitude: 0.5, smoothness: rainNoiseCutoff}
}

// Read 填充 PCM 数据，长度向下取整到完整的立体声帧（4 字节）
func (n *RainNoise) Read(p []byte) (int, error) {
	frames := len(p) / 4
	for i := 0; i < frames; i++ {
		n.left += n.smoothness * (n.src.Next()*2 - 1 - n.left)
		n.right += n.smoothness * (n.src.Next()*2 - 1 - n.right)
		binary.LittleEndian.PutUint16(p[i*4:], uint16(toSample(n.left*n.amplitude)))
		binary.LittleEndian.PutUint16(p[i*4+2:], uint16(toSample(n.right*n.amplitude)))
	}
	return frames * 4, nil
}

func toSample(v float64) int16 {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return int16(v * 32767)
}

// AmbienceManager 雨声环境音管理器
// 职责：
//   - 持有一个循环播放的程序化雨声播放器
//   - 根据雨滴透明度与用户设置调整音量
//
// audio.Context 为 nil 时进入静音模式，所有方法都是空操作（无头测试、验证工具）。
type AmbienceManager struct {
	settingsManager *SettingsManager
	player          *audio.Player
	level           float64
	closed          bool
}

// NewAmbienceManager 创建环境音管理器
//
// 参数：
//   - ctx: 音频上下文，可为 nil（静音模式）
//   - sm: 设置管理器，可为 nil（使用默认设置）
//   - noiseSeed: 雨声噪声的种子；噪声在音频线程读取，独占自己的随机源
//
// 返回：
//   - *AmbienceManager: 管理器实例；创建播放器失败时记录日志并降级为静音
func NewAmbienceManager(ctx *audio.Context, sm *SettingsManager, noiseSeed int64) *AmbienceManager {
	am := &AmbienceManager{settingsManager: sm}
	if ctx == nil {
		return am
	}

	player, err := ctx.NewPlayer(NewRainNoise(rng.NewPCG(noiseSeed)))
	if err != nil {
		log.Printf("[AmbienceManager] Warning: Failed to create rain player: %v", err)
		return am
	}
	player.SetVolume(0)
	am.player = player
	return am
}

// SetRainLevel 设置雨声强度（通常为雨滴透明度），范围 0.0 ~ 1.0
// 实际音量 = 强度 × 设置中的音量；音效关闭时暂停播放
func (am *AmbienceManager) SetRainLevel(level float64) {
	if am.closed {
		return
	}
	am.level = clampVolume(level)
	volume := am.Volume()

	if am.player == nil {
		return
	}
	if volume <= 0 {
		if am.player.IsPlaying() {
			am.player.Pause()
		}
		return
	}
	am.player.SetVolume(volume)
	if !am.player.IsPlaying() {
		am.player.Play()
	}
}

// Volume 返回当前应使用的播放音量
func (am *AmbienceManager) Volume() float64 {
	settings := DefaultSettings()
	if am.settingsManager != nil {
		settings = am.settingsManager.GetSettings()
	}
	if !settings.SoundEnabled {
		return 0
	}
	return am.level * settings.SoundVolume
}

// Pause 暂停雨声（暂停菜单）
func (am *AmbienceManager) Pause() {
	if am.player != nil && am.player.IsPlaying() {
		am.player.Pause()
	}
}

// Close 停止并释放播放器，可重复调用
func (am *AmbienceManager) Close() {
	if am.closed {
		return
	}
	am.closed = true
	if am.player == nil {
		return
	}
	am.player.Pause()
	if err := am.player.Close(); err != nil {
		log.Printf("[AmbienceManager] Warning: Failed to close rain player: %v", err)
	}
	am.player = nil
}

var _ io.Reader = (*RainNoise)(nil)
