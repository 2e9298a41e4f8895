package components

import "github.com/go-gl/mathgl/mgl64"

// Direction 移动方向
type Direction int

const (
	// DirectionUp 向山顶方向
	DirectionUp Direction = iota
	// DirectionDown 向山脚方向
	DirectionDown
)

// String 返回方向名称
func (d Direction) String() string {
	if d == DirectionDown {
		return "down"
	}
	return "up"
}

// PlayerState 角色状态机的状态
type PlayerState int

const (
	// PlayerIdle 站在平台上，可接受输入
	PlayerIdle PlayerState = iota
	// PlayerMoving 正在向目标平台移动，忽略输入
	PlayerMoving
	// PlayerWon 已登顶（终止状态）
	PlayerWon
)

// String 返回状态名称
func (s PlayerState) String() string {
	switch s {
	case PlayerMoving:
		return "Moving"
	case PlayerWon:
		return "Won"
	default:
		return "Idle"
	}
}

// PlayerComponent 登山角色的状态
//
// 不变式：0 <= CurrentIndex <= len(Stands)-1；Moving 为 true 当且仅当正在向 Target 插值。
type PlayerComponent struct {
	// Stands 每个平台上的站立点（平台顶面中心），生成后不再修改
	Stands []mgl64.Vec3

	// CurrentIndex 当前（或正在前往的）平台索引
	CurrentIndex int

	// Position 角色根节点当前位置
	Position mgl64.Vec3

	// Target 移动目标位置
	Target mgl64.Vec3

	// Moving 是否正在移动
	Moving bool

	// MoveStartTime 本次移动开始的时间（秒）
	MoveStartTime float64

	// MoveDuration 跳跃弧线与摆臂节奏的参考时长（秒），到达仍以距离判定
	MoveDuration float64

	// Direction 最近一次移动的方向
	Direction Direction

	// HasWon 是否已登顶
	HasWon bool
}

// State 返回当前状态机状态
func (p *PlayerComponent) State() PlayerState {
	switch {
	case p.HasWon:
		return PlayerWon
	case p.Moving:
		return PlayerMoving
	default:
		return PlayerIdle
	}
}

// PlatformCount 返回平台数量
func (p *PlayerComponent) PlatformCount() int {
	return len(p.Stands)
}

// IsSummit 当前索引是否为山顶
func (p *PlayerComponent) IsSummit() bool {
	return len(p.Stands) > 0 && p.CurrentIndex == len(p.Stands)-1
}
