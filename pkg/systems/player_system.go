package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/game"
	"github.com/gonewx/ascent/pkg/utils"
)

// PlayerSystem 登山角色的状态机
//
// 状态：Idle → Moving → Idle … → Won（终止）。
// MoveUp/MoveDown 只在 Idle 时生效；移动采用逐帧阻尼逼近目标，
// 距离小于到达阈值时吸附到目标并通知到达监听者。
type PlayerSystem struct {
	entityManager *ecs.EntityManager
	player        ecs.EntityID
	cfg           config.PlayerConfig
	clock         game.Clock

	arrivalListeners []func(index int)
	winListeners     []func()
}

// NewPlayerSystem 创建角色系统
//
// 参数:
//   - em: 实体管理器
//   - player: 携带 PlayerComponent 的角色根实体
//   - cfg: 移动与动画参数
//   - clock: 时间源，记录移动开始时间
func NewPlayerSystem(em *ecs.EntityManager, player ecs.EntityID, cfg config.PlayerConfig, clock game.Clock) *PlayerSystem {
	return &PlayerSystem{
		entityManager: em,
		player:        player,
		cfg:           cfg,
		clock:         clock,
	}
}

// OnArrival 注册到达监听者，每次到达平台后以平台索引回调
func (s *PlayerSystem) OnArrival(fn func(index int)) {
	s.arrivalListeners = append(s.arrivalListeners, fn)
}

// OnWin 注册登顶监听者，整局只回调一次
func (s *PlayerSystem) OnWin(fn func()) {
	s.winListeners = append(s.winListeners, fn)
}

// Player 返回角色状态组件；角色实体不存在时返回 nil
func (s *PlayerSystem) Player() *components.PlayerComponent {
	p, ok := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.player)
	if !ok {
		return nil
	}
	return p
}

// MoveUp 向上一个平台移动
// 返回是否开始了移动（移动中、已登顶、已在山顶时返回 false）
func (s *PlayerSystem) MoveUp() bool {
	p := s.Player()
	if p == nil || p.State() != components.PlayerIdle || p.CurrentIndex >= len(p.Stands)-1 {
		return false
	}
	p.CurrentIndex++
	p.Direction = components.DirectionUp
	s.startMove(p)
	return true
}

// MoveDown 向下一个平台移动
// 返回是否开始了移动（移动中、已登顶、已在山脚时返回 false）
func (s *PlayerSystem) MoveDown() bool {
	p := s.Player()
	if p == nil || p.State() != components.PlayerIdle || p.CurrentIndex <= 0 {
		return false
	}
	p.CurrentIndex--
	p.Direction = components.DirectionDown
	s.startMove(p)
	return true
}

func (s *PlayerSystem) startMove(p *components.PlayerComponent) {
	p.Moving = true
	p.MoveStartTime = s.clock.Now()
	p.Target = p.Stands[p.CurrentIndex]
}

// Update 推进角色一帧
//
// 参数:
//   - now: 当前时间（秒），与 clock 同源
func (s *PlayerSystem) Update(now float64) {
	p := s.Player()
	if p == nil || len(p.Stands) == 0 || p.HasWon {
		return
	}
	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, s.player)
	if !ok {
		return
	}
	character, _ := ecs.GetComponent[*components.CharacterComponent](s.entityManager, s.player)

	if !p.Moving {
		s.idle(character, now)
		return
	}

	elapsed := now - p.MoveStartTime
	progress := 1.0
	if p.MoveDuration > 0 {
		progress = math.Min(1, elapsed/p.MoveDuration)
	}

	p.Position = utils.LerpVec3(p.Position, p.Target, s.cfg.Damping)
	p.Position[1] += math.Sin(progress*math.Pi) * s.cfg.HopHeight

	transform.Position = p.Position
	transform.FaceTowards(s.lookTarget(p))
	s.swingLimbs(character, math.Sin(elapsed*s.cfg.WalkFrequency)*s.cfg.LimbSwing)

	if p.Position.Sub(p.Target).Len() < s.cfg.ArrivalEpsilon {
		p.Moving = false
		p.Position = p.Target
		transform.Position = p.Target
		s.arrive(p)
	}
}

// lookTarget 移动中的朝向：中间平台朝前进方向的相邻平台，首尾平台朝山体中轴
func (s *PlayerSystem) lookTarget(p *components.PlayerComponent) mgl64.Vec3 {
	last := len(p.Stands) - 1
	if p.CurrentIndex > 0 && p.CurrentIndex < last {
		idx := p.CurrentIndex + 1
		if p.Direction == components.DirectionDown {
			idx = p.CurrentIndex - 1
		}
		idx = max(0, min(idx, last))
		return p.Stands[idx]
	}
	return mgl64.Vec3{0, p.Position.Y(), 0}
}

func (s *PlayerSystem) arrive(p *components.PlayerComponent) {
	for _, fn := range s.arrivalListeners {
		fn(p.CurrentIndex)
	}
	if p.IsSummit() && !p.HasWon {
		p.HasWon = true
		for _, fn := range s.winListeners {
			fn()
		}
	}
}

// idle 站立时躯干轻微起伏，四肢归位
func (s *PlayerSystem) idle(character *components.CharacterComponent, now float64) {
	if character == nil {
		return
	}
	if torso, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, character.Torso); ok {
		torso.Position[1] = s.cfg.TorsoHeight + math.Sin(now*s.cfg.IdleBobFrequency)*s.cfg.IdleBobAmplitude
	}
	s.swingLimbs(character, 0)
}

// swingLimbs 按相位设置四肢绕 X 轴的摆角
func (s *PlayerSystem) swingLimbs(character *components.CharacterComponent, angle float64) {
	if character == nil {
		return
	}
	for _, limb := range character.Limbs() {
		if t, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, limb.ID); ok {
			t.Rotation[0] = limb.Sign * angle
		}
	}
}
