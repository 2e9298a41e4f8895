package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/game"
)

const frameStep = 1.0 / 60

// newLinePlayer 创建沿对角线排列 n 个站立点的角色（无模型部件）
func newLinePlayer(t *testing.T, n int) (*ecs.EntityManager, *PlayerSystem, *game.FrameScheduler) {
	t.Helper()
	em := ecs.NewEntityManager()
	stands := make([]mgl64.Vec3, n)
	for i := range stands {
		stands[i] = mgl64.Vec3{float64(i), float64(i) * 0.5, 0}
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransform(stands[0]))
	ecs.AddComponent(em, id, &components.PlayerComponent{
		Stands:       stands,
		Position:     stands[0],
		Target:       stands[0],
		MoveDuration: 0.3,
	})

	sched := game.NewFrameScheduler(0)
	ps := NewPlayerSystem(em, id, config.DefaultAscentConfig().Player, sched)
	return em, ps, sched
}

// settle 推进时间直到角色停止移动，返回用掉的帧数
func settle(t *testing.T, ps *PlayerSystem, sched *game.FrameScheduler) int {
	t.Helper()
	for frame := 1; frame <= 600; frame++ {
		sched.Advance(sched.Now() + frameStep)
		ps.Update(sched.Now())
		if !ps.Player().Moving {
			return frame
		}
	}
	t.Fatalf("player did not arrive within 600 frames")
	return 0
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func vecApprox(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() < eps
}
