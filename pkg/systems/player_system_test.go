package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gonewx/ascent/pkg/components"
	"github.com/gonewx/ascent/pkg/config"
	"github.com/gonewx/ascent/pkg/ecs"
	"github.com/gonewx/ascent/pkg/entities"
	"github.com/gonewx/ascent/pkg/game"
	"github.com/gonewx/ascent/pkg/rng"
	"github.com/gonewx/ascent/pkg/terrain"
)

func TestMoveUpStartsMove(t *testing.T) {
	_, ps, sched := newLinePlayer(t, 5)
	sched.Advance(3)

	if !ps.MoveUp() {
		t.Fatal("MoveUp from idle at index 0 should start a move")
	}
	p := ps.Player()
	if p.CurrentIndex != 1 {
		t.Errorf("CurrentIndex: got %d, want 1", p.CurrentIndex)
	}
	if p.State() != components.PlayerMoving {
		t.Errorf("State: got %v, want Moving", p.State())
	}
	if p.Direction != components.DirectionUp {
		t.Errorf("Direction: got %v, want up", p.Direction)
	}
	if p.MoveStartTime != 3 {
		t.Errorf("MoveStartTime: got %v, want 3", p.MoveStartTime)
	}
	if p.Target != p.Stands[1] {
		t.Errorf("Target: got %v, want %v", p.Target, p.Stands[1])
	}
}

// TestMoveWhileMovingIsNoop 移动中的输入被忽略
func TestMoveWhileMovingIsNoop(t *testing.T) {
	_, ps, _ := newLinePlayer(t, 5)
	ps.MoveUp()

	if ps.MoveUp() {
		t.Error("MoveUp while moving should return false")
	}
	if ps.MoveDown() {
		t.Error("MoveDown while moving should return false")
	}
	if got := ps.Player().CurrentIndex; got != 1 {
		t.Errorf("CurrentIndex: got %d, want 1", got)
	}
}

// TestMoveDownAtBaseIsIdempotent 山脚向下移动不改变任何状态
func TestMoveDownAtBaseIsIdempotent(t *testing.T) {
	_, ps, _ := newLinePlayer(t, 5)
	before := *ps.Player()

	for i := 0; i < 3; i++ {
		if ps.MoveDown() {
			t.Fatalf("MoveDown at index 0 should return false")
		}
	}
	after := ps.Player()
	if after.CurrentIndex != 0 || after.Moving || after.Position != before.Position {
		t.Errorf("state changed: got index=%d moving=%v pos=%v", after.CurrentIndex, after.Moving, after.Position)
	}
}

func TestArrivalSnapsAndNotifies(t *testing.T) {
	_, ps, sched := newLinePlayer(t, 5)
	var arrivals []int
	ps.OnArrival(func(i int) { arrivals = append(arrivals, i) })

	ps.MoveUp()
	settle(t, ps, sched)

	p := ps.Player()
	if p.Position != p.Stands[1] {
		t.Errorf("Position: got %v, want exactly %v", p.Position, p.Stands[1])
	}
	if p.State() != components.PlayerIdle {
		t.Errorf("State: got %v, want Idle", p.State())
	}
	if len(arrivals) != 1 || arrivals[0] != 1 {
		t.Errorf("arrivals: got %v, want [1]", arrivals)
	}
}

// TestRoundTripToSummit 连续向上到达山顶后，向下输入不再生效
func TestRoundTripToSummit(t *testing.T) {
	_, ps, sched := newLinePlayer(t, 20)
	wins := 0
	arrivals := 0
	ps.OnWin(func() { wins++ })
	ps.OnArrival(func(int) { arrivals++ })

	for i := 0; i < 19; i++ {
		if !ps.MoveUp() {
			t.Fatalf("MoveUp #%d should start a move", i+1)
		}
		settle(t, ps, sched)
	}

	p := ps.Player()
	if p.CurrentIndex != 19 || !p.HasWon {
		t.Fatalf("after climbing: index=%d hasWon=%v, want 19/true", p.CurrentIndex, p.HasWon)
	}
	if wins != 1 {
		t.Errorf("win notifications: got %d, want 1", wins)
	}
	if arrivals != 19 {
		t.Errorf("arrivals: got %d, want 19", arrivals)
	}

	for i := 0; i < 19; i++ {
		if ps.MoveDown() {
			t.Fatal("MoveDown after winning should return false")
		}
		ps.Update(sched.Now())
	}
	if p.CurrentIndex != 19 || !p.HasWon || p.State() != components.PlayerWon {
		t.Errorf("after down inputs: index=%d state=%v, want 19/Won", p.CurrentIndex, p.State())
	}
	if wins != 1 {
		t.Errorf("win notifications after extra updates: got %d, want 1", wins)
	}
}

// TestMoveDownThenUp 下山方向记录为 down，且可以再次向上
func TestMoveDownThenUp(t *testing.T) {
	_, ps, sched := newLinePlayer(t, 5)
	ps.MoveUp()
	settle(t, ps, sched)
	ps.MoveUp()
	settle(t, ps, sched)

	if !ps.MoveDown() {
		t.Fatal("MoveDown from index 2 should start a move")
	}
	if ps.Player().Direction != components.DirectionDown {
		t.Errorf("Direction: got %v, want down", ps.Player().Direction)
	}
	settle(t, ps, sched)
	if got := ps.Player().CurrentIndex; got != 1 {
		t.Errorf("CurrentIndex: got %d, want 1", got)
	}
}

func TestSinglePlatformCannotMove(t *testing.T) {
	_, ps, _ := newLinePlayer(t, 1)
	if ps.MoveUp() || ps.MoveDown() {
		t.Error("a single platform allows no movement")
	}
}

// TestEmptyStandsIsSafe 没有平台时所有操作都是空操作
func TestEmptyStandsIsSafe(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	ecs.AddComponent(em, id, components.NewTransform(mgl64.Vec3{}))
	ecs.AddComponent(em, id, &components.PlayerComponent{})
	ps := NewPlayerSystem(em, id, config.DefaultAscentConfig().Player, game.NewFrameScheduler(0))

	if ps.MoveUp() || ps.MoveDown() {
		t.Error("moves should fail without platforms")
	}
	ps.Update(1)

	missing := NewPlayerSystem(em, 999, config.DefaultAscentConfig().Player, game.NewFrameScheduler(0))
	if missing.MoveUp() || missing.Player() != nil {
		t.Error("missing player entity should be ignored")
	}
	missing.Update(1)
}

func TestLookTarget(t *testing.T) {
	_, ps, _ := newLinePlayer(t, 5)
	p := ps.Player()

	tests := []struct {
		name  string
		index int
		dir   components.Direction
		want  mgl64.Vec3
	}{
		{"middle going up faces next", 2, components.DirectionUp, p.Stands[3]},
		{"middle going down faces previous", 2, components.DirectionDown, p.Stands[1]},
		{"base faces centre", 0, components.DirectionDown, mgl64.Vec3{0, p.Position.Y(), 0}},
		{"summit faces centre", 4, components.DirectionUp, mgl64.Vec3{0, p.Position.Y(), 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.CurrentIndex = tt.index
			p.Direction = tt.dir
			if got := ps.lookTarget(p); got != tt.want {
				t.Errorf("lookTarget: got %v, want %v", got, tt.want)
			}
		})
	}
}

// TestLimbAnimation 移动时四肢按相位摆动，站立时归位并轻微起伏
func TestLimbAnimation(t *testing.T) {
	cfg := config.DefaultAscentConfig()
	em := ecs.NewEntityManager()
	platforms := terrain.LayoutPlatforms(cfg.Mountain, cfg.Platform, rng.NewSequence())
	player := entities.NewCharacterEntity(em, cfg, platforms)
	sched := game.NewFrameScheduler(0)
	ps := NewPlayerSystem(em, player, cfg.Player, sched)
	character, _ := ecs.GetComponent[*components.CharacterComponent](em, player)

	rotX := func(id ecs.EntityID) float64 {
		tr, _ := ecs.GetComponent[*components.TransformComponent](em, id)
		return tr.Rotation.X()
	}

	ps.MoveUp()
	sched.Advance(0.05)
	ps.Update(0.05)

	swing := math.Sin(0.05*cfg.Player.WalkFrequency) * cfg.Player.LimbSwing
	if got := rotX(character.LeftLeg); !approxEqual(got, swing) {
		t.Errorf("left leg: got %v, want %v", got, swing)
	}
	if got := rotX(character.RightLeg); !approxEqual(got, -swing) {
		t.Errorf("right leg: got %v, want %v", got, -swing)
	}
	if got := rotX(character.LeftArm); !approxEqual(got, -swing) {
		t.Errorf("left arm: got %v, want %v", got, -swing)
	}
	if got := rotX(character.RightArm); !approxEqual(got, swing) {
		t.Errorf("right arm: got %v, want %v", got, swing)
	}

	settle(t, ps, sched)
	now := sched.Now() + 0.5
	ps.Update(now)
	for _, limb := range character.Limbs() {
		if got := rotX(limb.ID); got != 0 {
			t.Errorf("idle limb %d rotation: got %v, want 0", limb.ID, got)
		}
	}
	torso, _ := ecs.GetComponent[*components.TransformComponent](em, character.Torso)
	wantY := cfg.Player.TorsoHeight + math.Sin(now*cfg.Player.IdleBobFrequency)*cfg.Player.IdleBobAmplitude
	if !approxEqual(torso.Position.Y(), wantY) {
		t.Errorf("torso bob: got %v, want %v", torso.Position.Y(), wantY)
	}
}

// TestRandomInputsKeepInvariants 任意上下输入序列下索引不越界，Moving 与插值状态一致
func TestRandomInputsKeepInvariants(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 2024} {
		const n = 12
		_, ps, sched := newLinePlayer(t, n)
		src := rng.NewPCG(seed)
		p := ps.Player()

		for step := 0; step < 3000; step++ {
			before := p.CurrentIndex
			wasIdle := p.State() == components.PlayerIdle

			started := false
			switch r := src.Next(); {
			case r < 0.3:
				started = ps.MoveUp()
				if started && p.CurrentIndex != before+1 {
					t.Fatalf("seed %d step %d: MoveUp moved %d -> %d", seed, step, before, p.CurrentIndex)
				}
			case r < 0.6:
				started = ps.MoveDown()
				if started && p.CurrentIndex != before-1 {
					t.Fatalf("seed %d step %d: MoveDown moved %d -> %d", seed, step, before, p.CurrentIndex)
				}
			}
			if started && !wasIdle {
				t.Fatalf("seed %d step %d: move started from state %v", seed, step, p.State())
			}

			sched.Advance(sched.Now() + frameStep)
			ps.Update(sched.Now())

			if p.CurrentIndex < 0 || p.CurrentIndex > n-1 {
				t.Fatalf("seed %d step %d: CurrentIndex %d out of [0, %d]", seed, step, p.CurrentIndex, n-1)
			}
			if p.Target != p.Stands[p.CurrentIndex] {
				t.Fatalf("seed %d step %d: Target %v is not stand %d", seed, step, p.Target, p.CurrentIndex)
			}
			if !p.Moving && p.Position != p.Target {
				t.Fatalf("seed %d step %d: idle at %v, want snapped to %v", seed, step, p.Position, p.Target)
			}
			if p.HasWon && (p.Moving || p.CurrentIndex != n-1) {
				t.Fatalf("seed %d step %d: won with moving=%v index=%d", seed, step, p.Moving, p.CurrentIndex)
			}
		}
	}
}
