package ecs

import (
	"testing"
)

func TestGenericAddAndGet(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 1, Y: 2})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok {
		t.Fatal("Component should be found")
	}
	if pos.X != 1 || pos.Y != 2 {
		t.Errorf("Component data mismatch: got (%v, %v)", pos.X, pos.Y)
	}

	// 组件为指针，修改对后续读取可见
	pos.X = 10
	again, _ := GetComponent[*testPositionComponent](em, id)
	if again.X != 10 {
		t.Errorf("Pointer component not shared: got %v", again.X)
	}

	if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
		t.Error("Velocity component should not be found")
	}
	if _, ok := GetComponent[*testPositionComponent](em, EntityID(99)); ok {
		t.Error("Unknown entity should not have components")
	}
}

// TestGenericMatchesReflection 泛型与反射接口使用同一存储
func TestGenericMatchesReflection(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testPositionComponent{})

	if !HasComponent[*testVelocityComponent](em, id1) {
		t.Error("Generic HasComponent should see reflection-added component")
	}

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("GetEntitiesWith2: got %v, want [%d]", both, id1)
	}

	pos := GetEntitiesWith1[*testPositionComponent](em)
	if len(pos) != 2 || pos[0] != id1 || pos[1] != id2 {
		t.Errorf("GetEntitiesWith1: got %v, want [%d %d]", pos, id1, id2)
	}

	RemoveComponent[*testVelocityComponent](em, id1)
	if HasComponent[*testVelocityComponent](em, id1) {
		t.Error("Component should be removed")
	}
	if got := GetEntitiesWith3[*testPositionComponent, *testVelocityComponent, *testPositionComponent](em); len(got) != 0 {
		t.Errorf("GetEntitiesWith3: got %v, want none", got)
	}
}

// BenchmarkRenderQuery 模拟渲染系统每帧的查询与读取
func BenchmarkRenderQuery(b *testing.B) {
	em := NewEntityManager()
	for i := 0; i < 300; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, id := range GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em) {
			pos, _ := GetComponent[*testPositionComponent](em, id)
			pos.Y += 1
		}
	}
}
