package components

import "github.com/gonewx/ascent/pkg/ecs"

// CharacterComponent 角色模型的各个部件
// 部件都以角色根实体为父节点
type CharacterComponent struct {
	Torso    ecs.EntityID
	Head     ecs.EntityID
	LeftArm  ecs.EntityID
	RightArm ecs.EntityID
	LeftLeg  ecs.EntityID
	RightLeg ecs.EntityID
}

// Limb 一个摆动的肢体
// Sign 为摆动相位：左腿与右臂同相，右腿与左臂反相
type Limb struct {
	ID   ecs.EntityID
	Sign float64
}

// Limbs 返回四肢
func (c *CharacterComponent) Limbs() [4]Limb {
	return [4]Limb{
		{c.LeftLeg, 1},
		{c.RightLeg, -1},
		{c.LeftArm, -1},
		{c.RightArm, 1},
	}
}
