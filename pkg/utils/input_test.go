package utils

import (
	"testing"
)

func TestPointerDrag_InitialState(t *testing.T) {
	var d PointerDrag
	if d.IsDragging() {
		t.Error("Expected IsDragging to be false initially")
	}
	if dx, dy := d.Update(false, 10, 10); dx != 0 || dy != 0 {
		t.Errorf("未按下时位移应为 0, got (%d, %d)", dx, dy)
	}
}

func TestPointerDrag_Deltas(t *testing.T) {
	var d PointerDrag

	// 刚按下：只记录起点
	if dx, dy := d.Update(true, 100, 200); dx != 0 || dy != 0 {
		t.Errorf("按下帧位移应为 0, got (%d, %d)", dx, dy)
	}
	if !d.IsDragging() {
		t.Fatal("按下后应处于拖动状态")
	}

	if dx, dy := d.Update(true, 130, 190); dx != 30 || dy != -10 {
		t.Errorf("第一次移动: got (%d, %d), want (30, -10)", dx, dy)
	}
	if dx, dy := d.Update(true, 130, 190); dx != 0 || dy != 0 {
		t.Errorf("静止帧: got (%d, %d), want (0, 0)", dx, dy)
	}

	// 释放
	d.Update(false, 0, 0)
	if d.IsDragging() {
		t.Error("释放后不应处于拖动状态")
	}

	// 再次按下不应产生跳变
	if dx, dy := d.Update(true, 500, 500); dx != 0 || dy != 0 {
		t.Errorf("重新按下: got (%d, %d), want (0, 0)", dx, dy)
	}
}

func TestPointerDrag_Reset(t *testing.T) {
	var d PointerDrag
	d.Update(true, 0, 0)
	d.Reset()
	if d.IsDragging() {
		t.Error("Reset 后不应处于拖动状态")
	}
	if dx, dy := d.Update(true, 50, 50); dx != 0 || dy != 0 {
		t.Errorf("Reset 后首帧: got (%d, %d), want (0, 0)", dx, dy)
	}
}
