//go:build !mobile

package utils

import "testing"

func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("ASCENT_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile: got true, want false on desktop")
	}
}

func TestIsMobile_Emulated(t *testing.T) {
	t.Setenv("ASCENT_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile with ASCENT_MOBILE_EMULATE=1: got false, want true")
	}
}
