package config

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    HexColor
		wantErr bool
	}{
		{"#dbebf0", 0xdbebf0, false},
		{"0xFFA07A", 0xffa07a, false},
		{"4caf50", 0x4caf50, false},
		{"  #ffffff ", 0xffffff, false},
		{"#fff", 0, true},
		{"#gggggg", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestHexColor_YAML(t *testing.T) {
	var v struct {
		C HexColor `yaml:"c"`
	}
	if err := yaml.Unmarshal([]byte(`c: "#e63946"`), &v); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if v.C != 0xe63946 {
		t.Errorf("got %s, want #e63946", v.C)
	}

	out, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(out), "#e63946") {
		t.Errorf("Marshal: got %q", out)
	}
}

func TestHexColor_Vec(t *testing.T) {
	v := HexColor(0xff8000).Vec()
	if v[0] != 1 || v[2] != 0 {
		t.Errorf("Vec: got %v", v)
	}
	if v[1] < 0.50 || v[1] > 0.51 {
		t.Errorf("Vec green: got %v, want ~0.502", v[1])
	}
}

func TestHexColor_NRGBA(t *testing.T) {
	got := HexColor(0xffa07a).NRGBA()
	if got.R != 0xff || got.G != 0xa0 || got.B != 0x7a || got.A != 0xff {
		t.Errorf("NRGBA: got %v, want {255 160 122 255}", got)
	}
}
