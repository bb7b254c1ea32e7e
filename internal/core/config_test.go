package core

import (
	"testing"
	"time"
)

func TestRuntimeConfigWithDefaults(t *testing.T) {
	got := RuntimeConfig{Seed: 9}.WithDefaults()
	expected := RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 9}
	if got != expected {
		t.Errorf("WithDefaults() = %+v, expected %+v", got, expected)
	}

	set := RuntimeConfig{ScreenW: 40, ScreenH: 15, TickRate: 30}
	if set.WithDefaults() != set {
		t.Errorf("WithDefaults() changed explicit values: %+v", set.WithDefaults())
	}
}

func TestRuntimeConfigFrameDuration(t *testing.T) {
	if d := (RuntimeConfig{TickRate: 50}).FrameDuration(); d != 20*time.Millisecond {
		t.Errorf("FrameDuration() = %v, expected 20ms", d)
	}
	if d := (RuntimeConfig{}).FrameDuration(); d != time.Second/60 {
		t.Errorf("zero tick rate FrameDuration() = %v, expected default rate", d)
	}
}
