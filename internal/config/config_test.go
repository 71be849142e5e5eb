package config

import (
	"errors"
	"testing"

	"donut/anim"
	"donut/loop"
)

func TestParseSettingsFull(t *testing.T) {
	u, err := ParseSettings(`{"fps": 30, "rotation_speed": 2.5, "color_speed": 0.5}`)
	if err != nil {
		t.Fatalf("ParseSettings: %v", err)
	}
	if u.FrameRate == nil || *u.FrameRate != 30 {
		t.Fatalf("fps = %v", u.FrameRate)
	}
	if u.RotationSpeed == nil || *u.RotationSpeed != 2.5 {
		t.Fatalf("rotation = %v", u.RotationSpeed)
	}
	if u.ColorSpeed == nil || *u.ColorSpeed != 0.5 {
		t.Fatalf("color = %v", u.ColorSpeed)
	}
}

func TestParseSettingsPartialAndAlias(t *testing.T) {
	u, err := ParseSettings(`{"frame_rate": 44.6}`)
	if err != nil {
		t.Fatalf("ParseSettings: %v", err)
	}
	if u.FrameRate == nil || *u.FrameRate != 45 {
		t.Fatalf("fps = %v; want 45", u.FrameRate)
	}
	if u.RotationSpeed != nil || u.ColorSpeed != nil {
		t.Fatalf("unset fields leaked: %v", u)
	}

	u, _ = ParseSettings(`{"fps": 20, "frame_rate": 90}`)
	if *u.FrameRate != 20 {
		t.Fatalf("fps = %d; want fps to win over frame_rate", *u.FrameRate)
	}
}

func TestParseSettingsLeavesClampingToSettings(t *testing.T) {
	u, err := ParseSettings(`{"fps": 200, "rotation_speed": 0.01}`)
	if err != nil {
		t.Fatalf("ParseSettings: %v", err)
	}
	s := anim.DefaultSettings()
	s.Apply(u)
	if s.FrameRate != 120 || s.RotationSpeed != 0.1 || s.ColorSpeed != 1 {
		t.Fatalf("settings = %+v", s)
	}
}

func TestParseSettingsHugeFPSDoesNotOverflow(t *testing.T) {
	u, err := ParseSettings(`{"fps": 1e300}`)
	if err != nil {
		t.Fatalf("ParseSettings: %v", err)
	}
	if *u.FrameRate <= 0 {
		t.Fatalf("fps = %d; want large positive", *u.FrameRate)
	}
}

func TestParseSettingsErrors(t *testing.T) {
	if _, err := ParseSettings("   "); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v; want ErrEmpty", err)
	}
	for _, raw := range []string{`{"fps":`, `[1,2]`, `{"fps":"fast"}`, `{} {}`} {
		if _, err := ParseSettings(raw); err == nil {
			t.Fatalf("ParseSettings(%q) succeeded", raw)
		}
	}
}

func TestParseControl(t *testing.T) {
	tcs := []struct {
		line string
		op   loop.Op
	}{
		{`{"action":"pause"}`, loop.OpPause},
		{`{"action":"resume"}`, loop.OpResume},
		{`{"action":"toggle"}`, loop.OpTogglePause},
		{`{"action":"stop"}`, loop.OpStop},
		{`{"action":"START"}`, loop.OpStart},
		{`{"action":"update","fps":15}`, loop.OpUpdate},
		{`{"action":"status"}`, loop.OpStatus},
	}
	for _, tc := range tcs {
		cmd, err := ParseControl(tc.line)
		if err != nil {
			t.Fatalf("ParseControl(%s): %v", tc.line, err)
		}
		if cmd.Op != tc.op {
			t.Fatalf("ParseControl(%s).Op = %v; want %v", tc.line, cmd.Op, tc.op)
		}
	}
}

func TestParseControlCarriesSettings(t *testing.T) {
	cmd, err := ParseControl(`{"action":"update","color_speed":2}`)
	if err != nil {
		t.Fatalf("ParseControl: %v", err)
	}
	if cmd.Update.ColorSpeed == nil || *cmd.Update.ColorSpeed != 2 || cmd.Update.FrameRate != nil {
		t.Fatalf("update = %v", cmd.Update)
	}

	cmd, _ = ParseControl(`{"action":"pause","fps":15}`)
	if !cmd.Update.Empty() {
		t.Fatalf("pause carried settings: %v", cmd.Update)
	}
}

func TestParseControlErrors(t *testing.T) {
	if _, err := ParseControl(""); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v; want ErrEmpty", err)
	}
	for _, line := range []string{`{}`, `{"action":"explode"}`, `not json`} {
		if _, err := ParseControl(line); err == nil {
			t.Fatalf("ParseControl(%q) succeeded", line)
		}
	}
}
