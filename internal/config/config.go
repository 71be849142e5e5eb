// Package config decodes the JSON settings payload and control commands.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"donut/anim"
	"donut/loop"
)

// ErrEmpty is returned for blank input.
var ErrEmpty = errors.New("config: empty input")

type settingsJSON struct {
	FPS           *float64 `json:"fps"`
	FrameRate     *float64 `json:"frame_rate"`
	RotationSpeed *float64 `json:"rotation_speed"`
	ColorSpeed    *float64 `json:"color_speed"`
}

func (s settingsJSON) update() anim.Update {
	var u anim.Update
	fps := s.FPS
	if fps == nil {
		fps = s.FrameRate
	}
	if fps != nil {
		// Clamp before converting so huge values cannot overflow int.
		v := int(math.Round(math.Max(math.Min(*fps, math.MaxInt32), math.MinInt32)))
		u.FrameRate = &v
	}
	u.RotationSpeed = s.RotationSpeed
	u.ColorSpeed = s.ColorSpeed
	return u
}

// ParseSettings decodes a settings object such as
// {"fps":30,"rotation_speed":2,"color_speed":0.5}. Every field is optional;
// "frame_rate" is accepted for "fps". Values are not clamped here.
func ParseSettings(raw string) (anim.Update, error) {
	var s settingsJSON
	if err := decode(raw, &s); err != nil {
		return anim.Update{}, fmt.Errorf("config: settings: %w", err)
	}
	return s.update(), nil
}

type controlJSON struct {
	Action string `json:"action"`
	settingsJSON
}

// ParseControl decodes one control line such as {"action":"pause"}.
// Settings fields are honored for "start" and "update".
func ParseControl(line string) (loop.Command, error) {
	var c controlJSON
	if err := decode(line, &c); err != nil {
		return loop.Command{}, fmt.Errorf("config: control: %w", err)
	}
	var op loop.Op
	switch strings.ToLower(c.Action) {
	case "pause":
		op = loop.OpPause
	case "resume":
		op = loop.OpResume
	case "toggle":
		op = loop.OpTogglePause
	case "stop":
		op = loop.OpStop
	case "start":
		op = loop.OpStart
	case "update":
		op = loop.OpUpdate
	case "status":
		op = loop.OpStatus
	case "":
		return loop.Command{}, errors.New("config: control: missing action")
	default:
		return loop.Command{}, fmt.Errorf("config: control: invalid action %q", c.Action)
	}
	cmd := loop.Command{Op: op}
	if op == loop.OpStart || op == loop.OpUpdate {
		cmd.Update = c.update()
	}
	return cmd, nil
}

func decode(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrEmpty
	}
	return json.Unmarshal([]byte(raw), v)
}
