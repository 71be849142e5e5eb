package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"

	"donut/anim"
	"donut/internal/config"
	"donut/loop"
)

type replySettings struct {
	FPS           int     `json:"fps"`
	RotationSpeed float64 `json:"rotation_speed"`
	ColorSpeed    float64 `json:"color_speed"`
}

type controlReply struct {
	Action   string         `json:"action,omitempty"`
	OK       bool           `json:"ok"`
	Message  string         `json:"message,omitempty"`
	Error    string         `json:"error,omitempty"`
	State    string         `json:"state,omitempty"`
	Settings *replySettings `json:"settings,omitempty"`
}

func newControlReply(op loop.Op, res loop.Result) controlReply {
	r := controlReply{
		Action:   op.String(),
		OK:       res.OK,
		State:    res.State.String(),
		Settings: settingsReply(res.Settings),
	}
	if res.OK {
		r.Message = res.Message
	} else {
		r.Error = res.Message
	}
	return r
}

func settingsReply(s anim.Settings) *replySettings {
	return &replySettings{FPS: s.FrameRate, RotationSpeed: s.RotationSpeed, ColorSpeed: s.ColorSpeed}
}

// readControl forwards JSON control lines from rw to l until EOF, a stop
// command, the loop finishing or ctx is done. Each line gets one JSON reply,
// written after the loop has applied the command.
//
// The scanner has no way to interrupt a Read, so on stdin the goroutine stays
// parked until the stream closes. It forwards nothing once l is done.
func readControl(ctx context.Context, rw io.ReadWriter, l *loop.Loop, log *slog.Logger) {
	enc := json.NewEncoder(rw)
	sc := bufio.NewScanner(rw)
	for sc.Scan() {
		if ctx.Err() != nil {
			return
		}
		cmd, err := config.ParseControl(sc.Text())
		if errors.Is(err, config.ErrEmpty) {
			continue
		}
		if err != nil {
			log.Warn("control line ignored", "err", err)
			enc.Encode(controlReply{Error: err.Error()})
			continue
		}

		reply := make(chan loop.Result, 1)
		cmd.Reply = reply
		if !l.Submit(cmd) {
			log.Warn("control queue full", "action", cmd.Op)
			enc.Encode(controlReply{Action: cmd.Op.String(), Error: "busy"})
			continue
		}
		log.Debug("control", "action", cmd.Op, "settings", cmd.Update)

		res, ok := awaitReply(ctx, l, reply)
		if !ok {
			return
		}
		enc.Encode(newControlReply(cmd.Op, res))
		if res.State == loop.Stopped {
			return
		}
	}
	if err := sc.Err(); err != nil {
		log.Warn("control channel closed", "err", err)
	}
}

// awaitReply waits for the loop to handle a submitted command. A loop that
// stops first answers with a failed result. It reports false when ctx ends.
func awaitReply(ctx context.Context, l *loop.Loop, reply <-chan loop.Result) (loop.Result, bool) {
	select {
	case res := <-reply:
		return res, true
	case <-l.Done():
		// The reply is sent before Done closes, so prefer it when both are ready.
		select {
		case res := <-reply:
			return res, true
		default:
		}
		return loop.Result{Message: "stopped", State: loop.Stopped, Settings: l.Driver().Settings}, true
	case <-ctx.Done():
		return loop.Result{}, false
	}
}
