package main

import (
	"github.com/gdamore/tcell/v2"

	"wolfcast/internal/camera"
)

// Terminals report presses and auto-repeat but no releases, so a key counts
// as held until holdTime passes without another press.
const holdTime = 0.15

type action int

const (
	actForward action = iota
	actBackward
	actTurnLeft
	actTurnRight
	actStrafeLeft
	actStrafeRight
	actionCount
)

type heldKeys [actionCount]float64

func (h *heldKeys) press(a action) {
	h[a] = holdTime
}

func (h *heldKeys) decay(dt float64) {
	for i := range h {
		h[i] -= dt
		if h[i] < 0 {
			h[i] = 0
		}
	}
}

func (h *heldKeys) input() camera.Input {
	return camera.Input{
		Forward:     h[actForward] > 0,
		Backward:    h[actBackward] > 0,
		TurnLeft:    h[actTurnLeft] > 0,
		TurnRight:   h[actTurnRight] > 0,
		StrafeLeft:  h[actStrafeLeft] > 0,
		StrafeRight: h[actStrafeRight] > 0,
	}
}

func actionForKey(key tcell.Key, r rune) (action, bool) {
	switch key {
	case tcell.KeyUp:
		return actForward, true
	case tcell.KeyDown:
		return actBackward, true
	case tcell.KeyLeft:
		return actTurnLeft, true
	case tcell.KeyRight:
		return actTurnRight, true
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return actForward, true
		case 's', 'S':
			return actBackward, true
		case 'a', 'A':
			return actTurnLeft, true
		case 'd', 'D':
			return actTurnRight, true
		case 'z', 'Z':
			return actStrafeLeft, true
		case 'c', 'C':
			return actStrafeRight, true
		}
	}
	return 0, false
}
