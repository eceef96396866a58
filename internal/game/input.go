package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"wolfcast/internal/camera"
	"wolfcast/internal/game/keytracker"
)

// InputHandler handles all user input for the game
type InputHandler struct {
	fpsKeyTracker  keytracker.KeyStateTracker
	perfKeyTracker keytracker.KeyStateTracker
}

// NewInputHandler creates a new input handler
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Movement snapshots the held movement keys for this frame.
func (ih *InputHandler) Movement() camera.Input {
	return camera.Input{
		Forward:     ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Backward:    ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		TurnLeft:    ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		TurnRight:   ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		StrafeLeft:  ebiten.IsKeyPressed(ebiten.KeyQ),
		StrafeRight: ebiten.IsKeyPressed(ebiten.KeyE),
	}
}

// QuitRequested reports whether Escape is held.
func (ih *InputHandler) QuitRequested() bool {
	return ebiten.IsKeyPressed(ebiten.KeyEscape)
}

// ToggleFPS reports a fresh press of F.
func (ih *InputHandler) ToggleFPS() bool {
	return ih.fpsKeyTracker.IsKeyJustPressed(ebiten.KeyF)
}

// DumpPerf reports a fresh press of P.
func (ih *InputHandler) DumpPerf() bool {
	return ih.perfKeyTracker.IsKeyJustPressed(ebiten.KeyP)
}
