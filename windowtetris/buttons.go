package main

import (
	tetris "github.com/jauhararifin/bagtetris"
)

type button struct {
	label      string
	intent     tetris.Intent
	x, y, w, h int
}

// layoutButtons splits a strip of the given size, starting at top, into one
// button per touch control.
func layoutButtons(top, width, height int) []button {
	controls := []struct {
		label  string
		intent tetris.Intent
	}{
		{"ROTATE", tetris.IntentRotate},
		{"LEFT", tetris.IntentMoveLeft},
		{"RIGHT", tetris.IntentMoveRight},
		{"DOWN", tetris.IntentSoftDrop},
	}
	w := width / len(controls)
	buttons := make([]button, 0, len(controls))
	for i, c := range controls {
		buttons = append(buttons, button{
			label:  c.label,
			intent: c.intent,
			x:      i * w,
			y:      top,
			w:      w,
			h:      height,
		})
	}
	return buttons
}

func buttonAt(buttons []button, x, y int) (tetris.Intent, bool) {
	for _, b := range buttons {
		if x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h {
			return b.intent, true
		}
	}
	return 0, false
}
