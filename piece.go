package tetris

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// PieceID tags a tetromino kind. It is also the value stored in a playfield
// cell, so the renderer can look the color up later.
type PieceID byte

const (
	PieceEmpty   PieceID = 0
	PieceI       PieceID = 'I'
	PieceJ       PieceID = 'J'
	PieceL       PieceID = 'L'
	PieceO       PieceID = 'O'
	PieceS       PieceID = 'S'
	PieceZ       PieceID = 'Z'
	PieceT       PieceID = 'T'
	PieceGarbage PieceID = 'G'
)

// AllPieces is the refill order of a sequence bag.
var AllPieces = []PieceID{PieceI, PieceJ, PieceL, PieceO, PieceS, PieceT, PieceZ}

func (p PieceID) String() string {
	if p == PieceEmpty {
		return "."
	}
	return string(rune(p))
}

// Matrix is a square shape mask, indexed [row][col].
type Matrix [][]bool

var templates = map[PieceID]Matrix{
	PieceI: {{false, false, false, false}, {true, true, true, true}, {false, false, false, false}, {false, false, false, false}},
	PieceJ: {{true, false, false}, {true, true, true}, {false, false, false}},
	PieceL: {{false, false, true}, {true, true, true}, {false, false, false}},
	PieceO: {{true, true}, {true, true}},
	PieceS: {{false, true, true}, {true, true, false}, {false, false, false}},
	PieceZ: {{true, true, false}, {false, true, true}, {false, false, false}},
	PieceT: {{false, true, false}, {true, true, true}, {false, false, false}},
}

var colors = map[PieceID]color.RGBA{
	PieceI:       colornames.Cyan,
	PieceO:       colornames.Yellow,
	PieceT:       colornames.Purple,
	PieceS:       colornames.Green,
	PieceZ:       colornames.Red,
	PieceL:       colornames.Orange,
	PieceJ:       colornames.Blue,
	PieceGarbage: colornames.Gray,
}

// Template returns a fresh copy of the shape template for id, or nil when id
// is not a tetromino.
func Template(id PieceID) Matrix {
	t, ok := templates[id]
	if !ok {
		return nil
	}
	return t.Clone()
}

// Color returns the display color of id. Unknown ids are transparent.
func Color(id PieceID) color.RGBA {
	return colors[id]
}

func (m Matrix) Clone() Matrix {
	c := make(Matrix, len(m))
	for i := range m {
		c[i] = make([]bool, len(m[i]))
		copy(c[i], m[i])
	}
	return c
}

func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(o[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Rotate returns m turned 90 degrees clockwise. m is left untouched.
func Rotate(m Matrix) Matrix {
	n := len(m)
	result := make(Matrix, n)
	for i := 0; i < n; i++ {
		result[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			result[i][j] = m[n-1-j][i]
		}
	}
	return result
}

// Piece is the falling tetromino. Row may be negative while the piece is still
// partly inside the hidden buffer.
type Piece struct {
	ID       PieceID
	Matrix   Matrix
	Row, Col int
}

// Spawn places a fresh id piece centered on a field cols wide. The I piece
// starts one row lower because its top template row is empty.
func Spawn(id PieceID, cols int) Piece {
	m := Template(id)
	row := -2
	if id == PieceI {
		row = -1
	}
	width := 0
	if len(m) > 0 {
		width = len(m[0])
	}
	return Piece{
		ID:     id,
		Matrix: m,
		Row:    row,
		Col:    (cols - width) / 2,
	}
}
