package tetris_test

import (
	"fmt"
	"testing"

	tetris "github.com/jauhararifin/bagtetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dot = tetris.Matrix{{true}}

func fillCell(p *tetris.Playfield, row, col int, id tetris.PieceID) {
	if !p.Place(dot, row, col, id) {
		panic(fmt.Sprintf("cannot fill %d,%d", row, col))
	}
}

func fillRow(p *tetris.Playfield, row int, id tetris.PieceID, except ...int) {
	skip := map[int]bool{}
	for _, c := range except {
		skip[c] = true
	}
	for c := 0; c < p.Cols(); c++ {
		if !skip[c] {
			fillCell(p, row, c, id)
		}
	}
}

// bounds returns the occupied column span and the lowest occupied row of m.
func bounds(m tetris.Matrix) (minCol, maxCol, maxRow int) {
	minCol, maxCol, maxRow = len(m), -1, -1
	for r := range m {
		for c := range m[r] {
			if !m[r][c] {
				continue
			}
			if c < minCol {
				minCol = c
			}
			if c > maxCol {
				maxCol = c
			}
			if r > maxRow {
				maxRow = r
			}
		}
	}
	return
}

func firstCell(m tetris.Matrix) (int, int) {
	for r := range m {
		for c := range m[r] {
			if m[r][c] {
				return r, c
			}
		}
	}
	return -1, -1
}

func TestIsValidMoveAllPiecesAllRotations(t *testing.T) {
	for _, id := range tetris.AllPieces {
		m := tetris.Template(id)
		for rotation := 0; rotation < 4; rotation++ {
			t.Run(fmt.Sprintf("%s/rot%d", id, rotation), func(t *testing.T) {
				p := tetris.NewPlayfield(20, 10)
				minCol, maxCol, maxRow := bounds(m)

				assert.True(t, p.IsValidMove(m, 5, 3), "centered on empty field")
				assert.True(t, p.IsValidMove(m, 5, -minCol), "touching left wall")
				assert.True(t, p.IsValidMove(m, 5, 9-maxCol), "touching right wall")
				assert.True(t, p.IsValidMove(m, 19-maxRow, 3), "resting on the floor")

				assert.False(t, p.IsValidMove(m, 5, -minCol-1), "through left wall")
				assert.False(t, p.IsValidMove(m, 5, 10-maxCol), "through right wall")
				assert.False(t, p.IsValidMove(m, 20-maxRow, 3), "through the floor")

				r, c := firstCell(m)
				fillCell(p, 5+r, 3+c, tetris.PieceGarbage)
				assert.False(t, p.IsValidMove(m, 5, 3), "overlapping a locked cell")
			})
			m = tetris.Rotate(m)
		}
	}
}

func TestIsValidMoveAboveField(t *testing.T) {
	p := tetris.NewPlayfield(20, 10)
	o := tetris.Template(tetris.PieceO)

	assert.True(t, p.IsValidMove(o, -2, 4))
	assert.True(t, p.IsValidMove(o, -6, 4), "rows above the buffer read as empty")
	assert.False(t, p.IsValidMove(o, -2, -1))
	assert.False(t, p.IsValidMove(o, -2, 9))
}

func TestPlaceWritesTag(t *testing.T) {
	p := tetris.NewPlayfield(20, 10)
	ok := p.Place(tetris.Template(tetris.PieceO), 18, 4, tetris.PieceO)
	require.True(t, ok)
	for _, rc := range [][2]int{{18, 4}, {18, 5}, {19, 4}, {19, 5}} {
		assert.Equal(t, tetris.PieceO, p.Cell(rc[0], rc[1]))
	}
	assert.Equal(t, tetris.PieceEmpty, p.Cell(17, 4))
}

func TestPlaceAboveFieldTopsOut(t *testing.T) {
	p := tetris.NewPlayfield(20, 10)
	assert.False(t, p.Place(tetris.Template(tetris.PieceO), -1, 4, tetris.PieceO))
	assert.Equal(t, tetris.PieceEmpty, p.Cell(0, 4), "aborted before the visible cells")
}

func TestClearLinesSingleBottomRow(t *testing.T) {
	p := tetris.NewPlayfield(20, 10)
	fillRow(p, 19, tetris.PieceI)
	fillCell(p, 18, 2, tetris.PieceT)
	fillCell(p, 10, 7, tetris.PieceS)

	assert.Equal(t, 1, p.ClearLines())

	assert.Equal(t, tetris.PieceT, p.Cell(19, 2))
	assert.Equal(t, tetris.PieceS, p.Cell(11, 7))
	assert.Equal(t, tetris.PieceEmpty, p.Cell(18, 2))
	assert.Equal(t, tetris.PieceEmpty, p.Cell(10, 7))
	for c := 0; c < 10; c++ {
		if c != 2 {
			assert.Equal(t, tetris.PieceEmpty, p.Cell(19, c))
		}
		assert.Equal(t, tetris.PieceEmpty, p.Cell(0, c))
	}
}

func TestClearLinesOnlyFullRow(t *testing.T) {
	p := tetris.NewPlayfield(20, 10)
	fillRow(p, 19, tetris.PieceI)

	assert.Equal(t, 1, p.ClearLines())

	for r := 0; r < 20; r++ {
		for c := 0; c < 10; c++ {
			assert.Equal(t, tetris.PieceEmpty, p.Cell(r, c))
		}
	}
}

func TestClearLinesAdjacentAndSeparated(t *testing.T) {
	p := tetris.NewPlayfield(20, 10)
	fillRow(p, 19, tetris.PieceJ)
	fillRow(p, 18, tetris.PieceL)
	fillRow(p, 17, tetris.PieceZ, 0)
	fillRow(p, 16, tetris.PieceO)

	assert.Equal(t, 3, p.ClearLines())

	assert.Equal(t, tetris.PieceEmpty, p.Cell(19, 0))
	for c := 1; c < 10; c++ {
		assert.Equal(t, tetris.PieceZ, p.Cell(19, c))
	}
	for r := 0; r < 19; r++ {
		for c := 0; c < 10; c++ {
			assert.Equal(t, tetris.PieceEmpty, p.Cell(r, c), "row %d col %d", r, c)
		}
	}
}

func TestClearLinesNothingFull(t *testing.T) {
	p := tetris.NewPlayfield(20, 10)
	fillRow(p, 19, tetris.PieceJ, 9)
	before := p.Snapshot()
	assert.Equal(t, 0, p.ClearLines())
	assert.Equal(t, before, p.Snapshot())
}

func TestRaiseGarbage(t *testing.T) {
	p := tetris.NewPlayfield(20, 10)
	fillCell(p, 19, 0, tetris.PieceT)

	require.True(t, p.RaiseGarbage(3))

	assert.Equal(t, tetris.PieceT, p.Cell(18, 0))
	for c := 0; c < 10; c++ {
		want := tetris.PieceGarbage
		if c == 3 {
			want = tetris.PieceEmpty
		}
		assert.Equal(t, want, p.Cell(19, c))
	}
	assert.Equal(t, 0, p.ClearLines(), "garbage rows keep their hole")
}

func TestRaiseGarbageTopsOut(t *testing.T) {
	p := tetris.NewPlayfield(20, 10)
	fillCell(p, 0, 5, tetris.PieceT)
	before := p.Snapshot()

	assert.False(t, p.RaiseGarbage(0))
	assert.Equal(t, before, p.Snapshot())
}

func TestSnapshotRestore(t *testing.T) {
	p := tetris.NewPlayfield(20, 10)
	fillRow(p, 19, tetris.PieceL, 4)
	snap := p.Snapshot()
	require.Len(t, snap, 20)

	q := tetris.NewPlayfield(20, 10)
	q.Restore(snap)
	assert.Equal(t, snap, q.Snapshot())

	snap[19][0] = tetris.PieceEmpty
	assert.Equal(t, tetris.PieceL, p.Cell(19, 0), "snapshot is a copy")
}
