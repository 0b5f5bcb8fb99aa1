package tetris_test

import (
	"testing"

	tetris "github.com/jauhararifin/bagtetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateSizes(t *testing.T) {
	sizes := map[tetris.PieceID]int{
		tetris.PieceI: 4,
		tetris.PieceJ: 3,
		tetris.PieceL: 3,
		tetris.PieceO: 2,
		tetris.PieceS: 3,
		tetris.PieceZ: 3,
		tetris.PieceT: 3,
	}
	for _, id := range tetris.AllPieces {
		t.Run(id.String(), func(t *testing.T) {
			m := tetris.Template(id)
			require.Len(t, m, sizes[id])
			cells := 0
			for _, row := range m {
				assert.Len(t, row, sizes[id])
				for _, filled := range row {
					if filled {
						cells++
					}
				}
			}
			assert.Equal(t, 4, cells)
		})
	}
}

func TestTemplateIsACopy(t *testing.T) {
	m := tetris.Template(tetris.PieceT)
	m[0][0] = true
	assert.False(t, tetris.Template(tetris.PieceT)[0][0])
	assert.Nil(t, tetris.Template(tetris.PieceGarbage))
}

func TestColors(t *testing.T) {
	for _, id := range tetris.AllPieces {
		assert.NotZero(t, tetris.Color(id).A, "piece %s has no color", id)
	}
	assert.NotEqual(t, tetris.Color(tetris.PieceI), tetris.Color(tetris.PieceO))
	assert.Zero(t, tetris.Color(tetris.PieceEmpty).A)
}

func TestRotateClockwise(t *testing.T) {
	rotated := tetris.Rotate(tetris.Template(tetris.PieceT))
	assert.Equal(t, tetris.Matrix{
		{false, true, false},
		{false, true, true},
		{false, true, false},
	}, rotated)

	rotated = tetris.Rotate(tetris.Template(tetris.PieceI))
	for i := range rotated {
		assert.Equal(t, []bool{false, false, true, false}, rotated[i])
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, id := range tetris.AllPieces {
		t.Run(id.String(), func(t *testing.T) {
			original := tetris.Template(id)
			m := original
			for i := 0; i < 4; i++ {
				m = tetris.Rotate(m)
			}
			assert.True(t, original.Equal(m))
			assert.True(t, tetris.Template(id).Equal(original), "rotation mutated its input")
		})
	}
}

func TestSpawn(t *testing.T) {
	tests := []struct {
		id       tetris.PieceID
		row, col int
	}{
		{tetris.PieceO, -2, 4},
		{tetris.PieceI, -1, 3},
		{tetris.PieceT, -2, 3},
		{tetris.PieceJ, -2, 3},
		{tetris.PieceZ, -2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			p := tetris.Spawn(tt.id, 10)
			assert.Equal(t, tt.id, p.ID)
			assert.Equal(t, tt.row, p.Row)
			assert.Equal(t, tt.col, p.Col)
			assert.True(t, tetris.Template(tt.id).Equal(p.Matrix))
		})
	}
}
