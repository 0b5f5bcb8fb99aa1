package tetris

// HiddenRows is the height of the buffer above the visible field where pieces
// spawn.
const HiddenRows = 2

// Playfield is the grid of locked cells. Visible row r is stored at physical
// row r+HiddenRows; rows above the buffer read as empty.
type Playfield struct {
	rows, cols int
	cells      [][]PieceID
}

func NewPlayfield(rows, cols int) *Playfield {
	cells := make([][]PieceID, rows+HiddenRows)
	for i := range cells {
		cells[i] = make([]PieceID, cols)
	}
	return &Playfield{rows: rows, cols: cols, cells: cells}
}

func (p *Playfield) Rows() int { return p.rows }
func (p *Playfield) Cols() int { return p.cols }

// Cell returns the tag at visible coordinates. Anything outside the stored
// area, left/right walls included, reads as empty.
func (p *Playfield) Cell(row, col int) PieceID {
	y := row + HiddenRows
	if y < 0 || y >= len(p.cells) || col < 0 || col >= p.cols {
		return PieceEmpty
	}
	return p.cells[y][col]
}

func (p *Playfield) set(row, col int, id PieceID) {
	p.cells[row+HiddenRows][col] = id
}

// IsValidMove reports whether m fits with its top-left corner at (row, col).
// Cells above the visible field are checked against the walls only.
func (p *Playfield) IsValidMove(m Matrix, row, col int) bool {
	for r := range m {
		for c := range m[r] {
			if !m[r][c] {
				continue
			}
			x, y := col+c, row+r
			if x < 0 || x >= p.cols || y >= p.rows {
				return false
			}
			if p.Cell(y, x) != PieceEmpty {
				return false
			}
		}
	}
	return true
}

// Place writes id into every cell covered by m. It stops at the first cell
// that lies above the visible field and returns false; cells written before
// that point stay written.
func (p *Playfield) Place(m Matrix, row, col int, id PieceID) bool {
	for r := range m {
		for c := range m[r] {
			if !m[r][c] {
				continue
			}
			if row+r < 0 {
				return false
			}
			p.set(row+r, col+c, id)
		}
	}
	return true
}

// ClearLines removes every full visible row, pulling the rows above it down,
// and returns how many rows were removed.
func (p *Playfield) ClearLines() int {
	cleared := 0
	for row := p.rows - 1; row >= 0; {
		if !p.isRowFull(row) {
			row--
			continue
		}
		for r := row; r >= 0; r-- {
			copy(p.cells[r+HiddenRows], p.cells[r+HiddenRows-1])
		}
		cleared++
	}
	return cleared
}

func (p *Playfield) isRowFull(row int) bool {
	for _, cell := range p.cells[row+HiddenRows] {
		if cell == PieceEmpty {
			return false
		}
	}
	return true
}

// RaiseGarbage pushes the visible rows up by one and fills the bottom row with
// garbage, leaving hole empty. It returns false, without touching the grid,
// when the top visible row is occupied.
func (p *Playfield) RaiseGarbage(hole int) bool {
	for _, cell := range p.cells[HiddenRows] {
		if cell != PieceEmpty {
			return false
		}
	}
	for y := HiddenRows; y < len(p.cells)-1; y++ {
		copy(p.cells[y], p.cells[y+1])
	}
	bottom := p.cells[len(p.cells)-1]
	for x := range bottom {
		bottom[x] = PieceGarbage
	}
	if hole >= 0 && hole < p.cols {
		bottom[hole] = PieceEmpty
	}
	return true
}

// Snapshot copies the visible rows.
func (p *Playfield) Snapshot() [][]PieceID {
	out := make([][]PieceID, p.rows)
	for r := range out {
		out[r] = make([]PieceID, p.cols)
		copy(out[r], p.cells[r+HiddenRows])
	}
	return out
}

// Restore overwrites the visible rows from rows, which must match the field
// size. The hidden buffer is emptied.
func (p *Playfield) Restore(rows [][]PieceID) {
	for y := 0; y < HiddenRows; y++ {
		for x := range p.cells[y] {
			p.cells[y][x] = PieceEmpty
		}
	}
	for r := 0; r < p.rows && r < len(rows); r++ {
		copy(p.cells[r+HiddenRows], rows[r])
	}
}
