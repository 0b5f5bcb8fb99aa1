// Package termui draws a tetris session in a terminal using termloop.
package termui

import (
	"github.com/JoelOtter/termloop"

	tetris "github.com/jauhararifin/bagtetris"
)

// Source is what a Board reads every frame. *tetris.Session satisfies it.
type Source interface {
	Render() [][]tetris.PieceID
	Next() tetris.PieceID
	IsOver() bool
}

type IntentHandler func(intent tetris.Intent)

// Board is a termloop entity showing one playfield with a next-piece box on
// its right.
type Board struct {
	source     Source
	x, y       int
	rows, cols int

	onIntent IntentHandler
	onTick   func()

	titleText *termloop.Text
	overText  *termloop.Text
}

type BoardOption func(*Board)

func WithTitle(title string) BoardOption {
	return func(b *Board) {
		b.titleText.SetText(title)
	}
}

// WithIntentHandler forwards arrow keys and space as intents.
func WithIntentHandler(handler IntentHandler) BoardOption {
	return func(b *Board) {
		b.onIntent = handler
	}
}

// WithTickHandler runs f once per termloop tick, after input handling.
func WithTickHandler(f func()) BoardOption {
	return func(b *Board) {
		b.onTick = f
	}
}

func NewBoard(source Source, x, y, rows, cols int, options ...BoardOption) *Board {
	b := &Board{
		source: source,
		x:      x,
		y:      y,
		rows:   rows,
		cols:   cols,

		titleText: termloop.NewText(x+cols+3, y+7, "", termloop.ColorWhite, termloop.ColorDefault),
		overText:  termloop.NewText(x+1, y+rows/2+1, "GAME OVER!", termloop.ColorWhite, termloop.ColorRed),
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// KeyIntent maps a key press to an intent.
func KeyIntent(key termloop.Key) (tetris.Intent, bool) {
	switch key {
	case termloop.KeyArrowLeft:
		return tetris.IntentMoveLeft, true
	case termloop.KeyArrowRight:
		return tetris.IntentMoveRight, true
	case termloop.KeyArrowUp:
		return tetris.IntentRotate, true
	case termloop.KeyArrowDown:
		return tetris.IntentSoftDrop, true
	case termloop.KeySpace:
		return tetris.IntentHardDrop, true
	}
	return 0, false
}

// Attr is the terminal color of a piece. Terminals have no orange, so L
// borrows bold yellow.
func Attr(id tetris.PieceID) termloop.Attr {
	switch id {
	case tetris.PieceI:
		return termloop.ColorCyan
	case tetris.PieceO:
		return termloop.ColorYellow
	case tetris.PieceT:
		return termloop.ColorMagenta
	case tetris.PieceS:
		return termloop.ColorGreen
	case tetris.PieceZ:
		return termloop.ColorRed
	case tetris.PieceL:
		return termloop.ColorYellow | termloop.AttrBold
	case tetris.PieceJ:
		return termloop.ColorBlue
	}
	return termloop.ColorWhite
}

func (b *Board) Tick(ev termloop.Event) {
	if ev.Type == termloop.EventKey && b.onIntent != nil {
		if intent, ok := KeyIntent(ev.Key); ok {
			b.onIntent(intent)
		}
	}
	if b.onTick != nil {
		b.onTick()
	}
}

func (b *Board) Draw(s *termloop.Screen) {
	b.drawFrame(s, b.x, b.y, b.cols+2, b.rows+2)
	b.drawFrame(s, b.x+b.cols+3, b.y, 6, 6)

	next := tetris.Template(b.source.Next())
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			filled := y < len(next) && x < len(next[y]) && next[y][x]
			s.RenderCell(b.x+b.cols+4+x, b.y+1+y, cellFor(b.source.Next(), filled))
		}
	}

	tiles := b.source.Render()
	for y := 0; y < b.rows && y < len(tiles); y++ {
		for x := 0; x < b.cols && x < len(tiles[y]); x++ {
			id := tiles[y][x]
			s.RenderCell(b.x+1+x, b.y+1+y, cellFor(id, id != tetris.PieceEmpty))
		}
	}

	b.titleText.Draw(s)
	if b.source.IsOver() {
		b.overText.Draw(s)
	}
}

func (b *Board) drawFrame(s *termloop.Screen, x, y, width, height int) {
	border := &termloop.Cell{Fg: termloop.ColorWhite, Bg: termloop.ColorBlack, Ch: '+'}
	for i := 0; i < width; i++ {
		s.RenderCell(x+i, y, border)
		s.RenderCell(x+i, y+height-1, border)
	}
	for i := 0; i < height; i++ {
		s.RenderCell(x, y+i, border)
		s.RenderCell(x+width-1, y+i, border)
	}
}

func cellFor(id tetris.PieceID, filled bool) *termloop.Cell {
	if !filled {
		return &termloop.Cell{Fg: termloop.ColorWhite, Bg: termloop.ColorBlack, Ch: ' '}
	}
	ch := '#'
	if id == tetris.PieceGarbage {
		ch = '%'
	}
	return &termloop.Cell{Fg: Attr(id), Bg: termloop.ColorBlack, Ch: ch}
}
