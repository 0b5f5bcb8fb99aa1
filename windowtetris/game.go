package main

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	tetris "github.com/jauhararifin/bagtetris"
)

const (
	grid         = 32
	buttonHeight = 64
	sidePanel    = 5 * grid
)

type keyBinding struct {
	key    ebiten.Key
	intent tetris.Intent
}

// keyBindings are applied in this order when several keys land on one frame.
var keyBindings = []keyBinding{
	{ebiten.KeyArrowUp, tetris.IntentRotate},
	{ebiten.KeyArrowLeft, tetris.IntentMoveLeft},
	{ebiten.KeyArrowRight, tetris.IntentMoveRight},
	{ebiten.KeyArrowDown, tetris.IntentSoftDrop},
	{ebiten.KeySpace, tetris.IntentHardDrop},
}

func pressedIntents(bindings []keyBinding, pressed func(ebiten.Key) bool) []tetris.Intent {
	var intents []tetris.Intent
	for _, b := range bindings {
		if pressed(b.key) {
			intents = append(intents, b.intent)
		}
	}
	return intents
}

// Game adapts a session to ebiten. Every ebiten update is one session frame.
type Game struct {
	session    *tetris.Session
	rows, cols int
	buttons    []button
	logger     *log.Logger
	touches    []ebiten.TouchID
}

func NewGame(session *tetris.Session, logger *log.Logger) *Game {
	rows, cols := session.Size()
	return &Game{
		session: session,
		rows:    rows,
		cols:    cols,
		buttons: layoutButtons(rows*grid, cols*grid, buttonHeight),
		logger:  logger,
	}
}

func (g *Game) screenSize() (int, int) {
	return g.cols*grid + sidePanel, g.rows*grid + buttonHeight
}

func (g *Game) Update() error {
	if g.session.IsOver() {
		return nil
	}

	for _, intent := range pressedIntents(keyBindings, inpututil.IsKeyJustPressed) {
		g.session.ApplyIntent(intent)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.press(ebiten.CursorPosition())
	}
	g.touches = inpututil.AppendJustPressedTouchIDs(g.touches[:0])
	for _, id := range g.touches {
		g.press(ebiten.TouchPosition(id))
	}

	g.session.Frame()
	return nil
}

func (g *Game) press(x, y int) {
	if intent, ok := buttonAt(g.buttons, x, y); ok {
		g.logger.Printf("button %s\n", intent)
		g.session.ApplyIntent(intent)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	fieldW, fieldH := float32(g.cols*grid), float32(g.rows*grid)
	vector.StrokeRect(screen, 0, 0, fieldW, fieldH, 1, colornames.Dimgray, false)

	for row, cells := range g.session.Render() {
		for col, id := range cells {
			if id != tetris.PieceEmpty {
				drawCell(screen, col*grid, row*grid, grid, tetris.Color(id))
			}
		}
	}

	panelX := g.cols*grid + grid/2
	ebitenutil.DebugPrintAt(screen, "NEXT", panelX, grid/2)
	next := tetris.Template(g.session.Next())
	for r := range next {
		for c := range next[r] {
			if next[r][c] {
				drawCell(screen, panelX+c*grid/2, grid+r*grid/2, grid/2, tetris.Color(g.session.Next()))
			}
		}
	}

	for _, b := range g.buttons {
		vector.DrawFilledRect(screen, float32(b.x+2), float32(b.y+2), float32(b.w-4), float32(b.h-4), colornames.Darkslategray, false)
		ebitenutil.DebugPrintAt(screen, b.label, b.x+b.w/2-len(b.label)*3, b.y+b.h/2-8)
	}

	if g.session.IsOver() {
		vector.DrawFilledRect(screen, 0, fieldH/2-30, fieldW, 60, color.RGBA{A: 0xbf}, false)
		ebitenutil.DebugPrintAt(screen, "GAME OVER!", int(fieldW)/2-30, int(fieldH)/2-8)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.screenSize()
}

func drawCell(screen *ebiten.Image, x, y, size int, clr color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(size-1), float32(size-1), clr, false)
}
