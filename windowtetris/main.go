package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	tetris "github.com/jauhararifin/bagtetris"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "piece sequence seed")
	fall := flag.Int("fall", tetris.FallThreshold, "frames between fall steps")
	scale := flag.Int("scale", 1, "window scale")
	flag.Parse()

	logger := log.New(os.Stderr, "[windowtetris] ", log.LstdFlags)

	session := tetris.NewSession(
		tetris.WithGetter(tetris.NewRandomBagGetter(*seed)),
		tetris.WithFallThreshold(*fall),
		tetris.WithClearHandler(tetris.ClearHandlerFunc(func(rows int) {
			logger.Printf("cleared %d rows\n", rows)
		})),
		tetris.WithGameOverHandler(tetris.GameOverHandlerFunc(func() {
			logger.Printf("game over\n")
		})),
	)
	game := NewGame(session, logger)

	w, h := game.screenSize()
	ebiten.SetWindowSize(w*(*scale), h*(*scale))
	ebiten.SetWindowTitle("tetris")
	ebiten.SetTPS(60)
	logger.Printf("session started: seed=%d\n", *seed)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
