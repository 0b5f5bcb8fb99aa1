package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/JoelOtter/termloop"

	tetris "github.com/jauhararifin/bagtetris"
	"github.com/jauhararifin/bagtetris/termui"
)

const fps = 60

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "piece sequence seed")
	fall := flag.Int("fall", tetris.FallThreshold, "frames between fall steps")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	logger, closeLog, err := openLog(*logPath)
	if err != nil {
		log.Fatalf("cannot open log file: %v", err)
	}
	defer closeLog()

	game := termloop.NewGame()
	game.Screen().SetFps(fps)

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
	rows, cols := session.Size()
	logger.Printf("session started: seed=%d rows=%d cols=%d fall=%d\n", *seed, rows, cols, *fall)

	board := termui.NewBoard(session, 0, 0, rows, cols,
		termui.WithTitle("[<-][->] move  [^] rotate  [v] drop  [space] hard drop"),
		termui.WithIntentHandler(session.ApplyIntent),
		termui.WithTickHandler(session.Frame),
	)

	level := termloop.NewBaseLevel(termloop.Cell{})
	level.AddEntity(board)
	game.Screen().SetLevel(level)
	game.Start()
}

func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(f, "[playtetris] ", log.LstdFlags), func() { f.Close() }, nil
}
