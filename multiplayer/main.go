package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	isServer := flag.Bool("server", false, "run server")
	host := flag.String("host", "localhost:8123", "server address to join")
	listen := flag.String("listen", ":8123", "udp address the server listens on")
	status := flag.String("status", ":8124", "http address of the server status api, empty to disable")
	name := flag.String("name", "", "player name")
	room := flag.String("room", "", "room to join")
	fps := flag.Int("fps", 60, "server frames per second")
	logPath := flag.String("log", "", "client log file")
	flag.Parse()

	if *isServer {
		config := DefaultRoomConfig()
		config.FPS = *fps
		if err := startServer(*listen, *status, config); err != nil {
			log.Fatal(err)
		}
		return
	}

	if *name == "" || *room == "" {
		log.Fatal("both -name and -room are required to join a game")
	}

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("cannot open log file: %v", err)
		}
		defer f.Close()
		out = f
	}
	if err := startClient(*host, *name, *room, log.New(out, "[client] ", log.LstdFlags)); err != nil {
		log.Fatal(err)
	}
}

func startServer(listen, statusAddr string, config RoomConfig) error {
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags)

	addr, err := net.ResolveUDPAddr("udp4", listen)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp4", addr)
	if err != nil {
		return err
	}
	logger.Printf("listening on %v\n", conn.LocalAddr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameServer := newServer(conn, config, logger)
	defer gameServer.Close()

	if statusAddr != "" {
		httpServer := &http.Server{
			Addr:              statusAddr,
			Handler:           newStatusRouter(gameServer, log.New(os.Stdout, "[status] ", log.LstdFlags)),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Printf("status api on %s\n", statusAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("status api stopped: %v\n", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()
	}

	return serve(ctx, conn, gameServer)
}
