package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hailam/jmchess/internal/perft"
	"github.com/hailam/jmchess/internal/render"
	"github.com/hailam/jmchess/internal/shell"
	"github.com/hailam/jmchess/internal/storage"
)

var (
	fen        = flag.String("fen", "", "start from this position instead of the initial one")
	threads    = flag.Int("threads", 0, "perft worker count (0 = GOMAXPROCS)")
	cache      = flag.Bool("cache", false, "store perft results in the data directory")
	squareSize = flag.Int("square", 60, "square size in pixels for png output")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []perft.Option{perft.WithThreads(*threads), perft.WithHash()}
	if *cache {
		store, err := storage.NewStorage()
		if err != nil {
			log.Fatal("could not open perft cache: ", err)
		}
		defer store.Close()
		opts = append(opts, perft.WithStore(store))
	}

	renderer, err := render.New(*squareSize, render.DefaultTheme())
	if err != nil {
		log.Fatal(err)
	}

	sh := shell.New(os.Stdin, os.Stdout, perft.NewRunner(opts...), renderer)
	if *fen != "" {
		if err := sh.Load(*fen); err != nil {
			log.Fatal(err)
		}
	}

	if err := sh.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}
