package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/hailam/jmchess/internal/board"
	"github.com/hailam/jmchess/internal/perft"
	"github.com/hailam/jmchess/internal/storage"
)

var (
	fen     = flag.String("fen", board.StartFEN, "position to count from")
	depth   = flag.Int("depth", 4, "search depth in plies")
	divide  = flag.Bool("divide", false, "print node counts per root move")
	threads = flag.Int("threads", 0, "worker count (0 = GOMAXPROCS)")
	cache   = flag.String("cache", "", `perft cache directory ("default" for the data directory)`)
	hash    = flag.Bool("hash", true, "share a transposition memo between workers")
)

func main() {
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal(err)
	}

	opts := []perft.Option{perft.WithThreads(*threads)}
	if *hash {
		opts = append(opts, perft.WithHash())
	}
	if *cache != "" {
		var store *storage.Storage
		if *cache == "default" {
			store, err = storage.NewStorage()
		} else {
			store, err = storage.Open(*cache)
		}
		if err != nil {
			log.Fatal("could not open perft cache: ", err)
		}
		defer store.Close()
		opts = append(opts, perft.WithStore(store))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := perft.NewRunner(opts...).Run(ctx, pos, *depth)
	if err != nil {
		fmt.Fprintf(os.Stderr, "perft: %v\n", err)
		os.Exit(1)
	}

	if *divide {
		for _, e := range res.Divide {
			fmt.Printf("%s: %d\n", e.Move, e.Nodes)
		}
		fmt.Println()
	}
	fmt.Printf("Nodes searched: %d\n", res.Nodes)
	if res.Cached {
		fmt.Println("Result loaded from cache")
		return
	}
	fmt.Printf("Time: %v\n", res.Elapsed.Round(time.Millisecond))
	fmt.Printf("NPS: %.0f\n", res.NodesPerSecond())
}
