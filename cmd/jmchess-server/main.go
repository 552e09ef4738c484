package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hailam/jmchess/internal/perft"
	"github.com/hailam/jmchess/internal/server"
	"github.com/hailam/jmchess/internal/storage"
)

var (
	addr       = flag.String("addr", ":3000", "listen address")
	origins    = flag.String("origins", "", "allowed CORS origins, comma separated")
	maxDepth   = flag.Int("max-depth", 4, "deepest perft accepted per request")
	squareSize = flag.Int("square", 60, "square size in pixels for rendered images")
	threads    = flag.Int("threads", 0, "perft worker count (0 = GOMAXPROCS)")
	cache      = flag.Bool("cache", false, "store perft results in the data directory")
	quiet      = flag.Bool("quiet", false, "disable access logging")
)

func main() {
	flag.Parse()

	cfg := server.DefaultConfig()
	cfg.AllowOrigins = *origins
	cfg.MaxPerftDepth = *maxDepth
	cfg.SquareSize = *squareSize
	if *quiet {
		cfg.AccessLog = nil
	}

	opts := []perft.Option{perft.WithThreads(*threads)}
	if *cache {
		store, err := storage.NewStorage()
		if err != nil {
			log.Fatal("could not open perft cache: ", err)
		}
		defer store.Close()
		opts = append(opts, perft.WithStore(store))
	}

	srv, err := server.New(cfg, perft.NewRunner(opts...))
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("shutting down")
		if err := srv.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", *addr)
	if err := srv.Listen(*addr); err != nil {
		log.Fatal(err)
	}
}
