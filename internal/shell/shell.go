// Package shell implements the interactive text front end: enter one
// square to list its destinations, two squares to play a move.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/jmchess/internal/board"
	"github.com/hailam/jmchess/internal/perft"
	"github.com/hailam/jmchess/internal/render"
)

// Banner is printed when the shell starts.
const Banner = "JMCHESS 0.1 BETA"

// Shell reads commands from in and writes to out.
type Shell struct {
	in  io.Reader
	out io.Writer

	position *board.Position
	moves    *board.MoveList

	runner   *perft.Runner
	renderer *render.Renderer
}

// New creates a shell on the starting position. runner and renderer may be
// nil, which disables the perft and png commands.
func New(in io.Reader, out io.Writer, runner *perft.Runner, renderer *render.Renderer) *Shell {
	s := &Shell{
		in:       in,
		out:      out,
		runner:   runner,
		renderer: renderer,
	}
	s.setPosition(board.NewPosition())
	return s
}

// Load replaces the current position with one parsed from fen.
func (s *Shell) Load(fen string) error {
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	s.setPosition(pos)
	return nil
}

// Position returns the current position.
func (s *Shell) Position() *board.Position {
	return s.position
}

// Run starts the main loop. It returns on quit, end of input or when ctx
// is cancelled between commands.
func (s *Shell) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "\n%s\n\n", Banner)
	s.regenerate()
	s.display()

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			s.handleHelp()
		case "d":
			s.display()
		case "new":
			s.setPosition(board.NewPosition())
			s.regenerate()
			s.display()
		case "fen":
			s.handleFEN(args)
		case "moves":
			s.handleMoves()
		case "perft":
			s.handlePerft(ctx, args)
		case "png":
			s.handlePNG(args)
		default:
			s.handleSquares(parts)
		}
	}
}

func (s *Shell) setPosition(pos *board.Position) {
	s.position = pos
	s.moves = pos.GeneratePseudoLegalMoves()
}

// regenerate refreshes the move list and reports its size and timing.
func (s *Shell) regenerate() {
	start := time.Now()
	s.moves = s.position.GeneratePseudoLegalMoves()
	elapsed := time.Since(start)
	fmt.Fprintf(s.out, "Number of moves: %d\nGenerating moves took %dμs\n\n",
		s.moves.Len(), elapsed.Microseconds())
}

func (s *Shell) display() {
	fmt.Fprintln(s.out, "---POSITION---")
	fmt.Fprint(s.out, s.position.String())
}

func (s *Shell) errorf(format string, args ...any) {
	fmt.Fprintf(s.out, "error: "+format+"\n", args...)
}

// handleSquares lists destinations for one square or plays a move for two.
func (s *Shell) handleSquares(parts []string) {
	switch len(parts) {
	case 1:
		from, err := board.ParseSquare(parts[0])
		if err != nil {
			s.errorf("unknown command %q", parts[0])
			return
		}
		for _, m := range s.moves.From(from) {
			fmt.Fprintln(s.out, m.To())
		}

	case 2:
		from, err := board.ParseSquare(parts[0])
		if err != nil {
			s.errorf("%v", err)
			return
		}
		to, err := board.ParseSquare(parts[1])
		if err != nil {
			s.errorf("%v", err)
			return
		}
		m, ok := s.moves.Find(from, to)
		if !ok {
			s.errorf("no move from %s to %s", from, to)
			return
		}
		s.position.MakeMove(m)
		s.regenerate()
		s.display()

	default:
		s.errorf("unknown command %q", strings.Join(parts, " "))
	}
}

func (s *Shell) handleHelp() {
	fmt.Fprintln(s.out, `<square>            list destinations of moves from a square
<from> <to>         play the first move between two squares
moves               list all moves
fen [<fen>]         print the position as FEN, or load one
new                 reset to the starting position
d                   display the board
perft <depth>       count nodes below each move
png <file>          write the board as a PNG image
quit                leave`)
}

// handleFEN prints the current FEN, or loads the six fields given.
func (s *Shell) handleFEN(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, s.position.FEN())
		return
	}

	if err := s.Load(strings.Join(args, " ")); err != nil {
		s.errorf("%v", err)
		return
	}
	s.regenerate()
	s.display()
}

func (s *Shell) handleMoves() {
	names := make([]string, 0, s.moves.Len())
	for _, m := range s.moves.Slice() {
		names = append(names, m.String())
	}
	fmt.Fprintf(s.out, "%s\n", strings.Join(names, " "))
}

func (s *Shell) handlePerft(ctx context.Context, args []string) {
	if s.runner == nil {
		s.errorf("perft is not available")
		return
	}
	if len(args) != 1 {
		s.errorf("usage: perft <depth>")
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil {
		s.errorf("invalid depth %q", args[0])
		return
	}

	res, err := s.runner.Run(ctx, s.position, depth)
	if err != nil {
		s.errorf("%v", err)
		return
	}

	for _, e := range res.Divide {
		fmt.Fprintf(s.out, "%s: %d\n", e.Move, e.Nodes)
	}
	fmt.Fprintf(s.out, "\nNodes searched: %d\n", res.Nodes)
	if res.Cached {
		fmt.Fprintln(s.out, "(from cache)")
	} else {
		fmt.Fprintf(s.out, "Time: %v (%.0f nps)\n", res.Elapsed.Round(time.Millisecond), res.NodesPerSecond())
	}
}

func (s *Shell) handlePNG(args []string) {
	if s.renderer == nil {
		s.errorf("png is not available")
		return
	}
	if len(args) != 1 {
		s.errorf("usage: png <file>")
		return
	}

	f, err := os.Create(args[0])
	if err != nil {
		s.errorf("%v", err)
		return
	}
	defer f.Close()

	if err := s.renderer.WritePNG(f, s.position); err != nil {
		s.errorf("%v", err)
		return
	}
	fmt.Fprintf(s.out, "wrote %s\n", args[0])
}
