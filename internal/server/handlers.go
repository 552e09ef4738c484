package server

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/hailam/jmchess/internal/board"
)

// PositionResponse describes a position.
type PositionResponse struct {
	FEN            string            `json:"fen"`
	SideToMove     string            `json:"side_to_move"`
	Castling       string            `json:"castling"`
	EnPassant      string            `json:"en_passant"`
	HalfMoveClock  int               `json:"halfmove_clock"`
	FullMoveNumber int               `json:"fullmove_number"`
	Pieces         map[string]string `json:"pieces"`
	Display        string            `json:"display"`
}

func newPositionResponse(pos *board.Position) PositionResponse {
	pieces := make(map[string]string)
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		if p := pos.PieceAt(sq); !p.IsEmpty() {
			pieces[sq.String()] = p.String()
		}
	}
	return PositionResponse{
		FEN:            pos.FEN(),
		SideToMove:     pos.SideToMove.String(),
		Castling:       pos.CastlingRights.String(),
		EnPassant:      pos.EnPassant.String(),
		HalfMoveClock:  pos.HalfMoveClock,
		FullMoveNumber: pos.FullMoveNumber,
		Pieces:         pieces,
		Display:        pos.String(),
	}
}

// MoveResponse describes one generated move.
type MoveResponse struct {
	Move string `json:"move"`
	From string `json:"from"`
	To   string `json:"to"`
	Tag  string `json:"tag"`
}

func newMoveResponse(m board.Move) MoveResponse {
	return MoveResponse{
		Move: m.String(),
		From: m.From().String(),
		To:   m.To().String(),
		Tag:  m.Tag().String(),
	}
}

// GetPosition returns the parsed position.
func (s *Server) GetPosition(c *fiber.Ctx) error {
	pos, err := positionFromQuery(c)
	if err != nil {
		return err
	}
	return c.JSON(newPositionResponse(pos))
}

// GetMoves returns the pseudo-legal moves, optionally only those from one
// square.
func (s *Server) GetMoves(c *fiber.Ctx) error {
	pos, err := positionFromQuery(c)
	if err != nil {
		return err
	}

	start := time.Now()
	ml := pos.GeneratePseudoLegalMoves()
	elapsed := time.Since(start)

	moves := ml.Slice()
	if from := c.Query("from"); from != "" {
		sq, err := board.ParseSquare(from)
		if err != nil {
			return err
		}
		moves = ml.From(sq)
	}

	out := make([]MoveResponse, 0, len(moves))
	for _, m := range moves {
		out = append(out, newMoveResponse(m))
	}

	return c.JSON(fiber.Map{
		"fen":        pos.FEN(),
		"count":      len(out),
		"moves":      out,
		"elapsed_us": elapsed.Microseconds(),
	})
}

// ApplyRequest is the body of POST /api/apply.
type ApplyRequest struct {
	FEN  string `json:"fen"`
	Move string `json:"move"`
}

// ApplyMove applies a coordinate move and returns the resulting position.
func (s *Server) ApplyMove(c *fiber.Ctx) error {
	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.Move == "" {
		return fiber.NewError(fiber.StatusBadRequest, "move is required")
	}

	pos, err := parsePosition(req.FEN)
	if err != nil {
		return err
	}
	m, err := pos.ParseMove(req.Move)
	if err != nil {
		return err
	}
	pos.MakeMove(m)

	return c.JSON(fiber.Map{
		"move":     newMoveResponse(m),
		"position": newPositionResponse(pos),
	})
}

// GetPerft counts nodes to the requested depth.
func (s *Server) GetPerft(c *fiber.Ctx) error {
	pos, err := positionFromQuery(c)
	if err != nil {
		return err
	}

	depth := c.QueryInt("depth", 1)
	if depth > s.cfg.MaxPerftDepth {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("depth %d exceeds maximum %d", depth, s.cfg.MaxPerftDepth))
	}

	res, err := s.runner.Run(c.UserContext(), pos, depth)
	if err != nil {
		return err
	}

	divide := make(map[string]uint64, len(res.Divide))
	for _, e := range res.Divide {
		divide[e.Move.String()] = e.Nodes
	}

	return c.JSON(fiber.Map{
		"fen":        res.FEN,
		"depth":      res.Depth,
		"nodes":      res.Nodes,
		"divide":     divide,
		"cached":     res.Cached,
		"elapsed_ms": res.Elapsed.Milliseconds(),
	})
}

// RenderPNG draws the position. The highlight parameter takes a comma
// separated list of squares.
func (s *Server) RenderPNG(c *fiber.Ctx) error {
	pos, err := positionFromQuery(c)
	if err != nil {
		return err
	}

	var highlight []board.Square
	if list := c.Query("highlight"); list != "" {
		for _, name := range strings.Split(list, ",") {
			sq, err := board.ParseSquare(strings.TrimSpace(name))
			if err != nil {
				return err
			}
			highlight = append(highlight, sq)
		}
	}

	var buf bytes.Buffer
	if err := s.renderer.WritePNG(&buf, pos, highlight...); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}
