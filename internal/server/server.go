// Package server exposes the rules core over a stateless HTTP API. Every
// request carries the position it applies to as a FEN string.
package server

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/hailam/jmchess/internal/board"
	"github.com/hailam/jmchess/internal/perft"
	"github.com/hailam/jmchess/internal/render"
)

// Config configures the HTTP server.
type Config struct {
	AllowOrigins  string    // CORS origins, empty disables CORS
	MaxPerftDepth int       // deepest perft accepted per request
	SquareSize    int       // PNG square edge in pixels
	AccessLog     io.Writer // nil disables access logging
}

// DefaultConfig returns the configuration used by cmd/jmchess-server.
func DefaultConfig() Config {
	return Config{
		MaxPerftDepth: 4,
		SquareSize:    60,
		AccessLog:     os.Stderr,
	}
}

// Server holds the fiber app and the shared helpers behind it.
type Server struct {
	app      *fiber.App
	cfg      Config
	renderer *render.Renderer
	runner   *perft.Runner
}

// New creates a server. The runner is shared by all perft requests.
func New(cfg Config, runner *perft.Runner) (*Server, error) {
	r, err := render.New(cfg.SquareSize, render.DefaultTheme())
	if err != nil {
		return nil, err
	}
	if runner == nil {
		runner = perft.NewRunner()
	}

	s := &Server{
		cfg:      cfg,
		renderer: r,
		runner:   runner,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "jmchess",
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	s.app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if cfg.AccessLog != nil {
		s.app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
			Output: cfg.AccessLog,
		}))
	}
	if cfg.AllowOrigins != "" {
		s.app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.AllowOrigins,
			AllowHeaders: "Origin, Content-Type, Accept",
			AllowMethods: "GET, POST, OPTIONS",
		}))
	}

	api := s.app.Group("/api")
	api.Get("/position", s.GetPosition)
	api.Get("/moves", s.GetMoves)
	api.Post("/apply", s.ApplyMove)
	api.Get("/perft", s.GetPerft)
	api.Get("/render.png", s.RenderPNG)

	return s, nil
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for active requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// errorHandler maps domain errors to status codes.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, board.ErrMoveNotFound):
		code = fiber.StatusUnprocessableEntity
	case errors.Is(err, board.ErrInvalidPositionNotation),
		errors.Is(err, board.ErrInvalidNotation),
		errors.Is(err, perft.ErrInvalidDepth):
		code = fiber.StatusBadRequest
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// positionFromQuery parses the fen query parameter, defaulting to the
// starting position.
func positionFromQuery(c *fiber.Ctx) (*board.Position, error) {
	return parsePosition(c.Query("fen"))
}

func parsePosition(fen string) (*board.Position, error) {
	if fen == "" {
		return board.NewPosition(), nil
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("fen %q: %w", fen, err)
	}
	return pos, nil
}
