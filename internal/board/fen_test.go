package board

import (
	"errors"
	"testing"
)

func TestParseFENStartPosition(t *testing.T) {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	if pos.SideToMove != White {
		t.Errorf("SideToMove = %v, want white", pos.SideToMove)
	}
	if pos.CastlingRights != AllCastling {
		t.Errorf("CastlingRights = %v, want KQkq", pos.CastlingRights)
	}
	if pos.EnPassant != NoSquare {
		t.Errorf("EnPassant = %v, want none", pos.EnPassant)
	}
	if pos.HalfMoveClock != 0 || pos.FullMoveNumber != 1 {
		t.Errorf("counters = %d/%d, want 0/1", pos.HalfMoveClock, pos.FullMoveNumber)
	}

	pieces := map[Square]Piece{
		A8: BlackRook, E8: BlackKing, D8: BlackQueen, B8: BlackKnight,
		A1: WhiteRook, E1: WhiteKing, D1: WhiteQueen, F1: WhiteBishop,
		E2: WhitePawn, E7: BlackPawn, E4: NoPiece, D5: NoPiece,
	}
	for sq, want := range pieces {
		if got := pos.PieceAt(sq); got != want {
			t.Errorf("PieceAt(%v) = %q, want %q", sq, got, want)
		}
	}

	if got := pos.FEN(); got != StartFEN {
		t.Errorf("FEN() = %q, want %q", got, StartFEN)
	}
}

func TestParseFENFields(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/3pP3/8/8/8/R3K2R w Kq d6 12 34")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	if !pos.CastlingRights.CanCastle(White, true) || pos.CastlingRights.CanCastle(White, false) {
		t.Errorf("white rights = %v, want short only", pos.CastlingRights)
	}
	if pos.CastlingRights.CanCastle(Black, true) || !pos.CastlingRights.CanCastle(Black, false) {
		t.Errorf("black rights = %v, want long only", pos.CastlingRights)
	}
	if pos.EnPassant != D6 {
		t.Errorf("EnPassant = %v, want d6", pos.EnPassant)
	}
	if pos.HalfMoveClock != 12 || pos.FullMoveNumber != 34 {
		t.Errorf("counters = %d/%d, want 12/34", pos.HalfMoveClock, pos.FullMoveNumber)
	}
	if got := pos.FEN(); got != "r3k2r/8/8/3pP3/8/8/8/R3K2R w Kq d6 12 34" {
		t.Errorf("FEN() = %q", got)
	}
}

func TestParseFENInvalid(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"five fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0"},
		{"seven fields", StartFEN + " extra"},
		{"bad piece", "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad color", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"uppercase color", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR W KQkq - 0 1"},
		{"bad halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1"},
		{"negative halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1"},
		{"bad fullmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 one"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if !errors.Is(err, ErrInvalidPositionNotation) {
				t.Errorf("error = %v, want ErrInvalidPositionNotation", err)
			}
			if pos != nil {
				t.Error("a position was returned with the error")
			}
		})
	}
}

func TestParseFENLenientFields(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		rights    CastlingRights
		enPassant Square
	}{
		{"dash castling", "8/8/8/8/8/8/8/8 w - - 0 1", NoCastling, NoSquare},
		{"junk castling", "8/8/8/8/8/8/8/8 w RNx1 - 0 1", NoCastling, NoSquare},
		{"mixed castling", "8/8/8/8/8/8/8/8 w zKbq - 0 1", WhiteKingSideCastle | BlackQueenSideCastle, NoSquare},
		{"bad en passant", "8/8/8/8/8/8/8/8 w KQkq e9 0 1", AllCastling, NoSquare},
		{"long en passant", "8/8/8/8/8/8/8/8 w - e33 0 1", NoCastling, NoSquare},
		{"en passant", "8/8/8/8/8/8/8/8 b - e3 0 1", NoCastling, E3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("Failed to parse FEN: %v", err)
			}
			if pos.CastlingRights != tc.rights {
				t.Errorf("CastlingRights = %v, want %v", pos.CastlingRights, tc.rights)
			}
			if pos.EnPassant != tc.enPassant {
				t.Errorf("EnPassant = %v, want %v", pos.EnPassant, tc.enPassant)
			}
		})
	}
}

func TestParseFENMalformedPlacement(t *testing.T) {
	// Short and overlong ranks are accepted without validation.
	pos, err := ParseFEN("K/8/8/8/8/8/8/8/8/8/RRRRRRRRRRRR w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if pos.PieceAt(A8) != WhiteKing {
		t.Errorf("PieceAt(a8) = %q, want K", pos.PieceAt(A8))
	}

	// A long rank spills into the following row; past h1 it is dropped.
	pos, err = ParseFEN("7RR/8/8/8/8/8/8/7QQ w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if pos.PieceAt(H8) != WhiteRook || pos.PieceAt(A7) != WhiteRook {
		t.Errorf("PieceAt(h8), PieceAt(a7) = %q, %q, want R, R", pos.PieceAt(H8), pos.PieceAt(A7))
	}
	if pos.PieceAt(H1) != WhiteQueen {
		t.Errorf("PieceAt(h1) = %q, want Q", pos.PieceAt(H1))
	}

	pos, err = ParseFEN("9r/8/8/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if pos.PieceAt(B7) != BlackRook {
		t.Errorf("PieceAt(b7) = %q, want r", pos.PieceAt(B7))
	}
}
