/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package position

import (
	"testing"

	. "github.com/frankkopp/FrankyGo/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestPositionCreation(t *testing.T) {
	fen := StartFen
	p, err := NewPositionFen(fen)
	assert.NoError(t, err)
	assert.Equal(t, SqA1.Bb()|SqH1.Bb()|SqA8.Bb()|SqH8.Bb(), p.piecesBb[White][Rook]|p.piecesBb[Black][Rook])
	assert.Equal(t, SqB1.Bb()|SqG1.Bb()|SqB8.Bb()|SqG8.Bb(), p.piecesBb[White][Knight]|p.piecesBb[Black][Knight])
	assert.Equal(t, SqC1.Bb()|SqF1.Bb()|SqC8.Bb()|SqF8.Bb(), p.piecesBb[White][Bishop]|p.piecesBb[Black][Bishop])
	assert.Equal(t, SqD1.Bb()|SqD8.Bb(), p.piecesBb[White][Queen]|p.piecesBb[Black][Queen])
	assert.Equal(t, SqE1.Bb()|SqE8.Bb(), p.piecesBb[White][King]|p.piecesBb[Black][King])
	assert.Equal(t, Rank2_Bb|Rank7_Bb, p.piecesBb[White][Pawn]|p.piecesBb[Black][Pawn])
	assert.Equal(t, White, p.nextPlayer)
	assert.Equal(t, CastlingAny, p.castlingRights)
	assert.Equal(t, SqNone, p.enPassantSquare)
	assert.Equal(t, 0, p.halfMoveClock)
	assert.Equal(t, 1, p.nextHalfMoveNumber)
	assert.Equal(t, Value(0), p.material[White]-p.material[Black])
	assert.Equal(t, Value(0), p.psqMidValue[White]-p.psqMidValue[Black])
	assert.Equal(t, fen, p.StringFen())
}

func TestPositionCreationInvalidFen(t *testing.T) {
	_, err := NewPositionFen("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNX w KQkq - 0 1")
	assert.Error(t, err)
	var fpe *FenParseError
	assert.ErrorAs(t, err, &fpe)

	_, err = NewPositionFen("8/8/8/8/8/8/8/8 w - - 0 1")
	assert.Error(t, err)
	var ip *IllegalPosition
	assert.ErrorAs(t, err, &ip)
}

func TestPositionCreationSideNotToMoveInCheck(t *testing.T) {
	// white king on e1 attacked by black rook on e8, black to move - illegal,
	// white should never have been allowed to leave its king in check
	_, err := NewPositionFen("4rk2/8/8/8/8/8/8/4K3 b - - 0 1")
	assert.Error(t, err)
	var ip *IllegalPosition
	assert.ErrorAs(t, err, &ip)
}

func TestDoAndUndoMoveNormal(t *testing.T) {
	p, err := NewPositionFen(StartFen)
	assert.NoError(t, err)
	fenBefore := p.StringFen()
	zobristBefore := p.ZobristKey()

	m := NewMove(SqE2, SqE4, WhitePawn, PieceNone, FlagPawnDoublePush, PtNone)
	p.DoMove(m)
	assert.Equal(t, PieceNone, p.GetPiece(SqE2))
	assert.Equal(t, WhitePawn, p.GetPiece(SqE4))
	assert.Equal(t, SqE3, p.GetEnPassantSquare())
	assert.Equal(t, Black, p.NextPlayer())

	p.UndoMove()
	assert.Equal(t, fenBefore, p.StringFen())
	assert.Equal(t, zobristBefore, p.ZobristKey())
}

func TestDoAndUndoMoveCapture(t *testing.T) {
	p, err := NewPositionFen("rnbqkbnr/pppp1ppp/8/4p3/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 0 2")
	assert.NoError(t, err)
	fenBefore := p.StringFen()

	m := NewMove(SqD4, SqE5, WhitePawn, BlackPawn, FlagCapture, PtNone)
	p.DoMove(m)
	assert.Equal(t, WhitePawn, p.GetPiece(SqE5))
	assert.Equal(t, 0, p.HalfMoveClock())
	assert.True(t, p.WasCapturingMove())
	assert.Equal(t, BlackPawn, p.LastCapturedPiece())

	p.UndoMove()
	assert.Equal(t, fenBefore, p.StringFen())
}

func TestDoAndUndoMoveEnPassant(t *testing.T) {
	p, err := NewPositionFen("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	assert.NoError(t, err)
	fenBefore := p.StringFen()

	m := NewMove(SqE5, SqD6, WhitePawn, BlackPawn, FlagEnPassant|FlagCapture, PtNone)
	p.DoMove(m)
	assert.Equal(t, WhitePawn, p.GetPiece(SqD6))
	assert.Equal(t, PieceNone, p.GetPiece(SqD5))
	assert.Equal(t, SqNone, p.GetEnPassantSquare())

	p.UndoMove()
	assert.Equal(t, fenBefore, p.StringFen())
	assert.Equal(t, BlackPawn, p.GetPiece(SqD5))
}

func TestDoAndUndoMoveCastling(t *testing.T) {
	p, err := NewPositionFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	assert.NoError(t, err)
	fenBefore := p.StringFen()

	m := NewMove(SqE1, SqG1, WhiteKing, PieceNone, FlagCastling, PtNone)
	p.DoMove(m)
	assert.Equal(t, WhiteKing, p.GetPiece(SqG1))
	assert.Equal(t, WhiteRook, p.GetPiece(SqF1))
	assert.Equal(t, PieceNone, p.GetPiece(SqE1))
	assert.Equal(t, PieceNone, p.GetPiece(SqH1))
	assert.False(t, p.CastlingRights().Has(CastlingWhite))

	p.UndoMove()
	assert.Equal(t, fenBefore, p.StringFen())
	assert.True(t, p.CastlingRights().Has(CastlingWhiteOO))
}

func TestDoAndUndoMovePromotion(t *testing.T) {
	p, err := NewPositionFen("8/P7/8/8/8/8/8/4K2k w - - 0 1")
	assert.NoError(t, err)
	fenBefore := p.StringFen()

	m := NewMove(SqA7, SqA8, WhitePawn, PieceNone, FlagPromotion, Queen)
	p.DoMove(m)
	assert.Equal(t, WhiteQueen, p.GetPiece(SqA8))
	assert.Equal(t, 0, p.HalfMoveClock())

	p.UndoMove()
	assert.Equal(t, fenBefore, p.StringFen())
	assert.Equal(t, WhitePawn, p.GetPiece(SqA7))
}

func TestIsAttacked(t *testing.T) {
	p, err := NewPositionFen(StartFen)
	assert.NoError(t, err)
	assert.True(t, p.IsAttacked(SqE3, White))
	assert.False(t, p.IsAttacked(SqE4, White))
	assert.True(t, p.IsAttacked(SqE6, Black))
}

func TestHasCheck(t *testing.T) {
	p, err := NewPositionFen("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	assert.NoError(t, err)
	assert.True(t, p.HasCheck())
}

func TestIsLegalMoveCastlingThroughCheck(t *testing.T) {
	// black rook on f8 covers f1, the transit square for white king side castling
	p, err := NewPositionFen("4k2r/8/8/8/8/8/8/4K2R w Kk - 0 1")
	assert.NoError(t, err)
	m := NewMove(SqE1, SqG1, WhiteKing, PieceNone, FlagCastling, PtNone)
	assert.True(t, p.IsLegalMove(m))

	p2, err := NewPositionFen("4kr2/8/8/8/8/8/8/4K2R w Kk - 0 1")
	assert.NoError(t, err)
	m2 := NewMove(SqE1, SqG1, WhiteKing, PieceNone, FlagCastling, PtNone)
	assert.False(t, p2.IsLegalMove(m2))
}

func TestCheckRepetitions(t *testing.T) {
	p, err := NewPositionFen(StartFen)
	assert.NoError(t, err)
	moves := []Move{
		NewMove(SqG1, SqF3, WhiteKnight, PieceNone, 0, PtNone),
		NewMove(SqG8, SqF6, BlackKnight, PieceNone, 0, PtNone),
		NewMove(SqF3, SqG1, WhiteKnight, PieceNone, 0, PtNone),
		NewMove(SqF6, SqG8, BlackKnight, PieceNone, 0, PtNone),
		NewMove(SqG1, SqF3, WhiteKnight, PieceNone, 0, PtNone),
		NewMove(SqG8, SqF6, BlackKnight, PieceNone, 0, PtNone),
		NewMove(SqF3, SqG1, WhiteKnight, PieceNone, 0, PtNone),
		NewMove(SqF6, SqG8, BlackKnight, PieceNone, 0, PtNone),
	}
	for _, m := range moves {
		p.DoMove(m)
	}
	assert.True(t, p.CheckRepetitions(2))
}

func TestHasInsufficientMaterial(t *testing.T) {
	p, err := NewPositionFen("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.NoError(t, err)
	assert.True(t, p.HasInsufficientMaterial())

	p2, err := NewPositionFen("4k3/8/8/8/8/8/8/3NK3 w - - 0 1")
	assert.NoError(t, err)
	assert.True(t, p2.HasInsufficientMaterial())

	p3, err := NewPositionFen(StartFen)
	assert.NoError(t, err)
	assert.False(t, p3.HasInsufficientMaterial())
}

func TestGivesCheck(t *testing.T) {
	p, err := NewPositionFen("4k3/8/8/8/8/8/R7/4K3 w - - 0 1")
	assert.NoError(t, err)
	m := NewMove(SqA2, SqE2, WhiteRook, PieceNone, 0, PtNone)
	assert.True(t, p.GivesCheck(m))
	m2 := NewMove(SqA2, SqA3, WhiteRook, PieceNone, 0, PtNone)
	assert.False(t, p.GivesCheck(m2))
}
