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

package types

import (
	"fmt"
	"strings"
)

// Move is a 32 bit packed chess move: to-square, from-square, the moving
// and captured pieces, the promotion piece type and a set of independent
// flag bits.
//  BITMAP 32-bit
//  |unused |captured|moving  |--flags--|-prom|--from-|---to--|
//  31..28  27.....24 23....20 19......15 14.12 11....6 5.....0
type Move uint32

// MoveNone is the zero value, never a valid move.
const MoveNone Move = 0

// MoveFlag bits are independent and OR-combinable, e.g. a capturing
// promotion sets both FlagCapture and FlagPromotion.
type MoveFlag uint32

// Flag bits, shifted into their slot in the packed Move.
const (
	FlagCapture        MoveFlag = 1 << 15
	FlagEnPassant      MoveFlag = 1 << 16
	FlagCastling       MoveFlag = 1 << 17
	FlagPromotion      MoveFlag = 1 << 18
	FlagPawnDoublePush MoveFlag = 1 << 19
)

const (
	moveToShift       uint = 0
	moveFromShift     uint = 6
	movePromShift     uint = 12
	moveFlagShift     uint = 15
	movePieceShift    uint = 20
	moveCapturedShift uint = 24

	moveSquareMask Move = 0x3F
	movePromMask   Move = 0x7 << movePromShift
	moveFlagMask   Move = 0x1F << moveFlagShift
	movePieceMask  Move = 0xF << movePieceShift
	moveCaptMask   Move = 0xF << moveCapturedShift
)

// NewMove encodes a quiet or tagged move. flags is the OR of zero or more
// MoveFlag bits; promType is ignored unless FlagPromotion is set.
func NewMove(from, to Square, piece, captured Piece, flags MoveFlag, promType PieceType) Move {
	return Move(to)<<moveToShift |
		Move(from)<<moveFromShift |
		Move(promType)<<movePromShift |
		Move(flags) |
		Move(piece)<<movePieceShift |
		Move(captured)<<moveCapturedShift
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> moveToShift) & moveSquareMask)
}

// From returns the origin square.
func (m Move) From() Square {
	return Square((m >> moveFromShift) & moveSquareMask)
}

// Piece returns the piece making the move.
func (m Move) Piece() Piece {
	return Piece((m & movePieceMask) >> movePieceShift)
}

// Captured returns the captured piece, or PieceNone for a quiet move.
func (m Move) Captured() Piece {
	return Piece((m & moveCaptMask) >> moveCapturedShift)
}

// PromotionType returns the promotion piece type; meaningful only when
// HasFlag(FlagPromotion) is true.
func (m Move) PromotionType() PieceType {
	return PieceType((m & movePromMask) >> movePromShift)
}

// Flags returns the full flag bit set of the move.
func (m Move) Flags() MoveFlag {
	return MoveFlag(m & moveFlagMask)
}

// HasFlag reports whether all bits of f are set on the move.
func (m Move) HasFlag(f MoveFlag) bool {
	return MoveFlag(m)&f == f
}

// IsCapture reports whether the move removes an enemy piece, including
// en passant.
func (m Move) IsCapture() bool {
	return m.HasFlag(FlagCapture)
}

// IsValid checks that the move carries valid, distinct from and to squares.
// Piece codes are not checked. MoveNone is never valid.
func (m Move) IsValid() bool {
	return m != MoveNone && m.From().IsValid() && m.To().IsValid() && m.From() != m.To()
}

// String renders a UCI-style move, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == MoveNone {
		return "0000"
	}
	var os strings.Builder
	os.WriteString(m.From().String())
	os.WriteString(m.To().String())
	if m.HasFlag(FlagPromotion) {
		os.WriteString(strings.ToLower(m.PromotionType().Char()))
	}
	return os.String()
}

// StringVerbose renders a move with all decoded fields, useful for
// debugging and log output.
func (m Move) StringVerbose() string {
	if m == MoveNone {
		return "Move{None}"
	}
	return fmt.Sprintf("Move{%s %s->%s captured:%s flags:%s}",
		m.Piece().String(), m.From().String(), m.To().String(), m.Captured().String(), m.Flags().String())
}

// String lists the set flag names separated by "|", or "quiet" for none.
func (f MoveFlag) String() string {
	if f == 0 {
		return "quiet"
	}
	var parts []string
	if f&FlagCapture != 0 {
		parts = append(parts, "capture")
	}
	if f&FlagEnPassant != 0 {
		parts = append(parts, "enpassant")
	}
	if f&FlagCastling != 0 {
		parts = append(parts, "castling")
	}
	if f&FlagPromotion != 0 {
		parts = append(parts, "promotion")
	}
	if f&FlagPawnDoublePush != 0 {
		parts = append(parts, "doublepush")
	}
	return strings.Join(parts, "|")
}
