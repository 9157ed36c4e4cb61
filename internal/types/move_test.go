//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMove_Quiet(t *testing.T) {
	m := NewMove(SqE2, SqE4, WhitePawn, PieceNone, FlagPawnDoublePush, PtNone)
	assert.Equal(t, SqE2, m.From())
	assert.Equal(t, SqE4, m.To())
	assert.Equal(t, WhitePawn, m.Piece())
	assert.Equal(t, PieceNone, m.Captured())
	assert.False(t, m.IsCapture())
	assert.True(t, m.HasFlag(FlagPawnDoublePush))
	assert.Equal(t, "e2e4", m.String())
}

func TestNewMove_Capture(t *testing.T) {
	m := NewMove(SqD4, SqE5, WhitePawn, BlackPawn, FlagCapture, PtNone)
	assert.True(t, m.IsCapture())
	assert.Equal(t, BlackPawn, m.Captured())
	assert.False(t, m.HasFlag(FlagPromotion))
}

func TestNewMove_CapturingPromotion(t *testing.T) {
	m := NewMove(SqD7, SqE8, WhitePawn, BlackRook, FlagCapture|FlagPromotion, Queen)
	assert.True(t, m.IsCapture())
	assert.True(t, m.HasFlag(FlagPromotion))
	assert.Equal(t, Queen, m.PromotionType())
	assert.Equal(t, "d7e8q", m.String())
}

func TestNewMove_EnPassant(t *testing.T) {
	m := NewMove(SqE5, SqD6, WhitePawn, BlackPawn, FlagCapture|FlagEnPassant, PtNone)
	assert.True(t, m.HasFlag(FlagEnPassant))
	assert.True(t, m.IsCapture())
}

func TestNewMove_Castling(t *testing.T) {
	m := NewMove(SqE1, SqG1, WhiteKing, PieceNone, FlagCastling, PtNone)
	assert.True(t, m.HasFlag(FlagCastling))
	assert.False(t, m.IsCapture())
	assert.Equal(t, "e1g1", m.String())
}

func TestMove_IsValid(t *testing.T) {
	assert.False(t, MoveNone.IsValid())
	m := NewMove(SqA1, SqA2, WhiteRook, PieceNone, 0, PtNone)
	assert.True(t, m.IsValid())
}

func TestMove_String_None(t *testing.T) {
	assert.Equal(t, "0000", MoveNone.String())
}

func TestMoveFlag_String(t *testing.T) {
	assert.Equal(t, "quiet", MoveFlag(0).String())
	assert.Equal(t, "capture", FlagCapture.String())
	assert.Equal(t, "capture|promotion", (FlagCapture | FlagPromotion).String())
}
