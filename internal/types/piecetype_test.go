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

func TestPieceType_ValueOf(t *testing.T) {
	assert.Equal(t, Value(100), Pawn.ValueOf())
	assert.Equal(t, Value(320), Knight.ValueOf())
	assert.Equal(t, Value(330), Bishop.ValueOf())
	assert.Equal(t, Value(500), Rook.ValueOf())
	assert.Equal(t, Value(900), Queen.ValueOf())
	assert.Equal(t, Value(2000), King.ValueOf())
}

func TestPieceType_GamePhaseValue(t *testing.T) {
	assert.Equal(t, 0, Pawn.GamePhaseValue())
	assert.Equal(t, 1, Knight.GamePhaseValue())
	assert.Equal(t, 1, Bishop.GamePhaseValue())
	assert.Equal(t, 2, Rook.GamePhaseValue())
	assert.Equal(t, 4, Queen.GamePhaseValue())
	assert.Equal(t, 24, 4*Knight.GamePhaseValue()+4*Bishop.GamePhaseValue()+4*Rook.GamePhaseValue()+2*Queen.GamePhaseValue())
}

func TestPieceType_Char(t *testing.T) {
	assert.Equal(t, "N", Knight.Char())
	assert.Equal(t, "Q", Queen.Char())
	assert.Equal(t, "-", PtNone.Char())
}

func TestPieceType_IsValid(t *testing.T) {
	assert.True(t, Queen.IsValid())
	assert.False(t, PtLength.IsValid())
}
