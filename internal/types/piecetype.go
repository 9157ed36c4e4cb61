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

// PieceType is a piece kind independent of color.
//  test for non sliding pt & 0b0100 == 0 (must also be non zero)
//  test for sliding pt & 0b0100 != 0 (must also be < 7)
type PieceType uint8

// Piece type constants.
const (
	PtNone   PieceType = 0b0000
	King     PieceType = 0b0001
	Pawn     PieceType = 0b0010
	Knight   PieceType = 0b0011
	Bishop   PieceType = 0b0100
	Rook     PieceType = 0b0101
	Queen    PieceType = 0b0110
	PtLength PieceType = 0b0111
)

// IsValid checks if pt is a valid piece type.
func (pt PieceType) IsValid() bool {
	return pt < PtLength
}

// gamePhaseValue weighs each piece type's contribution to the game phase.
var gamePhaseValue = [PtLength]int{0, 0, 0, 1, 1, 2, 4}

// GamePhaseValue returns the weight of pt used to compute game phase.
func (pt PieceType) GamePhaseValue() int {
	return gamePhaseValue[pt]
}

// pieceTypeValue holds static material values in centipawns.
var pieceTypeValue = [PtLength]Value{0, 2000, 100, 320, 330, 500, 900}

// ValueOf returns the static material value of pt.
func (pt PieceType) ValueOf() Value {
	return pieceTypeValue[pt]
}

var pieceTypeToString = [PtLength]string{"NoPieceType", "King", "Pawn", "Knight", "Bishop", "Rook", "Queen"}

// String returns the full name of pt, e.g. "Knight".
func (pt PieceType) String() string {
	return pieceTypeToString[pt]
}

const pieceTypeToChar = "-KPNBRQ"

// Char returns a single upper case letter for pt, e.g. "N" for Knight.
func (pt PieceType) Char() string {
	return string(pieceTypeToChar[pt])
}
