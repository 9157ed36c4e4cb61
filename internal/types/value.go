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
	"strconv"
	"strings"

	"github.com/frankkopp/FrankyGo/internal/util"
)

// Value is a centipawn evaluation score. Evaluation and search values are
// from the view of the side to move (positive favors the next player).
type Value int16

// Bounds and sentinels used throughout search and evaluation.
const (
	ValueZero     Value = 0
	ValueInf      Value = 15000
	ValueNA       Value = -ValueInf - 1
	ValueMate     Value = 10000
	ValueMateInMaxPly Value = ValueMate - 128
	ValueDraw     Value = 0
	ValueMax      Value = ValueInf
	ValueMin      Value = -ValueInf
)

// IsValid reports whether v is within the representable evaluation range.
func (v Value) IsValid() bool {
	return v >= ValueMin && v <= ValueMax
}

// IsMateValue reports whether v encodes a forced mate score.
func (v Value) IsMateValue() bool {
	return v >= ValueMateInMaxPly || v <= -ValueMateInMaxPly
}

// String renders v as "mate N", "N/A" or "cp N".
func (v Value) String() string {
	var os strings.Builder
	switch {
	case v.IsMateValue():
		os.WriteString("mate ")
		if v < ValueZero {
			os.WriteString("-")
		}
		plies := int(ValueMate) - util.Abs(int(v))
		os.WriteString(strconv.Itoa((plies + 1) / 2))
	case v == ValueNA:
		os.WriteString("N/A")
	default:
		os.WriteString("cp ")
		os.WriteString(strconv.Itoa(int(v)))
	}
	return os.String()
}

// Key is a 64 bit Zobrist hash identifying a position.
type Key uint64

// ValueType tags how a transposition table score bounds the true value.
type ValueType int8

// Transposition table entry types.
const (
	ValueNone  ValueType = 0
	ValueExact ValueType = 1
	ValueAlpha ValueType = 2 // upper bound, score <= alpha when stored
	ValueBeta  ValueType = 3 // lower bound, score >= beta when stored
	ValueTypeLength int = 4
)

// IsValid reports whether vt is a recognized value type.
func (vt ValueType) IsValid() bool {
	return vt >= ValueNone && int(vt) < ValueTypeLength
}

var valueTypeToString = [ValueTypeLength]string{"None", "Exact", "Alpha", "Beta"}

// String returns a label such as "Exact".
func (vt ValueType) String() string {
	return valueTypeToString[vt]
}

// GamePhaseMax is the sum of each side's starting non-pawn, non-king
// material phase weight (4 knights+4 bishops+4 rooks+2 queens using the
// weights in gamePhaseValue), used to normalize the interpolation factor
// between midgame and endgame piece-square tables.
const GamePhaseMax = 24
