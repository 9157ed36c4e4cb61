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

package search

import (
	"sort"
	"strings"

	"github.com/frankkopp/FrankyGo/internal/moveslice"
	. "github.com/frankkopp/FrankyGo/internal/types"
)

// RootMove pairs a root move with the value found for it in the most
// recently completed search iteration. A Move has no spare bits to carry
// a value (unlike transposition table entries, which store them as
// separate fields too), so root move ordering tracks value alongside
// the move rather than packed into it.
type RootMove struct {
	Move  Move
	Value Value
}

// RootMoveList is the set of legal moves at the search root, kept sorted
// by value (descending) between iterations so the next iteration starts
// with the move iterative deepening currently believes is best.
type RootMoveList []RootMove

// newRootMoveList builds a RootMoveList from a plain legal move list with
// all values unknown.
func newRootMoveList(moves *moveslice.MoveSlice) *RootMoveList {
	list := make(RootMoveList, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		list[i] = RootMove{Move: moves.At(i), Value: ValueNA}
	}
	return &list
}

// Len returns the number of root moves.
func (rml *RootMoveList) Len() int {
	return len(*rml)
}

// set records the value found for the root move at index i.
func (rml *RootMoveList) set(i int, value Value) {
	(*rml)[i].Value = value
}

// sort reorders root moves by value, best first. Ties keep their
// relative order so an unsearched move (ValueNA) never jumps ahead of
// one that has actually been evaluated.
func (rml *RootMoveList) sort() {
	sort.SliceStable(*rml, func(i, j int) bool {
		return (*rml)[i].Value > (*rml)[j].Value
	})
}

func (rml RootMoveList) String() string {
	var sb strings.Builder
	for i, rm := range rml {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(rm.Move.String())
		sb.WriteString("(")
		sb.WriteString(rm.Value.String())
		sb.WriteString(")")
	}
	return sb.String()
}
