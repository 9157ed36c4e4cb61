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

// zobristRandom is a xorshift64star pseudo-random number generator, based
// on code written and dedicated to the public domain by Sebastiano Vigna
// (2014). 64-bit output, no warm-up required, period 2^64-1.
type zobristRandom struct {
	s uint64
}

func newZobristRandom(seed uint64) zobristRandom {
	if seed == 0 {
		panic("zobrist random seed must not be zero")
	}
	return zobristRandom{seed}
}

func (r *zobristRandom) rand64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * uint64(2685821657736338717)
}

// zobrist holds the random keys used to incrementally maintain a
// position's Zobrist hash: one key per piece/square combination, one per
// castling right combination, one per en passant file, plus a single key
// toggled whenever the side to move changes.
type zobrist struct {
	pieces         [PieceLength][SqLength]Key
	castlingRights [CastlingRightsLength]Key
	enPassantFile  [8]Key
	nextPlayer     Key
}

var zobristBase = zobrist{}

// zobristSeed is fixed so that hash values are reproducible across runs,
// which matters for opening book lookups and reproducing test failures.
const zobristSeed = 1070372

func initZobrist() {
	r := newZobristRandom(zobristSeed)
	for pc := PieceNone; pc < PieceLength; pc++ {
		for sq := SqA1; sq < SqNone; sq++ {
			zobristBase.pieces[pc][sq] = Key(r.rand64())
		}
	}
	for cr := CastlingNone; cr < CastlingRightsLength; cr++ {
		zobristBase.castlingRights[cr] = Key(r.rand64())
	}
	for f := FileA; f <= FileH; f++ {
		zobristBase.enPassantFile[f] = Key(r.rand64())
	}
	zobristBase.nextPlayer = Key(r.rand64())
}

// ZobristPiece returns the key to XOR in or out when p stands or no longer
// stands on sq.
func ZobristPiece(p Piece, sq Square) Key {
	return zobristBase.pieces[p][sq]
}

// ZobristCastling returns the key for a given castling rights combination.
func ZobristCastling(cr CastlingRights) Key {
	return zobristBase.castlingRights[cr]
}

// ZobristEnPassant returns the key for an en passant capture being
// available on file f.
func ZobristEnPassant(f File) Key {
	return zobristBase.enPassantFile[f]
}

// ZobristNextPlayer returns the key toggled whenever the side to move
// changes.
func ZobristNextPlayer() Key {
	return zobristBase.nextPlayer
}
