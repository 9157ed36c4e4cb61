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

// Package types' magic-bitboard support computes, once at startup, the
// sliding-attack lookup tables rooks and bishops use during move generation
// and search. The search algorithm itself (see the search package) never
// touches this file at runtime; it only reads the tables built here.
package types

// Magic is one square's entry in a fancy-magic sliding-attack table: the
// relevant-occupancy mask, the multiplier that hashes a masked occupancy
// down to a table index, the resulting attack table, and the shift that
// index needs. See https://www.chessprogramming.org/Magic_Bitboards.
type Magic struct {
	Mask    Bitboard
	Magic   Bitboard
	Attacks []Bitboard
	Shift   uint
}

// index hashes a board occupancy down to this square's attack-table slot.
func (m *Magic) index(occupied Bitboard) uint {
	occ := occupied & m.Mask
	occ *= m.Magic
	occ >>= m.Shift
	return uint(occ)
}

// magicSeeds are per-rank seeds for the xorshift64star generator, tuned so
// that searching for a valid magic multiplier per square converges quickly.
var magicSeeds = [RankLength]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

// initMagics populates magics (and the shared backing array table) with a
// valid fancy-magic sliding-attack table for every square, searching along
// the four ray directions handed in (diagonals for bishops, orthogonals for
// rooks). The search-and-verify approach (enumerate occupancy subsets via
// the Carry-Rippler trick, try random sparse multipliers until one maps
// every subset to a collision-free index) is the standard technique
// described at https://www.chessprogramming.org/Magic_Bitboards.
func initMagics(table *[]Bitboard, magics *[64]Magic, directions *[4]Direction) {
	var occupancySubsets, attackReferences [4096]Bitboard
	var verificationEpoch [4096]int
	attempt := 0
	subsetCount := 0

	for sq := SqA1; sq <= SqH8; sq++ {
		// Board edges never vary the relevant occupancy: a slider's attack
		// never depends on whether the square just past the edge is occupied.
		edges := ((Rank1_Bb | Rank8_Bb) &^ sq.RankOf().Bb()) | ((FileA_Bb | FileH_Bb) &^ sq.FileOf().Bb())

		entry := &(*magics)[sq]
		entry.Mask = slidingAttack(directions, sq, BbZero) &^ edges
		entry.Shift = uint(64 - entry.Mask.PopCount())

		// Each square gets its own slice window into the shared backing
		// array rather than its own allocation.
		if sq == SqA1 {
			entry.Attacks = *table
		} else {
			entry.Attacks = magics[sq-1].Attacks[subsetCount:]
		}

		// Enumerate every subset of entry.Mask (Carry-Rippler trick) and
		// record the true sliding attack for that occupancy.
		subsetCount = 0
		var subset Bitboard
		for {
			occupancySubsets[subsetCount] = subset
			attackReferences[subsetCount] = slidingAttack(directions, sq, subset)
			subsetCount++
			subset = (subset - entry.Mask) & entry.Mask
			if subset == 0 {
				break
			}
		}

		rng := newPrnG(magicSeeds[sq.RankOf()])

		// Try random sparse multipliers until one hashes every enumerated
		// subset to the right attack with no collisions. epoch[] lets a
		// failed attempt be detected without rezeroing Attacks every time.
		for i := 0; i < subsetCount; {
			for entry.Magic = 0; ; {
				entry.Magic = Bitboard(rng.sparseRand())
				if ((entry.Magic * entry.Mask) >> 56).PopCount() < 6 {
					break
				}
			}

			attempt++
			for i = 0; i < subsetCount; i++ {
				idx := entry.index(occupancySubsets[i])
				if verificationEpoch[idx] < attempt {
					verificationEpoch[idx] = attempt
					entry.Attacks[idx] = attackReferences[i]
				} else if entry.Attacks[idx] != attackReferences[i] {
					break // collision: i < subsetCount here, so the outer loop retries with a new magic
				}
			}
		}
	}
}

// slidingAttack walks each of the four given ray directions from sq until
// it falls off the board or hits an occupied square, accumulating every
// square it passes through (inclusive of the blocker). It's only called
// during table construction, never during search, so clarity wins over the
// bit-parallel tricks the rest of the package uses.
func slidingAttack(directions *[4]Direction, sq Square, occupied Bitboard) Bitboard {
	attack := BbZero
	for _, dir := range directions {
		from := sq
		for {
			from = from.To(dir)
			if !from.IsValid() {
				break
			}
			attack.PushSquare(from)
			if occupied.Has(from) {
				break
			}
			if next := from.To(dir); !next.IsValid() || SquareDistance(from, next) != 1 {
				break
			}
		}
	}
	return attack
}

// PrnG is a xorshift64star pseudo-random generator, dedicated to the public
// domain by Sebastiano Vigna (http://vigna.di.unimi.it/ftp/papers/xorshift.pdf).
// It needs no warm-up, has a period of 2^64-1, and is only ever used here to
// search for magic multipliers at startup.
type PrnG struct {
	state uint64
}

func newPrnG(seed uint64) *PrnG {
	return &PrnG{state: seed}
}

func (r *PrnG) rand64() uint64 {
	r.state ^= r.state >> 12
	r.state ^= r.state << 25
	r.state ^= r.state >> 27
	return r.state * 2685821657736338717
}

// sparseRand ANDs three draws together so the result has roughly 1/8th of
// its bits set on average, which the magic search needs to converge fast.
func (r *PrnG) sparseRand() uint64 {
	return r.rand64() & r.rand64() & r.rand64()
}
