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

package config

type evalConfiguration struct {

	// evaluation values
	UseMaterialEval   bool
	UsePositionalEval bool
	UseLazyEval       bool
	LazyEvalThreshold int16

	Tempo int16

	UseAttacksInEval bool

	UseMobility   bool
	MobilityBonus int16

	UseAdvancedPieceEval bool
	BishopPairBonus      int16
	MinorBehindPawnBonus int16
	BishopPawnMalus      int16
	BishopCenterAimBonus int16
	BishopBlockedMalus   int16
	RookOnQueenFileBonus int16
	RookOnOpenFileBonus  int16
	RookTrappedMalus     int16
	KingRingAttacksBonus int16

	UseKingEval               bool
	KingCastlePawnShieldBonus int16
	KingDangerMalus           int16
	KingDefenderBonus         int16

	// PAWNS
	UsePawnEval   bool
	UsePawnCache  bool
	PawnCacheSize int

	PawnIsolatedMidMalus  int16
	PawnIsolatedEndMalus  int16
	PawnDoubledMidMalus   int16
	PawnDoubledEndMalus   int16
	PawnPassedMidBonus    int16
	PawnPassedEndBonus    int16
	PawnBlockedMidMalus   int16
	PawnBlockedEndMalus   int16
	PawnPhalanxMidBonus   int16
	PawnPhalanxEndBonus   int16
	PawnSupportedMidBonus int16
	PawnSupportedEndBonus int16
}

// defaultEvalConfiguration holds the built-in tuning values, applied before
// any config file is read and used verbatim for fields the file omits.
var defaultEvalConfiguration = evalConfiguration{
	UseMaterialEval:   true,
	UsePositionalEval: true,
	UseLazyEval:       false,
	LazyEvalThreshold: 700,

	Tempo: 34,

	UseAttacksInEval: false,

	UseMobility:   false,
	MobilityBonus: 5, // per piece and attacked square

	UseAdvancedPieceEval: false,
	KingCastlePawnShieldBonus: 15,
	KingRingAttacksBonus:      10, // per piece and attacked king ring square
	MinorBehindPawnBonus:      15, // per piece and times game phase
	BishopPairBonus:           20, // once
	BishopPawnMalus:           5,  // per pawn and times ~game phase
	BishopCenterAimBonus:      20, // per bishop and times game phase
	BishopBlockedMalus:        40, // per bishop
	RookOnQueenFileBonus:      6,  // per rook
	RookOnOpenFileBonus:       25, // per rook and times game phase
	RookTrappedMalus:          40, // per rook and times game phase

	UseKingEval:       false,
	KingDangerMalus:   50, // (attackers - defenders) * malus when attackers > defenders
	KingDefenderBonus: 10, // (defenders - attackers) * bonus when attackers <= defenders

	UsePawnEval:   false,
	UsePawnCache:  false,
	PawnCacheSize: 64,

	PawnIsolatedMidMalus:  -10,
	PawnIsolatedEndMalus:  -20,
	PawnDoubledMidMalus:   -10,
	PawnDoubledEndMalus:   -30,
	PawnPassedMidBonus:    20,
	PawnPassedEndBonus:    40,
	PawnBlockedMidMalus:   -2,
	PawnBlockedEndMalus:   -20,
	PawnPhalanxMidBonus:   4,
	PawnPhalanxEndBonus:   4,
	PawnSupportedMidBonus: 10,
	PawnSupportedEndBonus: 15,
}

// init seeds Settings.Eval with the built-in tuning defaults; Setup may
// later overwrite individual fields from a config file.
func init() {
	Settings.Eval = defaultEvalConfiguration
}

// setupEval is a hook for post-load eval configuration adjustments; none
// are currently needed beyond the init defaults and whatever the config
// file overrode directly.
func setupEval() {
}
