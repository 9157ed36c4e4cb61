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

// Package movegen contains functionality to create moves on a
// chess position. It implements several variants like
// generate pseudo legal moves, legal moves or on demand
// generation of pseudo legal moves.
package movegen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/op/go-logging"

	"github.com/frankkopp/FrankyGo/internal/enginelog"
	"github.com/frankkopp/FrankyGo/internal/moveslice"
	"github.com/frankkopp/FrankyGo/internal/position"
	. "github.com/frankkopp/FrankyGo/internal/types"
)

var log *logging.Logger

// scoredMove pairs a move with a transient ordering score. The score never
// travels with the move once it leaves the generator.
type scoredMove struct {
	move  Move
	value Value
}

// Movegen data structure. Create new move generator via
//  movegen.NewMoveGen()
// Creating this directly will not work.
type Movegen struct {
	pseudoLegalMoves   *moveslice.MoveSlice
	legalMoves         *moveslice.MoveSlice
	onDemandMoves      *moveslice.MoveSlice
	scored             []scoredMove
	killerMoves        [2]Move
	currentIteratorKey Key
	takeIndex          int
	pvMove             Move
	currentODStage     int8
	pvMovePushed       bool
}

// //////////////////////////////////////////////////////
// // Public
// //////////////////////////////////////////////////////

// GenMode generation modes for on demand move generation
type GenMode int

// GenMode generation modes for on demand move generation
const (
	GenZero   GenMode = 0b00
	GenCap    GenMode = 0b01
	GenNonCap GenMode = 0b10
	GenAll    GenMode = 0b11
)

// NewMoveGen creates a new instance of a move generator
func NewMoveGen() *Movegen {
	if log == nil {
		log = enginelog.GetLog("movegen")
	}
	tmpMg := &Movegen{
		pseudoLegalMoves:   moveslice.NewMoveSlice(MaxMoves),
		legalMoves:         moveslice.NewMoveSlice(MaxMoves),
		onDemandMoves:      moveslice.NewMoveSlice(MaxMoves),
		scored:             make([]scoredMove, 0, MaxMoves),
		killerMoves:        [2]Move{MoveNone, MoveNone},
		pvMove:             MoveNone,
		currentODStage:     odNew,
		currentIteratorKey: 0,
		pvMovePushed:       false,
		takeIndex:          0,
	}
	return tmpMg
}

// GeneratePseudoLegalMoves generates pseudo moves for the next player. Does not check if
// king is left in check or if it passes an attacked square when castling or has been in check
// before castling.
func (mg *Movegen) GeneratePseudoLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.pseudoLegalMoves.Clear()
	mg.scored = mg.scored[:0]

	if mode&GenCap != 0 {
		mg.generatePawnMoves(p, GenCap)
		mg.generateCastling(p, GenCap)
		mg.generateKingMoves(p, GenCap)
		mg.generateMoves(p, GenCap)
	}
	if mode&GenNonCap != 0 {
		mg.generatePawnMoves(p, GenNonCap)
		mg.generateCastling(p, GenNonCap)
		mg.generateKingMoves(p, GenNonCap)
		mg.generateMoves(p, GenNonCap)
	}

	// PV and Killer handling - boost ordering value so they sort first
	for i := range mg.scored {
		switch mg.scored[i].move {
		case mg.pvMove:
			mg.scored[i].value = ValueMax
		case mg.killerMoves[0]:
			mg.scored[i].value = -4000
		case mg.killerMoves[1]:
			mg.scored[i].value = -4001
		}
	}
	mg.flush(mg.pseudoLegalMoves)
	return mg.pseudoLegalMoves
}

// GenerateLegalMoves generates legal moves for the next player.
// Uses GeneratePseudoLegalMoves and filters out illegal moves.
func (mg *Movegen) GenerateLegalMoves(p *position.Position, mode GenMode) *moveslice.MoveSlice {
	mg.legalMoves.Clear()
	mg.GeneratePseudoLegalMoves(p, mode)
	mg.pseudoLegalMoves.FilterCopy(mg.legalMoves, func(i int) bool {
		return p.IsLegalMove(mg.pseudoLegalMoves.At(i))
	})
	return mg.legalMoves
}

// GetNextMove returns the next move for the given position. Usually this would be used in a loop
// during search.
//
// If a PV move is set with SetPvMove this will be returned first
// and will not be returned at its normal place.
// Killer moves will be played as soon as possible. As Killer moves are stored for
// the whole ply a Killer move might not be valid for the current position. Therefore
// we need to wait until they are generated by the phased move generation. Killers will
// then be pushed to the top of the list of the generation stage.
//
// To reuse this on the same position a call to ResetOnDemand() is necessary. This
// is not necessary when a different position is used as this func will reset itself
// in this case.
func (mg *Movegen) GetNextMove(p *position.Position, mode GenMode) Move {
	if p.ZobristKey() != mg.currentIteratorKey {
		mg.onDemandMoves.Clear()
		mg.currentODStage = odNew
		mg.pvMovePushed = false
		mg.takeIndex = 0
		mg.currentIteratorKey = p.ZobristKey()
	}

	// With the takeIndex we can take from the front of the vector
	// without removing the element from the vector, which would
	// be expensive as all elements would have to be shifted.
	if mg.onDemandMoves.Len() == 0 {
		mg.fillOnDemandMoveList(p, mode)
	}

	if mg.onDemandMoves.Len() != 0 {
		if mg.currentODStage != od1 &&
			mg.pvMovePushed &&
			mg.onDemandMoves.At(mg.takeIndex) == mg.pvMove {
			mg.takeIndex++
			mg.pvMovePushed = false
			if mg.takeIndex >= mg.onDemandMoves.Len() {
				mg.takeIndex = 0
				mg.onDemandMoves.Clear()
				mg.fillOnDemandMoveList(p, mode)
				if mg.onDemandMoves.Len() == 0 {
					return MoveNone
				}
			}
		}

		move := mg.onDemandMoves.At(mg.takeIndex)
		mg.takeIndex++
		if mg.takeIndex >= mg.onDemandMoves.Len() {
			mg.takeIndex = 0
			mg.onDemandMoves.Clear()
		}
		return move
	}

	mg.takeIndex = 0
	mg.pvMovePushed = false
	return MoveNone
}

// ResetOnDemand resets the move on demand generator to start fresh.
// Also deletes Killer and PV moves
func (mg *Movegen) ResetOnDemand() {
	mg.onDemandMoves.Clear()
	mg.currentODStage = odNew
	mg.currentIteratorKey = 0
	mg.pvMove = MoveNone
	mg.pvMovePushed = false
	mg.takeIndex = 0
}

// SetPvMove sets a PV move which should be returned first by
// the OnDemand MoveGenerator.
func (mg *Movegen) SetPvMove(move Move) {
	mg.pvMove = move
}

// StoreKiller provides the on demand move generator with a new killer move
// which should be returned as soon as possible when generating moves with
// the on demand generator.
func (mg *Movegen) StoreKiller(move Move) {
	if mg.killerMoves[0] == move {
		return
	} else if mg.killerMoves[1] == move {
		mg.killerMoves[1] = mg.killerMoves[0]
		mg.killerMoves[0] = move
	} else {
		mg.killerMoves[1] = mg.killerMoves[0]
		mg.killerMoves[0] = move
	}
}

// HasLegalMove determines if we have at least one legal move. We only have to find
// one legal move. We search for any KING, PAWN, KNIGHT, BISHOP, ROOK, QUEEN move
// and return immediately if we found one.
// The order of our search is approx from the most likely to the least likely.
func (mg *Movegen) HasLegalMove(p *position.Position) bool {
	nextPlayer := p.NextPlayer()
	nextPlayerBb := p.OccupiedBb(nextPlayer)
	kingPiece := MakePiece(nextPlayer, King)
	pawnPiece := MakePiece(nextPlayer, Pawn)

	// KING
	// We do not need to check castling as possible castling implies King or Rook moves
	kingSquare := p.KingSquare(nextPlayer)
	tmpMoves := GetPseudoAttacks(King, kingSquare) &^ nextPlayerBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		if p.IsLegalMove(NewMove(kingSquare, toSquare, kingPiece, p.GetPiece(toSquare), 0, PtNone)) {
			return true
		}
	}

	myPawns := p.PiecesBb(nextPlayer, Pawn)
	opponentBb := p.OccupiedBb(nextPlayer.Flip())

	// PAWN captures to the west and east (includes promotions)
	for _, dir := range []Direction{West, East} {
		tmpMoves = ShiftBitboard(myPawns, nextPlayer.MoveDirection()+dir) & opponentBb
		for tmpMoves != 0 {
			toSquare := tmpMoves.PopLsb()
			fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection() - dir)
			if p.IsLegalMove(NewMove(fromSquare, toSquare, pawnPiece, p.GetPiece(toSquare), 0, PtNone)) {
				return true
			}
		}
	}

	occupiedBb := p.OccupiedAll()

	// pawn pushes - single step is enough to prove a legal move exists
	tmpMoves = ShiftBitboard(myPawns, nextPlayer.MoveDirection()) &^ occupiedBb
	for tmpMoves != 0 {
		toSquare := tmpMoves.PopLsb()
		fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection())
		if p.IsLegalMove(NewMove(fromSquare, toSquare, pawnPiece, PieceNone, 0, PtNone)) {
			return true
		}
	}

	// OFFICERS
	for pt := Knight; pt <= Queen; pt++ {
		piece := MakePiece(nextPlayer, pt)
		pieces := p.PiecesBb(nextPlayer, pt)
		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			moves := GetAttacksBb(pt, fromSquare, occupiedBb) &^ nextPlayerBb
			for moves != 0 {
				toSquare := moves.PopLsb()
				if p.IsLegalMove(NewMove(fromSquare, toSquare, piece, p.GetPiece(toSquare), 0, PtNone)) {
					return true
				}
			}
		}
	}

	// en passant captures
	enPassantSquare := p.GetEnPassantSquare()
	if enPassantSquare != SqNone {
		opponentPawn := MakePiece(nextPlayer.Flip(), Pawn)
		for _, dir := range []Direction{West, East} {
			tmpMoves = ShiftBitboard(enPassantSquare.Bb(), nextPlayer.Flip().MoveDirection()+dir) & myPawns
			if tmpMoves != 0 {
				fromSquare := tmpMoves.PopLsb()
				toSquare := fromSquare.To(nextPlayer.MoveDirection() - dir)
				if p.IsLegalMove(NewMove(fromSquare, toSquare, pawnPiece, opponentPawn, FlagEnPassant|FlagCapture, PtNone)) {
					return true
				}
			}
		}
	}

	return false
}

// Regex for UCI notation (UCI)
var regexUciMove = regexp.MustCompile("([a-h][1-8][a-h][1-8])([NBRQnbrq])?")

// GetMoveFromUci Generates all legal moves and matches the given UCI
// move string against them. If there is a match the actual move is returned.
// Otherwise MoveNone is returned.
//
// As this uses string creation and comparison this is not very efficient.
// Use only when performance is not critical.
func (mg *Movegen) GetMoveFromUci(posPtr *position.Position, uciMove string) Move {
	matches := regexUciMove.FindStringSubmatch(uciMove)
	if matches == nil {
		return MoveNone
	}

	movePart := matches[1]
	promotionPart := ""
	if len(matches) == 3 {
		// input may carry either case for the promotion letter
		promotionPart = strings.ToLower(matches[2])
	}

	mg.GenerateLegalMoves(posPtr, GenAll)
	for _, m := range *mg.legalMoves {
		if m.String() == movePart+promotionPart {
			return m
		}
	}
	return MoveNone
}

var regexSanMove = regexp.MustCompile("([NBRQK])?([a-h])?([1-8])?x?([a-h][1-8]|O-O-O|O-O)(=?([NBRQ]))?([!?+#]*)?")

// GetMoveFromSan Generates all legal moves and matches the given SAN
// move string against them. If there is a match the actual move is returned.
// Otherwise MoveNone is returned.
//
// As this uses string creation and comparison this is not very efficient.
// Use only when performance is not critical.
func (mg *Movegen) GetMoveFromSan(posPtr *position.Position, sanMove string) Move {
	matches := regexSanMove.FindStringSubmatch(sanMove)
	if matches == nil {
		return MoveNone
	}

	pieceType := matches[1]
	disambFile := matches[2]
	disambRank := matches[3]
	toSquare := matches[4]
	promotion := matches[6]

	movesFound := 0
	moveFromSAN := MoveNone

	mg.GenerateLegalMoves(posPtr, GenAll)
	for _, genMove := range *mg.legalMoves {
		if genMove.HasFlag(FlagCastling) {
			kingToSquare := genMove.To()
			var castlingString string
			switch kingToSquare {
			case SqG1, SqG8:
				castlingString = "O-O"
			case SqC1, SqC8:
				castlingString = "O-O-O"
			default:
				log.Errorf("castling move with invalid to square: %s", kingToSquare.String())
				continue
			}
			if castlingString == toSquare {
				moveFromSAN = genMove
				movesFound++
				continue
			}
		}

		moveTarget := genMove.To().String()
		if moveTarget == toSquare {
			legalPt := posPtr.GetPiece(genMove.From()).TypeOf()
			legalPtChar := legalPt.Char()
			if (len(pieceType) == 0 || legalPtChar != pieceType) &&
				(len(pieceType) != 0 || legalPt != Pawn) {
				continue
			}
			if len(disambFile) != 0 && genMove.From().FileOf().String() != disambFile {
				continue
			}
			if len(disambRank) != 0 && genMove.From().RankOf().String() != disambRank {
				continue
			}
			if (len(promotion) != 0 && genMove.PromotionType().Char() != promotion) ||
				(len(promotion) == 0 && genMove.HasFlag(FlagPromotion)) {
				continue
			}
			moveFromSAN = genMove
			movesFound++
		}
	}

	if movesFound > 1 {
		log.Warningf("SAN move %s is ambiguous (%d matches) on %s!", sanMove, movesFound, posPtr.StringFen())
	} else if movesFound == 0 || !moveFromSAN.IsValid() {
		log.Warningf("SAN move not valid! SAN move %s not found on position: %s", sanMove, posPtr.StringFen())
	} else {
		return moveFromSAN
	}
	return MoveNone
}

// ValidateMove validates if a move is a valid move on the given position
func (mg *Movegen) ValidateMove(p *position.Position, move Move) bool {
	if move == MoveNone {
		return false
	}
	ml := mg.GenerateLegalMoves(p, GenAll)
	for _, m := range *ml {
		if move == m {
			return true
		}
	}
	return false
}

// PvMove returns the current PV move
func (mg *Movegen) PvMove() Move {
	return mg.pvMove
}

// KillerMoves returns a pointer to the killer moves array
func (mg *Movegen) KillerMoves() *[2]Move {
	return &mg.killerMoves
}

// String returns a string representation of a MoveGen instance
func (mg *Movegen) String() string {
	return fmt.Sprintf("MoveGen: { OnDemand Stage: { %d }, PV Move: %s Killer Move 1: %s Killer Move 2: %s }",
		mg.currentODStage, mg.pvMove.String(), mg.killerMoves[0].String(), mg.killerMoves[1].String())
}

// //////////////////////////////////////////////////////
// // Private
// //////////////////////////////////////////////////////

// States for the on demand move generator
const (
	odNew = iota
	odPv
	od1
	od2
	od3
	od4
	od5
	od6
	od7
	od8
	odEnd
)

// add appends a scored candidate move to the generator's scratch buffer.
func (mg *Movegen) add(from, to Square, piece, captured Piece, flags MoveFlag, promType PieceType, value Value) {
	mg.scored = append(mg.scored, scoredMove{NewMove(from, to, piece, captured, flags, promType), value})
}

// flush sorts the scratch buffer from highest to lowest value and appends
// the bare moves, in that order, to dst. The buffer is left empty.
func (mg *Movegen) flush(dst *moveslice.MoveSlice) {
	sortScoredDesc(mg.scored)
	for _, sm := range mg.scored {
		dst.PushBack(sm.move)
	}
	mg.scored = mg.scored[:0]
}

// sortScoredDesc is a stable insertion sort as move batches are small and
// mostly already grouped by the generation phase.
func sortScoredDesc(s []scoredMove) {
	for i := 1; i < len(s); i++ {
		tmp := s[i]
		j := i
		for j > 0 && s[j-1].value < tmp.value {
			s[j] = s[j-1]
			j--
		}
		s[j] = tmp
	}
}

// This calls the actual generation of moves in phases. The phases match roughly
// the order of most promising moves first.
func (mg *Movegen) fillOnDemandMoveList(p *position.Position, mode GenMode) {
	for mg.onDemandMoves.Len() == 0 && mg.currentODStage < odEnd {
		switch mg.currentODStage {
		case odNew:
			mg.currentODStage = odPv
			fallthrough
		case odPv:
			if mg.pvMove != MoveNone {
				switch mode {
				case GenAll:
					mg.pvMovePushed = true
					mg.onDemandMoves.PushBack(mg.pvMove)
				case GenCap:
					if p.IsCapturingMove(mg.pvMove) {
						mg.pvMovePushed = true
						mg.onDemandMoves.PushBack(mg.pvMove)
					}
				case GenNonCap:
					if !p.IsCapturingMove(mg.pvMove) {
						mg.pvMovePushed = true
						mg.onDemandMoves.PushBack(mg.pvMove)
					}
				}
			}
			if mode&GenCap != 0 {
				mg.currentODStage = od1
			} else {
				mg.currentODStage = od4
			}
		case od1: // capture
			mg.scored = mg.scored[:0]
			mg.generatePawnMoves(p, GenCap)
			mg.flush(mg.onDemandMoves)
			mg.currentODStage = od2
		case od2:
			mg.scored = mg.scored[:0]
			mg.generateMoves(p, GenCap)
			mg.flush(mg.onDemandMoves)
			mg.currentODStage = od3
		case od3:
			mg.scored = mg.scored[:0]
			mg.generateKingMoves(p, GenCap)
			mg.flush(mg.onDemandMoves)
			mg.currentODStage = od4
		case od4:
			if mode&GenNonCap != 0 {
				mg.currentODStage = od5
			} else {
				mg.currentODStage = odEnd
			}
		case od5: // non capture
			mg.scored = mg.scored[:0]
			mg.generatePawnMoves(p, GenNonCap)
			mg.pushKiller()
			mg.flush(mg.onDemandMoves)
			mg.currentODStage = od6
		case od6:
			mg.scored = mg.scored[:0]
			mg.generateCastling(p, GenNonCap)
			mg.pushKiller()
			mg.flush(mg.onDemandMoves)
			mg.currentODStage = od7
		case od7:
			mg.scored = mg.scored[:0]
			mg.generateMoves(p, GenNonCap)
			mg.pushKiller()
			mg.flush(mg.onDemandMoves)
			mg.currentODStage = od8
		case od8:
			mg.scored = mg.scored[:0]
			mg.generateKingMoves(p, GenNonCap)
			mg.pushKiller()
			mg.flush(mg.onDemandMoves)
			mg.currentODStage = odEnd
		case odEnd:
			break
		}
	}
}

// pushKiller boosts the ordering value of killer moves found in the current
// scratch buffer so they sort to the front once flushed.
func (mg *Movegen) pushKiller() {
	for i := range mg.scored {
		if mg.killerMoves[1] == mg.scored[i].move {
			mg.scored[i].value = -4001
		}
		if mg.killerMoves[0] == mg.scored[i].move {
			mg.scored[i].value = -4000
		}
	}
}

func (mg *Movegen) generatePawnMoves(p *position.Position, mode GenMode) {
	nextPlayer := p.NextPlayer()
	myPawns := p.PiecesBb(nextPlayer, Pawn)
	oppPieces := p.OccupiedBb(nextPlayer.Flip())
	gamePhase := p.GamePhase()
	piece := MakePiece(nextPlayer, Pawn)

	// captures
	// All moves get sort values so that sort order should roughly be:
	//   captures: most value victim least value attacker - promotion piece value
	//   non captures: killer (TBD), promotions, castling, normal moves (position value)
	// Values for sorting are descending - the most valuable move has the highest value.
	if mode&GenCap != 0 {
		var tmpCaptures, promCaptures Bitboard

		for _, dir := range []Direction{West, East} {
			tmpCaptures = ShiftBitboard(myPawns, nextPlayer.MoveDirection()+dir) & oppPieces
			promCaptures = tmpCaptures & nextPlayer.PromotionRankBb()
			for promCaptures != 0 {
				toSquare := promCaptures.PopLsb()
				fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection() - dir)
				capturedPc := p.GetPiece(toSquare)
				value := capturedPc.ValueOf() - piece.ValueOf() + PosValue(piece, toSquare, gamePhase)
				mg.add(fromSquare, toSquare, piece, capturedPc, FlagCapture|FlagPromotion, Queen, value+Queen.ValueOf())
				mg.add(fromSquare, toSquare, piece, capturedPc, FlagCapture|FlagPromotion, Knight, value+Knight.ValueOf())
				// rook and bishop promotions are usually redundant to queen promotion
				// (except in stale mate situations) so give them lower sort order
				mg.add(fromSquare, toSquare, piece, capturedPc, FlagCapture|FlagPromotion, Rook, value+Rook.ValueOf()-Value(2000))
				mg.add(fromSquare, toSquare, piece, capturedPc, FlagCapture|FlagPromotion, Bishop, value+Bishop.ValueOf()-Value(2000))
			}

			tmpCaptures &= ^nextPlayer.PromotionRankBb()
			for tmpCaptures != 0 {
				toSquare := tmpCaptures.PopLsb()
				fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection() - dir)
				capturedPc := p.GetPiece(toSquare)
				value := capturedPc.ValueOf() - piece.ValueOf() + PosValue(piece, toSquare, gamePhase)
				mg.add(fromSquare, toSquare, piece, capturedPc, FlagCapture, PtNone, value)
			}
		}

		enPassantSquare := p.GetEnPassantSquare()
		if enPassantSquare != SqNone {
			opponentPawn := MakePiece(nextPlayer.Flip(), Pawn)
			for _, dir := range []Direction{West, East} {
				tmpCaptures = ShiftBitboard(enPassantSquare.Bb(), nextPlayer.Flip().MoveDirection()+dir) & myPawns
				if tmpCaptures != 0 {
					fromSquare := tmpCaptures.PopLsb()
					toSquare := fromSquare.To(nextPlayer.MoveDirection() - dir)
					value := PosValue(piece, toSquare, gamePhase)
					mg.add(fromSquare, toSquare, piece, opponentPawn, FlagEnPassant|FlagCapture, PtNone, value)
				}
			}
		}
	}

	// non captures
	if mode&GenNonCap != 0 {
		tmpMoves := ShiftBitboard(myPawns, nextPlayer.MoveDirection()) &^ p.OccupiedAll()
		tmpMovesDouble := ShiftBitboard(tmpMoves&nextPlayer.PawnDoubleTransitRank(), nextPlayer.MoveDirection()) &^ p.OccupiedAll()

		promMoves := tmpMoves & nextPlayer.PromotionRankBb()
		for promMoves != 0 {
			toSquare := promMoves.PopLsb()
			fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection())
			value := Value(-10_000)
			mg.add(fromSquare, toSquare, piece, PieceNone, FlagPromotion, Queen, value+Queen.ValueOf())
			mg.add(fromSquare, toSquare, piece, PieceNone, FlagPromotion, Knight, value+Knight.ValueOf())
			mg.add(fromSquare, toSquare, piece, PieceNone, FlagPromotion, Rook, value+Rook.ValueOf()-Value(2000))
			mg.add(fromSquare, toSquare, piece, PieceNone, FlagPromotion, Bishop, value+Bishop.ValueOf()-Value(2000))
		}

		for tmpMovesDouble != 0 {
			toSquare := tmpMovesDouble.PopLsb()
			fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection()).To(nextPlayer.Flip().MoveDirection())
			value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
			mg.add(fromSquare, toSquare, piece, PieceNone, FlagPawnDoublePush, PtNone, value)
		}

		tmpMoves &= ^nextPlayer.PromotionRankBb()
		for tmpMoves != 0 {
			toSquare := tmpMoves.PopLsb()
			fromSquare := toSquare.To(nextPlayer.Flip().MoveDirection())
			value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
			mg.add(fromSquare, toSquare, piece, PieceNone, 0, PtNone, value)
		}
	}
}

func (mg *Movegen) generateCastling(p *position.Position, mode GenMode) {
	nextPlayer := p.NextPlayer()
	occupiedBB := p.OccupiedAll()
	king := MakePiece(nextPlayer, King)

	// pseudo castling - we do not check here if the king is in check,
	// passes an attacked square, or ends up attacked; IsLegalMove does.
	if mode&GenNonCap != 0 && p.CastlingRights() != CastlingNone {
		cr := p.CastlingRights()
		if nextPlayer == White {
			if cr.Has(CastlingWhiteOO) && Intermediate(SqE1, SqH1)&occupiedBB == 0 {
				mg.add(SqE1, SqG1, king, PieceNone, FlagCastling, PtNone, Value(-5000))
			}
			if cr.Has(CastlingWhiteOOO) && Intermediate(SqE1, SqA1)&occupiedBB == 0 {
				mg.add(SqE1, SqC1, king, PieceNone, FlagCastling, PtNone, Value(-5000))
			}
		} else {
			if cr.Has(CastlingBlackOO) && Intermediate(SqE8, SqH8)&occupiedBB == 0 {
				mg.add(SqE8, SqG8, king, PieceNone, FlagCastling, PtNone, Value(-5000))
			}
			if cr.Has(CastlingBlackOOO) && Intermediate(SqE8, SqA8)&occupiedBB == 0 {
				mg.add(SqE8, SqC8, king, PieceNone, FlagCastling, PtNone, Value(-5000))
			}
		}
	}
}

func (mg *Movegen) generateKingMoves(p *position.Position, mode GenMode) {
	nextPlayer := p.NextPlayer()
	piece := MakePiece(nextPlayer, King)
	gamePhase := p.GamePhase()
	kingSquareBb := p.PiecesBb(nextPlayer, King)
	fromSquare := kingSquareBb.PopLsb()

	pseudoMoves := GetPseudoAttacks(King, fromSquare)

	if mode&GenCap != 0 {
		captures := pseudoMoves & p.OccupiedBb(nextPlayer.Flip())
		for captures != 0 {
			toSquare := captures.PopLsb()
			capturedPc := p.GetPiece(toSquare)
			value := capturedPc.ValueOf() - piece.ValueOf() + PosValue(piece, toSquare, gamePhase)
			mg.add(fromSquare, toSquare, piece, capturedPc, FlagCapture, PtNone, value)
		}
	}

	if mode&GenNonCap != 0 {
		nonCaptures := pseudoMoves &^ p.OccupiedAll()
		for nonCaptures != 0 {
			toSquare := nonCaptures.PopLsb()
			value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
			mg.add(fromSquare, toSquare, piece, PieceNone, 0, PtNone, value)
		}
	}
}

// generateMoves generates knight/bishop/rook/queen moves using the
// precomputed magic-bitboard attacks.
func (mg *Movegen) generateMoves(p *position.Position, mode GenMode) {
	nextPlayer := p.NextPlayer()
	gamePhase := p.GamePhase()
	occupiedBb := p.OccupiedAll()

	for pt := Knight; pt <= Queen; pt++ {
		pieces := p.PiecesBb(nextPlayer, pt)
		piece := MakePiece(nextPlayer, pt)

		for pieces != 0 {
			fromSquare := pieces.PopLsb()
			moves := GetAttacksBb(pt, fromSquare, occupiedBb)

			if mode&GenCap != 0 {
				captures := moves & p.OccupiedBb(nextPlayer.Flip())
				for captures != 0 {
					toSquare := captures.PopLsb()
					capturedPc := p.GetPiece(toSquare)
					value := capturedPc.ValueOf() - piece.ValueOf() + PosValue(piece, toSquare, gamePhase)
					mg.add(fromSquare, toSquare, piece, capturedPc, FlagCapture, PtNone, value)
				}
			}

			if mode&GenNonCap != 0 {
				nonCaptures := moves &^ occupiedBb
				for nonCaptures != 0 {
					toSquare := nonCaptures.PopLsb()
					value := Value(-10_000) + PosValue(piece, toSquare, gamePhase)
					mg.add(fromSquare, toSquare, piece, PieceNone, 0, PtNone, value)
				}
			}
		}
	}
}
