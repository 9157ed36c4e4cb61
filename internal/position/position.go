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

// Package position represents data structures and functions for a chess board
// and its position.
// It uses an 8x8 piece board plus bitboards, a stack for undo moves, Zobrist keys
// for transposition tables, and incrementally maintained material and positional
// value counters.
//
// Create a new instance with NewPosition() for the start position or
// NewPositionFen(fen) for an arbitrary position.
package position

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/op/go-logging"

	"github.com/frankkopp/FrankyGo/internal/assert"
	"github.com/frankkopp/FrankyGo/internal/enginelog"
	. "github.com/frankkopp/FrankyGo/internal/types"
)

var log *logging.Logger

func init() {
	Init()
}

// StartFen is the FEN of the standard chess starting position.
const StartFen string = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position represents the chess board and its position.
// It uses an 8x8 piece board and bitboards, a stack for undo moves, Zobrist
// keys for transposition tables, and material/positional value counters.
//
// Create with NewPosition() or NewPositionFen(fen).
type Position struct {
	// zobristKey is the hash key used for transposition table lookups. It is
	// updated incrementally whenever a state variable changes.
	zobristKey Key

	// pawnKey hashes only pawn placement, for the evaluator's pawn
	// structure cache. Updated incrementally alongside zobristKey.
	pawnKey Key

	// Board state - a unique chess position (exception: 3-fold repetition,
	// which is not represented in a FEN string)
	board           [SqLength]Piece
	castlingRights  CastlingRights
	enPassantSquare Square
	halfMoveClock   int
	nextPlayer      Color

	// Extended board state - not necessary for a unique position
	kingSquare         [ColorLength]Square
	nextHalfMoveNumber int
	piecesBb           [ColorLength][PtLength]Bitboard
	occupiedBb         [ColorLength]Bitboard

	// history for undo and repetition detection
	historyCounter int
	history        [maxHistory]historyState

	// incrementally maintained by putPiece/removePiece
	material        [ColorLength]Value
	materialNonPawn [ColorLength]Value
	psqMidValue     [ColorLength]Value
	psqEndValue     [ColorLength]Value
	gamePhase       int

	// cached check flag for the current position, reset to flagTBD on every
	// move made or unmade
	hasCheckFlag int
}

type historyState struct {
	zobristKey      Key
	pawnKey         Key
	move            Move
	fromPiece       Piece
	capturedPiece   Piece
	castlingRights  CastlingRights
	enpassantSquare Square
	halfMoveClock   int
	hasCheckFlag    int
}

const maxHistory int = MaxMoves

// state flag for cached values
const (
	flagTBD   int = 0
	flagFalse int = 1
	flagTrue  int = 2
)

// //////////////////////////////////////////////////////
// Public
// //////////////////////////////////////////////////////

// NewPosition creates a new position in the standard starting setup.
func NewPosition() *Position {
	p, _ := NewPositionFen(StartFen)
	return p
}

// NewPositionFen creates a new position from the given FEN string.
// It returns nil and an error if the FEN is malformed or describes an
// illegal position.
func NewPositionFen(fen string) (*Position, error) {
	if log == nil {
		log = enginelog.GetLog("position")
	}
	p := &Position{}
	if e := p.setupBoard(fen); e != nil {
		log.Errorf("fen for position setup not valid and position can't be created: %s", e)
		return nil, e
	}
	return p, nil
}

// DoMove commits a move to the board. There is no check that the move is
// legal on the current position; legality must be established beforehand,
// typically by only ever playing moves returned by the move generator.
func (p *Position) DoMove(m Move) {
	fromSq := m.From()
	fromPc := p.board[fromSq]
	myColor := fromPc.ColorOf()
	toSq := m.To()
	targetPc := p.board[toSq]

	if assert.DEBUG {
		assert.Assert(m.IsValid(), "Position DoMove: invalid move %s", m.String())
		assert.Assert(fromPc != PieceNone, "Position DoMove: no piece on %s for move %s", fromSq.String(), m.String())
		assert.Assert(myColor == p.nextPlayer, "Position DoMove: piece to move does not belong to next player %s", fromPc.String())
		assert.Assert(targetPc.TypeOf() != King, "Position DoMove: king cannot be captured, yet target piece is %s", targetPc.String())
	}

	// save state for undo; reuse the existing history slot to avoid allocating
	tmpHistoryCounter := p.historyCounter
	p.history[tmpHistoryCounter].zobristKey = p.zobristKey
	p.history[tmpHistoryCounter].pawnKey = p.pawnKey
	p.history[tmpHistoryCounter].move = m
	p.history[tmpHistoryCounter].fromPiece = fromPc
	p.history[tmpHistoryCounter].capturedPiece = targetPc
	p.history[tmpHistoryCounter].castlingRights = p.castlingRights
	p.history[tmpHistoryCounter].enpassantSquare = p.enPassantSquare
	p.history[tmpHistoryCounter].halfMoveClock = p.halfMoveClock
	p.history[tmpHistoryCounter].hasCheckFlag = p.hasCheckFlag
	p.historyCounter++

	switch {
	case m.HasFlag(FlagCastling):
		p.doCastlingMove(fromPc, myColor, toSq, fromSq)
	case m.HasFlag(FlagEnPassant):
		p.doEnPassantMove(toSq, myColor, fromPc, fromSq)
	case m.HasFlag(FlagPromotion):
		p.doPromotionMove(m, fromPc, myColor, toSq, targetPc, fromSq)
	default:
		p.doNormalMove(fromSq, toSq, targetPc, fromPc, myColor)
	}

	p.hasCheckFlag = flagTBD
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= ZobristNextPlayer()
}

// UndoMove resets the position to the state before the last move was made.
func (p *Position) UndoMove() {
	if assert.DEBUG {
		assert.Assert(p.historyCounter > 0, "Position UndoMove: cannot undo initial position")
	}

	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	tmpHistoryCounter := p.historyCounter
	move := p.history[p.historyCounter].move

	switch {
	case move.HasFlag(FlagCastling):
		p.movePiece(move.To(), move.From()) // king
		switch move.To() {
		case SqG1:
			p.movePiece(SqF1, SqH1)
		case SqC1:
			p.movePiece(SqD1, SqA1)
		case SqG8:
			p.movePiece(SqF8, SqH8)
		case SqC8:
			p.movePiece(SqD8, SqA8)
		default:
			panic("Position UndoMove: invalid castling destination")
		}
	case move.HasFlag(FlagEnPassant):
		// Zobrist key and captured pawn are restored from history below
		p.movePiece(move.To(), move.From())
		p.putPiece(MakePiece(p.nextPlayer.Flip(), Pawn), move.To().To(p.nextPlayer.Flip().MoveDirection()))
	case move.HasFlag(FlagPromotion):
		p.removePiece(move.To())
		p.putPiece(MakePiece(p.nextPlayer, Pawn), move.From())
		if p.history[p.historyCounter].capturedPiece != PieceNone {
			p.putPiece(p.history[p.historyCounter].capturedPiece, move.To())
		}
	default:
		p.movePiece(move.To(), move.From())
		if p.history[p.historyCounter].capturedPiece != PieceNone {
			p.putPiece(p.history[p.historyCounter].capturedPiece, move.To())
		}
	}

	p.castlingRights = p.history[tmpHistoryCounter].castlingRights
	p.enPassantSquare = p.history[tmpHistoryCounter].enpassantSquare
	p.halfMoveClock = p.history[tmpHistoryCounter].halfMoveClock
	p.hasCheckFlag = p.history[tmpHistoryCounter].hasCheckFlag
	p.zobristKey = p.history[tmpHistoryCounter].zobristKey
	p.pawnKey = p.history[tmpHistoryCounter].pawnKey
}

// DoNullMove plays a null move: the side to move changes but no piece
// moves. Used by null move pruning in search.
func (p *Position) DoNullMove() {
	tmpHistoryCounter := p.historyCounter
	p.history[tmpHistoryCounter].zobristKey = p.zobristKey
	p.history[tmpHistoryCounter].pawnKey = p.pawnKey
	p.history[tmpHistoryCounter].move = MoveNone
	p.history[tmpHistoryCounter].fromPiece = PieceNone
	p.history[tmpHistoryCounter].capturedPiece = PieceNone
	p.history[tmpHistoryCounter].castlingRights = p.castlingRights
	p.history[tmpHistoryCounter].enpassantSquare = p.enPassantSquare
	p.history[tmpHistoryCounter].halfMoveClock = p.halfMoveClock
	p.history[tmpHistoryCounter].hasCheckFlag = p.hasCheckFlag
	p.historyCounter++

	p.hasCheckFlag = flagTBD
	p.clearEnPassant()
	p.nextHalfMoveNumber++
	p.nextPlayer = p.nextPlayer.Flip()
	p.zobristKey ^= ZobristNextPlayer()
}

// UndoNullMove restores the position to the state before DoNullMove.
func (p *Position) UndoNullMove() {
	p.historyCounter--
	p.nextHalfMoveNumber--
	p.nextPlayer = p.nextPlayer.Flip()
	tmpHistoryCounter := p.historyCounter
	p.castlingRights = p.history[tmpHistoryCounter].castlingRights
	p.enPassantSquare = p.history[tmpHistoryCounter].enpassantSquare
	p.halfMoveClock = p.history[tmpHistoryCounter].halfMoveClock
	p.hasCheckFlag = p.history[tmpHistoryCounter].hasCheckFlag
	p.zobristKey = p.history[tmpHistoryCounter].zobristKey
	p.pawnKey = p.history[tmpHistoryCounter].pawnKey
}

// IsAttacked reports whether sq is attacked by a piece of color by.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	// reverse attack: check from the target square outward for each piece
	// kind as if it stood there, which is symmetric to a real attack

	if (GetPawnAttacks(by.Flip(), sq)&p.piecesBb[by][Pawn] != 0) ||
		(GetPseudoAttacks(Knight, sq)&p.piecesBb[by][Knight] != 0) ||
		(GetPseudoAttacks(King, sq)&p.piecesBb[by][King] != 0) {
		return true
	}

	occupied := p.OccupiedAll()
	if GetAttacksBb(Bishop, sq, occupied)&p.piecesBb[by][Bishop] > 0 ||
		GetAttacksBb(Rook, sq, occupied)&p.piecesBb[by][Rook] > 0 ||
		GetAttacksBb(Queen, sq, occupied)&p.piecesBb[by][Queen] > 0 {
		return true
	}

	if p.enPassantSquare != SqNone {
		switch by {
		case White:
			if p.board[p.enPassantSquare.To(South)] == BlackPawn && p.enPassantSquare.To(South) == sq {
				if p.board[sq.To(West)] == WhitePawn {
					return true
				}
				return p.board[sq.To(East)] == WhitePawn
			}
		case Black:
			if p.board[p.enPassantSquare.To(North)] == WhitePawn && p.enPassantSquare.To(North) == sq {
				if p.board[sq.To(West)] == BlackPawn {
					return true
				}
				return p.board[sq.To(East)] == BlackPawn
			}
		}
	}
	return false
}

// IsLegalMove reports whether move is legal on the current position: the
// king must not be left in check, and during castling the king may not
// cross or land on an attacked square.
func (p *Position) IsLegalMove(move Move) bool {
	if move.HasFlag(FlagCastling) {
		if p.IsAttacked(move.From(), p.nextPlayer.Flip()) {
			return false
		}
		if sq, ok := castlingTransitSquare(move.To()); ok && p.IsAttacked(sq, p.nextPlayer.Flip()) {
			return false
		}
	}
	p.DoMove(move)
	legal := !p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer)
	p.UndoMove()
	return legal
}

// WasLegalMove reports whether the last move made was legal: the mover's
// king must not be left in check, and a castling move must not have
// crossed or landed on an attacked square.
func (p *Position) WasLegalMove() bool {
	if p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer) {
		return false
	}
	if p.historyCounter > 0 {
		move := p.history[p.historyCounter-1].move
		if move.HasFlag(FlagCastling) {
			if p.IsAttacked(move.From(), p.nextPlayer) {
				return false
			}
			if sq, ok := castlingTransitSquare(move.To()); ok && p.IsAttacked(sq, p.nextPlayer) {
				return false
			}
		}
	}
	return true
}

// castlingTransitSquare returns the square the king passes through for a
// castling move landing on to, i.e. the square between its origin and
// destination.
func castlingTransitSquare(to Square) (Square, bool) {
	switch to {
	case SqG1:
		return SqF1, true
	case SqC1:
		return SqD1, true
	case SqG8:
		return SqF8, true
	case SqC8:
		return SqD8, true
	default:
		return SqNone, false
	}
}

// HasCheck reports whether the next player is in check. The result is
// cached until the next move is made or unmade.
func (p *Position) HasCheck() bool {
	if p.hasCheckFlag != flagTBD {
		return p.hasCheckFlag == flagTrue
	}
	check := p.IsAttacked(p.kingSquare[p.nextPlayer], p.nextPlayer.Flip())
	if check {
		p.hasCheckFlag = flagTrue
	} else {
		p.hasCheckFlag = flagFalse
	}
	return check
}

// IsCapturingMove reports whether move captures an enemy piece, including
// en passant.
func (p *Position) IsCapturingMove(move Move) bool {
	return move.IsCapture()
}

// CheckRepetitions reports whether the current position has occurred reps
// times before in the game's history (reps=2 checks for the 3rd,
// repetition-claiming occurrence).
func (p *Position) CheckRepetitions(reps int) bool {
	counter := 0
	i := p.historyCounter - 2
	lastHalfMove := p.halfMoveClock
	for i >= 0 {
		// once the half move clock resets, no position before this point can
		// repeat the current one
		if p.history[i].halfMoveClock >= lastHalfMove {
			break
		}
		lastHalfMove = p.history[i].halfMoveClock
		if p.zobristKey == p.history[i].zobristKey {
			counter++
		}
		if counter >= reps {
			return true
		}
		i -= 2
	}
	return false
}

// HasInsufficientMaterial reports whether neither side has enough material
// to force checkmate (a helpmate engineered by the opponent is not
// excluded).
func (p *Position) HasInsufficientMaterial() bool {
	if p.material[White]+p.material[Black] == 0 {
		return true
	}
	if p.piecesBb[White][Pawn].PopCount() == 0 && p.piecesBb[Black][Pawn].PopCount() == 0 {
		if p.materialNonPawn[White] < 400 && p.materialNonPawn[Black] < 400 {
			return true
		}
		if (p.materialNonPawn[White] == 2*Knight.ValueOf() && p.materialNonPawn[Black] <= Bishop.ValueOf()) ||
			(p.materialNonPawn[Black] == 2*Knight.ValueOf() && p.materialNonPawn[White] <= Bishop.ValueOf()) {
			return true
		}
		if (p.materialNonPawn[White] == 2*Bishop.ValueOf() && p.materialNonPawn[Black] == Bishop.ValueOf()) ||
			(p.materialNonPawn[Black] == 2*Bishop.ValueOf() && p.materialNonPawn[White] == Bishop.ValueOf()) {
			return true
		}
		if p.materialNonPawn[White] == 2*Bishop.ValueOf() || p.materialNonPawn[Black] == 2*Bishop.ValueOf() {
			return false
		}
		if (p.materialNonPawn[White] < 2*Bishop.ValueOf() && p.materialNonPawn[Black] <= Bishop.ValueOf()) ||
			(p.materialNonPawn[White] <= Bishop.ValueOf() && p.materialNonPawn[Black] < 2*Bishop.ValueOf()) {
			return true
		}
	}
	return false
}

// GivesCheck reports whether playing move would give check to the
// opponent, including direct checks, discovered checks, and checks
// revealed by an en passant capture.
func (p *Position) GivesCheck(move Move) bool {
	us := p.nextPlayer
	them := us.Flip()
	kingSq := p.kingSquare[them]

	fromSq := move.From()
	toSq := move.To()
	fromPc := p.board[fromSq]
	fromPt := fromPc.TypeOf()
	epTargetSq := SqNone

	switch {
	case move.HasFlag(FlagPromotion):
		fromPt = move.PromotionType()
	case move.HasFlag(FlagCastling):
		// castling can only move the rook to a square that gives check; the
		// king itself cannot give check and no discovered check is possible
		fromPt = Rook
		if sq, ok := castlingTransitSquare(toSq); ok {
			toSq = sq
		}
	case move.HasFlag(FlagEnPassant):
		epTargetSq = toSq.To(them.MoveDirection())
	}

	boardAfterMove := p.OccupiedAll()
	boardAfterMove.PopSquare(fromSq)
	boardAfterMove.PushSquare(toSq)
	if move.HasFlag(FlagEnPassant) {
		boardAfterMove.PopSquare(epTargetSq)
	}

	switch fromPt {
	case Pawn:
		if GetPawnAttacks(us, toSq).Has(kingSq) {
			return true
		}
	case King:
		// cannot give check directly
	default:
		if GetAttacksBb(fromPt, toSq, boardAfterMove).Has(kingSq) {
			return true
		}
	}

	switch {
	case GetAttacksBb(Bishop, kingSq, boardAfterMove)&p.piecesBb[us][Bishop] > 0:
		return true
	case GetAttacksBb(Rook, kingSq, boardAfterMove)&p.piecesBb[us][Rook] > 0:
		return true
	case GetAttacksBb(Queen, kingSq, boardAfterMove)&p.piecesBb[us][Queen] > 0:
		return true
	}

	return false
}

// String returns the FEN, a board diagram, and material/positional
// summary for the position.
func (p *Position) String() string {
	var os strings.Builder
	os.WriteString(p.StringFen())
	os.WriteString("\n")
	os.WriteString(p.StringBoard())
	os.WriteString("\n")
	os.WriteString(fmt.Sprintf("Next Player    : %s\n", p.nextPlayer.String()))
	os.WriteString(fmt.Sprintf("Game Phase     : %d\n", p.gamePhase))
	os.WriteString(fmt.Sprintf("Material White : %d\n", p.material[White]))
	os.WriteString(fmt.Sprintf("Material Black : %d\n", p.material[Black]))
	os.WriteString(fmt.Sprintf("Pos value White: %d/%d\n", p.psqMidValue[White], p.psqEndValue[White]))
	os.WriteString(fmt.Sprintf("Pos value Black: %d/%d\n", p.psqMidValue[Black], p.psqEndValue[Black]))
	return os.String()
}

// StringFen returns the FEN of the current position.
func (p *Position) StringFen() string {
	return p.fen()
}

// StringBoard returns an ASCII board diagram.
func (p *Position) StringBoard() string {
	var os strings.Builder
	os.WriteString("+---+---+---+---+---+---+---+---+\n")
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			os.WriteString("| ")
			os.WriteString(p.board[SquareOf(f, Rank8-r)].Char())
			os.WriteString(" ")
		}
		os.WriteString("|\n+---+---+---+---+---+---+---+---+\n")
	}
	return os.String()
}

// //////////////////////////////////////////////////////////
// Private
// //////////////////////////////////////////////////////////

func (p *Position) doNormalMove(fromSq Square, toSq Square, targetPc Piece, fromPc Piece, myColor Color) {
	if p.castlingRights != CastlingNone {
		cr := GetCastlingRights(fromSq) | GetCastlingRights(toSq)
		if cr != CastlingNone {
			p.zobristKey ^= ZobristCastling(p.castlingRights)
			p.castlingRights.Remove(cr)
			p.zobristKey ^= ZobristCastling(p.castlingRights)
		}
	}
	p.clearEnPassant()
	switch {
	case targetPc != PieceNone:
		p.removePiece(toSq)
		p.halfMoveClock = 0
	case fromPc.TypeOf() == Pawn:
		p.halfMoveClock = 0
		if SquareDistance(fromSq, toSq) == 2 {
			p.enPassantSquare = toSq.To(myColor.Flip().MoveDirection())
			p.zobristKey ^= ZobristEnPassant(p.enPassantSquare.FileOf())
		}
	default:
		p.halfMoveClock++
	}
	p.movePiece(fromSq, toSq)
}

func (p *Position) doCastlingMove(fromPc Piece, myColor Color, toSq Square, fromSq Square) {
	if assert.DEBUG {
		assert.Assert(fromPc == MakePiece(myColor, King), "Position DoMove: castling move but from piece not king")
	}
	var rookFrom, rookTo Square
	var removed CastlingRights
	switch toSq {
	case SqG1:
		rookFrom, rookTo, removed = SqH1, SqF1, CastlingWhite
	case SqC1:
		rookFrom, rookTo, removed = SqA1, SqD1, CastlingWhite
	case SqG8:
		rookFrom, rookTo, removed = SqH8, SqF8, CastlingBlack
	case SqC8:
		rookFrom, rookTo, removed = SqA8, SqD8, CastlingBlack
	default:
		panic("Position DoMove: invalid castling destination")
	}
	p.movePiece(fromSq, toSq)
	p.movePiece(rookFrom, rookTo)
	p.zobristKey ^= ZobristCastling(p.castlingRights)
	p.castlingRights.Remove(removed)
	p.zobristKey ^= ZobristCastling(p.castlingRights)
	p.clearEnPassant()
	p.halfMoveClock++
}

func (p *Position) doEnPassantMove(toSq Square, myColor Color, fromPc Piece, fromSq Square) {
	capSq := toSq.To(myColor.Flip().MoveDirection())
	if assert.DEBUG {
		assert.Assert(fromPc == MakePiece(myColor, Pawn), "Position DoMove: en passant move but from piece not pawn")
		assert.Assert(p.enPassantSquare != SqNone, "Position DoMove: en passant move without en passant target")
		assert.Assert(p.board[capSq] == MakePiece(myColor.Flip(), Pawn), "Position DoMove: captured en passant piece invalid")
	}
	p.removePiece(capSq)
	p.movePiece(fromSq, toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) doPromotionMove(m Move, fromPc Piece, myColor Color, toSq Square, targetPc Piece, fromSq Square) {
	if assert.DEBUG {
		assert.Assert(fromPc == MakePiece(myColor, Pawn), "Position DoMove: promotion move but from piece not pawn")
		assert.Assert(myColor.PromotionRankBb().Has(toSq), "Position DoMove: promotion move on wrong rank")
	}
	if targetPc != PieceNone {
		p.removePiece(toSq)
	}
	if p.castlingRights != CastlingNone {
		cr := GetCastlingRights(fromSq) | GetCastlingRights(toSq)
		if cr != CastlingNone {
			p.zobristKey ^= ZobristCastling(p.castlingRights)
			p.castlingRights.Remove(cr)
			p.zobristKey ^= ZobristCastling(p.castlingRights)
		}
	}
	p.removePiece(fromSq)
	p.putPiece(MakePiece(myColor, m.PromotionType()), toSq)
	p.clearEnPassant()
	p.halfMoveClock = 0
}

func (p *Position) movePiece(fromSq Square, toSq Square) {
	p.putPiece(p.removePiece(fromSq), toSq)
}

func (p *Position) putPiece(piece Piece, square Square) {
	color := piece.ColorOf()
	pieceType := piece.TypeOf()

	if assert.DEBUG {
		assert.Assert(p.board[square] == PieceNone, "tried to put a piece on an occupied square: %s", square.String())
		assert.Assert(!p.piecesBb[color][pieceType].Has(square), "tried to set a bit on pieceBb which is already set: %s", square.String())
		assert.Assert(!p.occupiedBb[color].Has(square), "tried to set a bit on occupiedBb which is already set: %s", square.String())
	}

	p.board[square] = piece
	if pieceType == King {
		p.kingSquare[color] = square
	}
	p.piecesBb[color][pieceType].PushSquare(square)
	p.occupiedBb[color].PushSquare(square)
	p.zobristKey ^= ZobristPiece(piece, square)
	if pieceType == Pawn {
		p.pawnKey ^= ZobristPiece(piece, square)
	}

	p.gamePhase += pieceType.GamePhaseValue()
	if p.gamePhase > GamePhaseMax {
		p.gamePhase = GamePhaseMax
	}
	p.material[color] += pieceType.ValueOf()
	if pieceType > Pawn {
		p.materialNonPawn[color] += pieceType.ValueOf()
	}
	p.psqMidValue[color] += PosMidValue(piece, square)
	p.psqEndValue[color] += PosEndValue(piece, square)
}

func (p *Position) removePiece(square Square) Piece {
	removed := p.board[square]
	color := removed.ColorOf()
	pieceType := removed.TypeOf()

	if assert.DEBUG {
		assert.Assert(p.board[square] != PieceNone, "tried to remove a piece from an empty square: %s", square.String())
		assert.Assert(p.piecesBb[color][pieceType].Has(square), "tried to clear a bit from pieceBb which is not set: %s", square.String())
		assert.Assert(p.occupiedBb[color].Has(square), "tried to clear a bit from occupiedBb which is not set: %s", square.String())
	}

	p.board[square] = PieceNone
	p.piecesBb[color][pieceType].PopSquare(square)
	p.occupiedBb[color].PopSquare(square)
	p.zobristKey ^= ZobristPiece(removed, square)
	if pieceType == Pawn {
		p.pawnKey ^= ZobristPiece(removed, square)
	}

	p.gamePhase -= pieceType.GamePhaseValue()
	if p.gamePhase < 0 {
		p.gamePhase = 0
	}
	p.material[color] -= pieceType.ValueOf()
	if pieceType > Pawn {
		p.materialNonPawn[color] -= pieceType.ValueOf()
	}
	p.psqMidValue[color] -= PosMidValue(removed, square)
	p.psqEndValue[color] -= PosEndValue(removed, square)
	return removed
}

func (p *Position) clearEnPassant() {
	if p.enPassantSquare != SqNone {
		p.zobristKey ^= ZobristEnPassant(p.enPassantSquare.FileOf())
		p.enPassantSquare = SqNone
	}
}

func (p *Position) fen() string {
	var fen strings.Builder
	for r := Rank1; r <= Rank8; r++ {
		emptySquares := 0
		for f := FileA; f <= FileH; f++ {
			pc := p.board[SquareOf(f, Rank8-r)]
			if pc == PieceNone {
				emptySquares++
				continue
			}
			if emptySquares > 0 {
				fen.WriteString(strconv.Itoa(emptySquares))
				emptySquares = 0
			}
			fen.WriteString(pc.String())
		}
		if emptySquares > 0 {
			fen.WriteString(strconv.Itoa(emptySquares))
		}
		if r < Rank8 {
			fen.WriteString("/")
		}
	}
	fen.WriteString(" ")
	fen.WriteString(p.nextPlayer.String())
	fen.WriteString(" ")
	fen.WriteString(p.castlingRights.String())
	fen.WriteString(" ")
	fen.WriteString(p.enPassantSquare.String())
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa(p.halfMoveClock))
	fen.WriteString(" ")
	fen.WriteString(strconv.Itoa((p.nextHalfMoveNumber + 1) / 2))
	return fen.String()
}

var (
	regexFenPos          = regexp.MustCompile("^[0-8pPnNbBrRqQkK/]+$")
	regexWorB            = regexp.MustCompile("^[wb]$")
	regexCastlingRights  = regexp.MustCompile("^(K?Q?k?q?|-)$")
	regexEnPassant       = regexp.MustCompile("^([a-h][36]|-)$")
)

// setupBoard parses fen and initializes the position's fields. Only the
// piece placement field is mandatory; all other fields fall back to
// defaults (white to move, no castling rights, no en passant, clocks at
// their initial values).
func (p *Position) setupBoard(fen string) error {
	fen = strings.TrimSpace(fen)
	fenParts := strings.Fields(fen)

	if len(fenParts) == 0 {
		return &FenParseError{Field: "placement", Reason: "fen must not be empty"}
	}

	if !regexFenPos.MatchString(fenParts[0]) {
		return &FenParseError{Field: "placement", Reason: "contains invalid characters"}
	}

	currentSquare := SqA8
	for _, c := range fenParts[0] {
		switch {
		case c >= '1' && c <= '8':
			currentSquare = Square(int(currentSquare) + (int(c-'0') * int(East)))
		case c == '/':
			currentSquare = currentSquare.To(South).To(South)
		default:
			piece := PieceFromChar(string(c))
			if piece == PieceNone {
				return &FenParseError{Field: "placement", Reason: fmt.Sprintf("invalid piece character: %s", string(c))}
			}
			if !currentSquare.IsValid() {
				return &FenParseError{Field: "placement", Reason: "rank overflows the board"}
			}
			p.putPiece(piece, currentSquare)
			currentSquare++
		}
	}
	if currentSquare != SqA2 {
		return &FenParseError{Field: "placement", Reason: "ranks do not sum to 8 files each"}
	}

	p.nextHalfMoveNumber = 1
	p.enPassantSquare = SqNone
	p.nextPlayer = White

	if len(fenParts) >= 2 {
		if !regexWorB.MatchString(fenParts[1]) {
			return &FenParseError{Field: "color", Reason: "must be 'w' or 'b'"}
		}
		if fenParts[1] == "b" {
			p.nextPlayer = Black
			p.zobristKey ^= ZobristNextPlayer()
			p.nextHalfMoveNumber++
		}
	}

	if len(fenParts) >= 3 {
		if !regexCastlingRights.MatchString(fenParts[2]) {
			return &FenParseError{Field: "castling", Reason: "must be a subset of KQkq in order, or '-'"}
		}
		if fenParts[2] != "-" {
			for _, c := range fenParts[2] {
				switch c {
				case 'K':
					p.castlingRights.Add(CastlingWhiteOO)
				case 'Q':
					p.castlingRights.Add(CastlingWhiteOOO)
				case 'k':
					p.castlingRights.Add(CastlingBlackOO)
				case 'q':
					p.castlingRights.Add(CastlingBlackOOO)
				}
			}
		}
		p.zobristKey ^= ZobristCastling(p.castlingRights)
	}

	if len(fenParts) >= 4 {
		if !regexEnPassant.MatchString(fenParts[3]) {
			return &FenParseError{Field: "enPassant", Reason: "must be a rank 3 or rank 6 square, or '-'"}
		}
		if fenParts[3] != "-" {
			p.enPassantSquare = MakeSquare(fenParts[3])
			p.zobristKey ^= ZobristEnPassant(p.enPassantSquare.FileOf())
		}
	}

	if len(fenParts) >= 5 {
		number, e := strconv.Atoi(fenParts[4])
		if e != nil || number < 0 {
			return &FenParseError{Field: "halfMoveClock", Reason: "must be a non-negative integer"}
		}
		p.halfMoveClock = number
	}

	if len(fenParts) >= 6 {
		moveNumber, e := strconv.Atoi(fenParts[5])
		if e != nil || moveNumber < 0 {
			return &FenParseError{Field: "fullMoveNumber", Reason: "must be a non-negative integer"}
		}
		if moveNumber == 0 {
			moveNumber = 1
		}
		p.nextHalfMoveNumber = 2*moveNumber - (1 - int(p.nextPlayer))
	}

	return p.validate()
}

// validate checks the §3 invariants that a syntactically valid FEN can
// still violate: exactly one king per side, and the side not to move must
// not currently be in check (otherwise it could have captured the king on
// the previous move, which is impossible in legal play).
func (p *Position) validate() error {
	if p.piecesBb[White][King].PopCount() != 1 || p.piecesBb[Black][King].PopCount() != 1 {
		return &IllegalPosition{Reason: "each side must have exactly one king"}
	}
	if p.IsAttacked(p.kingSquare[p.nextPlayer.Flip()], p.nextPlayer) {
		return &IllegalPosition{Reason: "side not to move is in check"}
	}
	return nil
}

// //////////////////////////////////////////////////////
// Getter and Setter functions
// //////////////////////////////////////////////////////

// ZobristKey returns the current Zobrist hash of the position.
func (p *Position) ZobristKey() Key {
	return p.zobristKey
}

// PawnKey returns the Zobrist hash of the pawn structure only, used to
// key the evaluator's pawn structure cache.
func (p *Position) PawnKey() Key {
	return p.pawnKey
}

// NextPlayer returns the color to move.
func (p *Position) NextPlayer() Color {
	return p.nextPlayer
}

// GetPiece returns the piece on sq, or PieceNone if empty.
func (p *Position) GetPiece(sq Square) Piece {
	return p.board[sq]
}

// PiecesBb returns the bitboard of pieces of type pt and color c.
func (p *Position) PiecesBb(c Color, pt PieceType) Bitboard {
	return p.piecesBb[c][pt]
}

// OccupiedAll returns a bitboard of every occupied square.
func (p *Position) OccupiedAll() Bitboard {
	return p.occupiedBb[White] | p.occupiedBb[Black]
}

// OccupiedBb returns a bitboard of the squares occupied by color c.
func (p *Position) OccupiedBb(c Color) Bitboard {
	return p.occupiedBb[c]
}

// GamePhase returns the current game phase value, 24 at the start of the
// game down to 0 once all minor and major pieces are gone.
func (p *Position) GamePhase() int {
	return p.gamePhase
}

// GamePhaseFactor returns gamePhase normalized to [0, 1].
func (p *Position) GamePhaseFactor() float64 {
	return float64(p.gamePhase) / GamePhaseMax
}

// GetEnPassantSquare returns the en passant target square, or SqNone.
func (p *Position) GetEnPassantSquare() Square {
	return p.enPassantSquare
}

// CastlingRights returns the position's castling rights.
func (p *Position) CastlingRights() CastlingRights {
	return p.castlingRights
}

// KingSquare returns the square of color c's king.
func (p *Position) KingSquare(c Color) Square {
	return p.kingSquare[c]
}

// HalfMoveClock returns the half move clock used for the fifty move rule.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// Material returns the material value for color c.
func (p *Position) Material(c Color) Value {
	return p.material[c]
}

// MaterialNonPawn returns the non pawn material value for color c.
func (p *Position) MaterialNonPawn(c Color) Value {
	return p.materialNonPawn[c]
}

// PsqMidValue returns the midgame piece-square value for color c.
func (p *Position) PsqMidValue(c Color) Value {
	return p.psqMidValue[c]
}

// PsqEndValue returns the endgame piece-square value for color c.
func (p *Position) PsqEndValue(c Color) Value {
	return p.psqEndValue[c]
}

// LastMove returns the last move made, or MoveNone if none.
func (p *Position) LastMove() Move {
	if p.historyCounter <= 0 {
		return MoveNone
	}
	return p.history[p.historyCounter-1].move
}

// LastCapturedPiece returns the piece captured by the last move, or
// PieceNone if the last move did not capture or there is no history.
func (p *Position) LastCapturedPiece() Piece {
	if p.historyCounter <= 0 {
		return PieceNone
	}
	return p.history[p.historyCounter-1].capturedPiece
}

// WasCapturingMove reports whether the last move captured a piece.
func (p *Position) WasCapturingMove() bool {
	return p.LastCapturedPiece() != PieceNone
}
