package move

import (
	"math/rand"

	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/piece"
	"github.com/beliefsg/beliefsg/internal/state"
)

// MovePiece relocates the piece at From to the top of To's stack.
type MovePiece struct {
	From, To board.Position
}

func (m MovePiece) Apply(s *state.State) []ProbTransition {
	ns := s.Clone()
	ns.MovePiece(m.From, m.To)
	return []ProbTransition{{State: ns, Probability: 1}}
}

func (m MovePiece) ApplyInPlace(s *state.State, _ *rand.Rand) {
	s.MovePiece(m.From, m.To)
}

func (m MovePiece) Equal(other Move) bool {
	o, ok := other.(MovePiece)
	return ok && o.From == m.From && o.To == m.To
}

// RemovePiece takes the piece at From out of play.
type RemovePiece struct {
	From board.Position
}

func (m RemovePiece) Apply(s *state.State) []ProbTransition {
	ns := s.Clone()
	ns.RemovePiece(m.From)
	return []ProbTransition{{State: ns, Probability: 1}}
}

func (m RemovePiece) ApplyInPlace(s *state.State, _ *rand.Rand) {
	s.RemovePiece(m.From)
}

func (m RemovePiece) Equal(other Move) bool {
	o, ok := other.(RemovePiece)
	return ok && o.From == m.From
}

// RemovePieceValue narrows the piece at From to exclude Value.
type RemovePieceValue struct {
	From  board.Position
	Value piece.Value
}

func (m RemovePieceValue) Apply(s *state.State) []ProbTransition {
	ns := s.Clone()
	ns.RemovePieceValue(m.From, m.Value)
	return []ProbTransition{{State: ns, Probability: 1}}
}

func (m RemovePieceValue) ApplyInPlace(s *state.State, _ *rand.Rand) {
	s.RemovePieceValue(m.From, m.Value)
}

func (m RemovePieceValue) Equal(other Move) bool {
	o, ok := other.(RemovePieceValue)
	return ok && o.From == m.From && o.Value.Equal(m.Value)
}

// RemovePieceValues narrows the piece at From to exclude every value in
// Values.
type RemovePieceValues struct {
	From   board.Position
	Values []piece.Value
}

func (m RemovePieceValues) Apply(s *state.State) []ProbTransition {
	ns := s.Clone()
	ns.RemovePieceValues(m.From, m.Values)
	return []ProbTransition{{State: ns, Probability: 1}}
}

func (m RemovePieceValues) ApplyInPlace(s *state.State, _ *rand.Rand) {
	s.RemovePieceValues(m.From, m.Values)
}

func (m RemovePieceValues) Equal(other Move) bool {
	o, ok := other.(RemovePieceValues)
	if !ok || o.From != m.From || len(o.Values) != len(m.Values) {
		return false
	}
	for i := range m.Values {
		if !o.Values[i].Equal(m.Values[i]) {
			return false
		}
	}
	return true
}

// AssignPieceValue pins the piece at From to exactly Value.
type AssignPieceValue struct {
	From  board.Position
	Value piece.Value
}

func (m AssignPieceValue) Apply(s *state.State) []ProbTransition {
	ns := s.Clone()
	ns.AssignPieceValue(m.From, m.Value)
	return []ProbTransition{{State: ns, Probability: 1}}
}

func (m AssignPieceValue) ApplyInPlace(s *state.State, _ *rand.Rand) {
	s.AssignPieceValue(m.From, m.Value)
}

func (m AssignPieceValue) Equal(other Move) bool {
	o, ok := other.(AssignPieceValue)
	return ok && o.From == m.From && o.Value.Equal(m.Value)
}

// Shuffle re-hides and re-randomizes the identity of the pieces at From.
type Shuffle struct {
	From board.Position
}

func (m Shuffle) Apply(s *state.State) []ProbTransition {
	ns := s.Clone()
	for _, pos := range targetPositions(ns, m.From) {
		ns.Hide(pos)
	}
	ns.Shuffle(m.From)
	return []ProbTransition{{State: ns, Probability: 1}}
}

func (m Shuffle) ApplyInPlace(s *state.State, _ *rand.Rand) {
	for _, pos := range targetPositions(s, m.From) {
		s.Hide(pos)
	}
	s.Shuffle(m.From)
}

func (m Shuffle) Equal(other Move) bool {
	o, ok := other.(Shuffle)
	return ok && o.From == m.From
}

// SetNextPlayer sets a single current player.
type SetNextPlayer struct {
	Player board.PlayerID
}

func (m SetNextPlayer) Apply(s *state.State) []ProbTransition {
	ns := s.Clone()
	ns.SetCurrentPlayer(m.Player)
	return []ProbTransition{{State: ns, Probability: 1}}
}

func (m SetNextPlayer) ApplyInPlace(s *state.State, _ *rand.Rand) {
	s.SetCurrentPlayer(m.Player)
}

func (m SetNextPlayer) Equal(other Move) bool {
	o, ok := other.(SetNextPlayer)
	return ok && o.Player == m.Player
}

// SetNextPlayers sets the full set of current players.
type SetNextPlayers struct {
	Players []board.PlayerID
}

func (m SetNextPlayers) Apply(s *state.State) []ProbTransition {
	ns := s.Clone()
	ns.SetCurrentPlayers(m.Players)
	return []ProbTransition{{State: ns, Probability: 1}}
}

func (m SetNextPlayers) ApplyInPlace(s *state.State, _ *rand.Rand) {
	s.SetCurrentPlayers(m.Players)
}

func (m SetNextPlayers) Equal(other Move) bool {
	o, ok := other.(SetNextPlayers)
	if !ok || len(o.Players) != len(m.Players) {
		return false
	}
	for i := range m.Players {
		if o.Players[i] != m.Players[i] {
			return false
		}
	}
	return true
}

// SetVariable replaces or creates a game variable.
type SetVariable struct {
	Variable state.Variable
}

func (m SetVariable) Apply(s *state.State) []ProbTransition {
	ns := s.Clone()
	ns.SetVariable(m.Variable)
	return []ProbTransition{{State: ns, Probability: 1}}
}

func (m SetVariable) ApplyInPlace(s *state.State, _ *rand.Rand) {
	s.SetVariable(m.Variable)
}

func (m SetVariable) Equal(other Move) bool {
	o, ok := other.(SetVariable)
	return ok && o.Variable.Name() == m.Variable.Name()
}
