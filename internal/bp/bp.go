// Package bp runs loopy belief propagation over the factor graph formed by
// a collection's pieces (variable nodes) and its exact-count constraints,
// one factor per possible value. It produces an approximate per-piece,
// per-value marginal used by determinization and by move primitives that
// sample a concrete value for a still-uncertain piece.
package bp

import (
	"reflect"

	"gonum.org/v1/gonum/floats"

	"github.com/beliefsg/beliefsg/internal/metrics"
)

const (
	maxIterations  = 100
	convergenceEps = 1e-6
	dampingStart   = 0.5
	dampingStep    = 0.025
	dampingCeiling = 1.0
)

// BP holds the running state of the message-passing fixpoint for one
// collection: nVariables pieces, nValues possible values (one exact-count
// constraint per value, so nConstraints == nValues), and an exact required
// count per value.
type BP struct {
	nVariables int
	nValues    int
	counts     []int

	// variableMessages[variable][value][constraint]: variable's belief
	// that it takes value, as reported to constraint (damped, with
	// constraint's own contribution divided back out).
	variableMessages [][][]float64
	// variableMarginals[variable][value]: product of every constraint's
	// message to this variable about this value, normalized.
	variableMarginals [][]float64
	// constraintMessages[constraint][variable][value]: constraint's
	// belief that variable takes value, given every other variable's
	// current message to this constraint.
	constraintMessages [][][]float64

	damping float64

	// lastDomains is the domain matrix of the previous UpdateProbabilities
	// call, nil before the first one.
	lastDomains [][]bool

	recorder metrics.Recorder
}

// SetRecorder attaches an optional metrics recorder. A nil recorder (the
// default) disables metrics entirely.
func (b *BP) SetRecorder(r metrics.Recorder) { b.recorder = r }

// New builds a BP engine for nVariables pieces over nValues values, with
// the given exact per-value counts.
func New(nVariables, nValues int, counts []int) *BP {
	b := &BP{
		nVariables: nVariables,
		nValues:    nValues,
		counts:     append([]int(nil), counts...),
		damping:    dampingStart,
	}
	b.variableMessages = make([][][]float64, nVariables)
	b.variableMarginals = make([][]float64, nVariables)
	for i := range b.variableMessages {
		b.variableMessages[i] = make([][]float64, nValues)
		for v := range b.variableMessages[i] {
			b.variableMessages[i][v] = make([]float64, nValues)
		}
		b.variableMarginals[i] = make([]float64, nValues)
	}
	b.constraintMessages = make([][][]float64, nValues)
	for c := range b.constraintMessages {
		b.constraintMessages[c] = make([][]float64, nVariables)
		for i := range b.constraintMessages[c] {
			b.constraintMessages[c][i] = make([]float64, nValues)
		}
	}
	return b
}

// Clone deep-copies the engine's running state.
func (b *BP) Clone() *BP {
	cp := &BP{
		nVariables: b.nVariables,
		nValues:    b.nValues,
		counts:     append([]int(nil), b.counts...),
		damping:    b.damping,
		recorder:   b.recorder,
	}
	cp.variableMessages = make([][][]float64, len(b.variableMessages))
	for i := range b.variableMessages {
		cp.variableMessages[i] = make([][]float64, len(b.variableMessages[i]))
		for v := range b.variableMessages[i] {
			cp.variableMessages[i][v] = append([]float64(nil), b.variableMessages[i][v]...)
		}
	}
	cp.variableMarginals = make([][]float64, len(b.variableMarginals))
	for i := range b.variableMarginals {
		cp.variableMarginals[i] = append([]float64(nil), b.variableMarginals[i]...)
	}
	cp.constraintMessages = make([][][]float64, len(b.constraintMessages))
	for c := range b.constraintMessages {
		cp.constraintMessages[c] = make([][]float64, len(b.constraintMessages[c]))
		for i := range b.constraintMessages[c] {
			cp.constraintMessages[c][i] = append([]float64(nil), b.constraintMessages[c][i]...)
		}
	}
	return cp
}

// Probability returns the marginal probability that piece id takes value
// v, as of the last call to UpdateProbabilities.
func (b *BP) Probability(id, v int) float64 {
	return b.variableMarginals[id][v]
}

// UpdateProbabilities runs the damped message-passing fixpoint against the
// given domains (domains[i][v] true iff piece i could still take value v)
// until convergence or the 100-iteration cap, and refreshes the marginals.
// A call whose domains equal those of the previous call is a no-op.
func (b *BP) UpdateProbabilities(domains [][]bool) {
	if b.lastDomains != nil && reflect.DeepEqual(b.lastDomains, domains) {
		return
	}
	b.lastDomains = make([][]bool, len(domains))
	for i, d := range domains {
		b.lastDomains[i] = append([]bool(nil), d...)
	}
	b.resetVariablesMessagesAndMarginals(domains)
	b.resetConstraintsMessages()
	b.damping = dampingStart

	iter := 0
	for ; iter < maxIterations; iter++ {
		metrics.BPIteration(b.recorder)
		b.computeConstraintsMessages()
		change := b.computeVariablesMessagesAndMarginals()
		if change < convergenceEps {
			break
		}
		b.damping = min(b.damping+dampingStep, dampingCeiling)
	}
	ran := iter + 1
	if ran > maxIterations {
		ran = maxIterations
	}
	metrics.BPConverged(b.recorder, ran)
}

// resetVariablesMessagesAndMarginals seeds every variable's per-value
// belief, and its message to every constraint, as uniform over its
// current domain.
func (b *BP) resetVariablesMessagesAndMarginals(domains [][]bool) {
	for i := 0; i < b.nVariables; i++ {
		n := 0
		for v := 0; v < b.nValues; v++ {
			if domains[i][v] {
				n++
			}
		}
		for v := 0; v < b.nValues; v++ {
			updated := 0.0
			if domains[i][v] && n > 0 {
				updated = 1.0 / float64(n)
			}
			b.variableMarginals[i][v] = updated
			for c := 0; c < b.nValues; c++ {
				b.variableMessages[i][v][c] = updated
			}
		}
	}
}

func (b *BP) resetConstraintsMessages() {
	for c := 0; c < b.nValues; c++ {
		for i := 0; i < b.nVariables; i++ {
			for v := 0; v < b.nValues; v++ {
				b.constraintMessages[c][i][v] = 0
			}
		}
	}
}

func (b *BP) computeConstraintsMessages() {
	for c := 0; c < b.nValues; c++ {
		b.computeConstraintMessages(c)
	}
}

// computeConstraintMessages runs the forward/backward count dynamic
// program for constraint c (the constraint requiring exactly counts[c]
// variables to take value c): prefix[i][k] is the probability mass that
// variables 0..i-1 contain exactly k occurrences of value c, suffix[i][k]
// the probability mass that variables i+1..n-1 bring the running count
// from k (after variable i) to exactly counts[c]; variable i's message for
// a value sums prefix[i][k] * suffix[i][k+added] over k, where added is 1
// if that value is c and 0 otherwise.
func (b *BP) computeConstraintMessages(c int) {
	n := b.nVariables
	count := b.counts[c]

	prefix := make([][]float64, n)
	for i := range prefix {
		prefix[i] = make([]float64, count+1)
	}
	prefix[0][0] = 1
	for i := 0; i < n-1; i++ {
		for v := 0; v < b.nValues; v++ {
			if b.variableMarginals[i][v] <= 0 {
				continue
			}
			added := 0
			if v == c {
				added = 1
			}
			for j := 0; j <= count; j++ {
				if prefix[i][j] > 0 && j+added <= count {
					prefix[i+1][j+added] += prefix[i][j] * b.variableMessages[i][v][c]
				}
			}
		}
	}

	suffix := make([][]float64, n)
	for i := range suffix {
		suffix[i] = make([]float64, count+1)
	}
	suffix[n-1][count] = 1
	for i := n - 1; i > 0; i-- {
		for v := 0; v < b.nValues; v++ {
			if b.variableMarginals[i][v] <= 0 {
				continue
			}
			added := 0
			if v == c {
				added = 1
			}
			belief := 0.0
			for j := 0; j <= count; j++ {
				if j+added <= count && suffix[i][j+added] > 0 {
					suffix[i-1][j] += suffix[i][j+added] * b.variableMessages[i][v][c]
					belief += prefix[i][j] * suffix[i][j+added]
				}
			}
			old := b.constraintMessages[c][i][v]
			b.constraintMessages[c][i][v] = b.damping*belief + (1-b.damping)*old
		}
	}
	for v := 0; v < b.nValues; v++ {
		if b.variableMarginals[0][v] <= 0 {
			continue
		}
		added := 0
		if v == c {
			added = 1
		}
		old := b.constraintMessages[c][0][v]
		b.constraintMessages[c][0][v] = b.damping*suffix[0][added] + (1-b.damping)*old
	}

	b.normalizeConstraintMessages(c)
}

func (b *BP) normalizeConstraintMessages(c int) {
	for i := 0; i < b.nVariables; i++ {
		sum := floats.Sum(b.constraintMessages[c][i])
		if sum > 0 {
			floats.Scale(1/sum, b.constraintMessages[c][i])
		}
	}
}

// computeVariablesMessagesAndMarginals refreshes every variable's marginal
// and its outgoing message to each constraint, and returns the largest
// per-value marginal change observed across any piece (the convergence
// signal).
func (b *BP) computeVariablesMessagesAndMarginals() float64 {
	maxChange := 0.0
	for i := 0; i < b.nVariables; i++ {
		if change := b.computeVariableMessagesAndMarginals(i); change > maxChange {
			maxChange = change
		}
	}
	return maxChange
}

func (b *BP) computeVariableMessagesAndMarginals(i int) float64 {
	prev := append([]float64(nil), b.variableMarginals[i]...)

	for v := 0; v < b.nValues; v++ {
		if b.variableMarginals[i][v] <= 0 {
			continue
		}
		marginal := 1.0
		for c := 0; c < b.nValues; c++ {
			marginal *= b.constraintMessages[c][i][v]
		}
		for c := 0; c < b.nValues; c++ {
			old := b.variableMessages[i][v][c]
			b.variableMessages[i][v][c] = b.damping*marginal/b.constraintMessages[c][i][v] + (1-b.damping)*old
		}
		b.variableMarginals[i][v] = marginal
	}

	b.normalizeVariableMessages(i)
	b.normalizeVariableMarginals(i)

	maxChange := 0.0
	for v := 0; v < b.nValues; v++ {
		delta := prev[v] - b.variableMarginals[i][v]
		if delta < 0 {
			delta = -delta
		}
		if delta > maxChange {
			maxChange = delta
		}
	}
	return maxChange
}

func (b *BP) normalizeVariableMessages(i int) {
	for c := 0; c < b.nValues; c++ {
		sum := 0.0
		for v := 0; v < b.nValues; v++ {
			sum += b.variableMessages[i][v][c]
		}
		if sum <= 0 {
			continue
		}
		for v := 0; v < b.nValues; v++ {
			b.variableMessages[i][v][c] /= sum
		}
	}
}

func (b *BP) normalizeVariableMarginals(i int) {
	sum := floats.Sum(b.variableMarginals[i])
	if sum > 0 {
		floats.Scale(1/sum, b.variableMarginals[i])
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
