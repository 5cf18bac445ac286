package driver

import (
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/game"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/state"
)

// MockAgent is a hand-written gomock double for agent.Agent, used to
// exercise the "illegal action aborts the step" path without a real
// search agent.
type MockAgent struct {
	ctrl     *gomock.Controller
	recorder *MockAgentMockRecorder
}

type MockAgentMockRecorder struct {
	mock *MockAgent
}

func NewMockAgent(ctrl *gomock.Controller) *MockAgent {
	m := &MockAgent{ctrl: ctrl}
	m.recorder = &MockAgentMockRecorder{m}
	return m
}

func (m *MockAgent) EXPECT() *MockAgentMockRecorder { return m.recorder }

func (m *MockAgent) SetGame(g game.Game) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetGame", g)
}

func (mr *MockAgentMockRecorder) SetGame(g interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetGame", reflect.TypeOf((*MockAgent)(nil).SetGame), g)
}

func (m *MockAgent) SetPlayer(p board.PlayerID) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetPlayer", p)
}

func (mr *MockAgentMockRecorder) SetPlayer(p interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetPlayer", reflect.TypeOf((*MockAgent)(nil).SetPlayer), p)
}

func (m *MockAgent) Act(private, public *state.State) move.Action {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Act", private, public)
	ret0, _ := ret[0].(move.Action)
	return ret0
}

func (mr *MockAgentMockRecorder) Act(private, public interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Act", reflect.TypeOf((*MockAgent)(nil).Act), private, public)
}
