package civ

import (
	"fmt"
	"sync"

	"github.com/kc3dnx/id5100d/pkg/verbose"
)

// Call records one executed transaction.
type Call struct {
	Cmd     byte
	Sub     int
	Payload []byte
}

// MockTransactor simulates an ID-5100 behind the Transactor interface.
// It keeps enough device state to answer reads consistently, records
// every call, and can be told to fail specific commands. The daemon
// uses it when no serial transport is configured; tests use it to
// observe transaction sequences.
type MockTransactor struct {
	mu sync.Mutex

	freq      int64
	modeCode  byte
	filter    byte
	vfoSel    byte
	dualWatch bool
	ptt       bool
	funcs     map[int]bool
	levels    map[int]int

	calls []Call

	// One-shot failure injection, armed by FailWith.
	failCmd byte
	failSub int
	failErr error
}

// NewMockTransactor returns a simulator parked on 145.500 MHz FM, Main
// VFO selected, dual watch off.
func NewMockTransactor() *MockTransactor {
	return &MockTransactor{
		freq:     145500000,
		modeCode: 0x05,
		filter:   1,
		vfoSel:   SubVFOMain,
		funcs:    make(map[int]bool),
		levels: map[int]int{
			SubLevelAF:      128,
			SubLevelSQL:     80,
			SubLevelRFPower: 255,
			SubLevelMicGain: 128,
			SubLevelVOXGain: 128,
		},
	}
}

// FailWith arranges for the next transaction matching cmd/sub to return
// err. Use NoSub to match regardless of subcommand.
func (m *MockTransactor) FailWith(cmd byte, sub int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failCmd, m.failSub, m.failErr = cmd, sub, err
}

// Calls returns a copy of the recorded transactions.
func (m *MockTransactor) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// Reset clears the call record.
func (m *MockTransactor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Execute implements Transactor against the simulated device state.
func (m *MockTransactor) Execute(cmd byte, sub int, payload []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Cmd: cmd, Sub: sub, Payload: append([]byte(nil), payload...)})
	verbose.Printf("mock: cmd=0x%02X sub=%d payload=% X", cmd, sub, payload)

	if m.failErr != nil && cmd == m.failCmd && (m.failSub == NoSub || m.failSub == sub) {
		err := m.failErr
		m.failErr = nil
		return nil, err
	}

	switch cmd {
	case CmdSetFreq:
		hz, err := DecodeFreq(payload)
		if err != nil {
			return nil, err
		}
		m.freq = hz
		return []byte{CodeOK}, nil

	case CmdRdFreq:
		return append([]byte{CmdRdFreq}, EncodeFreq(m.freq)...), nil

	case CmdSetMode:
		if len(payload) < 1 {
			return nil, ErrNegativeAck
		}
		m.modeCode = byte(sub)
		m.filter = payload[0]
		return []byte{CodeOK}, nil

	case CmdRdMode:
		return []byte{CmdRdMode, m.modeCode, m.filter, 0x00}, nil

	case CmdSetVFO:
		switch sub {
		case SubVFOMain, SubVFOSub:
			m.vfoSel = byte(sub)
			return []byte{CodeOK}, nil
		case SubDualOn:
			m.dualWatch = true
			return []byte{CodeOK}, nil
		case SubDualOff:
			m.dualWatch = false
			return []byte{CodeOK}, nil
		case SubDualRead:
			return []byte{CmdSetVFO, SubDualRead, boolByte(m.dualWatch)}, nil
		}
		return nil, fmt.Errorf("%w: VFO subcommand 0x%02X", ErrNegativeAck, sub)

	case CmdCtlFunc:
		if len(payload) == 0 {
			return []byte{CmdCtlFunc, byte(sub), boolByte(m.funcs[sub])}, nil
		}
		m.funcs[sub] = payload[0] != 0
		return []byte{CodeOK}, nil

	case CmdCtlLevel:
		if len(payload) == 0 {
			return append([]byte{CmdCtlLevel, byte(sub)}, EncodeLevel(m.levels[sub])...), nil
		}
		v, err := DecodeLevel(payload)
		if err != nil {
			return nil, err
		}
		m.levels[sub] = v
		return []byte{CodeOK}, nil

	case CmdRdLevel:
		if sub == SubLevelSMeter {
			// Parked on a quiet channel.
			return append([]byte{CmdRdLevel, SubLevelSMeter}, EncodeLevel(0)...), nil
		}
		return nil, fmt.Errorf("%w: read level 0x%02X", ErrNegativeAck, sub)

	case CmdCtlPTT:
		if len(payload) == 0 {
			return []byte{CmdCtlPTT, SubPTT, boolByte(m.ptt)}, nil
		}
		m.ptt = payload[0] != 0
		return []byte{CodeOK}, nil
	}

	return nil, fmt.Errorf("%w: command 0x%02X", ErrNegativeAck, cmd)
}

// DualWatch exposes the simulated dual-watch state for tests.
func (m *MockTransactor) DualWatch() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dualWatch
}

// SelectedVFO exposes the simulated wire selector (SubVFOMain/SubVFOSub).
func (m *MockTransactor) SelectedVFO() byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vfoSel
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
