package civ

import (
	"bytes"
	"errors"
	"testing"
)

func TestMockTransactor(t *testing.T) {
	m := NewMockTransactor()

	t.Run("Set and Read Frequency", func(t *testing.T) {
		_, err := m.Execute(CmdSetFreq, NoSub, EncodeFreq(438725000))
		if err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}

		resp, err := m.Execute(CmdRdFreq, NoSub, nil)
		if err != nil {
			t.Errorf("Failed to read frequency: %v", err)
		}
		if resp[0] != CmdRdFreq {
			t.Errorf("Expected command echo 0x%02X, got 0x%02X", CmdRdFreq, resp[0])
		}
		hz, err := DecodeFreq(resp[1:6])
		if err != nil {
			t.Errorf("Failed to decode frequency: %v", err)
		}
		if hz != 438725000 {
			t.Errorf("Expected 438725000 Hz, got %d", hz)
		}
	})

	t.Run("Set and Read Mode", func(t *testing.T) {
		_, err := m.Execute(CmdSetMode, 0x02, []byte{2})
		if err != nil {
			t.Errorf("Failed to set mode: %v", err)
		}

		resp, err := m.Execute(CmdRdMode, NoSub, nil)
		if err != nil {
			t.Errorf("Failed to read mode: %v", err)
		}
		if !bytes.Equal(resp[:3], []byte{CmdRdMode, 0x02, 2}) {
			t.Errorf("Unexpected mode response: % X", resp)
		}
	})

	t.Run("VFO Select and Dual Watch", func(t *testing.T) {
		if _, err := m.Execute(CmdSetVFO, SubVFOSub, nil); err != nil {
			t.Errorf("Failed to select sub: %v", err)
		}
		if m.SelectedVFO() != SubVFOSub {
			t.Errorf("Expected selector 0x%02X, got 0x%02X", SubVFOSub, m.SelectedVFO())
		}

		if _, err := m.Execute(CmdSetVFO, SubDualOn, nil); err != nil {
			t.Errorf("Failed to enable dual watch: %v", err)
		}
		resp, err := m.Execute(CmdSetVFO, SubDualRead, nil)
		if err != nil {
			t.Errorf("Failed to read dual watch: %v", err)
		}
		if resp[2] != 1 {
			t.Error("Expected dual watch on")
		}

		if _, err := m.Execute(CmdSetVFO, SubDualOff, nil); err != nil {
			t.Errorf("Failed to disable dual watch: %v", err)
		}
		if m.DualWatch() {
			t.Error("Expected dual watch off")
		}
	})

	t.Run("Unknown Command NAKs", func(t *testing.T) {
		_, err := m.Execute(0x99, NoSub, nil)
		if !errors.Is(err, ErrNegativeAck) {
			t.Errorf("Expected negative ack, got: %v", err)
		}
	})

	t.Run("Call Recording", func(t *testing.T) {
		m.Reset()

		if _, err := m.Execute(CmdCtlPTT, SubPTT, []byte{1}); err != nil {
			t.Errorf("Failed to key PTT: %v", err)
		}
		if _, err := m.Execute(CmdCtlPTT, SubPTT, nil); err != nil {
			t.Errorf("Failed to read PTT: %v", err)
		}

		calls := m.Calls()
		if len(calls) != 2 {
			t.Fatalf("Expected 2 recorded calls, got %d", len(calls))
		}
		if calls[0].Cmd != CmdCtlPTT || !bytes.Equal(calls[0].Payload, []byte{1}) {
			t.Errorf("Unexpected first call: %+v", calls[0])
		}
	})
}
