package civ

import (
	"fmt"

	"github.com/kc3dnx/id5100d/pkg/rig"
	"github.com/kc3dnx/id5100d/pkg/verbose"
)

// Dispatcher implements the generic function/level/frequency/PTT
// operations shared by CI-V rigs. Backends delegate here for everything
// that has no device-specific wrinkle.
//
// The rigs handled here are not VFO-targetable: the selector argument
// is accepted for signature compatibility but every command applies to
// the VFO the radio currently has selected.
type Dispatcher struct {
	tr Transactor
}

// NewDispatcher returns a dispatcher issuing transactions through tr.
func NewDispatcher(tr Transactor) *Dispatcher {
	return &Dispatcher{tr: tr}
}

var funcSubcommands = map[rig.Function]int{
	rig.FuncTone: SubFuncTone,
	rig.FuncTSQL: SubFuncTSQL,
	rig.FuncCSQL: SubFuncCSQL,
	rig.FuncDSQL: SubFuncDSQL,
	rig.FuncVOX:  SubFuncVOX,
}

var levelSubcommands = map[rig.Level]int{
	rig.LevelAF:      SubLevelAF,
	rig.LevelSQL:     SubLevelSQL,
	rig.LevelRFPower: SubLevelRFPower,
	rig.LevelMicGain: SubLevelMicGain,
	rig.LevelVOXGain: SubLevelVOXGain,
}

// SetFunc switches a rig function on or off. Dual watch is special:
// it rides on the VFO command with its own on/off subcommands instead
// of a 0x16 payload.
func (d *Dispatcher) SetFunc(vfo rig.VFO, fn rig.Function, enabled bool) error {
	verbose.Printf("civ: set func %s = %t", fn, enabled)

	if fn == rig.FuncDualWatch {
		sub := SubDualOff
		if enabled {
			sub = SubDualOn
		}
		_, err := d.tr.Execute(CmdSetVFO, sub, nil)
		return err
	}

	sub, ok := funcSubcommands[fn]
	if !ok {
		return fmt.Errorf("%w: function %s", rig.ErrNotSupported, fn)
	}
	payload := []byte{0}
	if enabled {
		payload[0] = 1
	}
	_, err := d.tr.Execute(CmdCtlFunc, sub, payload)
	return err
}

// GetFunc reads a rig function state.
func (d *Dispatcher) GetFunc(vfo rig.VFO, fn rig.Function) (bool, error) {
	if fn == rig.FuncDualWatch {
		resp, err := d.tr.Execute(CmdSetVFO, SubDualRead, nil)
		if err != nil {
			return false, err
		}
		if len(resp) < 3 {
			return false, ErrShortResponse
		}
		return resp[2] != 0, nil
	}

	sub, ok := funcSubcommands[fn]
	if !ok {
		return false, fmt.Errorf("%w: function %s", rig.ErrNotSupported, fn)
	}
	resp, err := d.tr.Execute(CmdCtlFunc, sub, nil)
	if err != nil {
		return false, err
	}
	if len(resp) < 3 {
		return false, ErrShortResponse
	}
	return resp[2] != 0, nil
}

// SetFrequency tunes the currently selected VFO.
func (d *Dispatcher) SetFrequency(hz int64) error {
	verbose.Printf("civ: set frequency %d Hz", hz)
	_, err := d.tr.Execute(CmdSetFreq, NoSub, EncodeFreq(hz))
	return err
}

// GetFrequency reads the currently selected VFO.
func (d *Dispatcher) GetFrequency() (int64, error) {
	resp, err := d.tr.Execute(CmdRdFreq, NoSub, nil)
	if err != nil {
		return 0, err
	}
	if len(resp) < 6 {
		return 0, ErrShortResponse
	}
	return DecodeFreq(resp[1:6])
}

// SetPTT keys or unkeys the transmitter.
func (d *Dispatcher) SetPTT(on bool) error {
	verbose.Printf("civ: set PTT %t", on)
	payload := []byte{0}
	if on {
		payload[0] = 1
	}
	_, err := d.tr.Execute(CmdCtlPTT, SubPTT, payload)
	return err
}

// GetPTT reads the transmit state.
func (d *Dispatcher) GetPTT() (bool, error) {
	resp, err := d.tr.Execute(CmdCtlPTT, SubPTT, nil)
	if err != nil {
		return false, err
	}
	if len(resp) < 3 {
		return false, ErrShortResponse
	}
	return resp[2] != 0, nil
}

// SetLevel writes an adjustable level, raw range 0..255.
func (d *Dispatcher) SetLevel(vfo rig.VFO, level rig.Level, value int) error {
	verbose.Printf("civ: set level %s = %d", level, value)
	sub, ok := levelSubcommands[level]
	if !ok {
		return fmt.Errorf("%w: level %s is read-only or unknown", rig.ErrNotSupported, level)
	}
	_, err := d.tr.Execute(CmdCtlLevel, sub, EncodeLevel(value))
	return err
}

// GetLevel reads a level, raw range 0..255. The S-meter lives under the
// read-level command rather than the control command.
func (d *Dispatcher) GetLevel(vfo rig.VFO, level rig.Level) (int, error) {
	cmd := CmdCtlLevel
	sub, ok := levelSubcommands[level]
	if !ok {
		if level != rig.LevelRawStr {
			return 0, fmt.Errorf("%w: level %s", rig.ErrNotSupported, level)
		}
		cmd = CmdRdLevel
		sub = SubLevelSMeter
	}
	resp, err := d.tr.Execute(cmd, sub, nil)
	if err != nil {
		return 0, err
	}
	if len(resp) < 4 {
		return 0, ErrShortResponse
	}
	return DecodeLevel(resp[2:4])
}
