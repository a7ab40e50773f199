// Package id5100 implements the Icom ID-5100 backend: the mapping from
// the generic rig-control API onto the model's CI-V commands, including
// its coupling between logical VFO selection and dual-watch mode.
//
// Rig control uses the port labeled SP2; the port labeled "Data" is for
// firmware upgrades only.
package id5100

import (
	"fmt"
	"sync"

	"github.com/kc3dnx/id5100d/pkg/civ"
	"github.com/kc3dnx/id5100d/pkg/rig"
	"github.com/kc3dnx/id5100d/pkg/verbose"
)

// FuncController is the slice of the shared dispatcher this backend
// consumes for function set/query.
type FuncController interface {
	SetFunc(vfo rig.VFO, fn rig.Function, enabled bool) error
	GetFunc(vfo rig.VFO, fn rig.Function) (bool, error)
}

// SharedOps is everything else the backend delegates to the shared
// CI-V dispatcher unchanged.
type SharedOps interface {
	FuncController
	SetFrequency(hz int64) error
	GetFrequency() (int64, error)
	SetPTT(on bool) error
	GetPTT() (bool, error)
	SetLevel(vfo rig.VFO, level rig.Level, value int) error
	GetLevel(vfo rig.VFO, level rig.Level) (int, error)
}

// Rig is one ID-5100 session. It owns the per-session state the VFO
// coupling rule depends on; calls against one Rig must not overlap.
type Rig struct {
	tr     civ.Transactor
	shared SharedOps

	mu sync.Mutex

	currentVFO rig.VFO
	dualWatch  bool

	// statusCmdDegraded marks that VFOs were selected explicitly, which
	// makes the 0x25 combined status-query command unusable on this
	// model.
	statusCmdDegraded bool
}

// New returns a backend issuing transactions through tr and delegating
// shared operations to shared. Pass civ.NewDispatcher(tr) unless a test
// needs to intercept the function dispatch.
func New(tr civ.Transactor, shared SharedOps) *Rig {
	return &Rig{
		tr:         tr,
		shared:     shared,
		currentVFO: rig.VFOA,
	}
}

// modeTable is the closed bidirectional mapping between logical modes
// and the (primary, sub) wire pair. Narrow/wide is part of the mode
// enumeration itself; the width column is derived display data.
var modeTable = []struct {
	mode    rig.Mode
	code    byte
	sub     byte
	widthHz int
}{
	{rig.ModeAM, 0x02, 1, 12000},
	{rig.ModeAMN, 0x02, 2, 6000},
	{rig.ModeFM, 0x05, 1, 10000},
	{rig.ModeFMN, 0x05, 2, 5000},
	{rig.ModeDV, 0x17, 1, 6000},
}

// SetMode selects an operating mode. The bandwidth argument is accepted
// for signature compatibility: this model encodes narrow/wide in the
// mode enumeration, never as an independent value.
func (r *Rig) SetMode(mode rig.Mode, bandwidth int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range modeTable {
		if e.mode == mode {
			verbose.Printf("id5100: set mode %s (code=0x%02X sub=%d)", mode, e.code, e.sub)
			_, err := r.tr.Execute(civ.CmdSetMode, int(e.code), []byte{e.sub})
			return err
		}
	}
	return fmt.Errorf("%w: unsupported mode %s", rig.ErrInvalidArgument, mode)
}

// GetMode reads the operating mode and derives the passband width from
// the (primary, sub) pair.
//
// An unrecognized primary code leaves mode and width at their zero
// values and still returns success. That mirrors the device's original
// driver behavior; callers see ModeNone/0 for codes outside the table.
func (r *Rig) GetMode() (rig.Mode, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	resp, err := r.tr.Execute(civ.CmdRdMode, civ.NoSub, nil)
	if err != nil {
		return rig.ModeNone, 0, err
	}
	if len(resp) < 3 {
		return rig.ModeNone, 0, civ.ErrShortResponse
	}

	code, sub := resp[1], resp[2]
	var candidates []int
	for i, e := range modeTable {
		if e.code == code {
			candidates = append(candidates, i)
		}
	}
	switch len(candidates) {
	case 0:
		return rig.ModeNone, 0, nil
	case 1:
		e := modeTable[candidates[0]]
		return e.mode, e.widthHz, nil
	default:
		// Wide/narrow pair: sub-code 1 is wide, anything else narrow.
		idx := candidates[1]
		if sub == 1 {
			idx = candidates[0]
		}
		e := modeTable[idx]
		return e.mode, e.widthHz, nil
	}
}

// SetVFO selects a logical VFO and enforces the model's coupling rule:
// selecting A or B turns dual watch off, selecting Main or Sub turns it
// on. The toggle, when needed, goes out and is acknowledged before the
// VFO-select command; if it fails the select is never attempted and the
// cached flag keeps tracking what the device last confirmed.
func (r *Rig) SetVFO(vfo rig.VFO) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if vfo == rig.VFOCurrent {
		vfo = r.currentVFO
	}

	switch vfo {
	case rig.VFOA, rig.VFOB:
		// Explicit VFO selection rules out the 0x25 status query.
		r.statusCmdDegraded = true
		if r.dualWatch {
			if err := r.shared.SetFunc(rig.VFOCurrent, rig.FuncDualWatch, false); err != nil {
				return err
			}
			r.dualWatch = false
		}
	case rig.VFOMain, rig.VFOSub:
		r.statusCmdDegraded = true
		if !r.dualWatch {
			if err := r.shared.SetFunc(rig.VFOCurrent, rig.FuncDualWatch, true); err != nil {
				return err
			}
			r.dualWatch = true
		}
	default:
		return fmt.Errorf("%w: cannot select VFO %s", rig.ErrInvalidArgument, vfo)
	}

	sel := civ.SubVFOMain
	if vfo == rig.VFOB || vfo == rig.VFOSub {
		sel = civ.SubVFOSub
	}
	verbose.Printf("id5100: select %s (wire 0x%02X, dual watch %t)", vfo, sel, r.dualWatch)
	if _, err := r.tr.Execute(civ.CmdSetVFO, sel, nil); err != nil {
		return err
	}
	r.currentVFO = vfo
	return nil
}

// SetSplitVFO configures split operation. The ID-5100 has no transmit
// VFO command: split always transmits on Main and receives on Sub, so
// the only action is making Sub the active receive VFO. Any other
// transmit VFO is unrepresentable.
func (r *Rig) SetSplitVFO(rxVFO rig.VFO, split bool, txVFO rig.VFO) error {
	if txVFO == rig.VFOA || txVFO == rig.VFOMain {
		return r.SetVFO(rig.VFOSub)
	}
	return fmt.Errorf("%w: split requires TX=Main RX=Sub, got TX=%s RX=%s",
		rig.ErrInvalidArgument, txVFO, rxVFO)
}

// GetFunc passes straight through to the shared dispatcher; this model
// adds nothing to function queries.
func (r *Rig) GetFunc(vfo rig.VFO, fn rig.Function) (bool, error) {
	return r.shared.GetFunc(vfo, fn)
}

// SetFunc passes through to the shared dispatcher.
func (r *Rig) SetFunc(vfo rig.VFO, fn rig.Function, enabled bool) error {
	return r.shared.SetFunc(vfo, fn, enabled)
}

// SetFrequency delegates to the shared dispatcher.
func (r *Rig) SetFrequency(hz int64) error { return r.shared.SetFrequency(hz) }

// GetFrequency delegates to the shared dispatcher.
func (r *Rig) GetFrequency() (int64, error) { return r.shared.GetFrequency() }

// SetPTT delegates to the shared dispatcher.
func (r *Rig) SetPTT(on bool) error { return r.shared.SetPTT(on) }

// GetPTT delegates to the shared dispatcher.
func (r *Rig) GetPTT() (bool, error) { return r.shared.GetPTT() }

// SetLevel delegates to the shared dispatcher.
func (r *Rig) SetLevel(vfo rig.VFO, level rig.Level, value int) error {
	return r.shared.SetLevel(vfo, level, value)
}

// GetLevel delegates to the shared dispatcher.
func (r *Rig) GetLevel(vfo rig.VFO, level rig.Level) (int, error) {
	return r.shared.GetLevel(vfo, level)
}

// CurrentVFO returns the last successfully selected VFO.
func (r *Rig) CurrentVFO() rig.VFO {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentVFO
}

// DualWatch returns the cached dual-watch state.
func (r *Rig) DualWatch() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dualWatch
}

// StatusCmdDegraded reports whether explicit VFO selection has ruled
// out the combined status-query command for this session.
func (r *Rig) StatusCmdDegraded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statusCmdDegraded
}
