package id5100

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kc3dnx/id5100d/pkg/civ"
	"github.com/kc3dnx/id5100d/pkg/rig"
)

func newTestRig() (*Rig, *civ.MockTransactor) {
	tr := civ.NewMockTransactor()
	return New(tr, civ.NewDispatcher(tr)), tr
}

func TestModeTableRoundTrip(t *testing.T) {
	// The table is the contract: every logical mode maps to exactly one
	// (primary, sub) pair and back.
	seen := map[[2]byte]rig.Mode{}
	for _, e := range modeTable {
		pair := [2]byte{e.code, e.sub}
		if prev, dup := seen[pair]; dup {
			t.Fatalf("pair (0x%02X,%d) mapped by both %s and %s", e.code, e.sub, prev, e.mode)
		}
		seen[pair] = e.mode
	}

	r, _ := newTestRig()
	for _, e := range modeTable {
		t.Run(e.mode.String(), func(t *testing.T) {
			require.NoError(t, r.SetMode(e.mode, 0))
			mode, width, err := r.GetMode()
			require.NoError(t, err)
			assert.Equal(t, e.mode, mode)
			assert.Equal(t, e.widthHz, width)
		})
	}
}

func TestSetModeUnsupported(t *testing.T) {
	r, tr := newTestRig()

	err := r.SetMode(rig.Mode(42), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, rig.ErrInvalidArgument)
	assert.Empty(t, tr.Calls(), "no transaction may be issued for an unsupported mode")
}

func TestSetModeIgnoresBandwidthArgument(t *testing.T) {
	r, tr := newTestRig()

	// Narrow/wide comes from the mode value, not the width argument.
	require.NoError(t, r.SetMode(rig.ModeFMN, 123456))
	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, civ.CmdSetMode, calls[0].Cmd)
	assert.Equal(t, 0x05, calls[0].Sub)
	assert.Equal(t, []byte{2}, calls[0].Payload)
}

// responseTransactor replays a canned response buffer.
type responseTransactor struct {
	resp  []byte
	calls int
}

func (s *responseTransactor) Execute(cmd byte, sub int, payload []byte) ([]byte, error) {
	s.calls++
	return s.resp, nil
}

func TestGetModeUnknownCode(t *testing.T) {
	// Inherited behavior: a primary code outside the table reports
	// success with mode and width left unset.
	tr := &responseTransactor{resp: []byte{civ.CmdRdMode, 0x00, 0x01, 0x00}}
	r := New(tr, civ.NewDispatcher(tr))

	mode, width, err := r.GetMode()
	require.NoError(t, err)
	assert.Equal(t, rig.ModeNone, mode)
	assert.Zero(t, width)
}

func TestGetModeNarrowSubCode(t *testing.T) {
	tr := &responseTransactor{resp: []byte{civ.CmdRdMode, 0x02, 0x02, 0x00}}
	r := New(tr, civ.NewDispatcher(tr))

	mode, width, err := r.GetMode()
	require.NoError(t, err)
	assert.Equal(t, rig.ModeAMN, mode)
	assert.Equal(t, 6000, width)
}

func TestSetVFOABDisablesDualWatch(t *testing.T) {
	r, tr := newTestRig()

	// Arm dual watch by selecting Main first.
	require.NoError(t, r.SetVFO(rig.VFOMain))
	require.True(t, r.DualWatch())
	tr.Reset()

	require.NoError(t, r.SetVFO(rig.VFOA))

	calls := tr.Calls()
	require.Len(t, calls, 2, "expected dual-watch toggle followed by VFO select")
	assert.Equal(t, civ.CmdSetVFO, calls[0].Cmd)
	assert.Equal(t, civ.SubDualOff, calls[0].Sub)
	assert.Equal(t, civ.CmdSetVFO, calls[1].Cmd)
	assert.Equal(t, civ.SubVFOMain, calls[1].Sub)

	assert.False(t, r.DualWatch())
	assert.Equal(t, rig.VFOA, r.CurrentVFO())
	assert.False(t, tr.DualWatch(), "device and cache must agree")
}

func TestSetVFOMainEnablesDualWatch(t *testing.T) {
	r, tr := newTestRig()

	require.NoError(t, r.SetVFO(rig.VFOMain))

	calls := tr.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, civ.SubDualOn, calls[0].Sub)
	assert.Equal(t, civ.SubVFOMain, calls[1].Sub)
	assert.True(t, r.DualWatch())
	assert.True(t, r.StatusCmdDegraded())
}

func TestSetVFOBNoToggleWhenAlreadyOff(t *testing.T) {
	r, tr := newTestRig()

	require.NoError(t, r.SetVFO(rig.VFOB))

	calls := tr.Calls()
	require.Len(t, calls, 1, "dual watch already off, only the select goes out")
	assert.Equal(t, civ.CmdSetVFO, calls[0].Cmd)
	assert.Equal(t, civ.SubVFOSub, calls[0].Sub)
	assert.Equal(t, rig.VFOB, r.CurrentVFO())
}

func TestSetVFOSubNoToggleWhenAlreadyOn(t *testing.T) {
	r, tr := newTestRig()

	require.NoError(t, r.SetVFO(rig.VFOMain))
	tr.Reset()

	require.NoError(t, r.SetVFO(rig.VFOSub))

	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, civ.SubVFOSub, calls[0].Sub)
	assert.True(t, r.DualWatch())
}

func TestSetVFOToggleFailureAborts(t *testing.T) {
	r, tr := newTestRig()
	require.NoError(t, r.SetVFO(rig.VFOMain))
	tr.Reset()

	boom := errors.New("timeout waiting for ack")
	tr.FailWith(civ.CmdSetVFO, civ.SubDualOff, boom)

	err := r.SetVFO(rig.VFOA)
	require.ErrorIs(t, err, boom)

	calls := tr.Calls()
	require.Len(t, calls, 1, "VFO select must not be attempted after a failed toggle")
	assert.Equal(t, civ.SubDualOff, calls[0].Sub)

	assert.True(t, r.DualWatch(), "flag unchanged when the toggle never took")
	assert.Equal(t, rig.VFOMain, r.CurrentVFO())
}

func TestSetVFOSelectFailureKeepsToggledFlag(t *testing.T) {
	r, tr := newTestRig()
	require.NoError(t, r.SetVFO(rig.VFOMain))
	tr.Reset()

	boom := errors.New("timeout waiting for ack")
	tr.FailWith(civ.CmdSetVFO, civ.SubVFOMain, boom)

	err := r.SetVFO(rig.VFOA)
	require.ErrorIs(t, err, boom)

	// The toggle was acknowledged before the select failed, so the
	// cached flag follows the device, and the current VFO is unchanged.
	assert.False(t, r.DualWatch())
	assert.False(t, tr.DualWatch())
	assert.Equal(t, rig.VFOMain, r.CurrentVFO())
}

func TestSetVFOCurrentResolvesToLastSelection(t *testing.T) {
	r, tr := newTestRig()

	// A fresh session starts on VFOA; "current" means A here.
	require.NoError(t, r.SetVFO(rig.VFOCurrent))
	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, civ.SubVFOMain, calls[0].Sub)
	assert.Equal(t, rig.VFOA, r.CurrentVFO())
	assert.True(t, r.StatusCmdDegraded())

	require.NoError(t, r.SetVFO(rig.VFOSub))
	tr.Reset()
	require.NoError(t, r.SetVFO(rig.VFOCurrent))
	calls = tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, civ.SubVFOSub, calls[0].Sub)
}

func TestSetVFOUnknownSelector(t *testing.T) {
	r, tr := newTestRig()

	err := r.SetVFO(rig.VFONone)
	require.ErrorIs(t, err, rig.ErrInvalidArgument)
	assert.Empty(t, tr.Calls())
	assert.False(t, r.DualWatch())
}

func TestSetSplitVFORejectsTXSub(t *testing.T) {
	for _, tx := range []rig.VFO{rig.VFOSub, rig.VFOB} {
		t.Run(tx.String(), func(t *testing.T) {
			r, tr := newTestRig()

			err := r.SetSplitVFO(rig.VFOMain, true, tx)
			require.ErrorIs(t, err, rig.ErrInvalidArgument)
			assert.Empty(t, tr.Calls(), "no state change on a rejected split")
			assert.False(t, r.DualWatch())
			assert.Equal(t, rig.VFOA, r.CurrentVFO())
		})
	}
}

func TestSetSplitVFOMatchesDirectSubSelect(t *testing.T) {
	split, splitTr := newTestRig()
	direct, directTr := newTestRig()

	require.NoError(t, split.SetSplitVFO(rig.VFOSub, true, rig.VFOMain))
	require.NoError(t, direct.SetVFO(rig.VFOSub))

	assert.Equal(t, directTr.Calls(), splitTr.Calls(),
		"split must issue exactly the transaction sequence of set_vfo(Sub)")
	assert.Equal(t, rig.VFOSub, split.CurrentVFO())
	assert.True(t, split.DualWatch())
}

func TestSetSplitVFOWithTXA(t *testing.T) {
	r, tr := newTestRig()

	require.NoError(t, r.SetSplitVFO(rig.VFOSub, true, rig.VFOA))
	assert.Equal(t, byte(civ.SubVFOSub), tr.SelectedVFO())
}

func TestGetFuncPassThrough(t *testing.T) {
	r, tr := newTestRig()

	require.NoError(t, r.SetFunc(rig.VFOCurrent, rig.FuncTone, true))
	on, err := r.GetFunc(rig.VFOCurrent, rig.FuncTone)
	require.NoError(t, err)
	assert.True(t, on)

	calls := tr.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, civ.CmdCtlFunc, calls[0].Cmd)
	assert.Equal(t, civ.SubFuncTone, calls[0].Sub)
	assert.Equal(t, civ.CmdCtlFunc, calls[1].Cmd)
	assert.Empty(t, calls[1].Payload, "query carries no payload")
}

func TestSharedDelegation(t *testing.T) {
	r, _ := newTestRig()

	require.NoError(t, r.SetFrequency(433500000))
	hz, err := r.GetFrequency()
	require.NoError(t, err)
	assert.Equal(t, int64(433500000), hz)

	require.NoError(t, r.SetPTT(true))
	on, err := r.GetPTT()
	require.NoError(t, err)
	assert.True(t, on)
	require.NoError(t, r.SetPTT(false))

	require.NoError(t, r.SetLevel(rig.VFOCurrent, rig.LevelSQL, 42))
	v, err := r.GetLevel(rig.VFOCurrent, rig.LevelSQL)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
