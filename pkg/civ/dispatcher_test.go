package civ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kc3dnx/id5100d/pkg/rig"
)

func TestDispatcherDualWatchRidesOnVFOCommand(t *testing.T) {
	tr := NewMockTransactor()
	d := NewDispatcher(tr)

	require.NoError(t, d.SetFunc(rig.VFOCurrent, rig.FuncDualWatch, true))
	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, CmdSetVFO, calls[0].Cmd)
	assert.Equal(t, SubDualOn, calls[0].Sub)
	assert.Empty(t, calls[0].Payload)
	assert.True(t, tr.DualWatch())

	on, err := d.GetFunc(rig.VFOCurrent, rig.FuncDualWatch)
	require.NoError(t, err)
	assert.True(t, on)
	calls = tr.Calls()
	assert.Equal(t, SubDualRead, calls[len(calls)-1].Sub)

	require.NoError(t, d.SetFunc(rig.VFOCurrent, rig.FuncDualWatch, false))
	assert.False(t, tr.DualWatch())
}

func TestDispatcherFuncs(t *testing.T) {
	tr := NewMockTransactor()
	d := NewDispatcher(tr)

	for _, fn := range []rig.Function{rig.FuncTone, rig.FuncTSQL, rig.FuncCSQL, rig.FuncDSQL, rig.FuncVOX} {
		t.Run(fn.String(), func(t *testing.T) {
			on, err := d.GetFunc(rig.VFOCurrent, fn)
			require.NoError(t, err)
			assert.False(t, on)

			require.NoError(t, d.SetFunc(rig.VFOCurrent, fn, true))
			on, err = d.GetFunc(rig.VFOCurrent, fn)
			require.NoError(t, err)
			assert.True(t, on)
		})
	}

	err := d.SetFunc(rig.VFOCurrent, rig.FuncNone, true)
	assert.ErrorIs(t, err, rig.ErrNotSupported)
}

func TestDispatcherFrequency(t *testing.T) {
	tr := NewMockTransactor()
	d := NewDispatcher(tr)

	require.NoError(t, d.SetFrequency(438712500))
	hz, err := d.GetFrequency()
	require.NoError(t, err)
	assert.Equal(t, int64(438712500), hz)

	calls := tr.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, CmdSetFreq, calls[0].Cmd)
	assert.Equal(t, NoSub, calls[0].Sub)
	assert.Len(t, calls[0].Payload, 5)
}

func TestDispatcherPTT(t *testing.T) {
	tr := NewMockTransactor()
	d := NewDispatcher(tr)

	on, err := d.GetPTT()
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, d.SetPTT(true))
	on, err = d.GetPTT()
	require.NoError(t, err)
	assert.True(t, on)
}

func TestDispatcherLevels(t *testing.T) {
	tr := NewMockTransactor()
	d := NewDispatcher(tr)

	require.NoError(t, d.SetLevel(rig.VFOCurrent, rig.LevelAF, 200))
	v, err := d.GetLevel(rig.VFOCurrent, rig.LevelAF)
	require.NoError(t, err)
	assert.Equal(t, 200, v)

	// S-meter is read-only and lives under the read-level command.
	_, err = d.GetLevel(rig.VFOCurrent, rig.LevelRawStr)
	require.NoError(t, err)
	calls := tr.Calls()
	assert.Equal(t, CmdRdLevel, calls[len(calls)-1].Cmd)

	err = d.SetLevel(rig.VFOCurrent, rig.LevelRawStr, 1)
	assert.ErrorIs(t, err, rig.ErrNotSupported)
}

func TestMockFailureInjectionIsOneShot(t *testing.T) {
	tr := NewMockTransactor()
	d := NewDispatcher(tr)

	tr.FailWith(CmdSetFreq, NoSub, ErrNegativeAck)
	err := d.SetFrequency(145500000)
	require.ErrorIs(t, err, ErrNegativeAck)

	require.NoError(t, d.SetFrequency(145500000))
	hz, err := d.GetFrequency()
	require.NoError(t, err)
	assert.Equal(t, int64(145500000), hz)
}
