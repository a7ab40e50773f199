// Package rig defines the generic rig-control vocabulary shared by all
// device backends: VFO selectors, operating modes, function and level
// identifiers, and the Backend interface the daemon drives.
package rig

import (
	"fmt"
	"strings"
)

// VFO identifies a logical frequency register. The ID-5100 exposes A/B
// and Main/Sub as alternate views of the same two physical registers.
type VFO int

const (
	VFONone VFO = iota
	VFOCurrent
	VFOA
	VFOB
	VFOMain
	VFOSub
)

// String returns the conventional selector name.
func (v VFO) String() string {
	switch v {
	case VFOCurrent:
		return "currVFO"
	case VFOA:
		return "VFOA"
	case VFOB:
		return "VFOB"
	case VFOMain:
		return "Main"
	case VFOSub:
		return "Sub"
	default:
		return "None"
	}
}

// ParseVFO parses a selector name as used by the daemon API and CLI.
func ParseVFO(s string) (VFO, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", "VFOA":
		return VFOA, nil
	case "B", "VFOB":
		return VFOB, nil
	case "MAIN":
		return VFOMain, nil
	case "SUB":
		return VFOSub, nil
	case "CURR", "CURRVFO":
		return VFOCurrent, nil
	default:
		return VFONone, fmt.Errorf("%w: unknown VFO %q", ErrInvalidArgument, s)
	}
}

// Mode is an operating mode. The zero value ModeNone marks "unset";
// a failed mode decode leaves it in place.
type Mode int

const (
	ModeNone Mode = iota
	ModeAM
	ModeAMN
	ModeFM
	ModeFMN
	ModeDV
)

// String returns the conventional mode name.
func (m Mode) String() string {
	switch m {
	case ModeAM:
		return "AM"
	case ModeAMN:
		return "AMN"
	case ModeFM:
		return "FM"
	case ModeFMN:
		return "FMN"
	case ModeDV:
		return "DV"
	default:
		return "NONE"
	}
}

// ParseMode parses a mode name as used by the daemon API and CLI.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AM":
		return ModeAM, nil
	case "AMN", "AM-N":
		return ModeAMN, nil
	case "FM":
		return ModeFM, nil
	case "FMN", "FM-N":
		return ModeFMN, nil
	case "DV", "DSTAR", "D-STAR":
		return ModeDV, nil
	default:
		return ModeNone, fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, s)
	}
}

// Function identifies a togglable rig function.
type Function int

const (
	FuncNone Function = iota
	FuncTone
	FuncTSQL
	FuncCSQL
	FuncDSQL
	FuncDualWatch
	FuncVOX
)

func (f Function) String() string {
	switch f {
	case FuncTone:
		return "TONE"
	case FuncTSQL:
		return "TSQL"
	case FuncCSQL:
		return "CSQL"
	case FuncDSQL:
		return "DSQL"
	case FuncDualWatch:
		return "DUAL_WATCH"
	case FuncVOX:
		return "VOX"
	default:
		return "NONE"
	}
}

// ParseFunction parses a function name as used by the daemon API and CLI.
func ParseFunction(s string) (Function, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TONE":
		return FuncTone, nil
	case "TSQL":
		return FuncTSQL, nil
	case "CSQL":
		return FuncCSQL, nil
	case "DSQL":
		return FuncDSQL, nil
	case "DUAL_WATCH", "DUALWATCH", "DW":
		return FuncDualWatch, nil
	case "VOX":
		return FuncVOX, nil
	default:
		return FuncNone, fmt.Errorf("%w: unknown function %q", ErrInvalidArgument, s)
	}
}

// Level identifies an adjustable rig level. Values are raw 0..255.
type Level int

const (
	LevelNone Level = iota
	LevelAF
	LevelSQL
	LevelRFPower
	LevelMicGain
	LevelVOXGain
	LevelRawStr
)

func (l Level) String() string {
	switch l {
	case LevelAF:
		return "AF"
	case LevelSQL:
		return "SQL"
	case LevelRFPower:
		return "RFPOWER"
	case LevelMicGain:
		return "MICGAIN"
	case LevelVOXGain:
		return "VOXGAIN"
	case LevelRawStr:
		return "RAWSTR"
	default:
		return "NONE"
	}
}

// ParseLevel parses a level name as used by the daemon API and CLI.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AF":
		return LevelAF, nil
	case "SQL":
		return LevelSQL, nil
	case "RFPOWER", "POWER":
		return LevelRFPower, nil
	case "MICGAIN":
		return LevelMicGain, nil
	case "VOXGAIN":
		return LevelVOXGain, nil
	case "RAWSTR", "STRENGTH":
		return LevelRawStr, nil
	default:
		return LevelNone, fmt.Errorf("%w: unknown level %q", ErrInvalidArgument, s)
	}
}

// Backend is the fixed call signature every device backend exposes to
// the host, so the daemon can drive all models uniformly.
type Backend interface {
	Capabilities() Capabilities

	SetFrequency(hz int64) error
	GetFrequency() (int64, error)

	SetMode(mode Mode, bandwidth int) error
	GetMode() (Mode, int, error)

	SetVFO(vfo VFO) error
	SetSplitVFO(rxVFO VFO, split bool, txVFO VFO) error

	SetPTT(on bool) error
	GetPTT() (bool, error)

	SetFunc(vfo VFO, fn Function, enabled bool) error
	GetFunc(vfo VFO, fn Function) (bool, error)

	SetLevel(vfo VFO, level Level, value int) error
	GetLevel(vfo VFO, level Level) (int, error)
}
