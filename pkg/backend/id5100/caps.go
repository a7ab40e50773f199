package id5100

import "github.com/kc3dnx/id5100d/pkg/rig"

var _ rig.Backend = (*Rig)(nil)

// Version of this backend.
const Version = "0.1.0"

func mhz(v int64) int64 { return v * 1000000 }

var (
	allModes = []rig.Mode{rig.ModeAM, rig.ModeAMN, rig.ModeFM, rig.ModeFMN, rig.ModeDV}
	txModes  = []rig.Mode{rig.ModeAM, rig.ModeAMN, rig.ModeFM, rig.ModeFMN, rig.ModeDV}
	amfm     = []rig.Mode{rig.ModeAM, rig.ModeAMN, rig.ModeFM, rig.ModeFMN}
)

// Capabilities returns the static descriptor for the ID-5100.
// Frequency ranges, filters and serial defaults come from the model's
// instruction manual; there is no memory-channel access over CI-V
// (cloning is a separate mode).
func (r *Rig) Capabilities() rig.Capabilities {
	return rig.Capabilities{
		ModelName:      "ID-5100",
		Manufacturer:   "Icom",
		Version:        Version,
		Status:         "stable",
		DefaultAddress: 0x8C,
		Serial: rig.SerialDefaults{
			RateMin:   4800,
			RateMax:   19200,
			DataBits:  8,
			StopBits:  1,
			Parity:    "none",
			Handshake: "none",
			TimeoutMs: 1000,
			Retries:   0,
		},
		RXRangesEU: []rig.FreqRange{
			{LowHz: mhz(118), HighHz: mhz(174), Modes: allModes},
			{LowHz: mhz(375), HighHz: mhz(550), Modes: allModes},
		},
		TXRangesEU: []rig.FreqRange{
			{LowHz: mhz(144), HighHz: mhz(146), Modes: txModes, LowPowerMW: 5000, MaxPowerMW: 25000},
			{LowHz: mhz(430), HighHz: mhz(440), Modes: txModes, LowPowerMW: 5000, MaxPowerMW: 25000},
		},
		RXRangesUS: []rig.FreqRange{
			{LowHz: mhz(118), HighHz: mhz(174), Modes: allModes},
			{LowHz: mhz(375), HighHz: mhz(550), Modes: allModes},
		},
		TXRangesUS: []rig.FreqRange{
			{LowHz: mhz(144), HighHz: mhz(148), Modes: txModes, LowPowerMW: 5000, MaxPowerMW: 50000},
			{LowHz: mhz(430), HighHz: mhz(450), Modes: txModes, LowPowerMW: 5000, MaxPowerMW: 50000},
		},
		TuningSteps: []rig.TuningStep{
			// No support for changing the tuning step over CI-V.
			{StepHz: 1},
		},
		Filters: []rig.ModeFilter{
			{Modes: amfm, WidthHz: 12000},
			{Modes: amfm, WidthHz: 6000},
		},
		Functions: []rig.Function{
			rig.FuncTone, rig.FuncTSQL, rig.FuncCSQL, rig.FuncDSQL,
			rig.FuncDualWatch, rig.FuncVOX,
		},
		Levels: []rig.Level{
			rig.LevelAF, rig.LevelSQL, rig.LevelRawStr,
			rig.LevelRFPower, rig.LevelMicGain, rig.LevelVOXGain,
		},
		MemoryChannels: 0,
	}
}
