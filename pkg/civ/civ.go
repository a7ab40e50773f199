// Package civ carries the Icom CI-V command vocabulary and the shared
// per-vendor dispatch helpers that individual backends delegate to.
//
// Transport (serial framing, checksums, ack collapsing) is not
// implemented here; it lives behind the Transactor interface.
//
// Command reference: Icom CI-V manuals, e.g. the ID-5100 full
// instruction manual chapter 13.
package civ

import "errors"

// Transactor executes one CI-V transaction: command byte, optional
// subcommand, optional payload, and returns the response buffer.
//
// For set-style commands the response is the acknowledgement and may be
// empty. For read-style commands the buffer echoes the command byte
// (and subcommand, when one was sent) followed by the data bytes, e.g.
// a read-mode response is [0x04, mode, filter, ...].
type Transactor interface {
	Execute(cmd byte, sub int, payload []byte) ([]byte, error)
}

// NoSub marks a transaction that carries no subcommand byte.
const NoSub = -1

// Command numbers.
const (
	CmdRdFreq   byte = 0x03
	CmdRdMode   byte = 0x04
	CmdSetFreq  byte = 0x05
	CmdSetMode  byte = 0x06
	CmdSetVFO   byte = 0x07
	CmdCtlLevel byte = 0x14
	CmdRdLevel  byte = 0x15
	CmdCtlFunc  byte = 0x16
	CmdCtlPTT   byte = 0x1C
)

// Subcommands under CmdSetVFO. Dual watch rides on the VFO command.
const (
	SubVFOMain  = 0xD0
	SubVFOSub   = 0xD1
	SubDualOff  = 0xC0
	SubDualOn   = 0xC1
	SubDualRead = 0xC2
)

// Subcommands under CmdCtlFunc.
const (
	SubFuncTone = 0x42
	SubFuncTSQL = 0x43
	SubFuncVOX  = 0x46
	SubFuncCSQL = 0x5A
	SubFuncDSQL = 0x5B
)

// Subcommands under CmdCtlLevel / CmdRdLevel.
const (
	SubLevelAF      = 0x01
	SubLevelSQL     = 0x03
	SubLevelRFPower = 0x0A
	SubLevelMicGain = 0x0B
	SubLevelVOXGain = 0x16
	SubLevelSMeter  = 0x02 // under CmdRdLevel
)

// Subcommand under CmdCtlPTT.
const SubPTT = 0x00

// Wire acknowledgement codes.
const (
	CodeOK byte = 0xFB
	CodeNG byte = 0xFA
)

var (
	// ErrNegativeAck is returned when the rig answers NG (0xFA).
	ErrNegativeAck = errors.New("civ: rig rejected command")

	// ErrShortResponse is returned when a read-style response is too
	// short to carry the expected data.
	ErrShortResponse = errors.New("civ: short response")
)
