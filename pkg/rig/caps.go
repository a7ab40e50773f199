package rig

// Capabilities is the static descriptor a backend hands to the host at
// registration time. It is configuration, not protocol: frequency
// ranges, filters and serial defaults, declared once per model.
type Capabilities struct {
	ModelName    string `json:"model_name"`
	Manufacturer string `json:"manufacturer"`
	Version      string `json:"version"`
	Status       string `json:"status"`

	// DefaultAddress is the vendor bus address (CI-V for Icom rigs).
	DefaultAddress byte `json:"default_address"`

	Serial SerialDefaults `json:"serial"`

	// Range lists follow the two-region convention: list 1 is EU,
	// list 2 is US.
	RXRangesEU []FreqRange `json:"rx_ranges_eu"`
	TXRangesEU []FreqRange `json:"tx_ranges_eu"`
	RXRangesUS []FreqRange `json:"rx_ranges_us"`
	TXRangesUS []FreqRange `json:"tx_ranges_us"`

	TuningSteps []TuningStep `json:"tuning_steps"`
	Filters     []ModeFilter `json:"filters"`

	Functions []Function `json:"functions"`
	Levels    []Level    `json:"levels"`

	// MemoryChannels is zero when the protocol variant has no memory
	// channel access.
	MemoryChannels int `json:"memory_channels"`
}

// SerialDefaults describes the serial port settings the model expects.
type SerialDefaults struct {
	RateMin   int    `json:"rate_min"`
	RateMax   int    `json:"rate_max"`
	DataBits  int    `json:"data_bits"`
	StopBits  int    `json:"stop_bits"`
	Parity    string `json:"parity"`
	Handshake string `json:"handshake"`
	TimeoutMs int    `json:"timeout_ms"`
	Retries   int    `json:"retries"`
}

// FreqRange is one contiguous tunable range in Hz with the modes it
// supports and, for TX ranges, the power limits in milliwatts.
type FreqRange struct {
	LowHz      int64  `json:"low_hz"`
	HighHz     int64  `json:"high_hz"`
	Modes      []Mode `json:"modes"`
	LowPowerMW int    `json:"low_power_mw,omitempty"`
	MaxPowerMW int    `json:"max_power_mw,omitempty"`
}

// Contains reports whether hz falls inside the range.
func (r FreqRange) Contains(hz int64) bool {
	return hz >= r.LowHz && hz <= r.HighHz
}

// TuningStep is a step size in Hz valid for a set of modes. An empty
// mode list means all modes.
type TuningStep struct {
	Modes  []Mode `json:"modes,omitempty"`
	StepHz int64  `json:"step_hz"`
}

// ModeFilter is one selectable passband width for a set of modes.
type ModeFilter struct {
	Modes   []Mode `json:"modes"`
	WidthHz int    `json:"width_hz"`
}
