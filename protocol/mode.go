package protocol

import "fmt"

// Mode selects one of the lighting behaviors built into the device firmware.
// The set is closed, the firmware rejects nothing and silently misbehaves on
// unknown values, so Encode validates modes against the capability table
// before anything reaches the wire.
type Mode uint8

const (
	Fixed           Mode = 0
	Fading          Mode = 1
	SpectrumWave    Mode = 2
	Marquee         Mode = 3
	CoveringMarquee Mode = 4
	Alternating     Mode = 5
	Pulse           Mode = 6
	Breathing       Mode = 7
	Candle          Mode = 9
	Wings           Mode = 12
	Wave            Mode = 13
)

// Speed controls animation timing for modes that animate
type Speed uint8

const (
	Slowest Speed = iota
	Slow
	Normal
	Fast
	Fastest
)

// Direction controls the travel direction of moving animations
type Direction uint8

const (
	Forward  Direction = 0
	Backward Direction = 1
)

// modeInfo describes what the firmware honors for a given mode
type modeInfo struct {
	name        string
	animated    bool  // speed byte honored
	directional bool  // direction bit honored
	sized       bool  // marquee group size honored
	moving      bool  // moving bit honored
	custom      bool  // per-LED colors honored
	maxSteps    uint8 // chained animation steps accepted
}

var modeTable = map[Mode]modeInfo{
	Fixed:           {name: `fixed`, custom: true, maxSteps: 1},
	Fading:          {name: `fading`, animated: true, custom: true, maxSteps: 8},
	SpectrumWave:    {name: `spectrum-wave`, animated: true, directional: true, maxSteps: 1},
	Marquee:         {name: `marquee`, animated: true, directional: true, sized: true, custom: true, maxSteps: 1},
	CoveringMarquee: {name: `covering-marquee`, animated: true, directional: true, custom: true, maxSteps: 8},
	Alternating:     {name: `alternating`, animated: true, directional: true, sized: true, moving: true, maxSteps: 2},
	Pulse:           {name: `pulse`, animated: true, custom: true, maxSteps: 8},
	Breathing:       {name: `breathing`, animated: true, custom: true, maxSteps: 8},
	Candle:          {name: `candle`, maxSteps: 1},
	Wings:           {name: `wings`, animated: true, custom: true, maxSteps: 1},
	Wave:            {name: `wave`, animated: true, custom: true, maxSteps: 1},
}

// Valid reports whether the firmware knows this mode
func (m Mode) Valid() bool {
	_, ok := modeTable[m]
	return ok
}

// Animated reports whether the mode honors the speed byte
func (m Mode) Animated() bool {
	return modeTable[m].animated
}

// Custom reports whether the mode honors per-LED colors
func (m Mode) Custom() bool {
	return modeTable[m].custom
}

// MaxSteps returns the number of animation steps the mode accepts when
// chained by step index
func (m Mode) MaxSteps() uint8 {
	return modeTable[m].maxSteps
}

func (m Mode) String() string {
	info, ok := modeTable[m]
	if !ok {
		return fmt.Sprintf(`unknown(%d)`, uint8(m))
	}
	return info.name
}
