package protocol

import (
	"fmt"

	"github.com/st3iny/gonzxt/common"
)

const (
	// LEDCount is the number of addressable LEDs the device drives
	LEDCount = 20
	// TransferSize is the size of each interrupt transfer in bytes
	TransferSize = 65

	// MaxStepIndex is the largest step index the 3-bit index field can carry
	MaxStepIndex = 7
	// MaxGroupSize is the largest encoded marquee group size (row size 3..6
	// maps to 0..3)
	MaxGroupSize = 3

	headerFirst  = 0x02
	opcodeLED    = 0x4b
	headerSecond = 0x03

	// The first transfer carries 57 channel bytes after its 5 byte header,
	// the remaining 3 spill into the second transfer.
	firstTransferChannels = 57
)

// Frame is the ordered color assignment for all LEDs of one animation step.
// A valid frame has exactly LEDCount entries.
type Frame []common.Color

// UniformFrame returns a Frame with every LED set to c
func UniformFrame(c common.Color) Frame {
	frame := make(Frame, LEDCount)
	for i := range frame {
		frame[i] = c
	}
	return frame
}

// Directive is one symbolic animation step to be encoded.  Index chains
// consecutive directives of the same mode into a single animation and must be
// assigned contiguously from 0 by the caller, the encoder does not renumber.
type Directive struct {
	Mode      Mode
	Frame     Frame
	Speed     Speed
	Index     uint8
	Direction Direction
	GroupSize uint8 // encoded marquee row size, row size 3..6 maps to 0..3
	Moving    bool  // alternating only
}

// Packet is the encoded command for one animation step: two fixed-size
// interrupt transfers that must be written to the device in order.  Packet is
// an immutable value, encode once and send as often as needed.
type Packet struct {
	first  [TransferSize]byte
	second [TransferSize]byte
}

// Transfers returns the transfers in wire order.  The returned slices are
// copies, mutating them does not affect the packet.
func (p Packet) Transfers() [][]byte {
	return [][]byte{p.first[:], p.second[:]}
}

// Mode returns the mode byte carried by the packet
func (p Packet) Mode() Mode {
	return Mode(p.first[2])
}

// Step returns the step index carried by the packet
func (p Packet) Step() uint8 {
	return p.first[4] >> 5
}

// Off returns the packet that blanks all LEDs
func Off() Packet {
	var p Packet
	p.first[0] = headerFirst
	p.first[1] = opcodeLED
	p.second[0] = headerSecond
	return p
}

// Encode serializes one lighting directive into a command packet.
//
// The wire layout, captured from the firmware:
//
//	transfer 1: 0x02 0x4b mode (direction<<4 | moving<<3) (index<<5 | groupSize<<3 | speed)
//	            followed by the first 57 LED channel bytes, zero padded to 65
//	transfer 2: 0x03 followed by the remaining 3 channel bytes, zero padded to 65
//
// Channels are emitted G,R,B per LED.  Speed is zeroed for modes that do not
// animate; direction, group size and moving bits are rejected for modes that
// can not honor them since the firmware reuses those bits per mode.
func Encode(d Directive) (Packet, error) {
	info, ok := modeTable[d.Mode]
	if !ok {
		return Packet{}, fmt.Errorf(`%w: unknown mode %d`, common.ErrEncoding, uint8(d.Mode))
	}
	if len(d.Frame) != LEDCount {
		return Packet{}, fmt.Errorf(`%w: frame has %d colors, the device has %d leds`, common.ErrEncoding, len(d.Frame), LEDCount)
	}
	if d.Index > MaxStepIndex || d.Index >= info.maxSteps {
		return Packet{}, fmt.Errorf(`%w: step index %d out of range for mode %s (max %d)`, common.ErrEncoding, d.Index, d.Mode, info.maxSteps-1)
	}
	if d.Speed > Fastest {
		return Packet{}, fmt.Errorf(`%w: speed %d out of range`, common.ErrEncoding, uint8(d.Speed))
	}
	if d.Direction > Backward {
		return Packet{}, fmt.Errorf(`%w: direction %d out of range`, common.ErrEncoding, uint8(d.Direction))
	}
	if d.Direction == Backward && !info.directional {
		return Packet{}, fmt.Errorf(`%w: mode %s does not support a direction`, common.ErrEncoding, d.Mode)
	}
	if d.GroupSize > MaxGroupSize {
		return Packet{}, fmt.Errorf(`%w: group size %d out of range`, common.ErrEncoding, d.GroupSize)
	}
	if d.GroupSize != 0 && !info.sized {
		return Packet{}, fmt.Errorf(`%w: mode %s does not support a group size`, common.ErrEncoding, d.Mode)
	}
	if d.Moving && !info.moving {
		return Packet{}, fmt.Errorf(`%w: mode %s does not support the moving flag`, common.ErrEncoding, d.Mode)
	}

	speed := d.Speed
	if !info.animated {
		speed = Slowest
	}

	var moving uint8
	if d.Moving {
		moving = 1
	}

	var p Packet
	p.first[0] = headerFirst
	p.first[1] = opcodeLED
	p.first[2] = byte(d.Mode)
	p.first[3] = byte(d.Direction)<<4 | moving<<3
	p.first[4] = d.Index<<5 | d.GroupSize<<3 | byte(speed)
	p.second[0] = headerSecond

	for i, c := range d.Frame {
		writeChannel(&p, 3*i, c.G)
		writeChannel(&p, 3*i+1, c.R)
		writeChannel(&p, 3*i+2, c.B)
	}

	return p, nil
}

// writeChannel places the n-th channel byte into whichever transfer it
// belongs to
func writeChannel(p *Packet, n int, value byte) {
	if n < firstTransferChannels {
		p.first[5+n] = value
	} else {
		p.second[1+n-firstTransferChannels] = value
	}
}
