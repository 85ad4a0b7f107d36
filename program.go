package gonzxt

import (
	"fmt"

	"github.com/st3iny/gonzxt/common"
	"github.com/st3iny/gonzxt/protocol"
)

// The methods in this file cover the lighting programs the firmware ships.
// Multi-color programs encode one frame per color and chain them with
// contiguous step indices, the device plays the chained steps as one
// animation.  All frames of a program are encoded up front so an invalid
// input never leaves a half-sent program on the device.

// Off turns all LEDs off
func (s *Session) Off() error {
	return s.Send(protocol.Off())
}

// Fixed shows a single color on all LEDs
func (s *Session) Fixed(color common.Color) error {
	return s.sendPreset(protocol.Fixed, []common.Color{color}, protocol.Slowest, protocol.Forward, 0, false)
}

// Breathing fades brightness in and out, then changes to the next color
func (s *Session) Breathing(colors []common.Color, speed protocol.Speed) error {
	return s.sendPreset(protocol.Breathing, colors, speed, protocol.Forward, 0, false)
}

// Fading fades between the given colors
func (s *Session) Fading(colors []common.Color, speed protocol.Speed) error {
	return s.sendPreset(protocol.Fading, colors, speed, protocol.Forward, 0, false)
}

// SpectrumWave plays the firmware's built-in rainbow marquee
func (s *Session) SpectrumWave(speed protocol.Speed, direction protocol.Direction) error {
	return s.sendPreset(protocol.SpectrumWave, []common.Color{{}}, speed, direction, 0, false)
}

// Marquee moves a row of size (3 to 6) lit LEDs along the strip
func (s *Session) Marquee(color common.Color, speed protocol.Speed, direction protocol.Direction, size int) error {
	groupSize, err := encodeRowSize(size)
	if err != nil {
		return err
	}
	return s.sendPreset(protocol.Marquee, []common.Color{color}, speed, direction, groupSize, false)
}

// CoveringMarquee plays a marquee that progressively covers the strip in
// each of the given colors
func (s *Session) CoveringMarquee(colors []common.Color, speed protocol.Speed, direction protocol.Direction) error {
	return s.sendPreset(protocol.CoveringMarquee, colors, speed, direction, 0, false)
}

// Pulse fades each color out and shows the next at full brightness
func (s *Session) Pulse(colors []common.Color, speed protocol.Speed) error {
	return s.sendPreset(protocol.Pulse, colors, speed, protocol.Forward, 0, false)
}

// Alternating alternates LED rows of size (3 to 6) between two colors.
// With moving set the rows travel along the strip.
func (s *Session) Alternating(color1, color2 common.Color, speed protocol.Speed, direction protocol.Direction, size int, moving bool) error {
	groupSize, err := encodeRowSize(size)
	if err != nil {
		return err
	}
	return s.sendPreset(protocol.Alternating, []common.Color{color1, color2}, speed, direction, groupSize, moving)
}

// Wings plays a symmetric marquee that looks like flapping wings
func (s *Session) Wings(color common.Color, speed protocol.Speed) error {
	return s.sendPreset(protocol.Wings, []common.Color{color}, speed, protocol.Forward, 0, false)
}

// Candle flickers all LEDs like a candle
func (s *Session) Candle(color common.Color) error {
	return s.sendPreset(protocol.Candle, []common.Color{color}, protocol.Slowest, protocol.Forward, 0, false)
}

// CustomFixed sets each LED to its own fixed color.  Frames shorter than the
// LED count leave the remaining LEDs dark.
func (s *Session) CustomFixed(frame protocol.Frame) error {
	return s.sendCustom(protocol.Fixed, frame, protocol.Slowest)
}

// CustomBreathing breathes with a different color per LED
func (s *Session) CustomBreathing(frame protocol.Frame, speed protocol.Speed) error {
	return s.sendCustom(protocol.Breathing, frame, speed)
}

// CustomWave plays a marquee built from a different color per LED
func (s *Session) CustomWave(frame protocol.Frame, speed protocol.Speed) error {
	return s.sendCustom(protocol.Wave, frame, speed)
}

// sendPreset encodes one uniform frame per color, chained by step index, and
// sends the whole program in order
func (s *Session) sendPreset(mode protocol.Mode, colors []common.Color, speed protocol.Speed, direction protocol.Direction, groupSize uint8, moving bool) error {
	if len(colors) == 0 {
		return fmt.Errorf(`%w: at least one color is required`, common.ErrEncoding)
	}
	if max := int(mode.MaxSteps()); len(colors) > max {
		return fmt.Errorf(`%w: mode %s supports at most %d colors`, common.ErrEncoding, mode, max)
	}

	packets := make([]protocol.Packet, len(colors))
	for i, color := range colors {
		pkt, err := protocol.Encode(protocol.Directive{
			Mode:      mode,
			Frame:     protocol.UniformFrame(color),
			Speed:     speed,
			Index:     uint8(i),
			Direction: direction,
			GroupSize: groupSize,
			Moving:    moving,
		})
		if err != nil {
			return err
		}
		packets[i] = pkt
	}

	return s.sendAll(packets)
}

// sendCustom encodes a single per-LED frame, padded to the LED count
func (s *Session) sendCustom(mode protocol.Mode, frame protocol.Frame, speed protocol.Speed) error {
	if len(frame) == 0 {
		return fmt.Errorf(`%w: at least one color is required`, common.ErrEncoding)
	}
	if len(frame) > protocol.LEDCount {
		return fmt.Errorf(`%w: too many colors (the device has only %d leds)`, common.ErrEncoding, protocol.LEDCount)
	}

	padded := make(protocol.Frame, protocol.LEDCount)
	copy(padded, frame)

	pkt, err := protocol.Encode(protocol.Directive{
		Mode:  mode,
		Frame: padded,
		Speed: speed,
	})
	if err != nil {
		return err
	}

	return s.sendAll([]protocol.Packet{pkt})
}

func (s *Session) sendAll(packets []protocol.Packet) error {
	for _, pkt := range packets {
		if err := s.Send(pkt); err != nil {
			return err
		}
	}
	return nil
}

// encodeRowSize maps a marquee row size of 3..6 onto the 2-bit wire field
func encodeRowSize(size int) (uint8, error) {
	if size < 3 || size > 6 {
		return 0, fmt.Errorf(`%w: size has to be between 3 and 6`, common.ErrEncoding)
	}
	return uint8(size - 3), nil
}
