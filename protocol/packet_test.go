package protocol_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/st3iny/gonzxt/common"
	"github.com/st3iny/gonzxt/protocol"
)

var (
	red   = common.Color{R: 255}
	green = common.Color{G: 255}
)

var _ = Describe("Encode", func() {
	directive := func() protocol.Directive {
		return protocol.Directive{
			Mode:  protocol.Fixed,
			Frame: protocol.UniformFrame(red),
		}
	}

	It("should produce two transfers of the fixed size", func() {
		pkt, err := protocol.Encode(directive())
		Expect(err).NotTo(HaveOccurred())

		transfers := pkt.Transfers()
		Expect(transfers).To(HaveLen(2))
		Expect(transfers[0]).To(HaveLen(protocol.TransferSize))
		Expect(transfers[1]).To(HaveLen(protocol.TransferSize))
	})

	It("should emit the captured header bytes", func() {
		pkt, err := protocol.Encode(protocol.Directive{
			Mode:      protocol.SpectrumWave,
			Frame:     protocol.UniformFrame(common.Color{}),
			Speed:     protocol.Fast,
			Direction: protocol.Backward,
		})
		Expect(err).NotTo(HaveOccurred())

		transfers := pkt.Transfers()
		Expect(transfers[0][0]).To(Equal(byte(0x02)))
		Expect(transfers[0][1]).To(Equal(byte(0x4b)))
		Expect(transfers[0][2]).To(Equal(byte(protocol.SpectrumWave)))
		Expect(transfers[0][3]).To(Equal(byte(1 << 4)))
		Expect(transfers[0][4]).To(Equal(byte(protocol.Fast)))
		Expect(transfers[1][0]).To(Equal(byte(0x03)))
	})

	It("should serialize a uniform red frame as repeated G,R,B triples", func() {
		pkt, err := protocol.Encode(directive())
		Expect(err).NotTo(HaveOccurred())

		transfers := pkt.Transfers()
		// 57 channel bytes in the first transfer, 3 in the second
		for n := 0; n < 57; n++ {
			expected := byte(0)
			if n%3 == 1 {
				expected = 255
			}
			Expect(transfers[0][5+n]).To(Equal(expected))
		}
		Expect(transfers[1][1:4]).To(Equal([]byte{0, 255, 0}))
	})

	It("should zero pad both transfers after the payload", func() {
		pkt, err := protocol.Encode(directive())
		Expect(err).NotTo(HaveOccurred())

		transfers := pkt.Transfers()
		Expect(transfers[0][62:]).To(Equal(make([]byte, 3)))
		Expect(transfers[1][4:]).To(Equal(make([]byte, 61)))
	})

	It("should be deterministic", func() {
		pkt1, err := protocol.Encode(directive())
		Expect(err).NotTo(HaveOccurred())
		pkt2, err := protocol.Encode(directive())
		Expect(err).NotTo(HaveOccurred())
		Expect(pkt1).To(Equal(pkt2))
	})

	It("should not share state with the returned transfers", func() {
		pkt, err := protocol.Encode(directive())
		Expect(err).NotTo(HaveOccurred())

		transfers := pkt.Transfers()
		transfers[0][2] = 0xff
		Expect(pkt.Transfers()[0][2]).To(Equal(byte(protocol.Fixed)))
	})

	It("should pack step index, group size and speed into one byte", func() {
		pkt, err := protocol.Encode(protocol.Directive{
			Mode:      protocol.Alternating,
			Frame:     protocol.UniformFrame(green),
			Speed:     protocol.Fastest,
			Index:     1,
			Direction: protocol.Forward,
			GroupSize: 2,
			Moving:    true,
		})
		Expect(err).NotTo(HaveOccurred())

		transfers := pkt.Transfers()
		Expect(transfers[0][3]).To(Equal(byte(1 << 3)))
		Expect(transfers[0][4]).To(Equal(byte(1<<5 | 2<<3 | 4)))
		Expect(pkt.Step()).To(Equal(uint8(1)))
		Expect(pkt.Mode()).To(Equal(protocol.Alternating))
	})

	It("should zero the speed byte for modes that do not animate", func() {
		pkt, err := protocol.Encode(protocol.Directive{
			Mode:  protocol.Candle,
			Frame: protocol.UniformFrame(red),
			Speed: protocol.Fastest,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(pkt.Transfers()[0][4]).To(Equal(byte(0)))
	})

	It("should reject frames shorter or longer than the led count", func() {
		for _, size := range []int{0, 1, 19, 21, 40} {
			d := directive()
			d.Frame = make(protocol.Frame, size)
			_, err := protocol.Encode(d)
			Expect(err).To(MatchError(common.ErrEncoding))
		}
	})

	It("should reject unknown modes", func() {
		for _, mode := range []protocol.Mode{8, 10, 11, 14, 255} {
			d := directive()
			d.Mode = mode
			_, err := protocol.Encode(d)
			Expect(err).To(MatchError(common.ErrEncoding))
		}
	})

	It("should reject step indices beyond the mode's step range", func() {
		d := directive()
		d.Index = 1
		_, err := protocol.Encode(d)
		Expect(err).To(MatchError(common.ErrEncoding))

		d = protocol.Directive{
			Mode:  protocol.Breathing,
			Frame: protocol.UniformFrame(red),
			Index: 8,
		}
		_, err = protocol.Encode(d)
		Expect(err).To(MatchError(common.ErrEncoding))

		d.Index = 7
		_, err = protocol.Encode(d)
		Expect(err).NotTo(HaveOccurred())
	})

	It("should reject out of range speeds", func() {
		d := protocol.Directive{
			Mode:  protocol.Breathing,
			Frame: protocol.UniformFrame(red),
			Speed: protocol.Fastest + 1,
		}
		_, err := protocol.Encode(d)
		Expect(err).To(MatchError(common.ErrEncoding))
	})

	It("should reject a direction on modes that can not honor it", func() {
		d := protocol.Directive{
			Mode:      protocol.Breathing,
			Frame:     protocol.UniformFrame(red),
			Direction: protocol.Backward,
		}
		_, err := protocol.Encode(d)
		Expect(err).To(MatchError(common.ErrEncoding))
	})

	It("should reject a group size on modes that can not honor it", func() {
		d := directive()
		d.GroupSize = 1
		_, err := protocol.Encode(d)
		Expect(err).To(MatchError(common.ErrEncoding))
	})

	It("should reject group sizes beyond the field width", func() {
		d := protocol.Directive{
			Mode:      protocol.Marquee,
			Frame:     protocol.UniformFrame(red),
			GroupSize: 4,
		}
		_, err := protocol.Encode(d)
		Expect(err).To(MatchError(common.ErrEncoding))
	})

	It("should reject the moving flag outside of alternating", func() {
		d := directive()
		d.Moving = true
		_, err := protocol.Encode(d)
		Expect(err).To(MatchError(common.ErrEncoding))
	})
})

var _ = Describe("Off", func() {
	It("should carry only the headers", func() {
		transfers := protocol.Off().Transfers()
		Expect(transfers[0][0]).To(Equal(byte(0x02)))
		Expect(transfers[0][1]).To(Equal(byte(0x4b)))
		Expect(transfers[0][2:]).To(Equal(make([]byte, 63)))
		Expect(transfers[1][0]).To(Equal(byte(0x03)))
		Expect(transfers[1][1:]).To(Equal(make([]byte, 64)))
	})
})

var _ = Describe("Mode", func() {
	It("should expose the capability table", func() {
		Expect(protocol.Fixed.Valid()).To(BeTrue())
		Expect(protocol.Mode(8).Valid()).To(BeFalse())
		Expect(protocol.Candle.Animated()).To(BeFalse())
		Expect(protocol.Breathing.Animated()).To(BeTrue())
		Expect(protocol.SpectrumWave.Custom()).To(BeFalse())
		Expect(protocol.Wave.Custom()).To(BeTrue())
		Expect(protocol.Alternating.MaxSteps()).To(Equal(uint8(2)))
		Expect(protocol.Fading.MaxSteps()).To(Equal(uint8(8)))
	})

	It("should name known modes", func() {
		Expect(protocol.CoveringMarquee.String()).To(Equal(`covering-marquee`))
		Expect(protocol.Mode(11).String()).To(Equal(`unknown(11)`))
	})
})

var _ = Describe("UniformFrame", func() {
	It("should fill the whole strip with one color", func() {
		frame := protocol.UniformFrame(green)
		Expect(frame).To(HaveLen(protocol.LEDCount))
		for _, c := range frame {
			Expect(c).To(Equal(green))
		}
	})
})
