package main

import (
	"github.com/spf13/cobra"

	"github.com/st3iny/gonzxt/protocol"
)

func addModeCommands() {
	commands := []*cobra.Command{
		{
			Use:   `off`,
			Short: `turn off all leds`,
			Args:  cobra.NoArgs,
			Run: func(c *cobra.Command, args []string) {
				run(session.Off())
			},
		},
		{
			Use:   `fixed <color>`,
			Short: `fixed color for all leds`,
			Args:  cobra.ExactArgs(1),
			Run: func(c *cobra.Command, args []string) {
				run(session.Fixed(parseColors(args)[0]))
			},
		},
		{
			Use:   `breathing <color>...`,
			Short: `fade brightness in, out and then change color`,
			Args:  cobra.MinimumNArgs(1),
			Run: func(c *cobra.Command, args []string) {
				run(session.Breathing(parseColors(args), speed()))
			},
		},
		{
			Use:   `fading <color>...`,
			Short: `fade between given colors`,
			Args:  cobra.MinimumNArgs(1),
			Run: func(c *cobra.Command, args []string) {
				run(session.Fading(parseColors(args), speed()))
			},
		},
		{
			Use:   `spectrum-wave`,
			Short: `rainbow marquee`,
			Args:  cobra.NoArgs,
			Run: func(c *cobra.Command, args []string) {
				run(session.SpectrumWave(speed(), direction()))
			},
		},
		{
			Use:   `marquee <color>`,
			Short: `moving row of leds`,
			Args:  cobra.ExactArgs(1),
			Run: func(c *cobra.Command, args []string) {
				run(session.Marquee(parseColors(args)[0], speed(), direction(), flagSize))
			},
		},
		{
			Use:   `covering-marquee <color>...`,
			Short: `marquee consisting of multiple colors`,
			Args:  cobra.MinimumNArgs(1),
			Run: func(c *cobra.Command, args []string) {
				run(session.CoveringMarquee(parseColors(args), speed(), direction()))
			},
		},
		{
			Use:   `pulse <color>...`,
			Short: `fade color out and then show next color with full brightness`,
			Args:  cobra.MinimumNArgs(1),
			Run: func(c *cobra.Command, args []string) {
				run(session.Pulse(parseColors(args), speed()))
			},
		},
		{
			Use:   `alternating <color1> <color2>`,
			Short: `alternate led rows between two colors`,
			Args:  cobra.ExactArgs(2),
			Run: func(c *cobra.Command, args []string) {
				colors := parseColors(args)
				run(session.Alternating(colors[0], colors[1], speed(), direction(), flagSize, flagMoving))
			},
		},
		{
			Use:   `wings <color>`,
			Short: `symmetric marquee (looks like flapping wings)`,
			Args:  cobra.ExactArgs(1),
			Run: func(c *cobra.Command, args []string) {
				run(session.Wings(parseColors(args)[0], speed()))
			},
		},
		{
			Use:   `candle <color>`,
			Short: `flickering candle`,
			Args:  cobra.ExactArgs(1),
			Run: func(c *cobra.Command, args []string) {
				run(session.Candle(parseColors(args)[0]))
			},
		},
		{
			Use:   `custom-fixed <color>...`,
			Short: `set each led to a fixed color`,
			Args:  cobra.MinimumNArgs(1),
			Run: func(c *cobra.Command, args []string) {
				run(session.CustomFixed(protocol.Frame(parseColors(args))))
			},
		},
		{
			Use:   `custom-breathing <color>...`,
			Short: `breathing with a different color for each led`,
			Args:  cobra.MinimumNArgs(1),
			Run: func(c *cobra.Command, args []string) {
				run(session.CustomBreathing(protocol.Frame(parseColors(args)), speed()))
			},
		},
		{
			Use:   `custom-wave <color>...`,
			Short: `marquee with a different color for each led`,
			Args:  cobra.MinimumNArgs(1),
			Run: func(c *cobra.Command, args []string) {
				run(session.CustomWave(protocol.Frame(parseColors(args)), speed()))
			},
		},
	}

	for _, cmd := range commands {
		cmd.PreRun = setupSession
		cmd.PostRun = closeSession

		cmd.Flags().IntVar(&flagSpeed, `speed`, 2, `animation speed from 0 (slowest) to 4 (fastest)`)
		cmd.Flags().BoolVar(&flagSlowest, `slowest`, false, `animation speed`)
		cmd.Flags().BoolVar(&flagSlow, `slow`, false, `animation speed`)
		cmd.Flags().BoolVar(&flagFast, `fast`, false, `animation speed`)
		cmd.Flags().BoolVar(&flagFastest, `fastest`, false, `animation speed`)
		cmd.Flags().BoolVar(&flagBackward, `backward`, false, `play animation backwards (only works for some modes)`)
		cmd.Flags().IntVar(&flagSize, `size`, 3, `led row length from 3 to 6 (for some modes)`)
		cmd.Flags().BoolVar(&flagMoving, `moving`, false, `only works for alternating`)
		cmd.MarkFlagsMutuallyExclusive(`speed`, `slowest`, `slow`, `fast`, `fastest`)

		app.AddCommand(cmd)
	}
}

func run(err error) {
	if err != nil {
		_ = session.Close()
		logger.WithField(`error`, err).Fatalln(`Failed setting leds`)
	}
}
