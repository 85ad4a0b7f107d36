// Command nzxtled allows controlling the lighting of an NZXT Smart Device
package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/st3iny/gonzxt"
	"github.com/st3iny/gonzxt/common"
	"github.com/st3iny/gonzxt/protocol"
)

var (
	session *gonzxt.Session

	flagTimeout   time.Duration
	flagLogLevel  string
	flagVendorID  uint16
	flagProductID uint16

	flagSpeed    int
	flagSlowest  bool
	flagSlow     bool
	flagFast     bool
	flagFastest  bool
	flagBackward bool
	flagSize     int
	flagMoving   bool

	logger = logrus.New()
	app    = &cobra.Command{
		Use:   `nzxtled`,
		Short: `control NZXT Smart Device leds`,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			setLogger()
		},
	}

	cmdGenerateBashComp = &cobra.Command{
		Use:   `bashcomp <filename>`,
		Short: "generate bash completion at <file>",
		Run:   generateBashComp,
	}

	cmdGenerateDocs = &cobra.Command{
		Use:   `docs <path>`,
		Short: "generate markdown documentation at <path>",
		Run:   generateDocs,
	}
)

func init() {
	gonzxt.SetLogger(logger)

	app.PersistentFlags().DurationVarP(&flagTimeout, `timeout`, `t`, gonzxt.DefaultTimeout, `timeout for each transfer`)
	app.PersistentFlags().StringVarP(&flagLogLevel, `log-level`, `L`, `info`, `log level, one of: [debug,info,warn,error]`)
	app.PersistentFlags().Uint16Var(&flagVendorID, `vendor-id`, 0x1e71, `USB vendor ID to match`)
	app.PersistentFlags().Uint16Var(&flagProductID, `product-id`, 0x1714, `USB product ID to match`)

	addModeCommands()
	app.AddCommand(cmdGenerateBashComp)
	app.AddCommand(cmdGenerateDocs)
}

func main() {
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupSession(c *cobra.Command, args []string) {
	session = gonzxt.New(
		gonzxt.WithVendorID(flagVendorID),
		gonzxt.WithProductID(flagProductID),
		gonzxt.WithTimeout(flagTimeout),
	)
	if err := session.Open(); err != nil {
		logger.WithField(`error`, err).Fatalln(`Failed opening device`)
	}
}

func closeSession(c *cobra.Command, args []string) {
	if err := session.Close(); err != nil {
		logger.WithField(`error`, err).Fatalln(`Failed closing device`)
	}
}

// parseColor converts a comma separated rgb string (eg. 255,0,0) to a Color
func parseColor(arg string) (common.Color, error) {
	parts := strings.Split(arg, `,`)
	if len(parts) != 3 {
		return common.Color{}, fmt.Errorf(`invalid color %q, expected r,g,b`, arg)
	}

	var channels [3]uint8
	for i, part := range parts {
		value, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return common.Color{}, fmt.Errorf(`invalid color %q: %v`, arg, err)
		}
		channels[i] = uint8(value)
	}

	return common.Color{R: channels[0], G: channels[1], B: channels[2]}, nil
}

func parseColors(args []string) []common.Color {
	colors := make([]common.Color, len(args))
	for i, arg := range args {
		color, err := parseColor(arg)
		if err != nil {
			logger.Fatalln(err)
		}
		colors[i] = color
	}
	return colors
}

func resolveSpeed() (protocol.Speed, error) {
	switch {
	case flagSlowest:
		return protocol.Slowest, nil
	case flagSlow:
		return protocol.Slow, nil
	case flagFast:
		return protocol.Fast, nil
	case flagFastest:
		return protocol.Fastest, nil
	}
	if flagSpeed < 0 || flagSpeed > int(protocol.Fastest) {
		return 0, fmt.Errorf(`invalid speed %d, expected 0 to %d`, flagSpeed, int(protocol.Fastest))
	}
	return protocol.Speed(flagSpeed), nil
}

func speed() protocol.Speed {
	s, err := resolveSpeed()
	if err != nil {
		_ = session.Close()
		logger.Fatalln(err)
	}
	return s
}

func direction() protocol.Direction {
	if flagBackward {
		return protocol.Backward
	}
	return protocol.Forward
}

func generateBashComp(c *cobra.Command, args []string) {
	if len(args) != 1 {
		_ = c.Usage()
		fmt.Println()
		logger.Fatalln(`Missing filename`)
	}

	buf := new(bytes.Buffer)
	f, err := os.Create(args[0])
	if err != nil {
		logger.WithFields(logrus.Fields{
			`filename`: args[0],
			`error`:    err,
		}).Fatalln(`Could not open file`)
	}
	_ = app.GenBashCompletion(buf)
	_, _ = buf.WriteTo(f)
}

func generateDocs(c *cobra.Command, args []string) {
	if len(args) != 1 {
		_ = c.Usage()
		fmt.Println()
		logger.Fatalln(`Missing output path`)
	}

	path := args[0]
	if path[len(path)-1] != os.PathSeparator {
		path += string(os.PathSeparator)
	}
	_ = doc.GenMarkdownTree(app, path)
}

func setLogger() {
	switch flagLogLevel {
	case `debug`:
		logger.Level = logrus.DebugLevel
	case `info`:
		logger.Level = logrus.InfoLevel
	case `warn`:
		logger.Level = logrus.WarnLevel
	case `error`:
		logger.Level = logrus.ErrorLevel
	default:
		logger.Level = logrus.InfoLevel
	}
}
