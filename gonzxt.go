// Package gonzxt provides a simple Go interface to the NZXT Smart Device,
// the combined LED and fan controller bundled with the H500i case.
//
// Also included in cmd/nzxtled is a small CLI utility that allows driving the
// device lighting from the shell.
package gonzxt

import (
	"github.com/st3iny/gonzxt/common"
)

const (
	// VERSION of this library
	VERSION = `0.1.0`
)

// SetLogger allows assigning a custom levelled logger that conforms to the
// common.Logger interface.  To capture logs generated during session setup,
// this should be called before creating a Session.  Defaults to
// common.StubLogger, which does no logging at all.
func SetLogger(logger common.Logger) {
	common.SetLogger(logger)
}
