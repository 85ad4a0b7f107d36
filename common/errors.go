package common

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoding is returned when a lighting directive can not be encoded
	// into a valid command packet.  The input is at fault, nothing was sent
	// to the device.
	ErrEncoding = errors.New(`invalid directive`)
	// ErrNotFound is returned when no attached USB device matches the
	// requested vendor/product ID
	ErrNotFound = errors.New(`device not found`)
	// ErrPermission is returned when the device exists but the OS denies
	// access to it, typically because no udev rule grants it
	ErrPermission = errors.New(`device access denied`)
	// ErrBusy is returned when the device interface is already claimed by
	// another process
	ErrBusy = errors.New(`device busy`)
	// ErrTransport is returned when a transfer to the device fails
	ErrTransport = errors.New(`transport failure`)
	// ErrTimeout wraps ErrTransport for transfers that did not complete
	// within the configured timeout.  Matches both itself and ErrTransport
	// under errors.Is.
	ErrTimeout = fmt.Errorf(`%w: timeout`, ErrTransport)
	// ErrInvalidState is returned when a session operation is attempted in a
	// state that does not permit it, such as sending before Open()
	ErrInvalidState = errors.New(`invalid session state`)
	// ErrClosed is returned on operations against closed resources
	ErrClosed = errors.New(`closed`)
)
