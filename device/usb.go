// Package device provides the USB transport to the NZXT Smart Device.
//
// This package is not designed to be accessed by end users, all interaction
// should occur via the Session in the gonzxt package.
package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/gousb"

	"github.com/st3iny/gonzxt/common"
)

const (
	// VendorID is the USB vendor ID of NZXT
	VendorID uint16 = 0x1e71
	// ProductID is the USB product ID of the Smart Device (H500i LED and fan
	// controller)
	ProductID uint16 = 0x1714

	endpointOut = 1
)

// Transport is one exclusively claimed write path to the device
type Transport interface {
	// Write issues one transfer to the device's output endpoint
	Write(p []byte) (int, error)
	// Close releases the claimed interface and device handle
	Close() error
}

// Opener opens a Transport for the given vendor/product ID pair, with
// transfers bounded by timeout.  It exists so sessions can be tested against
// a mock transport.
type Opener func(vendorID, productID uint16, timeout time.Duration) (Transport, error)

type usbTransport struct {
	ctx     *gousb.Context
	dev     *gousb.Device
	done    func()
	out     *gousb.OutEndpoint
	timeout time.Duration
}

// OpenUSB enumerates attached USB devices, opens the first match for
// vendorID/productID and claims its default interface.  The kernel HID
// driver is detached automatically and reattached on Close.
func OpenUSB(vendorID, productID uint16, timeout time.Duration) (Transport, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vendorID), gousb.ID(productID))
	if err != nil {
		_ = ctx.Close()
		return nil, mapUSBError(err)
	}
	if dev == nil {
		_ = ctx.Close()
		return nil, fmt.Errorf(`%w: %04x:%04x`, common.ErrNotFound, vendorID, productID)
	}

	// The kernel binds usbhid to the device, take it over for the session
	if err := dev.SetAutoDetach(true); err != nil {
		_ = dev.Close()
		_ = ctx.Close()
		return nil, mapUSBError(err)
	}

	intf, done, err := dev.DefaultInterface()
	if err != nil {
		_ = dev.Close()
		_ = ctx.Close()
		return nil, mapUSBError(err)
	}

	out, err := intf.OutEndpoint(endpointOut)
	if err != nil {
		done()
		_ = dev.Close()
		_ = ctx.Close()
		return nil, mapUSBError(err)
	}

	return &usbTransport{
		ctx:     ctx,
		dev:     dev,
		done:    done,
		out:     out,
		timeout: timeout,
	}, nil
}

// Write issues one interrupt transfer, bounded by the configured timeout
func (t *usbTransport) Write(p []byte) (int, error) {
	ctx := context.Background()
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	n, err := t.out.WriteContext(ctx, p)
	if err != nil {
		return n, mapUSBError(err)
	}
	if n < len(p) {
		return n, fmt.Errorf(`%w: short write (%d of %d bytes)`, common.ErrTransport, n, len(p))
	}
	return n, nil
}

// Close releases the interface claim and all libusb resources
func (t *usbTransport) Close() error {
	if t.done != nil {
		t.done()
		t.done = nil
	}

	var err error
	if t.dev != nil {
		err = t.dev.Close()
		t.dev = nil
	}
	if t.ctx != nil {
		if cerr := t.ctx.Close(); err == nil {
			err = cerr
		}
		t.ctx = nil
	}
	return err
}

// mapUSBError translates libusb failures onto the common error taxonomy so
// callers can tell an absent device from a denied or busy one
func mapUSBError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf(`%w: %v`, common.ErrTimeout, err)
	}

	var uerr gousb.Error
	if errors.As(err, &uerr) {
		switch uerr {
		case gousb.ErrorAccess:
			return fmt.Errorf(`%w: %v`, common.ErrPermission, err)
		case gousb.ErrorBusy:
			return fmt.Errorf(`%w: %v`, common.ErrBusy, err)
		case gousb.ErrorNotFound, gousb.ErrorNoDevice:
			return fmt.Errorf(`%w: %v`, common.ErrTransport, err)
		case gousb.ErrorTimeout:
			return fmt.Errorf(`%w: %v`, common.ErrTimeout, err)
		}
	}

	return fmt.Errorf(`%w: %v`, common.ErrTransport, err)
}
