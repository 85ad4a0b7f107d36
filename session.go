package gonzxt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/satori/go.uuid"

	"github.com/st3iny/gonzxt/common"
	"github.com/st3iny/gonzxt/device"
	"github.com/st3iny/gonzxt/protocol"
)

const (
	// DefaultTimeout bounds each transfer to the device
	DefaultTimeout = 250 * time.Millisecond
	// DefaultRetryInterval is the backoff before the single retry of a timed
	// out transfer
	DefaultRetryInterval = 100 * time.Millisecond
	// DefaultTransferDelay is the pause between the two transfers of a
	// command packet, the firmware drops back-to-back transfers
	DefaultTransferDelay = 50 * time.Millisecond
)

type sessionState uint8

const (
	stateUnopened sessionState = iota
	stateOpen
	stateClosed
)

type sessionOptions struct {
	vendorID      uint16
	productID     uint16
	timeout       time.Duration
	retryInterval time.Duration
	transferDelay time.Duration
	opener        device.Opener
}

// Option configures a Session at construction time
type Option func(*sessionOptions)

// WithVendorID overrides the USB vendor ID used for enumeration.  Only
// useful for other firmware revisions of the same device, at your own risk.
func WithVendorID(id uint16) Option {
	return func(o *sessionOptions) {
		o.vendorID = id
	}
}

// WithProductID overrides the USB product ID used for enumeration
func WithProductID(id uint16) Option {
	return func(o *sessionOptions) {
		o.productID = id
	}
}

// WithTimeout sets the per-transfer timeout
func WithTimeout(timeout time.Duration) Option {
	return func(o *sessionOptions) {
		o.timeout = timeout
	}
}

// WithRetryInterval sets the backoff before retrying a timed out transfer
func WithRetryInterval(interval time.Duration) Option {
	return func(o *sessionOptions) {
		o.retryInterval = interval
	}
}

// WithTransferDelay sets the pause between the two transfers of a packet
func WithTransferDelay(delay time.Duration) Option {
	return func(o *sessionOptions) {
		o.transferDelay = delay
	}
}

// WithOpener replaces the transport opener, primarily for testing against a
// mock transport
func WithOpener(opener device.Opener) Option {
	return func(o *sessionOptions) {
		o.opener = opener
	}
}

func defaultSessionOptions() sessionOptions {
	return sessionOptions{
		vendorID:      device.VendorID,
		productID:     device.ProductID,
		timeout:       DefaultTimeout,
		retryInterval: DefaultRetryInterval,
		transferDelay: DefaultTransferDelay,
		opener:        device.OpenUSB,
	}
}

// Session owns one exclusive USB connection to the device.  Its lifecycle is
// unopened, open, closed, in that order, and closed is terminal.  All sends
// on one session are serialized internally, callers do not need to
// coordinate.
type Session struct {
	id   uuid.UUID
	opts sessionOptions

	// mu guards state and transport, writeMu serializes transfers so the two
	// halves of a packet pair can not interleave with another send
	mu        sync.Mutex
	writeMu   sync.Mutex
	state     sessionState
	transport device.Transport

	subMu         sync.RWMutex
	subscriptions map[string]*common.Subscription
}

// New returns an unopened Session configured by options.  Call Open before
// sending.
func New(options ...Option) *Session {
	opts := defaultSessionOptions()
	for _, opt := range options {
		opt(&opts)
	}

	return &Session{
		id:            uuid.NewV4(),
		opts:          opts,
		subscriptions: make(map[string]*common.Subscription),
	}
}

// ID returns the unique ID for this session, used to correlate log lines
func (s *Session) ID() string {
	return s.id.String()
}

// Open enumerates attached USB devices, claims the matching device's
// interface and transitions the session to open.  On failure the session
// stays unopened and no handle is held, so Open may be retried after the
// cause has been remedied.
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateOpen:
		return fmt.Errorf(`%w: session %v is already open`, common.ErrInvalidState, s.id)
	case stateClosed:
		return fmt.Errorf(`%w: session %v is closed`, common.ErrInvalidState, s.id)
	}

	common.Log.Debugf("Opening device %04x:%04x (session %v)\n", s.opts.vendorID, s.opts.productID, s.id)
	transport, err := s.opts.opener(s.opts.vendorID, s.opts.productID, s.opts.timeout)
	if err != nil {
		common.Log.Errorf("Failed opening device %04x:%04x: %v\n", s.opts.vendorID, s.opts.productID, err)
		return err
	}

	s.transport = transport
	s.state = stateOpen
	common.Log.Infof("Opened device %04x:%04x (session %v)\n", s.opts.vendorID, s.opts.productID, s.id)
	s.publish(common.EventOpened{})

	return nil
}

// Send transmits one command packet to the device.  Both transfers of the
// packet are written back to back under the session's write lock, separated
// by the configured transfer delay.  A transfer that times out is retried
// once after the retry interval, any other transport failure propagates
// immediately.
func (s *Session) Send(pkt protocol.Packet) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	// The state check has to happen under writeMu as well, a concurrent
	// Close waits on writeMu and releases the transport once it gets it
	s.mu.Lock()
	if s.state != stateOpen {
		s.mu.Unlock()
		return fmt.Errorf(`%w: session %v is not open`, common.ErrInvalidState, s.id)
	}
	transport := s.transport
	s.mu.Unlock()

	for i, transfer := range pkt.Transfers() {
		if i > 0 && s.opts.transferDelay > 0 {
			time.Sleep(s.opts.transferDelay)
		}
		if err := s.write(transport, transfer); err != nil {
			return err
		}
	}

	common.Log.Debugf("Sent step %d of mode %v (session %v)\n", pkt.Step(), pkt.Mode(), s.id)
	s.publish(common.EventStepSent{Mode: uint8(pkt.Mode()), Step: pkt.Step()})

	return nil
}

func (s *Session) write(transport device.Transport, p []byte) error {
	_, err := transport.Write(p)
	if err == nil {
		return nil
	}
	if !errors.Is(err, common.ErrTimeout) {
		return err
	}

	common.Log.Warnf("Transfer timed out, retrying after %v (session %v)\n", s.opts.retryInterval, s.id)
	time.Sleep(s.opts.retryInterval)

	_, err = transport.Write(p)
	return err
}

// Close releases the claimed interface and device handle and transitions the
// session to closed.  Close is idempotent and valid in any state, only the
// first call on an open session performs the release.  The device keeps
// running the last received program.
func (s *Session) Close() error {
	// Wait for an in-flight packet pair to finish before releasing.  Lock
	// order is writeMu before mu everywhere.
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateOpen {
		s.state = stateClosed
		return nil
	}

	common.Log.Debugf("Closing session %v\n", s.id)
	err := s.transport.Close()
	s.transport = nil
	s.state = stateClosed
	s.publish(common.EventClosed{})

	return err
}

// NewSubscription returns a new *common.Subscription for receiving events
// from this session.
func (s *Session) NewSubscription() (*common.Subscription, error) {
	sub := common.NewSubscription(s)
	s.subMu.Lock()
	s.subscriptions[sub.ID()] = sub
	s.subMu.Unlock()
	return sub, nil
}

// CloseSubscription is a callback for handling the closing of subscriptions.
func (s *Session) CloseSubscription(sub *common.Subscription) error {
	s.subMu.RLock()
	_, ok := s.subscriptions[sub.ID()]
	s.subMu.RUnlock()
	if !ok {
		return common.ErrNotFound
	}
	s.subMu.Lock()
	delete(s.subscriptions, sub.ID())
	s.subMu.Unlock()

	return nil
}

// Pushes an event to subscribers
func (s *Session) publish(event interface{}) {
	s.subMu.RLock()
	subs := make([]*common.Subscription, 0, len(s.subscriptions))
	for _, sub := range s.subscriptions {
		subs = append(subs, sub)
	}
	s.subMu.RUnlock()

	for _, sub := range subs {
		if err := sub.Write(event); err != nil {
			common.Log.Warnf("Failed publishing event to subscription %v: %v\n", sub.ID(), err)
		}
	}
}
