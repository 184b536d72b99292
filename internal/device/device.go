package device

import (
	"context"
	"errors"
	"fmt"
	"io"

	"blackjack/internal/app"
	"blackjack/internal/domain"
	"blackjack/internal/session"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MaxCommandBytes is the largest write a handle accepts.
const MaxCommandBytes = 255

var (
	// ErrBusy is returned by Open while another session holds the table.
	ErrBusy = fmt.Errorf("device busy: %w", session.ErrSessionBusy)
	// ErrTransportFault covers misuse of a handle: closed handles and oversized writes.
	ErrTransportFault = errors.New("transport fault")
)

// Device exposes a Table through exclusive open/read/write/close handles.
type Device struct {
	gate   *session.Gate[*Table]
	logger runtime.Logger
}

// NewDevice wraps table behind a single-holder gate.
func NewDevice(table *Table, logger runtime.Logger) *Device {
	return &Device{
		gate:   session.NewGate(table),
		logger: logger,
	}
}

// Open claims the table for owner. It never blocks.
func (d *Device) Open(owner string) (*Handle, error) {
	guard, err := d.gate.Acquire(owner)
	if err != nil {
		if holder, held := d.gate.Holder(); held {
			d.logger.Warn("open by %s refused, table held by %s", owner, holder)
		}
		return nil, ErrBusy
	}
	d.logger.Info("session opened by %s", owner)

	h := &Handle{guard: guard, logger: d.logger.WithField("owner", owner)}
	h.arm()
	return h, nil
}

// Busy reports whether a session currently holds the table.
func (d *Device) Busy() bool {
	return d.gate.Held()
}

// Handle is an open session on the table. It is meant for its holder's goroutine only.
type Handle struct {
	guard   *session.Guard[*Table]
	logger  runtime.Logger
	pending []byte
	closed  bool
}

var _ io.ReadWriteCloser = (*Handle)(nil)

// Owner returns the owner the handle was opened for.
func (h *Handle) Owner() string {
	return h.guard.Owner()
}

// Phase returns the phase of the held table.
func (h *Handle) Phase() domain.Phase {
	return h.guard.Resource().Phase()
}

// Write applies one command line. See WriteCommand.
func (h *Handle) Write(p []byte) (int, error) {
	if err := h.WriteCommand(context.Background(), string(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteCommand applies one command line. Commands that reach the state machine,
// accepted or not, re-arm the status snapshot for the next Read.
func (h *Handle) WriteCommand(ctx context.Context, line string) error {
	if h.closed {
		return fmt.Errorf("%w: write on closed handle", ErrTransportFault)
	}
	if len(line) > MaxCommandBytes {
		return fmt.Errorf("%w: command of %d bytes exceeds %d", ErrTransportFault, len(line), MaxCommandBytes)
	}

	_, err := h.guard.Resource().Apply(ctx, line)
	if errors.Is(err, app.ErrInvalidCommand) {
		h.logger.Warn("invalid command: %v", err)
		return err
	}
	h.arm()
	return err
}

// Read returns the status snapshot armed by the last open or write, then io.EOF.
func (h *Handle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, fmt.Errorf("%w: read on closed handle", ErrTransportFault)
	}
	if len(h.pending) == 0 {
		return 0, io.EOF
	}
	n := copy(p, h.pending)
	h.pending = h.pending[n:]
	return n, nil
}

// Next consumes the whole armed snapshot. ok is false when nothing is armed.
func (h *Handle) Next() (status string, ok bool, err error) {
	if h.closed {
		return "", false, fmt.Errorf("%w: read on closed handle", ErrTransportFault)
	}
	if len(h.pending) == 0 {
		return "", false, nil
	}
	status = string(h.pending)
	h.pending = nil
	return status, true, nil
}

// Close releases the table. Closing twice is harmless.
func (h *Handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.pending = nil
	h.guard.Release()
	h.logger.Info("session closed")
	return nil
}

func (h *Handle) arm() {
	h.pending = []byte(h.guard.Resource().Render())
}
