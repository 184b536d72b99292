package device

import (
	"fmt"
	"io"
	"math/rand"
	"sync"

	"blackjack/internal/domain"
	"blackjack/internal/random"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Oracle is the Magic 8 Ball. Any number of callers may open it at once.
type Oracle struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger runtime.Logger
}

// NewOracle returns an oracle drawing answers from rng, or a crypto-seeded one when nil.
func NewOracle(rng *rand.Rand, logger runtime.Logger) *Oracle {
	if rng == nil {
		rng = random.New()
	}
	return &Oracle{rng: rng, logger: logger}
}

// Ask returns one answer.
func (o *Oracle) Ask() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return domain.PickAnswer(o.rng)
}

// Open draws an answer for a new reader.
func (o *Oracle) Open() *OracleHandle {
	answer := o.Ask()
	o.logger.Debug("oracle answered %q", answer)
	return &OracleHandle{pending: []byte(answer)}
}

// OracleHandle yields its answer once, then io.EOF.
type OracleHandle struct {
	pending []byte
	closed  bool
}

var _ io.ReadCloser = (*OracleHandle)(nil)

func (h *OracleHandle) Read(p []byte) (int, error) {
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

func (h *OracleHandle) Close() error {
	h.closed = true
	return nil
}
