package app

// DefaultHandCapacity leaves both hands unbounded.
// A positive capacity is enforced with domain.ErrHandCapacityExceeded.
const DefaultHandCapacity = 0

const tracerName = "blackjack/internal/app"
