package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// DefaultTicketTTL bounds how long an opened session can be addressed by its ticket.
const DefaultTicketTTL = time.Hour

var (
	// ErrInvalidTicket is returned for tickets that fail signature, issuer or expiry checks.
	ErrInvalidTicket = errors.New("invalid session ticket")
	// ErrTicketConfig is returned when the issuer is missing its secret.
	ErrTicketConfig = errors.New("ticket issuer is not configured")
)

// Ticket is the verified content of a session ticket.
type Ticket struct {
	SessionID string
	Owner     string
	ExpiresAt time.Time
}

// TicketIssuer signs and verifies HS256 tickets that bind RPC calls to an open session.
type TicketIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTicketIssuer returns an issuer. A non-positive ttl falls back to DefaultTicketTTL.
func NewTicketIssuer(secret, issuer string, ttl time.Duration) *TicketIssuer {
	if ttl <= 0 {
		ttl = DefaultTicketTTL
	}
	return &TicketIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a new ticket for owner with a fresh session id.
func (i *TicketIssuer) Issue(owner string) (string, Ticket, error) {
	if i == nil || len(i.secret) == 0 {
		return "", Ticket{}, ErrTicketConfig
	}
	if owner == "" {
		return "", Ticket{}, fmt.Errorf("owner is required")
	}

	now := i.now()
	ticket := Ticket{
		SessionID: fmt.Sprintf("%d-%d", now.UnixNano(), rand.Int63()),
		Owner:     owner,
		ExpiresAt: now.Add(i.ttl),
	}
	claims := jwt.MapClaims{
		"iss": i.issuer,
		"sub": owner,
		"sid": ticket.SessionID,
		"iat": now.Unix(),
		"exp": ticket.ExpiresAt.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", Ticket{}, fmt.Errorf("sign ticket: %w", err)
	}
	return signed, ticket, nil
}

// Verify checks the signature, issuer and expiry and returns the ticket content.
func (i *TicketIssuer) Verify(token string) (Ticket, error) {
	if i == nil || len(i.secret) == 0 {
		return Ticket{}, ErrTicketConfig
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return Ticket{}, fmt.Errorf("%w: %v", ErrInvalidTicket, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return Ticket{}, ErrInvalidTicket
	}
	if !claims.VerifyIssuer(i.issuer, true) {
		return Ticket{}, fmt.Errorf("%w: issuer mismatch", ErrInvalidTicket)
	}

	sid, _ := claims["sid"].(string)
	sub, _ := claims["sub"].(string)
	if sid == "" || sub == "" {
		return Ticket{}, fmt.Errorf("%w: missing session claims", ErrInvalidTicket)
	}
	exp, _ := claims["exp"].(float64)

	return Ticket{
		SessionID: sid,
		Owner:     sub,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
