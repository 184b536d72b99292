package nakama

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"blackjack/internal/app"
	"blackjack/internal/device"
	"blackjack/internal/session"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/heroiclabs/nakama-common/runtime"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

type sentMessage struct {
	opCode     int64
	data       []byte
	recipients []runtime.Presence
}

// mockDispatcher records match dispatcher calls for assertions.
type mockDispatcher struct {
	messages     []sentMessage
	labelUpdates int
	lastLabel    string
}

func (md *mockDispatcher) BroadcastMessage(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	md.messages = append(md.messages, sentMessage{opCode: opCode, data: append([]byte(nil), data...), recipients: presences})
	return nil
}

func (md *mockDispatcher) BroadcastMessageDeferred(opCode int64, data []byte, presences []runtime.Presence, sender runtime.Presence, reliable bool) error {
	return nil
}

func (md *mockDispatcher) MatchKick(presences []runtime.Presence) error {
	return nil
}

func (md *mockDispatcher) MatchLabelUpdate(label string) error {
	md.labelUpdates++
	md.lastLabel = label
	return nil
}

func (md *mockDispatcher) last() sentMessage {
	if len(md.messages) == 0 {
		return sentMessage{}
	}
	return md.messages[len(md.messages)-1]
}

// fakePresence overrides only the identity getters.
type fakePresence struct {
	runtime.Presence
	userID string
}

func (p fakePresence) GetUserId() string    { return p.userID }
func (p fakePresence) GetSessionId() string { return "session-" + p.userID }
func (p fakePresence) GetUsername() string  { return p.userID }

type fakeMatchData struct {
	runtime.MatchData
	userID string
	opCode int64
	data   []byte
}

func (m fakeMatchData) GetUserId() string { return m.userID }
func (m fakeMatchData) GetOpCode() int64  { return m.opCode }
func (m fakeMatchData) GetData() []byte   { return m.data }

// fakeNakama records match listing and creation. Listing answers from byQuery.
type fakeNakama struct {
	runtime.NakamaModule
	byQuery map[string][]*api.Match
	queries []string
	created []string
}

func (f *fakeNakama) MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error) {
	f.queries = append(f.queries, query)
	return f.byQuery[query], nil
}

func (f *fakeNakama) MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error) {
	f.created = append(f.created, module)
	return "match-new", nil
}

type shutdownFunc = func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule)

type rpcFunc = func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)

// fakeInitializer captures registrations.
type fakeInitializer struct {
	runtime.Initializer
	rpcs      map[string]rpcFunc
	matches   map[string]func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error)
	shutdowns []shutdownFunc
}

func newFakeInitializer() *fakeInitializer {
	return &fakeInitializer{
		rpcs:    make(map[string]rpcFunc),
		matches: make(map[string]func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error)),
	}
}

func (f *fakeInitializer) RegisterRpc(id string, fn func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error)) error {
	f.rpcs[id] = fn
	return nil
}

func (f *fakeInitializer) RegisterMatch(name string, fn func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error)) error {
	f.matches[name] = fn
	return nil
}

func (f *fakeInitializer) RegisterShutdown(fn func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule)) error {
	f.shutdowns = append(f.shutdowns, fn)
	return nil
}

func newTestModule(seed int64) *Module {
	svc := app.NewService(rand.New(rand.NewSource(seed)), app.Rules{})
	return NewModule(
		device.NewDevice(device.NewTable(svc, noopLogger{}), noopLogger{}),
		device.NewOracle(rand.New(rand.NewSource(seed)), noopLogger{}),
		session.NewTicketIssuer("test-secret", ticketIssuerName, time.Minute),
	)
}

func userCtx(userID string) context.Context {
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, userID)
}
