package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"blackjack/internal/device"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// MatchState holds the authoritative runtime state for one realtime table match.
type MatchState struct {
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // UserId -> Presence
	Handles   map[string]*device.Handle   `json:"-"` // UserId -> open table handle
	Pending   map[string]int64            `json:"-"` // UserId -> tick of a join attempt awaiting MatchJoin
	IdleTicks int64                       `json:"idle_ticks"`
	Open      bool                        `json:"open"` // last published label value
}

// Holder returns the user holding the table through this match, if any.
func (ms *MatchState) Holder() string {
	for userID := range ms.Handles {
		return userID
	}
	return ""
}

// errorPayload is the OpError body.
type errorPayload struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type matchHandler struct {
	device *device.Device
	reap   func(logger runtime.Logger)
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing blackjack table match.")

	state := &MatchState{
		Presences: make(map[string]runtime.Presence),
		Handles:   make(map[string]*device.Handle),
		Pending:   make(map[string]int64),
		Open:      !mh.device.Busy(),
	}

	label, err := mh.label(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, label
}

// MatchJoinAttempt opens the table for the joining user. A held table rejects the join.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()
	if _, held := matchState.Handles[userID]; held {
		return state, true, ""
	}

	if mh.reap != nil {
		mh.reap(logger)
	}
	handle, err := mh.device.Open(userID)
	if err != nil {
		logger.Info("MatchJoinAttempt: User %s rejected: %v", userID, err)
		return state, false, "table_busy"
	}
	matchState.Handles[userID] = handle
	matchState.Pending[userID] = tick
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p
		delete(matchState.Pending, p.GetUserId())
		logger.Info("MatchJoin: User %s took the table.", p.GetUserId())
		mh.sendStatus(matchState, dispatcher, logger, p.GetUserId())
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave closes the leaving user's handle. The match ends once nobody is left.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)
		if h, held := matchState.Handles[userID]; held {
			_ = h.Close()
			delete(matchState.Handles, userID)
			delete(matchState.Pending, userID)
			logger.Debug("MatchLeave: User %s left, table released.", userID)
		}
	}

	if len(matchState.Presences) == 0 {
		mh.closeAll(matchState)
		logger.Info("MatchLeave: Terminating empty match.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpCommand:
			mh.handleCommand(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.releaseStaleJoins(matchState, tick, logger)

	if len(matchState.Presences) == 0 && len(matchState.Handles) == 0 {
		matchState.IdleTicks++
		if matchState.IdleTicks >= idleMatchTicks {
			logger.Info("MatchLoop: Terminating match idle for %d ticks.", matchState.IdleTicks)
			return nil
		}
	} else {
		matchState.IdleTicks = 0
	}

	// RPC sessions can take or free the table between ticks.
	if open := !mh.device.Busy(); open != matchState.Open {
		mh.updateLabel(matchState, dispatcher, logger)
	}

	return matchState
}

// releaseStaleJoins closes handles opened by a join attempt whose MatchJoin never followed.
func (mh *matchHandler) releaseStaleJoins(state *MatchState, tick int64, logger runtime.Logger) {
	for userID, since := range state.Pending {
		if tick-since < pendingJoinTicks {
			continue
		}
		delete(state.Pending, userID)
		if _, present := state.Presences[userID]; present {
			continue
		}
		if h, held := state.Handles[userID]; held {
			_ = h.Close()
			delete(state.Handles, userID)
			logger.Warn("MatchLoop: User %s never joined, table released.", userID)
		}
	}
}

func (mh *matchHandler) handleCommand(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	handle, ok := state.Handles[senderID]
	if !ok {
		logger.Warn("Command: User %s does not hold the table.", senderID)
		mh.sendError(state, dispatcher, logger, senderID, errNotOwner)
		return
	}

	if err := handle.WriteCommand(ctx, string(msg.GetData())); err != nil {
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	mh.sendStatus(state, dispatcher, logger, senderID)
	mh.updateLabel(state, dispatcher, logger)
}

// sendStatus sends the holder's armed snapshot to them.
func (mh *matchHandler) sendStatus(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string) {
	handle, ok := state.Handles[userID]
	if !ok {
		return
	}
	status, armed, err := handle.Next()
	if err != nil || !armed {
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send status to %s: Presence not found", userID)
		return
	}
	dispatcher.BroadcastMessage(OpStatus, []byte(status), []runtime.Presence{presence}, nil, true)
}

// sendError sends an OpError to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, cause error) {
	kind, code := classify(cause)
	bytes, err := json.Marshal(errorPayload{Code: code, Kind: kind, Message: cause.Error()})
	if err != nil {
		logger.Error("Failed to marshal error payload: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpError, bytes, []runtime.Presence{presence}, nil, true)
}

// label renders {"open", "game", "phase"} for match listing queries.
func (mh *matchHandler) label(state *MatchState) (string, error) {
	phase := ""
	if holder := state.Holder(); holder != "" {
		phase = string(state.Handles[holder].Phase())
	}
	s, err := structpb.NewStruct(map[string]interface{}{
		labelKeyOpen:  state.Open,
		labelKeyGame:  labelGame,
		labelKeyPhase: phase,
	})
	if err != nil {
		return "", err
	}
	b, err := protojson.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	state.Open = !mh.device.Busy()
	label, err := mh.label(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) closeAll(state *MatchState) {
	for userID, h := range state.Handles {
		_ = h.Close()
		delete(state.Handles, userID)
		delete(state.Pending, userID)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with grace %d", graceSeconds)
	if matchState, ok := state.(*MatchState); ok {
		mh.closeAll(matchState)
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
