package nakama

const (
	// RpcBlackjackOpen claims the table and returns a session ticket.
	RpcBlackjackOpen = "blackjack_open"
	// RpcBlackjackWrite applies one command for the ticket holder.
	RpcBlackjackWrite = "blackjack_write"
	// RpcBlackjackRead returns the status snapshot armed by the last open or write.
	RpcBlackjackRead = "blackjack_read"
	// RpcBlackjackClose releases the table.
	RpcBlackjackClose = "blackjack_close"
	// RpcFindTable finds or creates the realtime blackjack match.
	RpcFindTable = "blackjack_find_table"
	// RpcMagic8BallAsk returns one oracle answer.
	RpcMagic8BallAsk = "magic8ball_ask"

	// MatchNameBlackjack is the authoritative match handler name registered with Nakama.
	MatchNameBlackjack = "blackjack_table"
)

// Match lifecycle, in ticks at the match tick rate of 1.
const (
	// pendingJoinTicks bounds how long a handle opened by MatchJoinAttempt waits for MatchJoin.
	pendingJoinTicks int64 = 5
	// idleMatchTicks is how long a match with no presences and no handles lives on.
	idleMatchTicks int64 = 30
)

// Op codes for realtime match messages.
const (
	// Client -> Server: data is one command line.
	OpCommand int64 = 1

	// Server -> Client
	OpStatus int64 = 101 // rendered status text, sent to the holder only
	OpError  int64 = 102 // JSON errorPayload, sent to the sender only
)

// Match label keys.
const (
	labelKeyOpen  = "open"
	labelKeyGame  = "game"
	labelKeyPhase = "phase"

	labelGame = "blackjack"
)

// Runtime env keys read from RUNTIME_CTX_ENV.
const (
	envConfigPath    = "blackjack_config_path"
	envTicketSecret  = "blackjack_ticket_secret"
	envOTelEndpoint  = "blackjack_otel_endpoint"
	ticketIssuerName = "blackjack"
)

// gRPC status codes returned through runtime.NewError.
const (
	codeInvalidArgument    = 3
	codeNotFound           = 5
	codeResourceExhausted  = 8
	codeFailedPrecondition = 9
	codeAborted            = 10
	codeInternal           = 13
	codeUnauthenticated    = 16
)
