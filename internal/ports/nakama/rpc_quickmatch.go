package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/heroiclabs/nakama-common/runtime"
)

// FindTableResponse is the payload returned to clients looking for the realtime table.
type FindTableResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

func rpcFindTable(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	// A blackjack match whose table is free, then any blackjack match, before creating one.
	queries := []string{
		fmt.Sprintf("+label.%s:T +label.%s:%s", labelKeyOpen, labelKeyGame, labelGame),
		fmt.Sprintf("+label.%s:%s", labelKeyGame, labelGame),
	}

	limit := 1
	authoritative := true

	minSize := 0
	maxSize := 1

	for _, query := range queries {
		matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, query)
		if err != nil {
			logger.Error("MatchList error: %v", err)
			return "", err
		}
		if len(matches) > 0 {
			resp := FindTableResponse{MatchID: matches[0].MatchId, IsNew: false}
			b, _ := json.Marshal(resp)
			return string(b), nil
		}
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameBlackjack, map[string]interface{}{})
	if err != nil {
		logger.Error("MatchCreate error: %v", err)
		return "", err
	}

	resp := FindTableResponse{MatchID: matchID, IsNew: true}
	b, _ := json.Marshal(resp)
	return string(b), nil
}
