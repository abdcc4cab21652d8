package interfaces

import (
	"context"

	"ea-sentinel/internal/types"
)

// HistorySource yields raw broker history for an account. The analytics
// layer only ever sees the canonical trade sequence derived from it.
type HistorySource interface {
	Login(ctx context.Context, email, password string) (session string, err error)
	MyAccounts(ctx context.Context, session string) ([]types.Account, error)
	History(ctx context.Context, session string, accountID int) ([]types.HistoryRecord, error)
}
