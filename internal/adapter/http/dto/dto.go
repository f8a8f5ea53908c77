package dto

import "rangerblock/internal/core/domain"

// SessionResponse is the response body for a freshly minted session token.
type SessionResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// TransferRequest is the request body for sending tokens.
type TransferRequest struct {
	To     string  `json:"to" binding:"required,rb_address"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Coin   string  `json:"coin" binding:"required,rb_coin"`
	Memo   string  `json:"memo" binding:"max=256"`
}

// HistoryQuery binds the query string of GET /api/v1/transactions.
type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// MineResponse reports the result of POST /api/v1/blocks.
type MineResponse struct {
	Mined bool          `json:"mined"`
	Block *domain.Block `json:"block,omitempty"`
}

// HistoryResponse wraps a page of wallet history.
type HistoryResponse struct {
	Entries []domain.HistoryEntry `json:"entries"`
	Count   int                   `json:"count"`
}

// LedgerResponse combines ledger status with the coin supply seen by the bridge.
type LedgerResponse struct {
	Status *domain.LedgerStatus `json:"status"`
	Supply map[string]float64   `json:"supply,omitempty"`
}
