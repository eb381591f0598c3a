package dto

// BalanceResponse represents the API response for an account's balance
type BalanceResponse struct {
	UserID  string `json:"userId"`
	Balance int64  `json:"balance"`
	Version uint64 `json:"version"`
	Status  string `json:"status"`
}

// StatementEntry represents one ledger entry in a statement response
type StatementEntry struct {
	EntryID      string `json:"entryId"`
	Delta        int64  `json:"delta"`
	BalanceAfter int64  `json:"balanceAfter"`
	Reason       string `json:"reason"`
	RefType      string `json:"refType,omitempty"`
	RefID        string `json:"refId,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

// StatementResponse represents the API response for an account statement
type StatementResponse struct {
	UserID  string           `json:"userId"`
	Entries []StatementEntry `json:"entries"`
}

// StatusRequest represents the API request for an administrative status change
type StatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active frozen suspended"`
}
