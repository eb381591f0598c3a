package dto

// ApplyRequest represents the API request for applying a single ledger delta
type ApplyRequest struct {
	UserID         string `json:"userId" binding:"required"`
	Delta          int64  `json:"delta" binding:"required"`
	Reason         string `json:"reason" binding:"required"`
	RefType        string `json:"refType"`
	RefID          string `json:"refId"`
	IdempotencyKey string `json:"idempotencyKey" binding:"required"`
}

// ApplyResponse represents the API response for an applied delta
type ApplyResponse struct {
	EntryID      string `json:"entryId"`
	UserID       string `json:"userId"`
	NewBalance   int64  `json:"newBalance"`
	Version      uint64 `json:"version"`
	WasDuplicate bool   `json:"wasDuplicate"`
}

// TransferRequest represents the API request for a two-account transfer
type TransferRequest struct {
	SenderID    string `json:"senderId" binding:"required"`
	RecipientID string `json:"recipientId" binding:"required"`
	Amount      int64  `json:"amount" binding:"required"`
	TransferID  string `json:"transferId"`
}

// TransferResponse represents the API response for a committed transfer
type TransferResponse struct {
	TransferID          string `json:"transferId"`
	SenderNewBalance    int64  `json:"senderNewBalance"`
	RecipientNewBalance int64  `json:"recipientNewBalance"`
}
