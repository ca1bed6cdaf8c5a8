package domain

import (
	"github.com/google/uuid"
)

// Balance is a member's net signed position within a group at a point in
// time, derived from the expense and settlement history. Positive means the
// member is owed money, negative means the member owes. Balances are
// recomputed on demand and never persisted.
type Balance struct {
	MemberID      uuid.UUID `json:"memberId"`
	DisplayName   string    `json:"displayName"`
	NetAmount     Cents     `json:"netAmount"`
	IsPlaceholder bool      `json:"isPlaceholder"`
}

// Payment is a suggested peer-to-peer transfer produced by balance
// simplification. Amount is always positive. Placeholder flags are carried
// through from the input balances for UI purposes only.
type Payment struct {
	FromMemberID      uuid.UUID `json:"fromMemberId"`
	FromDisplayName   string    `json:"fromDisplayName"`
	FromIsPlaceholder bool      `json:"fromIsPlaceholder"`
	ToMemberID        uuid.UUID `json:"toMemberId"`
	ToDisplayName     string    `json:"toDisplayName"`
	ToIsPlaceholder   bool      `json:"toIsPlaceholder"`
	Amount            Cents     `json:"amount"`
}
