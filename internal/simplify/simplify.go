// Package simplify turns a group's per-member net balances into a short
// list of peer-to-peer payments that settles every debt.
//
// The matching is a greedy heuristic: it repeatedly pairs the largest
// remaining creditor with the largest remaining debtor. It guarantees at
// most n-1 payments for n participants with a non-zero balance, which is
// not provably minimal (the true minimum-transaction-count problem is
// NP-hard), but is never worse than one payment per participant beyond the
// smaller side's count.
package simplify

import (
	"fmt"

	"github.com/Rdevang/Smart-Split-sub004/internal/domain"
)

// party is the mutable working state for one side of the matching.
type party struct {
	balance   domain.Balance
	remaining domain.Cents // always positive while the party is live
	order     int          // input position, for deterministic tie-breaks
}

// Simplify computes payments that bring every balance to zero. Balances that
// round to zero cents are treated as already settled and excluded. The input
// is not mutated, and identical inputs always produce identical output.
func Simplify(balances []domain.Balance) []domain.Payment {
	var creditors, debtors []party
	for i, b := range balances {
		switch {
		case b.NetAmount > 0:
			creditors = append(creditors, party{balance: b, remaining: b.NetAmount, order: i})
		case b.NetAmount < 0:
			debtors = append(debtors, party{balance: b, remaining: -b.NetAmount, order: i})
		}
	}

	var payments []domain.Payment
	for len(creditors) > 0 && len(debtors) > 0 {
		ci := largest(creditors)
		di := largest(debtors)
		creditor := &creditors[ci]
		debtor := &debtors[di]

		transfer := creditor.remaining
		if debtor.remaining < transfer {
			transfer = debtor.remaining
		}

		payments = append(payments, domain.Payment{
			FromMemberID:      debtor.balance.MemberID,
			FromDisplayName:   debtor.balance.DisplayName,
			FromIsPlaceholder: debtor.balance.IsPlaceholder,
			ToMemberID:        creditor.balance.MemberID,
			ToDisplayName:     creditor.balance.DisplayName,
			ToIsPlaceholder:   creditor.balance.IsPlaceholder,
			Amount:            transfer,
		})

		creditor.remaining -= transfer
		debtor.remaining -= transfer
		if creditor.remaining == 0 {
			creditors = append(creditors[:ci], creditors[ci+1:]...)
		}
		if debtor.remaining == 0 {
			debtors = append(debtors[:di], debtors[di+1:]...)
		}
	}

	return payments
}

// largest returns the index of the party with the biggest remaining amount.
// Ties go to the earliest input position so equal inputs yield equal output.
func largest(parties []party) int {
	best := 0
	for i := 1; i < len(parties); i++ {
		if parties[i].remaining > parties[best].remaining ||
			(parties[i].remaining == parties[best].remaining && parties[i].order < parties[best].order) {
			best = i
		}
	}
	return best
}

// Stats compares the naive all-pairs transaction count against the
// simplified payment count.
type Stats struct {
	OriginalPayments   int `json:"originalPayments"`
	SimplifiedPayments int `json:"simplifiedPayments"`
	Savings            int `json:"savings"`
}

// ComputeStats derives simplification statistics for a set of balances and
// the payments produced for them. The naive baseline is every debtor paying
// every creditor.
func ComputeStats(balances []domain.Balance, payments []domain.Payment) Stats {
	creditors, debtors := 0, 0
	for _, b := range balances {
		switch {
		case b.NetAmount > 0:
			creditors++
		case b.NetAmount < 0:
			debtors++
		}
	}
	original := creditors * debtors
	savings := original - len(payments)
	if savings < 0 {
		savings = 0
	}
	return Stats{
		OriginalPayments:   original,
		SimplifiedPayments: len(payments),
		Savings:            savings,
	}
}

// FormatPayment renders a payment as a human-readable instruction,
// e.g. "Alice pays Bob USD 12.50".
func FormatPayment(p domain.Payment, currency string) string {
	return fmt.Sprintf("%s pays %s %s %s", p.FromDisplayName, p.ToDisplayName, currency, p.Amount.StringFixed())
}
