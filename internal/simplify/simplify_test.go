package simplify

import (
	"testing"

	"github.com/Rdevang/Smart-Split-sub004/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bal(name string, cents int64) domain.Balance {
	return domain.Balance{
		MemberID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		DisplayName: name,
		NetAmount:   domain.Cents(cents),
	}
}

func totalAmount(payments []domain.Payment) domain.Cents {
	var sum domain.Cents
	for _, p := range payments {
		sum += p.Amount
	}
	return sum
}

func TestSimplify_EmptyInput(t *testing.T) {
	assert.Empty(t, Simplify(nil))
	assert.Empty(t, Simplify([]domain.Balance{}))
}

func TestSimplify_AllZero(t *testing.T) {
	balances := []domain.Balance{bal("Alice", 0), bal("Bob", 0)}
	assert.Empty(t, Simplify(balances))
}

func TestSimplify_SinglePair(t *testing.T) {
	balances := []domain.Balance{bal("Alice", 5000), bal("Bob", -5000)}

	payments := Simplify(balances)

	require.Len(t, payments, 1)
	assert.Equal(t, "Bob", payments[0].FromDisplayName)
	assert.Equal(t, "Alice", payments[0].ToDisplayName)
	assert.Equal(t, domain.Cents(5000), payments[0].Amount)
}

func TestSimplify_OneCreditorTwoDebtors(t *testing.T) {
	balances := []domain.Balance{bal("Alice", 2000), bal("Bob", -1000), bal("Carol", -1000)}

	payments := Simplify(balances)

	require.Len(t, payments, 2)
	for _, p := range payments {
		assert.Equal(t, "Alice", p.ToDisplayName)
	}
	assert.Equal(t, domain.Cents(2000), totalAmount(payments))
}

func TestSimplify_TwoByTwo(t *testing.T) {
	balances := []domain.Balance{
		bal("Alice", 3000), bal("Bob", 2000), bal("Carol", -2500), bal("Dave", -2500),
	}

	payments := Simplify(balances)

	assert.LessOrEqual(t, len(payments), 3)
	assert.Equal(t, domain.Cents(5000), totalAmount(payments))
	for _, p := range payments {
		assert.Positive(t, p.Amount)
	}
}

func TestSimplify_ConservesMass(t *testing.T) {
	balances := []domain.Balance{
		bal("A", 12345), bal("B", -333), bal("C", -10012), bal("D", -2000), bal("E", 0),
	}

	payments := Simplify(balances)

	var positive domain.Cents
	for _, b := range balances {
		if b.NetAmount > 0 {
			positive += b.NetAmount
		}
	}
	assert.Equal(t, positive, totalAmount(payments))
}

func TestSimplify_PaymentCountBound(t *testing.T) {
	balances := []domain.Balance{
		bal("A", 700), bal("B", 300), bal("C", -400), bal("D", -400), bal("E", -200),
	}

	payments := Simplify(balances)

	// n non-negligible participants produce at most n-1 payments.
	assert.LessOrEqual(t, len(payments), len(balances)-1)
}

func TestSimplify_ZeroBalancesExcluded(t *testing.T) {
	balances := []domain.Balance{bal("Alice", 1000), bal("Bob", 0), bal("Carol", -1000)}

	payments := Simplify(balances)

	require.Len(t, payments, 1)
	for _, p := range payments {
		assert.NotEqual(t, "Bob", p.FromDisplayName)
		assert.NotEqual(t, "Bob", p.ToDisplayName)
	}
}

func TestSimplify_PlaceholderFlagsPropagate(t *testing.T) {
	ghost := bal("Ghost", -1500)
	ghost.IsPlaceholder = true
	balances := []domain.Balance{bal("Alice", 1500), ghost}

	payments := Simplify(balances)

	require.Len(t, payments, 1)
	assert.True(t, payments[0].FromIsPlaceholder)
	assert.False(t, payments[0].ToIsPlaceholder)
}

func TestSimplify_Deterministic(t *testing.T) {
	balances := []domain.Balance{
		bal("A", 1000), bal("B", 1000), bal("C", -1000), bal("D", -1000),
	}

	first := Simplify(balances)
	second := Simplify(balances)

	assert.Equal(t, first, second)
	// Equal amounts tie-break by input order: A before B, C before D.
	require.Len(t, first, 2)
	assert.Equal(t, "C", first[0].FromDisplayName)
	assert.Equal(t, "A", first[0].ToDisplayName)
	assert.Equal(t, "D", first[1].FromDisplayName)
	assert.Equal(t, "B", first[1].ToDisplayName)
}

func TestSimplify_DoesNotMutateInput(t *testing.T) {
	balances := []domain.Balance{bal("Alice", 2500), bal("Bob", -2500)}
	before := make([]domain.Balance, len(balances))
	copy(before, balances)

	Simplify(balances)

	assert.Equal(t, before, balances)
}

func TestComputeStats(t *testing.T) {
	balances := []domain.Balance{
		bal("Alice", 2000), bal("Bob", -1000), bal("Carol", -1000),
	}
	payments := Simplify(balances)

	stats := ComputeStats(balances, payments)

	assert.Equal(t, 2, stats.OriginalPayments)
	assert.Equal(t, 2, stats.SimplifiedPayments)
	assert.Equal(t, 0, stats.Savings)
}

func TestComputeStats_Savings(t *testing.T) {
	balances := []domain.Balance{
		bal("A", 3000), bal("B", 3000), bal("C", -2000), bal("D", -2000), bal("E", -2000),
	}
	payments := Simplify(balances)

	stats := ComputeStats(balances, payments)

	assert.Equal(t, 6, stats.OriginalPayments)
	assert.LessOrEqual(t, stats.SimplifiedPayments, 4)
	assert.Equal(t, stats.OriginalPayments-stats.SimplifiedPayments, stats.Savings)
}

func TestFormatPayment(t *testing.T) {
	payments := Simplify([]domain.Balance{bal("Alice", 1250), bal("Bob", -1250)})
	require.Len(t, payments, 1)

	assert.Equal(t, "Bob pays Alice USD 12.50", FormatPayment(payments[0], "USD"))
}
