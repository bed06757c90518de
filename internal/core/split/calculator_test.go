package split_test

import (
	"testing"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/core/split"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usd = domain.Currency{CurrencyCode: "USD", Symbol: "$", DecimalDigits: 2}
	jpy = domain.Currency{CurrencyCode: "JPY", Symbol: "¥", DecimalDigits: 0}
	kwd = domain.Currency{CurrencyCode: "KWD", DecimalDigits: 3}
)

func owed(ids ...string) []split.Participant {
	ps := make([]split.Participant, len(ids))
	for i, id := range ids {
		ps[i] = split.Participant{User: domain.User{UserID: id, DisplayName: id}, Owed: true}
	}
	return ps
}

func amounts(splitUsers []domain.SplitUser, digits int32) []string {
	out := make([]string, len(splitUsers))
	for i, su := range splitUsers {
		out[i] = su.Amount.StringFixed(digits)
	}
	return out
}

func sumOwed(splitUsers []domain.SplitUser) decimal.Decimal {
	sum := decimal.Zero
	for _, su := range splitUsers {
		if su.Owed {
			sum = sum.Add(su.Amount)
		}
	}
	return sum
}

func TestCalculate_EqualSplit(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency domain.Currency
		ids      []string
		want     []string
	}{
		{name: "divides evenly", amount: "90.00", currency: usd, ids: []string{"a", "b", "c"}, want: []string{"30.00", "30.00", "30.00"}},
		{name: "residual to first participant", amount: "10.00", currency: usd, ids: []string{"a", "b", "c"}, want: []string{"3.34", "3.33", "3.33"}},
		{name: "two units of residual", amount: "0.05", currency: usd, ids: []string{"a", "b", "c"}, want: []string{"0.02", "0.02", "0.01"}},
		{name: "half-up overshoot is taken from the end", amount: "0.05", currency: usd, ids: []string{"a", "b"}, want: []string{"0.03", "0.02"}},
		{name: "single participant takes everything", amount: "12.34", currency: usd, ids: []string{"a"}, want: []string{"12.34"}},
		{name: "zero total", amount: "0", currency: usd, ids: []string{"a", "b"}, want: []string{"0.00", "0.00"}},
		{name: "zero decimal currency", amount: "100", currency: jpy, ids: []string{"a", "b", "c"}, want: []string{"34", "33", "33"}},
		{name: "three decimal currency", amount: "1.000", currency: kwd, ids: []string{"a", "b", "c"}, want: []string{"0.334", "0.333", "0.333"}},
		{name: "more participants than units", amount: "0.02", currency: usd, ids: []string{"a", "b", "c", "d"}, want: []string{"0.01", "0.01", "0.00", "0.00"}},
		{name: "trailing zeros beyond precision are fine", amount: "10.000", currency: usd, ids: []string{"a", "b"}, want: []string{"5.00", "5.00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := split.Calculate(split.Request{
				Amount:       tt.amount,
				Currency:     tt.currency,
				PayerID:      tt.ids[0],
				Participants: owed(tt.ids...),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, amounts(got, int32(tt.currency.DecimalDigits)))

			total, _ := decimal.NewFromString(tt.amount)
			assert.True(t, total.Equal(sumOwed(got)), "shares %v do not sum to %s", amounts(got, 3), tt.amount)
		})
	}
}

func TestCalculate_ExactSumForAllParticipantCounts(t *testing.T) {
	for _, amount := range []string{"0.01", "1.00", "10.00", "99.99", "100.01", "1234567.89"} {
		total, err := decimal.NewFromString(amount)
		require.NoError(t, err)
		for n := 1; n <= 17; n++ {
			ids := make([]string, n)
			for i := range ids {
				ids[i] = string(rune('a' + i))
			}
			got, err := split.Calculate(split.Request{Amount: amount, Currency: usd, PayerID: "a", Participants: owed(ids...)})
			require.NoError(t, err)
			assert.True(t, total.Equal(sumOwed(got)), "amount %s, %d participants", amount, n)

			// No two shares differ by more than one cent.
			lowest, highest := got[0].Amount, got[0].Amount
			for _, su := range got {
				lowest = decimal.Min(lowest, su.Amount)
				highest = decimal.Max(highest, su.Amount)
			}
			assert.True(t, highest.Sub(lowest).LessThanOrEqual(decimal.RequireFromString("0.01")))
		}
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	req := split.Request{Amount: "100.00", Currency: usd, PayerID: "b", Participants: owed("a", "b", "c", "d", "e", "f", "g")}

	first, err := split.Calculate(req)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := split.Calculate(req)
		require.NoError(t, err)
		assert.Equal(t, amounts(first, 2), amounts(again, 2))
	}
}

func TestCalculate_PayerAndGuests(t *testing.T) {
	participants := []split.Participant{
		{User: domain.User{UserID: "a"}, Owed: true},
		{User: domain.User{UserID: "payer"}, Owed: false},
		{User: domain.User{UserID: "b"}, Owed: true},
	}

	got, err := split.Calculate(split.Request{Amount: "25.00", Currency: usd, PayerID: "payer", Participants: participants})
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"a", "payer", "b"}, []string{got[0].UserID, got[1].UserID, got[2].UserID})
	assert.False(t, got[0].Paid)
	assert.True(t, got[1].Paid)
	assert.False(t, got[1].Owed)
	assert.True(t, got[1].Amount.IsZero())
	assert.Equal(t, []string{"12.50", "0.00", "12.50"}, amounts(got, 2))
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     split.Request
		wantErr error
	}{
		{
			name:    "no owed participants",
			req:     split.Request{Amount: "10.00", Currency: usd, PayerID: "a", Participants: []split.Participant{{User: domain.User{UserID: "a"}}}},
			wantErr: apperrors.ErrInvalidSplit,
		},
		{
			name:    "payer missing from participants",
			req:     split.Request{Amount: "10.00", Currency: usd, PayerID: "z", Participants: owed("a", "b")},
			wantErr: apperrors.ErrInvalidSplit,
		},
		{
			name:    "no payer",
			req:     split.Request{Amount: "10.00", Currency: usd, Participants: owed("a", "b")},
			wantErr: apperrors.ErrInvalidSplit,
		},
		{
			name:    "duplicate participant",
			req:     split.Request{Amount: "10.00", Currency: usd, PayerID: "a", Participants: owed("a", "a")},
			wantErr: apperrors.ErrInvalidSplit,
		},
		{
			name:    "unparsable total",
			req:     split.Request{Amount: "ten", Currency: usd, PayerID: "a", Participants: owed("a")},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name:    "negative total",
			req:     split.Request{Amount: "-1.00", Currency: usd, PayerID: "a", Participants: owed("a")},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name:    "too many decimal digits",
			req:     split.Request{Amount: "1.005", Currency: usd, PayerID: "a", Participants: owed("a")},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name:    "fractional yen",
			req:     split.Request{Amount: "1.5", Currency: jpy, PayerID: "a", Participants: owed("a")},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name:    "unknown policy",
			req:     split.Request{Amount: "1.00", Currency: usd, PayerID: "a", Participants: owed("a"), Policy: "SHARES"},
			wantErr: apperrors.ErrInvalidSplit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := split.Calculate(tt.req)
			assert.Nil(t, got)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}
