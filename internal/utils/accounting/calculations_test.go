package accounting

import (
	"testing"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSignedAmount(t *testing.T) {
	assert.True(t, SignedAmount(d("100"), decimal.Zero, domain.NormalDebit).Equal(d("100")))
	assert.True(t, SignedAmount(decimal.Zero, d("100"), domain.NormalDebit).Equal(d("-100")))
	assert.True(t, SignedAmount(decimal.Zero, d("40"), domain.NormalCredit).Equal(d("40")))
	assert.True(t, SignedAmount(d("40"), decimal.Zero, domain.NormalCredit).Equal(d("-40")))
}

func TestValidateIntentLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.IntentLine
		wantErr bool
	}{
		{
			name: "balanced",
			lines: []domain.IntentLine{
				{AccountCode: "1-1100", Debit: d("50000")},
				{AccountCode: "2-1100", Credit: d("50000")},
			},
		},
		{
			name: "within tolerance",
			lines: []domain.IntentLine{
				{AccountCode: "1-1100", Debit: d("100.005")},
				{AccountCode: "2-1100", Credit: d("100")},
			},
		},
		{
			name: "unbalanced",
			lines: []domain.IntentLine{
				{AccountCode: "1-1100", Debit: d("100")},
				{AccountCode: "2-1100", Credit: d("99")},
			},
			wantErr: true,
		},
		{
			name: "both sides on one line",
			lines: []domain.IntentLine{
				{AccountCode: "1-1100", Debit: d("10"), Credit: d("10")},
				{AccountCode: "2-1100", Credit: d("0")},
			},
			wantErr: true,
		},
		{
			name: "zero amounts",
			lines: []domain.IntentLine{
				{AccountCode: "1-1100"},
				{AccountCode: "2-1100"},
			},
			wantErr: true,
		},
		{
			name: "only debits",
			lines: []domain.IntentLine{
				{AccountCode: "1-1100", Debit: d("10")},
				{AccountCode: "1-1200", Debit: d("10")},
			},
			wantErr: true,
		},
		{
			name: "negative amount",
			lines: []domain.IntentLine{
				{AccountCode: "1-1100", Debit: d("-10")},
				{AccountCode: "2-1100", Credit: d("-10")},
			},
			wantErr: true,
		},
		{
			name:    "single line",
			lines:   []domain.IntentLine{{AccountCode: "1-1100", Debit: d("10")}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIntentLines(tt.lines)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrLedgerIntegrityViolation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSwapLines(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: "cash", Debit: d("50000"), Credit: decimal.Zero},
		{AccountID: "escrow", Debit: decimal.Zero, Credit: d("50000")},
	}
	swapped := SwapLines(lines)

	require.Len(t, swapped, 2)
	assert.True(t, swapped[0].Credit.Equal(d("50000")))
	assert.True(t, swapped[0].Debit.IsZero())
	assert.True(t, swapped[1].Debit.Equal(d("50000")))
	// The input is left untouched.
	assert.True(t, lines[0].Debit.Equal(d("50000")))
}
