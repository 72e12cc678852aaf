package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	l   *ledger
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.l = newLedger(domain.PeriodModeStrict, day(2025, 6, 15).Add(10*time.Hour))
	_, err := suite.l.svc.Account.SeedDefaultChart(suite.ctx, testTenant, testActor)
	suite.Require().NoError(err)
	_, err = suite.l.svc.Period.CreatePeriod(suite.ctx, testTenant, day(2025, 1, 1), day(2025, 12, 31), testActor)
	suite.Require().NoError(err)
}

func (suite *JournalServiceTestSuite) manual(lines ...domain.IntentLine) domain.IntentInput {
	return domain.IntentInput{Description: "manual entry", Lines: lines}
}

func dr(code, amount string) domain.IntentLine {
	return domain.IntentLine{AccountCode: code, Debit: d(amount), Credit: decimal.Zero}
}

func cr(code, amount string) domain.IntentLine {
	return domain.IntentLine{AccountCode: code, Debit: decimal.Zero, Credit: d(amount)}
}

func (suite *JournalServiceTestSuite) TestCreateIntent_Rejections() {
	tests := []struct {
		name  string
		input domain.IntentInput
		err   error
	}{
		{"unbalanced", suite.manual(dr(domain.CodeCash, "100"), cr(domain.CodeOwnerEquity, "99")), apperrors.ErrLedgerIntegrityViolation},
		{"single line", suite.manual(dr(domain.CodeCash, "100")), apperrors.ErrLedgerIntegrityViolation},
		{"zero total", suite.manual(dr(domain.CodeCash, "0"), cr(domain.CodeOwnerEquity, "0")), apperrors.ErrLedgerIntegrityViolation},
		{"both sides on one line", suite.manual(
			domain.IntentLine{AccountCode: domain.CodeCash, Debit: d("5"), Credit: d("5")},
			cr(domain.CodeOwnerEquity, "0.01")), apperrors.ErrLedgerIntegrityViolation},
		{"unknown account", suite.manual(dr("9-9999", "10"), cr(domain.CodeOwnerEquity, "10")), apperrors.ErrChartOfAccountsMisconfigured},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.l.svc.Journal.CreateIntent(suite.ctx, testTenant, testActor, tt.input)
			suite.ErrorIs(err, tt.err)
		})
	}
}

func (suite *JournalServiceTestSuite) TestCreateIntent_ToleratesRounding() {
	intent, err := suite.l.svc.Journal.CreateIntent(suite.ctx, testTenant, testActor,
		suite.manual(dr(domain.CodeCash, "100.00"), cr(domain.CodeOwnerEquity, "99.995")))
	suite.Require().NoError(err)
	suite.Equal(domain.RefManual, intent.Journal.ReferenceType)
	suite.Equal(day(2025, 6, 15), intent.Journal.TransactionDate)
	suite.Zero(suite.l.countJournals(suite.ctx, testTenant))
}

func (suite *JournalServiceTestSuite) TestPostJournal_UpdatesBalances() {
	intent, err := suite.l.svc.Journal.CreateIntent(suite.ctx, testTenant, testActor,
		suite.manual(dr(domain.CodeCash, "250"), cr(domain.CodeOwnerEquity, "250")))
	suite.Require().NoError(err)
	id, err := suite.l.svc.Journal.PostJournal(suite.ctx, intent)
	suite.Require().NoError(err)

	j, err := suite.l.svc.Journal.GetJournal(suite.ctx, testTenant, id)
	suite.Require().NoError(err)
	suite.Equal(domain.JournalPosted, j.Status)
	suite.Len(j.Lines, 2)
	suite.True(j.TotalDebit().Equal(j.TotalCredit()))

	suite.True(suite.l.balance(suite.ctx, domain.CodeCash).Equal(d("250")))
	suite.True(suite.l.balance(suite.ctx, domain.CodeOwnerEquity).Equal(d("250")))

	_, err = suite.l.svc.Journal.GetJournal(suite.ctx, "other-tenant", id)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestDrafts_DoNotCountUntilPosted() {
	intent, err := suite.l.svc.Journal.CreateIntent(suite.ctx, testTenant, testActor,
		suite.manual(dr(domain.CodeCash, "40"), cr(domain.CodeOwnerEquity, "40")))
	suite.Require().NoError(err)
	id, err := suite.l.svc.Journal.SaveDraft(suite.ctx, intent)
	suite.Require().NoError(err)
	suite.True(suite.l.balance(suite.ctx, domain.CodeCash).IsZero())

	posted, err := suite.l.svc.Journal.PostDraft(suite.ctx, testTenant, id, testActor)
	suite.Require().NoError(err)
	suite.Equal(domain.JournalPosted, posted.Status)
	suite.True(suite.l.balance(suite.ctx, domain.CodeCash).Equal(d("40")))

	_, err = suite.l.svc.Journal.PostDraft(suite.ctx, testTenant, id, testActor)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestVoidJournal() {
	intent, err := suite.l.svc.Journal.BuildPurchase(suite.ctx, testTenant, testActor, domain.Purchase{
		SupplierID: "supplier-1", Amount: d("300"), OnCredit: true,
	})
	suite.Require().NoError(err)
	id, err := suite.l.svc.Journal.PostJournal(suite.ctx, intent)
	suite.Require().NoError(err)

	suite.l.clock.Advance(48 * time.Hour)
	void, err := suite.l.svc.Journal.VoidJournal(suite.ctx, testTenant, id, testActor, "wrong supplier")
	suite.Require().NoError(err)
	suite.Equal(domain.RefJournalVoid, void.ReferenceType)
	suite.Equal(id, void.ReferenceID)
	suite.Equal(day(2025, 6, 17), void.TransactionDate)
	suite.Contains(void.Description, "wrong supplier")
	suite.Require().Len(void.Lines, 2)
	for i, l := range void.Lines {
		suite.True(l.Debit.Equal(intent.Journal.Lines[i].Credit))
		suite.True(l.Credit.Equal(intent.Journal.Lines[i].Debit))
		suite.Equal(intent.Journal.Lines[i].AccountID, l.AccountID)
	}

	original, err := suite.l.svc.Journal.GetJournal(suite.ctx, testTenant, id)
	suite.Require().NoError(err)
	suite.Equal(domain.JournalPosted, original.Status)

	suite.True(suite.l.balance(suite.ctx, domain.CodeInventory).IsZero())
	suite.True(suite.l.balance(suite.ctx, domain.CodeAccountsPayable).IsZero())

	again, err := suite.l.svc.Journal.VoidJournal(suite.ctx, testTenant, id, testActor, "twice")
	suite.Require().NoError(err)
	suite.Equal(void.JournalID, again.JournalID)
	suite.Equal(2, suite.l.countJournals(suite.ctx, testTenant))

	_, err = suite.l.svc.Journal.VoidJournal(suite.ctx, testTenant, void.JournalID, testActor, "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestVoidJournal_DraftRejected() {
	intent, err := suite.l.svc.Journal.CreateIntent(suite.ctx, testTenant, testActor,
		suite.manual(dr(domain.CodeCash, "40"), cr(domain.CodeOwnerEquity, "40")))
	suite.Require().NoError(err)
	id, err := suite.l.svc.Journal.SaveDraft(suite.ctx, intent)
	suite.Require().NoError(err)

	_, err = suite.l.svc.Journal.VoidJournal(suite.ctx, testTenant, id, testActor, "")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestListJournals_Pages() {
	for i := 0; i < 3; i++ {
		intent, err := suite.l.svc.Journal.CreateIntent(suite.ctx, testTenant, testActor, domain.IntentInput{
			TransactionDate: day(2025, 6, 1+i),
			Lines:           []domain.IntentLine{dr(domain.CodeCash, "1"), cr(domain.CodeOwnerEquity, "1")},
		})
		suite.Require().NoError(err)
		_, err = suite.l.svc.Journal.PostJournal(suite.ctx, intent)
		suite.Require().NoError(err)
	}

	page, err := suite.l.svc.Journal.ListJournals(suite.ctx, testTenant, domain.ListJournalsParams{Limit: 2})
	suite.Require().NoError(err)
	suite.Len(page.Journals, 2)
	suite.Equal(day(2025, 6, 3), page.Journals[0].TransactionDate)
	suite.Require().NotNil(page.NextToken)

	rest, err := suite.l.svc.Journal.ListJournals(suite.ctx, testTenant, domain.ListJournalsParams{Limit: 2, NextToken: page.NextToken})
	suite.Require().NoError(err)
	suite.Len(rest.Journals, 1)
	suite.Nil(rest.NextToken)
}

func (suite *JournalServiceTestSuite) TestBuilders_Rejections() {
	tests := []struct {
		name  string
		build func() error
		err   error
	}{
		{"withdrawal over balance", func() error {
			_, err := suite.l.svc.Journal.BuildSavingsWithdrawal(suite.ctx, testTenant, testActor, domain.SavingsWithdrawal{
				MemberID: "m1", Amount: d("100"), AvailableBalance: d("99.99"), Method: domain.PaymentCash,
			})
			return err
		}, apperrors.ErrInsufficientBalance},
		{"unknown payment method", func() error {
			_, err := suite.l.svc.Journal.BuildLoanDisbursement(suite.ctx, testTenant, testActor, domain.LoanDisbursement{
				BorrowerID: "b1", Principal: d("10"), Method: "CHEQUE",
			})
			return err
		}, apperrors.ErrAccountConfigurationMissing},
		{"non-positive deposit", func() error {
			_, err := suite.l.svc.Journal.BuildSavingsDeposit(suite.ctx, testTenant, testActor, domain.SavingsDeposit{
				MemberID: "m1", Amount: d("-5"), Method: domain.PaymentCash,
			})
			return err
		}, apperrors.ErrLedgerIntegrityViolation},
		{"zero stock adjustment", func() error {
			_, err := suite.l.svc.Journal.BuildStockAdjustment(suite.ctx, testTenant, testActor, domain.StockAdjustment{Amount: decimal.Zero})
			return err
		}, apperrors.ErrLedgerIntegrityViolation},
		{"receipt to unknown account", func() error {
			_, err := suite.l.svc.Journal.BuildPaymentReceipt(suite.ctx, testTenant, testActor, domain.PaymentReceipt{
				Amount: d("10"), Method: domain.PaymentQRIS, CreditAccountCode: "7-0000",
			})
			return err
		}, apperrors.ErrChartOfAccountsMisconfigured},
		{"settlement does not clear escrow", func() error {
			_, err := suite.l.svc.Journal.BuildRetailSettlement(suite.ctx, testTenant, testActor, domain.Settlement{
				Channel: domain.ChannelRetail, EscrowAmount: d("100"),
				Lines: []domain.SettlementLine{{Kind: domain.SettleRevenue, Amount: d("90")}},
			})
			return err
		}, apperrors.ErrLedgerIntegrityViolation},
		{"settlement kind of another channel", func() error {
			_, err := suite.l.svc.Journal.BuildRetailSettlement(suite.ctx, testTenant, testActor, domain.Settlement{
				Channel: domain.ChannelRetail, EscrowAmount: d("100"),
				Lines: []domain.SettlementLine{{Kind: domain.SettleDepositUsage, Amount: d("100")}},
			})
			return err
		}, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.ErrorIs(tt.build(), tt.err)
		})
	}
}

func (suite *JournalServiceTestSuite) TestBuilders_MissingAccount() {
	suite.Require().NoError(suite.l.svc.Account.DeactivateAccount(suite.ctx, testTenant, domain.CodeFinancingIncome, testActor))
	_, err := suite.l.svc.Journal.BuildLoanRepayment(suite.ctx, testTenant, testActor, domain.LoanRepayment{
		BorrowerID: "b1", Principal: d("100"), Interest: d("5"), Method: domain.PaymentBankTransfer,
	})
	suite.ErrorIs(err, apperrors.ErrChartOfAccountsMisconfigured)
	suite.Contains(err.Error(), domain.CodeFinancingIncome)

	// Without interest the financing income account is not needed.
	intent, err := suite.l.svc.Journal.BuildLoanRepayment(suite.ctx, testTenant, testActor, domain.LoanRepayment{
		BorrowerID: "b1", Principal: d("100"), Interest: decimal.Zero, Method: domain.PaymentBankTransfer,
	})
	suite.Require().NoError(err)
	suite.Len(intent.Journal.Lines, 2)
}

func (suite *JournalServiceTestSuite) TestBuilders_RetailSettlementWithCostOfGoods() {
	intent, err := suite.l.svc.Journal.BuildRetailSettlement(suite.ctx, testTenant, testActor, domain.Settlement{
		Channel:      domain.ChannelRetail,
		EscrowAmount: d("111"),
		Lines: []domain.SettlementLine{
			{Kind: domain.SettleRevenue, Amount: d("100")},
			{Kind: domain.SettleTaxPayable, Amount: d("11")},
			{Kind: domain.SettleCostOfGoods, Amount: d("60")},
		},
	})
	suite.Require().NoError(err)
	suite.Equal(domain.RefSettlement, intent.Journal.ReferenceType)
	suite.Len(intent.Journal.Lines, 5)
	suite.True(intent.Journal.TotalDebit().Equal(d("171")))
	suite.True(intent.Journal.TotalCredit().Equal(d("171")))
}
