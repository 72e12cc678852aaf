package handlers_test

import (
	"net/http"
	"time"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/SscSPs/marketplace_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func sampleJournal(id string, ref domain.ReferenceType) *domain.Journal {
	return &domain.Journal{
		JournalID:       id,
		TenantID:        testTenant,
		TransactionDate: day(2026, 2, 10),
		Description:     "sample",
		ReferenceType:   ref,
		Status:          domain.JournalPosted,
		Lines: []domain.JournalLine{
			{LineID: id + "-1", AccountID: "cash", Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
			{LineID: id + "-2", AccountID: "escrow", Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
		},
		AuditFields: domain.AuditFields{CreatedAt: time.Now(), CreatedBy: testActor},
	}
}

func (suite *HandlerTestSuite) TestListJournals_DefaultLimit() {
	next := "tok-2"
	suite.journalSvc.On("ListJournals", mock.Anything, testTenant,
		mock.MatchedBy(func(p domain.ListJournalsParams) bool { return p.Limit == 20 && p.NextToken == nil })).
		Return(&domain.ListJournalsResult{Journals: []domain.Journal{*sampleJournal("j-1", domain.RefManual)}, NextToken: &next}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalsResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Journals, 1)
	suite.True(resp.Journals[0].TotalDebit.Equal(resp.Journals[0].TotalCredit))
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListJournals_PassesToken() {
	suite.journalSvc.On("ListJournals", mock.Anything, testTenant,
		mock.MatchedBy(func(p domain.ListJournalsParams) bool {
			return p.Limit == 5 && p.NextToken != nil && *p.NextToken == "abc"
		})).
		Return(&domain.ListJournalsResult{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals?limit=5&nextToken=abc", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestListJournals_LimitOutOfRange() {
	w := suite.do(http.MethodGet, "/api/v1/journals?limit=500", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetJournal() {
	suite.journalSvc.On("GetJournal", mock.Anything, testTenant, "j-1").
		Return(sampleJournal("j-1", domain.RefManual), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journals/j-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JournalResponse
	suite.decode(w, &resp)
	suite.Equal("2026-02-10", resp.TransactionDate)
	suite.Len(resp.Lines, 2)
}

func (suite *HandlerTestSuite) TestVoidJournal_Success() {
	suite.journalSvc.On("GetJournal", mock.Anything, testTenant, "j-1").
		Return(sampleJournal("j-1", domain.RefSavingsDeposit), nil).Once()
	suite.journalSvc.On("VoidJournal", mock.Anything, testTenant, "j-1", testActor, "typo").
		Return(sampleJournal("v-1", domain.RefJournalVoid), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals/j-1/void", dto.VoidJournalRequest{Reason: "typo"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JournalResponse
	suite.decode(w, &resp)
	suite.Equal("v-1", resp.JournalID)
	suite.Equal(domain.RefJournalVoid, resp.ReferenceType)
}

func (suite *HandlerTestSuite) TestVoidJournal_RefusesSagaJournals() {
	for _, ref := range []domain.ReferenceType{domain.RefEscrowLock, domain.RefSettlement} {
		suite.journalSvc.On("GetJournal", mock.Anything, testTenant, "j-saga").
			Return(sampleJournal("j-saga", ref), nil).Once()

		w := suite.do(http.MethodPost, "/api/v1/journals/j-saga/void", dto.VoidJournalRequest{Reason: "undo"})
		suite.Equal(http.StatusConflict, w.Code, string(ref))
	}
	suite.journalSvc.AssertNotCalled(suite.T(), "VoidJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestVoidJournal_ClosedPeriod() {
	suite.journalSvc.On("GetJournal", mock.Anything, testTenant, "j-1").
		Return(sampleJournal("j-1", domain.RefManual), nil).Once()
	suite.journalSvc.On("VoidJournal", mock.Anything, testTenant, "j-1", testActor, "late").
		Return(nil, apperrors.ErrPeriodClosed).Once()

	w := suite.do(http.MethodPost, "/api/v1/journals/j-1/void", dto.VoidJournalRequest{Reason: "late"})
	suite.Equal(http.StatusConflict, w.Code)
}
