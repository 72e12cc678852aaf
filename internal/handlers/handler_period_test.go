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

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (suite *HandlerTestSuite) TestCreatePeriod_Success() {
	start, end := day(2026, 1, 1), day(2026, 1, 31)
	suite.periodSvc.On("CreatePeriod", mock.Anything, testTenant,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(start) }),
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(end) }),
		testActor).
		Return(&domain.AccountingPeriod{PeriodID: "p-1", StartDate: start, EndDate: end, Status: domain.PeriodOpen}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/periods", dto.CreatePeriodRequest{StartDate: "2026-01-01", EndDate: "2026-01-31"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PeriodResponse
	suite.decode(w, &resp)
	suite.Equal("p-1", resp.PeriodID)
	suite.Equal("2026-01-31", resp.EndDate)
}

func (suite *HandlerTestSuite) TestCreatePeriod_BadDate() {
	w := suite.do(http.MethodPost, "/api/v1/periods", dto.CreatePeriodRequest{StartDate: "2026/01/01", EndDate: "2026-01-31"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreatePeriod_Overlap() {
	suite.periodSvc.On("CreatePeriod", mock.Anything, testTenant, mock.Anything, mock.Anything, testActor).
		Return(nil, apperrors.ErrConflict).Once()

	w := suite.do(http.MethodPost, "/api/v1/periods", dto.CreatePeriodRequest{StartDate: "2026-01-15", EndDate: "2026-02-15"})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestClosePeriod() {
	suite.periodSvc.On("ClosePeriod", mock.Anything, testTenant, "p-1", testActor, "month end").
		Return(&domain.AccountingPeriod{PeriodID: "p-1", Status: domain.PeriodClosed}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/periods/p-1/close", dto.PeriodActionRequest{Reason: "month end"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PeriodResponse
	suite.decode(w, &resp)
	suite.Equal(domain.PeriodClosed, resp.Status)
}

func (suite *HandlerTestSuite) TestClosePeriod_RequiresReason() {
	w := suite.do(http.MethodPost, "/api/v1/periods/p-1/close", `{}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestReopenPeriod_SuccessorClosed() {
	suite.periodSvc.On("ReopenPeriod", mock.Anything, testTenant, "p-1", testActor, "audit fix").
		Return(nil, apperrors.ErrSuccessorAlreadyClosed).Once()

	w := suite.do(http.MethodPost, "/api/v1/periods/p-1/reopen", dto.PeriodActionRequest{Reason: "audit fix"})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestListPeriods() {
	suite.periodSvc.On("ListPeriods", mock.Anything, testTenant).
		Return([]domain.AccountingPeriod{{PeriodID: "p-1"}, {PeriodID: "p-2"}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/periods", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.PeriodResponse
	suite.decode(w, &resp)
	suite.Len(resp, 2)
}

func (suite *HandlerTestSuite) TestOpeningBalances() {
	suite.periodSvc.On("OpeningBalances", mock.Anything, testTenant, "p-2").
		Return([]domain.OpeningBalance{{PeriodID: "p-2", AccountID: "acc-1", Balance: decimal.NewFromInt(40)}}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/periods/p-2/opening-balances", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.OpeningBalanceResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp, 1)
	suite.True(resp[0].Balance.Equal(decimal.NewFromInt(40)))
}
