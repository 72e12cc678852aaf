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

func (suite *HandlerTestSuite) TestEnsureAccount_Success() {
	spec := domain.AccountSpec{Code: "1-1100", Name: "Cash", AccountType: domain.Asset}
	suite.accountSvc.On("EnsureAccount", mock.Anything, testTenant, spec, testActor).
		Return(&domain.Account{
			AccountID:     "acc-1",
			TenantID:      testTenant,
			Code:          spec.Code,
			Name:          spec.Name,
			AccountType:   domain.Asset,
			NormalBalance: domain.NormalDebit,
			IsActive:      true,
		}, nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts", dto.EnsureAccountRequest{
		Code: "1-1100", Name: "Cash", AccountType: domain.Asset,
	})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.decode(w, &resp)
	suite.Equal("acc-1", resp.AccountID)
	suite.Equal(domain.NormalDebit, resp.NormalBalance)
}

func (suite *HandlerTestSuite) TestEnsureAccount_InvalidType() {
	w := suite.do(http.MethodPut, "/api/v1/accounts", `{"code":"9-9999","name":"Bad","accountType":"CONTRA"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.accountSvc.AssertNotCalled(suite.T(), "EnsureAccount")
}

func (suite *HandlerTestSuite) TestEnsureAccount_TypeChangeConflicts() {
	suite.accountSvc.On("EnsureAccount", mock.Anything, testTenant, mock.Anything, testActor).
		Return(nil, apperrors.ErrConflict).Once()

	w := suite.do(http.MethodPut, "/api/v1/accounts", dto.EnsureAccountRequest{
		Code: "1-1100", Name: "Cash", AccountType: domain.Revenue,
	})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestSeedAccounts() {
	suite.accountSvc.On("SeedDefaultChart", mock.Anything, testTenant, testActor).
		Return([]domain.Account{{AccountID: "a", Code: "1-1100"}, {AccountID: "b", Code: "2-1100"}}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts/seed", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	suite.decode(w, &resp)
	suite.Len(resp, 2)
}

func (suite *HandlerTestSuite) TestListAccounts_ServiceErrorHidesDetail() {
	suite.accountSvc.On("ListAccounts", mock.Anything, testTenant).
		Return(nil, apperrors.NewAppError(500, "connection reset by peer", nil)).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts", nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.NotContains(w.Body.String(), "connection reset")
}

func (suite *HandlerTestSuite) TestGetAccount_NotFound() {
	suite.accountSvc.On("GetAccount", mock.Anything, testTenant, "7-0000").
		Return(nil, apperrors.NewNotFoundError("account 7-0000")).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/7-0000", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestGetAccountBalance_AsOf() {
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	suite.journalSvc.On("AccountBalance", mock.Anything, testTenant, "2-1100",
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(asOf) })).
		Return(decimal.NewFromInt(250), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/2-1100/balance?asOf=2026-03-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountBalanceResponse
	suite.decode(w, &resp)
	suite.Equal("2026-03-31", resp.AsOf)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(250)))
}

func (suite *HandlerTestSuite) TestGetAccountBalance_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/2-1100/balance?asOf=31-03-2026", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeactivateAccount() {
	suite.accountSvc.On("DeactivateAccount", mock.Anything, testTenant, "5-1100", testActor).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/accounts/5-1100", nil)
	suite.Equal(http.StatusNoContent, w.Code)
}
