package handlers_test

import (
	"net/http"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/SscSPs/marketplace_ledger/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestListStuck_DefaultThresholdAndTenantFilter() {
	suite.reconcileSvc.On("ListStuck", mock.Anything, suite.defaultMinutes).
		Return([]domain.MarketplaceTransaction{
			{TransactionID: "tx-1", TenantID: testTenant, Status: domain.TxJournalLocked},
			{TransactionID: "tx-2", TenantID: "tenant-b", Status: domain.TxFulfilled},
		}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reconcile/stuck", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp []domain.MarketplaceTransaction
	suite.decode(w, &resp)
	suite.Require().Len(resp, 1)
	suite.Equal("tx-1", resp[0].TransactionID)
}

func (suite *HandlerTestSuite) TestListStuck_BadThreshold() {
	w := suite.do(http.MethodGet, "/api/v1/reconcile/stuck?olderThanMinutes=-3", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestReconcile_Override() {
	zero := 0
	suite.reconcileSvc.On("Reconcile", mock.Anything, 0).
		Return([]domain.ReconcileOutcome{
			{TransactionID: "tx-1", TenantID: testTenant, PreviousStatus: domain.TxJournalLocked, Action: domain.ReconcileReversed},
			{TransactionID: "tx-2", TenantID: "tenant-b", PreviousStatus: domain.TxFulfilled, Action: domain.ReconcileSettled},
		}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/reconcile", dto.ReconcileRequest{OlderThanMinutes: &zero})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ReconcileResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Outcomes, 1)
	suite.Equal(domain.ReconcileReversed, resp.Outcomes[0].Action)
}

func (suite *HandlerTestSuite) TestReconcile_EmptyBodyUsesDefault() {
	suite.reconcileSvc.On("Reconcile", mock.Anything, suite.defaultMinutes).
		Return([]domain.ReconcileOutcome{}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/reconcile", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestReconcile_Failure() {
	suite.reconcileSvc.On("Reconcile", mock.Anything, suite.defaultMinutes).
		Return(nil, apperrors.NewAppError(500, "list stuck", nil)).Once()

	w := suite.do(http.MethodPost, "/api/v1/reconcile", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
}
