package handlers_test

import (
	"net/http"
	"strings"

	"github.com/SscSPs/marketplace_ledger/internal/apperrors"
	"github.com/SscSPs/marketplace_ledger/internal/core/domain"
	"github.com/SscSPs/marketplace_ledger/internal/dto"
	"github.com/SscSPs/marketplace_ledger/internal/handlers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

const retailBody = `{
	"referenceID": "POS-1",
	"items": [{"sku": "SKU-1", "quantity": 2, "unitPrice": "50", "unitCost": "30"}],
	"payments": [{"method": "CASH", "amount": "100"}]
}`

func settledResult(id string) *domain.CheckoutResult {
	return &domain.CheckoutResult{
		Transaction: domain.MarketplaceTransaction{
			TransactionID: id,
			TenantID:      testTenant,
			Type:          domain.ChannelRetail,
			Status:        domain.TxSettled,
			Amount:        decimal.NewFromInt(100),
		},
		Operational: &domain.OperationalRecord{ID: "so-1", Channel: domain.ChannelRetail},
	}
}

func (suite *HandlerTestSuite) TestCheckoutRetail_PassesIdempotencyKey() {
	suite.marketplaceSvc.On("CheckoutRetail", mock.Anything, testTenant, testActor,
		mock.MatchedBy(func(o domain.RetailOrder) bool {
			return o.ReferenceID == "POS-1" && len(o.Items) == 1 && o.Items[0].Quantity == 2 &&
				len(o.Payments) == 1 && o.Payments[0].Amount.Equal(decimal.NewFromInt(100))
		}),
		mock.MatchedBy(func(k *string) bool { return k != nil && *k == "key-1" })).
		Return(settledResult("tx-1"), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/checkout/retail", retailBody, handlers.IdempotencyKeyHeader, "key-1")

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.CheckoutResult
	suite.decode(w, &resp)
	suite.Equal("tx-1", resp.Transaction.TransactionID)
	suite.Equal(domain.TxSettled, resp.Transaction.Status)
}

func (suite *HandlerTestSuite) TestCheckoutRetail_NoKey() {
	suite.marketplaceSvc.On("CheckoutRetail", mock.Anything, testTenant, testActor, mock.Anything,
		mock.MatchedBy(func(k *string) bool { return k == nil })).
		Return(settledResult("tx-2"), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/checkout/retail", retailBody)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestCheckoutRetail_UnknownPaymentMethod() {
	body := strings.Replace(retailBody, "CASH", "CRYPTO", 1)
	w := suite.do(http.MethodPost, "/api/v1/checkout/retail", body)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCheckoutRetail_InternalBalanceNeedsMember() {
	body := strings.Replace(retailBody, "CASH", "INTERNAL_BALANCE", 1)
	w := suite.do(http.MethodPost, "/api/v1/checkout/retail", body)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCheckoutRetail_KeyTooLong() {
	w := suite.do(http.MethodPost, "/api/v1/checkout/retail", retailBody, handlers.IdempotencyKeyHeader, strings.Repeat("k", 200))
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCheckoutRetail_ErrorMapping() {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.ErrLedgerIntegrityViolation, http.StatusBadRequest},
		{apperrors.ErrConflict, http.StatusConflict},
		{apperrors.ErrPeriodClosed, http.StatusConflict},
		{apperrors.ErrChartOfAccountsMisconfigured, http.StatusUnprocessableEntity},
		{apperrors.ErrTransactionReversed, http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		suite.marketplaceSvc.On("CheckoutRetail", mock.Anything, testTenant, testActor, mock.Anything, mock.Anything).
			Return(nil, tc.err).Once()
		w := suite.do(http.MethodPost, "/api/v1/checkout/retail", retailBody)
		suite.Equal(tc.code, w.Code, tc.err.Error())
	}
}

func (suite *HandlerTestSuite) TestCheckoutPpob() {
	body := `{
		"productCode": "PLN-50",
		"customerNo": "5300001",
		"basePrice": "50000",
		"adminFee": "2500",
		"payments": [{"method": "INTERNAL_BALANCE", "amount": "52500", "memberID": "m-9"}]
	}`
	suite.marketplaceSvc.On("CheckoutPpob", mock.Anything, testTenant, testActor,
		mock.MatchedBy(func(o domain.PpobOrder) bool {
			return o.ProductCode == "PLN-50" && o.Payments[0].MemberID == "m-9" && o.AdminFee.Equal(decimal.NewFromInt(2500))
		}),
		mock.Anything).
		Return(settledResult("tx-3"), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/checkout/ppob", body)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestGetTransaction_OtherTenant() {
	suite.marketplaceSvc.On("GetTransaction", mock.Anything, testTenant, "tx-foreign").
		Return(nil, apperrors.NewNotFoundError("transaction tx-foreign")).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/tx-foreign", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestReverseTransaction() {
	locked := &domain.MarketplaceTransaction{TransactionID: "tx-1", TenantID: testTenant, Status: domain.TxJournalLocked}
	reversed := *locked
	reversed.Status = domain.TxReversed
	suite.marketplaceSvc.On("GetTransaction", mock.Anything, testTenant, "tx-1").Return(locked, nil).Once()
	suite.marketplaceSvc.On("ReverseTransaction", mock.Anything, "tx-1", testActor, "customer cancelled").
		Return(&reversed, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/tx-1/reverse", dto.ReverseTransactionRequest{Reason: "customer cancelled"})

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.MarketplaceTransaction
	suite.decode(w, &resp)
	suite.Equal(domain.TxReversed, resp.Status)
}

func (suite *HandlerTestSuite) TestReverseTransaction_Settled() {
	settled := &domain.MarketplaceTransaction{TransactionID: "tx-1", TenantID: testTenant, Status: domain.TxSettled}
	suite.marketplaceSvc.On("GetTransaction", mock.Anything, testTenant, "tx-1").Return(settled, nil).Once()
	suite.marketplaceSvc.On("ReverseTransaction", mock.Anything, "tx-1", testActor, "too late").
		Return(nil, apperrors.ErrInvalidStateTransition).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/tx-1/reverse", dto.ReverseTransactionRequest{Reason: "too late"})
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestReverseTransaction_ForeignTenantNeverReversed() {
	suite.marketplaceSvc.On("GetTransaction", mock.Anything, testTenant, "tx-other").
		Return(nil, apperrors.NewNotFoundError("transaction tx-other")).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions/tx-other/reverse", dto.ReverseTransactionRequest{Reason: "x"})

	suite.Equal(http.StatusNotFound, w.Code)
	suite.marketplaceSvc.AssertNotCalled(suite.T(), "ReverseTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
