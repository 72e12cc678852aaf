package domain

// Well-known account codes of the default chart.
const (
	CodeCash               = "1-1100"
	CodeBank               = "1-1200"
	CodeInventory          = "1-1300"
	CodePpobDeposit        = "1-1400"
	CodeLoanReceivable     = "1-1500"
	CodeEscrowLiability    = "2-1100"
	CodeTaxPayable         = "2-1200"
	CodeConsignmentPayable = "2-1300"
	CodeMemberSavings      = "2-1400"
	CodeAccountsPayable    = "2-1500"
	CodeOwnerEquity        = "3-1000"
	CodeSalesRevenue       = "4-1000"
	CodeSalesReturns       = "4-1100"
	CodePpobFeeRevenue     = "4-2000"
	CodeFinancingIncome    = "4-3000"
	CodeCostOfGoodsSold    = "5-1000"
	CodeInventoryAdjust    = "5-2000"
)

// DefaultChart is seeded for every new tenant. Parents precede children.
var DefaultChart = []AccountSpec{
	{Code: "1", Name: "Assets", AccountType: Asset},
	{Code: "2", Name: "Liabilities", AccountType: Liability},
	{Code: "3", Name: "Equity", AccountType: Equity},
	{Code: "4", Name: "Revenue", AccountType: Revenue},
	{Code: "5", Name: "Expenses", AccountType: Expense},
	{Code: CodeCash, Name: "Cash", AccountType: Asset, ParentCode: "1"},
	{Code: CodeBank, Name: "Bank", AccountType: Asset, ParentCode: "1"},
	{Code: CodeInventory, Name: "Inventory", AccountType: Asset, ParentCode: "1"},
	{Code: CodePpobDeposit, Name: "PPOB Deposit", AccountType: Asset, ParentCode: "1"},
	{Code: CodeLoanReceivable, Name: "Loan Receivable", AccountType: Asset, ParentCode: "1"},
	{Code: CodeEscrowLiability, Name: "Escrow Liability", AccountType: Liability, ParentCode: "2"},
	{Code: CodeTaxPayable, Name: "Tax Payable", AccountType: Liability, ParentCode: "2"},
	{Code: CodeConsignmentPayable, Name: "Consignment Payable", AccountType: Liability, ParentCode: "2"},
	{Code: CodeMemberSavings, Name: "Member Savings", AccountType: Liability, ParentCode: "2"},
	{Code: CodeAccountsPayable, Name: "Accounts Payable", AccountType: Liability, ParentCode: "2"},
	{Code: CodeOwnerEquity, Name: "Owner Equity", AccountType: Equity, ParentCode: "3"},
	{Code: CodeSalesRevenue, Name: "Sales Revenue", AccountType: Revenue, ParentCode: "4"},
	{Code: CodeSalesReturns, Name: "Sales Returns", AccountType: Revenue, ParentCode: "4"},
	{Code: CodePpobFeeRevenue, Name: "PPOB Fee Revenue", AccountType: Revenue, ParentCode: "4"},
	{Code: CodeFinancingIncome, Name: "Financing Income", AccountType: Revenue, ParentCode: "4"},
	{Code: CodeCostOfGoodsSold, Name: "Cost of Goods Sold", AccountType: Expense, ParentCode: "5"},
	{Code: CodeInventoryAdjust, Name: "Inventory Adjustment", AccountType: Expense, ParentCode: "5"},
}

// PaymentAccountCodes routes each payment method to the account it debits on lock.
var PaymentAccountCodes = map[PaymentMethod]string{
	PaymentCash:            CodeCash,
	PaymentBankTransfer:    CodeBank,
	PaymentQRIS:            CodeBank,
	PaymentInternalBalance: CodeMemberSavings,
}

// SettlementAccountCodes routes each escrow-clearing settlement kind to the account it credits.
var SettlementAccountCodes = map[SettlementLineKind]string{
	SettleRevenue:            CodeSalesRevenue,
	SettlePpobFeeRevenue:     CodePpobFeeRevenue,
	SettleTaxPayable:         CodeTaxPayable,
	SettleConsignmentPayable: CodeConsignmentPayable,
	SettleDepositUsage:       CodePpobDeposit,
}
