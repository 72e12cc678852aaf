package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account's balance increases.
type NormalBalance string

const (
	NormalDebit  NormalBalance = "DEBIT"
	NormalCredit NormalBalance = "CREDIT"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// NormalBalance derives the normal balance from the account type.
// ASSET and EXPENSE accounts are debit-normal, everything else credit-normal.
func (t AccountType) NormalBalance() NormalBalance {
	switch t {
	case Asset, Expense:
		return NormalDebit
	default:
		return NormalCredit
	}
}

// Account represents a chart-of-accounts node for a tenant.
type Account struct {
	AccountID     string        `json:"accountID"`
	TenantID      string        `json:"tenantID"`
	Code          string        `json:"code"` // Unique per tenant, e.g. "2-1100"
	Name          string        `json:"name"`
	AccountType   AccountType   `json:"accountType"`
	NormalBalance NormalBalance `json:"normalBalance"`
	ParentCode    string        `json:"parentCode,omitempty"` // Empty for root accounts
	IsActive      bool          `json:"isActive"`
	AuditFields
}

// AccountSpec describes an account a caller wants to exist.
type AccountSpec struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	ParentCode  string      `json:"parentCode,omitempty"`
}
