package models

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID     string      `db:"account_id"`
	TenantID      string      `db:"tenant_id"`
	Code          string      `db:"code"`
	Name          string      `db:"name"`
	AccountType   AccountType `db:"account_type"`
	NormalBalance string      `db:"normal_balance"`
	ParentCode    *string     `db:"parent_code"` // Nullable
	IsActive      bool        `db:"is_active"`
	AuditFields
}
