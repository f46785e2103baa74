package domain

// DisburseParams is the input data for the loan disbursement transaction.
type DisburseParams struct {
	BorrowerID int32  `json:"borrower_id"`
	AccountID  int32  `json:"account_id"`
	Amount     string `json:"amount"`
	TermMonths int32  `json:"term_months"`
}

// DisburseTxResult is the result of the loan disbursement transaction.
type DisburseTxResult struct {
	Loan    Loan    `json:"loan"`
	Account Account `json:"account"`
	Entry   Entry   `json:"entry"`
}

// SettleParams is the input data for the loan repayment transaction.
type SettleParams struct {
	LoanID     int32  `json:"loan_id"`
	BorrowerID int32  `json:"borrower_id"`
	AccountID  int32  `json:"account_id"`
	Amount     string `json:"amount"`
}

// SettleTxResult is the result of the loan repayment transaction.
//
// Applied is the part of the payment consumed by the loan; the account is
// debited exactly Applied, never the raw requested amount.
type SettleTxResult struct {
	Applied   string  `json:"applied"`
	Remaining string  `json:"remaining"`
	FullyPaid bool    `json:"fully_paid"`
	Account   Account `json:"account"`
	Entry     Entry   `json:"entry"`
}
