package models

// AccountDetail is one collections account record. Every field is a pointer:
// a column the store did not return stays nil and serializes as null, it is
// never replaced with a zero business value.
type AccountDetail struct {
	AccountNo                *string  `json:"account_no"`
	CallINum                 *string  `json:"call_inum"`
	CollectionsSegmentDetail *string  `json:"collections_segment_detail"`
	PTPInd                   *string  `json:"ptp_ind"`
	DateLastPayment          *string  `json:"date_last_payment"`
	PaymentDueDate           *string  `json:"payment_due_date"`
	LastPaymentAmount        *float64 `json:"last_payment_amount"`
	CurrentBalance           *float64 `json:"current_balance"`
	TotalAmountDue           *float64 `json:"total_amount_due"`
	NumberBrokenPTP          *int64   `json:"number_broken_ptp"`
	Instalment               *string  `json:"instalment"`
	SalaryDayOfMonth         *int64   `json:"salary_day_of_month"`
	CustomerBankName         *string  `json:"customer_bank_name"`
	StorePrefName            *string  `json:"store_pref_name"`
	FPDIndicator             *string  `json:"fpd_indicator"`
	PrefPaymentMethodDesc    *string  `json:"pref_payment_method_desc"`
}

// CorrelationKey returns the value linking this account to its call analytics
// rows, or "" when the account has none.
func (a AccountDetail) CorrelationKey() string {
	if a.CallINum == nil {
		return ""
	}
	return *a.CallINum
}
