package models

// ConsolidatedView joins one account with every analytics row sharing its
// correlation key, plus the rendered report table. It is assembled per
// request and never persisted.
type ConsolidatedView struct {
	AccountNumber  string          `json:"account_number"`
	AccountDetails *AccountDetail  `json:"account_details"`
	CallBIData     []CallAnalytics `json:"call_bi_data"`
	CallINum       string          `json:"call_inum"`
	Table          string          `json:"table"`
	Message        string          `json:"message"`
}
