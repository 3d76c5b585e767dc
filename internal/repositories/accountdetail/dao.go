package accountdetail

import (
	"database/sql"

	"github.com/Ramsey-B/dahlia/pkg/models"
)

const accountDetailTable = "account_details"

// AccountDetailRow is the raw store row. Every column is nullable; mapping is
// best-effort and an absent column becomes an unset model field.
type AccountDetailRow struct {
	AccountNo                sql.NullString  `db:"account_no"`
	CallINum                 sql.NullString  `db:"call_inum"`
	CollectionsSegmentDetail sql.NullString  `db:"collections_segment_detail"`
	PTPInd                   sql.NullString  `db:"ptp_ind"`
	DateLastPayment          sql.NullTime    `db:"date_last_payment"`
	PaymentDueDate           sql.NullTime    `db:"payment_due_date"`
	LastPaymentAmount        sql.NullFloat64 `db:"last_payment_amount"`
	CurrentBalance           sql.NullFloat64 `db:"current_balance"`
	TotalAmountDue           sql.NullFloat64 `db:"total_amount_due"`
	NumberBrokenPTP          sql.NullInt64   `db:"number_broken_ptp"`
	Instalment               sql.NullString  `db:"instalment"`
	SalaryDayOfMonth         sql.NullInt64   `db:"salary_day_of_month"`
	CustomerBankName         sql.NullString  `db:"customer_bank_name"`
	StorePrefName            sql.NullString  `db:"store_pref_name"`
	FPDIndicator             sql.NullString  `db:"fpd_indicator"`
	PrefPaymentMethodDesc    sql.NullString  `db:"pref_payment_method_desc"`
}

func ToAccountDetail(row *AccountDetailRow) models.AccountDetail {
	return models.AccountDetail{
		AccountNo:                nullableString(row.AccountNo),
		CallINum:                 nullableString(row.CallINum),
		CollectionsSegmentDetail: nullableString(row.CollectionsSegmentDetail),
		PTPInd:                   nullableString(row.PTPInd),
		DateLastPayment:          nullableDate(row.DateLastPayment),
		PaymentDueDate:           nullableDate(row.PaymentDueDate),
		LastPaymentAmount:        nullableFloat(row.LastPaymentAmount),
		CurrentBalance:           nullableFloat(row.CurrentBalance),
		TotalAmountDue:           nullableFloat(row.TotalAmountDue),
		NumberBrokenPTP:          nullableInt(row.NumberBrokenPTP),
		Instalment:               nullableString(row.Instalment),
		SalaryDayOfMonth:         nullableInt(row.SalaryDayOfMonth),
		CustomerBankName:         nullableString(row.CustomerBankName),
		StorePrefName:            nullableString(row.StorePrefName),
		FPDIndicator:             nullableString(row.FPDIndicator),
		PrefPaymentMethodDesc:    nullableString(row.PrefPaymentMethodDesc),
	}
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullableInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	i := v.Int64
	return &i
}

// nullableDate formats date columns the way the legacy API serialized them.
func nullableDate(v sql.NullTime) *string {
	if !v.Valid {
		return nil
	}
	s := v.Time.Format("2006-01-02")
	return &s
}
