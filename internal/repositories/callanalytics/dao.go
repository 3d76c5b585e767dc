package callanalytics

import (
	"database/sql"

	"github.com/Ramsey-B/dahlia/pkg/models"
)

const callAnalyticsTable = "call_analytics"

// CallAnalyticsRow is the raw store row for one past-call analytics record.
type CallAnalyticsRow struct {
	CallINum          sql.NullString `db:"call_inum"`
	CallTypeValue     sql.NullString `db:"calltype_value"`
	AIRecommendations sql.NullString `db:"ai_recommendations"`
	Negligence        sql.NullString `db:"negligence"`
	PastCallSummary   sql.NullString `db:"pastcallsummary"`
	CallStrategy      sql.NullString `db:"call_strategy"`
	SentimentAnalysis sql.NullString `db:"sentiment_analysis"`
	Tone              sql.NullString `db:"tone"`
}

func ToCallAnalytics(row *CallAnalyticsRow) models.CallAnalytics {
	return models.CallAnalytics{
		CorrelationKey:    nullableString(row.CallINum),
		CallTypeValue:     nullableString(row.CallTypeValue),
		AIRecommendations: nullableString(row.AIRecommendations),
		Negligence:        nullableString(row.Negligence),
		PastCallSummary:   nullableString(row.PastCallSummary),
		CallStrategy:      nullableString(row.CallStrategy),
		SentimentAnalysis: nullableString(row.SentimentAnalysis),
		Tone:              nullableString(row.Tone),
	}
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
