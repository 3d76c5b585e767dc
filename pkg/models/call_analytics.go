package models

// CallAnalytics is one AI-derived analytics record for a past call. Zero or
// more rows share an account's correlation key. The wire name customfield03
// is kept for compatibility with the assistant client; the column itself is
// the correlation key.
type CallAnalytics struct {
	CorrelationKey    *string `json:"customfield03"`
	CallTypeValue     *string `json:"calltype_value"`
	AIRecommendations *string `json:"ai_recommendations"`
	Negligence        *string `json:"negligence"`
	PastCallSummary   *string `json:"pastcallsummary"`
	CallStrategy      *string `json:"call_strategy"`
	SentimentAnalysis *string `json:"sentiment_analysis"`
	Tone              *string `json:"tone"`
}
