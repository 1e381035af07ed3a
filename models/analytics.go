package models

// PeriodMetrics are the raw metrics computed over one reporting window.
type PeriodMetrics struct {
	Revenue        float64 `json:"revenue"`       // sum of ServicePrice for bookings dated in the window, any status
	CompletedCount int     `json:"completedCount"`
	AverageTicket  float64 `json:"averageTicket"` // completed revenue / completed count, 0 when none
}

// MetricChange is a period-over-period percentage change. Pct is nil when
// both periods are zero ("no data"), which is distinct from a 0% change.
type MetricChange struct {
	Pct *float64 `json:"pct"`
}

// PeriodSummary compares a reporting window against the immediately
// preceding window of equal length.
type PeriodSummary struct {
	Start    string        `json:"start"` // "YYYY-MM-DD", inclusive
	End      string        `json:"end"`   // "YYYY-MM-DD", exclusive
	Current  PeriodMetrics `json:"current"`
	Previous PeriodMetrics `json:"previous"`

	RevenueChange   MetricChange `json:"revenueChange"`
	CompletedChange MetricChange `json:"completedChange"`
	TicketChange    MetricChange `json:"ticketChange"`
}
