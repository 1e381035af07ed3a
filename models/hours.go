package models

import "time"

// BusinessHours holds the opening schedule for a single weekday.
// At most one row exists per weekday; when IsClosed is set the open/close
// times are ignored.
type BusinessHours struct {
	Weekday   int    `bson:"weekday" json:"weekday"`     // 0 = Sunday ... 6 = Saturday
	OpenTime  string `bson:"open_time" json:"openTime"`  // "HH:MM", 24h local time
	CloseTime string `bson:"close_time" json:"closeTime"`
	IsClosed  bool   `bson:"is_closed" json:"isClosed"`
}

// BlockedDay is an operator-declared exclusion date. Its presence overrides
// BusinessHours for that date.
type BlockedDay struct {
	Date      string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Reason    string    `bson:"reason" json:"reason"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
