package models

import "time"

// AlertSeverity classifies derived system alerts
type AlertSeverity string

const (
	AlertInfo    AlertSeverity = "info"
	AlertWarning AlertSeverity = "warning"
	AlertError   AlertSeverity = "error"
)

// SystemAlert is computed on demand from aggregate statistics; alerts are
// never persisted.
type SystemAlert struct {
	ID        string        `json:"id"`
	Severity  AlertSeverity `json:"severity"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
	Resolved  bool          `json:"resolved"`
}

// DashboardStats aggregates the figures shown on the admin and manager
// dashboards.
type DashboardStats struct {
	TotalUsers      int     `json:"total_users"`
	ActiveUsers     int     `json:"active_users"`
	TotalRooms      int     `json:"total_rooms"`
	TotalBookings   int     `json:"total_bookings"`
	TotalRevenue    float64 `json:"total_revenue"`
	OccupancyRate   int     `json:"occupancy_rate"`
	AverageRating   float64 `json:"average_rating"`
	PendingBookings int     `json:"pending_bookings"`
	TodayCheckIns   int     `json:"today_check_ins"`
	TodayCheckOuts  int     `json:"today_check_outs"`
}
