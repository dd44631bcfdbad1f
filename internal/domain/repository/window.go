package repository

// MaxWindowDays is the longest lookback the flip stats API serves.
const MaxWindowDays = 7

// DefaultWindowDays is used when a caller does not pick a window.
const DefaultWindowDays = MaxWindowDays

// IsValidWindow returns true if days is a supported lookback.
func IsValidWindow(days int) bool {
	return days >= 1 && days <= MaxWindowDays
}
