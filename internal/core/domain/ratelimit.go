package domain

import (
	"fmt"
	"time"
)

// RateLimitPolicy configures the per-address transfer caps for real-value coins.
type RateLimitPolicy struct {
	DailyCap          float64
	ReferenceCurrency string
	Window            time.Duration
	MaxTxPerMinute    int
	MinuteWindow      time.Duration
}

// DefaultRateLimitPolicy is 20 EUR per 24h and 10 transactions per minute.
func DefaultRateLimitPolicy() RateLimitPolicy {
	return RateLimitPolicy{
		DailyCap:          20,
		ReferenceCurrency: "EUR",
		Window:            24 * time.Hour,
		MaxTxPerMinute:    10,
		MinuteWindow:      time.Minute,
	}
}

// RateLimitWindow is the persisted per-address usage record. Times are Unix milliseconds.
type RateLimitWindow struct {
	DailyTotal    float64 `json:"dailyTotal"`
	TxCount       int     `json:"txCount"`
	WindowStart   int64   `json:"windowStart"`
	MinuteTxCount int     `json:"minuteTxCount"`
	MinuteStart   int64   `json:"minuteStart"`
}

// NewRateLimitWindow opens both windows at now.
func NewRateLimitWindow(now time.Time) *RateLimitWindow {
	ms := now.UnixMilli()
	return &RateLimitWindow{WindowStart: ms, MinuteStart: ms}
}

// Roll resets whichever window has elapsed at now.
func (w *RateLimitWindow) Roll(now time.Time, p RateLimitPolicy) {
	ms := now.UnixMilli()
	if ms-w.WindowStart > p.Window.Milliseconds() {
		w.DailyTotal = 0
		w.TxCount = 0
		w.WindowStart = ms
	}
	if ms-w.MinuteStart > p.MinuteWindow.Milliseconds() {
		w.MinuteTxCount = 0
		w.MinuteStart = ms
	}
}

// Check returns a human-readable denial reason, or "" when amount fits both caps.
// Callers must Roll first.
func (w *RateLimitWindow) Check(amount float64, p RateLimitPolicy) (RejectionCode, string) {
	if w.DailyTotal+amount > p.DailyCap {
		return RejectDailyLimit, fmt.Sprintf("Daily limit exceeded: %.2f/%s %s used",
			w.DailyTotal, formatCap(p.DailyCap), p.ReferenceCurrency)
	}
	if w.MinuteTxCount >= p.MaxTxPerMinute {
		return RejectMinuteLimit, fmt.Sprintf("Too many transactions: max %d per minute", p.MaxTxPerMinute)
	}
	return "", ""
}

// Record books a transfer against both windows.
func (w *RateLimitWindow) Record(amount float64) {
	w.DailyTotal += amount
	w.TxCount++
	w.MinuteTxCount++
}

// Status reports usage as seen at now without mutating the window.
func (w *RateLimitWindow) Status(now time.Time, p RateLimitPolicy) RateLimitStatus {
	used := w.DailyTotal
	start := w.WindowStart
	if now.UnixMilli()-w.WindowStart > p.Window.Milliseconds() {
		used = 0
		start = now.UnixMilli()
	}
	return RateLimitStatus{
		DailyUsed:      used,
		DailyLimit:     p.DailyCap,
		DailyRemaining: p.DailyCap - used,
		Currency:       p.ReferenceCurrency,
		ResetsAt:       time.UnixMilli(start).Add(p.Window).UTC(),
	}
}

// RateLimitStatus is the public view of a rate-limit window.
type RateLimitStatus struct {
	DailyUsed      float64   `json:"dailyUsed"`
	DailyLimit     float64   `json:"dailyLimit"`
	DailyRemaining float64   `json:"dailyRemaining"`
	Currency       string    `json:"currency"`
	ResetsAt       time.Time `json:"resetsAt"`
}

func formatCap(v float64) string {
	return fmt.Sprintf("%g", v)
}
