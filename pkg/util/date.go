package util

import "time"

// DateStamp formats t as the AAAA-MM-DD string the panel displays.
func DateStamp(t time.Time) string {
	return t.Format("2006-01-02")
}

// TimeStamp formats t as the HH:MM string the panel displays.
func TimeStamp(t time.Time) string {
	return t.Format("15:04")
}

// ClockStamp formats t as HH:MM:SS, used for the "updated at" line.
func ClockStamp(t time.Time) string {
	return t.Format("15:04:05")
}
