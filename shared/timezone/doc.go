// Package timezone provides timezone and calendar-date utilities for the application.
//
// Usage Examples:
//
//  1. Timestamps in app timezone:
//     now := timezone.Now()                    // reservation createdAt, provider timestamps
//
//  2. Calendar dates for stays:
//     day, err := timezone.ParseDate("2006-01-02", "2026-02-10")
//     day = timezone.Date(someTime)            // midnight UTC of the same calendar day
//
// The timezone is configured via the APP_TIMEZONE environment variable
// (e.g. "Africa/Nairobi") and is automatically initialized when the package is imported.
package timezone
