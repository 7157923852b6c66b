// Package timezone separates the two kinds of time a booking carries.
//
// Instants (booking creation, payment timestamps, token expiry) come from Now
// and are rendered in the hotel's zone, configured with APP_TIMEZONE as an
// IANA name such as "Asia/Manila". An unknown or empty name falls back to UTC.
//
// Calendar dates (check-in, check-out) have no time of day. ParseDate and
// TruncateDate keep them at midnight UTC and DaysBetween counts nights between
// them, so a stay never gains or loses a night across a DST change.
package timezone
