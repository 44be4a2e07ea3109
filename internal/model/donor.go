package model

import "time"

// AvailabilityWindow is how long a donor profile stays active after
// registration. Re-registering resets the window.
const AvailabilityWindow = 14 * 24 * time.Hour

// BloodGroups lists the eight recognized ABO/Rh values. Matching is by
// exact equality; no compatibility substitution (O- is not treated as a
// universal donor).
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// ValidBloodGroup reports whether s is a recognized blood group.
func ValidBloodGroup(s string) bool {
	for _, g := range BloodGroups {
		if s == g {
			return true
		}
	}
	return false
}

// Donor represents a row in the `donors` table: a time-bounded availability
// record linking a user account to a blood group and a location. At most one
// row exists per user; registering again refreshes the existing row.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – owning account (users.id), unique.
//  Name         – donor display name.
//  BloodGroup   – one of BloodGroups.
//  Phone        – contact number for alerts.
//  District     – administrative district, one of Districts.
//  Hospital     – preferred hospital within the district.
//  Latitude     – optional map coordinate.
//  Longitude    – optional map coordinate.
//  IsAvailable  – false once deactivated or swept after expiry.
//  RegisteredAt – when the profile was (re)registered.
//  ExpiresAt    – RegisteredAt + AvailabilityWindow.
type Donor struct {
	ID           uint64     // donors.id
	UserID       uint64     // donors.user_id
	Name         string     // donors.name
	BloodGroup   string     // donors.blood_group
	Phone        string     // donors.phone
	District     string     // donors.district
	Hospital     string     // donors.hospital
	Latitude     *float64   // donors.latitude (nullable)
	Longitude    *float64   // donors.longitude (nullable)
	IsAvailable  bool       // donors.is_available
	RegisteredAt time.Time  // donors.registered_at
	ExpiresAt    time.Time  // donors.expires_at
}

// Active reports whether the profile should appear in search, map and
// matching results at the given instant. Reads must use this predicate (or
// its SQL equivalent) so expired donors disappear even before the background
// sweeper has run.
func (d Donor) Active(now time.Time) bool {
	return d.IsAvailable && now.Before(d.ExpiresAt)
}
