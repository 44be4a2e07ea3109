package model

import "time"

// Request urgency levels.
const (
	UrgencyNormal   = "normal"
	UrgencyUrgent   = "urgent"
	UrgencyCritical = "critical"
)

// Request lifecycle states. Pending is the only non-terminal state:
// pending -> fulfilled and pending -> cancelled are the legal transitions.
const (
	StatusPending   = "pending"
	StatusFulfilled = "fulfilled"
	StatusCancelled = "cancelled"
)

// ValidUrgency reports whether s is a recognized urgency level.
func ValidUrgency(s string) bool {
	return s == UrgencyNormal || s == UrgencyUrgent || s == UrgencyCritical
}

// ValidStatus reports whether s is a recognized request status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusFulfilled || s == StatusCancelled
}

// CanTransition reports whether a request may move from one status to
// another. Fulfilled and cancelled are terminal.
func CanTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	return to == StatusFulfilled || to == StatusCancelled
}

// Request represents a row in the `requests` table: a requester's
// solicitation for a blood group at a district/hospital.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – requester account (users.id).
//  RequesterName – name shown to contacted donors.
//  BloodGroup    – required group, one of BloodGroups.
//  District      – where the blood is needed, one of Districts.
//  Hospital      – hospital within the district.
//  Phone         – requester contact number.
//  Urgency       – normal, urgent or critical.
//  Status        – pending, fulfilled or cancelled.
//  CreatedAt     – creation timestamp.
//  FulfilledAt   – set exactly when status becomes fulfilled.
type Request struct {
	ID            uint64     // requests.id
	UserID        uint64     // requests.user_id
	RequesterName string     // requests.requester_name
	BloodGroup    string     // requests.blood_group
	District      string     // requests.district
	Hospital      string     // requests.hospital
	Phone         string     // requests.phone
	Urgency       string     // requests.urgency
	Status        string     // requests.status
	CreatedAt     time.Time  // requests.created_at
	FulfilledAt   *time.Time // requests.fulfilled_at (nullable)
}
