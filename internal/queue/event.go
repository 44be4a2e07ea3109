// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into SMS deliveries.
package queue

import (
	"fmt"

	"github.com/bloodlink/bloodlink-tn/internal/model"
)

// AlertQueueName is the durable queue carrying donor alerts.
const AlertQueueName = "donor.alert"

// DonorAlertEvent is published once per donor to be notified, either when a
// blood request is created or when a requester contacts a donor directly.
// It carries everything a delivery worker needs without querying the
// primary database.
type DonorAlertEvent struct {
	RequestID  uint64 `json:"request_id,omitempty"`
	DonorID    uint64 `json:"donor_id"`
	DonorName  string `json:"donor_name"`
	Phone      string `json:"phone"`
	BloodGroup string `json:"blood_group"`
	District   string `json:"district"`
	Message    string `json:"message"`
	CreatedAt  string `json:"created_at"`
}

// urgencyText maps a request urgency to the lead-in of the alert text.
var urgencyText = map[string]string{
	model.UrgencyNormal:   "Blood",
	model.UrgencyUrgent:   "URGENT Blood",
	model.UrgencyCritical: "CRITICAL Blood",
}

// AlertMessage builds the SMS text sent to donors matching a request.
func AlertMessage(req model.Request) string {
	lead, ok := urgencyText[req.Urgency]
	if !ok {
		lead = urgencyText[model.UrgencyNormal]
	}
	return fmt.Sprintf("%s needed: %s required at %s, %s. Contact: %s - %s. From BloodLink TN",
		lead, req.BloodGroup, req.Hospital, req.District, req.RequesterName, req.Phone)
}

// ContactMessage builds the SMS text for a direct requester-to-donor
// contact with a free-form note.
func ContactMessage(note, requesterPhone string) string {
	return fmt.Sprintf("BloodLink TN: %s Requester contact: %s", note, requesterPhone)
}
