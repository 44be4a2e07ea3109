package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bloodlink/bloodlink-tn/internal/model"
)

func alertRequest(urgency string) model.Request {
	return model.Request{
		RequesterName: "Arun",
		BloodGroup:    "O+",
		District:      "Chennai",
		Hospital:      "Apollo Hospital",
		Phone:         "9876543210",
		Urgency:       urgency,
	}
}

func TestAlertMessageUrgencyPrefix(t *testing.T) {
	assert.Equal(t,
		"Blood needed: O+ required at Apollo Hospital, Chennai. Contact: Arun - 9876543210. From BloodLink TN",
		AlertMessage(alertRequest(model.UrgencyNormal)))

	assert.Contains(t, AlertMessage(alertRequest(model.UrgencyUrgent)), "URGENT Blood needed:")
	assert.Contains(t, AlertMessage(alertRequest(model.UrgencyCritical)), "CRITICAL Blood needed:")
}

func TestAlertMessageUnknownUrgencyFallsBack(t *testing.T) {
	msg := AlertMessage(alertRequest("whatever"))
	assert.Contains(t, msg, "Blood needed:")
	assert.NotContains(t, msg, "URGENT")
}

func TestContactMessage(t *testing.T) {
	msg := ContactMessage("Please call me about donating.", "9000000000")
	assert.Equal(t, "BloodLink TN: Please call me about donating. Requester contact: 9000000000", msg)
}
