package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

// Validation runs before any repository access, so these tests exercise the
// rejection paths with nil repositories.

func postJSON(t *testing.T, h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestDonorRegisterValidation(t *testing.T) {
	h := NewDonorHandler(nil)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing fields", `{}`, "required"},
		{"bad blood group", `{"name":"A","blood_group":"Z+","phone":"1","district":"Chennai","hospital":"H"}`, "blood group"},
		{"bad district", `{"name":"A","blood_group":"O+","phone":"1","district":"Atlantis","hospital":"H"}`, "district"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.Register, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestRequestCreateValidation(t *testing.T) {
	h := NewRequestHandler(nil, nil)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing fields", `{}`, "required"},
		{"bad blood group", `{"requester_name":"R","blood_group":"XX","district":"Chennai","hospital":"H","phone":"1"}`, "blood group"},
		{"bad district", `{"requester_name":"R","blood_group":"O+","district":"Nowhere","hospital":"H","phone":"1"}`, "district"},
		{"bad urgency", `{"requester_name":"R","blood_group":"O+","district":"Chennai","hospital":"H","phone":"1","urgency":"asap"}`, "urgency"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.Create, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestHospitalDistricts(t *testing.T) {
	h := NewHospitalHandler(nil)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	assert.NoError(t, h.Districts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Chennai")
	assert.Contains(t, rec.Body.String(), "Madurai")
}

func TestHospitalByDistrictRejectsUnknown(t *testing.T) {
	h := NewHospitalHandler(nil)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("district")
	c.SetParamValues("Gotham")
	assert.NoError(t, h.ByDistrict(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
