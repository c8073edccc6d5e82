package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firewatch/internal/models"
	"firewatch/internal/service"
)

func doAuthorized(r http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	r.ServeHTTP(w, req)
	return w
}

func TestBuildingOccupancy(t *testing.T) {
	occ := &mockOccupancy{building: models.BuildingOccupancy{
		TotalPeople: 7,
		Details: []models.RoomOccupancy{
			{RoomID: "R101", PeopleCount: 4},
			{RoomID: "R202", PeopleCount: 3},
		},
	}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Occupancy: occ}
	r := newTestRouter(s)

	// 401 without a token.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/people/", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth, got %d", w.Code)
	}

	w = doAuthorized(r, http.MethodGet, "/api/v1/people/")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Status      string                 `json:"status"`
		TotalPeople int                    `json:"total_people"`
		Details     []models.RoomOccupancy `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != statusSuccess || resp.TotalPeople != 7 || len(resp.Details) != 2 {
		t.Fatalf("bad response: %+v", resp)
	}
}

func TestRoomOccupancy(t *testing.T) {
	occ := &mockOccupancy{room: &models.RoomOccupancy{RoomID: "R101", PeopleCount: 4}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Occupancy: occ}
	r := newTestRouter(s)

	w := doAuthorized(r, http.MethodGet, "/api/v1/people/R101")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	if occ.lastRoom != "R101" {
		t.Fatalf("service asked for %q", occ.lastRoom)
	}
	var resp struct {
		Status      string `json:"status"`
		RoomID      string `json:"roomId"`
		PeopleCount int    `json:"people_count"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusSuccess || resp.RoomID != "R101" || resp.PeopleCount != 4 {
		t.Fatalf("bad response: %+v", resp)
	}
}

func TestRoomOccupancy_UnknownRoomIs404(t *testing.T) {
	occ := &mockOccupancy{room: nil}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Occupancy: occ}
	r := newTestRouter(s)

	w := doAuthorized(r, http.MethodGet, "/api/v1/people/R999")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", w.Code, w.Body.String())
	}
	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != statusError || resp.Message != "Room 'R999' not found." {
		t.Fatalf("bad response: %+v", resp)
	}
}

func TestListIncidents(t *testing.T) {
	inc := &mockIncidents{resp: []models.Incident{
		{ID: "i-1", RoomID: "R101", AlertTime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Incidents: inc}
	r := newTestRouter(s)

	w := doAuthorized(r, http.MethodGet, "/api/v1/incidents")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var got []models.Incident
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got[0].RoomID != "R101" {
		t.Fatalf("bad incidents: %+v", got)
	}
}

func TestListIncidents_ServiceFailureIs500(t *testing.T) {
	inc := &mockIncidents{err: errors.New("db locked")}
	s := &service.Service{Authorization: &mockAuth{parseID: 1}, Incidents: inc}
	r := newTestRouter(s)

	w := doAuthorized(r, http.MethodGet, "/api/v1/incidents")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
