package handlers

import (
	"context"
	"net/http"

	"firewatch/internal/models"
	"firewatch/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockIngest struct {
	err        error
	calls      int
	lastParams service.ReadingParams
}

func (m *mockIngest) Ingest(ctx context.Context, p service.ReadingParams) error {
	m.calls++
	m.lastParams = p
	return m.err
}

type mockLiveData struct {
	data models.LiveData
	err  error
}

func (m *mockLiveData) GetLiveData(ctx context.Context) (models.LiveData, error) {
	return m.data, m.err
}

type mockOccupancy struct {
	room     *models.RoomOccupancy
	roomErr  error
	building models.BuildingOccupancy
	bldErr   error
	lastRoom string
}

func (m *mockOccupancy) GetRoom(ctx context.Context, roomID string) (*models.RoomOccupancy, error) {
	m.lastRoom = roomID
	return m.room, m.roomErr
}
func (m *mockOccupancy) GetBuilding(ctx context.Context) (models.BuildingOccupancy, error) {
	return m.building, m.bldErr
}

type mockIncidents struct {
	resp []models.Incident
	err  error
}

func (m *mockIncidents) List(ctx context.Context) ([]models.Incident, error) {
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
