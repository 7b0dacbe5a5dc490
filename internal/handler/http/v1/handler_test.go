package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/parking_watchdog/internal/actiontoken"
	"github.com/shenikar/parking_watchdog/internal/config"
	"github.com/shenikar/parking_watchdog/internal/models"
	"github.com/shenikar/parking_watchdog/internal/service"
	"github.com/shenikar/parking_watchdog/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	testNow    = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	apiKeyHdr  = map[string]string{"X-API-Key": "test-api-key"}
	testSecret = "action-secret"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockWatchdogService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockWatchdogService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys: []string{"test-api-key"},
	}

	handler := NewHandler(mockService, actiontoken.NewIssuer(testSecret, time.Hour), logger, cfg)
	handler.now = func() time.Time { return testNow }

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestSubmitLocationSample_ParkingDetected(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	speed := 0.5
	ts := testNow.Add(-time.Second)
	reqBody := LocationSampleRequest{
		UserID:    "user-a",
		Timestamp: ts,
		Latitude:  52.52,
		Longitude: 13.405,
		SpeedMps:  &speed,
	}
	event := &models.ParkingEvent{
		UserID:    "user-a",
		Location:  models.Location{Latitude: 52.52, Longitude: 13.405},
		Timestamp: ts,
	}

	mockService.EXPECT().
		OnLocationSample(gomock.Any(), "user-a", models.NewLocationSample(ts, 52.52, 13.405, speed)).
		Return(event, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/location/samples", jsonBody(t, reqBody), apiKeyHdr)

	assert.Equal(t, http.StatusAccepted, w.Code)
	var resp ParkingEventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Parked)
	assert.Equal(t, 52.52, resp.Latitude)
}

func TestSubmitLocationSample_DefaultsTimestamp(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	speed := 10.0

	mockService.EXPECT().
		OnLocationSample(gomock.Any(), "user-a", models.NewLocationSample(testNow, 1, 2, 10)).
		Return(nil, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/location/samples",
		jsonBody(t, LocationSampleRequest{UserID: "user-a", Latitude: 1, Longitude: 2, SpeedMps: &speed}), apiKeyHdr)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), `"parked":false`)
}

func TestSubmitLocationSample_MissingSpeedIsSkipped(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().OnLocationSample(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/location/samples",
		bytes.NewBufferString(`{"user_id":"user-a","latitude":1,"longitude":2}`), apiKeyHdr)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestSubmitLocationSample_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	speed := 3.0

	mockService.EXPECT().OnLocationSample(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/location/samples",
		jsonBody(t, LocationSampleRequest{Latitude: 1, Longitude: 2, SpeedMps: &speed}), apiKeyHdr)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'UserID' failed on the 'required' tag")
}

func TestSubmitLocationSample_InvalidLatitude(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "POST", "/api/v1/location/samples",
		bytes.NewBufferString(`{"user_id":"user-a","latitude":91,"longitude":2,"speed_mps":1}`), apiKeyHdr)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'latitude' tag")
}

func TestSubmitLocationSample_RequiresAPIKey(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().OnLocationSample(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/location/samples",
		bytes.NewBufferString(`{"user_id":"user-a","latitude":1,"longitude":2,"speed_mps":1}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApplyAction_Confirm(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	token, err := actiontoken.NewIssuer(testSecret, time.Hour).Issue("user-a", "n-1", actiontoken.ActionConfirm)
	require.NoError(t, err)

	mockService.EXPECT().
		OnUserResponse(gomock.Any(), "user-a", "n-1", true).
		Return(true, nil).
		Times(1)

	// Кнопкам уведомления API-ключ не нужен
	w := makeRequest(router, "POST", "/api/v1/actions", jsonBody(t, ActionRequest{Token: token}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"applied":true}`, w.Body.String())
}

func TestApplyAction_Decline(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	token, err := actiontoken.NewIssuer(testSecret, time.Hour).Issue("user-a", "n-1", actiontoken.ActionDecline)
	require.NoError(t, err)

	mockService.EXPECT().
		OnUserResponse(gomock.Any(), "user-a", "n-1", false).
		Return(false, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/actions", jsonBody(t, ActionRequest{Token: token}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"applied":false}`, w.Body.String())
}

func TestApplyAction_ForgedToken(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	token, err := actiontoken.NewIssuer("someone-else", time.Hour).Issue("user-a", "n-1", actiontoken.ActionConfirm)
	require.NoError(t, err)

	mockService.EXPECT().OnUserResponse(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/actions", jsonBody(t, ActionRequest{Token: token}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid action token")
}

func TestRespondCheckIn_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	accepted := true

	mockService.EXPECT().
		OnUserResponse(gomock.Any(), "user-a", "n-1", true).
		Return(true, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/checkins/respond",
		jsonBody(t, CheckInResponseRequest{UserID: "user-a", NotificationID: "n-1", Accepted: &accepted}), apiKeyHdr)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"applied":true}`, w.Body.String())
}

func TestRespondCheckIn_MissingAccepted(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().OnUserResponse(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/checkins/respond",
		bytes.NewBufferString(`{"user_id":"user-a","notification_id":"n-1"}`), apiKeyHdr)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "'Accepted' failed on the 'required' tag")
}

func TestRespondCheckIn_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	accepted := false

	mockService.EXPECT().
		OnUserResponse(gomock.Any(), "user-a", "n-1", false).
		Return(false, errors.New("boom")).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/checkins/respond",
		jsonBody(t, CheckInResponseRequest{UserID: "user-a", NotificationID: "n-1", Accepted: &accepted}), apiKeyHdr)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestSignalTimeout_Stale(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		OnDeadlineTimeout(gomock.Any(), "user-a", "old").
		Return(false, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/checkins/timeout",
		jsonBody(t, DeadlineTimeoutRequest{UserID: "user-a", NotificationID: "old"}), apiKeyHdr)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"applied":false}`, w.Body.String())
}

func TestSignalTimeout_NoIdentity(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		OnDeadlineTimeout(gomock.Any(), "user-a", "n-1").
		Return(false, service.ErrNoIdentity).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/checkins/timeout",
		jsonBody(t, DeadlineTimeoutRequest{UserID: "user-a", NotificationID: "n-1"}), apiKeyHdr)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user identity is required")
}

func TestGetUserStatus_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	last := testNow.Add(-time.Hour)

	mockService.EXPECT().
		GetUserStatus(gomock.Any(), "user-a").
		Return(&models.UserStatus{UserID: "user-a", Status: models.StatusOK, LastCheckIn: &last}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/users/user-a/status", nil, apiKeyHdr)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp UserStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)
	require.NotNil(t, resp.LastCheckIn)
	assert.True(t, last.Equal(*resp.LastCheckIn))
}

func TestGetUserStatus_ServiceError(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().GetUserStatus(gomock.Any(), "user-a").Return(nil, errors.New("redis down")).Times(1)

	w := makeRequest(router, "GET", "/api/v1/users/user-a/status", nil, apiKeyHdr)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetFamilyMembers_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		GetFamilyStatus(gomock.Any(), "family-1").
		Return([]models.FamilyMember{
			{ID: "a", Name: "Anna", Role: "parent", Email: "a@example.com", ResponseStatus: models.StatusAlert},
			{ID: "b", Name: "Boris", Role: "child"},
		}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/families/family-1/members", nil, apiKeyHdr)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []FamilyMemberResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "ALERT", resp[0].Status)
	assert.Empty(t, resp[1].Status)
	assert.NotContains(t, w.Body.String(), "a@example.com")
}

func TestHealthCheck_Success(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func newMiddlewareRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := &config.Config{
		APIKeys: []string{"valid-key"},
	}

	router.Use(APIKeyAuthMiddleware(cfg, logger))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestAPIKeyAuthMiddleware_Success(t *testing.T) {
	w := makeRequest(newMiddlewareRouter(), "GET", "/test", nil, map[string]string{"X-API-Key": "valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_BearerHeader(t *testing.T) {
	w := makeRequest(newMiddlewareRouter(), "GET", "/test", nil, map[string]string{"Authorization": "Bearer valid-key"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIKeyAuthMiddleware_MissingKey(t *testing.T) {
	w := makeRequest(newMiddlewareRouter(), "GET", "/test", nil) // Нет API ключа
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")
}

func TestAPIKeyAuthMiddleware_InvalidKey(t *testing.T) {
	w := makeRequest(newMiddlewareRouter(), "GET", "/test", nil, map[string]string{"X-API-Key": "invalid-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}
