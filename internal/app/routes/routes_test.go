package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"sk-barangay-service/internal/app/middleware"
	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/domain/services/container"
	"sk-barangay-service/internal/infrastructure/cache"
	"sk-barangay-service/internal/infrastructure/config"
	"sk-barangay-service/internal/infrastructure/database"
	"sk-barangay-service/internal/infrastructure/storage"
	"sk-barangay-service/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.HashCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	otp    cache.InterfaceOTPStore
	token  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &config.Config{
		DBDriver:          "sqlite",
		DBPath:            fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		OTPStore:          "memory",
		JWTSecretKey:      "routes-secret",
		JWTExpiry:         time.Hour,
		OTPTTL:            10 * time.Minute,
		OTPMaxAttempts:    5,
		StorageDriver:     "local",
		UploadDir:         t.TempDir(),
		UploadMaxBytes:    5 << 20,
		CORSAllowedOrigin: "*",
	}

	pool, err := database.NewConnectionPool(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })
	require.NoError(t, pool.DB.AutoMigrate(models.All()...))

	store, err := storage.NewLocalStore(cfg.UploadDir, "/uploads")
	require.NoError(t, err)

	c := container.NewServiceContainer(container.Dependencies{
		DB:      pool.DB,
		Config:  cfg,
		Storage: store,
	})
	s := &testServer{
		t:      t,
		router: SetupRouter(c, middleware.NewMetrics()),
		db:     pool.DB,
		otp:    c.GetService("otp").(cache.InterfaceOTPStore),
	}
	s.token = s.login(s.seedUser("SK-ADMIN", "admin@example.com", models.PositionAdmin, "admin-pass"), "admin-pass")
	return s
}

func (s *testServer) seedUser(employeeID, email, position, password string) models.User {
	hash, err := utils.HashPassword(password)
	require.NoError(s.t, err)
	user := models.User{
		EmployeeID: employeeID,
		Password:   hash,
		FirstName:  "Juan",
		LastName:   "Dela Cruz",
		Email:      email,
		Position:   position,
		Status:     models.StatusActive,
	}
	require.NoError(s.t, s.db.Create(&user).Error)
	return user
}

// login runs the two-step OTP flow and returns the session token
func (s *testServer) login(user models.User, password string) string {
	w, body := s.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"position": user.Position,
		"username": user.EmployeeID,
		"password": password,
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(s.t, user.Email, body["email"])

	entry, err := s.otp.Get(context.Background(), user.Email)
	require.NoError(s.t, err)

	w, body = s.do(http.MethodPost, "/api/auth/verify-otp", "", gin.H{"email": user.Email, "otp": entry.Code})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	token, _ := body["token"].(string)
	require.NotEmpty(s.t, token)
	return token
}

func (s *testServer) do(method, path, token string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	s.t.Helper()
	var reader *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.10:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	body := map[string]interface{}{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &body)
	}
	return w, body
}

func (s *testServer) authed(method, path string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	return s.do(method, path, s.token, payload)
}

func (s *testServer) createResident(first, last string) uint {
	w, body := s.authed(http.MethodPost, "/api/residents", gin.H{
		"f_name":       first,
		"l_name":       last,
		"sex":          "female",
		"birthdate":    "1995-06-15",
		"civil_status": "single",
	})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return uint(body["residentId"].(float64))
}

func TestHealthAndNotFound(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Server is running", body["message"])

	w, body = s.do(http.MethodGet, "/api/health/status", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "database")

	w, body = s.do(http.MethodGet, "/api/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Route not found", body["message"])
}

func TestSecuredRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(http.MethodGet, "/api/residents", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authorization header is required", body["message"])

	w, _ = s.do(http.MethodGet, "/api/residents", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateResidentExample(t *testing.T) {
	s := newTestServer(t)

	w, body := s.authed(http.MethodPost, "/api/residents", gin.H{
		"f_name":       "Juan",
		"m_name":       "Santos",
		"l_name":       "Dela Cruz",
		"sex":          "male",
		"birthdate":    "1990-05-12",
		"civil_status": "married",
		"contact_no":   "+63 912 345 6789",
		"email":        "juan@example.com",
		"address":      "Purok 1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Resident created successfully", body["message"])
	assert.NotZero(t, body["residentId"])
	resident := body["resident"].(map[string]interface{})
	assert.Equal(t, "NA", resident["suffix"])

	w, body = s.authed(http.MethodPost, "/api/residents", gin.H{
		"f_name":       "Pedro",
		"l_name":       "Reyes",
		"sex":          "male",
		"birthdate":    "1991-01-01",
		"civil_status": "single",
		"email":        "juan@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists", body["message"])

	w, body = s.authed(http.MethodGet, "/api/residents/count", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])
}

func TestResidentBirthdateBounds(t *testing.T) {
	s := newTestServer(t)
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	ancient := time.Now().AddDate(-151, 0, 0).Format("2006-01-02")

	for _, birthdate := range []string{future, ancient} {
		w, body := s.authed(http.MethodPost, "/api/residents", gin.H{
			"f_name":       "Ana",
			"l_name":       "Lopez",
			"sex":          "female",
			"birthdate":    birthdate,
			"civil_status": "single",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, birthdate)
		assert.Equal(t, false, body["success"])
	}
}

func TestHouseholdMembership(t *testing.T) {
	s := newTestServer(t)
	head := s.createResident("Rosa", "Garcia")
	child := s.createResident("Leo", "Garcia")

	w, body := s.authed(http.MethodPost, "/api/households", gin.H{
		"household_name": "Garcia Household",
		"address":        "Purok 2",
		"members": []gin.H{
			{"resident_id": head, "role": "head"},
			{"resident_id": child, "role": "dependent"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	householdID := uint(body["householdId"].(float64))

	w, body = s.authed(http.MethodPost, "/api/households", gin.H{
		"household_name": "Garcia Household",
		"address":        "Purok 3",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Household name already exists", body["message"])

	w, body = s.authed(http.MethodPost, "/api/households", gin.H{
		"household_name": "Second Household",
		"address":        "Purok 3",
		"members":        []gin.H{{"resident_id": child, "role": "member"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])

	w, body = s.authed(http.MethodGet, fmt.Sprintf("/api/households/%d", householdID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	household := body["household"].(map[string]interface{})
	assert.Len(t, household["members"], 2)

	w, _ = s.authed(http.MethodDelete, fmt.Sprintf("/api/households/%d", householdID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.authed(http.MethodGet, fmt.Sprintf("/api/households/%d", householdID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIncidentReferenceSequence(t *testing.T) {
	s := newTestServer(t)
	year := time.Now().Year()

	for i := 1; i <= 3; i++ {
		w, body := s.authed(http.MethodPost, "/api/incidents", gin.H{
			"incident_type": "Noise complaint",
			"location":      "Purok 4",
			"date":          time.Now().Format("2006-01-02"),
			"time":          "21:30",
			"complainant":   "Rosa Garcia",
			"respondent":    "Unknown",
			"description":   "Loud karaoke past curfew",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		incident := body["incident"].(map[string]interface{})
		assert.Equal(t, fmt.Sprintf("INC-%d-%04d", year, i), incident["reference_number"])
		assert.Equal(t, "pending", incident["status"])
	}

	w, body := s.authed(http.MethodGet, "/api/incidents?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["incidents"], 3)

	w, _ = s.authed(http.MethodGet, "/api/incidents?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteThenNotFound(t *testing.T) {
	s := newTestServer(t)
	residentID := s.createResident("Carlo", "Mendoza")

	w, body := s.authed(http.MethodPost, "/api/services", gin.H{
		"service_name": "Medical mission",
		"location":     "Covered court",
		"date":         "2026-11-20",
		"time":         "08:00",
		"description":  "Free check-ups",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	serviceID := uint(body["serviceId"].(float64))

	w, _ = s.authed(http.MethodPost, fmt.Sprintf("/api/services/%d/beneficiaries", serviceID), gin.H{"resident_id": residentID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = s.authed(http.MethodDelete, fmt.Sprintf("/api/residents/%d", residentID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.authed(http.MethodGet, fmt.Sprintf("/api/residents/%d", residentID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = s.authed(http.MethodGet, fmt.Sprintf("/api/services/%d/beneficiaries", serviceID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["beneficiaries"])

	w, _ = s.authed(http.MethodDelete, fmt.Sprintf("/api/services/%d", serviceID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.authed(http.MethodGet, fmt.Sprintf("/api/services/%d", serviceID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.authed(http.MethodGet, "/api/residents/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistoryRecordsActor(t *testing.T) {
	s := newTestServer(t)
	s.createResident("Lara", "Cruz")

	w, body := s.authed(http.MethodGet, "/api/history?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entries := body["history"].([]interface{})
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].(map[string]interface{})["description"], "Cruz, Lara")
}

func TestOTPFailures(t *testing.T) {
	s := newTestServer(t)
	user := s.seedUser("SK-STAFF", "staff@example.com", models.PositionStaff, "staff-pass")

	w, _ := s.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"position": models.PositionStaff,
		"username": user.Email,
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/api/auth/login", "", gin.H{
		"position": models.PositionStaff,
		"username": user.EmployeeID,
		"password": "staff-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, body := s.do(http.MethodPost, "/api/auth/verify-otp", "", gin.H{"email": user.Email, "otp": "000000x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])

	entry, err := s.otp.Get(context.Background(), user.Email)
	require.NoError(t, err)
	entry.ExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, s.otp.Save(context.Background(), user.Email, *entry))

	w, _ = s.do(http.MethodPost, "/api/auth/verify-otp", "", gin.H{"email": user.Email, "otp": entry.Code})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasswordResetForcesRotation(t *testing.T) {
	s := newTestServer(t)
	user := s.seedUser("SK-STAFF", "staff@example.com", models.PositionStaff, "staff-pass")

	w, _ := s.do(http.MethodPost, "/api/auth/request-password-reset", "", gin.H{"email": user.Email})
	require.Equal(t, http.StatusOK, w.Code)
	entry, err := s.otp.Get(context.Background(), user.Email)
	require.NoError(t, err)

	w, _ = s.do(http.MethodPost, "/api/auth/confirm-password-reset", "", gin.H{"email": user.Email, "otp": entry.Code})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.User
	require.NoError(t, s.db.First(&stored, user.ID).Error)
	assert.True(t, stored.MustChangePassword)
	assert.False(t, utils.CheckPasswordHash("staff-pass", stored.Password))

	// a token issued while rotation is pending only reaches the self routes
	require.NoError(t, s.db.Model(&stored).Update("password", mustHash(t, "temp-pass-123")).Error)
	token := s.login(user, "temp-pass-123")

	w, body := s.do(http.MethodGet, "/api/residents", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Password change required", body["message"])

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = s.do(http.MethodPut, fmt.Sprintf("/api/users/%d/change-password", user.ID), token, gin.H{
		"current_password": "temp-pass-123",
		"new_password":     "brand-new-pass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	fresh, _ := body["token"].(string)
	require.NotEmpty(t, fresh)

	w, _ = s.do(http.MethodGet, "/api/residents", fresh, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserRoutesEnforceRoles(t *testing.T) {
	s := newTestServer(t)
	staff := s.seedUser("SK-STAFF", "staff@example.com", models.PositionStaff, "staff-pass")
	token := s.login(staff, "staff-pass")

	w, _ := s.do(http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body := s.do(http.MethodPut, fmt.Sprintf("/api/users/%d", staff.ID), token, gin.H{"position": "admin"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Only admins can change position or status", body["message"])

	w, _ = s.do(http.MethodPut, fmt.Sprintf("/api/users/%d", staff.ID), token, gin.H{"first_name": "Pia"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, body = s.authed(http.MethodPost, "/api/users/create-account", gin.H{
		"employee_id": "SK-NEW",
		"first_name":  "Nina",
		"last_name":   "Torres",
		"email":       "nina@example.com",
		"position":    models.PositionStaff,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotZero(t, body["userId"])

	w, _ = s.authed(http.MethodPost, "/api/users/create-account", gin.H{
		"employee_id": "SK-NEW",
		"first_name":  "Nina",
		"last_name":   "Torres",
		"email":       "nina@example.com",
		"position":    models.PositionStaff,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPersonalisationIsPublicAndCached(t *testing.T) {
	s := newTestServer(t)

	w, body := s.do(http.MethodGet, "/api/personalisation", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "personalisation")

	w, _ = s.do(http.MethodGet, "/api/personalisation", "", nil)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	w, _ = s.authed(http.MethodPut, "/api/personalisation", gin.H{"header_title": "Barangay Uno"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, body = s.do(http.MethodGet, "/api/personalisation", "", nil)
	assert.Empty(t, w.Header().Get("X-Cache"))
	assert.Equal(t, "Barangay Uno", body["personalisation"].(map[string]interface{})["header_title"])
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(http.MethodGet, "/api/health", "", nil)

	w, _ := s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sk_barangay_http_requests_total")
}

func mustHash(t *testing.T, password string) string {
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestDisabledAccountLosesAccess(t *testing.T) {
	s := newTestServer(t)
	staff := s.seedUser("SK-STAFF", "staff@example.com", models.PositionStaff, "staff-pass")
	token := s.login(staff, "staff-pass")

	w, _ := s.do(http.MethodGet, "/api/residents", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = s.authed(http.MethodPut, fmt.Sprintf("/api/users/%d", staff.ID), gin.H{"status": models.StatusInactive})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, body := s.do(http.MethodGet, "/api/residents", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Account is inactive. Please contact administrator.", body["message"])

	w, _ = s.authed(http.MethodDelete, fmt.Sprintf("/api/users/%d", staff.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = s.do(http.MethodGet, "/api/residents", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
