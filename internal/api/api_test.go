package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"payment_tracker/internal/config"
	"payment_tracker/internal/db"
	"payment_tracker/internal/domain"
	"payment_tracker/internal/service"
	"payment_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "api-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newServer(t *testing.T) http.Handler {
	t.Helper()
	gdb, err := db.Open(&config.Config{DBDriver: config.DriverSQLite, DBName: ":memory:", IsProd: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	auth := service.NewAuthService(gdb, jwtSecret, time.Hour)
	payments := service.NewPaymentService(gdb, nil, time.Minute)
	return NewRouter(auth, payments, jwtSecret)
}

func call(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func login(t *testing.T, h http.Handler) string {
	t.Helper()
	creds := gin.H{"username": "user@example.com", "password": "secret123"}
	w := call(t, h, http.MethodPost, "/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = call(t, h, http.MethodPost, "/auth/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[AuthResponse](t, w).AccessToken
}

func TestRegisterAndLogin(t *testing.T) {
	h := newServer(t)
	creds := gin.H{"username": "asha@example.com", "password": "pa55word"}

	w := call(t, h, http.MethodPost, "/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, w.Code)
	reg := decode[RegisterResponse](t, w)
	assert.NotZero(t, reg.ID)
	assert.Equal(t, "asha@example.com", reg.Username)
	assert.NotContains(t, w.Body.String(), "password")

	w = call(t, h, http.MethodPost, "/auth/register", "", creds)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "An account with this email already exists", decode[map[string]string](t, w)["error"])

	w = call(t, h, http.MethodPost, "/auth/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code)
	token := decode[AuthResponse](t, w).AccessToken
	claims, err := utils.ParseJWT(token, jwtSecret)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", claims.Subject)
	assert.Equal(t, reg.ID, claims.UserID)

	w = call(t, h, http.MethodGet, "/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decode[ProfileResponse](t, w)
	assert.Equal(t, "asha@example.com", profile.Username)
	assert.Equal(t, domain.DefaultRole, profile.Role)
}

func TestLoginFailures(t *testing.T) {
	h := newServer(t)
	w := call(t, h, http.MethodPost, "/auth/register", "", gin.H{"username": "a@b.c", "password": "right"})
	require.Equal(t, http.StatusCreated, w.Code)

	wrong := call(t, h, http.MethodPost, "/auth/login", "", gin.H{"username": "a@b.c", "password": "wrong"})
	unknown := call(t, h, http.MethodPost, "/auth/login", "", gin.H{"username": "x@y.z", "password": "right"})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())

	bad := call(t, h, http.MethodPost, "/auth/login", "", gin.H{"username": "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestPaymentRoutesRequireToken(t *testing.T) {
	h := newServer(t)
	routes := []struct{ method, path string }{
		{http.MethodPost, "/payments"},
		{http.MethodGet, "/payments"},
		{http.MethodGet, "/payments/stats"},
		{http.MethodGet, "/payments/1"},
		{http.MethodGet, "/auth/profile"},
	}
	for _, rt := range routes {
		w := call(t, h, rt.method, rt.path, "", gin.H{"amount": 1, "receiver": "r", "status": "Success", "method": "UPI"})
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.method+" "+rt.path)
	}
}

func TestPaymentsFlow(t *testing.T) {
	h := newServer(t)
	token := login(t, h)

	w := call(t, h, http.MethodGet, "/payments/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalRevenue":0,"totalCount":0,"failedCount":0}`, w.Body.String())

	w = call(t, h, http.MethodGet, "/payments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	var ids []uint
	for _, p := range []gin.H{
		{"amount": 100, "receiver": "A", "status": "Success", "method": "UPI"},
		{"amount": 50, "receiver": "B", "status": "Success", "method": "UPI"},
		{"amount": 30, "receiver": "C", "status": "Failed", "method": "UPI"},
		{"amount": "20", "receiver": "D", "status": "Pending", "method": "UPI"},
	} {
		w := call(t, h, http.MethodPost, "/payments", token, p)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		created := decode[domain.Payment](t, w)
		assert.False(t, created.CreatedAt.IsZero())
		ids = append(ids, created.ID)
	}

	w = call(t, h, http.MethodGet, "/payments/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalRevenue":150,"totalCount":4,"failedCount":1}`, w.Body.String())

	w = call(t, h, http.MethodGet, "/payments", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]domain.Payment](t, w)
	require.Len(t, list, 4)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt))
	}

	w = call(t, h, http.MethodGet, "/payments/"+jsonNumber(ids[2]), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	one := decode[domain.Payment](t, w)
	assert.Equal(t, "C", one.Receiver)
	assert.True(t, one.Amount.Equal(decimal.NewFromInt(30)))

	w = call(t, h, http.MethodGet, "/payments/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Payment with ID #999 not found", decode[map[string]string](t, w)["error"])

	w = call(t, h, http.MethodGet, "/payments/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePaymentRejectsUnknownStatus(t *testing.T) {
	h := newServer(t)
	token := login(t, h)

	w := call(t, h, http.MethodPost, "/payments", token, gin.H{"amount": 5, "receiver": "r", "status": "success", "method": "UPI"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown payment status")

	w = call(t, h, http.MethodPost, "/payments", token, gin.H{"amount": 5, "receiver": "r"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePaymentStoresOtherFieldsAsSent(t *testing.T) {
	h := newServer(t)
	token := login(t, h)

	w := call(t, h, http.MethodPost, "/payments", token, gin.H{"status": "Pending"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[domain.Payment](t, w)
	assert.Empty(t, p.Receiver)
	assert.Empty(t, p.Method)
	assert.True(t, p.Amount.IsZero())
	assert.Equal(t, domain.StatusPending, p.Status)
}

func TestHealthz(t *testing.T) {
	w := call(t, newServer(t), http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
