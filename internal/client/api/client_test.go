package api

import (
	"context"
	"io"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	serverapi "payment_tracker/internal/api"
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

const secret = "client-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logrus.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type memStore struct {
	mu    sync.Mutex
	token string
}

func (s *memStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gdb, err := db.Open(&config.Config{DBDriver: config.DriverSQLite, DBName: ":memory:", IsProd: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	auth := service.NewAuthService(gdb, secret, time.Hour)
	payments := service.NewPaymentService(gdb, nil, time.Minute)
	srv := httptest.NewServer(serverapi.NewRouter(auth, payments, secret))
	t.Cleanup(func() {
		srv.Close()
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return srv
}

func TestAuthFlow(t *testing.T) {
	srv := newServer(t)
	store := &memStore{}
	c := New(srv.URL+"/", store)
	ctx := context.Background()

	acc, err := c.Register(ctx, "asha@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", acc.Username)
	assert.NotZero(t, acc.ID)

	token, _ := store.Get(ctx)
	assert.Empty(t, token, "register must not log in")

	t.Run("duplicate", func(t *testing.T) {
		_, err := c.Register(ctx, "asha@example.com", "other")
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.NotEmpty(t, domain.Message(err, ""))
	})

	t.Run("wrong password", func(t *testing.T) {
		err := c.Login(ctx, "asha@example.com", "nope")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		token, _ := store.Get(ctx)
		assert.Empty(t, token)
	})

	t.Run("login persists token", func(t *testing.T) {
		require.NoError(t, c.Login(ctx, "asha@example.com", "s3cret"))
		token, _ := store.Get(ctx)
		require.NotEmpty(t, token)

		claims, err := utils.ParseJWT(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "asha@example.com", claims.Subject)

		profile, err := c.Profile(ctx)
		require.NoError(t, err)
		assert.Equal(t, acc.ID, profile.ID)
		assert.Equal(t, domain.DefaultRole, profile.Role)
	})

	t.Run("logout", func(t *testing.T) {
		require.NoError(t, c.Logout(ctx))
		token, _ := store.Get(ctx)
		assert.Empty(t, token)

		_, err := c.ListPayments(ctx)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestPayments(t *testing.T) {
	srv := newServer(t)
	store := &memStore{}
	c := New(srv.URL, store)
	ctx := context.Background()

	_, err := c.Register(ctx, "ravi@example.com", "pw")
	require.NoError(t, err)
	require.NoError(t, c.Login(ctx, "ravi@example.com", "pw"))

	list, err := c.ListPayments(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	st, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, st.TotalRevenue.IsZero())
	assert.Zero(t, st.TotalCount)

	inputs := []PaymentInput{
		{Amount: decimal.NewFromInt(100), Receiver: "A", Status: "Success", Method: "UPI"},
		{Amount: decimal.NewFromInt(50), Receiver: "B", Status: "Success", Method: "UPI"},
		{Amount: decimal.NewFromInt(30), Receiver: "C", Status: "Failed", Method: "Card"},
		{Amount: decimal.NewFromInt(20), Receiver: "D", Status: "Pending", Method: "UPI"},
	}
	var last domain.Payment
	for _, in := range inputs {
		last, err = c.CreatePayment(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, in.Receiver, last.Receiver)
	}

	st, err = c.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, st.TotalRevenue.Equal(decimal.NewFromInt(150)), st.TotalRevenue.String())
	assert.EqualValues(t, 4, st.TotalCount)
	assert.EqualValues(t, 1, st.FailedCount)

	list, err = c.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "D", list[0].Receiver)
	assert.Equal(t, "A", list[3].Receiver)

	got, err := c.GetPayment(ctx, last.ID)
	require.NoError(t, err)
	assert.Equal(t, "D", got.Receiver)
	assert.Equal(t, domain.StatusPending, got.Status)

	_, err = c.GetPayment(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Payment with ID #9999 not found", domain.Message(err, ""))

	_, err = c.CreatePayment(ctx, PaymentInput{Amount: decimal.NewFromInt(1), Receiver: "E", Status: "success", Method: "UPI"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRejectedTokenIsDropped(t *testing.T) {
	srv := newServer(t)
	store := &memStore{token: "not-a-jwt"}
	expired := 0
	c := New(srv.URL, store, OnUnauthorized(func(context.Context) { expired++ }))
	ctx := context.Background()

	_, err := c.Stats(ctx)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 1, expired)
	token, _ := store.Get(ctx)
	assert.Empty(t, token)

	// A failed login sends no token, so it is not an expiry.
	assert.ErrorIs(t, c.Login(ctx, "nobody", "pw"), domain.ErrUnauthorized)
	assert.Equal(t, 1, expired)
}

func TestNetworkError(t *testing.T) {
	srv := newServer(t)
	url := srv.URL
	srv.Close()

	c := New(url, &memStore{}, WithTimeout(time.Second))
	_, err := c.ListPayments(context.Background())
	assert.ErrorIs(t, err, ErrNetwork)
	assert.Equal(t, "fallback", domain.Message(err, "fallback"))
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, domain.ErrValidation, kindFor(400))
	assert.Equal(t, domain.ErrUnauthorized, kindFor(401))
	assert.Equal(t, domain.ErrNotFound, kindFor(404))
	assert.Equal(t, domain.ErrConflict, kindFor(409))
	assert.Equal(t, ErrServer, kindFor(500))
}
