package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokedex/models"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewTokenManager("secret", 2*time.Hour, clock)
	userID := uuid.New()

	token, err := m.Generate(userID)
	require.NoError(t, err)

	got, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokenManager_Expiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewTokenManager("secret", 2*time.Hour, clock)

	token, err := m.Generate(uuid.New())
	require.NoError(t, err)

	clock.Advance(2*time.Hour - time.Minute)
	_, err = m.Parse(token)
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManager_Rejects(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := NewTokenManager("secret", time.Hour, clock)

	other, err := NewTokenManager("other-secret", time.Hour, clock).Generate(uuid.New())
	require.NoError(t, err)
	_, err = m.Parse(other)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = m.Parse("not-a-token")
	assert.Error(t, err)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: uuid.NewString()})
	signed, err := noExpiry.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Parse(signed)
	assert.Error(t, err)

	badID := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:           "42",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour))},
	})
	signed, err = badID.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = m.Parse(signed)
	assert.Error(t, err)
}

type authFunc func(ctx context.Context, token string) (models.User, error)

func (f authFunc) Authenticate(ctx context.Context, token string) (models.User, error) {
	return f(ctx, token)
}

func TestAuthMiddleware(t *testing.T) {
	ash := models.User{ID: uuid.New(), Name: "Ash"}
	auth := authFunc(func(_ context.Context, token string) (models.User, error) {
		switch token {
		case "good":
			return ash, nil
		case "broken":
			return models.User{}, errors.New("database is down")
		default:
			return models.User{}, models.ErrUnauthorized
		}
	})

	protected := AuthMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUserFromContext(r.Context())
		require.NotNil(t, user)
		_, _ = w.Write([]byte(user.Name))
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK, wantBody: "Ash"},
		{name: "lowercase scheme", header: "bearer good", wantStatus: http.StatusOK, wantBody: "Ash"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer stale", wantStatus: http.StatusUnauthorized},
		{name: "store failure", header: "Bearer broken", wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/teams", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestGetUserFromContext_Empty(t *testing.T) {
	assert.Nil(t, GetUserFromContext(context.Background()))
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	h := chimiddleware.RequestID(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pokemon/0", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "/pokemon/0", entry["path"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.NotEmpty(t, entry["request_id"])
}
