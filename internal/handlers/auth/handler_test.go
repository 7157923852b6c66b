package auth_test

import (
	"bytes"
	"encoding/json"
	"hotelres/config"
	otelMocks "hotelres/infras/otel/mocks"
	authMocks "hotelres/internal/domains/auth/mocks"
	authModel "hotelres/internal/domains/auth/model"
	"hotelres/internal/domains/auth/model/dto"
	"hotelres/internal/handlers/auth"
	"hotelres/shared/failure"
	"hotelres/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*chi.Mux, *authMocks.MockAuth) {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := authMocks.NewMockAuth(ctrl)
	ot := otelMocks.NewOtel()
	handler := auth.New(service, middleware.NewSessionMiddleware(service, ot, &config.Config{}), ot)

	r := chi.NewRouter()
	handler.Router(r)

	return r, service
}

func send(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&reader).Encode(body)
	}

	req := httptest.NewRequest(method, path, &reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler_Signup(t *testing.T) {
	req := dto.SignupRequest{FirstName: "John", LastName: "Doe", Email: "john@example.com", Phone: "+63 917 123 4567", Password: "password123"}

	t.Run("created", func(t *testing.T) {
		r, service := setup(t)
		service.EXPECT().Signup(gomock.Any(), req).Return(dto.SessionResponse{AccessToken: "access", TokenType: "Bearer"}, nil)

		rec := send(r, http.MethodPost, "/auth/signup", req, "")
		require.Equal(t, http.StatusCreated, rec.Code)

		var res struct {
			Data dto.SessionResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "access", res.Data.AccessToken)
	})

	t.Run("invalid body never reaches the service", func(t *testing.T) {
		r, _ := setup(t)

		rec := send(r, http.MethodPost, "/auth/signup", map[string]string{"email": "not-an-email"}, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		r, service := setup(t)
		service.EXPECT().Signup(gomock.Any(), req).Return(dto.SessionResponse{}, failure.Conflict("email already registered"))

		rec := send(r, http.MethodPost, "/auth/signup", req, "")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"error":"email already registered"}`, rec.Body.String())
	})
}

func TestHandler_Login(t *testing.T) {
	r, service := setup(t)
	req := dto.LoginRequest{Email: "john@example.com", Password: "wrong"}
	service.EXPECT().Login(gomock.Any(), req).Return(dto.SessionResponse{}, failure.InvalidCredentials)

	rec := send(r, http.MethodPost, "/auth/login", req, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_RefreshToken(t *testing.T) {
	r, service := setup(t)
	service.EXPECT().Refresh(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "refresh"}).
		Return(dto.SessionResponse{AccessToken: "new-access"}, nil)

	rec := send(r, http.MethodPost, "/auth/refresh-token", dto.RefreshTokenRequest{RefreshToken: "refresh"}, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new-access")
}

func TestHandler_Me(t *testing.T) {
	r, service := setup(t)

	assert.Equal(t, http.StatusUnauthorized, send(r, http.MethodGet, "/auth/me", nil, "").Code)

	service.EXPECT().Restore(gomock.Any(), "access").
		Return(authModel.Identity{ID: "account-1", FirstName: "John", LastName: "Doe", Email: "john@example.com"}, nil)

	rec := send(r, http.MethodGet, "/auth/me", nil, "access")
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Data dto.IdentityResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "John Doe", res.Data.FullName)
}
