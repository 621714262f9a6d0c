package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewhub/internal/http-api/apierr"
	"reviewhub/internal/http-api/handler"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email string) error {
	args := m.Called(ctx, username, email)
	return args.Error(0)
}

func (m *MockAuthService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	args := m.Called(ctx, username, confirmationCode)
	return args.String(0), args.Error(1)
}

func noopMiddleware(c *gin.Context) { c.Next() }

func setupAuthRouter(svc *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewAuthHandler(svc)
	h.RegisterRoutes(r.Group("/api/v1/auth"), noopMiddleware)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupEndpoint_EchoesPair(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	svc.On("Signup", mock.Anything, "reader", "reader@example.com").Return(nil)

	w := postJSON(r, "/api/v1/auth/signup", gin.H{
		"username": "reader",
		"email":    "reader@example.com",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "reader", resp["username"])
	assert.Equal(t, "reader@example.com", resp["email"])
	svc.AssertExpectations(t)
}

func TestSignupEndpoint_MissingEmail(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	w := postJSON(r, "/api/v1/auth/signup", gin.H{"username": "reader"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignupEndpoint_ValidationErrorBody(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	svc.On("Signup", mock.Anything, "me", "me@example.com").
		Return(apierr.Validation("username", `using "me" as a username is not allowed`))

	w := postJSON(r, "/api/v1/auth/signup", gin.H{
		"username": "me",
		"email":    "me@example.com",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "username")
}

func TestTokenEndpoint_Success(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	svc.On("IssueToken", mock.Anything, "reader", "code123").Return("signed.jwt.here", nil)

	w := postJSON(r, "/api/v1/auth/token", gin.H{
		"username":          "reader",
		"confirmation_code": "code123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.here", resp["token"])
}

// A wrong code is a 400 on this endpoint, not a 401: the caller is not being
// asked to retry with different credentials, the payload itself is bad.
func TestTokenEndpoint_WrongCodeIs400(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	svc.On("IssueToken", mock.Anything, "reader", "wrong").
		Return("", apierr.Authentication("invalid username or confirmation code"))

	w := postJSON(r, "/api/v1/auth/token", gin.H{
		"username":          "reader",
		"confirmation_code": "wrong",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTokenEndpoint_UnknownUserIs404(t *testing.T) {
	svc := new(MockAuthService)
	r := setupAuthRouter(svc)

	svc.On("IssueToken", mock.Anything, "ghost", "whatever").
		Return("", apierr.NotFound("user"))

	w := postJSON(r, "/api/v1/auth/token", gin.H{
		"username":          "ghost",
		"confirmation_code": "whatever",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
