package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chckin-noodle/auth-service/internal/api/middleware"
	"github.com/chckin-noodle/auth-service/internal/core/domain"
	"github.com/chckin-noodle/auth-service/internal/core/ports"
)

type stubAccountService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (string, *domain.Account, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.Account, error)
	getFn      func(ctx context.Context, id string) (*domain.Account, error)
	listFn     func(ctx context.Context) ([]domain.Account, error)
	setRoleFn  func(ctx context.Context, id, role string) (*domain.Account, error)
}

func (s *stubAccountService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.Account, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *stubAccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.listFn(ctx)
}

func (s *stubAccountService) SetRole(ctx context.Context, id, role string) (*domain.Account, error) {
	return s.setRoleFn(ctx, id, role)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (string, *domain.Account, error) {
			if input.Username != "alice" || input.Email != "a@x.com" || input.Role != "" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return "token123", &domain.Account{
				ID:           "acc-1",
				Username:     input.Username,
				Email:        input.Email,
				PasswordHash: "$2a$10$hash",
				Role:         domain.RoleUser,
				CreatedAt:    time.Now().UTC(),
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/auth/register", `{"username":"alice","email":"a@x.com","password":"pw123456"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "hash") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must not carry the password hash: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (string, *domain.Account, error) {
			return "", nil, domain.ErrAccountExists
		},
	}
	handler := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/auth/register", `{"username":"alice2","email":"a@x.com","password":"pw123456"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (string, *domain.Account, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	cases := []string{
		"not-json",
		`{"username":"alice"}`,
		`{"username":"alice","email":"not-an-email","password":"pw123456"}`,
		`{"username":"alice","email":"a@x.com","password":"pw"}`,
	}
	for _, body := range cases {
		req := jsonRequest(http.MethodPost, "/api/auth/register", body)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Register(c)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Account, error) {
			if email != "a@x.com" || password != "pw123456" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.Account{ID: "acc-1", Username: "alice", Email: email, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"pw123456"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Account, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	// Unknown email and wrong password surface identically.
	for _, body := range []string{
		`{"email":"ghost@x.com","password":"whatever"}`,
		`{"email":"a@x.com","password":"wrong"}`,
	} {
		req := jsonRequest(http.MethodPost, "/api/auth/login", body)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = handler.Login(c)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("body %q: expected 401, got %d", body, rec.Code)
		}
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp["error"] != "invalid credentials" {
			t.Fatalf("unexpected error message: %v", resp["error"])
		}
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.Account, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/auth/login", "{")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Verify_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			if id != "acc-1" {
				t.Fatalf("unexpected id: %s", id)
			}
			// Store role may differ from the one frozen in the token.
			return &domain.Account{ID: id, Username: "alice", Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxAccountID, "acc-1")

	if err := handler.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["valid"] != true {
		t.Fatalf("expected valid=true, got %v", resp["valid"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != "admin" {
		t.Fatalf("expected current role from store, got %+v", user)
	}
}

func TestAuthHandler_Verify_AccountGone(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxAccountID, "deleted")

	if err := handler.Verify(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["valid"] != false {
		t.Fatalf("expected valid=false, got %v", resp["valid"])
	}
}

func TestAuthHandler_Verify_MissingClaims(t *testing.T) {
	e := newTestEcho()
	stub := &stubAccountService{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/verify", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Verify(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
