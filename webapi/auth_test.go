package webapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/finvault/bankcore/pkg/config"
)

type AuthTestSuite struct {
	suite.Suite
	app *fiber.App
	cfg *config.Auth
}

func (s *AuthTestSuite) SetupTest() {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	s.Require().NoError(err)

	s.cfg = &config.Auth{
		Username:     "backoffice",
		PasswordHash: string(hash),
		Jwt:          &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
	}
	s.app = fiber.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	AuthRoutes(s.app, s.cfg, logger)

	// One protected route to exercise the middleware.
	s.app.Get("/protected", JwtProtected(s.cfg.Jwt), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
}

type testResponse struct {
	Code int
	Body []byte
}

func (s *AuthTestSuite) makeRequest(method, path, body, token string) testResponse {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close() //nolint: errcheck

	b, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return testResponse{Code: resp.StatusCode, Body: b}
}

func (s *AuthTestSuite) TestLogin_Success() {
	rec := s.makeRequest("POST", "/auth/login", `{"username":"backoffice","password":"secret123"}`, "")
	s.Equal(fiber.StatusOK, rec.Code)

	var out struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body, &out))
	s.NotEmpty(out.Data.Token)
}

func (s *AuthTestSuite) TestLogin_WrongPassword() {
	rec := s.makeRequest("POST", "/auth/login", `{"username":"backoffice","password":"wrong"}`, "")
	s.Equal(fiber.StatusUnauthorized, rec.Code)
}

func (s *AuthTestSuite) TestLogin_WrongUsername() {
	rec := s.makeRequest("POST", "/auth/login", `{"username":"intruder","password":"secret123"}`, "")
	s.Equal(fiber.StatusUnauthorized, rec.Code)
}

func (s *AuthTestSuite) TestLogin_MissingFields() {
	rec := s.makeRequest("POST", "/auth/login", `{"username":"backoffice"}`, "")
	s.Equal(fiber.StatusBadRequest, rec.Code)

	var pd ProblemDetails
	s.Require().NoError(json.Unmarshal(rec.Body, &pd))
	s.Equal("Validation failed", pd.Title)
}

func (s *AuthTestSuite) TestLogin_MalformedBody() {
	rec := s.makeRequest("POST", "/auth/login", `{"username":123}`, "")
	s.Equal(fiber.StatusBadRequest, rec.Code)

	var pd ProblemDetails
	s.Require().NoError(json.Unmarshal(rec.Body, &pd))
	s.Equal("Invalid request body", pd.Title)
}

func (s *AuthTestSuite) TestProtected_NoToken() {
	rec := s.makeRequest("GET", "/protected", "", "")
	s.Equal(fiber.StatusBadRequest, rec.Code, "a missing token is a malformed request, not a failed authentication")
}

func (s *AuthTestSuite) TestProtected_InvalidToken() {
	rec := s.makeRequest("GET", "/protected", "", "not-a-jwt")
	s.Equal(fiber.StatusUnauthorized, rec.Code)
}

func (s *AuthTestSuite) TestProtected_ValidToken() {
	login := s.makeRequest("POST", "/auth/login", `{"username":"backoffice","password":"secret123"}`, "")
	s.Require().Equal(fiber.StatusOK, login.Code)

	var out struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(login.Body, &out))

	rec := s.makeRequest("GET", "/protected", "", out.Data.Token)
	s.Equal(fiber.StatusOK, rec.Code)
}

func TestAuthTestSuite(t *testing.T) {
	suite.Run(t, new(AuthTestSuite))
}
