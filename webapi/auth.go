package webapi

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/finvault/bankcore/pkg/config"
)

// LoginRequest is the back-office login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthRoutes registers the login endpoint.
func AuthRoutes(app *fiber.App, cfg *config.Auth, logger *slog.Logger) {
	app.Post("/auth/login", Login(cfg, logger))
}

// Login validates the configured back-office credentials and issues a
// bearer token.
func Login(cfg *config.Auth, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		if input.Username != cfg.Username ||
			bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(input.Password)) != nil {
			logger.Warn("login rejected", "username", input.Username)
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "invalid credentials")
		}

		claims := jwt.MapClaims{
			"sub": input.Username,
			"exp": time.Now().Add(cfg.Jwt.Expiry).Unix(),
			"iat": time.Now().Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.Jwt.Secret))
		if err != nil {
			logger.Error("failed to sign token", "error", err)
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", "could not issue token")
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Login successful", fiber.Map{"token": signed})
	}
}
