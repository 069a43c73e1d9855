package server

import (
	"fmt"
	"strconv"
	"time"

	"circle/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenLifetime = time.Hour * 24 * 7

// generateJTI creates a unique JWT ID for token revocation support
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": "circle-api",
		"aud": "circle-client",
		"exp": now.Add(tokenLifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": generateJTI(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// Register handles user registration
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	tokenString, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStorageError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": tokenString,
		"user":  user,
	})
}

// Login handles user authentication
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	tokenString, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStorageError(err))
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
		"user":  user,
	})
}

// Refresh issues a fresh token for the authenticated user. The old token
// stays valid until its expiry unless the client logs out with it.
func (s *Server) Refresh(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	tokenString, err := s.generateToken(userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewStorageError(err))
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
	})
}

// Logout revokes the presented token by blacklisting its JTI until the
// token would have expired anyway.
func (s *Server) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	tokenString := ""
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	}

	if tokenString != "" && s.redis != nil {
		// Token already passed AuthRequired; parse only to extract claims.
		token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
		if err == nil {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				jti, _ := claims["jti"].(string)
				ttl := tokenLifetime
				if exp, expOk := claims["exp"].(float64); expOk {
					if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
						ttl = remaining
					}
				}
				if jti != "" {
					if err := s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl).Err(); err != nil {
						return models.RespondWithError(c, fiber.StatusInternalServerError,
							models.NewStorageError(err))
					}
				}
			}
		}
	}

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}
