package app

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"meeting-service/internal/models"
	"meeting-service/internal/utils"
)

// Authenticator verifies bearer tokens and resolves the caller identity.
// Tokens are either HS256 JWTs carrying a subject and a role claim, or
// static tokens configured as "token:user_id:role".
type Authenticator struct {
	jwtSecret    []byte
	staticTokens map[string]models.Identity
}

func NewAuthenticator(jwtSecret string, staticTokens []string) (*Authenticator, error) {
	a := &Authenticator{staticTokens: make(map[string]models.Identity, len(staticTokens))}
	if secret := strings.TrimSpace(jwtSecret); secret != "" {
		a.jwtSecret = []byte(secret)
	}
	for _, entry := range staticTokens {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return nil, errors.New("static tokens must be formatted as token:user_id:role")
		}
		role := models.RoleFromString(parts[2])
		if role == models.RoleUnknown {
			return nil, errors.Newf("static token for user %s has unknown role %q", parts[1], parts[2])
		}
		a.staticTokens[parts[0]] = models.Identity{UserID: parts[1], Role: role}
	}
	return a, nil
}

func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := a.Identify(c.GetHeader("Authorization"))
		if err != nil {
			presentError(c, err)
			c.Abort()
			return
		}
		ctx := utils.StoreIdentityInContext(c.Request.Context(), identity)
		logger := utils.LoggerFromContext(ctx).With("user_id", identity.UserID)
		c.Request = c.Request.WithContext(utils.StoreLoggerInContext(ctx, logger))
		c.Next()
	}
}

// Identify resolves the value of an Authorization header.
func (a *Authenticator) Identify(header string) (models.Identity, error) {
	if header == "" {
		return models.Identity{}, models.ErrMissingCredentials
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return models.Identity{}, errors.Wrap(models.UnauthenticatedError, "invalid authorization format")
	}
	token := parts[1]

	if a.jwtSecret != nil {
		if identity, err := a.parseJWT(token); err == nil {
			return identity, nil
		}
	}
	if identity, ok := a.staticTokens[token]; ok {
		return identity, nil
	}
	return models.Identity{}, errors.Wrap(models.UnauthenticatedError, "invalid token")
}

func (a *Authenticator) parseJWT(raw string) (models.Identity, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return a.jwtSecret, nil
	}, jwt.WithLeeway(5*time.Second))
	if err != nil {
		return models.Identity{}, err
	}

	userID, _ := claims.GetSubject()
	if userID == "" {
		userID, _ = claims["user_id"].(string)
	}
	if userID == "" {
		return models.Identity{}, errors.New("token has no subject")
	}
	role := models.RoleFromClaim(claims["role"])
	if role == models.RoleUnknown {
		return models.Identity{}, errors.New("token has no known role")
	}
	return models.Identity{UserID: userID, Role: role}, nil
}

func identityFromRequest(c *gin.Context) (models.Identity, error) {
	identity, ok := utils.IdentityFromContext(c.Request.Context())
	if !ok {
		return models.Identity{}, models.ErrMissingCredentials
	}
	return identity, nil
}
