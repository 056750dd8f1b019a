package middleware

import (
	"net/http"
	"strings"
	"time"

	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal distinguishes the three authentication realms. Users carry a role
// on top of it; restaurants and admins are realms of their own.
type Principal string

const (
	PrincipalUser       Principal = "user"
	PrincipalRestaurant Principal = "restaurant"
	PrincipalAdmin      Principal = "admin"
)

type Claims struct {
	PrincipalID uint            `json:"principal_id"`
	Email       string          `json:"email"`
	Principal   Principal       `json:"principal"`
	Role        models.UserRole `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// NewUserToken creates a signed JWT for a marketplace user. The returned jti
// must be stored on the user record; tokens with a stale jti are rejected.
func NewUserToken(user *models.User) (token string, jti string, err error) {
	jti = uuid.NewString()
	token, err = sign(Claims{
		PrincipalID: user.ID,
		Email:       user.Email,
		Principal:   PrincipalUser,
		Role:        user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
	return token, jti, err
}

// NewRestaurantToken creates a signed JWT for a restaurant principal
func NewRestaurantToken(r *models.Restaurant) (string, error) {
	return sign(Claims{
		PrincipalID: r.ID,
		Email:       r.Email,
		Principal:   PrincipalRestaurant,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// NewAdminToken creates a signed JWT for a platform admin
func NewAdminToken(a *models.Admin) (string, error) {
	return sign(Claims{
		PrincipalID: a.ID,
		Email:       a.Email,
		Principal:   PrincipalAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

func sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret)
}

// AuthRequired validates the JWT and injects claims into the gin context
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}
		// User tokens carry a jti that must still match the user record;
		// rotating the stored jti (login, logout) revokes older tokens.
		if claims.Principal == PrincipalUser {
			var user models.User
			if err := config.DB.First(&user, claims.PrincipalID).Error; err != nil || user.JTI != claims.ID {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
				c.Abort()
				return
			}
		}
		c.Set("principalID", claims.PrincipalID)
		c.Set("principal", string(claims.Principal))
		c.Set("email", claims.Email)
		c.Set("role", string(claims.Role))
		c.Set("jti", claims.ID)
		c.Next()
	}
}

// PrincipalRequired enforces that the caller authenticated in a given realm
func PrincipalRequired(p Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get("principal")
		if !exists || Principal(val.(string)) != p {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied for this principal"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleRequired enforces that a user-principal caller has one of the allowed roles
func RoleRequired(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found in context"})
			c.Abort()
			return
		}
		callerRole := models.UserRole(roleVal.(string))
		for _, r := range roles {
			if callerRole == r {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied. Required role(s): " + rolesString(roles),
		})
		c.Abort()
	}
}

func rolesString(roles []models.UserRole) string {
	s := ""
	for i, r := range roles {
		if i > 0 {
			s += ", "
		}
		s += string(r)
	}
	return s
}

// GetPrincipalID extracts the caller's principal ID from context
func GetPrincipalID(c *gin.Context) uint {
	val, _ := c.Get("principalID")
	return val.(uint)
}

// GetJTI extracts the token's jti claim from context
func GetJTI(c *gin.Context) string {
	val, _ := c.Get("jti")
	s, _ := val.(string)
	return s
}
