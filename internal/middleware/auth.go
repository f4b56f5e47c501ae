package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	ContextCustomerID = "customerID"
	ContextUserRole   = "userRole"
	ContextBarberID   = "barberID"
)

const (
	RoleCustomer = "customer"
	RoleBarber   = "barber"
	RoleOwner    = "owner"
)

// AuthMiddleware verifies an HS256 bearer token. The sub claim is an opaque
// customer id; role and barberId are optional.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Token ausente.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autorização inválido.")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			httperr.Unauthorized(c, "invalid_token", "Token inválido.")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			httperr.Unauthorized(c, "invalid_token_claims", "Token inválido.")
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || strings.TrimSpace(sub) == "" {
			httperr.Unauthorized(c, "invalid_token_payload", "Token inválido.")
			return
		}

		role, _ := claims["role"].(string)
		if role == "" {
			role = RoleCustomer
		}

		c.Set(ContextCustomerID, sub)
		c.Set(ContextUserRole, role)
		if id, ok := claims["barberId"].(float64); ok && id > 0 {
			c.Set(ContextBarberID, uint(id))
		}

		c.Next()
	}
}

// RequireAdmin admits owners and barbers. The barber calendar they act on
// comes from the barberId claim, falling back to defaultBarberID.
func RequireAdmin(defaultBarberID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if role != RoleOwner && role != RoleBarber {
			httperr.Forbidden(c, "forbidden", "Acesso restrito.")
			return
		}

		if _, ok := c.Get(ContextBarberID); !ok {
			c.Set(ContextBarberID, defaultBarberID)
		}
		c.Next()
	}
}

func CustomerID(c *gin.Context) string {
	return c.GetString(ContextCustomerID)
}

func BarberID(c *gin.Context) uint {
	return c.GetUint(ContextBarberID)
}
