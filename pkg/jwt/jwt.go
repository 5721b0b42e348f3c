package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles reconocidos por el back-office de confitería.
const (
	RoleAdmin      = "admin"      // acceso a todos los teatros
	RoleSupervisor = "supervisor" // regenera y limpia meses de su teatro
	RoleCashier    = "cajero"     // registra movimientos de su teatro
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// TheaterID limita el acceso del usuario al kardex de un teatro (vacío solo para admin).
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	TheaterID string `json:"theater_id"`
	Role      string `json:"role"`
}

// Identity datos del usuario extraídos de un token válido.
type Identity struct {
	UserID    string
	TheaterID string
	Role      string
}

// Generate genera un token JWT firmado. Lo usa el emisor de tokens y los tests.
func Generate(secret string, id Identity, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    id.UserID,
		TheaterID: id.TheaterID,
		Role:      id.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (Identity, error) {
	if secret == "" {
		return Identity{}, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Identity{}, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("claims inválidos")
	}
	return Identity{UserID: claims.UserID, TheaterID: claims.TheaterID, Role: claims.Role}, nil
}
