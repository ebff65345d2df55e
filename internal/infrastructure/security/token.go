package security

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenExpired reports whether a bearer token is a JWT with an elapsed exp
// claim. The backend may issue opaque tokens; those (and unparseable tokens)
// are treated as not expired and left for the backend's 401 to judge. The
// signature is deliberately not verified: the client holds no signing secret,
// this is a local freshness hint only.
func TokenExpired(tokenString string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return false
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Unix(int64(exp), 0).Before(now)
}
