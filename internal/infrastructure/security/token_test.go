package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func signedJWT(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}
	return token
}

func TestTokenExpired(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "expired jwt",
			token: signedJWT(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}),
			want:  true,
		},
		{
			name:  "live jwt",
			token: signedJWT(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}),
			want:  false,
		},
		{
			name:  "jwt without exp claim",
			token: signedJWT(t, jwt.MapClaims{"sub": "user-1"}),
			want:  false,
		},
		{
			name:  "jwt with non-numeric exp claim",
			token: signedJWT(t, jwt.MapClaims{"exp": "tomorrow"}),
			want:  false,
		},
		{
			name:  "opaque token",
			token: "tok-opaque-001",
			want:  false,
		},
		{
			name:  "empty token",
			token: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenExpired(tt.token, now); got != tt.want {
				t.Errorf("TokenExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateULID_Unique(t *testing.T) {
	a := GenerateULID()
	b := GenerateULID()
	if a == "" || b == "" {
		t.Fatal("GenerateULID() returned empty string")
	}
	if a == b {
		t.Error("two ULIDs are identical")
	}
	if len(a) != 26 {
		t.Errorf("ULID length = %d, want 26", len(a))
	}
}
