package security

import "golang.org/x/crypto/bcrypt"

// HashPIN hashes the optional local unlock PIN for persistence.
func HashPIN(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPIN checks a PIN attempt against its stored hash.
func VerifyPIN(hashed, pin string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pin)) == nil
}
