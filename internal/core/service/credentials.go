package service

import "golang.org/x/crypto/bcrypt"

// Credentials wraps password hashing so the rest of the core never sees raw
// bcrypt. Plaintext passwords are hashed on the way in and never persisted.
type Credentials struct {
	cost int
}

func NewCredentials() *Credentials {
	return &Credentials{cost: bcrypt.DefaultCost}
}

// Hash returns a salted one-way hash of password.
func (c *Credentials) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether password matches hash.
func (c *Credentials) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
