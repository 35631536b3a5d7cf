package identity

import "golang.org/x/crypto/bcrypt"

// Hasher produces a one-way hash of a username so collected tables never
// carry raw identities.
type Hasher interface {
	Hash(username string) (string, error)
}

// BcryptHasher hashes with a fresh random salt on every call. The same
// username therefore hashes differently across runs; tables from separate
// collection runs cannot be joined on author identity.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(username string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(username), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
