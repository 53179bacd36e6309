package services

import "golang.org/x/crypto/bcrypt"

// Hasher turns passwords into stored digests. Cost 0 means bcrypt.DefaultCost.
type Hasher struct {
	Cost int
}

func (h Hasher) Hash(plain string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h Hasher) Verify(digest, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
