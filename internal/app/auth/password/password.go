package password

import "github.com/alexedwards/argon2id"

var params = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher wraps argon2id with a process-wide pepper appended to every
// plaintext before hashing.
type Hasher struct {
	pepper string
}

func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

func (h *Hasher) Hash(plaintext string) (string, error) {
	return argon2id.CreateHash(plaintext+h.pepper, params)
}

// Verify reports whether plaintext matches hash. A malformed hash counts as
// a mismatch, not an error.
func (h *Hasher) Verify(plaintext, hash string) bool {
	ok, err := argon2id.ComparePasswordAndHash(plaintext+h.pepper, hash)
	if err != nil {
		return false
	}
	return ok
}
