package domain

// Hasher is the core port for any hashing strategy.
// Audio clips are stored under the hash of the text they speak.
type Hasher interface {
	Hash(data []byte) string
}
