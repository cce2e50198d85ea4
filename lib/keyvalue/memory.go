package keyvalue

import "context"

// Memory keeps values in a plain map. Meant for tests; single-writer use
// only, like the other backends.
type Memory map[string][]byte

func NewMemory() Memory {
	return Memory{}
}

func (s Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := s[key]
	return value, ok, nil
}

func (s Memory) Set(ctx context.Context, key string, value []byte) error {
	s[key] = value
	return nil
}
