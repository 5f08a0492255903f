package linkstore

import "github.com/harrybrwn/geocore/linkstore/memkv"

// NewMemStore builds a Store backed by an in-memory fake, for unit
// tests that don't need a real Redis server.
func NewMemStore(mem *memkv.Client, domain string) *Store {
	return newStore(mem, domain)
}
