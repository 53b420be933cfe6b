// Package storage provides the small key-value persistence capability the
// client keeps its state in.
package storage

// Storage is a string key-value store. Get reports false for a missing key;
// Delete on a missing key is not an error.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}
