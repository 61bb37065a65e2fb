// internal/config/keyring.go
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/99designs/keyring"
)

const serviceName = "askdb"

// ErrSecretNotFound is returned when a SecretStore has no value under a name
var ErrSecretNotFound = errors.New("secret not found")

// SecretStore holds the master key that seals the API token
type SecretStore interface {
	Secret(name string) (string, error)
	SetSecret(name, value string) error
}

// SystemKeyring returns the OS keyring. It is opened on first use, so configs
// without a token never touch it.
func SystemKeyring() SecretStore {
	return &systemKeyring{}
}

type systemKeyring struct {
	once sync.Once
	ring keyring.Keyring
	err  error
}

func (s *systemKeyring) open() (keyring.Keyring, error) {
	s.once.Do(func() {
		s.ring, s.err = keyring.Open(keyring.Config{ServiceName: serviceName})
		if s.err != nil {
			s.err = fmt.Errorf("open keyring: %w", s.err)
		}
	})
	return s.ring, s.err
}

func (s *systemKeyring) Secret(name string) (string, error) {
	ring, err := s.open()
	if err != nil {
		return "", err
	}
	item, err := ring.Get(name)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrSecretNotFound
	}
	if err != nil {
		return "", fmt.Errorf("keyring get %s: %w", name, err)
	}
	return string(item.Data), nil
}

func (s *systemKeyring) SetSecret(name, value string) error {
	ring, err := s.open()
	if err != nil {
		return err
	}
	return ring.Set(keyring.Item{Key: name, Data: []byte(value)})
}

// MemorySecrets keeps secrets for the life of the process
type MemorySecrets struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemorySecrets() *MemorySecrets {
	return &MemorySecrets{values: make(map[string]string)}
}

func (m *MemorySecrets) Secret(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[name]
	if !ok {
		return "", ErrSecretNotFound
	}
	return v, nil
}

func (m *MemorySecrets) SetSecret(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = value
	return nil
}
