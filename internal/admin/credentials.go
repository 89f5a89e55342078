package admin

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	pkgerrors "github.com/swinck/catalogo-backend/pkg/errors"
)

// Bootstrap values written on first use when no credential record exists.
const (
	DefaultEmail    = "swinck@gmail.com"
	DefaultPassword = "123456"
)

// Credential is the singleton administrator record.
type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Store keeps the administrator credential in a single JSON document,
// lazily bootstrapped with the fixed defaults.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the credential, creating the default record first if absent.
func (s *Store) Get() (Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Set updates only the fields with non-empty new values.
func (s *Store) Set(email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, err := s.load()
	if err != nil {
		return err
	}
	if email != "" {
		cred.Email = email
	}
	if password != "" {
		cred.Password = password
	}
	return s.write(cred)
}

// IsAdmin compares the email case-sensitively against the stored record.
// This equality check is the sole authorization gate for admin operations.
func (s *Store) IsAdmin(email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	cred, err := s.Get()
	if err != nil {
		return false, err
	}
	return email == cred.Email, nil
}

func (s *Store) load() (Credential, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Credential{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read admin credential")
		}
		cred := Credential{Email: DefaultEmail, Password: DefaultPassword}
		if err := s.write(cred); err != nil {
			return Credential{}, err
		}
		return cred, nil
	}

	var cred Credential
	if err := json.Unmarshal(raw, &cred); err != nil {
		// A corrupt record degrades to the bootstrap defaults.
		return Credential{Email: DefaultEmail, Password: DefaultPassword}, nil
	}
	return cred, nil
}

func (s *Store) write(cred Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create data dir")
	}
	raw, err := json.Marshal(cred)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("encode admin credential: %w", err), "encode admin credential")
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write admin credential")
	}
	return nil
}
