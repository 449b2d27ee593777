package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/otpvault/pkg/account"
)

// Format is the document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format matching the extension of path.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Option configures a Store.
type Option func(*Store)

// WithFormat overrides the format picked from the file extension.
func WithFormat(f Format) Option {
	return func(s *Store) {
		if f == FormatJSON || f == FormatYAML {
			s.format = f
		}
	}
}

// WithLogger sets the logger used by Watch.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// Store keeps accounts in one file.
type Store struct {
	path   string
	format Format
	log    *slog.Logger
}

// New returns a Store for path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		format: FormatFor(path),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads all accounts from the file.
func (s *Store) Load(_ context.Context) ([]account.Account, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []account.Account{}, nil
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	accounts := []account.Account{}
	if len(bytes.TrimSpace(data)) == 0 {
		return accounts, nil
	}

	switch s.format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &accounts)
	default:
		err = json.Unmarshal(data, &accounts)
	}
	if err != nil {
		return nil, errors.Join(ErrFailedToDecode, err)
	}
	if accounts == nil {
		accounts = []account.Account{}
	}

	return accounts, nil
}

// Save replaces the file content with accounts.
func (s *Store) Save(_ context.Context, accounts []account.Account) error {
	if accounts == nil {
		accounts = []account.Account{}
	}

	data, err := s.encode(accounts)
	if err != nil {
		return errors.Join(ErrFailedToEncode, err)
	}

	if err := writeAtomic(s.path, data); err != nil {
		return errors.Join(ErrFailedToWriteFile, err)
	}
	return nil
}

func (s *Store) encode(accounts []account.Account) ([]byte, error) {
	if s.format == FormatYAML {
		return yaml.Marshal(accounts)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(accounts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
