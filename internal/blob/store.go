// Package blob persists uploaded asset bytes under at-rest encryption.
//
// Stored names are derived from the original upload filename, sanitized and
// made collision-free with a numeric suffix. A name is claimed atomically via
// os.Link, so concurrent uploads of identically named files race safely: the
// loser sees EEXIST and retries with the next suffix instead of overwriting.
// The store knows nothing about the catalog; ownership of a stored name is
// tracked entirely by the catalog rows referencing it.
package blob

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/chacha20poly1305"
)

var (
	// ErrNotFound is returned when no asset exists under a stored name.
	ErrNotFound = errors.New("asset not found")

	// ErrCorruptAsset is returned when an asset exists but cannot be
	// decrypted (wrong key, truncated or tampered ciphertext). Distinct
	// from ErrNotFound so operators can tell corruption from absence.
	ErrCorruptAsset = errors.New("asset cannot be decrypted")

	// ErrInvalidName is returned for stored names that are empty, contain
	// path separators, or contain parent-directory segments.
	ErrInvalidName = errors.New("invalid stored name")

	// ErrUnsupportedType is returned by Put when the filename extension is
	// not on the allow-list for the declared kind.
	ErrUnsupportedType = errors.New("file type not allowed for kind")
)

// Store is a filesystem-backed encrypted asset store. All assets live flat
// in a single directory, ciphertext on disk laid out as nonce||sealed.
type Store struct {
	dir  string
	aead cipher.AEAD
}

// New creates a Store rooted at dir using the given KeySize-byte key.
func New(dir string, key []byte) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return &Store{dir: dir, aead: aead}, nil
}

var (
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	dotRuns     = regexp.MustCompile(`\.\.+`)
)

// sanitizeFilename strips path components and unsafe characters from an
// upload filename, returning "" when nothing usable remains. Runs of dots
// collapse to one so a sanitized name always passes validName's parent-
// directory check.
func sanitizeFilename(name string) string {
	// Browsers on Windows submit backslash paths.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = unsafeChars.ReplaceAllString(name, "_")
	name = dotRuns.ReplaceAllString(name, ".")
	name = strings.Trim(name, "._")
	if name == "" {
		return ""
	}
	return name
}

// Put encrypts data and writes it under a collision-free stored name derived
// from originalFilename. The extension must be on kind's allow-list.
func (s *Store) Put(originalFilename string, kind Kind, data []byte) (string, error) {
	if !Allowed(originalFilename, kind) {
		return "", fmt.Errorf("%w: %q as %s", ErrUnsupportedType, originalFilename, kind)
	}
	base := sanitizeFilename(originalFilename)
	if base == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, originalFilename)
	}

	sealed, err := s.seal(data)
	if err != nil {
		return "", err
	}

	// Write the ciphertext once to a temp file, then claim the final name
	// with a hard link. Link is atomic: either this process owns the name
	// or it gets EEXIST and tries the next suffix. The asset only ever
	// appears under its final name fully written.
	tmp := filepath.Join(s.dir, "."+uuid.New().String()+".tmp")
	if err := os.WriteFile(tmp, sealed, 0o644); err != nil {
		return "", fmt.Errorf("write asset: %w", err)
	}
	defer func() { _ = os.Remove(tmp) }()

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := base
	for counter := 1; ; counter++ {
		err := os.Link(tmp, filepath.Join(s.dir, name))
		if err == nil {
			return name, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("claim stored name %q: %w", name, err)
		}
		name = fmt.Sprintf("%s_%d%s", stem, counter, ext)
	}
}

// Get decrypts and returns the asset bytes under storedName along with a
// media type guessed from the name's extension.
func (s *Store) Get(storedName string) ([]byte, string, error) {
	if err := validName(storedName); err != nil {
		return nil, "", err
	}
	sealed, err := os.ReadFile(filepath.Join(s.dir, storedName))
	if os.IsNotExist(err) {
		return nil, "", fmt.Errorf("%w: %q", ErrNotFound, storedName)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read asset: %w", err)
	}
	data, err := s.open(sealed)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrCorruptAsset, storedName)
	}
	return data, mediaType(storedName), nil
}

// Delete removes the asset under storedName. Deleting an absent name is not
// an error.
func (s *Store) Delete(storedName string) error {
	if err := validName(storedName); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, storedName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

// Exists reports whether storedName currently holds an asset.
func (s *Store) Exists(storedName string) bool {
	if validName(storedName) != nil {
		return false
	}
	_, err := os.Stat(filepath.Join(s.dir, storedName))
	return err == nil
}

func (s *Store) seal(data []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, data, nil), nil
}

func (s *Store) open(sealed []byte) ([]byte, error) {
	if len(sealed) < s.aead.NonceSize() {
		return nil, errors.New("ciphertext shorter than nonce")
	}
	nonce, ct := sealed[:s.aead.NonceSize()], sealed[s.aead.NonceSize():]
	return s.aead.Open(nil, nonce, ct, nil)
}

// validName rejects anything that could escape the store directory before
// the filesystem is touched.
func validName(name string) error {
	if name == "" || name == "." || strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func mediaType(name string) string {
	if mt := mime.TypeByExtension(filepath.Ext(name)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
