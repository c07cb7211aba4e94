package integrity

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/TykTechnologies/goverify"
	"github.com/spf13/afero"
)

// SignatureChecker verifies a plugin file against a base64-encoded
// RSA-PKCS1v15/SHA-256 signature stored in a "<path>.sig" sidecar file,
// grounded on the teacher's bundle verification in
// gateway/coprocess_bundle.go (goverify.LoadPublicKeyFromFile +
// verifier.VerifyHash over a streamed sha256 of the bundle contents).
//
// Go has no portable way to hash "the code segment backing this resolved
// symbol" the way the original's check_segment does against an in-memory
// address range, so CheckSegment here verifies that CheckFile already
// passed for that plugin name instead of re-hashing memory. This is
// documented as a deliberate narrowing, not an oversight.
type SignatureChecker struct {
	fs       afero.Fs
	verifier goverify.Verifier

	mu     sync.Mutex
	passed map[string]bool
}

// NewSignatureChecker loads an RSA public key from publicKeyPath and
// returns a Checker that verifies plugin files against it.
func NewSignatureChecker(fs afero.Fs, publicKeyPath string) (*SignatureChecker, error) {
	dat, err := afero.ReadFile(fs, publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("integrity: reading public key: %w", err)
	}
	verifier, err := goverify.LoadPublicKeyFromString(string(dat))
	if err != nil {
		return nil, fmt.Errorf("integrity: parsing public key: %w", err)
	}
	return &SignatureChecker{fs: fs, verifier: verifier, passed: map[string]bool{}}, nil
}

func (c *SignatureChecker) CheckFile(name, path string) bool {
	ok := c.checkFile(path)
	c.mu.Lock()
	c.passed[name] = ok
	c.mu.Unlock()
	return ok
}

func (c *SignatureChecker) checkFile(path string) bool {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return false
	}
	sigRaw, err := afero.ReadFile(c.fs, path+".sig")
	if err != nil {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(sigRaw)))
	if err != nil {
		return false
	}
	return c.verifier.Verify(data, sig) == nil
}

func (c *SignatureChecker) CheckSegment(name string, symbol interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passed[name]
}

var _ Checker = &SignatureChecker{}
