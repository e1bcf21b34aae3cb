package token

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/chacha20poly1305"
)

// MinPasswordLength is the shortest temporary password the codec generates
// or accepts as strong.
const MinPasswordLength = 12

const (
	publicCodeAlphabet  = "abcdefghjkmnpqrstuvwxyz23456789"
	passwordAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"
	publicCodeLength    = 12
	verifierBytes       = 32
	saltBytes           = 16
	tokenSeparator      = "."
	sealKeyDomain       = "camposanto.invitation.seal.v1:"
	tokenHashDomain     = "camposanto.invitation.token.v1:"
	maxPasswordAttempts = 64
	defaultPasswordCost = bcrypt.DefaultCost
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrSealCorrupted  = errors.New("sealed value corrupted")
	ErrWeakPassword   = errors.New("weak password")
)

// Codec mints and checks every opaque value handed out by the application:
// invitation tokens, temporary passwords and public grave codes.
type Codec struct {
	PasswordLength int
	PasswordCost   int
}

// Invitation holds a freshly minted invitation token. Token is the only
// copy of the secret and must be handed to the recipient, never stored.
type Invitation struct {
	Token    string
	Selector string
	Salt     string
	Hash     string
	verifier string
}

// Verifier returns the secret half of the token, used to seal values that
// only the token holder may read back.
func (i Invitation) Verifier() string {
	return i.verifier
}

func NewCodec(passwordLength int) Codec {
	return Codec{PasswordLength: passwordLength, PasswordCost: defaultPasswordCost}
}

// NewInvitation returns a token in the form selector.verifier. The selector is
// stored in clear to find the row; the verifier is only kept as a salted hash.
func (c Codec) NewInvitation() (Invitation, error) {
	raw, err := randomBytes(verifierBytes)
	if err != nil {
		return Invitation{}, err
	}
	salt, err := randomBytes(saltBytes)
	if err != nil {
		return Invitation{}, err
	}

	selector := uuid.NewString()
	verifier := base64.RawURLEncoding.EncodeToString(raw)
	saltHex := hex.EncodeToString(salt)

	return Invitation{
		Token:    selector + tokenSeparator + verifier,
		Selector: selector,
		Salt:     saltHex,
		Hash:     hashVerifier(saltHex, verifier),
		verifier: verifier,
	}, nil
}

// Split separates a raw token into its selector and verifier.
func Split(raw string) (string, string, error) {
	selector, verifier, found := strings.Cut(strings.TrimSpace(raw), tokenSeparator)
	if !found || selector == "" || verifier == "" {
		return "", "", ErrMalformedToken
	}
	if _, err := uuid.Parse(selector); err != nil {
		return "", "", ErrMalformedToken
	}
	return selector, verifier, nil
}

// Matches reports whether verifier hashes to the stored salted hash.
func Matches(salt, hash, verifier string) bool {
	if salt == "" || hash == "" || verifier == "" {
		return false
	}
	actual := hashVerifier(salt, verifier)
	return subtle.ConstantTimeCompare([]byte(actual), []byte(hash)) == 1
}

func hashVerifier(salt, verifier string) string {
	sum := sha256.Sum256([]byte(tokenHashDomain + salt + ":" + verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// NewPublicCode returns an opaque identifier for a public grave URL. It is
// random, so it never embeds the internal record id.
func (c Codec) NewPublicCode() (string, error) {
	return RandomString(publicCodeLength, publicCodeAlphabet)
}

// NewTemporaryPassword returns a random password satisfying ValidatePasswordStrength.
// Lengths under MinPasswordLength are raised to it.
func (c Codec) NewTemporaryPassword() (string, error) {
	length := max(c.PasswordLength, MinPasswordLength)
	for attempt := 0; attempt < maxPasswordAttempts; attempt++ {
		password, err := RandomString(length, passwordAlphabet)
		if err != nil {
			return "", err
		}
		if ValidatePasswordStrength(password) == nil {
			return password, nil
		}
	}
	return "", fmt.Errorf("could not generate temporary password: %w", ErrWeakPassword)
}

// HashPassword returns the bcrypt hash of password.
func (c Codec) HashPassword(password string) (string, error) {
	cost := c.PasswordCost
	if cost == 0 {
		cost = defaultPasswordCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength requires at least 12 characters mixing upper case,
// lower case and digits.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrWeakPassword
	}

	hasUpper, hasLower, hasDigit := false, false, false
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		}
	}

	if hasUpper && hasLower && hasDigit {
		return nil
	}
	return ErrWeakPassword
}

// Seal encrypts plaintext under a key derived from the token verifier, so
// only the holder of the invitation token can read it back.
func Seal(verifier, plaintext string) (string, error) {
	aead, err := chacha20poly1305.New(sealKey(verifier))
	if err != nil {
		return "", err
	}
	nonce, err := randomBytes(aead.NonceSize())
	if err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Open reverses Seal.
func Open(verifier, sealed string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrSealCorrupted
	}
	aead, err := chacha20poly1305.New(sealKey(verifier))
	if err != nil {
		return "", err
	}
	if len(data) < aead.NonceSize() {
		return "", ErrSealCorrupted
	}
	nonce, ciphertext := data[:aead.NonceSize()], data[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrSealCorrupted
	}
	return string(plaintext), nil
}

func sealKey(verifier string) []byte {
	sum := sha256.Sum256([]byte(sealKeyDomain + verifier))
	return sum[:]
}
