// Package confirmation derives short-lived confirmation codes.
//
// A code is never stored. It is an HMAC over the user id, the user's state
// hash and the index of the current time window, keyed with a server secret.
// The same user gets the same code for the whole window, and any profile
// change (which rotates the state hash) invalidates outstanding codes.
package confirmation

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"encoding/binary"
	"io"
	"strings"
	"time"

	"github.com/yamdb-dev/yamdb/shared/domain"
	"golang.org/x/crypto/hkdf"
)

const (
	DefaultWindow = time.Hour
	codeBytes     = 10 // 16 base32 characters
	keyInfo       = "yamdb confirmation code v1"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

type Issuer struct {
	key    []byte
	window time.Duration
	now    func() time.Time
}

// New derives the HMAC key from secret. window <= 0 falls back to DefaultWindow.
func New(secret string, window time.Duration) *Issuer {
	if window <= 0 {
		window = DefaultWindow
	}
	key := make([]byte, sha256.Size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo)), key); err != nil {
		// hkdf only fails when asked for more than 255*hash size bytes
		panic(err)
	}
	return &Issuer{key: key, window: window, now: time.Now}
}

// WithClock replaces the time source, for tests
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	i.now = now
	return i
}

func (i *Issuer) Window() time.Duration {
	return i.window
}

// Issue returns the code for the current window. Repeated calls within one
// window return the same value.
func (i *Issuer) Issue(user domain.User) string {
	return i.derive(user, i.windowIndex())
}

// Verify accepts a code from the current or the immediately preceding window.
// Comparison is constant time; both candidates are always computed.
func (i *Issuer) Verify(user domain.User, code string) bool {
	presented := []byte(normalize(code))
	if len(presented) == 0 {
		return false
	}
	current := i.windowIndex()
	okCurrent := hmac.Equal(presented, []byte(i.derive(user, current)))
	okPrevious := hmac.Equal(presented, []byte(i.derive(user, current-1)))
	return okCurrent || okPrevious
}

func (i *Issuer) windowIndex() int64 {
	return i.now().UnixNano() / int64(i.window)
}

func (i *Issuer) derive(user domain.User, window int64) string {
	mac := hmac.New(sha256.New, i.key)

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(user.Id))
	mac.Write(buf[:])

	// length prefix keeps (hash, window) pairs unambiguous
	binary.BigEndian.PutUint64(buf[:], uint64(len(user.StateHash)))
	mac.Write(buf[:])
	mac.Write([]byte(user.StateHash))

	binary.BigEndian.PutUint64(buf[:], uint64(window))
	mac.Write(buf[:])

	return encoding.EncodeToString(mac.Sum(nil)[:codeBytes])
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
