// Package cuid2 generates prefixed, optionally time-sortable identifiers
// such as "sel_1rK5iqaB3cD5eF7gH9iJ1k".
package cuid2

import (
	"crypto/rand"
	"strings"
	"time"
)

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	timestampLength      = 6
	defaultSortableLen   = 18
	defaultRandomOnlyLen = 24
)

// EncodeTimestamp encodes Unix seconds as 6 base62 characters. The output
// sorts lexicographically in time order.
func EncodeTimestamp(seconds int64) string {
	out := make([]byte, timestampLength)
	for i := timestampLength - 1; i >= 0; i-- {
		out[i] = base62Alphabet[seconds%62]
		seconds /= 62
	}
	return string(out)
}

// randomString returns length uniformly distributed base62 characters.
// Six bits are drawn per character and values >= 62 are rejected.
func randomString(length int) string {
	var sb strings.Builder
	sb.Grow(length)
	buf := make([]byte, length+8)

	for sb.Len() < length {
		if _, err := rand.Read(buf); err != nil {
			panic("cuid2: read random bytes: " + err.Error())
		}
		for _, b := range buf {
			if v := b & 0x3f; v < 62 {
				sb.WriteByte(base62Alphabet[v])
				if sb.Len() == length {
					break
				}
			}
		}
	}
	return sb.String()
}

// Options tune Generate.
type Options struct {
	// Random drops the timestamp prefix.
	Random bool
	// RandomLength defaults to 18 with a timestamp and 24 without.
	RandomLength int
}

// New returns a time-sortable id, e.g. New("quo").
func New(prefix string) string {
	return Generate(prefix, Options{})
}

// Generate returns prefix + "_" + [timestamp] + random.
func Generate(prefix string, opts Options) string {
	n := opts.RandomLength
	if opts.Random {
		if n <= 0 {
			n = defaultRandomOnlyLen
		}
		return prefix + "_" + randomString(n)
	}
	if n <= 0 {
		n = defaultSortableLen
	}
	return prefix + "_" + EncodeTimestamp(time.Now().Unix()) + randomString(n)
}

// Valid reports whether id carries prefix and a base62 body.
func Valid(id, prefix string) bool {
	body, ok := strings.CutPrefix(id, prefix+"_")
	if !ok || body == "" {
		return false
	}
	for i := 0; i < len(body); i++ {
		if strings.IndexByte(base62Alphabet, body[i]) < 0 {
			return false
		}
	}
	return true
}
