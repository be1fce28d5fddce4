package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

const redacted = "[redacted]"

type treatment int

const (
	pass treatment = iota
	hide
	digest
	maskEmail
	maskPhone
)

// Scrubber rewrites logged values by key. A nil Scrubber passes everything
// through unchanged.
type Scrubber struct {
	salt string
}

func NewScrubber(salt string) *Scrubber {
	return &Scrubber{salt: strings.TrimSpace(salt)}
}

// Keys are matched after lower-casing and turning '-' into '_'.
var (
	hiddenFragments = []string{"password", "secret", "token", "authorization", "cookie", "api_key", "apikey", "signature"}
	digestKeys      = map[string]bool{"session_id": true, "sid": true, "user_id": true, "actor_id": true, "customer_id": true}
)

func classify(key string) treatment {
	k := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
	if k == "" {
		return pass
	}
	for _, f := range hiddenFragments {
		if strings.Contains(k, f) {
			return hide
		}
	}
	switch {
	case digestKeys[k]:
		return digest
	case k == "email" || strings.HasSuffix(k, "_email"):
		return maskEmail
	case k == "phone" || strings.HasSuffix(k, "_phone"):
		return maskPhone
	}
	return pass
}

// Pairs returns a scrubbed copy of a sugared key/value list. A trailing key
// without a value is kept for zap to report.
func (s *Scrubber) Pairs(kv []any) []any {
	if s == nil || len(kv) == 0 {
		return kv
	}
	out := make([]any, len(kv))
	copy(out, kv)
	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		out[i+1] = s.Value(key, out[i+1])
	}
	return out
}

// Value scrubs a single value logged under key.
func (s *Scrubber) Value(key string, v any) any {
	if s == nil || v == nil {
		return v
	}
	switch classify(key) {
	case hide:
		return redacted
	case digest:
		return s.digest(stringify(v))
	case maskEmail:
		return maskEmailAddr(stringify(v))
	case maskPhone:
		return maskPhoneNumber(stringify(v))
	}
	if str, ok := v.(string); ok && isBearerOrJWT(str) {
		return redacted
	}
	return v
}

func (s *Scrubber) digest(raw string) string {
	if raw == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(s.salt + raw))
	return "h:" + hex.EncodeToString(sum[:6])
}

// maskEmailAddr keeps the first character of the local part and the domain.
func maskEmailAddr(addr string) string {
	at := strings.LastIndexByte(addr, '@')
	if at < 1 {
		return redacted
	}
	_, n := utf8.DecodeRuneInString(addr)
	return addr[:n] + "***" + addr[at:]
}

// maskPhoneNumber keeps the last three digits.
func maskPhoneNumber(phone string) string {
	digits := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}
	if len(digits) <= 3 {
		return redacted
	}
	return strings.Repeat("*", len(digits)-3) + string(digits[len(digits)-3:])
}

func isBearerOrJWT(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) > 7 && strings.EqualFold(s[:7], "bearer ") {
		return true
	}
	if !strings.HasPrefix(s, "eyJ") {
		return false
	}
	parts := strings.Split(s, ".")
	return len(parts) == 3 && parts[1] != ""
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case fmt.Stringer:
		return t.String()
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(v)
	}
}
