package payfast

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"net/url"
	"strings"
)

// SpaceEncoding selects how spaces are percent-encoded in the canonical
// string. PayFast's ITN posts use the form convention (+), while some
// integrations sign with %20; the verifier must match whichever convention
// the signer used, so it is configuration rather than a constant.
type SpaceEncoding int

const (
	EncodePlus SpaceEncoding = iota
	EncodePercent20
)

// ParseSpaceEncoding maps a config value ("plus" or "percent20") to a
// SpaceEncoding, defaulting to the form convention.
func ParseSpaceEncoding(s string) SpaceEncoding {
	if strings.EqualFold(strings.TrimSpace(s), "percent20") {
		return EncodePercent20
	}
	return EncodePlus
}

// Codec signs and verifies PayFast parameter sets.
//
// The passphrase is injected at construction and held unexported; it is
// never logged and never leaves this package.
type Codec struct {
	passphrase string
	spaces     SpaceEncoding
}

func NewCodec(passphrase string, spaces SpaceEncoding) *Codec {
	return &Codec{passphrase: strings.TrimSpace(passphrase), spaces: spaces}
}

// Sign computes the lowercase hex MD5 digest of the canonical parameter
// string. MD5 is mandated by PayFast's protocol and cannot be upgraded
// unilaterally.
//
// Canonical form: for each key in construction order whose trimmed value is
// non-empty, append "key=encode(value)&"; strip the trailing "&"; if a
// passphrase is configured, append "&passphrase=encode(passphrase)".
func (c *Codec) Sign(params *ParameterSet) string {
	var sb strings.Builder
	first := true
	for _, k := range params.Keys() {
		v, _ := params.Get(k)
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if !first {
			sb.WriteByte('&')
		}
		first = false
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(c.encode(v))
	}
	if c.passphrase != "" {
		sb.WriteString("&passphrase=")
		sb.WriteString(c.encode(c.passphrase))
	}

	sum := md5.Sum([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the digest and compares it to the claimed signature in
// constant time.
func (c *Codec) Verify(params *ParameterSet, claimed string) bool {
	expected := c.Sign(params)
	got := strings.ToLower(strings.TrimSpace(claimed))
	if len(got) != len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

func (c *Codec) encode(v string) string {
	escaped := url.QueryEscape(v)
	if c.spaces == EncodePercent20 {
		escaped = strings.ReplaceAll(escaped, "+", "%20")
	}
	return escaped
}
