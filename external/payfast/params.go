package payfast

import (
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cast"
)

var (
	// ErrInvalidParameterValue is returned when a parameter value is not a
	// flat primitive (nested objects/arrays cannot be signed).
	ErrInvalidParameterValue = errors.New("parameter value is not a primitive")

	// ErrMalformedBody is returned when a request body cannot be parsed as a
	// flat parameter set at all.
	ErrMalformedBody = errors.New("malformed parameter body")
)

// ParameterSet is an ordered string-to-string parameter mapping.
//
// PayFast signatures are computed over parameters in their ORIGINAL order,
// not sorted, so plain Go maps cannot carry a signable message. Set on an
// existing key overwrites the value but keeps the key's position.
type ParameterSet struct {
	keys   []string
	values map[string]string
}

func NewParameterSet() *ParameterSet {
	return &ParameterSet{values: make(map[string]string)}
}

func (p *ParameterSet) Set(key, value string) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

func (p *ParameterSet) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *ParameterSet) Del(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

func (p *ParameterSet) Len() int {
	return len(p.keys)
}

// Keys returns the keys in construction order.
func (p *ParameterSet) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Map returns an unordered copy, for persistence/logging only — never for
// signing.
func (p *ParameterSet) Map() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

func (p *ParameterSet) Clone() *ParameterSet {
	c := NewParameterSet()
	for _, k := range p.keys {
		c.Set(k, p.values[k])
	}
	return c
}

// ParseJSONBody reads one flat JSON object, preserving key order.
//
// encoding/json's map decoding discards order, which would break signature
// verification, so we walk the token stream instead. Numbers and booleans
// are stringified, null becomes the empty string (excluded from signing
// anyway); nested objects or arrays are not signable.
func ParseJSONBody(r io.Reader) (*ParameterSet, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, ErrMalformedBody
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, ErrMalformedBody
	}

	params := NewParameterSet()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, ErrMalformedBody
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, ErrMalformedBody
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, ErrMalformedBody
		}
		if _, nested := valTok.(json.Delim); nested {
			return nil, ErrInvalidParameterValue
		}
		val, err := cast.ToStringE(valTok)
		if err != nil {
			return nil, ErrInvalidParameterValue
		}
		params.Set(key, val)
	}

	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, ErrMalformedBody
	}
	return params, nil
}

// ParseFormBody parses a form-encoded body preserving pair order.
// url.ParseQuery returns a map and loses order, so split by hand.
func ParseFormBody(raw []byte) (*ParameterSet, error) {
	params := NewParameterSet()
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return params, nil
	}
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, ErrMalformedBody
		}
		val, err := url.QueryUnescape(v)
		if err != nil {
			return nil, ErrMalformedBody
		}
		params.Set(key, val)
	}
	return params, nil
}
