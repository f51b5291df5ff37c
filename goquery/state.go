package goquery

import (
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/kakuyomu"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Ensure NextDataExtractor implements kakuyomu.StateExtractor at compile time.
var _ kakuyomu.StateExtractor = (*NextDataExtractor)(nil)

// nextDataSelector locates the Next.js hydration payload.
const nextDataSelector = "script#__NEXT_DATA__"

// statePath is the object path from the payload root to the Apollo cache.
var statePath = []string{"props", "pageProps", "__APOLLO_STATE__"}

// decodeOptions accept any RFC 8259 document: duplicate names keep the last
// value and invalid UTF-8 is replaced rather than rejected.
var decodeOptions = json.JoinOptions(
	jsontext.AllowDuplicateNames(true),
	jsontext.AllowInvalidUTF8(true),
)

// NextDataExtractor reads the Apollo client cache that Next.js pages embed
// in their __NEXT_DATA__ script.
type NextDataExtractor struct{}

// NewNextDataExtractor creates a new NextDataExtractor.
func NewNextDataExtractor() *NextDataExtractor {
	return &NextDataExtractor{}
}

// Extract returns the Apollo state graph of the page, keys in payload order.
func (e *NextDataExtractor) Extract(html string) (*kakuyomu.StateGraph, error) {
	doc, err := parse(html)
	if err != nil {
		return nil, err
	}

	script := doc.Find(nextDataSelector).First()
	if script.Length() == 0 {
		return nil, kakuyomu.Errorf(kakuyomu.EMALFORMED, "__NEXT_DATA__ script tag not found")
	}

	return DecodeState(script.Text())
}

// DecodeState decodes a __NEXT_DATA__ payload into a state graph.
// The decoder streams the graph object so that key order survives.
func DecodeState(payload string) (*kakuyomu.StateGraph, error) {
	if err := validate(payload); err != nil {
		return nil, err
	}

	dec := jsontext.NewDecoder(strings.NewReader(payload), decodeOptions)
	for _, name := range statePath {
		if err := enterMember(dec, name); err != nil {
			return nil, err
		}
	}

	if dec.PeekKind() != '{' {
		return nil, kakuyomu.Errorf(kakuyomu.EMALFORMED, "%s is not an object", strings.Join(statePath, "."))
	}
	if _, err := dec.ReadToken(); err != nil {
		return nil, malformed(err)
	}

	g := kakuyomu.NewStateGraph()
	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return nil, malformed(err)
		}
		val, err := dec.ReadValue()
		if err != nil {
			return nil, malformed(err)
		}

		// Entity records are objects; anything else is not an entity.
		if val.Kind() != '{' {
			continue
		}
		var rec kakuyomu.Record
		if err := json.Unmarshal(val, &rec, decodeOptions); err != nil {
			return nil, malformed(err)
		}
		g.Add(tok.String(), rec)
	}

	return g, nil
}

// validate reports whether payload holds exactly one JSON value.
func validate(payload string) error {
	dec := jsontext.NewDecoder(strings.NewReader(payload), decodeOptions)
	if err := dec.SkipValue(); err != nil {
		return kakuyomu.Errorf(kakuyomu.EMALFORMED, "__NEXT_DATA__ is not valid JSON: %v", err)
	}
	if _, err := dec.ReadToken(); !errors.Is(err, io.EOF) {
		return kakuyomu.Errorf(kakuyomu.EMALFORMED, "__NEXT_DATA__ has trailing data")
	}
	return nil
}

// enterMember positions dec at the value of the member name of the object
// that starts at the current position.
func enterMember(dec *jsontext.Decoder, name string) error {
	if dec.PeekKind() != '{' {
		return kakuyomu.Errorf(kakuyomu.EMALFORMED, "expected object containing %q", name)
	}
	if _, err := dec.ReadToken(); err != nil {
		return malformed(err)
	}

	for dec.PeekKind() != '}' {
		tok, err := dec.ReadToken()
		if err != nil {
			return malformed(err)
		}
		if tok.String() == name {
			return nil
		}
		if err := dec.SkipValue(); err != nil {
			return malformed(err)
		}
	}
	return kakuyomu.Errorf(kakuyomu.EMALFORMED, "__NEXT_DATA__ missing %q", name)
}

func malformed(err error) error {
	return kakuyomu.Errorf(kakuyomu.EMALFORMED, "failed to decode __NEXT_DATA__: %v", err)
}
