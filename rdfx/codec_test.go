package rdfx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-swiss/dcatapchharvest/errors"
)

const turtleSample = `
@prefix dct: <http://purl.org/dc/terms/> .
<http://example.com/d> dct:identifier "42" ;
    dct:title "Luftqualität"@de .
`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{in: "rdfxml", want: FormatRDFXML},
		{in: "RDF", want: FormatRDFXML},
		{in: ".ttl", want: FormatTurtle},
		{in: "text/turtle", want: FormatTurtle},
		{in: "nt", want: FormatNTriples},
		{in: "json-ld", want: FormatJSONLD},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("trix")
	assert.True(t, errors.Is(err, errors.ErrParsingFailed))
}

func TestDecodeBytes(t *testing.T) {
	g, err := DecodeBytes([]byte(turtleSample), FormatTurtle)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())

	_, err = DecodeBytes([]byte("   \n"), FormatTurtle)
	assert.True(t, errors.Is(err, errors.ErrEmptyPage))

	_, err = DecodeBytes([]byte("not rdf at all <<<"), FormatTurtle)
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	g, err := DecodeBytes([]byte(turtleSample), FormatTurtle)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g, FormatNTriples))

	again, err := DecodeBytes(buf.Bytes(), FormatNTriples)
	require.NoError(t, err)
	assert.Equal(t, g.Len(), again.Len())
}

func TestEncodeRDFXMLRoundTrip(t *testing.T) {
	g, err := DecodeBytes([]byte(turtleSample), FormatTurtle)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g, FormatRDFXML))
	assert.True(t, strings.Contains(buf.String(), `rdf:about="http://example.com/d"`))

	again, err := DecodeBytes(buf.Bytes(), FormatRDFXML)
	require.NoError(t, err)
	assert.Equal(t, g.Len(), again.Len())
	assert.Equal(t, "42", again.ObjectValue(MustIRI("http://example.com/d"), MustIRI("http://purl.org/dc/terms/identifier")))
}

func TestEncodeRDFXMLRegisteredPrefix(t *testing.T) {
	RegisterPrefix("dct", "http://purl.org/dc/terms/")

	g, err := DecodeBytes([]byte(turtleSample), FormatTurtle)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g, FormatRDFXML))
	out := buf.String()
	assert.True(t, strings.Contains(out, `xmlns:dct="http://purl.org/dc/terms/"`))
	assert.True(t, strings.Contains(out, "<dct:identifier>42</dct:identifier>"))
}

func TestEncodeJSONLD(t *testing.T) {
	g, err := DecodeBytes([]byte(turtleSample), FormatTurtle)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g, FormatJSONLD))
	out := buf.String()
	assert.True(t, strings.Contains(out, "http://example.com/d"))
	assert.True(t, strings.Contains(out, "Luftqualität"))
}
