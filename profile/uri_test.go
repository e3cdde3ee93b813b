package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-swiss/dcatapchharvest/errors"
)

func testResolver() *Resolver {
	return &Resolver{
		SiteURL:              "https://opendata.swiss",
		TestEnvironmentHosts: []string{"test.example.org"},
	}
}

func TestDatasetURI(t *testing.T) {
	r := testResolver()

	t.Run("graph subject wins", func(t *testing.T) {
		d := &Dataset{Identifier: "42@bfs", URI: "https://stored.example.com/d"}
		assert.Equal(t, "https://source.example.com/d",
			r.DatasetURI(d, "https://source.example.com/d"))
	})

	t.Run("stored uri field", func(t *testing.T) {
		d := &Dataset{Identifier: "42@bfs", URI: "https://stored.example.com/d"}
		assert.Equal(t, "https://stored.example.com/d", r.DatasetURI(d, ""))
	})

	t.Run("uri extra", func(t *testing.T) {
		d := &Dataset{Identifier: "42@bfs"}
		d.SetExtra("uri", "https://extra.example.com/d")
		assert.Equal(t, "https://extra.example.com/d", r.DatasetURI(d, ""))
	})

	t.Run("permalink fallback", func(t *testing.T) {
		d := &Dataset{Identifier: "42@bfs"}
		assert.Equal(t, "https://opendata.swiss/perma/42@bfs", r.DatasetURI(d, ""))
	})

	t.Run("test environment uri replaced by permalink", func(t *testing.T) {
		d := &Dataset{Identifier: "42@bfs", URI: "https://test.example.org/dataset/42"}
		assert.Equal(t, "https://opendata.swiss/perma/42@bfs", r.DatasetURI(d, ""))
	})

	t.Run("test environment subject falls through to stored uri", func(t *testing.T) {
		d := &Dataset{Identifier: "42@bfs", URI: "https://stored.example.com/d"}
		assert.Equal(t, "https://stored.example.com/d",
			r.DatasetURI(d, "https://test.example.org/dataset/42"))
	})
}

func TestResourceURI(t *testing.T) {
	r := testResolver()

	t.Run("stored uri wins", func(t *testing.T) {
		res := &Resource{URI: "https://stored.example.com/r"}
		assert.Equal(t, "https://stored.example.com/r", r.ResourceURI(res, ""))
	})

	t.Run("catalog page fallback needs both ids", func(t *testing.T) {
		res := &Resource{ID: "res-1", PackageID: "pkg-1"}
		assert.Equal(t, "https://opendata.swiss/dataset/pkg-1/resource/res-1",
			r.ResourceURI(res, ""))
	})

	t.Run("no identity yet", func(t *testing.T) {
		assert.Empty(t, r.ResourceURI(&Resource{ID: "res-1"}, ""))
		assert.Empty(t, r.ResourceURI(&Resource{PackageID: "pkg-1"}, ""))
	})

	t.Run("test environment uri discarded", func(t *testing.T) {
		res := &Resource{URI: "https://test.example.org/r", ID: "res-1", PackageID: "pkg-1"}
		assert.Equal(t, "https://opendata.swiss/dataset/pkg-1/resource/res-1",
			r.ResourceURI(res, ""))
	})
}

func TestURIToIRI(t *testing.T) {
	t.Run("valid uri unchanged", func(t *testing.T) {
		iri, err := URIToIRI("https://example.com/a/b?x=1")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a/b?x=1", iri)
	})

	t.Run("non-ascii percent encoded", func(t *testing.T) {
		iri, err := URIToIRI("https://example.com/zürich")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/z%C3%BCrich", iri)
	})

	invalid := []struct {
		name string
		uri  string
	}{
		{name: "missing scheme", uri: "example.com/a"},
		{name: "empty host", uri: "https:///a"},
		{name: "placeholder host", uri: "https://-/a"},
		{name: "empty string", uri: ""},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := URIToIRI(tt.uri)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidURI))
		})
	}
}

func TestMungeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Bevölkerung", want: "bev-lkerung"},
		{in: "  Air Quality  ", want: "air-quality"},
		{in: "already-munged_tag.v2", want: "already-munged_tag.v2"},
		{in: "---", want: ""},
		{in: "a//b", want: "a-b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MungeTag(tt.in), "input %q", tt.in)
	}
}
