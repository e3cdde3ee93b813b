package harvest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-swiss/dcatapchharvest/errors"
	"github.com/opendata-swiss/dcatapchharvest/profile"
)

type fakeOrgs struct {
	orgs map[string]Organization
}

func (f *fakeOrgs) Resolve(_ context.Context, nameOrID string) (Organization, error) {
	org, ok := f.orgs[nameOrID]
	if !ok {
		return Organization{}, errors.ErrNotFound
	}
	return org, nil
}

func testDeriver() *GUIDDeriver {
	return &GUIDDeriver{
		Orgs: &fakeOrgs{orgs: map[string]Organization{
			"bfs": {ID: "org-1", Name: "bfs"},
		}},
	}
}

func TestDeriveGUIDPrecedence(t *testing.T) {
	ctx := context.Background()
	deriver := testDeriver()

	t.Run("identifier wins", func(t *testing.T) {
		d := &profile.Dataset{Identifier: "42@bfs", URI: "https://x/d", Name: "n"}
		guid, err := deriver.Derive(ctx, d, "https://src")
		require.NoError(t, err)
		assert.Equal(t, "42@bfs", guid)
	})

	t.Run("uri extra before uri field", func(t *testing.T) {
		d := &profile.Dataset{URI: "https://x/field"}
		d.SetExtra("uri", "https://x/extra")
		guid, err := deriver.Derive(ctx, d, "")
		require.NoError(t, err)
		assert.Equal(t, "https://x/extra", guid)
	})

	t.Run("uri field", func(t *testing.T) {
		d := &profile.Dataset{URI: "https://x/field"}
		guid, err := deriver.Derive(ctx, d, "")
		require.NoError(t, err)
		assert.Equal(t, "https://x/field", guid)
	})

	t.Run("identifier extra", func(t *testing.T) {
		d := &profile.Dataset{}
		d.SetExtra("identifier", "ext-id")
		guid, err := deriver.Derive(ctx, d, "")
		require.NoError(t, err)
		assert.Equal(t, "ext-id", guid)
	})

	t.Run("dcat identifier extra", func(t *testing.T) {
		d := &profile.Dataset{}
		d.SetExtra("dcat_identifier", "dcat-id")
		guid, err := deriver.Derive(ctx, d, "")
		require.NoError(t, err)
		assert.Equal(t, "dcat-id", guid)
	})

	t.Run("name prefixed with source url", func(t *testing.T) {
		d := &profile.Dataset{Name: "luftqualitaet"}
		guid, err := deriver.Derive(ctx, d, "https://src.example.com/")
		require.NoError(t, err)
		assert.Equal(t, "https://src.example.com/luftqualitaet", guid)
	})

	t.Run("nothing usable", func(t *testing.T) {
		_, err := deriver.Derive(ctx, &profile.Dataset{}, "https://src")
		assert.True(t, errors.Is(err, errors.ErrMissingGUID))
	})
}

func TestDeriveGUIDOrganizationValidation(t *testing.T) {
	ctx := context.Background()
	deriver := testDeriver()

	t.Run("matching organization accepted", func(t *testing.T) {
		d := &profile.Dataset{Identifier: "42@bfs", Organization: "bfs"}
		guid, err := deriver.Derive(ctx, d, "")
		require.NoError(t, err)
		assert.Equal(t, "42@bfs", guid)
	})

	t.Run("unknown organization rejects record", func(t *testing.T) {
		d := &profile.Dataset{Identifier: "42@ghost"}
		_, err := deriver.Derive(ctx, d, "")
		assert.True(t, errors.Is(err, errors.ErrOrgNotFound))
	})

	t.Run("mismatched organization rejects record", func(t *testing.T) {
		d := &profile.Dataset{Identifier: "42@bfs", Organization: "bafu"}
		_, err := deriver.Derive(ctx, d, "")
		assert.True(t, errors.Is(err, errors.ErrOrgMismatch))
	})

	t.Run("identifier without slug skips validation", func(t *testing.T) {
		d := &profile.Dataset{Identifier: "plain-identifier", Organization: "bafu"}
		guid, err := deriver.Derive(ctx, d, "")
		require.NoError(t, err)
		assert.Equal(t, "plain-identifier", guid)
	})
}
