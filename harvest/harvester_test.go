package harvest

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-swiss/dcatapchharvest/config"
	"github.com/opendata-swiss/dcatapchharvest/errors"
	"github.com/opendata-swiss/dcatapchharvest/metric"
	"github.com/opendata-swiss/dcatapchharvest/profile"
	"github.com/opendata-swiss/dcatapchharvest/rdfx"
	"github.com/opendata-swiss/dcatapchharvest/vocabulary"
)

const pageFixture = `
@prefix dct: <http://purl.org/dc/terms/> .
@prefix dcat: <http://www.w3.org/ns/dcat#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .

<https://source.example.com/dataset/42>
    a dcat:Dataset ;
    dct:identifier "42@bfs" ;
    dct:title "Luftqualität"@de ;
    dct:modified "2021-03-02T09:30:00"^^xsd:dateTime ;
    dcat:distribution <https://source.example.com/dist/1> .

<https://source.example.com/dist/1>
    a dcat:Distribution ;
    dcat:accessURL <https://data.example.com/42.csv> ;
    dct:license "NonCommercialAllowed-CommercialAllowed-ReferenceRequired" ;
    dct:modified "2021-03-01"^^xsd:date .
`

type fakeStore struct {
	byGUID map[string]*profile.Dataset
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{byGUID: make(map[string]*profile.Dataset)}
}

func (f *fakeStore) Show(_ context.Context, id string) (*profile.Dataset, error) {
	d, ok := f.byGUID[id]
	if !ok {
		return nil, errors.ErrNotFound
	}
	return d, nil
}

func (f *fakeStore) Create(_ context.Context, d *profile.Dataset) (*profile.Dataset, error) {
	f.nextID++
	d.ID = "pkg-" + strconv.Itoa(f.nextID)
	f.byGUID[d.Identifier] = d
	return d, nil
}

func (f *fakeStore) Update(_ context.Context, d *profile.Dataset) (*profile.Dataset, error) {
	f.byGUID[d.Identifier] = d
	return d, nil
}

type fakeActivity struct {
	messages []string
}

func (f *fakeActivity) RecordChange(_ context.Context, datasetID, message string) {
	f.messages = append(f.messages, datasetID+": "+message)
}

func newTestHarvester(t *testing.T, store *fakeStore, activity *fakeActivity) *Harvester {
	t.Helper()
	bundle, err := vocabulary.Default()
	require.NoError(t, err)

	cfg := config.Default()
	return &Harvester{
		Store:     store,
		Activity:  activity,
		Deriver:   testDeriver(),
		Parser:    profile.NewParser(bundle, nil),
		Resolver:  &profile.Resolver{SiteURL: cfg.SiteURL, TestEnvironmentHosts: cfg.TestEnvironmentHosts},
		Config:    cfg,
		Metrics:   metric.NewMetrics(),
		SourceURL: "https://source.example.com",
	}
}

func TestProcessPageCreatesThenLeavesUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	activity := &fakeActivity{}
	h := newTestHarvester(t, store, activity)

	first, err := h.ProcessPage(ctx, []byte(pageFixture), rdfx.FormatTurtle)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)
	assert.Equal(t, []string{"42@bfs"}, first.GUIDs)
	require.Contains(t, store.byGUID, "42@bfs")
	assert.NotEmpty(t, store.byGUID["42@bfs"].Name)
	assert.Equal(t, "https://source.example.com/dataset/42", store.byGUID["42@bfs"].Extra("uri"))

	second, err := h.ProcessPage(ctx, []byte(pageFixture), rdfx.FormatTurtle)
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Equal(t, 1, second.Unchanged)
	assert.Empty(t, activity.messages)
}

func TestProcessPageUpdatesOnChange(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	activity := &fakeActivity{}
	h := newTestHarvester(t, store, activity)

	_, err := h.ProcessPage(ctx, []byte(pageFixture), rdfx.FormatTurtle)
	require.NoError(t, err)
	storedID := store.byGUID["42@bfs"].ID
	existingResourceURL := store.byGUID["42@bfs"].Resources[0].URL
	store.byGUID["42@bfs"].Resources[0].ID = "res-1"

	changed := strings.Replace(pageFixture, "2021-03-02T09:30:00", "2021-06-01T00:00:00", 1)
	result, err := h.ProcessPage(ctx, []byte(changed), rdfx.FormatTurtle)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	require.Len(t, activity.messages, 1)
	assert.Contains(t, activity.messages[0], storedID+": ")
	assert.Contains(t, activity.messages[0], "modified date changed")

	// The incoming resource reused the stored id rather than creating a
	// duplicate row.
	updated := store.byGUID["42@bfs"]
	require.Len(t, updated.Resources, 1)
	assert.Equal(t, existingResourceURL, updated.Resources[0].URL)
	assert.Equal(t, "res-1", updated.Resources[0].ID)
}

func TestProcessPageExcludedIdentifier(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	h := newTestHarvester(t, store, &fakeActivity{})
	h.Config.ExcludedDatasetIdentifiers = []string{"42@bfs"}

	result, err := h.ProcessPage(ctx, []byte(pageFixture), rdfx.FormatTurtle)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, store.byGUID)
}

func TestProcessPageExcludedLicenseDropsDataset(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	h := newTestHarvester(t, store, &fakeActivity{})
	h.Config.ExcludedLicenses = []string{"NonCommercialAllowed-CommercialAllowed-ReferenceRequired"}

	// One resource under an excluded license excludes the whole dataset.
	result, err := h.ProcessPage(ctx, []byte(pageFixture), rdfx.FormatTurtle)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, result.Created)
	assert.Empty(t, result.GUIDs)
	assert.Empty(t, store.byGUID)
}

func TestDatasetNamePrefersGerman(t *testing.T) {
	d := &profile.Dataset{
		Identifier: "42@bfs",
		Title: profile.LocalizedText{
			"de": "Luftqualitaet",
			"en": "Air quality",
		},
	}
	assert.Equal(t, "luftqualitaet", datasetName(d))

	d.Title["de"] = ""
	assert.Equal(t, "air-quality", datasetName(d))

	d.Title["en"] = ""
	assert.Equal(t, "42-bfs", datasetName(d))
}

func TestProcessPageHostRewrite(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	h := newTestHarvester(t, store, &fakeActivity{})
	h.Config.HostRewrites = map[string]string{"data.example.com": "cdn.example.com"}

	_, err := h.ProcessPage(ctx, []byte(pageFixture), rdfx.FormatTurtle)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/42.csv", store.byGUID["42@bfs"].Resources[0].URL)
}

func TestProcessPageUnusablePages(t *testing.T) {
	ctx := context.Background()
	h := newTestHarvester(t, newFakeStore(), &fakeActivity{})

	t.Run("empty page", func(t *testing.T) {
		_, err := h.ProcessPage(ctx, nil, rdfx.FormatTurtle)
		assert.Error(t, err)
	})

	t.Run("no datasets", func(t *testing.T) {
		_, err := h.ProcessPage(ctx, []byte(`<http://a> <http://b> "c" .`), rdfx.FormatTurtle)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNoDatasets))
	})
}

func TestReconcileDeletions(t *testing.T) {
	seen := map[string]struct{}{"a": {}, "b": {}}

	t.Run("partial deletions applied", func(t *testing.T) {
		gone, err := ReconcileDeletions([]string{"a", "b", "c"}, seen)
		require.NoError(t, err)
		assert.Equal(t, []string{"c"}, gone)
	})

	t.Run("all deletions neutralized", func(t *testing.T) {
		gone, err := ReconcileDeletions([]string{"x", "y"}, seen)
		assert.True(t, errors.Is(err, errors.ErrOnlyDeletions))
		assert.Nil(t, gone)
	})

	t.Run("nothing stored yet", func(t *testing.T) {
		gone, err := ReconcileDeletions(nil, seen)
		require.NoError(t, err)
		assert.Empty(t, gone)
	})
}
