package harvest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opendata-swiss/dcatapchharvest/profile"
)

func storedDataset() *profile.Dataset {
	return &profile.Dataset{
		ID:       "pkg-1",
		Modified: "2021-03-02T09:30:00",
		URL:      "https://www.bfs.admin.ch/luft",
		Resources: []*profile.Resource{
			{
				ID:          "res-1",
				URL:         "https://data.example.com/42.csv",
				DownloadURL: "https://data.example.com/42.csv",
				Modified:    "2021-03-01T00:00:00",
			},
		},
	}
}

func TestDetectChangeReflexivity(t *testing.T) {
	d := storedDataset()
	changed, reason := DetectChange(d, d, nil)
	assert.False(t, changed)
	assert.Empty(t, reason)
}

func TestDetectChange(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*profile.Dataset)
		wantReason string
	}{
		{
			name:       "modified date changed",
			mutate:     func(d *profile.Dataset) { d.Modified = "2021-04-01T00:00:00" },
			wantReason: "dataset modified date changed to 2021-04-01T00:00:00",
		},
		{
			name:       "url changed",
			mutate:     func(d *profile.Dataset) { d.URL = "" },
			wantReason: `dataset url changed from "https://www.bfs.admin.ch/luft" to ""`,
		},
		{
			name: "resource count changed",
			mutate: func(d *profile.Dataset) {
				d.Resources = append(d.Resources, &profile.Resource{URL: "https://data.example.com/extra"})
			},
			wantReason: "resource count changed to 2",
		},
		{
			name:       "resource access url changed",
			mutate:     func(d *profile.Dataset) { d.Resources[0].URL = "https://data.example.com/new.csv" },
			wantReason: "resource access url changed",
		},
		{
			name:       "resource download url changed",
			mutate:     func(d *profile.Dataset) { d.Resources[0].DownloadURL = "" },
			wantReason: "resource download url changed",
		},
		{
			name:       "resource modified changed",
			mutate:     func(d *profile.Dataset) { d.Resources[0].Modified = "2021-03-05T00:00:00" },
			wantReason: "resource modified date changed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			incoming := storedDataset()
			tt.mutate(incoming)
			changed, reason := DetectChange(storedDataset(), incoming, nil)
			assert.True(t, changed)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestDetectChangeModifiedCheckedFirst(t *testing.T) {
	incoming := storedDataset()
	incoming.Modified = "2022-01-01T00:00:00"
	incoming.URL = "https://elsewhere.example.com"

	changed, reason := DetectChange(storedDataset(), incoming, nil)
	assert.True(t, changed)
	assert.Contains(t, reason, "modified date")
}

func TestDetectChangeDateEquality(t *testing.T) {
	t.Run("naive and offset forms of the same instant", func(t *testing.T) {
		existing := storedDataset()
		incoming := storedDataset()
		// 09:30 CET == 08:30 UTC.
		incoming.Modified = "2021-03-02T08:30:00Z"
		changed, _ := DetectChange(existing, incoming, nil)
		assert.False(t, changed)
	})

	t.Run("one side absent is a change", func(t *testing.T) {
		incoming := storedDataset()
		incoming.Modified = ""
		changed, _ := DetectChange(storedDataset(), incoming, nil)
		assert.True(t, changed)
	})

	t.Run("unparseable date fails open", func(t *testing.T) {
		incoming := storedDataset()
		incoming.Modified = "not a date"
		changed, _ := DetectChange(storedDataset(), incoming, nil)
		assert.False(t, changed)
	})
}
