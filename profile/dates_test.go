package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-swiss/dcatapchharvest/vocabulary"
)

func TestCleanDatetime(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		datatype string
		want     string
		wantOK   bool
	}{
		{
			name:     "datetime passes through",
			value:    "2021-03-02T09:30:00",
			datatype: vocabulary.XSDBase + "dateTime",
			want:     "2021-03-02T09:30:00",
			wantOK:   true,
		},
		{
			name:     "datetime with offset keeps offset",
			value:    "2021-03-02T09:30:00+01:00",
			datatype: vocabulary.XSDBase + "dateTime",
			want:     "2021-03-02T09:30:00+01:00",
			wantOK:   true,
		},
		{
			name:     "date becomes midnight",
			value:    "2021-03-02",
			datatype: vocabulary.XSDBase + "date",
			want:     "2021-03-02T00:00:00",
			wantOK:   true,
		},
		{
			name:     "gYear becomes january first",
			value:    "2020",
			datatype: vocabulary.XSDBase + "gYear",
			want:     "2020-01-01T00:00:00",
			wantOK:   true,
		},
		{
			name:     "gYearMonth becomes first of month",
			value:    "2020-02",
			datatype: vocabulary.XSDBase + "gYearMonth",
			want:     "2020-02-01T00:00:00",
			wantOK:   true,
		},
		{
			name:     "legacy schema date",
			value:    "2019-11-05",
			datatype: vocabulary.SchemaBase + "Date",
			want:     "2019-11-05T00:00:00",
			wantOK:   true,
		},
		{
			name:     "bare date typed as datetime is dropped",
			value:    "2019-11-05",
			datatype: vocabulary.SchemaBase + "DateTime",
			wantOK:   false,
		},
		{
			name:     "datetime typed as date is dropped",
			value:    "2019-11-05T09:30:00",
			datatype: vocabulary.XSDBase + "date",
			wantOK:   false,
		},
		{
			name:     "over-precise gYear truncates to the year",
			value:    "2020-05",
			datatype: vocabulary.XSDBase + "gYear",
			want:     "2020-01-01T00:00:00",
			wantOK:   true,
		},
		{
			name:     "over-precise gYearMonth truncates to the month",
			value:    "2020-02-15",
			datatype: vocabulary.XSDBase + "gYearMonth",
			want:     "2020-02-01T00:00:00",
			wantOK:   true,
		},
		{
			name:     "value not matching datatype is dropped",
			value:    "next tuesday",
			datatype: vocabulary.XSDBase + "date",
			wantOK:   false,
		},
		{
			name:     "unknown datatype is dropped",
			value:    "2020-01-01",
			datatype: vocabulary.XSDBase + "token",
			wantOK:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanDatetime(tt.value, tt.datatype)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanEndDatetime(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		datatype string
		want     string
		wantOK   bool
	}{
		{
			name:     "gYear normalizes to end of year",
			value:    "2020",
			datatype: vocabulary.XSDBase + "gYear",
			want:     "2020-12-31T23:59:59.999999",
			wantOK:   true,
		},
		{
			name:     "gYearMonth in leap february",
			value:    "2020-02",
			datatype: vocabulary.XSDBase + "gYearMonth",
			want:     "2020-02-29T23:59:59.999999",
			wantOK:   true,
		},
		{
			name:     "gYearMonth in plain february",
			value:    "2021-02",
			datatype: vocabulary.XSDBase + "gYearMonth",
			want:     "2021-02-28T23:59:59.999999",
			wantOK:   true,
		},
		{
			name:     "date normalizes to end of day",
			value:    "2021-04-30",
			datatype: vocabulary.XSDBase + "date",
			want:     "2021-04-30T23:59:59.999999",
			wantOK:   true,
		},
		{
			name:     "full datetime passes through",
			value:    "2021-04-30T12:00:00",
			datatype: vocabulary.XSDBase + "dateTime",
			want:     "2021-04-30T12:00:00",
			wantOK:   true,
		},
		{
			name:     "over-precise gYear truncates to end of year",
			value:    "2020-05",
			datatype: vocabulary.XSDBase + "gYear",
			want:     "2020-12-31T23:59:59.999999",
			wantOK:   true,
		},
		{
			name:     "bare date typed as datetime is dropped",
			value:    "2021-04-30",
			datatype: vocabulary.XSDBase + "dateTime",
			wantOK:   false,
		},
		{
			name:     "unparseable value dropped",
			value:    "whenever",
			datatype: vocabulary.XSDBase + "gYear",
			wantOK:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanEndDatetime(tt.value, tt.datatype)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStoredDate(t *testing.T) {
	withOffset, ok := ParseStoredDate("2021-03-02T09:30:00+02:00")
	require.True(t, ok)

	naive, ok := ParseStoredDate("2021-03-02T08:30:00")
	require.True(t, ok)
	// Naive values are read as Central European time.
	assert.True(t, withOffset.Equal(naive))

	_, ok = ParseStoredDate("")
	assert.False(t, ok)
	_, ok = ParseStoredDate("not a date")
	assert.False(t, ok)
}
