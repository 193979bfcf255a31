package stats

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUniversityTowns(t *testing.T) {
	towns, err := LoadUniversityTowns(filepath.Join("testdata", "university_towns.txt"))
	require.NoError(t, err)

	assert.Equal(t, []RegionKey{
		{"Colorado", "Boulder"},
		{"Colorado", "Fort Collins"},
		{"Michigan", "Ann Arbor"},
		{"Michigan", "East Lansing"},
		{"Michigan", "Central Michigan University"},
		{"New York", "Ithaca"},
		{"New York", "Potsdam"},
	}, towns)
}

func TestCleanTownLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Auburn (Auburn University)[1]", "Auburn"},
		{"Florence (University of North Alabama)", "Florence"},
		{"Claremont (Claremont Colleges (5))", "Claremont"},
		{"Fullerton: California State University", "California State University"},
		{"Alabama[edit]", "Alabama[edit]"},
		{"  Davis  ", "Davis"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanTownLine(tt.in), tt.in)
	}
}

func TestParseUniversityTowns_Duplicates(t *testing.T) {
	text := "Ohio[edit]\nAthens (Ohio University)[1]\nAthens\n"

	towns, err := ParseUniversityTowns(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, []RegionKey{{"Ohio", "Athens"}, {"Ohio", "Athens"}}, towns)
	assert.Len(t, TownSet(towns), 1)
}

func TestParseUniversityTowns_EmptyNamesDropped(t *testing.T) {
	text := "Texas[edit]\n (Baylor University)\nWaco\n"

	towns, err := ParseUniversityTowns(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, []RegionKey{{"Texas", "Waco"}}, towns)
}

func TestParseUniversityTowns_TownBeforeHeader(t *testing.T) {
	text := "Waco\nTexas[edit]\nAustin\n"

	_, err := ParseUniversityTowns(strings.NewReader(text))
	assert.ErrorIs(t, err, ErrTownWithoutState)
}

func TestParseUniversityTowns_Idempotent(t *testing.T) {
	towns, err := LoadUniversityTowns(filepath.Join("testdata", "university_towns.txt"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, FormatUniversityTowns(&buf, towns))

	again, err := ParseUniversityTowns(&buf)
	require.NoError(t, err)
	assert.Equal(t, towns, again)

	for _, town := range again {
		assert.NotContains(t, town.RegionName, "(")
		assert.NotContains(t, town.RegionName, ")")
		assert.NotContains(t, town.RegionName, "[")
		assert.NotContains(t, town.RegionName, ":")
	}
}

func TestParseUniversityTowns_UnbalancedBrackets(t *testing.T) {
	text := "Ohio[edit]\nKent State)\nAthens [note\nOxford]\nHiram[2]]\n"

	towns, err := ParseUniversityTowns(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, []RegionKey{
		{"Ohio", "Kent State"},
		{"Ohio", "Athens"},
		{"Ohio", "Oxford"},
		{"Ohio", "Hiram"},
	}, towns)
	for _, town := range towns {
		assert.NotContains(t, town.RegionName, "]")
		assert.NotContains(t, town.RegionName, ")")
	}
}

func TestParseUniversityTowns_LongLine(t *testing.T) {
	long := strings.Repeat("x", 70000)
	text := "Ohio[edit]\n" + long + "\nAthens\n"

	towns, err := ParseUniversityTowns(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, towns, 2)
	assert.Equal(t, long, towns[0].RegionName)
	assert.Equal(t, RegionKey{"Ohio", "Athens"}, towns[1])
}
