package matcher

import (
	"testing"
	"time"

	"inventory-manager/feature/inventory/merge"
	"inventory-manager/feature/inventory/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)

func buildStore(t *testing.T, manufacturers, prices, dates [][]string) *models.Store {
	t.Helper()
	store, _, err := merge.Merge(manufacturers, prices, dates)
	require.NoError(t, err)
	return store
}

func widgetStore(t *testing.T) *models.Store {
	return buildStore(t,
		[][]string{
			{"a1", "Acme", "Widget"},
			{"a2", "Acme", "Widget"},
			{"b1", "Bolt", "Widget"},
			{"a3", "Acme", "Widget", "dented"},
			{"a4", "Acme", "Widget"},
			{"a5", "Acme", "Widget"},
			{"g1", "Acme", "Gadget"},
		},
		[][]string{
			{"a1", "50"},
			{"a2", "80"},
			{"b1", "70"},
			{"a3", "500"},
			{"a4", "900"},
			{"g1", "75"},
		},
		[][]string{
			{"a1", "01/01/2030"},
			{"a2", "01/01/2030"},
			{"b1", "01/01/2030"},
			{"a3", "01/01/2030"},
			{"a4", "01/01/2020"},
			{"a5", "01/01/2030"},
			{"g1", "01/01/2030"},
		},
	)
}

func TestParseQuery(t *testing.T) {
	store := widgetStore(t)

	tests := []struct {
		name  string
		input string
		want  Query
		err   error
	}{
		{"Simple", "acme widget", Query{Manufacturer: "acme", ItemType: "widget"}, nil},
		{"MixedCaseAndNoise", "  I want an ACME   Widget please ", Query{Manufacturer: "acme", ItemType: "widget"}, nil},
		{"Repeated", "acme acme widget", Query{Manufacturer: "acme", ItemType: "widget"}, nil},
		{"TwoManufacturers", "acme bolt widget", Query{}, ErrAmbiguousQuery},
		{"TwoTypes", "acme widget gadget", Query{}, ErrAmbiguousQuery},
		{"NoType", "acme", Query{}, ErrUnknownItem},
		{"NoManufacturer", "widget", Query{}, ErrUnknownItem},
		{"Empty", "", Query{}, ErrUnknownItem},
		{"Substring", "acmewidget", Query{}, ErrUnknownItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuery(tt.input, store)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindBestMatch(t *testing.T) {
	store := widgetStore(t)

	best, ok := FindBestMatch("acme", "widget", store, now)
	require.True(t, ok)
	assert.Equal(t, "a2", best.ID, "damaged and expired items are skipped")
	assert.Equal(t, 80, *best.Price)

	_, ok = FindBestMatch("bolt", "gadget", store, now)
	assert.False(t, ok)
}

func TestFindBestMatch_TieKeepsFirst(t *testing.T) {
	store := buildStore(t,
		[][]string{{"x", "Acme", "widget"}, {"y", "Acme", "widget"}},
		[][]string{{"x", "10"}, {"y", "10"}},
		[][]string{{"x", "1/1/2030"}, {"y", "1/1/2030"}},
	)

	best, ok := FindBestMatch("ACME", "WIDGET", store, now)
	require.True(t, ok)
	assert.Equal(t, "x", best.ID)
}

func TestFindBestMatch_RequiresPriceAndFutureDate(t *testing.T) {
	store := buildStore(t,
		[][]string{{"nodate", "Acme", "widget"}, {"noprice", "Acme", "widget"}, {"today", "Acme", "widget"}},
		[][]string{{"nodate", "10"}, {"today", "10"}},
		[][]string{{"noprice", "1/1/2030"}, {"today", "6/1/2024"}},
	)

	_, ok := FindBestMatch("acme", "widget", store, now)
	assert.False(t, ok)
}

func TestFindClosestAlternative(t *testing.T) {
	store := widgetStore(t)

	alt, ok := FindClosestAlternative("a2", "widget", 80, store, now)
	require.True(t, ok)
	assert.Equal(t, "b1", alt.ID)
	assert.Equal(t, "Bolt", alt.Manufacturer)

	_, ok = FindClosestAlternative("g1", "gadget", 75, store, now)
	assert.False(t, ok)
}

func TestFindClosestAlternative_TieKeepsFirst(t *testing.T) {
	store := buildStore(t,
		[][]string{{"best", "Acme", "widget"}, {"low", "Bolt", "widget"}, {"high", "Core", "widget"}},
		[][]string{{"best", "100"}, {"low", "90"}, {"high", "110"}},
		[][]string{{"best", "1/1/2030"}, {"low", "1/1/2030"}, {"high", "1/1/2030"}},
	)

	alt, ok := FindClosestAlternative("best", "widget", 100, store, now)
	require.True(t, ok)
	assert.Equal(t, "low", alt.ID)
}

func TestProcess(t *testing.T) {
	store := widgetStore(t)

	res, err := Process("Acme Widget", store, now)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Your item is: a2, Acme, Widget, 80",
		"You may, also, consider: b1, Bolt, Widget, 70",
	}, res.Lines())
	assert.Equal(t, "match", Outcome(err))
}

func TestProcess_NoAlternative(t *testing.T) {
	store := widgetStore(t)

	res, err := Process("acme gadget", store, now)
	require.NoError(t, err)
	assert.Nil(t, res.Alternative)
	assert.Equal(t, []string{"Your item is: g1, Acme, Gadget, 75"}, res.Lines())
}

func TestProcess_Failures(t *testing.T) {
	store := widgetStore(t)

	tests := []struct {
		input   string
		err     error
		outcome string
	}{
		{"bolt acme widget", ErrAmbiguousQuery, "ambiguous"},
		{"sprocket", ErrUnknownItem, "unknown"},
		{"bolt gadget", ErrNoEligibleItem, "no_eligible"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Process(tt.input, store, now)
			assert.ErrorIs(t, err, tt.err)
			assert.True(t, IsNoSuchItem(err))
			assert.Equal(t, tt.outcome, Outcome(err))
		})
	}
}

func TestEligible(t *testing.T) {
	future := models.TimePtr(now.Add(24 * time.Hour))
	past := models.TimePtr(now.Add(-24 * time.Hour))

	assert.True(t, Eligible(models.Record{Price: models.IntPtr(1), ServiceDate: future}, now))
	assert.False(t, Eligible(models.Record{Price: models.IntPtr(1), ServiceDate: past}, now))
	assert.False(t, Eligible(models.Record{ServiceDate: future}, now))
	assert.False(t, Eligible(models.Record{Price: models.IntPtr(1)}, now))
	assert.False(t, Eligible(models.Record{Price: models.IntPtr(1), ServiceDate: future, Damaged: "x"}, now))
}
