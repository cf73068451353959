package merge

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"weekender/types"
)

func TestIdentityKey(t *testing.T) {
	cases := []struct {
		name     string
		a, b     types.Record
		category types.Category
		equal    bool
	}{
		{
			"case and whitespace insensitive",
			types.Record{Name: "Jazz Night", Venue: "The Blue Room", Date: "2025-06-01"},
			types.Record{Name: "jazz  night", Venue: "the blue room", Date: "2025-06-01"},
			types.CategoryConcerts,
			true,
		},
		{
			"punctuation stripped",
			types.Record{Name: "Joe's Diner", Address: "123 Main St, Austin, TX"},
			types.Record{Name: "Joes Diner", Address: "123 Main St., Austin"},
			types.CategoryDining,
			true,
		},
		{
			"different dates differ",
			types.Record{Name: "Jazz Night", Venue: "The Blue Room", Date: "2025-06-01"},
			types.Record{Name: "Jazz Night", Venue: "The Blue Room", Date: "2025-06-02"},
			types.CategoryConcerts,
			false,
		},
		{
			"street fragment only, city ignored",
			types.Record{Name: "Franklin Barbecue", Address: "900 E 11th St, Austin, TX 78702"},
			types.Record{Name: "Franklin Barbecue", Address: "900 E 11th St"},
			types.CategoryDining,
			true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ka := IdentityKey(c.a, c.category)
			kb := IdentityKey(c.b, c.category)
			if ka == "" || kb == "" {
				t.Fatalf("unexpected empty key: %q %q", ka, kb)
			}
			if (ka == kb) != c.equal {
				t.Fatalf("keys %q and %q; equal = %v, want %v", ka, kb, ka == kb, c.equal)
			}
		})
	}
}

func TestIdentityKeyMissingName(t *testing.T) {
	r := types.Record{Venue: "The Blue Room", Date: "2025-06-01"}
	if key := IdentityKey(r, types.CategoryConcerts); key != "" {
		t.Fatalf("record without a name must be unkeyable, got %q", key)
	}
}

func TestMergeDeduplicatesWithFieldUnion(t *testing.T) {
	a := types.Record{Name: "Jazz Night", Venue: "The Blue Room", Date: "2025-06-01", Source: "ticketmaster"}
	b := types.Record{Name: "jazz night", Venue: "the blue room", Date: "2025-06-01", PriceRange: "$20", Source: "web"}

	merged, dropped := Merge([]types.Record{a, b}, types.CategoryConcerts)
	if dropped != 0 {
		t.Fatalf("dropped %d; want 0", dropped)
	}
	if len(merged) != 1 {
		t.Fatalf("got %d records; want 1", len(merged))
	}

	got := merged[0]
	// First-seen casing wins; missing fields are filled from the duplicate.
	if got.Name != "Jazz Night" || got.Venue != "The Blue Room" {
		t.Fatalf("base record fields overwritten: %+v", got)
	}
	if got.PriceRange != "$20" {
		t.Fatalf("price not copied from duplicate: %+v", got)
	}
	if got.Source != "ticketmaster" {
		t.Fatalf("provenance should stay with the base: %s", got.Source)
	}
}

func TestMergeThreeSourcesCollapseToOne(t *testing.T) {
	records := []types.Record{
		{Name: "Franklin Barbecue", Address: "900 E 11th St", Rating: 4.8, Source: "google_places"},
		{Name: "franklin barbecue", Address: "900 E 11th St, Austin", PriceLevel: "$$", Source: "web"},
		{Name: "FRANKLIN BARBECUE", Address: "900 E 11th St, Austin, TX", Description: "Legendary brisket worth the line.", Source: "city_feeds"},
	}

	merged, _ := Merge(records, types.CategoryDining)
	if len(merged) != 1 {
		t.Fatalf("3 sources should collapse to 1 record, got %d", len(merged))
	}

	got := merged[0]
	if got.Rating != 4.8 || got.PriceLevel != "$$" || got.Description == "" {
		t.Fatalf("field union incomplete: %+v", got)
	}
}

func TestMergeLongerDescriptionWins(t *testing.T) {
	records := []types.Record{
		{Name: "Uchi", Address: "801 S Lamar", Description: "Sushi.", Source: "google_places"},
		{Name: "Uchi", Address: "801 S Lamar Blvd", Description: "Inventive omakase and the best sushi in the city.", Source: "web"},
	}

	merged, _ := Merge(records, types.CategoryDining)
	if merged[0].Description != "Inventive omakase and the best sushi in the city." {
		t.Fatalf("longer description should win: %q", merged[0].Description)
	}
}

func TestMergeDropsUnkeyableRecords(t *testing.T) {
	records := []types.Record{
		{Name: "Jazz Night", Venue: "The Blue Room", Date: "2025-06-01", Source: "ticketmaster"},
		{Venue: "Somewhere", Date: "2025-06-01", Source: "web"}, // no name
	}

	merged, dropped := Merge(records, types.CategoryConcerts)
	if len(merged) != 1 || dropped != 1 {
		t.Fatalf("got %d merged, %d dropped; want 1 and 1", len(merged), dropped)
	}
}

func TestMergeResultStableUnderPermutation(t *testing.T) {
	records := []types.Record{
		{Name: "Jazz Night", Venue: "The Blue Room", Date: "2025-06-01", PriceRange: "$20", Source: "ticketmaster"},
		{Name: "jazz night", Venue: "the blue room", Date: "2025-06-01", Genre: "Jazz", Source: "web"},
		{Name: "Indie Fest", Venue: "Mohawk", Date: "2025-06-02", Source: "ticketmaster"},
		{Name: "Acoustic Evening", Venue: "Saxon Pub", Date: "2025-05-30", Source: "web"},
	}

	baseline, _ := Merge(append([]types.Record(nil), records...), types.CategoryConcerts)
	baselineKeys := keysOf(baseline, types.CategoryConcerts)

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 20; trial++ {
		shuffled := append([]types.Record(nil), records...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		merged, _ := Merge(shuffled, types.CategoryConcerts)
		if !reflect.DeepEqual(keysOf(merged, types.CategoryConcerts), baselineKeys) {
			t.Fatalf("trial %d: identity set differs under permutation", trial)
		}

		// Merged field values are order-independent for fields held by
		// only one source.
		for _, r := range merged {
			if r.Name != "" && normalize(r.Name) == "jazz night" {
				if r.PriceRange != "$20" || r.Genre != "Jazz" {
					t.Fatalf("trial %d: field union lost data: %+v", trial, r)
				}
			}
		}
	}
}

func keysOf(records []types.Record, category types.Category) []string {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i] = IdentityKey(r, category)
	}
	sort.Strings(keys)
	return keys
}

func TestSortDatedCategoryNullsLast(t *testing.T) {
	records := []types.Record{
		{Name: "No Date", Venue: "A", Source: "web"},
		{Name: "Later", Venue: "B", Date: "2025-06-03", Source: "web"},
		{Name: "Sooner", Venue: "C", Date: "2025-06-01", Source: "web"},
	}

	merged, _ := Merge(records, types.CategoryEvents)
	if merged[0].Name != "Sooner" || merged[1].Name != "Later" || merged[2].Name != "No Date" {
		t.Fatalf("wrong order: %s, %s, %s", merged[0].Name, merged[1].Name, merged[2].Name)
	}
}

func TestSortQualityCategory(t *testing.T) {
	records := []types.Record{
		{Name: "B Spot", Address: "1 A St", Rating: 4.5, ReviewCount: 100},
		{Name: "A Spot", Address: "2 B St", Rating: 4.5, ReviewCount: 100},
		{Name: "Top Spot", Address: "3 C St", Rating: 4.9, ReviewCount: 10},
		{Name: "Busy Spot", Address: "4 D St", Rating: 4.5, ReviewCount: 500},
	}

	merged, _ := Merge(records, types.CategoryDining)
	want := []string{"Top Spot", "Busy Spot", "A Spot", "B Spot"}
	for i, name := range want {
		if merged[i].Name != name {
			t.Fatalf("position %d: got %s, want %s", i, merged[i].Name, name)
		}
	}
}

func TestFilterByDateRangeExcludesNullDates(t *testing.T) {
	records := []types.Record{
		{Name: "In Range", Date: "2025-06-02"},
		{Name: "No Date"},
		{Name: "Out of Range", Date: "2025-07-01"},
		{Name: "Weird Format", Date: "June 2, 2025"},
	}

	kept := FilterByDateRange(records, "2025-06-01", "2025-06-03")
	if len(kept) != 2 {
		t.Fatalf("kept %d records; want 2", len(kept))
	}
	names := []string{kept[0].Name, kept[1].Name}
	sort.Strings(names)
	if names[0] != "In Range" || names[1] != "Weird Format" {
		t.Fatalf("kept wrong records: %v", names)
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-06-01", "2025-06-01"},
		{"June 1, 2025", "2025-06-01"},
		{"06/01/2025", "2025-06-01"},
		{"", ""},
		{"TBD", ""},
		{"not a date", ""},
	}

	for _, c := range cases {
		if got := NormalizeDate(c.in); got != c.want {
			t.Fatalf("NormalizeDate(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}
