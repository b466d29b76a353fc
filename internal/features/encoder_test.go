// ABOUTME: Tests for the feature encoder
// ABOUTME: Verifies schema length/order, availability flags, and determinism
package features

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oralsmart/riskml/internal/models"
)

func sampleDental() *models.DentalObservation {
	return &models.DentalObservation{
		SACitizen:        "yes",
		Plaque:           "yes",
		EnamelDefects:    "yes",
		FluorideWater:    "no",
		CavitatedLesions: "yes",
		TeethData: map[string]string{
			"tooth_11": "1",
			"tooth_21": "2",
			"tooth_31": "3",
		},
	}
}

func sampleDietary() *models.DietaryObservation {
	return &models.DietaryObservation{
		SweetSugaryFoods:       "yes",
		SweetSugaryFoodsDaily:  "1-3_day",
		SweetSugaryFoodsTiming: "between_meals",
		ColdDrinksJuices:       "yes",
		ColdDrinksJuicesDaily:  "4-6_day",
		Water:                  "yes",
		WaterTiming:            "with_meals",
		WaterGlasses:           "2-4",
	}
}

func TestCanonicalNames_Schema(t *testing.T) {
	names := CanonicalNames()

	if len(names) != 68 {
		t.Fatalf("len(CanonicalNames()) = %d, want 68", len(names))
	}
	if names[0] != "has_dental_data" || names[1] != "has_dietary_data" {
		t.Errorf("availability flags must lead the schema, got %q, %q", names[0], names[1])
	}

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate feature name %q", n)
		}
		seen[n] = true
	}

	// The returned slice is a copy; mutating it must not corrupt the schema.
	names[0] = "mutated"
	if CanonicalNames()[0] != "has_dental_data" {
		t.Error("CanonicalNames() must return a defensive copy")
	}
}

func TestEncode_Length(t *testing.T) {
	tests := []struct {
		name    string
		dental  *models.DentalObservation
		dietary *models.DietaryObservation
	}{
		{"both", sampleDental(), sampleDietary()},
		{"dental only", sampleDental(), nil},
		{"dietary only", nil, sampleDietary()},
		{"neither", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vec := Encode(tt.dental, tt.dietary)
			if len(vec) != len(CanonicalNames()) {
				t.Errorf("len(Encode()) = %d, want %d", len(vec), len(CanonicalNames()))
			}
		})
	}
}

func TestEncode_NilObservationsAllZero(t *testing.T) {
	vec := Encode(nil, nil)
	for i, v := range vec {
		if v != 0 {
			t.Errorf("Encode(nil, nil)[%d] = %v, want 0 (%s)", i, v, CanonicalNames()[i])
		}
	}
}

func TestEncode_AvailabilityFlags(t *testing.T) {
	tests := []struct {
		name        string
		dental      *models.DentalObservation
		dietary     *models.DietaryObservation
		wantDental  float64
		wantDietary float64
	}{
		{"both", sampleDental(), sampleDietary(), 1, 1},
		{"dental only", sampleDental(), nil, 1, 0},
		{"dietary only", nil, sampleDietary(), 0, 1},
		{"neither", nil, nil, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := EncodeMap(tt.dental, tt.dietary)
			if m["has_dental_data"] != tt.wantDental {
				t.Errorf("has_dental_data = %v, want %v", m["has_dental_data"], tt.wantDental)
			}
			if m["has_dietary_data"] != tt.wantDietary {
				t.Errorf("has_dietary_data = %v, want %v", m["has_dietary_data"], tt.wantDietary)
			}
		})
	}
}

func TestEncodeMap_FieldValues(t *testing.T) {
	m := EncodeMap(sampleDental(), sampleDietary())

	want := map[string]float64{
		"sa_citizen":                1,
		"plaque":                    1,
		"fluoride_water":            0,
		"special_needs":             0, // unanswered encodes to 0
		"total_dmft_score":          3,
		"sweet_sugary_foods":        1,
		"sweet_sugary_foods_daily":  2,
		"sweet_sugary_foods_timing": 2,
		"cold_drinks_juices_daily":  4,
		"water_timing":              1,
		"water_glasses":             2,
		"spreads":                   0,
	}
	for name, wantV := range want {
		if m[name] != wantV {
			t.Errorf("%s = %v, want %v", name, m[name], wantV)
		}
	}
}

func TestEncode_Deterministic(t *testing.T) {
	a := Encode(sampleDental(), sampleDietary())
	b := Encode(sampleDental(), sampleDietary())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("encoding is not deterministic (-first +second):\n%s", diff)
	}
}

func TestVector_MissingNamesDefaultZero(t *testing.T) {
	m := map[string]float64{"plaque": 1}
	vec := Vector(m, []string{"plaque", "not_a_feature"})
	if vec[0] != 1 || vec[1] != 0 {
		t.Errorf("Vector() = %v, want [1 0]", vec)
	}
}
