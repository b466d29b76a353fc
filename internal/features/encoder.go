// ABOUTME: Feature encoder maps screening observations to the numeric schema
// ABOUTME: Absent observations zero their whole category; availability flags record presence
package features

import (
	"github.com/oralsmart/riskml/internal/models"
)

// EncodeMap produces the full canonical feature map for a pair of observations.
// Either observation may be nil; its fields then encode to 0 and the matching
// availability flag stays 0, so one model serves patients with partial data.
func EncodeMap(dental *models.DentalObservation, dietary *models.DietaryObservation) map[string]float64 {
	m := make(map[string]float64, len(canonicalNames))
	for _, name := range canonicalNames {
		m[name] = 0
	}

	if dental != nil {
		m["has_dental_data"] = 1
		m["sa_citizen"] = binary(dental.SACitizen)
		m["special_needs"] = binary(dental.SpecialNeeds)
		m["caregiver_treatment"] = binary(dental.CaregiverTreatment)
		m["appliance"] = binary(dental.Appliance)
		m["plaque"] = binary(dental.Plaque)
		m["dry_mouth"] = binary(dental.DryMouth)
		m["enamel_defects"] = binary(dental.EnamelDefects)
		m["fluoride_water"] = binary(dental.FluorideWater)
		m["fluoride_toothpaste"] = binary(dental.FluorideToothpaste)
		m["topical_fluoride"] = binary(dental.TopicalFluoride)
		m["regular_checkups"] = binary(dental.RegularCheckups)
		m["sealed_pits"] = binary(dental.SealedPits)
		m["restorative_procedures"] = binary(dental.RestorativeProcedures)
		m["enamel_change"] = binary(dental.EnamelChange)
		m["dentin_discoloration"] = binary(dental.DentinDiscoloration)
		m["white_spot_lesions"] = binary(dental.WhiteSpotLesions)
		m["cavitated_lesions"] = binary(dental.CavitatedLesions)
		m["multiple_restorations"] = binary(dental.MultipleRestorations)
		m["missing_teeth"] = binary(dental.MissingTeeth)
		m["total_dmft_score"] = float64(ScoreDMFT(dental.TeethData).Total)
	}

	if dietary != nil {
		m["has_dietary_data"] = 1

		m["sweet_sugary_foods"] = binary(dietary.SweetSugaryFoods)
		m["sweet_sugary_foods_bedtime"] = binary(dietary.SweetSugaryFoodsBedtime)
		m["sweet_sugary_foods_daily"] = EncodeFrequency(dietary.SweetSugaryFoodsDaily)
		m["sweet_sugary_foods_weekly"] = EncodeFrequency(dietary.SweetSugaryFoodsWeekly)
		m["sweet_sugary_foods_timing"] = EncodeFrequency(dietary.SweetSugaryFoodsTiming)

		m["takeaways_processed_foods"] = binary(dietary.TakeawaysProcessedFoods)
		m["takeaways_processed_foods_daily"] = EncodeFrequency(dietary.TakeawaysProcessedFoodsDaily)
		m["takeaways_processed_foods_weekly"] = EncodeFrequency(dietary.TakeawaysProcessedFoodsWeekly)

		m["fresh_fruit"] = binary(dietary.FreshFruit)
		m["fresh_fruit_bedtime"] = binary(dietary.FreshFruitBedtime)
		m["fresh_fruit_daily"] = EncodeFrequency(dietary.FreshFruitDaily)
		m["fresh_fruit_weekly"] = EncodeFrequency(dietary.FreshFruitWeekly)
		m["fresh_fruit_timing"] = EncodeFrequency(dietary.FreshFruitTiming)

		m["cold_drinks_juices"] = binary(dietary.ColdDrinksJuices)
		m["cold_drinks_juices_bedtime"] = binary(dietary.ColdDrinksJuicesBedtime)
		m["cold_drinks_juices_daily"] = EncodeFrequency(dietary.ColdDrinksJuicesDaily)
		m["cold_drinks_juices_weekly"] = EncodeFrequency(dietary.ColdDrinksJuicesWeekly)
		m["cold_drinks_juices_timing"] = EncodeFrequency(dietary.ColdDrinksJuicesTiming)

		m["processed_fruit"] = binary(dietary.ProcessedFruit)
		m["processed_fruit_bedtime"] = binary(dietary.ProcessedFruitBedtime)
		m["processed_fruit_daily"] = EncodeFrequency(dietary.ProcessedFruitDaily)
		m["processed_fruit_weekly"] = EncodeFrequency(dietary.ProcessedFruitWeekly)
		m["processed_fruit_timing"] = EncodeFrequency(dietary.ProcessedFruitTiming)

		m["spreads"] = binary(dietary.Spreads)
		m["spreads_bedtime"] = binary(dietary.SpreadsBedtime)
		m["spreads_daily"] = EncodeFrequency(dietary.SpreadsDaily)
		m["spreads_weekly"] = EncodeFrequency(dietary.SpreadsWeekly)
		m["spreads_timing"] = EncodeFrequency(dietary.SpreadsTiming)

		m["added_sugars"] = binary(dietary.AddedSugars)
		m["added_sugars_bedtime"] = binary(dietary.AddedSugarsBedtime)
		m["added_sugars_daily"] = EncodeFrequency(dietary.AddedSugarsDaily)
		m["added_sugars_weekly"] = EncodeFrequency(dietary.AddedSugarsWeekly)
		m["added_sugars_timing"] = EncodeFrequency(dietary.AddedSugarsTiming)

		m["salty_snacks"] = binary(dietary.SaltySnacks)
		m["salty_snacks_daily"] = EncodeFrequency(dietary.SaltySnacksDaily)
		m["salty_snacks_weekly"] = EncodeFrequency(dietary.SaltySnacksWeekly)
		m["salty_snacks_timing"] = EncodeFrequency(dietary.SaltySnacksTiming)

		m["dairy_products"] = binary(dietary.DairyProducts)
		m["dairy_products_daily"] = EncodeFrequency(dietary.DairyProductsDaily)
		m["dairy_products_weekly"] = EncodeFrequency(dietary.DairyProductsWeekly)

		m["vegetables"] = binary(dietary.Vegetables)
		m["vegetables_daily"] = EncodeFrequency(dietary.VegetablesDaily)
		m["vegetables_weekly"] = EncodeFrequency(dietary.VegetablesWeekly)

		m["water"] = binary(dietary.Water)
		m["water_timing"] = EncodeFrequency(dietary.WaterTiming)
		m["water_glasses"] = EncodeFrequency(dietary.WaterGlasses)
	}

	return m
}

// Encode produces the canonical-order feature vector for a pair of observations.
func Encode(dental *models.DentalObservation, dietary *models.DietaryObservation) []float64 {
	return Vector(EncodeMap(dental, dietary), canonicalNames)
}

// Vector orders a feature map by the given name list. Names missing from the
// map encode to 0, matching the trainer's handling of absent columns.
func Vector(m map[string]float64, names []string) []float64 {
	vec := make([]float64, len(names))
	for i, name := range names {
		vec[i] = m[name]
	}
	return vec
}

func binary(v models.YesNo) float64 {
	if v.Bool() {
		return 1
	}
	return 0
}
