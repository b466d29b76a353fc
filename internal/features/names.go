// ABOUTME: Canonical feature schema shared by encoder, trainer, and predictor
// ABOUTME: Order is load-bearing; trained artifacts depend on it byte-for-byte
package features

// CanonicalNames returns the full ordered feature schema. The two availability
// flags come first, then dental indicators, the DMFT summary, and the dietary
// fields grouped per food item. A trained artifact may narrow this list through
// feature selection, but never reorders it.
func CanonicalNames() []string {
	names := make([]string, len(canonicalNames))
	copy(names, canonicalNames)
	return names
}

var canonicalNames = []string{
	"has_dental_data",
	"has_dietary_data",

	"sa_citizen",
	"special_needs",
	"caregiver_treatment",
	"appliance",
	"plaque",
	"dry_mouth",
	"enamel_defects",
	"fluoride_water",
	"fluoride_toothpaste",
	"topical_fluoride",
	"regular_checkups",
	"sealed_pits",
	"restorative_procedures",
	"enamel_change",
	"dentin_discoloration",
	"white_spot_lesions",
	"cavitated_lesions",
	"multiple_restorations",
	"missing_teeth",

	"total_dmft_score",

	"sweet_sugary_foods",
	"sweet_sugary_foods_bedtime",
	"sweet_sugary_foods_daily",
	"sweet_sugary_foods_weekly",
	"sweet_sugary_foods_timing",

	"takeaways_processed_foods",
	"takeaways_processed_foods_daily",
	"takeaways_processed_foods_weekly",

	"fresh_fruit",
	"fresh_fruit_bedtime",
	"fresh_fruit_daily",
	"fresh_fruit_weekly",
	"fresh_fruit_timing",

	"cold_drinks_juices",
	"cold_drinks_juices_bedtime",
	"cold_drinks_juices_daily",
	"cold_drinks_juices_weekly",
	"cold_drinks_juices_timing",

	"processed_fruit",
	"processed_fruit_bedtime",
	"processed_fruit_daily",
	"processed_fruit_weekly",
	"processed_fruit_timing",

	"spreads",
	"spreads_bedtime",
	"spreads_daily",
	"spreads_weekly",
	"spreads_timing",

	"added_sugars",
	"added_sugars_bedtime",
	"added_sugars_daily",
	"added_sugars_weekly",
	"added_sugars_timing",

	"salty_snacks",
	"salty_snacks_daily",
	"salty_snacks_weekly",
	"salty_snacks_timing",

	"dairy_products",
	"dairy_products_daily",
	"dairy_products_weekly",

	"vegetables",
	"vegetables_daily",
	"vegetables_weekly",

	"water",
	"water_timing",
	"water_glasses",
}
