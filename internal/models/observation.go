// ABOUTME: Observation types for dental and dietary screening records
// ABOUTME: Explicit named fields replace the loose attribute bags of upstream forms
package models

// YesNo is a tri-state answer: "yes", "no", or "" when the question was not answered.
type YesNo string

// Bool reports whether the answer is an affirmative.
func (y YesNo) Bool() bool { return y == "yes" || y == "Yes" || y == "YES" }

// DentalObservation holds one dental screening: binary clinical indicators plus a
// free-form map from tooth identifier to status code used for DMFT scoring.
type DentalObservation struct {
	SACitizen             YesNo `json:"sa_citizen"`
	SpecialNeeds          YesNo `json:"special_needs"`
	CaregiverTreatment    YesNo `json:"caregiver_treatment"`
	Appliance             YesNo `json:"appliance"`
	Plaque                YesNo `json:"plaque"`
	DryMouth              YesNo `json:"dry_mouth"`
	EnamelDefects         YesNo `json:"enamel_defects"`
	FluorideWater         YesNo `json:"fluoride_water"`
	FluorideToothpaste    YesNo `json:"fluoride_toothpaste"`
	TopicalFluoride       YesNo `json:"topical_fluoride"`
	RegularCheckups       YesNo `json:"regular_checkups"`
	SealedPits            YesNo `json:"sealed_pits"`
	RestorativeProcedures YesNo `json:"restorative_procedures"`
	EnamelChange          YesNo `json:"enamel_change"`
	DentinDiscoloration   YesNo `json:"dentin_discoloration"`
	WhiteSpotLesions      YesNo `json:"white_spot_lesions"`
	CavitatedLesions      YesNo `json:"cavitated_lesions"`
	MultipleRestorations  YesNo `json:"multiple_restorations"`
	MissingTeeth          YesNo `json:"missing_teeth"`

	// TeethData maps a tooth identifier (FDI notation upstream) to a status code.
	TeethData map[string]string `json:"teeth_data,omitempty"`
}

// DietaryObservation holds one dietary screening: yes/no habit flags plus
// free-text frequency, timing, and quantity answers that are encoded downstream.
type DietaryObservation struct {
	SweetSugaryFoods        YesNo  `json:"sweet_sugary_foods"`
	SweetSugaryFoodsBedtime YesNo  `json:"sweet_sugary_foods_bedtime"`
	SweetSugaryFoodsDaily   string `json:"sweet_sugary_foods_daily"`
	SweetSugaryFoodsWeekly  string `json:"sweet_sugary_foods_weekly"`
	SweetSugaryFoodsTiming  string `json:"sweet_sugary_foods_timing"`

	TakeawaysProcessedFoods       YesNo  `json:"takeaways_processed_foods"`
	TakeawaysProcessedFoodsDaily  string `json:"takeaways_processed_foods_daily"`
	TakeawaysProcessedFoodsWeekly string `json:"takeaways_processed_foods_weekly"`

	FreshFruit        YesNo  `json:"fresh_fruit"`
	FreshFruitBedtime YesNo  `json:"fresh_fruit_bedtime"`
	FreshFruitDaily   string `json:"fresh_fruit_daily"`
	FreshFruitWeekly  string `json:"fresh_fruit_weekly"`
	FreshFruitTiming  string `json:"fresh_fruit_timing"`

	ColdDrinksJuices        YesNo  `json:"cold_drinks_juices"`
	ColdDrinksJuicesBedtime YesNo  `json:"cold_drinks_juices_bedtime"`
	ColdDrinksJuicesDaily   string `json:"cold_drinks_juices_daily"`
	ColdDrinksJuicesWeekly  string `json:"cold_drinks_juices_weekly"`
	ColdDrinksJuicesTiming  string `json:"cold_drinks_juices_timing"`

	ProcessedFruit        YesNo  `json:"processed_fruit"`
	ProcessedFruitBedtime YesNo  `json:"processed_fruit_bedtime"`
	ProcessedFruitDaily   string `json:"processed_fruit_daily"`
	ProcessedFruitWeekly  string `json:"processed_fruit_weekly"`
	ProcessedFruitTiming  string `json:"processed_fruit_timing"`

	Spreads        YesNo  `json:"spreads"`
	SpreadsBedtime YesNo  `json:"spreads_bedtime"`
	SpreadsDaily   string `json:"spreads_daily"`
	SpreadsWeekly  string `json:"spreads_weekly"`
	SpreadsTiming  string `json:"spreads_timing"`

	AddedSugars        YesNo  `json:"added_sugars"`
	AddedSugarsBedtime YesNo  `json:"added_sugars_bedtime"`
	AddedSugarsDaily   string `json:"added_sugars_daily"`
	AddedSugarsWeekly  string `json:"added_sugars_weekly"`
	AddedSugarsTiming  string `json:"added_sugars_timing"`

	SaltySnacks       YesNo  `json:"salty_snacks"`
	SaltySnacksDaily  string `json:"salty_snacks_daily"`
	SaltySnacksWeekly string `json:"salty_snacks_weekly"`
	SaltySnacksTiming string `json:"salty_snacks_timing"`

	DairyProducts       YesNo  `json:"dairy_products"`
	DairyProductsDaily  string `json:"dairy_products_daily"`
	DairyProductsWeekly string `json:"dairy_products_weekly"`

	Vegetables       YesNo  `json:"vegetables"`
	VegetablesDaily  string `json:"vegetables_daily"`
	VegetablesWeekly string `json:"vegetables_weekly"`

	Water        YesNo  `json:"water"`
	WaterTiming  string `json:"water_timing"`
	WaterGlasses string `json:"water_glasses"`
}
