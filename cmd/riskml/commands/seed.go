// ABOUTME: Seed command fills the screening database with synthetic patients
// ABOUTME: Gives export and the MCP server realistic data to work against
package commands

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/oralsmart/riskml/internal/models"
	"github.com/oralsmart/riskml/internal/storage/sqlite"
)

var (
	seedCount      int
	seedDB         string
	seedSeed       int64
	seedIncomplete bool
)

// NewSeedCmd creates the seed command
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed [fixtures.json]",
		Short: "Seed the screening database with patients",
		Long: `Store patient screenings in the local database.

With a fixtures file, loads the JSON array of patient records it
contains. Without one, generates synthetic patients with randomized
screenings. With --incomplete, roughly a fifth of synthetic patients
get only one of the two screenings, matching what partial real-world
data looks like.

Examples:
  riskml seed --count 200
  riskml seed --count 100 --incomplete --db ./screenings.db
  riskml seed fixtures.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSeed,
	}

	cmd.Flags().IntVarP(&seedCount, "count", "n", 200, "Number of patients to create")
	cmd.Flags().StringVar(&seedDB, "db", "", "Screening database path (default from RISKML_DB)")
	cmd.Flags().Int64Var(&seedSeed, "seed", -1, "Random seed (default from RISKML_SEED)")
	cmd.Flags().BoolVar(&seedIncomplete, "incomplete", false, "Leave some patients with a single screening")

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := validatePositiveInt(seedCount, "count"); err != nil {
		return err
	}
	if seedDB == "" {
		seedDB = cfg.DBPath
	}
	if seedSeed < 0 {
		seedSeed = cfg.Seed
	}

	db, err := sqlite.Open(seedDB)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	created := seedCount
	if len(args) == 1 {
		created, err = loadFixtures(db, args[0])
		if err != nil {
			return err
		}
		return reportSeed(cmd, db, created)
	}

	rng := rand.New(rand.NewSource(seedSeed))
	for i := 0; i < seedCount; i++ {
		rec := sqlite.PatientRecord{
			PatientID: uuid.NewString(),
			Dental:    randomDental(rng),
			Dietary:   randomDietary(rng),
		}
		if seedIncomplete {
			switch rng.Intn(10) {
			case 0:
				rec.Dietary = nil
			case 1:
				rec.Dental = nil
			}
		}
		if err := db.SavePatient(rec); err != nil {
			return fmt.Errorf("saving patient %d: %w", i+1, err)
		}
	}
	return reportSeed(cmd, db, created)
}

func reportSeed(cmd *cobra.Command, db *sqlite.DB, created int) error {
	count, err := db.CountPatients()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if jsonOutput() {
		return printJSON(out, map[string]interface{}{
			"created":        created,
			"total_patients": count,
			"db":             db.Path(),
		})
	}
	if !quiet {
		fmt.Fprintf(out, "Seeded %d patients (%d total) in %s\n", created, count, db.Path())
	}
	return nil
}

// loadFixtures reads a JSON array of patient records and stores each one.
func loadFixtures(db *sqlite.DB, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading fixtures: %w", err)
	}
	var fixtures []sqlite.PatientRecord
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return 0, fmt.Errorf("parsing fixtures: %w", err)
	}
	if len(fixtures) == 0 {
		return 0, fmt.Errorf("fixtures file %s has no patient records", path)
	}
	for i, rec := range fixtures {
		if rec.PatientID == "" {
			return 0, fmt.Errorf("fixture %d has no patient_id", i)
		}
		if err := db.SavePatient(rec); err != nil {
			return 0, fmt.Errorf("saving fixture patient %s: %w", rec.PatientID, err)
		}
	}
	return len(fixtures), nil
}

func yesNo(rng *rand.Rand, pYes float64) models.YesNo {
	if rng.Float64() < pYes {
		return "yes"
	}
	return "no"
}

// The non-empty answers are the exact codes the screening forms submit,
// so every drawn value encodes through the lookup table.
var frequencyAnswers = []string{
	"", "1-3_day", "4-6_day", "1-3_week", "4-6_week",
}

var timingAnswers = []string{"", "with meals", "between meals", "before bedtime"}

func randomDental(rng *rand.Rand) *models.DentalObservation {
	obs := &models.DentalObservation{
		SACitizen:             yesNo(rng, 0.9),
		SpecialNeeds:          yesNo(rng, 0.1),
		CaregiverTreatment:    yesNo(rng, 0.5),
		Appliance:             yesNo(rng, 0.1),
		Plaque:                yesNo(rng, 0.4),
		DryMouth:              yesNo(rng, 0.2),
		EnamelDefects:         yesNo(rng, 0.2),
		FluorideWater:         yesNo(rng, 0.6),
		FluorideToothpaste:    yesNo(rng, 0.8),
		TopicalFluoride:       yesNo(rng, 0.3),
		RegularCheckups:       yesNo(rng, 0.4),
		SealedPits:            yesNo(rng, 0.2),
		RestorativeProcedures: yesNo(rng, 0.2),
		EnamelChange:          yesNo(rng, 0.3),
		DentinDiscoloration:   yesNo(rng, 0.2),
		WhiteSpotLesions:      yesNo(rng, 0.3),
		CavitatedLesions:      yesNo(rng, 0.3),
		MultipleRestorations:  yesNo(rng, 0.2),
		MissingTeeth:          yesNo(rng, 0.2),
	}

	// Children have up to 20 primary teeth; mark a random subset with
	// decayed, filled, or missing status codes.
	statuses := []string{"1", "2", "3", "B", "C", "D"}
	affected := rng.Intn(12)
	obs.TeethData = make(map[string]string, affected)
	for i := 0; i < affected; i++ {
		tooth := "tooth_" + strconv.Itoa(rng.Intn(20)+1)
		obs.TeethData[tooth] = statuses[rng.Intn(len(statuses))]
	}
	return obs
}

func randomDietary(rng *rand.Rand) *models.DietaryObservation {
	freq := func() string { return frequencyAnswers[rng.Intn(len(frequencyAnswers))] }
	timing := func() string { return timingAnswers[rng.Intn(len(timingAnswers))] }

	return &models.DietaryObservation{
		SweetSugaryFoods:        yesNo(rng, 0.6),
		SweetSugaryFoodsBedtime: yesNo(rng, 0.3),
		SweetSugaryFoodsDaily:   freq(),
		SweetSugaryFoodsWeekly:  freq(),
		SweetSugaryFoodsTiming:  timing(),

		TakeawaysProcessedFoods:       yesNo(rng, 0.5),
		TakeawaysProcessedFoodsDaily:  freq(),
		TakeawaysProcessedFoodsWeekly: freq(),

		FreshFruit:        yesNo(rng, 0.7),
		FreshFruitBedtime: yesNo(rng, 0.2),
		FreshFruitDaily:   freq(),
		FreshFruitWeekly:  freq(),
		FreshFruitTiming:  timing(),

		ColdDrinksJuices:        yesNo(rng, 0.6),
		ColdDrinksJuicesBedtime: yesNo(rng, 0.3),
		ColdDrinksJuicesDaily:   freq(),
		ColdDrinksJuicesWeekly:  freq(),
		ColdDrinksJuicesTiming:  timing(),

		ProcessedFruit:        yesNo(rng, 0.4),
		ProcessedFruitBedtime: yesNo(rng, 0.2),
		ProcessedFruitDaily:   freq(),
		ProcessedFruitWeekly:  freq(),
		ProcessedFruitTiming:  timing(),

		Spreads:        yesNo(rng, 0.5),
		SpreadsBedtime: yesNo(rng, 0.2),
		SpreadsDaily:   freq(),
		SpreadsWeekly:  freq(),
		SpreadsTiming:  timing(),

		AddedSugars:        yesNo(rng, 0.5),
		AddedSugarsBedtime: yesNo(rng, 0.2),
		AddedSugarsDaily:   freq(),
		AddedSugarsWeekly:  freq(),
		AddedSugarsTiming:  timing(),

		SaltySnacks:       yesNo(rng, 0.5),
		SaltySnacksDaily:  freq(),
		SaltySnacksWeekly: freq(),
		SaltySnacksTiming: timing(),

		DairyProducts:       yesNo(rng, 0.7),
		DairyProductsDaily:  freq(),
		DairyProductsWeekly: freq(),

		Vegetables:       yesNo(rng, 0.7),
		VegetablesDaily:  freq(),
		VegetablesWeekly: freq(),

		Water:        yesNo(rng, 0.9),
		WaterTiming:  timing(),
		WaterGlasses: strconv.Itoa(rng.Intn(9)),
	}
}
