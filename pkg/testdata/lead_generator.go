// Package testdata generates realistic lead fixtures for tests and for
// seeding a development upstream.
package testdata

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/Keerthan22-sys/Instigar/pkg/models"
)

// LeadGeneratorConfig configures lead generation parameters
type LeadGeneratorConfig struct {
	Count       int
	Kind        string  // "leads" or "walkin"
	DaysBack    int     // dateAdded spread, counted back from now
	NotesChance float64 // 0.0-1.0 probability of having notes
	Seed        int64   // 0 means non-deterministic
}

var (
	stages   = []string{models.StageIntake, models.StageQualified, models.StageConverted}
	channels = []string{"Walk-ins", "Phone", "Website", "Social media"}
	statuses = []string{"Active", "Inactive"}
	assigned = []string{"Unassigned", "John Doe", "Jane Smith"}
	courses  = []string{"Science", "Commerce", "Arts", "Computer Science", "Mathematics"}
	schools  = []string{"City Public School", "St. Mary's High School", "Greenwood Academy",
		"National Model School", "Sunrise International"}
)

// DefaultConfig returns a config for a mid-sized mixed collection.
func DefaultConfig(count int) LeadGeneratorConfig {
	return LeadGeneratorConfig{
		Count:       count,
		Kind:        models.KindLeads,
		DaysBack:    90,
		NotesChance: 0.3,
	}
}

// GenerateLeads produces upstream-shaped records. IDs are sequential
// from 1 so tests can address specific rows.
func GenerateLeads(cfg LeadGeneratorConfig) []models.SpringLead {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	faker := gofakeit.New(seed)

	daysBack := cfg.DaysBack
	if daysBack <= 0 {
		daysBack = 90
	}

	leads := make([]models.SpringLead, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		name := faker.FirstName() + " " + faker.LastName()
		added := time.Now().
			AddDate(0, 0, -rng.Intn(daysBack)).
			Add(-time.Duration(rng.Intn(12)) * time.Hour)

		lead := models.SpringLead{
			ID:         i + 1,
			Name:       name,
			Email:      faker.Email(),
			Phone:      indianMobile(rng),
			Stage:      pick(rng, stages),
			Source:     faker.Company(),
			Channel:    pick(rng, channels),
			AssignedTo: pick(rng, assigned),
			Status:     pick(rng, statuses),
			Action:     models.DefaultAction,
			Course:     pick(rng, courses),
			DateAdded:  added.Format("2006-01-02T15:04:05"),
			Type:       cfg.Kind,
		}
		if rng.Float64() < cfg.NotesChance {
			lead.Notes = faker.Sentence(8)
		}

		if cfg.Kind == models.KindWalkin {
			lead.FatherName = faker.FirstName() + " " + faker.LastName()
			lead.MotherName = faker.FirstName() + " " + faker.LastName()
			lead.FatherPhoneNumber = indianMobile(rng)
			lead.MotherPhoneNumber = indianMobile(rng)
			lead.Address = faker.Street() + ", " + faker.City()
			lead.PreviousInstitution = pick(rng, schools)
			lead.MarksObtained = fmt.Sprintf("%d%%", 45+rng.Intn(55))
			lead.Amount = float64(500 + rng.Intn(20)*250)
		}

		leads = append(leads, lead)
	}
	return leads
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

// Indian mobile numbers start with 6-9 and have ten digits.
func indianMobile(rng *rand.Rand) string {
	digits := make([]byte, 10)
	digits[0] = byte('6' + rng.Intn(4))
	for i := 1; i < 10; i++ {
		digits[i] = byte('0' + rng.Intn(10))
	}
	return string(digits)
}
