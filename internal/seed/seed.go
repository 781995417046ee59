// Package seed generates demo tracker exports in the loose formats real
// exports use and loads them through the ingest pipeline.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/blaisecz/nightlog/internal/domain"
	"github.com/blaisecz/nightlog/internal/service"
)

const seededDays = 60

var demoUsers = []domain.UserIdentity{
	{FirstName: "Ada", LastName: "Lovelace"},
	{FirstName: "Alan", LastName: "Turing"},
}

// durationFormats render hours and minutes the ways trackers write them.
var durationFormats = []func(h, m int) string{
	func(h, m int) string { return fmt.Sprintf("%dh%02d", h, m) },
	func(h, m int) string { return fmt.Sprintf("%d h %d", h, m) },
	func(h, m int) string { return fmt.Sprintf("%d", h*60+m) },
	func(h, m int) string { return fmt.Sprintf("%dh %dmin", h, m) },
}

// Run seeds the demo users ending at end. Safe to call multiple times.
func Run(ctx context.Context, ingest service.IngestService, end time.Time) error {
	rng := rand.New(rand.NewSource(end.UnixNano()))
	for _, identity := range demoUsers {
		raw := Generate(rng, identity, seededDays, end)
		res, err := ingest.Ingest(ctx, raw)
		if err != nil {
			return fmt.Errorf("failed to seed %s %s: %w", identity.FirstName, identity.LastName, err)
		}
		log.Printf("[seed] %s %s ready (%s)", identity.FirstName, identity.LastName, res.User.ID)
	}

	log.Println("[seed] completed")
	return nil
}

// Generate builds days nights ending at end's date. Roughly one night in
// fifteen is missing its heart rate and one in twenty its clock times.
func Generate(rng *rand.Rand, identity domain.UserIdentity, days int, end time.Time) domain.RawSleepData {
	sleep := make(map[string]domain.RawNightEntry, days)
	for i := 0; i < days; i++ {
		date := end.AddDate(0, 0, -i)
		key := fmt.Sprintf("%d/%02d/%d", date.Day(), int(date.Month()), date.Year())

		// Bedtime between 22:00 and 00:59
		bedHour := (22 + rng.Intn(3)) % 24
		bedMinute := rng.Intn(60)
		asleep := 360 + rng.Intn(180)
		wakeTotal := (bedHour*60 + bedMinute + asleep + 15) % (24 * 60)

		duration := durationFormats[rng.Intn(len(durationFormats))](asleep/60, asleep%60)
		hr := float64(48 + rng.Intn(14))
		score := float64(60 + rng.Intn(35))
		entry := domain.RawNightEntry{
			Duration:      &duration,
			MeanHeartRate: &hr,
			Score:         &score,
		}

		if rng.Intn(15) == 0 {
			entry.MeanHeartRate = nil
		}
		if rng.Intn(20) != 0 {
			bed := clock12(bedHour, bedMinute)
			wake := clock12(wakeTotal/60, wakeTotal%60)
			entry.Bedtime = &bed
			entry.Waketime = &wake
		}

		sleep[key] = entry
	}

	return domain.RawSleepData{
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Sleep:     sleep,
	}
}

func clock12(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h, minute, period)
}
