package retention

import (
	"context"
	"log"
	"time"

	"greenhouse/config"
	"greenhouse/models"
)

// StartSweeper prunes measurements older than the retention window once a
// day, until ctx is cancelled. A retention of zero days means keep
// everything; no sweeper runs.
func StartSweeper(ctx context.Context, days int) {
	if days <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		Sweep(days)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				Sweep(days)
			}
		}
	}()
}

// Sweep deletes measurement rows older than the cutoff.
func Sweep(days int) {
	cutoff := time.Now().AddDate(0, 0, -days)

	ctx, cancel := config.StoreContext(context.Background())
	defer cancel()

	result := config.DB.WithContext(ctx).Where("time < ?", cutoff).Delete(&models.Measurement{})
	if result.Error != nil {
		log.Printf("retention sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("retention sweep removed %d measurements older than %d days", result.RowsAffected, days)
	}
}
