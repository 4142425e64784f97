package utils

import (
	"log"

	"lms/database"
	certModels "lms/models/certificate"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// InitializeExpiryScheduler sets up the daily issuance expiry sweep
func InitializeExpiryScheduler() {
	log.Println("[EXPIRY-SCHEDULER] Initializing issuance expiry scheduler...")

	c := cron.New()

	// Run daily shortly after midnight
	c.AddFunc("10 0 * * *", func() {
		log.Println("[EXPIRY-SCHEDULER] Running daily expiry sweep...")
		ExpireIssuances()
	})

	c.Start()
	log.Println("[EXPIRY-SCHEDULER] Issuance expiry scheduler started - runs daily at 00:10")
}

// ExpireIssuances marks issuances as expired once the owning certificate's
// expiration date has fully passed. The sweep is idempotent; rows already
// flagged are skipped by the predicate.
func ExpireIssuances() {
	db := database.Database.Db

	// A certificate expiring today stays valid until the end of the day
	cutoff := now.BeginningOfDay()

	result := db.Model(&certModels.Issuance{}).
		Where("is_expired = ?", false).
		Where("certificate_id IN (?)",
			db.Model(&certModels.Certificate{}).
				Select("id").
				Where("expiration_date IS NOT NULL AND expiration_date < ?", cutoff),
		).
		Update("is_expired", true)

	if result.Error != nil {
		log.Printf("[EXPIRY-SCHEDULER] Error expiring issuances: %v", result.Error)
		return
	}

	log.Printf("[EXPIRY-SCHEDULER] Marked %d issuances as expired", result.RowsAffected)
}
