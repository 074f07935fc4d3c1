// File: /jobs/join_expiry_job.go
package jobs

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"planit-api/repositories"
	"planit-api/services"
)

// JoinExpiryJob periodically releases PendingPayment reservations
// whose payment never arrived, so a (user, event) pair is not blocked
// forever by an abandoned payment flow.
type JoinExpiryJob struct {
	participation *services.ParticipationService
	ticker        *time.Ticker
	done          chan bool
}

func NewJoinExpiryJob(db *gorm.DB, pendingTTL, interval time.Duration) *JoinExpiryJob {
	ledger := repositories.NewLedgerRepository(db)
	participation := services.NewParticipationService(ledger, pendingTTL)

	return &JoinExpiryJob{
		participation: participation,
		ticker:        time.NewTicker(interval),
		done:          make(chan bool),
	}
}

// Start begins the sweep loop
func (j *JoinExpiryJob) Start() {
	fmt.Println("Join expiry job started")

	go func() {
		// Run immediately on start
		j.sweep()

		for {
			select {
			case <-j.ticker.C:
				j.sweep()
			case <-j.done:
				fmt.Println("Join expiry job stopped")
				return
			}
		}
	}()
}

// Stop stops the sweep loop
func (j *JoinExpiryJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

func (j *JoinExpiryJob) sweep() {
	expired, err := j.participation.ExpireStaleRequests()
	if err != nil {
		fmt.Printf("Error during join expiry sweep: %v\n", err)
		return
	}

	if expired > 0 {
		fmt.Printf("Join expiry sweep released %d stale reservations\n", expired)
	}
}
