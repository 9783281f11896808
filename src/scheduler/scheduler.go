package scheduler

import (
	"context"
	"log"
	"time"

	"gestor-server/src/automation"
)

// Start launches the daily scheduled-rule runner. It fires once per UTC
// calendar day, shortly after midnight, which is what gives the evaluator its
// at-most-once-per-day contract.
func Start(eval *automation.Evaluator) {
	log.Println("Starting scheduled rule runner...")
	go run(eval)
}

func run(eval *automation.Evaluator) {
	for {
		now := time.Now().UTC()
		next := nextMidnightUTC(now)
		log.Printf("Next scheduled rule run in %v", next.Sub(now))

		time.Sleep(next.Sub(now))

		summary := eval.RunScheduledRules(context.Background(), time.Now())
		log.Printf("Scheduled rule run complete: %d considered, %d executed", summary.Considered, summary.Executed)

		// Small delay so a fast run cannot fire twice at the same midnight
		time.Sleep(time.Second)
	}
}

func nextMidnightUTC(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
}
