package circuitbreaker

import "github.com/sony/gobreaker"

var (
	// MaxNumOfFailingRequests is the number of observed requests below which
	// the breaker never trips.
	MaxNumOfFailingRequests = 10
	// FailingRatio is the failure ratio at which the breaker opens.
	FailingRatio = 0.6
)

// NewCircuitBreaker returns a *gobreaker.CircuitBreaker guarding the queries
// issued toward the blockchain node. It opens once enough requests have been
// observed and the failing ratio has met FailingRatio, so restoration and
// fork resolution fail fast instead of hammering an unhealthy node.
func NewCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "node",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests && ratio >= FailingRatio
		},
	})
}
