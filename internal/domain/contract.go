package domain

import "math"

// scrollTolerance absorbs rounding and rendering jitter in the scroll
// metrics reported by the viewer. Deliberate slack, not an exact zero check.
const scrollTolerance = 50

// ViewerReachedBottom reports whether scroll metrics place the viewer at the
// bottom of the contract text.
func ViewerReachedBottom(scrollHeight, clientHeight, scrollTop float64) bool {
	return math.Abs(scrollHeight-clientHeight-scrollTop) < scrollTolerance
}

// ContractAcceptance records whether a customer has read and accepted the
// rental contract. ReachedBottom is a one-way latch: once set it never
// clears, even if the viewer later scrolls back up. Accepted may only become
// true while ReachedBottom is true, and persists with no expiry until
// explicitly invalidated.
type ContractAcceptance struct {
	CustomerID    int32  `json:"customer_id"`
	ReachedBottom bool   `json:"reached_bottom"`
	Accepted      bool   `json:"accepted"`
	AcceptedOn    string `json:"accepted_on,omitempty"`
	UpdatedOn     string `json:"updated_on"`
}
