package domain

// AddressLookupResult holds the address components resolved from a CEP.
// Read-only, fetched fresh on every postal-code change.
type AddressLookupResult struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// ShippingQuote is the outcome of running a normalized CEP against the
// fixed prefix rule table.
type ShippingQuote struct {
	Available bool   `json:"available"`
	FeeCents  int32  `json:"fee_cents"`
	City      string `json:"city,omitempty"`
	Message   string `json:"message"`
}
