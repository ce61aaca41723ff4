package domain

type CheckoutStep string

// Checkout steps, in order. Control flows strictly forward; a step is never
// entered while a prior step's precondition is unmet.
const (
	StepSelection CheckoutStep = "SELECTION"
	StepAddress   CheckoutStep = "ADDRESS"
	StepDates     CheckoutStep = "DATES"
	StepProfile   CheckoutStep = "PROFILE"
	StepContract  CheckoutStep = "CONTRACT"
	StepPayment   CheckoutStep = "PAYMENT"
	StepCompleted CheckoutStep = "COMPLETED"
)

// StepOrder lists the steps a rental checkout walks through. Purchase
// checkouts skip the contract step.
var StepOrder = []CheckoutStep{
	StepSelection,
	StepAddress,
	StepDates,
	StepProfile,
	StepContract,
	StepPayment,
	StepCompleted,
}

type CheckoutKind string

const (
	KindRental   CheckoutKind = "RENTAL"
	KindPurchase CheckoutKind = "PURCHASE"
)

type CheckoutStatus string

const (
	CheckoutStatusOpen      CheckoutStatus = "OPEN"
	CheckoutStatusPaid      CheckoutStatus = "PAID"
	CheckoutStatusExpired   CheckoutStatus = "EXPIRED"
	CheckoutStatusAbandoned CheckoutStatus = "ABANDONED"
)

// CheckoutSession is the persisted state of one customer's trip through the
// checkout flow. Step data is committed as it is gathered; abandoning the
// flow does not roll any of it back.
type CheckoutSession struct {
	ID         string       `json:"id"`
	CustomerID int32        `json:"customer_id"`
	ProductID  int32        `json:"product_id"`
	Kind       CheckoutKind `json:"kind"`
	Step       CheckoutStep `json:"step"`

	// Address step.
	CEP               string `json:"cep,omitempty"`
	ShippingAvailable bool   `json:"shipping_available"`
	ShippingFeeCents  int32  `json:"shipping_fee_cents"`
	ShippingCity      string `json:"shipping_city,omitempty"`

	// Dates step (rental). Dates use the 2006-01-02 layout.
	StartDate  string `json:"start_date,omitempty"`
	ReturnDate string `json:"return_date,omitempty"`

	AmountCents int32          `json:"amount_cents"`
	Status      CheckoutStatus `json:"status"`
	CreatedOn   string         `json:"created_on"`
	UpdatedOn   string         `json:"updated_on"`
}

// NextStep returns the step that follows s for the given checkout kind.
// Purchases skip the contract step.
func NextStep(s CheckoutStep, kind CheckoutKind) CheckoutStep {
	for i, step := range StepOrder {
		if step != s {
			continue
		}
		if i == len(StepOrder)-1 {
			return s
		}
		next := StepOrder[i+1]
		if next == StepContract && kind == KindPurchase {
			return StepPayment
		}
		return next
	}
	return s
}
