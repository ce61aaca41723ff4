package domain

type PaymentMethod string

const (
	PaymentMethodPix       PaymentMethod = "PIX"
	PaymentMethodDebitCard PaymentMethod = "DEBIT_CARD"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusApproved  PaymentStatus = "APPROVED"
	PaymentStatusOther     PaymentStatus = "OTHER"
	PaymentStatusAbandoned PaymentStatus = "ABANDONED"
)

// PaymentIntent is created eagerly when the payment step is entered and is
// immutable apart from its status, which transitions only via an explicit
// gateway poll.
type PaymentIntent struct {
	ID          int32         `json:"id"`
	SessionID   string        `json:"session_id"`
	Method      PaymentMethod `json:"method,omitempty"`
	AmountCents int32         `json:"amount_cents"`
	Description string        `json:"description"`
	// PreferenceID identifies the gateway preference backing the card
	// wallet widget.
	PreferenceID string `json:"preference_id,omitempty"`
	// GatewayPaymentID identifies the Pix payment at the gateway, used for
	// the status poll.
	GatewayPaymentID string        `json:"gateway_payment_id,omitempty"`
	PixQRCode        string        `json:"pix_qr_code,omitempty"`
	PixCopyPaste     string        `json:"pix_copy_paste,omitempty"`
	Status           PaymentStatus `json:"status"`
	CreatedOn        string        `json:"created_on"`
	UpdatedOn        string        `json:"updated_on"`
}
