package enum

// PaymentType represents how a receipt was paid.
type PaymentType string

const (
	PaymentTypeCash     PaymentType = "GOTOVINA"
	PaymentTypeCard     PaymentType = "KARTICA"
	PaymentTypeTransfer PaymentType = "TRANSAKCIJSKI"
)

func (p PaymentType) Valid() bool {
	switch p {
	case PaymentTypeCash, PaymentTypeCard, PaymentTypeTransfer:
		return true
	}
	return false
}

func (p PaymentType) String() string {
	return string(p)
}
