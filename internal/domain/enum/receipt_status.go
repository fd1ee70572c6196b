package enum

// ReceiptStatus represents the lifecycle state of a receipt.
// A reversed receipt is never deleted: the original is flagged
// RACUN_STORNIRAN and paired with a new STORNO receipt carrying
// negated amounts.
type ReceiptStatus string

const (
	ReceiptStatusActive   ReceiptStatus = "RACUN"
	ReceiptStatusReversed ReceiptStatus = "RACUN_STORNIRAN"
	ReceiptStatusStorno   ReceiptStatus = "STORNO"
)

func (s ReceiptStatus) Valid() bool {
	switch s {
	case ReceiptStatusActive, ReceiptStatusReversed, ReceiptStatusStorno:
		return true
	}
	return false
}

func (s ReceiptStatus) String() string {
	return string(s)
}
