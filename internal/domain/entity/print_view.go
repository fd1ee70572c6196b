package entity

// PrintLine is a single line item on a printable receipt.
type PrintLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// PrintView is a value object representing a printable receipt. It is not
// stored; it is composed from the receipt aggregate at print time and the
// presentation layer renders it, turning the verification link into a QR
// code.
type PrintView struct {
	Num     string      `json:"num"`
	Payment string      `json:"payment"`
	Items   []PrintLine `json:"items"`
	Time    string      `json:"time"`
	Cashier string      `json:"cashier"`
	Base    float64     `json:"base"`
	Tax     float64     `json:"tax"`
	JIR     *string     `json:"jir"`
	ZKI     *string     `json:"zki"`
	Link    *string     `json:"link"`
	Phone   string      `json:"phone"`
	Email   string      `json:"email"`
}
