package vosfactures

// Document kinds accepted in the invoice kind field.
const (
	DocumentKindVAT          = "vat"
	DocumentKindEstimate     = "estimate"
	DocumentKindProforma     = "proforma"
	DocumentKindCorrection   = "correction"
	DocumentKindClientOrder  = "client_order"
	DocumentKindReceipt      = "receipt"
	DocumentKindAdvance      = "advance"
	DocumentKindFinal        = "final"
	DocumentKindInvoiceOther = "invoice_other"
	DocumentKindCashIn       = "kp"
	DocumentKindCashOut      = "kw"
)

// Document income values.
const (
	DocumentIncomeRevenue = 1
	DocumentIncomeExpense = 0
)

// Calculating strategies.
const (
	CalculatingStrategyPosition         = "default"
	CalculatingStrategySum              = "sum"
	CalculatingStrategyInvoiceFormPrice = "net"
)

// Payment types.
const (
	PaymentTypeTransfer = "transfer"
	PaymentTypeCard     = "card"
	PaymentTypeCash     = "cash"
	PaymentTypeCheque   = "cheque"
	PaymentTypePaypal   = "paypal"
	PaymentTypeOff      = "off"
	PaymentTypeOther    = "any_other_text_entry"
)

// Document statuses.
const (
	StatusIssued   = "issued"
	StatusSent     = "sent"
	StatusPaid     = "paid"
	StatusPartial  = "partial"
	StatusRejected = "rejected"
	StatusAccepted = "accepted"
)

// CurrencyEUR is the default currency of products and invoices.
const CurrencyEUR = "EUR"

// Statuses returns every known document status.
func Statuses() []string {
	return []string{StatusIssued, StatusSent, StatusPaid, StatusPartial, StatusRejected, StatusAccepted}
}
