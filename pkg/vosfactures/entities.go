package vosfactures

import "fmt"

// Entity names as used in the command table.
const (
	EntityClient     = "Client"
	EntityProduct    = "Product"
	EntityDepartment = "Department"
	EntityInvoice    = "Invoice"
)

func singleActionEndpoints(page, item string) map[Operation]Endpoint {
	return map[Operation]Endpoint{
		OperationCreate: {Page: page, Action: item},
		OperationGet:    {Page: page, Action: item},
		OperationList:   {Page: page, Action: page},
		OperationUpdate: {Page: page, Action: item},
		OperationDelete: {Page: page, Action: item},
	}
}

func fieldList(names ...string) []Field {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name})
	}

	return fields
}

// ClientDescriptor describes the buyers of the account.
var ClientDescriptor = &Descriptor{
	Name:      EntityClient,
	Endpoints: singleActionEndpoints("clients", "client"),
	Fields: fieldList(
		"id", "buyer_id", "name", "first_name", "last_name", "company", "title",
		"department_id", "category_id", "shortcut", "tax_no", "street_no", "street",
		"post_code", "city", "country", "email", "phone", "mobile_phone", "www", "fax",
		"bank", "bank_account", "payment_to_kind", "bank_account_id", "tax_no_check",
		"default_payment_type", "tax_no_kind", "accounting_id", "deleted",
		"created_at", "updated_at", "note",
	),
	Required: []string{"name"},
	Auto:     []string{"created_at", "updated_at", "shortcut", "deleted"},
	Format: func(r *Record) string {
		return fmt.Sprintf("%s (%s)", r.Text("name"), r.IDString())
	},
}

// ProductDescriptor describes the product catalog.
var ProductDescriptor = &Descriptor{
	Name:      EntityProduct,
	Endpoints: singleActionEndpoints("products", "product"),
	Fields: []Field{
		{Name: "id"},
		{Name: "name"},
		{Name: "description"},
		{Name: "price_net"},
		{Name: "tax"},
		{Name: "created_at"},
		{Name: "updated_at"},
		{Name: "disabled"},
		{Name: "deleted"},
		{Name: "code"},
		{Name: "currency", Default: CurrencyEUR},
		{Name: "category_id"},
		{Name: "kind"},
	},
	Required:  []string{"name", "price_net", "tax"},
	Auto:      []string{"created_at", "updated_at", "deleted"},
	Defaulted: []string{"currency"},
	Format: func(r *Record) string {
		return fmt.Sprintf("%s : %s (%s %s)", r.IDString(), r.Text("name"), r.Text("price_net"), r.Text("currency"))
	},
}

// DepartmentDescriptor describes the selling departments of the account.
// Departments are managed from the web interface and are read-only here.
var DepartmentDescriptor = &Descriptor{
	Name: EntityDepartment,
	Endpoints: map[Operation]Endpoint{
		OperationGet:  {Page: "departments", Action: "department"},
		OperationList: {Page: "departments", Action: "departments"},
	},
	Fields:    fieldList("id", "shortcut", "name"),
	Forbidden: []Operation{OperationCreate, OperationUpdate, OperationDelete},
	Format: func(r *Record) string {
		return fmt.Sprintf("%s (%s)", r.Text("name"), r.Text("shortcut"))
	},
}

// InvoiceDescriptor describes invoices and the other sales documents.
var InvoiceDescriptor = &Descriptor{
	Name:      EntityInvoice,
	Endpoints: singleActionEndpoints("invoices", "invoice"),
	Fields: []Field{
		{Name: "id"},
		{Name: "title", Default: ""},
		{Name: "number"},
		{Name: "place"},
		{Name: "payment_type", Default: PaymentTypeTransfer},
		{Name: "price_net"},
		{Name: "price_gross"},
		{Name: "currency", Default: CurrencyEUR},
		{Name: "status", Default: StatusIssued},
		{Name: "description"},
		{Name: "paid", Default: "0,00"},
		{Name: "lang", Default: "fr"},
		{Name: "department_id"},
		{Name: "recipient_id"},
		{Name: "client_id"},
		{Name: "invoice_id"},
		{Name: "kind", Default: DocumentKindVAT},
		{Name: "token"},
		{Name: "cancelled"},
		{Name: "income", Default: DocumentIncomeRevenue},
		{Name: "payment_to_kind", Default: 31},
		{Name: "sell_date", Default: "off"},
		{Name: "created_at"},
		{Name: "updated_at"},
		{Name: "sent_time"},
		{Name: "paid_date"},
		{Name: "payment_to"},
		{Name: "issue_date"},
		{Name: "description_footer", Default: ""},
		{Name: "description_long", Default: ""},
		{Name: "positions", Default: []any{}},
		{Name: "hide_tax", Default: "1"},
		{Name: "calculating_strategy", Default: CalculatingStrategyPosition},
	},
	Required:     []string{"number", "title", "issue_date", "department_id", "client_id", "positions"},
	Auto:         []string{"created_at", "updated_at"},
	Defaulted:    []string{"kind"},
	BeforeCreate: requireCatalogPositions,
	Format: func(r *Record) string {
		return fmt.Sprintf("%s : %s (%s %s)", r.IDString(), r.Text("number"), r.Text("price_net"), r.Text("currency"))
	},
}

// Descriptors returns the built-in entity descriptors.
func Descriptors() []*Descriptor {
	return []*Descriptor{ClientDescriptor, ProductDescriptor, DepartmentDescriptor, InvoiceDescriptor}
}

// LookupDescriptor returns the built-in descriptor with the given name.
func LookupDescriptor(name string) (*Descriptor, error) {
	for _, descriptor := range Descriptors() {
		if descriptor.Name == name {
			return descriptor, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, name)
}

// requireCatalogPositions rejects invoices that do not reference existing
// products on every line.
func requireCatalogPositions(fields Fields) error {
	invalid := &ValidationError{
		Entity: EntityInvoice,
		Reason: "the creation of invoices requires existing products (every position needs a product_id)",
	}

	positions, err := positionList(fields["positions"])
	if err != nil {
		invalid.Reason = err.Error()

		return invalid
	}

	if len(positions) == 0 {
		return invalid
	}

	for _, position := range positions {
		if _, ok := position["product_id"]; !ok {
			return invalid
		}
	}

	return nil
}

func positionList(value any) ([]map[string]any, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case []map[string]any:
		return typed, nil
	case []Fields:
		out := make([]map[string]any, len(typed))
		for i, position := range typed {
			out[i] = position
		}

		return out, nil
	case []any:
		out := make([]map[string]any, 0, len(typed))

		for _, item := range typed {
			switch position := item.(type) {
			case map[string]any:
				out = append(out, position)
			case Fields:
				out = append(out, position)
			default:
				return nil, ErrInvalidPositions
			}
		}

		return out, nil
	default:
		return nil, ErrInvalidPositions
	}
}
