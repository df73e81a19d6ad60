package vosfactures_test

import (
	"context"
	"testing"

	"github.com/briceparent/vosfactures/pkg/vosfactures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptors_Validate(t *testing.T) {
	t.Parallel()

	for _, descriptor := range vosfactures.Descriptors() {
		descriptor := descriptor
		t.Run(descriptor.Name, func(t *testing.T) {
			t.Parallel()

			require.NoError(t, descriptor.Validate())
		})
	}
}

func TestDescriptor_ValidateRejectsUndeclaredGroups(t *testing.T) {
	t.Parallel()

	descriptor := &vosfactures.Descriptor{
		Name:     "Broken",
		Fields:   []vosfactures.Field{{Name: "id"}},
		Required: []string{"name"},
	}

	require.ErrorIs(t, descriptor.Validate(), vosfactures.ErrInvalidDescriptor)
}

func TestDescriptor_UpdatableFields(t *testing.T) {
	t.Parallel()

	updatable := vosfactures.ClientDescriptor.UpdatableFields()

	assert.Contains(t, updatable, "id")
	assert.Contains(t, updatable, "name")
	assert.NotContains(t, updatable, "created_at")
	assert.NotContains(t, updatable, "shortcut")
	assert.NotContains(t, updatable, "deleted")
	assert.Equal(t, "id", updatable[0])
}

func TestLookupDescriptor(t *testing.T) {
	t.Parallel()

	descriptor, err := vosfactures.LookupDescriptor("Invoice")
	require.NoError(t, err)
	assert.Same(t, vosfactures.InvoiceDescriptor, descriptor)

	_, err = vosfactures.LookupDescriptor("Payment")
	require.ErrorIs(t, err, vosfactures.ErrUnknownEntity)
}

func invoiceInput(positions any) vosfactures.Fields {
	return vosfactures.Fields{
		"number":        "FV 2026/10/1",
		"title":         "October",
		"issue_date":    "2026-10-16",
		"department_id": 11,
		"client_id":     6346560,
		"positions":     positions,
	}
}

func TestInvoice_CreateRequiresCatalogPositions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		positions any
	}{
		{name: "absent", positions: nil},
		{name: "empty list", positions: []any{}},
		{name: "position without product", positions: []any{map[string]any{"name": "Consulting", "quantity": 1}}},
		{name: "mixed positions", positions: []map[string]any{{"product_id": 1}, {"quantity": 2}}},
		{name: "not a list", positions: "product 1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			transport := newFakeTransport()
			invoices := vosfactures.NewRepository(vosfactures.InvoiceDescriptor, transport, nil)

			_, err := invoices.Create(context.Background(), invoiceInput(tt.positions))
			require.Error(t, err)
			assert.True(t, vosfactures.IsValidation(err))
			assert.Empty(t, transport.calls)
		})
	}
}

func TestInvoice_CreateWithProductPositions(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport().respond(verbCreate, `{
		"id": 42,
		"number": "FV 2026/10/1",
		"price_net": "120.5",
		"price_gross": "144.6",
		"currency": "EUR",
		"client_id": 6346560,
		"department_id": 11,
		"positions": [{"product_id": 1, "quantity": 3}],
		"view_url": "https://acme.vosfactures.fr/invoices/42"
	}`)
	invoices := vosfactures.NewRepository(vosfactures.InvoiceDescriptor, transport, nil)

	input := invoiceInput([]any{map[string]any{"product_id": 1, "quantity": 3}})

	invoice, err := invoices.Create(context.Background(), input)
	require.NoError(t, err)

	call := transport.last()
	assert.Equal(t, vosfactures.Endpoint{Page: "invoices", Action: "invoice"}, call.Call.Endpoint)
	assert.Equal(t, vosfactures.DocumentKindVAT, call.Call.Fields["kind"])
	assert.Equal(t, "FV 2026/10/1", call.Call.Fields["number"])

	assert.Equal(t, "42 : FV 2026/10/1 (120.5 EUR)", invoice.String())
	assert.Equal(t, vosfactures.StatusIssued, invoice.Value("status"))
	assert.Equal(t, "11", invoice.Text("department_id"))
	assert.NotContains(t, invoice.Fields(), "view_url")
}

func TestInvoice_StringKeepsStoredPrecision(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport().respond(verbCreate, `{"id": 42, "number": "FV 1", "price_net": "10.005", "currency": "EUR"}`)
	invoices := vosfactures.NewRepository(vosfactures.InvoiceDescriptor, transport, nil)

	invoice, err := invoices.Create(context.Background(), invoiceInput([]any{map[string]any{"product_id": 1}}))
	require.NoError(t, err)

	assert.Equal(t, "10.005", invoice.Text("price_net"))
	assert.Equal(t, "42 : FV 1 (10.005 EUR)", invoice.String())
}

func TestInvoice_CreateAcceptsTypedPositions(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport().respond(verbCreate, `{"id": 43}`)
	invoices := vosfactures.NewRepository(vosfactures.InvoiceDescriptor, transport, nil)

	_, err := invoices.Create(context.Background(), invoiceInput([]vosfactures.Fields{{"product_id": 2, "quantity": 1}}))
	require.NoError(t, err)
	require.Len(t, transport.calls, 1)
}

func TestInvoice_RequiredFieldsListed(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport()
	invoices := vosfactures.NewRepository(vosfactures.InvoiceDescriptor, transport, nil)

	_, err := invoices.Create(context.Background(), vosfactures.Fields{
		"positions": []any{map[string]any{"product_id": 1}},
	})

	var validation *vosfactures.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, []string{"number", "title", "issue_date", "department_id", "client_id"}, validation.Missing)
	assert.Empty(t, transport.calls)
}

func TestDepartment_String(t *testing.T) {
	t.Parallel()

	transport := newFakeTransport().respond(verbFetch, `{"id": 3, "name": "Lyon", "shortcut": "LY"}`)
	departments := vosfactures.NewRepository(vosfactures.DepartmentDescriptor, transport, nil)

	department, err := departments.Get(context.Background(), "3")
	require.NoError(t, err)

	assert.Equal(t, "Lyon (LY)", department.String())
	assert.Equal(t, vosfactures.Endpoint{Page: "departments", Action: "department"}, transport.last().Call.Endpoint)
}
