package vosfactures_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/briceparent/vosfactures/pkg/vosfactures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "missing fields",
			err:      &vosfactures.ValidationError{Entity: "Product", Missing: []string{"price_net", "tax"}},
			expected: "Product: some fields (price_net, tax) are required to create this object",
		},
		{
			name:     "entity rule",
			err:      &vosfactures.ValidationError{Entity: "Invoice", Reason: "positions must reference products"},
			expected: "Invoice: positions must reference products",
		},
		{
			name:     "forbidden command",
			err:      &vosfactures.CommandUnavailableError{Entity: "Department", Operation: vosfactures.OperationDelete, Forbidden: true},
			expected: `the "delete" command does not exist for Department model`,
		},
		{
			name:     "disabled command",
			err:      &vosfactures.CommandUnavailableError{Entity: "Client", Operation: vosfactures.OperationList},
			expected: `the "list" command is not allowed for Client model`,
		},
		{
			name:     "deleted object",
			err:      &vosfactures.ObjectIsDeletedError{Entity: "Client", ID: "12"},
			expected: "Client 12: this object doesn't exist anymore",
		},
		{
			name: "http error",
			err: &vosfactures.HTTPError{
				StatusCode:   404,
				Method:       "GET",
				URL:          "https://acme.vosfactures.fr/clients/12.json",
				RequestBody:  `{"api_token":"***","client":{}}`,
				ResponseBody: []byte("{\"code\":\"error\"}\n"),
			},
			expected: `error 404 during the query process for https://acme.vosfactures.fr/clients/12.json (GET). ` +
				`Data: {"api_token":"***","client":{}}, response: {"code":"error"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestErrors_HelpersSeeWrappedErrors(t *testing.T) {
	t.Parallel()

	validation := fmt.Errorf("outer: %w", &vosfactures.ValidationError{Entity: "Client", Missing: []string{"name"}})
	assert.True(t, vosfactures.IsValidation(validation))
	assert.False(t, vosfactures.IsCommandUnavailable(validation))

	protected := fmt.Errorf("outer: %w", &vosfactures.FieldProtectionError{Entity: "Client", Field: "id"})
	assert.True(t, vosfactures.IsFieldProtected(protected))
	assert.False(t, vosfactures.IsObjectDeleted(protected))

	status, ok := vosfactures.IsHTTPError(fmt.Errorf("outer: %w", &vosfactures.HTTPError{StatusCode: 500}))
	assert.True(t, ok)
	assert.Equal(t, 500, status)

	_, ok = vosfactures.IsHTTPError(vosfactures.ErrHostRequired)
	assert.False(t, ok)
}

func TestBody_Object(t *testing.T) {
	t.Parallel()

	fields, err := vosfactures.Body(`{"id": 9007199254740993, "price_net": 12.30}`).Object()
	require.NoError(t, err)
	assert.Equal(t, json.Number("9007199254740993"), fields["id"])
	assert.Equal(t, json.Number("12.30"), fields["price_net"])

	fields, err = vosfactures.Body("null").Object()
	require.NoError(t, err)
	assert.Empty(t, fields)

	fields, err = vosfactures.Body("  ").Object()
	require.NoError(t, err)
	assert.NotNil(t, fields)

	_, err = vosfactures.Body("[1, 2]").Object()
	require.Error(t, err)
}

func TestFields_CloneIsDeep(t *testing.T) {
	t.Parallel()

	original := vosfactures.Fields{
		"positions": []any{map[string]any{"product_id": 1}},
	}

	clone := original.Clone()
	positions, ok := clone["positions"].([]any)
	require.True(t, ok)

	position, ok := positions[0].(map[string]any)
	require.True(t, ok)

	position["product_id"] = 2

	assert.Equal(t, 1, original["positions"].([]any)[0].(map[string]any)["product_id"])
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	assert.Empty(t, vosfactures.FormatValue(nil))
	assert.Equal(t, "12", vosfactures.FormatValue(json.Number("12")))
	assert.Equal(t, "6346560", vosfactures.FormatValue(float64(6346560)))
	assert.Equal(t, "1.5", vosfactures.FormatValue(1.5))
	assert.Equal(t, "7", vosfactures.FormatValue(7))
	assert.Equal(t, "true", vosfactures.FormatValue(true))
}

func TestParseOperation(t *testing.T) {
	t.Parallel()

	op, err := vosfactures.ParseOperation("update")
	require.NoError(t, err)
	assert.Equal(t, vosfactures.OperationUpdate, op)

	_, err = vosfactures.ParseOperation("Update")
	require.ErrorIs(t, err, vosfactures.ErrUnknownOperation)
}
