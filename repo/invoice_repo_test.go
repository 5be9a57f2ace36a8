package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shivamnegi1705/khidki-backend/invoice"
)

func duplicateKeyError(message string) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: message},
		},
	}
}

func TestClassifyDuplicate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    error
	}{
		{
			name:    "order index",
			message: "E11000 duplicate key error collection: golangApi.invoices index: orderId_1 dup key: { orderId: ObjectId('65a1') }",
			want:    invoice.ErrOrderAlreadyInvoiced,
		},
		{
			name:    "number index",
			message: "E11000 duplicate key error collection: golangApi.invoices index: invoiceNumber_1 dup key: { invoiceNumber: \"INV-2026-1234\" }",
			want:    invoice.ErrDuplicateNumber,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := duplicateKeyError(tt.message)
			require.True(t, mongo.IsDuplicateKeyError(err))
			assert.ErrorIs(t, classifyDuplicate(err), tt.want)
		})
	}
}

func TestInvoiceRepo_ByIDsEmptyIsNotNil(t *testing.T) {
	t.Parallel()

	// No ids means no query, so a nil collection is fine here.
	repo := NewInvoiceRepo(nil)

	invoices, err := repo.ByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, invoices)
	assert.Empty(t, invoices)
}
