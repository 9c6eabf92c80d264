package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sahilrao/billforge/pkg/apperror"
	"github.com/sahilrao/billforge/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerCRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewCustomerService(newFakeCustomerRepo())

	phone := "+91 98765 43210"
	created, err := svc.CreateCustomer(ctx, &CreateCustomerInput{
		Name:  "Alex Traders",
		Phone: &phone,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	got, err := svc.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alex Traders", got.Name)

	newName := "Alex Trading Co"
	updated, err := svc.UpdateCustomer(ctx, &UpdateCustomerInput{
		ID:   created.ID,
		Name: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alex Trading Co", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)

	result, err := svc.ListCustomers(ctx, &ListCustomersInput{
		Pagination: pagination.DefaultPagination(),
	})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)

	require.NoError(t, svc.DeleteCustomer(ctx, created.ID))

	_, err = svc.GetCustomer(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
