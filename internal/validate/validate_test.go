package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthieukhl/toposhop/internal/models"
)

func TestProductInputValidation(t *testing.T) {
	v := New()

	err := v.Struct(models.ProductInput{Name: "GPS", Price: 1200, Category: "GPS"})
	require.NoError(t, err)

	err = v.Struct(models.ProductInput{Price: -5})
	require.Error(t, err)
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)

	byField := map[string]FieldError{}
	for _, fe := range fields {
		byField[fe.Field] = fe
	}
	assert.Contains(t, byField, "name")
	assert.Contains(t, byField, "price")
	assert.Contains(t, byField, "category")
	assert.Equal(t, "name is required", byField["name"].Error())
	assert.Equal(t, "price must be greater than 0", byField["price"].Error())
}

func TestProductInputNegativeStock(t *testing.T) {
	v := New()
	stock := -1
	err := v.Struct(models.ProductInput{Name: "GPS", Price: 10, Category: "GPS", Stock: &stock})
	require.Error(t, err)
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "stock", fields[0].Field)
}

func TestOrderInputValidation(t *testing.T) {
	v := New()

	err := v.Struct(models.OrderInput{
		CustomerName:  "Ama",
		CustomerEmail: "not-an-email",
		CustomerPhone: "01",
		Products:      []models.OrderItemInput{{ProductID: "1", Quantity: 0, Price: 10}},
	})
	require.Error(t, err)
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)

	var gotEmail, gotQuantity bool
	for _, fe := range fields {
		switch fe.Field {
		case "customer_email":
			gotEmail = true
		case "quantity":
			gotQuantity = true
		}
	}
	assert.True(t, gotEmail)
	assert.True(t, gotQuantity)
}

func TestOrderInputRequiresLines(t *testing.T) {
	v := New()
	err := v.Struct(models.OrderInput{
		CustomerName:  "Ama",
		CustomerEmail: "ama@example.com",
		CustomerPhone: "01",
	})
	require.Error(t, err)
}

func TestContactInputValidation(t *testing.T) {
	v := New()
	require.NoError(t, v.Struct(models.ContactInput{
		Name: "Ama", Email: "ama@example.com", Subject: "Devis", Message: "Bonjour",
	}))

	err := v.Struct(models.ContactInput{Email: "bad"})
	require.Error(t, err)
	fields, ok := AsFieldErrors(err)
	require.True(t, ok)
	assert.NotEmpty(t, fields.Error())
}
