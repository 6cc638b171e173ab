package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/medstore-api/internal/domain"
)

func TestStockError_Unwraps(t *testing.T) {
	err := fmt.Errorf("línea 2: %w", domain.NewInsufficientStock("Paracetamol"))

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.NotErrorIs(t, err, domain.ErrItemNotFound)

	var se *domain.StockError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "Paracetamol", se.Item)
	assert.Equal(t, "Insufficient stock for Paracetamol", se.Error())
}

func TestItemNotFound(t *testing.T) {
	err := domain.NewItemNotFound("ITEM9")

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	assert.Equal(t, "Item ITEM9 not found", err.Error())
}

func TestInvalid(t *testing.T) {
	err := domain.Invalid("discount must be between 0 and %d", 100)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "discount must be between 0 and 100")
}
