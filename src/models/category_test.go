package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryTypeIsValid(t *testing.T) {
	assert.True(t, CategoryExpense.IsValid())
	assert.True(t, CategoryIncome.IsValid())
	assert.False(t, CategoryType("").IsValid())
	assert.False(t, CategoryType("XX").IsValid())
	assert.False(t, CategoryType("income").IsValid())
}
