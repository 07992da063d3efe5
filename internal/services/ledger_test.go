package services

import (
	"testing"

	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceItemsRoundTrip(t *testing.T) {
	repo := newFakeBudget()
	ledger := NewBudgetLedger(repo)

	items := []models.BudgetItem{
		{Description: "Stage rental", Quantity: 2, Unit: "day", UnitQuantity: 1, UnitValue: 500, AdjustTotal: true},
		{Description: "Catering", Quantity: 3, Unit: "meal", UnitQuantity: 10, UnitValue: 15, AdjustTotal: true},
		{Description: "Sponsor donation", Quantity: 1, UnitQuantity: 1, UnitValue: 2000, AdjustTotal: false},
	}

	stored, err := ledger.ReplaceItems("p1", items)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	for _, item := range stored {
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, "p1", item.ProjectID)
	}

	listed, err := ledger.GetItems("p1")
	require.NoError(t, err)
	assert.Equal(t, stored, listed)

	// 2*1*500 + 3*10*15; the non-adjusting line contributes nothing.
	assert.Equal(t, 1450.0, repo.spent["p1"])
}

func TestReplaceItemsEmptySet(t *testing.T) {
	repo := newFakeBudget()
	ledger := NewBudgetLedger(repo)

	_, err := ledger.ReplaceItems("p1", []models.BudgetItem{
		{Description: "Old line", Quantity: 1, UnitQuantity: 1, UnitValue: 100, AdjustTotal: true},
	})
	require.NoError(t, err)

	stored, err := ledger.ReplaceItems("p1", nil)
	require.NoError(t, err)
	assert.Empty(t, stored)

	listed, err := ledger.GetItems("p1")
	require.NoError(t, err)
	assert.Empty(t, listed)

	assert.Equal(t, 0.0, repo.spent["p1"])
}

func TestReplaceItemsIdempotentTotal(t *testing.T) {
	repo := newFakeBudget()
	ledger := NewBudgetLedger(repo)

	items := []models.BudgetItem{
		{Description: "Printing", Quantity: 100, Unit: "unit", UnitQuantity: 1, UnitValue: 2.5, AdjustTotal: true},
	}

	first, err := ledger.ReplaceItems("p1", items)
	require.NoError(t, err)
	firstTotal := repo.spent["p1"]

	second, err := ledger.ReplaceItems("p1", items)
	require.NoError(t, err)

	// Ids may differ between replaces; the derived total must not.
	assert.NotEqual(t, first[0].ID, second[0].ID)
	assert.Equal(t, firstTotal, repo.spent["p1"])

	listed, err := ledger.GetItems("p1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestReplaceItemsIgnoresCallerIDs(t *testing.T) {
	repo := newFakeBudget()
	ledger := NewBudgetLedger(repo)

	stored, err := ledger.ReplaceItems("p1", []models.BudgetItem{
		{BaseModel: models.BaseModel{ID: "forged-id"}, ProjectID: "other-project", Quantity: 1, UnitQuantity: 1, UnitValue: 10, AdjustTotal: true},
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)

	assert.NotEqual(t, "forged-id", stored[0].ID)
	assert.Equal(t, "p1", stored[0].ProjectID)
}

func TestSpentTotalMissingNumericsAsZero(t *testing.T) {
	total := SpentTotal([]models.BudgetItem{
		{Quantity: 5, AdjustTotal: true},
		{Quantity: 2, UnitQuantity: 3, UnitValue: 4, AdjustTotal: true},
	})

	assert.Equal(t, 24.0, total)
}
