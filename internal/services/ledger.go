package services

import "github.com/fomenta-dev/fomenta/internal/models"

// BudgetLedger maintains a project's line-item budget and the derived
// BudgetSpent aggregate.
type BudgetLedger struct {
	Budget BudgetRepository
}

func NewBudgetLedger(budget BudgetRepository) *BudgetLedger {
	return &BudgetLedger{Budget: budget}
}

// ReplaceItems discards the project's current line items, installs the new set
// and recomputes BudgetSpent, all inside one storage transaction. Observers
// never see a partially replaced set. Returns the stored items with their
// generated ids.
func (l *BudgetLedger) ReplaceItems(projectID string, items []models.BudgetItem) ([]models.BudgetItem, error) {
	var stored []models.BudgetItem

	err := l.Budget.InTransaction(func(tx BudgetRepository) error {
		if err := tx.DeleteAllForProject(projectID); err != nil {
			return err
		}

		records := make([]models.BudgetItem, len(items))
		for i, item := range items {
			item.ID = ""
			item.ProjectID = projectID
			records[i] = item
		}

		if len(records) > 0 {
			if err := tx.InsertMany(records); err != nil {
				return err
			}
		}

		if err := tx.SetProjectSpent(projectID, SpentTotal(records)); err != nil {
			return err
		}

		stored = records
		return nil
	})

	if err != nil {
		return nil, err
	}

	return stored, nil
}

func (l *BudgetLedger) GetItems(projectID string) ([]models.BudgetItem, error) {
	items, err := l.Budget.ListForProject(projectID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.BudgetItem{}
	}
	return items, nil
}

// SpentTotal sums quantity x unit quantity x unit value over the lines flagged
// adjust-total. Zero-valued fields contribute nothing.
func SpentTotal(items []models.BudgetItem) float64 {
	var total float64
	for _, item := range items {
		if item.AdjustTotal {
			total += item.Quantity * item.UnitQuantity * item.UnitValue
		}
	}
	return total
}
