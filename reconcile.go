package tracker

import "fmt"

// This file holds the fold rules shared by the incremental mutation path and
// the full resync: one trade in, one position and cash delta out. Both paths
// must produce identical state for identical logs, so the rules live in one
// place and reverse is the exact algebraic inverse of apply.

// apply folds one trade into the position table and the cash ledger.
//
// A buy recomputes the weighted average cost over the enlarged quantity and
// debits cash by amount plus commission. A sell leaves the average cost of
// the remaining shares untouched and credits cash by amount minus commission;
// selling the full quantity deletes the position row. A sell exceeding the
// held quantity fails with ErrInconsistency: short positions are not modeled.
func apply(positions map[PositionKey]Position, cash *CashLedger, tx Transaction) error {
	key := tx.Key()
	pos := positions[key]

	switch tx.Kind {
	case Buy:
		newQty := pos.Quantity.Add(tx.Quantity)
		avg := tx.UnitPrice
		if !pos.Quantity.IsZero() {
			// (oldQty*oldAvg + qty*price) / newQty
			avg = pos.CostBasis().Add(tx.Amount()).Div(newQty)
		}
		positions[key] = Position{
			Security: tx.Security,
			Name:     pickName(tx.Name, pos.Name),
			Segment:  tx.Segment,
			Quantity: newQty,
			AvgCost:  avg,
		}
		cash.Adjust(tx.GrossCost().Neg())

	case Sell:
		newQty := pos.Quantity.Sub(tx.Quantity)
		if newQty.IsNegative() {
			return fmt.Errorf("%w: cannot sell %s of %s, position is only %s",
				ErrInconsistency, tx.Quantity, key, pos.Quantity)
		}
		if newQty.IsZero() {
			delete(positions, key)
		} else {
			pos.Quantity = newQty
			pos.Name = pickName(tx.Name, pos.Name)
			positions[key] = pos
		}
		cash.Adjust(tx.NetProceeds())

	default:
		return fmt.Errorf("%w: unknown trade kind %d", ErrValidation, tx.Kind)
	}
	return nil
}

// reverse undoes one trade's effect, as if it had never been recorded. It is
// used by Update (undo then redo) and Delete.
//
// Undoing a buy removes its quantity and recomputes the average cost from the
// remaining total cost basis; undoing the buy that opened the position
// deletes the row. Undoing a sell re-adds the quantity at the position's
// current average cost: the cost basis of the sold shares is not tracked
// per lot, so the present average is the best available figure. When the
// sell had closed the position entirely, its own unit price is all that is
// left to restore the average from.
func reverse(positions map[PositionKey]Position, cash *CashLedger, tx Transaction) error {
	key := tx.Key()
	pos, held := positions[key]

	switch tx.Kind {
	case Buy:
		newQty := pos.Quantity.Sub(tx.Quantity)
		if newQty.IsNegative() {
			return fmt.Errorf("%w: cannot remove buy of %s of %s, position is only %s",
				ErrInconsistency, tx.Quantity, key, pos.Quantity)
		}
		if newQty.IsZero() {
			delete(positions, key)
		} else {
			// (oldTotalCost - qty*price) / newQty
			pos.AvgCost = pos.CostBasis().Sub(tx.Amount()).Div(newQty)
			pos.Quantity = newQty
			positions[key] = pos
		}
		cash.Adjust(tx.GrossCost())

	case Sell:
		if !held {
			pos = Position{
				Security: tx.Security,
				Name:     tx.Name,
				Segment:  tx.Segment,
				AvgCost:  tx.UnitPrice,
			}
		}
		pos.Quantity = pos.Quantity.Add(tx.Quantity)
		positions[key] = pos
		cash.Adjust(tx.NetProceeds().Neg())

	default:
		return fmt.Errorf("%w: unknown trade kind %d", ErrValidation, tx.Kind)
	}
	return nil
}

// replay rebuilds derived state from scratch by folding every trade in
// creation order. It validates each row and fails on the first error: a
// partial replay would break the derivability of the position table.
func replay(transactions []Transaction) (map[PositionKey]Position, *CashLedger, error) {
	positions := make(map[PositionKey]Position)
	cash := NewCashLedger()
	for _, tx := range transactions {
		tx, err := tx.Validate()
		if err != nil {
			return nil, nil, fmt.Errorf("replay failed on transaction %d: %w", tx.ID, err)
		}
		if err := apply(positions, cash, tx); err != nil {
			return nil, nil, fmt.Errorf("replay failed on transaction %d: %w", tx.ID, err)
		}
	}
	return positions, cash, nil
}

// pickName keeps the most recent non-empty display name.
func pickName(latest, previous string) string {
	if latest != "" {
		return latest
	}
	return previous
}
