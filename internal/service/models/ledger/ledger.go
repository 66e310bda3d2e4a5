package ledger

// Entry is the remaining purchasable quantity for one food item.
type Entry struct {
	FoodItemID      int64 `json:"foodItemId"`
	AvailableOrders int   `json:"availableOrders"`
}

// Clamp computes the ledger value after reserving qty units. The ledger never
// goes negative: an oversized reservation drains it to zero and proceeds.
func Clamp(current, qty int) int {
	if next := current - qty; next > 0 {
		return next
	}

	return 0
}
