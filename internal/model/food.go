package model

// FoodCourt represents a physical vendor location on campus. Rows are static
// reference data inserted by the seeder; the Timings and PopularItems columns
// exist in the schema but the API serves a constant timing string and derives
// popular items from order history instead.
type FoodCourt struct {
	ID           uint64  // food_courts.id
	Name         string  // food_courts.name
	Loc          string  // food_courts.loc (campus area, e.g. "CSE")
	Coordinates  string  // food_courts.coordinates ("lat, lng")
	Timings      *string // food_courts.timings (nullable, unused by the API)
	PopularItems *string // food_courts.popular_items (nullable, unused by the API)
}

// FoodItem is a global catalog entry. Items are not court-specific; the link
// to a court (and the mutable stock count) lives in FoodItemQuantity.
type FoodItem struct {
	ID    uint64  // food_items.id
	Name  string  // food_items.name
	Price float64 // food_items.price
}

// FoodItemQuantity is the per-court stock row for one item. It is the only
// mutable stock record: checkout decrements it and the vendor inventory
// update sets it to an absolute value.
type FoodItemQuantity struct {
	ID          uint64 // food_item_quantities.id
	FoodItemID  uint64 // food_item_quantities.food_item_id
	FoodCourtID uint64 // food_item_quantities.food_court_id
	Quantity    int64  // food_item_quantities.quantity
}
