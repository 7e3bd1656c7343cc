// Package category defines the fixed set of expense categories.
package category

// Category is one of the nine fixed expense category labels.
type Category string

const (
	FoodAndDining     Category = "Food & Dining"
	Transportation    Category = "Transportation"
	Shopping          Category = "Shopping"
	Entertainment     Category = "Entertainment"
	BillsAndUtilities Category = "Bills & Utilities"
	Healthcare        Category = "Healthcare"
	Education         Category = "Education"
	Travel            Category = "Travel"
	Other             Category = "Other"
)

// all lists every category in display order.
var all = []Category{
	FoodAndDining,
	Transportation,
	Shopping,
	Entertainment,
	BillsAndUtilities,
	Healthcare,
	Education,
	Travel,
	Other,
}

// All returns the categories in display order.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

// Valid reports whether c is one of the fixed category labels.
func (c Category) Valid() bool {
	for _, known := range all {
		if c == known {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (c Category) String() string { return string(c) }
