package models

// MenuItem is an orderable item.
type MenuItem struct {
	// ID is the unique identifier (e.g. "m1" for seeded items, "m-<uuid>" otherwise).
	ID string `json:"id"`

	// Name is the display name (e.g. "Veg Biryani").
	Name string `json:"name"`

	// Price is the pre-tax unit price. Never negative.
	Price float64 `json:"price"`

	// GST is the tax rate as a fraction in [0, 1), e.g. 0.05 for 5%.
	GST float64 `json:"gst"`
}

// MenuItemPatch is a partial update for a MenuItem. Nil fields are left as-is.
type MenuItemPatch struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
	GST   *float64 `json:"gst,omitempty"`
}

// Apply returns a copy of item with the patch merged in.
func (p MenuItemPatch) Apply(item MenuItem) MenuItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.GST != nil {
		item.GST = *p.GST
	}
	return item
}
