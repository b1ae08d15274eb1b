package category

// Category is a product category. Products reference it, they never own it.
type Category struct {
	ID          int64  `json:"CategoryID"`
	Name        string `json:"CategoryName"`
	Description string `json:"Description"`
}
