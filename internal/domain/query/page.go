package query

// Page is a window over an ordered sequence.
type Page struct {
	Skip int `json:"skip" validate:"min=0"`
	Take int `json:"take" validate:"min=1"`
}

// Paginate returns items[Skip : Skip+Take]. Offsets past the end give an
// empty page, a negative Skip reads as 0 and Take <= 0 runs to the end.
func Paginate[T any](items []T, p Page) []T {
	start := p.Skip
	if start < 0 {
		start = 0
	}
	if start > len(items) {
		start = len(items)
	}
	end := len(items)
	if p.Take > 0 && p.Take < end-start {
		end = start + p.Take
	}
	return items[start:end:end]
}
