package content

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// clampPage normalizes a requested page number: anything below 1 is page 1.
func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// clampPerPage normalizes a requested page size: non-positive values fall
// back to the default, oversized values are capped.
func clampPerPage(perPage int) int {
	if perPage < 1 {
		return DefaultPerPage
	}
	if perPage > MaxPerPage {
		return MaxPerPage
	}
	return perPage
}

// pageCount is ceil(total / perPage); zero rows means zero pages.
func pageCount(total, perPage int) int {
	if total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
