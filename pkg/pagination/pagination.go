package pagination

const (
	// DefaultPageSize matches the listing pages' load-more batch size.
	DefaultPageSize = 15
	// MaxPageSize caps how many rows any window can request per page.
	MaxPageSize = 100
)

// Params holds load-more pagination inputs from controllers.
type Params struct {
	Page int
	Size int
}

// NormalizeSize enforces the configured default and maximum page sizes.
func NormalizeSize(size int) int {
	if size <= 0 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// NormalizePage clamps negative pages to the first page.
func NormalizePage(page int) int {
	if page < 0 {
		return 0
	}
	return page
}

// Window returns the cumulative slice bounds [0, (page+1)*size) capped
// at total. Rendering pages 0..k therefore always yields
// min((k+1)*size, total) items with no duplicates.
func Window(total, page, size int) (start, end int) {
	size = NormalizeSize(size)
	page = NormalizePage(page)
	end = (page + 1) * size
	if end > total {
		end = total
	}
	return 0, end
}

// HasMore reports whether pages beyond page remain.
func HasMore(total, page, size int) bool {
	_, end := Window(total, page, size)
	return end < total
}
