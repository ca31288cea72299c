package task

// Page sizes offered by the different views.
var (
	UserPageSizes    = []int{5, 10, 25, 50}
	ManagerPageSizes = []int{10, 15, 20, 25}
)

// PageBounds clamps page into [1, lastPage] for the given total and size and
// returns the slice bounds [start, end) alongside the clamped page number and
// the page count. An empty collection yields a single empty page.
func PageBounds(total, page, size int) (start, end, clamped, pages int) {
	if size < 1 {
		size = 1
	}
	pages = (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	clamped = page
	if clamped < 1 {
		clamped = 1
	}
	if clamped > pages {
		clamped = pages
	}
	start = (clamped - 1) * size
	if start > total {
		start = total
	}
	end = start + size
	if end > total {
		end = total
	}
	return start, end, clamped, pages
}

// Paginate returns the page-th slice of tasks plus the clamped page number and
// total page count.
func Paginate(tasks []Task, page, size int) ([]Task, int, int) {
	start, end, clamped, pages := PageBounds(len(tasks), page, size)
	return tasks[start:end], clamped, pages
}
