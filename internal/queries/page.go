package queries

const (
	DefaultPageSize = 5
	MaxPageSize     = 100
)

// Page is a 1-based page of Size results.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps number to at least 1 and size into [1, MaxPageSize],
// falling back to DefaultPageSize when size is not positive.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Skip() int64 {
	p = NewPage(p.Number, p.Size)
	return int64(p.Number-1) * int64(p.Size)
}

func (p Page) Limit() int64 {
	return int64(NewPage(p.Number, p.Size).Size)
}
