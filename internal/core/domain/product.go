package domain

type (
	Product struct {
		ID          string
		Title       string
		Category    string
		Price       *float64
		Image       string
		Rating      *Rating
		Description string
	}

	Rating struct {
		Rate  float64
		Count *int
	}
)

// LoadState is the lifecycle of the catalog snapshot:
// StateLoading -> StateReady | StateFailed. Both outcomes are terminal.
type LoadState int

const (
	StateLoading LoadState = iota
	StateReady
	StateFailed
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "error"
	default:
		return "unknown"
	}
}
