package ui

// AppMode is the top-level screen: the product list or a searched product's detail.
type AppMode int

const (
	ModeList AppMode = iota
	ModeDetail
)

func (m AppMode) String() string {
	switch m {
	case ModeList:
		return "List"
	case ModeDetail:
		return "Detail"
	default:
		return "Unknown"
	}
}
