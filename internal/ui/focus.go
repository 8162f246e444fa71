package ui

// FocusManager tracks and rotates focus across a fixed tab order, wrapping at both ends.
type FocusManager struct {
	Current  int // index into the tab order
	Size     int // number of focusable items
	OnChange func(from, to int)
}

// Next moves focus forward and returns the new index.
func (f *FocusManager) Next() int {
	return f.move(1)
}

// Prev moves focus backward and returns the new index.
func (f *FocusManager) Prev() int {
	return f.move(-1)
}

// SetFocus focuses idx. Returns false if idx is out of range.
func (f *FocusManager) SetFocus(idx int) bool {
	if idx < 0 || idx >= f.Size {
		return false
	}
	from := f.Current
	f.Current = idx
	if f.OnChange != nil && from != idx {
		f.OnChange(from, idx)
	}
	return true
}

// IsLast reports whether the last item has focus.
func (f *FocusManager) IsLast() bool {
	return f.Size > 0 && f.Current == f.Size-1
}

func (f *FocusManager) move(delta int) int {
	if f.Size == 0 {
		return 0
	}
	next := ((f.Current+delta)%f.Size + f.Size) % f.Size
	f.SetFocus(next)
	return f.Current
}
