package domain

// List is a remote task list.
type List struct {
	ID       int64
	Name     string
	Deleted  bool
	Locked   bool
	Archived bool
	Smart    bool
	Position int
}

// Ref returns the identifier for this list (list variant, no series/task ids).
func (l List) Ref() Ref {
	return ListRef(l.ID)
}
