package domain

// Ref identifies one remote item by its canonical identifiers.
// Task refs carry all three ids; list refs carry only ListID.
type Ref struct {
	ListID   int64 `json:"list_id"`
	SeriesID int64 `json:"taskseries_id,omitempty"`
	TaskID   int64 `json:"task_id,omitempty"`
}

// TaskRef builds a ref for a single task.
func TaskRef(listID, seriesID, taskID int64) Ref {
	return Ref{ListID: listID, SeriesID: seriesID, TaskID: taskID}
}

// ListRef builds a ref for a list.
func ListRef(listID int64) Ref {
	return Ref{ListID: listID}
}

// IsList reports whether the ref points at a list rather than a task.
func (r Ref) IsList() bool {
	return r.SeriesID == 0 && r.TaskID == 0
}

// IsZero reports whether the ref carries no identifiers at all.
func (r Ref) IsZero() bool {
	return r == Ref{}
}
