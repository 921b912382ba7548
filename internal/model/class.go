package model

// ClassInfo is a class label with the number of students enrolled in it.
// It is always derived from the student list and never stored.
type ClassInfo struct {
	Serie        string `json:"serie"`
	StudentCount int    `json:"student_count"`
}

// AddClassRequest is the payload for registering a new class label.
type AddClassRequest struct {
	Serie string `json:"serie" binding:"required,max=50"`
}
