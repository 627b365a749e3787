package models

type Course struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Topic completion is set by hand; it is never derived from sessions.
type Topic struct {
	ID        int64  `json:"id"`
	CourseID  int64  `json:"courseId"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// CourseCompletion counts a course's topics and how many are marked done.
type CourseCompletion struct {
	CourseID  int64
	Name      string
	Total     int
	Completed int
}

// Ratio is Completed/Total, or 0 for a course without topics.
func (c CourseCompletion) Ratio() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Completed) / float64(c.Total)
}
