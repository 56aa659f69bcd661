package models

// Task is a single to-do item. Tasks are not owned by any user.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        Date   `json:"date"`
	Completed   bool   `json:"completed"`
	Important   bool   `json:"important"`
}
