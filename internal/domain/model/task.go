package model

// Task is a single entry in the shared task pool. The wire and on-disk
// representations are identical: CreatedAt is epoch milliseconds and the ID
// is the creation instant rendered as text.
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Complete  bool   `json:"complete"`
	CreatedAt int64  `json:"createdAt"`
}
