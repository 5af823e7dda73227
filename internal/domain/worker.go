package domain

type Worker struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
