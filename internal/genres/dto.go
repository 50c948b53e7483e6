package genres

type GenreResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Normalized  string `json:"normalized"`
	Description string `json:"description,omitempty"`
	EventCount  int64  `json:"event_count"`
}
