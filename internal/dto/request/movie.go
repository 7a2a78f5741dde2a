package request

// MovieRequest is used for both create and full replacement.
type MovieRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Genre       string `json:"genre" validate:"max=100"`
	Language    string `json:"language" validate:"max=100"`
	Duration    int    `json:"duration" validate:"gt=0,max=999"`
	ReleaseYear int    `json:"release_year" validate:"gte=0,max=9999"`
}
