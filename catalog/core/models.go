package core

const DefaultDescription = "No description available."

// ComicRecord is one comic as the remote source reports it.
// Nil optional fields mean the source omitted them.
type ComicRecord struct {
	ID          string
	Title       string
	Description *string
	ImageURL    *string
	PageCount   *int
	Creators    []string
}

// Comic is the display-ready form with every field populated.
type Comic struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	PageCount   int
	Creators    []string
}
