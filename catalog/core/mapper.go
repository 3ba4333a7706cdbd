package core

// ToComic fills absent optional fields with their display defaults.
func ToComic(rec ComicRecord) Comic {
	c := Comic{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: DefaultDescription,
		Creators:    []string{},
	}
	if rec.Description != nil {
		c.Description = *rec.Description
	}
	if rec.ImageURL != nil {
		c.ImageURL = *rec.ImageURL
	}
	if rec.PageCount != nil {
		c.PageCount = *rec.PageCount
	}
	if rec.Creators != nil {
		c.Creators = append(make([]string, 0, len(rec.Creators)), rec.Creators...)
	}
	return c
}

func ToComics(recs []ComicRecord) []Comic {
	out := make([]Comic, 0, len(recs))
	for _, rec := range recs {
		out = append(out, ToComic(rec))
	}
	return out
}
