package domain

type Category struct {
	Name string `json:"name"`
	Slug Slug   `json:"slug"`
}

type Genre struct {
	Name string `json:"name"`
	Slug Slug   `json:"slug"`
}

type Title struct {
	Id          TitleId   `json:"id"`
	Name        string    `json:"name"`
	Year        int       `json:"year"`
	Description string    `json:"description"`
	Rating      *int      `json:"rating"` // nil until the first review
	Category    *Category `json:"category"`
	Genres      []Genre   `json:"genre"`
}

type TitleCreationData struct {
	Name        string
	Year        int
	Description string
	Category    Slug // empty means no category
	Genres      []Slug
}

type TitleUpdate struct {
	Name        *string
	Year        *int
	Description *string
	Category    *Slug
	Genres      *[]Slug
}

type TitleFilter struct {
	Category Slug
	Genre    Slug
	Name     string
	Year     int
}
