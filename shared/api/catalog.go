package api

// CreateCategoryRequest is also used for genres
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=256,notblank"`
	Slug string `json:"slug" validate:"required,max=50,slug"`
}

type CreateTitleRequest struct {
	Name        string   `json:"name" validate:"required,max=256,notblank"`
	Year        int      `json:"year" validate:"required,notfuture"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"omitempty,slug"`
	Genre       []string `json:"genre" validate:"dive,slug"`
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=256,notblank"`
	Year        *int      `json:"year" validate:"omitempty,notfuture"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" validate:"omitempty,slug"`
	Genre       *[]string `json:"genre" validate:"omitempty,dive,slug"`
}
