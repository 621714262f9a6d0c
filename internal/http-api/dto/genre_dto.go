package dto

type CreateGenreDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"omitempty,max=50"`
}

type UpdateGenreDTO struct {
	Name *string `json:"name" binding:"omitempty,max=256"`
	Slug *string `json:"slug" binding:"omitempty,max=50"`
}
