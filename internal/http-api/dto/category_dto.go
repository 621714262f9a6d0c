package dto

// CreateCategoryDTO: slug is optional and generated from the name if missing
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"omitempty,max=50"`
}

type UpdateCategoryDTO struct {
	Name *string `json:"name" binding:"omitempty,max=256"`
	Slug *string `json:"slug" binding:"omitempty,max=50"`
}
