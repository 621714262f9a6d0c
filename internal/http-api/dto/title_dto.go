package dto

import "reviewhub/internal/http-api/models"

// CreateTitleDTO references category and genres by slug, the way clients see
// them.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

// UpdateTitleDTO: nil means "leave unchanged"; an empty category slug clears
// the association, a non-nil genre list replaces the set wholesale.
type UpdateTitleDTO struct {
	Name        *string   `json:"name" binding:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

// TitleResponse carries the read-time rating; nil renders as JSON null when
// the title has no reviews.
type TitleResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Rating      *float64         `json:"rating"`
	Description string           `json:"description"`
	Genre       []models.Genre   `json:"genre"`
	Category    *models.Category `json:"category"`
}

func FromTitleModel(t models.Title, rating *float64) TitleResponse {
	genres := t.Genres
	if genres == nil {
		genres = []models.Genre{}
	}
	return TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      rating,
		Description: t.Description,
		Genre:       genres,
		Category:    t.Category,
	}
}
