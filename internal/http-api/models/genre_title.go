package models

// explicit join model for the title<->genre association; both sides are
// nullable so deleting a genre or title nulls the link instead of failing it
type GenreTitle struct {
	ID      int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID *int64 `json:"title_id" gorm:"index"`
	GenreID *int64 `json:"genre_id" gorm:"index"`

	Title *Title `gorm:"foreignKey:TitleID;constraint:OnDelete:SET NULL;"`
	Genre *Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:SET NULL;"`
}

func (GenreTitle) TableName() string {
	return "genre_titles"
}
