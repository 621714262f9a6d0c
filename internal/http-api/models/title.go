package models

import "time"

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:256;not null"`
	Year        int     `json:"year" gorm:"type:smallint;not null"`
	Description string  `json:"description" gorm:"type:text"`
	CategoryID  *int64  `json:"-" gorm:"index"`
	PubDate     time.Time `json:"-" gorm:"autoCreateTime"`

	// Associations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genre" gorm:"many2many:genre_titles;"`
}

func (Title) TableName() string {
	return "titles"
}
