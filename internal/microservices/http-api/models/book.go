package models

import "time"

type Book struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string    `gorm:"not null;index" json:"title"`
	Author          string    `gorm:"not null;index" json:"author"`
	Genre           string    `gorm:"not null" json:"genre"`
	PublicationYear int       `gorm:"not null" json:"publicationYear"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Book) TableName() string {
	return "books"
}
