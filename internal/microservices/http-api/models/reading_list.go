package models

import "time"

// ReadingStatus is the state of a book on a user's reading list.
type ReadingStatus string

const (
	StatusWantToRead ReadingStatus = "Want to Read"
	StatusReading    ReadingStatus = "Reading"
	StatusFinished   ReadingStatus = "Finished"
)

// ReadingStatuses lists the accepted statuses in display order.
var ReadingStatuses = []ReadingStatus{StatusWantToRead, StatusReading, StatusFinished}

func (s ReadingStatus) Valid() bool {
	for _, v := range ReadingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type ReadingList struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64         `gorm:"not null;index" json:"userId"`
	BookID    int64         `gorm:"not null;index" json:"bookId"`
	Status    ReadingStatus `gorm:"type:varchar(32);not null" json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"-"`
	Book *Book `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (ReadingList) TableName() string {
	return "reading_lists"
}
