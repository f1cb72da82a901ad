package dto

import "bookshelf/internal/microservices/http-api/models"

// AddToReadingListRequest: payload for POST /api/reading-list
type AddToReadingListRequest struct {
	UserID int64  `json:"userId"`
	BookID int64  `json:"bookId"`
	Status string `json:"status"`
}

// RemoveFromReadingListRequest: payload for POST /api/reading-list/delete
type RemoveFromReadingListRequest struct {
	ReadingListID int64 `json:"readingListId" binding:"required"`
}

// ReadingListBook is the book projection nested in a reading-list entry.
type ReadingListBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

// ReadingListEntryResponse: one row of GET /api/reading-list/:userId
type ReadingListEntryResponse struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"userId"`
	Status string          `json:"status"`
	Books  ReadingListBook `json:"books"`
}

func (r AddToReadingListRequest) ToModel() models.ReadingList {
	return models.ReadingList{
		UserID: r.UserID,
		BookID: r.BookID,
		Status: models.ReadingStatus(r.Status),
	}
}

// FromReadingListModels shapes entries joined with their book. Entries whose book
// did not load are skipped, matching inner-join semantics.
func FromReadingListModels(list []models.ReadingList) []ReadingListEntryResponse {
	items := make([]ReadingListEntryResponse, 0, len(list))
	for _, entry := range list {
		if entry.Book == nil {
			continue
		}
		items = append(items, ReadingListEntryResponse{
			ID:     entry.ID,
			UserID: entry.UserID,
			Status: string(entry.Status),
			Books: ReadingListBook{
				Title:  entry.Book.Title,
				Author: entry.Book.Author,
				Genre:  entry.Book.Genre,
			},
		})
	}
	return items
}
