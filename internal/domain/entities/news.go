package entities

import "time"

// NewsStatus is the publication state of an article
type NewsStatus string

const (
	NewsStatusPublished NewsStatus = "published"
	NewsStatusDraft     NewsStatus = "draft"
)

// News is an announcement shown on the public site
type News struct {
	ID        int64      `json:"news_id" db:"news_id"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	ImagePath string     `json:"image_path,omitempty" db:"image_path"`
	Status    NewsStatus `json:"status" db:"status"`
	AuthorID  int64      `json:"author_id,omitempty" db:"author_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// Field exposes the article to in-memory predicates and orderings.
func (n News) Field(key string) any {
	switch key {
	case "news_id":
		return n.ID
	case "title":
		return n.Title
	case "content":
		return n.Content
	case "news_status":
		return string(n.Status)
	case "news_created_at":
		return n.CreatedAt
	}
	return nil
}

// NewsInput carries the writable fields of an article.
type NewsInput struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Status  string `json:"status" validate:"omitempty,oneof=published draft"`
}

// Upload is an image received with a news article.
type Upload struct {
	Filename string
	Size     int64
	Content  []byte
}
