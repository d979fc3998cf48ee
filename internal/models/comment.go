package models

// Комментарий привязан ровно к одной паре (entity_type, entity_id).
type Comment struct {
	ID          int64  `json:"id"`
	EntityType  string `json:"entity_type"` // "technique" | "rule"
	EntityID    string `json:"entity_id"`
	Text        string `json:"text"`
	CommentType string `json:"comment_type"` // comment, note, warning, question, recommend
	Priority    string `json:"priority"`
	Visibility  string `json:"visibility"`
	AuthorName  string `json:"author_name"`
	Status      string `json:"status"` // active, archived, deleted
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
