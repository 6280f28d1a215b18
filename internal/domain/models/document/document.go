package document

// Document is the payload of a document view: a markdown body
type Document struct {
	ViewID    string `json:"view_id"`
	Name      string `json:"name"`
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
	UpdatedAt int64  `json:"updated_at"`
}
