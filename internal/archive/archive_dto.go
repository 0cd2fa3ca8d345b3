package archive

type RegisterDocumentRequest struct {
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description"`
	FileID           string   `json:"file_id" binding:"required"`
	OriginalFilename string   `json:"original_filename"`
	ContentType      string   `json:"content_type"`
	RetentionUntil   string   `json:"retention_until"`
	Tags             []string `json:"tags"`
	Department       string   `json:"department"`
}
