package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	FileName     string     `json:"file_name"`
	FileURL      string     `json:"file_url"`
	Category     *string    `json:"category,omitempty"`
	DocType      *string    `json:"doc_type,omitempty"`
	Supplier     *string    `json:"supplier,omitempty"`
	IssueDate    *time.Time `json:"issue_date,omitempty"`
	Amount       *float64   `json:"amount,omitempty"`
	AIConfidence *float64   `json:"ai_confidence,omitempty"`
	TextContent  *string    `json:"text_content,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:           doc.ID,
		UserID:       doc.UserID,
		FileName:     doc.FileName,
		FileURL:      doc.FileURL,
		Category:     doc.Category,
		DocType:      doc.DocType,
		Supplier:     doc.Supplier,
		IssueDate:    doc.IssueDate,
		Amount:       doc.Amount,
		AIConfidence: doc.AIConfidence,
		TextContent:  doc.TextContent,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
		DeletedAt:    doc.DeletedAt,
	}
}
