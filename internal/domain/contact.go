package domain

// Contact is a person who reached out through a public form.
// Contacts are never deduplicated.
type Contact struct {
	ID          string  `json:"id"`
	WorkspaceID string  `json:"workspace_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Message     *string `json:"message,omitempty"` // nil leaves the column out of the insert
}
