package domain

// DashboardOption is an admin-curated quick-reply choice shown in the chat
// widget. Read-only here; curation happens elsewhere.
type DashboardOption struct {
	ID        int64  `json:"id"`
	Label     string `json:"label"`
	Response  string `json:"response"`
	Active    bool   `json:"active"`
	SortOrder int    `json:"sortOrder"`
}
