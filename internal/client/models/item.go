// Package models defines the client-side view of server records.
package models

// Item mirrors a server item. Pending optimistic entries carry a temporary
// id until the server-assigned one is reconciled in.
type Item struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// ItemPatch carries the mutable item fields for a partial update.
// Nil means "leave unchanged".
type ItemPatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Apply returns a copy of item with the patch fields applied.
func (p ItemPatch) Apply(item Item) Item {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Completed != nil {
		item.Completed = *p.Completed
	}
	return item
}

// Session is the authenticated identity returned by registration and login.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Valid reports whether the session carries everything needed to make
// authenticated calls. Stored sessions failing this check are discarded.
func (s *Session) Valid() bool {
	return s != nil && s.ID != "" && s.Email != "" && s.Token != ""
}
