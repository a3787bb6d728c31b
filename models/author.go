package models

import "time"

// AuthorsCollection is the document collection holding author profiles.
// Author documents are keyed by the author's UID.
const AuthorsCollection = "authors"

// Author is the public profile of a registered user.
type Author struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Fields returns the document payload of a.
func (a Author) Fields() Fields {
	return Fields{
		"name":      a.Name,
		"email":     a.Email,
		"createdAt": a.CreatedAt,
	}
}

// AuthorFromDocument maps a stored document onto an [Author].
func AuthorFromDocument(d Document) Author {
	return Author{
		ID:        d.ID,
		Name:      d.String("name"),
		Email:     d.String("email"),
		CreatedAt: d.Time("createdAt"),
	}
}
