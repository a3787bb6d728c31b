package models

import "time"

// PostsCollection is the document collection holding blog posts.
const PostsCollection = "posts"

// Post is a blog entry written by an author.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Fields returns the document payload of p. The ID is the document key and
// is not part of the payload.
func (p Post) Fields() Fields {
	return Fields{
		"title":      p.Title,
		"body":       p.Body,
		"authorId":   p.AuthorID,
		"authorName": p.AuthorName,
		"createdAt":  p.CreatedAt,
	}
}

// PostFromDocument maps a stored document onto a [Post].
func PostFromDocument(d Document) Post {
	createdAt := d.Time("createdAt")
	if createdAt.IsZero() {
		createdAt = d.CreateTime
	}

	return Post{
		ID:         d.ID,
		Title:      d.String("title"),
		Body:       d.String("body"),
		AuthorID:   d.String("authorId"),
		AuthorName: d.String("authorName"),
		CreatedAt:  createdAt,
	}
}
