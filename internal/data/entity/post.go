package entity

import "time"

type PostKind string

const (
	PostKindLetter     PostKind = "letter"
	PostKindPastPost   PostKind = "past_post"
	PostKindTeaHistory PostKind = "tea_history"
)

func (k PostKind) Valid() bool {
	switch k {
	case PostKindLetter, PostKindPastPost, PostKindTeaHistory:
		return true
	}
	return false
}

type Post struct {
	Base
	Kind        PostKind   `db:"kind"`
	Title       string     `db:"title"`
	Body        string     `db:"body"` // Markdown
	CoverImage  string     `db:"cover_image"`
	Published   bool       `db:"published"`
	PublishedAt *time.Time `db:"published_at"`
}
