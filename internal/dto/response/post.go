package response

import (
	"time"

	"chakai-booking/internal/data/entity"
)

type PostResponse struct {
	ID          string          `json:"id"`
	Kind        entity.PostKind `json:"kind"`
	Title       string          `json:"title"`
	Body        string          `json:"body"`
	BodyHTML    string          `json:"body_html"`
	CoverImage  string          `json:"cover_image,omitempty"`
	Published   bool            `json:"published"`
	PublishedAt *time.Time      `json:"published_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func PostToResponse(post *entity.Post, bodyHTML string) PostResponse {
	return PostResponse{
		ID:          post.ID.String(),
		Kind:        post.Kind,
		Title:       post.Title,
		Body:        post.Body,
		BodyHTML:    bodyHTML,
		CoverImage:  post.CoverImage,
		Published:   post.Published,
		PublishedAt: post.PublishedAt,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}
