package request

type PostRequest struct {
	Kind       string `json:"kind" validate:"required,oneof=letter past_post tea_history"`
	Title      string `json:"title" validate:"required,min=1,max=200"`
	Body       string `json:"body" validate:"max=100000"`
	CoverImage string `json:"cover_image" validate:"omitempty,url"`
	Published  bool   `json:"published"`
}

type PostListRequest struct {
	PaginatedRequest
	Kind string `json:"kind" validate:"omitempty,oneof=letter past_post tea_history"`
}
