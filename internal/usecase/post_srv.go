package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chakai-booking/internal/data/entity"
	"chakai-booking/internal/data/repository"
	"chakai-booking/internal/dto/request"
	"chakai-booking/internal/dto/response"
	"chakai-booking/pkg/utils"

	"go.uber.org/zap"
)

type PostService interface {
	// GetPosts lists posts; publishedOnly hides drafts from the public site.
	GetPosts(ctx context.Context, req *request.PostListRequest, publishedOnly bool) (*response.PaginatedResponse[response.PostResponse], error)
	GetPostByID(ctx context.Context, postID string, publishedOnly bool) (*response.PostResponse, error)
	CreatePost(ctx context.Context, req *request.PostRequest) (*response.PostResponse, error)
	UpdatePost(ctx context.Context, postID string, req *request.PostRequest) (*response.PostResponse, error)
	DeletePost(ctx context.Context, postID string) error
}

type postService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPostService(repo *repository.Repository, log *zap.Logger) PostService {
	return &postService{
		repo: repo,
		log:  log.With(zap.String("service", "post")),
	}
}

func (s *postService) toResponse(post *entity.Post) response.PostResponse {
	html, err := utils.RenderMarkdown(post.Body)
	if err != nil {
		s.log.Warn("Failed to render post body",
			zap.Error(err),
			zap.String("post_id", post.ID.String()),
		)
	}
	return response.PostToResponse(post, html)
}

func (s *postService) GetPosts(ctx context.Context, req *request.PostListRequest, publishedOnly bool) (*response.PaginatedResponse[response.PostResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	filter := repository.PostFilter{
		Kind:          entity.PostKind(req.Kind),
		PublishedOnly: publishedOnly,
	}
	limit := req.Limit()

	posts, err := s.repo.Post.FindAll(ctx, filter, limit, req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get posts: %w", err)
	}

	total, err := s.repo.Post.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	postResponses := make([]response.PostResponse, len(posts))
	for i, post := range posts {
		postResponses[i] = s.toResponse(post)
	}

	return response.NewPaginatedResponse(postResponses, req.CurrentPage(), limit, total), nil
}

func (s *postService) GetPostByID(ctx context.Context, postID string, publishedOnly bool) (*response.PostResponse, error) {
	id, err := parseID("post_id", postID)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.Post.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", postID, err)
	}
	if post == nil || (publishedOnly && !post.Published) {
		return nil, ErrPostNotFound
	}

	resp := s.toResponse(post)
	return &resp, nil
}

// applyPublish stamps the publish date the first time a post goes live.
func applyPublish(post *entity.Post, published bool, now time.Time) {
	post.Published = published
	if published && post.PublishedAt == nil {
		post.PublishedAt = &now
	}
}

func (s *postService) CreatePost(ctx context.Context, req *request.PostRequest) (*response.PostResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create post validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	now := time.Now()
	post := &entity.Post{
		Base:       entity.NewBase(now),
		Kind:       entity.PostKind(req.Kind),
		Title:      strings.TrimSpace(req.Title),
		Body:       req.Body,
		CoverImage: req.CoverImage,
	}
	applyPublish(post, req.Published, now)

	if err := s.repo.Post.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info("Post created",
		zap.String("post_id", post.ID.String()),
		zap.String("kind", string(post.Kind)),
	)

	resp := s.toResponse(post)
	return &resp, nil
}

func (s *postService) UpdatePost(ctx context.Context, postID string, req *request.PostRequest) (*response.PostResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update post validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	id, err := parseID("post_id", postID)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.Post.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", postID, err)
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	now := time.Now()
	post.Kind = entity.PostKind(req.Kind)
	post.Title = strings.TrimSpace(req.Title)
	post.Body = req.Body
	post.CoverImage = req.CoverImage
	post.UpdatedAt = now
	applyPublish(post, req.Published, now)

	if err := s.repo.Post.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	resp := s.toResponse(post)
	return &resp, nil
}

func (s *postService) DeletePost(ctx context.Context, postID string) error {
	id, err := parseID("post_id", postID)
	if err != nil {
		return err
	}

	post, err := s.repo.Post.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get post %s: %w", postID, err)
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := s.repo.Post.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.log.Info("Post deleted", zap.String("post_id", postID))
	return nil
}
