package repository

import (
	"context"
	"errors"
	"fmt"

	"chakai-booking/internal/data/entity"
	"chakai-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PostFilter struct {
	Kind          entity.PostKind
	PublishedOnly bool
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	FindAll(ctx context.Context, filter PostFilter, limit, offset int) ([]*entity.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPostRepository(db database.PgxIface, log *zap.Logger) PostRepository {
	return &postRepository{
		db:  db,
		log: log.With(zap.String("repository", "post")),
	}
}

const postColumns = `id, kind, title, body, cover_image, published, published_at,
		       created_at, updated_at, deleted_at`

func scanPost(row pgx.Row) (*entity.Post, error) {
	var post entity.Post
	err := row.Scan(
		&post.ID,
		&post.Kind,
		&post.Title,
		&post.Body,
		&post.CoverImage,
		&post.Published,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// where builds the shared WHERE clause; args start at $1.
func (f PostFilter) where() (string, []any) {
	clause := `WHERE deleted_at IS NULL`
	var args []any
	if f.Kind != "" {
		args = append(args, f.Kind)
		clause += fmt.Sprintf(` AND kind = $%d`, len(args))
	}
	if f.PublishedOnly {
		clause += ` AND published = TRUE`
	}
	return clause, args
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	query := `
		INSERT INTO posts (id, kind, title, body, cover_image, published,
		                   published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		post.ID,
		post.Kind,
		post.Title,
		post.Body,
		post.CoverImage,
		post.Published,
		post.PublishedAt,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create post",
			zap.Error(err),
			zap.String("kind", string(post.Kind)),
			zap.String("title", post.Title),
		)
		return fmt.Errorf("create post %s: %w", post.Title, err)
	}

	return nil
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND deleted_at IS NULL`

	post, err := scanPost(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find post by ID",
			zap.Error(err),
			zap.String("post_id", id.String()),
		)
		return nil, fmt.Errorf("find post by ID %s: %w", id.String(), err)
	}

	return post, nil
}

func (r *postRepository) FindAll(ctx context.Context, filter PostFilter, limit, offset int) ([]*entity.Post, error) {
	where, args := filter.where()
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM posts %s
		ORDER BY COALESCE(published_at, created_at) DESC
		LIMIT $%d OFFSET $%d`, postColumns, where, len(args)-1, len(args))

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to get posts",
			zap.Error(err),
			zap.String("kind", string(filter.Kind)),
		)
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer rows.Close()

	var posts []*entity.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			r.log.Error("Failed to scan post row", zap.Error(err))
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post rows: %w", err)
	}

	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	where, args := filter.where()

	var count int64
	err := database.Conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM posts `+where, args...).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count posts", zap.Error(err))
		return 0, fmt.Errorf("count posts: %w", err)
	}

	return count, nil
}

func (r *postRepository) Update(ctx context.Context, post *entity.Post) error {
	query := `
		UPDATE posts
		SET kind = $2, title = $3, body = $4, cover_image = $5,
		    published = $6, published_at = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		post.ID,
		post.Kind,
		post.Title,
		post.Body,
		post.CoverImage,
		post.Published,
		post.PublishedAt,
		post.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update post",
			zap.Error(err),
			zap.String("post_id", post.ID.String()),
		)
		return fmt.Errorf("update post %s: %w", post.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("post %s not found or already deleted", post.ID.String())
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE posts SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete post",
			zap.Error(err),
			zap.String("post_id", id.String()),
		)
		return fmt.Errorf("delete post %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("post %s not found", id.String())
	}

	return nil
}
