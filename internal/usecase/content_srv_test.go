package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"chakai-booking/internal/data/entity"
	"chakai-booking/internal/dto/request"
	"chakai-booking/pkg/storage"
	"chakai-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== POSTS ====================

func TestPost_PublishStampsDateOnce(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	draft, err := env.service.Post.CreatePost(ctx, &request.PostRequest{
		Kind:  "letter",
		Title: "初春のご挨拶",
		Body:  "# 新年\n\n本年もよろしくお願いいたします。",
	})
	require.NoError(t, err)
	assert.False(t, draft.Published)
	assert.Nil(t, draft.PublishedAt)
	assert.Contains(t, draft.BodyHTML, "<h1>新年</h1>")

	req := &request.PostRequest{Kind: "letter", Title: "初春のご挨拶", Body: "改稿", Published: true}
	published, err := env.service.Post.UpdatePost(ctx, draft.ID, req)
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	first := *published.PublishedAt

	time.Sleep(time.Millisecond)
	again, err := env.service.Post.UpdatePost(ctx, draft.ID, req)
	require.NoError(t, err)
	assert.True(t, first.Equal(*again.PublishedAt))
}

func TestPost_PublicViewHidesDrafts(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	draft, err := env.service.Post.CreatePost(ctx, &request.PostRequest{Kind: "tea_history", Title: "下書き"})
	require.NoError(t, err)
	_, err = env.service.Post.CreatePost(ctx, &request.PostRequest{Kind: "tea_history", Title: "公開", Published: true})
	require.NoError(t, err)
	_, err = env.service.Post.CreatePost(ctx, &request.PostRequest{Kind: "letter", Title: "便り", Published: true})
	require.NoError(t, err)

	listReq := &request.PostListRequest{
		PaginatedRequest: request.PaginatedRequest{Page: 1, PerPage: 10},
		Kind:             "tea_history",
	}

	public, err := env.service.Post.GetPosts(ctx, listReq, true)
	require.NoError(t, err)
	require.Len(t, public.Data, 1)
	assert.Equal(t, "公開", public.Data[0].Title)

	all, err := env.service.Post.GetPosts(ctx, listReq, false)
	require.NoError(t, err)
	assert.Len(t, all.Data, 2)

	_, err = env.service.Post.GetPostByID(ctx, draft.ID, true)
	assert.ErrorIs(t, err, ErrPostNotFound)
	_, err = env.service.Post.GetPostByID(ctx, draft.ID, false)
	assert.NoError(t, err)
}

func TestPost_ValidationAndDelete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.service.Post.CreatePost(ctx, &request.PostRequest{Kind: "diary", Title: "x"})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	post, err := env.service.Post.CreatePost(ctx, &request.PostRequest{Kind: "past_post", Title: "昨年の茶会"})
	require.NoError(t, err)

	require.NoError(t, env.service.Post.DeletePost(ctx, post.ID))
	assert.ErrorIs(t, env.service.Post.DeletePost(ctx, post.ID), ErrPostNotFound)
}

// ==================== SETTINGS ====================

func TestSetting_UpdateAndPublicView(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	resp, err := env.service.Setting.Update(ctx, &request.UpdateSettingsRequest{Settings: map[string]string{
		"greeting_text":       "ようこそ *茶の湯* へ",
		"hero_image":          "https://cdn.example.com/hero.jpg",
		"notification_emails": "owner@example.com, staff@example.com",
	}})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/hero.jpg", resp.Settings["hero_image"])

	public, err := env.service.Setting.GetPublic(ctx)
	require.NoError(t, err)
	assert.Contains(t, public.GreetingHTML, "<em>茶の湯</em>")
	assert.Equal(t, "https://cdn.example.com/hero.jpg", public.HeroImage)

	emails, err := env.service.Setting.NotificationEmails(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"owner@example.com", "staff@example.com"}, emails)
}

func TestSetting_UpdateRejectsWholeRequest(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tests := []struct {
		name     string
		settings map[string]string
		field    string
	}{
		{"unknown key", map[string]string{"greeting_text": "hi", "theme": "dark"}, "theme"},
		{"bad email", map[string]string{"greeting_text": "hi", "notification_emails": "ok@example.com, nope"}, "notification_emails"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.service.Setting.Update(ctx, &request.UpdateSettingsRequest{Settings: tt.settings})
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	all, err := env.service.Setting.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all.Settings)

	emails, err := env.service.Setting.NotificationEmails(ctx)
	require.NoError(t, err)
	assert.Empty(t, emails)
}

// ==================== AUTH ====================

func TestAuth_SeedLoginLogout(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	admin := utils.AdminConfig{Username: "admin", Email: "admin@example.com", Password: "s3cret-pass"}

	require.NoError(t, env.service.Auth.EnsureAdmin(ctx, admin))
	require.NoError(t, env.service.Auth.EnsureAdmin(ctx, admin))
	count, err := env.store.repository().User.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = env.service.Auth.Login(ctx, &request.LoginRequest{Username: "admin", Password: "wrong-pass"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	login, err := env.service.Auth.Login(ctx, &request.LoginRequest{Username: "admin", Password: "s3cret-pass"}, "go-test", "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, login.Role)
	assert.True(t, login.ExpiresAt.After(time.Now().Add(23*time.Hour)))

	token, err := uuid.Parse(login.Token)
	require.NoError(t, err)
	session, err := env.store.repository().Session.FindActive(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, session)

	require.NoError(t, env.service.Auth.Logout(ctx, login.Token))
	assert.ErrorIs(t, env.service.Auth.Logout(ctx, login.Token), ErrInvalidCredentials)
	assert.ErrorIs(t, env.service.Auth.Logout(ctx, "not-a-token"), ErrInvalidCredentials)
}

func TestAuth_PurgeSessions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	now := time.Now()
	sessions := env.store.repository().Session

	stale := &entity.Session{BaseSimple: entity.NewBaseSimple(now), Token: uuid.New(), ExpiresAt: now.Add(-8 * 24 * time.Hour)}
	recent := &entity.Session{BaseSimple: entity.NewBaseSimple(now), Token: uuid.New(), ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, sessions.Create(ctx, stale))
	require.NoError(t, sessions.Create(ctx, recent))

	removed, err := env.service.Auth.PurgeSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Len(t, env.store.sessions, 1)
	assert.Contains(t, env.store.sessions, recent.Token)
}

func TestAuth_EnsureAdminWithoutPassword(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	require.NoError(t, env.service.Auth.EnsureAdmin(ctx, utils.AdminConfig{Username: "admin"}))
	count, err := env.store.repository().User.CountAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

// ==================== IMAGES ====================

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestImage_UploadSniffsContent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	img, err := env.service.Image.Upload(ctx, "events", "photo.jpg", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
	assert.True(t, strings.HasPrefix(img.Path, "events/"))
	assert.True(t, strings.HasSuffix(img.Path, ".png"))

	_, err = env.service.Image.Upload(ctx, "events", "evil.png", strings.NewReader("#!/bin/sh\necho hi\n"))
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
	assert.Equal(t, 1, env.gateway.putCalls)
}

func TestImage_UploadLimits(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.service.Image.Upload(ctx, "", "empty.png", bytes.NewReader(nil))
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))

	big := append(append([]byte{}, pngHeader...), make([]byte, 1<<20)...)
	_, err = env.service.Image.Upload(ctx, "", "big.png", bytes.NewReader(big))
	assert.True(t, errors.As(err, &verr))
	assert.Zero(t, env.gateway.putCalls)
}

func TestImage_ListAndDelete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	a, err := env.service.Image.Upload(ctx, "posts", "a.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	b, err := env.service.Image.Upload(ctx, "posts", "b.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	env.gateway.urlErr[b.Path] = storage.ErrObjectNotFound

	images, err := env.service.Image.List(ctx, "/posts")
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, a.Path, images[0].Path)
	assert.Equal(t, "https://cdn.example.com/"+a.Path, images[0].URL)

	require.NoError(t, env.service.Image.Delete(ctx, "/"+a.Path))
	assert.ErrorIs(t, env.service.Image.Delete(ctx, a.Path), ErrImageNotFound)
}
