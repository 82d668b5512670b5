package httpapi

import (
	"time"

	"github.com/dmitrijs2005/gophblog/internal/server/models"
)

// Response DTOs. Field names follow the camelCase convention of the public API.

type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserView(u *models.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

type articleView struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	CategoryID string    `json:"categoryId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toArticleView(a *models.Article) articleView {
	return articleView{
		ID: a.ID, UserID: a.UserID, Title: a.Title, Body: a.Body,
		Status: string(a.Status), CategoryID: a.CategoryID,
		CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt,
	}
}

func toArticleViews(items []*models.Article) []articleView {
	views := make([]articleView, 0, len(items))
	for _, a := range items {
		views = append(views, toArticleView(a))
	}
	return views
}

type commentView struct {
	ID        string    `json:"id"`
	ArticleID string    `json:"articleId"`
	UserID    string    `json:"userId,omitempty"`
	UserName  string    `json:"userName,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCommentView(c *models.Comment) commentView {
	return commentView{
		ID: c.ID, ArticleID: c.ArticleID, UserID: c.UserID, UserName: c.GuestName,
		Body: c.Body, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

type namedView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCategoryView(c *models.Category) namedView {
	return namedView{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func toTagView(t *models.Tag) namedView {
	return namedView{ID: t.ID, Name: t.Name, CreatedAt: t.CreatedAt, UpdatedAt: t.UpdatedAt}
}

func toTagViews(items []*models.Tag) []namedView {
	views := make([]namedView, 0, len(items))
	for _, t := range items {
		views = append(views, toTagView(t))
	}
	return views
}

type imageView struct {
	ID          string    `json:"id"`
	ArticleID   string    `json:"articleId"`
	Name        string    `json:"name"`
	ContentType string    `json:"mimeType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toImageView(i *models.Image) imageView {
	return imageView{
		ID: i.ID, ArticleID: i.ArticleID, Name: i.Name, ContentType: i.ContentType,
		Size: i.Size, CreatedAt: i.CreatedAt, UpdatedAt: i.UpdatedAt,
	}
}
