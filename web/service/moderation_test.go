package service

import (
	"testing"

	"github.com/kruzhok/knowledge-hub/database"
	"github.com/kruzhok/knowledge-hub/database/model"

	"github.com/stretchr/testify/assert"
)

var (
	anon      *model.User
	reader    = &model.User{Id: 1, Name: "Читатель", Role: model.RoleUser}
	moderator = &model.User{Id: 2, Name: "Модератор", Role: model.RoleModerator}
	admin     = &model.User{Id: 3, Name: "Админ", Role: model.RoleAdmin}
)

func TestCreateArticleStatusByRole(t *testing.T) {
	setup(t)

	service := ArticleService{}

	pending, err := service.CreateArticle("Черновик", "текст", reader)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, pending.Status)
	assert.Equal(t, "Читатель", pending.AuthorName)

	published, err := service.CreateArticle("Сразу в ленту", "текст", moderator)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPublished, published.Status)

	alsoPublished, err := service.CreateArticle("И эта тоже", "текст", admin)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPublished, alsoPublished.Status)

	_, err = service.CreateArticle("", "текст", reader)
	assert.Equal(t, ErrEmptyContent, err)
}

func TestArticleVisibility(t *testing.T) {
	setup(t)

	service := ArticleService{}

	pending, _ := service.CreateArticle("Черновик", "текст", reader)
	published, _ := service.CreateArticle("В ленте", "текст", moderator)

	for _, viewer := range []*model.User{anon, reader} {
		articles, err := service.GetArticles(viewer)
		assert.NoError(t, err)
		assert.Len(t, articles, 1)
		assert.Equal(t, published.Id, articles[0].Id)

		// Direct fetch of a pending article must look like a missing row.
		_, err = service.GetArticle(pending.Id, viewer)
		assert.True(t, database.IsNotFound(err))
	}

	for _, viewer := range []*model.User{moderator, admin} {
		articles, err := service.GetArticles(viewer)
		assert.NoError(t, err)
		assert.Len(t, articles, 2)

		got, err := service.GetArticle(pending.Id, viewer)
		assert.NoError(t, err)
		assert.Equal(t, pending.Id, got.Id)
	}

	queue, err := service.GetPendingArticles()
	assert.NoError(t, err)
	assert.Len(t, queue, 1)
	assert.Equal(t, pending.Id, queue[0].Id)
}

func TestArticlesNewestFirst(t *testing.T) {
	setup(t)

	service := ArticleService{}
	first, _ := service.CreateArticle("Первая", "текст", moderator)
	second, _ := service.CreateArticle("Вторая", "текст", moderator)

	articles, err := service.GetArticles(anon)
	assert.NoError(t, err)
	assert.Equal(t, []int{second.Id, first.Id}, []int{articles[0].Id, articles[1].Id})
}

func TestPublishArticle(t *testing.T) {
	setup(t)

	service := ArticleService{}
	pending, _ := service.CreateArticle("Черновик", "текст", reader)

	assert.NoError(t, service.PublishArticle(pending.Id))

	got, err := service.GetArticle(pending.Id, anon)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPublished, got.Status)

	err = service.PublishArticle(999)
	assert.True(t, database.IsNotFound(err))
}

func TestUpdateArticleKeepsStatus(t *testing.T) {
	setup(t)

	service := ArticleService{}
	pending, _ := service.CreateArticle("Черновик", "текст", reader)

	assert.NoError(t, service.UpdateArticle(pending.Id, "Новый заголовок", "новый текст"))

	got, err := service.GetArticle(pending.Id, moderator)
	assert.NoError(t, err)
	assert.Equal(t, "Новый заголовок", got.Title)
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestDeleteArticleCascadesComments(t *testing.T) {
	setup(t)

	articleService := ArticleService{}
	commentService := CommentService{}

	article, _ := articleService.CreateArticle("Статья", "текст", moderator)
	_, err := commentService.AddComment(article.Id, "коммент", reader)
	assert.NoError(t, err)

	assert.NoError(t, articleService.DeleteArticle(article.Id))

	_, err = articleService.GetArticle(article.Id, admin)
	assert.True(t, database.IsNotFound(err))

	var count int64
	database.GetDB().Model(model.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCommentModeration(t *testing.T) {
	setup(t)

	articleService := ArticleService{}
	commentService := CommentService{}

	article, _ := articleService.CreateArticle("Статья", "текст", moderator)

	comment, err := commentService.AddComment(article.Id, "первый!", reader)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, comment.Status)

	_, err = commentService.AddComment(article.Id, "   ", reader)
	assert.Equal(t, ErrEmptyContent, err)

	// Pending comments are hidden from ordinary viewers.
	visible, err := commentService.GetComments(article.Id, reader)
	assert.NoError(t, err)
	assert.Empty(t, visible)

	all, err := commentService.GetComments(article.Id, moderator)
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	published, err := commentService.PublishComment(comment.Id)
	assert.NoError(t, err)
	assert.Equal(t, article.Id, published.ArticleId)

	visible, err = commentService.GetComments(article.Id, anon)
	assert.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestReviewModeration(t *testing.T) {
	setup(t)

	service := ReviewService{}

	review, err := service.AddReview("nikita", "отличный ментор", reader)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusPending, review.Status)

	_, err = service.AddReview("nikita", "", reader)
	assert.Equal(t, ErrEmptyContent, err)

	visible, err := service.GetReviews("nikita", anon)
	assert.NoError(t, err)
	assert.Empty(t, visible)

	all, err := service.GetReviews("nikita", admin)
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	published, err := service.PublishReview(review.Id)
	assert.NoError(t, err)
	assert.Equal(t, "nikita", published.ContactSlug)

	visible, err = service.GetReviews("nikita", reader)
	assert.NoError(t, err)
	assert.Len(t, visible, 1)

	// Reviews for other contacts stay out of the list.
	other, err := service.GetReviews("kate", admin)
	assert.NoError(t, err)
	assert.Empty(t, other)
}

func TestContactDirectory(t *testing.T) {
	service := ContactService{}

	contacts := service.GetContacts()
	assert.Len(t, contacts, 4)
	assert.Equal(t, "nikita", contacts[0].Slug)

	contact := service.GetContact("kate")
	assert.NotNil(t, contact)
	assert.Equal(t, "Екатерина М.", contact.Name)

	assert.Nil(t, service.GetContact("ghost"))
}
