package service

import (
	"strings"

	"github.com/kruzhok/knowledge-hub/database"
	"github.com/kruzhok/knowledge-hub/database/model"
	"github.com/kruzhok/knowledge-hub/util/common"

	"gorm.io/gorm"
)

var ErrEmptyContent = common.NewError("content must not be empty")

type ArticleService struct{}

// GetArticles returns the feed newest-first. Non-moderators only see
// published articles.
func (s *ArticleService) GetArticles(viewer *model.User) ([]*model.Article, error) {
	db := database.GetDB()

	query := db.Model(model.Article{}).Order("id desc")
	if viewer == nil || !viewer.CanModerate() {
		query = query.Where("status = ?", model.StatusPublished)
	}

	var articles []*model.Article
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// GetPendingArticles returns the moderation queue, newest-first.
func (s *ArticleService) GetPendingArticles() ([]*model.Article, error) {
	db := database.GetDB()

	var articles []*model.Article
	err := db.Model(model.Article{}).
		Where("status = ?", model.StatusPending).
		Order("id desc").
		Find(&articles).
		Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// GetArticle fetches one article. A pending article requested by a viewer
// who cannot moderate yields record-not-found, so the existence of pending
// content is never disclosed.
func (s *ArticleService) GetArticle(id int, viewer *model.User) (*model.Article, error) {
	db := database.GetDB()

	article := &model.Article{}
	err := db.Model(model.Article{}).
		Where("id = ?", id).
		First(article).
		Error
	if err != nil {
		return nil, err
	}

	if article.Status != model.StatusPublished && (viewer == nil || !viewer.CanModerate()) {
		return nil, gorm.ErrRecordNotFound
	}
	return article, nil
}

// CreateArticle stores a new article. Moderators and admins publish
// immediately, everyone else lands in the moderation queue.
func (s *ArticleService) CreateArticle(title, content string, author *model.User) (*model.Article, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	status := model.StatusPending
	if author != nil && author.CanModerate() {
		status = model.StatusPublished
	}

	article := &model.Article{
		Title:   title,
		Content: content,
		Status:  status,
	}
	if author != nil {
		article.AuthorName = author.Name
	}

	if err := database.GetDB().Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// UpdateArticle changes title and content without touching the status.
func (s *ArticleService) UpdateArticle(id int, title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}

	db := database.GetDB()

	article := &model.Article{}
	if err := db.Where("id = ?", id).First(article).Error; err != nil {
		return err
	}

	article.Title = title
	article.Content = content
	return db.Save(article).Error
}

// PublishArticle moves a pending article to published.
func (s *ArticleService) PublishArticle(id int) error {
	db := database.GetDB()

	article := &model.Article{}
	if err := db.Where("id = ?", id).First(article).Error; err != nil {
		return err
	}

	article.Status = model.StatusPublished
	return db.Save(article).Error
}

// DeleteArticle removes an article together with its comments.
func (s *ArticleService) DeleteArticle(id int) error {
	db := database.GetDB()

	article := &model.Article{}
	if err := db.Where("id = ?", id).First(article).Error; err != nil {
		return err
	}

	if err := db.Where("article_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
		return err
	}
	return db.Delete(article).Error
}
