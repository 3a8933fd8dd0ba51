package service

import (
	"strings"

	"github.com/kruzhok/knowledge-hub/database"
	"github.com/kruzhok/knowledge-hub/database/model"
)

type CommentService struct{}

// GetComments returns an article's comments newest-first, filtered to
// published ones for viewers who cannot moderate.
func (s *CommentService) GetComments(articleId int, viewer *model.User) ([]*model.Comment, error) {
	db := database.GetDB()

	query := db.Model(model.Comment{}).
		Where("article_id = ?", articleId).
		Order("id desc")
	if viewer == nil || !viewer.CanModerate() {
		query = query.Where("status = ?", model.StatusPublished)
	}

	var comments []*model.Comment
	if err := query.Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment stores a new pending comment on an article.
func (s *CommentService) AddComment(articleId int, content string, author *model.User) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	comment := &model.Comment{
		ArticleId: articleId,
		Content:   content,
		Status:    model.StatusPending,
	}
	if author != nil {
		comment.AuthorName = author.Name
	}

	if err := database.GetDB().Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// PublishComment moves a comment to published and returns it, so callers
// can redirect back to its article.
func (s *CommentService) PublishComment(id int) (*model.Comment, error) {
	db := database.GetDB()

	comment := &model.Comment{}
	if err := db.Where("id = ?", id).First(comment).Error; err != nil {
		return nil, err
	}

	comment.Status = model.StatusPublished
	if err := db.Save(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}
