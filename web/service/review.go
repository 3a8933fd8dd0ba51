package service

import (
	"strings"

	"github.com/kruzhok/knowledge-hub/database"
	"github.com/kruzhok/knowledge-hub/database/model"
)

type ReviewService struct{}

// GetReviews returns a contact's reviews newest-first, filtered to
// published ones for viewers who cannot moderate.
func (s *ReviewService) GetReviews(contactSlug string, viewer *model.User) ([]*model.Review, error) {
	db := database.GetDB()

	query := db.Model(model.Review{}).
		Where("contact_slug = ?", contactSlug).
		Order("id desc")
	if viewer == nil || !viewer.CanModerate() {
		query = query.Where("status = ?", model.StatusPublished)
	}

	var reviews []*model.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// AddReview stores a new pending review for a contact.
func (s *ReviewService) AddReview(contactSlug, content string, author *model.User) (*model.Review, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	review := &model.Review{
		ContactSlug: contactSlug,
		Content:     content,
		Status:      model.StatusPending,
	}
	if author != nil {
		review.AuthorName = author.Name
	}

	if err := database.GetDB().Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// PublishReview moves a review to published and returns it, so callers can
// redirect back to its contact page.
func (s *ReviewService) PublishReview(id int) (*model.Review, error) {
	db := database.GetDB()

	review := &model.Review{}
	if err := db.Where("id = ?", id).First(review).Error; err != nil {
		return nil, err
	}

	review.Status = model.StatusPublished
	if err := db.Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}
