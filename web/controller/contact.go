package controller

import (
	"fmt"
	"net/http"

	"github.com/kruzhok/knowledge-hub/database"
	"github.com/kruzhok/knowledge-hub/database/model"
	"github.com/kruzhok/knowledge-hub/logger"
	"github.com/kruzhok/knowledge-hub/web/middleware"
	"github.com/kruzhok/knowledge-hub/web/service"
	"github.com/kruzhok/knowledge-hub/web/session"

	"github.com/gin-gonic/gin"
)

// ContactController handles the mentor directory and its reviews.
type ContactController struct {
	BaseController

	contactService service.ContactService
	reviewService  service.ReviewService
}

func NewContactController(g *gin.RouterGroup) *ContactController {
	a := &ContactController{}
	a.initRouter(g)
	return a
}

func (a *ContactController) initRouter(g *gin.RouterGroup) {
	moderators := middleware.RoleRequired(model.RoleModerator, model.RoleAdmin)

	g.GET("/contacts", a.contacts)
	g.GET("/contacts/:slug", a.contactDetail)
	g.POST("/contacts/:slug/reviews", a.checkLogin, a.addReview)
	g.POST("/reviews/:id/publish", moderators, a.publishReview)
}

func (a *ContactController) contacts(c *gin.Context) {
	html(c, "contacts.html", "Контакты", gin.H{
		"contacts": a.contactService.GetContacts(),
	})
}

func (a *ContactController) contactDetail(c *gin.Context) {
	contact := a.contactService.GetContact(c.Param("slug"))
	if contact == nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	reviews, err := a.reviewService.GetReviews(contact.Slug, middleware.GetCurrentUser(c))
	if err != nil {
		logger.Warning("load reviews err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	html(c, "contact_detail.html", contact.Name, gin.H{
		"person":  contact,
		"reviews": reviews,
	})
}

func (a *ContactController) addReview(c *gin.Context) {
	contact := a.contactService.GetContact(c.Param("slug"))
	if contact == nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	_, err := a.reviewService.AddReview(contact.Slug, c.PostForm("content"), middleware.GetCurrentUser(c))
	if err != nil {
		if err == service.ErrEmptyContent {
			session.Flash(c, "Отзыв не может быть пустым")
			c.Redirect(http.StatusFound, "/contacts/"+contact.Slug)
			return
		}
		logger.Warning("add review err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.Flash(c, "Отзыв отправлен на модерацию")
	c.Redirect(http.StatusFound, "/contacts/"+contact.Slug)
}

func (a *ContactController) publishReview(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	review, err := a.reviewService.PublishReview(id)
	if err != nil {
		if database.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
		} else {
			logger.Warning("publish review err:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	session.Flash(c, "Отзыв опубликован")
	c.Redirect(http.StatusFound, fmt.Sprintf("/contacts/%s", review.ContactSlug))
}
