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

// ArticleForm represents article create/update input.
type ArticleForm struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

// ArticleController handles the article feed, article CRUD and comments.
type ArticleController struct {
	BaseController

	articleService service.ArticleService
	commentService service.CommentService
}

func NewArticleController(g *gin.RouterGroup) *ArticleController {
	a := &ArticleController{}
	a.initRouter(g)
	return a
}

func (a *ArticleController) initRouter(g *gin.RouterGroup) {
	moderators := middleware.RoleRequired(model.RoleModerator, model.RoleAdmin)
	admins := middleware.RoleRequired(model.RoleAdmin)

	g.GET("/articles", a.feed)
	g.GET("/articles/new", a.checkLogin, a.newArticle)
	g.POST("/articles", a.checkLogin, a.create)
	g.GET("/articles/:id", a.show)
	g.GET("/articles/:id/edit", moderators, a.edit)
	g.POST("/articles/:id/update", moderators, a.update)
	g.POST("/articles/:id/publish", moderators, a.publish)
	g.POST("/articles/:id/delete", admins, a.delete)
	g.POST("/articles/:id/comments", a.checkLogin, a.addComment)
	g.POST("/comments/:id/publish", moderators, a.publishComment)
}

func (a *ArticleController) feed(c *gin.Context) {
	articles, err := a.articleService.GetArticles(middleware.GetCurrentUser(c))
	if err != nil {
		logger.Warning("load articles err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	html(c, "articles_feed.html", "Статьи", gin.H{"articles": articles})
}

func (a *ArticleController) newArticle(c *gin.Context) {
	html(c, "new_article.html", "Новая статья", nil)
}

func (a *ArticleController) create(c *gin.Context) {
	var form ArticleForm
	_ = c.ShouldBind(&form)

	author := middleware.GetCurrentUser(c)
	article, err := a.articleService.CreateArticle(form.Title, form.Content, author)
	if err != nil {
		if err == service.ErrEmptyContent {
			html(c, "new_article.html", "Новая статья", gin.H{
				"error":   "Заполните заголовок и текст",
				"article": &model.Article{Title: form.Title, Content: form.Content},
			})
			return
		}
		logger.Warning("create article err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if article.Status == model.StatusPending {
		session.Flash(c, "Материал отправлен на модерацию")
	} else {
		session.Flash(c, "Новая статья опубликована")
	}
	c.Redirect(http.StatusFound, defaultLandingURL)
}

func (a *ArticleController) show(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	viewer := middleware.GetCurrentUser(c)
	article, err := a.articleService.GetArticle(id, viewer)
	if err != nil {
		if database.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
		} else {
			logger.Warning("load article err:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	comments, err := a.commentService.GetComments(article.Id, viewer)
	if err != nil {
		logger.Warning("load comments err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	html(c, "article_detail.html", article.Title, gin.H{
		"article":  article,
		"comments": comments,
	})
}

func (a *ArticleController) edit(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	article, err := a.articleService.GetArticle(id, middleware.GetCurrentUser(c))
	if err != nil {
		if database.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
		} else {
			logger.Warning("load article err:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}
	html(c, "edit_article.html", "Редактирование", gin.H{"article": article})
}

func (a *ArticleController) update(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	var form ArticleForm
	_ = c.ShouldBind(&form)

	if err := a.articleService.UpdateArticle(id, form.Title, form.Content); err != nil {
		if database.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		if err == service.ErrEmptyContent {
			session.Flash(c, "Заполните заголовок и текст")
			c.Redirect(http.StatusFound, fmt.Sprintf("/articles/%d/edit", id))
			return
		}
		logger.Warning("update article err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.Flash(c, "Изменения сохранены")
	c.Redirect(http.StatusFound, fmt.Sprintf("/articles/%d", id))
}

func (a *ArticleController) publish(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	if err := a.articleService.PublishArticle(id); err != nil {
		if database.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
		} else {
			logger.Warning("publish article err:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	session.Flash(c, "Статья опубликована")
	c.Redirect(http.StatusFound, fmt.Sprintf("/articles/%d", id))
}

func (a *ArticleController) delete(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	if err := a.articleService.DeleteArticle(id); err != nil {
		if database.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
		} else {
			logger.Warning("delete article err:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	session.Flash(c, "Статья удалена")
	c.Redirect(http.StatusFound, defaultLandingURL)
}

func (a *ArticleController) addComment(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	viewer := middleware.GetCurrentUser(c)
	article, err := a.articleService.GetArticle(id, viewer)
	if err != nil {
		if database.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
		} else {
			logger.Warning("load article err:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	_, err = a.commentService.AddComment(article.Id, c.PostForm("content"), viewer)
	if err != nil {
		if err == service.ErrEmptyContent {
			session.Flash(c, "Комментарий не может быть пустым")
			c.Redirect(http.StatusFound, fmt.Sprintf("/articles/%d", article.Id))
			return
		}
		logger.Warning("add comment err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	session.Flash(c, "Комментарий отправлен на модерацию")
	c.Redirect(http.StatusFound, fmt.Sprintf("/articles/%d", article.Id))
}

func (a *ArticleController) publishComment(c *gin.Context) {
	id, ok := pathId(c)
	if !ok {
		return
	}

	comment, err := a.commentService.PublishComment(id)
	if err != nil {
		if database.IsNotFound(err) {
			c.AbortWithStatus(http.StatusNotFound)
		} else {
			logger.Warning("publish comment err:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	session.Flash(c, "Комментарий опубликован")
	c.Redirect(http.StatusFound, fmt.Sprintf("/articles/%d", comment.ArticleId))
}
