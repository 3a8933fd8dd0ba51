package controller

import (
	"net/http"

	"github.com/kruzhok/knowledge-hub/database/model"
	"github.com/kruzhok/knowledge-hub/logger"
	"github.com/kruzhok/knowledge-hub/web/middleware"
	"github.com/kruzhok/knowledge-hub/web/service"
	"github.com/kruzhok/knowledge-hub/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the local credential login request.
type LoginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

// RegisterForm represents the local registration request.
type RegisterForm struct {
	Username string `form:"username"`
	Name     string `form:"name"`
	Password string `form:"password"`
	Confirm  string `form:"confirm"`
}

// IndexController handles the landing page, static pages and the local
// credential flows.
type IndexController struct {
	BaseController

	userService    service.UserService
	articleService service.ArticleService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/about", a.about)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/register", a.registerPage)
	g.POST("/register", a.register)
	g.GET("/logout", a.logout)
}

// index shows the published feed, plus the pending queue for moderators.
func (a *IndexController) index(c *gin.Context) {
	viewer := middleware.GetCurrentUser(c)

	articles, err := a.articleService.GetArticles(viewer)
	if err != nil {
		logger.Warning("load articles err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	var pending []*model.Article
	if viewer != nil && viewer.CanModerate() {
		pending, err = a.articleService.GetPendingArticles()
		if err != nil {
			logger.Warning("load pending articles err:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
	}

	html(c, "index.html", "База знаний", gin.H{
		"articles":        articles,
		"pendingArticles": pending,
	})
}

func (a *IndexController) about(c *gin.Context) {
	html(c, "about.html", "О кружке", nil)
}

func (a *IndexController) loginPage(c *gin.Context) {
	html(c, "login.html", "Вход", gin.H{
		"next": c.Query("next"),
	})
}

// login authenticates local credentials, including the admin bootstrap pair.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil || form.Username == "" || form.Password == "" {
		html(c, "login.html", "Вход", gin.H{
			"error": "Заполните имя пользователя и пароль",
			"next":  form.Next,
		})
		return
	}

	user := a.userService.CheckLocalUser(form.Username, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q from %s", form.Username, getRemoteIp(c))
		html(c, "login.html", "Вход", gin.H{
			"error": "Неверное имя пользователя или пароль",
			"next":  form.Next,
		})
		return
	}

	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("save session err:", err)
	}
	logger.Infof("%s logged in from %s", user.Name, getRemoteIp(c))
	session.Flash(c, "Вы вошли по логину и паролю")
	c.Redirect(http.StatusFound, safeNextURL(c, form.Next))
}

func (a *IndexController) registerPage(c *gin.Context) {
	html(c, "register.html", "Регистрация", nil)
}

// register creates a local account and logs it in.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm
	_ = c.ShouldBind(&form)

	user, err := a.userService.RegisterLocal(form.Username, form.Name, form.Password, form.Confirm)
	if err != nil {
		msg := "Не удалось зарегистрироваться"
		switch err {
		case service.ErrEmptyCredentials:
			msg = "Заполните все поля"
		case service.ErrPasswordMismatch:
			msg = "Пароли не совпадают"
		case service.ErrUserExists:
			msg = "Такой пользователь уже существует"
		default:
			logger.Warning("register err:", err)
		}
		html(c, "register.html", "Регистрация", gin.H{"error": msg})
		return
	}

	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("save session err:", err)
	}
	session.Flash(c, "Регистрация прошла успешно")
	c.Redirect(http.StatusFound, defaultLandingURL)
}

// logout clears the session, including any in-flight OAuth state.
func (a *IndexController) logout(c *gin.Context) {
	if user := middleware.GetCurrentUser(c); user != nil {
		logger.Infof("%s logged out", user.Name)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("clear session err:", err)
	}
	c.Redirect(http.StatusFound, defaultLandingURL)
}
