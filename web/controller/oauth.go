package controller

import (
	"net/http"

	"github.com/kruzhok/knowledge-hub/database/model"
	"github.com/kruzhok/knowledge-hub/logger"
	"github.com/kruzhok/knowledge-hub/web/service"
	"github.com/kruzhok/knowledge-hub/web/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OauthController drives the authorization-code exchange with the external
// identity providers and folds the result into the session and user table.
type OauthController struct {
	BaseController

	oauthService service.OauthService
	userService  service.UserService
}

func NewOauthController(g *gin.RouterGroup) *OauthController {
	a := &OauthController{}
	a.initRouter(g)
	return a
}

func (a *OauthController) initRouter(g *gin.RouterGroup) {
	g.GET("/oauth/:provider", a.initiate)
	g.GET("/oauth/:provider/callback", a.callback)
}

func oauthProvider(c *gin.Context) (string, bool) {
	provider := c.Param("provider")
	if provider != model.ProviderGoogle && provider != model.ProviderYandex {
		c.AbortWithStatus(http.StatusNotFound)
		return "", false
	}
	return provider, true
}

// initiate stores a one-time state token plus the sanitized return URL in
// the session and redirects the browser to the provider.
func (a *OauthController) initiate(c *gin.Context) {
	provider, ok := oauthProvider(c)
	if !ok {
		return
	}

	if !a.oauthService.Enabled(provider) {
		session.Flash(c, "Вход через этого провайдера не настроен")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	state := uuid.NewString()
	nextURL := safeNextURL(c, c.Query("next"))
	if err := session.SetOauthState(c, state, nextURL); err != nil {
		logger.Warning("save oauth state err:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	authURL, err := a.oauthService.AuthCodeURL(provider, state)
	if err != nil {
		logger.Warning("build auth url err:", err)
		session.Flash(c, "Не удалось начать вход, попробуйте ещё раз")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

// callback validates the echoed state, exchanges the code for a profile and
// reconciles it with the user table. The state check fails closed with 400;
// every provider-side failure bounces back to the login page.
func (a *OauthController) callback(c *gin.Context) {
	provider, ok := oauthProvider(c)
	if !ok {
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warningf("%s login aborted: %s", provider, errParam)
		session.Flash(c, "Вход отменён")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	storedState := session.GetOauthState(c)
	if storedState == "" || c.Query("state") != storedState {
		logger.Warningf("%s callback state mismatch from %s", provider, getRemoteIp(c))
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	code := c.Query("code")
	if code == "" {
		session.Flash(c, "Не удалось войти, попробуйте ещё раз")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	profile, err := a.oauthService.FetchProfile(c.Request.Context(), provider, code)
	if err != nil {
		logger.Warningf("%s profile fetch failed: %v", provider, err)
		session.Flash(c, "Не удалось войти, попробуйте ещё раз")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := a.userService.UpsertExternal(provider, profile.ExternalId, profile.Email, profile.Name)
	if err != nil {
		logger.Warning("upsert external user err:", err)
		session.Flash(c, "Не удалось войти, попробуйте ещё раз")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("save session err:", err)
	}

	nextURL := session.TakeNextURL(c)
	if nextURL == "" {
		nextURL = defaultLandingURL
	}
	session.Flash(c, "Вы вошли через "+provider)
	c.Redirect(http.StatusFound, nextURL)
}
