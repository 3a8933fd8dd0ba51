package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/kruzhok/knowledge-hub/database"
	"github.com/kruzhok/knowledge-hub/database/model"
	"github.com/kruzhok/knowledge-hub/logger"
	"github.com/kruzhok/knowledge-hub/web/service"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	os.Setenv("KHUB_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	if err := database.InitDB(t.TempDir() + "/test.db"); err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	engine, err := NewServer().initRouter()
	if err != nil {
		t.Fatalf("init router: %v", err)
	}
	return engine
}

// loginAsAdmin logs in with the bootstrap credentials and returns the
// session cookies.
func loginAsAdmin(t *testing.T, engine *gin.Engine) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {"admin"}, "password": {"password123"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	return w.Result().Cookies()
}

func get(engine *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func postForm(engine *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestPendingArticleHiddenFromAnonymous(t *testing.T) {
	engine := newTestEngine(t)

	articleService := service.ArticleService{}
	author := &model.User{Id: 1, Name: "Автор", Role: model.RoleUser}
	pending, err := articleService.CreateArticle("Черновик", "текст", author)
	assert.NoError(t, err)

	w := get(engine, "/articles/7", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(engine, "/articles/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A privileged viewer sees the same article rendered.
	cookies := loginAsAdmin(t, engine)
	w = get(engine, "/articles/1", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), pending.Title)
}

func TestCreateArticleRequiresLogin(t *testing.T) {
	engine := newTestEngine(t)

	form := url.Values{"title": {"Статья"}, "content": {"текст"}}
	w := postForm(engine, "/articles", form, nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "/login?next=")
}

func TestPublishRequiresRole(t *testing.T) {
	engine := newTestEngine(t)

	w := postForm(engine, "/articles/1/publish", nil, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEmptyCommentLeavesNoRow(t *testing.T) {
	engine := newTestEngine(t)
	cookies := loginAsAdmin(t, engine)

	form := url.Values{"title": {"Статья"}, "content": {"текст"}}
	w := postForm(engine, "/articles", form, cookies)
	assert.Equal(t, http.StatusFound, w.Code)

	w = postForm(engine, "/articles/1/comments", url.Values{"content": {"   "}}, cookies)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/articles/1", w.Header().Get("Location"))

	var count int64
	database.GetDB().Model(model.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAdminCanPublishAndDelete(t *testing.T) {
	engine := newTestEngine(t)

	articleService := service.ArticleService{}
	author := &model.User{Id: 99, Name: "Автор", Role: model.RoleUser}
	pending, err := articleService.CreateArticle("Черновик", "текст", author)
	assert.NoError(t, err)

	cookies := loginAsAdmin(t, engine)

	w := postForm(engine, "/articles/1/publish", nil, cookies)
	assert.Equal(t, http.StatusFound, w.Code)

	// Now visible to anonymous viewers.
	w = get(engine, "/articles/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), pending.Title)

	w = postForm(engine, "/articles/1/delete", nil, cookies)
	assert.Equal(t, http.StatusFound, w.Code)

	w = get(engine, "/articles/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestContactPages(t *testing.T) {
	engine := newTestEngine(t)

	w := get(engine, "/contacts", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Никита К.")

	w = get(engine, "/contacts/nikita", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(engine, "/contacts/ghost", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
