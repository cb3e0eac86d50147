package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/models"
	"blogapi/internal/router"
	"blogapi/internal/token"
	"blogapi/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq int64

type testEnv struct {
	cfg    *config.Config
	db     *gorm.DB
	tokens *token.Service
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Env:          config.EnvTest,
		JWTSecret:    "test-secret",
		JWTExpiresIn: time.Hour,
		PasswordSalt: "pepper",
		Port:         "3000",
	}

	dsn := fmt.Sprintf("file:handlers%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	tokens := token.NewService(cfg.JWTSecret, cfg.JWTExpiresIn)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return &testEnv{
		cfg:    cfg,
		db:     gdb,
		tokens: tokens,
		router: router.New(cfg, gdb, tokens, log),
	}
}

// createUser seeds a user directly and returns it with a valid token, so
// tests can mint admins without an admin signup route.
func (e *testEnv) createUser(t *testing.T, name, email, role string) (*models.User, string) {
	t.Helper()

	hash, err := utils.HashPassword("123456", e.cfg.PasswordSalt)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Name:              name,
		Email:             email,
		Password:          hash,
		Role:              role,
		PasswordChangedAt: time.Now(),
	}
	if err := e.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	raw, err := e.tokens.Issue(user)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return user, raw
}

func (e *testEnv) createPost(t *testing.T, author *models.User, status models.PostStatus) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       "post",
		Body:        "body",
		Status:      status,
		CreatedByID: author.ID,
	}
	if err := e.db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}

func (e *testEnv) createComment(t *testing.T, author *models.User, post *models.Post) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Body:        "body",
		PostID:      post.ID,
		CreatedByID: author.ID,
	}
	if err := e.db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	return comment
}

func (e *testEnv) createInteraction(t *testing.T, author *models.User, typ models.InteractionType, postID, commentID *uint) {
	t.Helper()
	in := &models.Interaction{
		Type:        typ,
		PostID:      postID,
		CommentID:   commentID,
		CreatedByID: author.ID,
	}
	if err := e.db.Create(in).Error; err != nil {
		t.Fatalf("failed to create interaction: %v", err)
	}
}

// do performs a request against the full router. body may be nil, a struct
// to marshal, or a raw JSON string.
func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		buf, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		rd = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return body
}

func dataObject(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	body := decode(t, w)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %v", body["data"])
	}
	return data
}

func dataArray(t *testing.T, w *httptest.ResponseRecorder) []any {
	t.Helper()
	body := decode(t, w)
	data, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected array data, got %v", body["data"])
	}
	return data
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("expected status %d, got %d: %s", code, w.Code, w.Body.String())
	}
}

func wantMessage(t *testing.T, w *httptest.ResponseRecorder, msg string) {
	t.Helper()
	body := decode(t, w)
	if got, _ := body["message"].(string); got != msg {
		t.Errorf("expected message %q, got %q", msg, got)
	}
}

func ptr(v uint) *uint {
	return &v
}
