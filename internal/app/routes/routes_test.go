package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emreakn/researchdesk/internal/app/controllers"
	"github.com/emreakn/researchdesk/internal/app/services"
	"github.com/emreakn/researchdesk/internal/app/storage"
	"github.com/emreakn/researchdesk/internal/pkg/auth"
	"github.com/emreakn/researchdesk/internal/pkg/filestorage"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type testAPI struct {
	router     *gin.Engine
	uploadsDir string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemStorage()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "researchdesk.test",
	})

	fileStorage, err := filestorage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	svc := services.NewServices(store, jwtService)
	ctrl := controllers.NewControllers(svc, fileStorage)

	router := gin.New()
	Setup(router, ctrl, jwtService, fileStorage.BasePath())

	return &testAPI{router: router, uploadsDir: fileStorage.BasePath()}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func (a *testAPI) register(t *testing.T, username, role string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	decodeData(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (a *testAPI) createPost(t *testing.T, token, company, region, content string) int64 {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("company", company))
	require.NoError(t, writer.WriteField("region", region))
	require.NoError(t, writer.WriteField("content", content))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var post struct {
		ID int64 `json:"id"`
	}
	decodeData(t, w, &post)
	return post.ID
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t)

	token := api.register(t, "sarah.chen", "analyst")

	t.Run("current user", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/auth/user", token, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var user struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		}
		decodeData(t, w, &user)
		assert.Equal(t, "sarah.chen", user.Username)
		assert.Equal(t, "analyst", user.Role)
	})

	t.Run("login", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"username": "sarah.chen", "password": "password123",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"username": "sarah.chen", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("duplicate username", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username": "sarah.chen",
			"email":    "other@example.com",
			"password": "password123",
			"role":     "analyst",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username": "someone",
			"email":    "someone@example.com",
			"password": "password123",
			"role":     "admin",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/posts", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPostLifecycle(t *testing.T) {
	api := newTestAPI(t)
	analyst := api.register(t, "sarah.chen", "analyst")
	reader := api.register(t, "david.kim", "analyst")

	postID := api.createPost(t, analyst, "Acme Corp", "india",
		"Acme Corp grew revenue 12% this quarter. Margins held. Guidance is unchanged.")

	t.Run("single post is enriched", func(t *testing.T) {
		w := api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", postID), reader, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var post struct {
			Headline string `json:"headline"`
			Author   struct {
				Username string `json:"username"`
			} `json:"author"`
			IsLikedByFundManager bool `json:"isLikedByFundManager"`
		}
		decodeData(t, w, &post)
		assert.NotEmpty(t, post.Headline)
		assert.Equal(t, "sarah.chen", post.Author.Username)
		assert.False(t, post.IsLikedByFundManager)
	})

	t.Run("missing post is 404", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/posts/999", reader, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("react and filter", func(t *testing.T) {
		w := api.do(t, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/reactions", postID), reader,
			gin.H{"type": "mmi"})
		require.Equal(t, http.StatusCreated, w.Code)

		var posts []json.RawMessage
		w = api.do(t, http.MethodGet, "/api/v1/posts?minReactions=1", reader, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, w, &posts)
		assert.Len(t, posts, 1)

		w = api.do(t, http.MethodGet, "/api/v1/posts?minReactions=2", reader, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, w, &posts)
		assert.Empty(t, posts)
	})

	t.Run("company filter", func(t *testing.T) {
		var posts []json.RawMessage
		w := api.do(t, http.MethodGet, "/api/v1/posts?company=acme", reader, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, w, &posts)
		assert.Len(t, posts, 1)
	})

	t.Run("invalid threshold is 400", func(t *testing.T) {
		w := api.do(t, http.MethodGet, "/api/v1/posts?minMmi=abc", reader, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("remove absent reaction is 404", func(t *testing.T) {
		w := api.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/posts/%d/reactions/tbd", postID), reader, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("comment", func(t *testing.T) {
		w := api.do(t, http.MethodPost, fmt.Sprintf("/api/v1/posts/%d/comments", postID), reader,
			gin.H{"content": "Good note."})
		require.Equal(t, http.StatusCreated, w.Code)

		var comment struct {
			Content string `json:"content"`
			Author  struct {
				Username string `json:"username"`
			} `json:"author"`
		}
		decodeData(t, w, &comment)
		assert.Equal(t, "Good note.", comment.Content)
		assert.Equal(t, "david.kim", comment.Author.Username)
	})

	t.Run("update", func(t *testing.T) {
		w := api.do(t, http.MethodPut, fmt.Sprintf("/api/v1/posts/%d", postID), reader, gin.H{
			"headline": "Revised view",
			"content":  "New data changes the picture.",
			"company":  "Acme Corporation",
			"region":   "asia",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var post struct {
			Headline string `json:"headline"`
			Region   string `json:"region"`
		}
		decodeData(t, w, &post)
		assert.Equal(t, "Revised view", post.Headline)
		assert.Equal(t, "asia", post.Region)
	})

	t.Run("posts by user", func(t *testing.T) {
		var posts []json.RawMessage
		w := api.do(t, http.MethodGet, "/api/v1/users/1/posts", reader, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, w, &posts)
		assert.Len(t, posts, 1)
	})
}

func TestCreatePost_RejectedBatchLeavesNoFiles(t *testing.T) {
	api := newTestAPI(t)
	analyst := api.register(t, "sarah.chen", "analyst")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("company", "Acme Corp"))
	require.NoError(t, writer.WriteField("region", "india"))
	require.NoError(t, writer.WriteField("content", "Quarterly numbers attached."))

	part, err := writer.CreateFormFile("attachments", "model.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("spreadsheet"))
	require.NoError(t, err)

	part, err = writer.CreateFormFile("attachments", "tool.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("binary"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/posts", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+analyst)

	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	entries, err := os.ReadDir(api.uploadsDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected upload batch must not leave files behind")
}

func TestFundManagerRoutes(t *testing.T) {
	api := newTestAPI(t)
	analyst := api.register(t, "sarah.chen", "analyst")
	manager := api.register(t, "john.manager", "fund_manager")

	postID := api.createPost(t, analyst, "Acme Corp", "india",
		"Acme Corp results were fine. Nothing new. Holding the rating.")

	likePath := fmt.Sprintf("/api/v1/fund-manager/posts/%d/like", postID)

	t.Run("analyst is forbidden", func(t *testing.T) {
		w := api.do(t, http.MethodPost, likePath, analyst, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("manager can like once", func(t *testing.T) {
		w := api.do(t, http.MethodPost, likePath, manager, nil)
		assert.Equal(t, http.StatusCreated, w.Code)

		w = api.do(t, http.MethodPost, likePath, manager, nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("flag is visible to everyone", func(t *testing.T) {
		w := api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/posts/%d", postID), analyst, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var post struct {
			IsLikedByFundManager bool `json:"isLikedByFundManager"`
		}
		decodeData(t, w, &post)
		assert.True(t, post.IsLikedByFundManager)
	})

	t.Run("liked posts listing", func(t *testing.T) {
		var posts []json.RawMessage
		w := api.do(t, http.MethodGet, "/api/v1/fund-manager/liked-posts", manager, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, w, &posts)
		assert.Len(t, posts, 1)
	})

	t.Run("unlike", func(t *testing.T) {
		w := api.do(t, http.MethodDelete, likePath, manager, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = api.do(t, http.MethodDelete, likePath, manager, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestInterviewRoutes(t *testing.T) {
	api := newTestAPI(t)
	analyst := api.register(t, "priya.sharma", "analyst")

	w := api.do(t, http.MethodPost, "/api/v1/interviews", analyst, gin.H{
		"title":   "Tata Motors CFO on the EV transition",
		"company": "Tata Motors",
		"region":  "india",
		"source":  "CNBC",
		"link":    "https://example.com/interview",
		"summary": "Capex and margins.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		AddedByUser struct {
			Username string `json:"username"`
		} `json:"addedByUser"`
	}
	decodeData(t, w, &created)
	assert.Equal(t, "priya.sharma", created.AddedByUser.Username)

	t.Run("listing", func(t *testing.T) {
		var interviews []struct {
			Company string `json:"company"`
		}
		w := api.do(t, http.MethodGet, "/api/v1/interviews", analyst, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decodeData(t, w, &interviews)
		require.Len(t, interviews, 1)
		assert.Equal(t, "Tata Motors", interviews[0].Company)
	})

	t.Run("invalid region rejected", func(t *testing.T) {
		w := api.do(t, http.MethodPost, "/api/v1/interviews", analyst, gin.H{
			"title":   "Bad entry",
			"company": "Acme Corp",
			"region":  "europe",
			"source":  "TV",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSummarizeRoute(t *testing.T) {
	api := newTestAPI(t)
	analyst := api.register(t, "sarah.chen", "analyst")

	w := api.do(t, http.MethodPost, "/api/v1/summarize", analyst, gin.H{
		"text": "Acme Corp reported 20% growth. Margins expanded. Cash flow improved.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Headline string `json:"headline"`
		Summary  string `json:"summary"`
	}
	decodeData(t, w, &result)
	assert.Contains(t, result.Headline, "Acme Corp")
	assert.Equal(t, "Acme Corp reported 20% growth. Margins expanded.", result.Summary)
}
