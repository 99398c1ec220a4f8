package handlers

import (
	"net/http"
	"testing"

	"szekhely-portal/config"
	"szekhely-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blogRouter() *gin.Engine {
	r := setupRouter()
	r.GET("/blog/posts", ListBlogPostsHandler)
	r.POST("/blog/posts", CreateBlogPostHandler)
	r.GET("/blog/posts/:language/:slug", GetBlogPostHandler)
	r.PUT("/blog/posts/:language/:slug", UpdateBlogPostHandler)
	r.POST("/blog/posts/:language/:slug/publish", PublishBlogPostHandler)
	r.DELETE("/blog/posts/:language/:slug", DeleteBlogPostHandler)
	r.GET("/public/blog/posts", PublicBlogPostsHandler)
	r.GET("/public/blog/posts/:language/:slug", PublicBlogPostHandler)
	return r
}

func TestCreateBlogPostDerivesCompositeID(t *testing.T) {
	SetupTestDB(t)
	w := doJSON(t, blogRouter(), http.MethodPost, "/blog/posts", models.BlogPost{
		Language: models.LanguageHU,
		Slug:     "szekhelyszolgaltatas-araink",
		Title:    "Székhelyszolgáltatás áraink",
		Content:  "<p>Tartalom</p>",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var post models.BlogPost
	decodeBody(t, w, &post)
	assert.Equal(t, "hu_szekhelyszolgaltatas-araink", post.ID)
	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.Equal(t, models.ContentFormatHTML, post.ContentFormat)
}

func TestCreateBlogPostDuplicateSlugConflicts(t *testing.T) {
	SetupTestDB(t)
	router := blogRouter()
	post := models.BlogPost{Language: models.LanguageHU, Slug: "araink", Title: "Áraink"}

	w := doJSON(t, router, http.MethodPost, "/blog/posts", post)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/blog/posts", post)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Ugyanaz a slug másik nyelven nem ütközik.
	post.Language = models.LanguageEN
	w = doJSON(t, router, http.MethodPost, "/blog/posts", post)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateBlogPostRendersMarkdown(t *testing.T) {
	SetupTestDB(t)
	w := doJSON(t, blogRouter(), http.MethodPost, "/blog/posts", models.BlogPost{
		Language:      models.LanguageHU,
		Slug:          "markdown-proba",
		Title:         "Markdown próba",
		ContentFormat: models.ContentFormatMarkdown,
		ContentSource: "# Címsor\n\nBekezdés **félkövérrel**.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var post models.BlogPost
	decodeBody(t, w, &post)
	assert.Contains(t, post.Content, "<h1")
	assert.Contains(t, post.Content, "<strong>félkövérrel</strong>")
	assert.Equal(t, "# Címsor\n\nBekezdés **félkövérrel**.", post.ContentSource)
}

func TestUpdateBlogPostKeepsIdentity(t *testing.T) {
	SetupTestDB(t)
	router := blogRouter()
	doJSON(t, router, http.MethodPost, "/blog/posts", models.BlogPost{
		Language: models.LanguageHU, Slug: "araink", Title: "Áraink",
	})

	w := doJSON(t, router, http.MethodPut, "/blog/posts/hu/araink", models.BlogPost{
		Slug:  "masik-slug",
		Title: "Frissített cím",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var post models.BlogPost
	decodeBody(t, w, &post)
	assert.Equal(t, "hu_araink", post.ID)
	assert.Equal(t, "araink", post.Slug)
	assert.Equal(t, "Frissített cím", post.Title)
}

func TestPublishSetsPublishedAtOnce(t *testing.T) {
	SetupTestDB(t)
	router := blogRouter()
	doJSON(t, router, http.MethodPost, "/blog/posts", models.BlogPost{
		Language: models.LanguageHU, Slug: "araink", Title: "Áraink",
	})

	w := doJSON(t, router, http.MethodPost, "/blog/posts/hu/araink/publish", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var first models.BlogPost
	decodeBody(t, w, &first)
	require.NotNil(t, first.PublishedAt)

	w = doJSON(t, router, http.MethodPost, "/blog/posts/hu/araink/publish", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var second models.BlogPost
	decodeBody(t, w, &second)
	require.NotNil(t, second.PublishedAt)
	assert.Equal(t, first.PublishedAt.Unix(), second.PublishedAt.Unix())
}

func TestPublicBlogHidesDrafts(t *testing.T) {
	SetupTestDB(t)
	router := blogRouter()
	doJSON(t, router, http.MethodPost, "/blog/posts", models.BlogPost{
		Language: models.LanguageHU, Slug: "piszkozat", Title: "Piszkozat",
	})
	doJSON(t, router, http.MethodPost, "/blog/posts", models.BlogPost{
		Language: models.LanguageHU, Slug: "publikalt", Title: "Publikált",
	})
	doJSON(t, router, http.MethodPost, "/blog/posts/hu/publikalt/publish", nil)

	w := doJSON(t, router, http.MethodGet, "/public/blog/posts?language=hu", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var posts []models.BlogPost
	decodeBody(t, w, &posts)
	require.Len(t, posts, 1)
	assert.Equal(t, "publikalt", posts[0].Slug)

	w = doJSON(t, router, http.MethodGet, "/public/blog/posts/hu/piszkozat", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteBlogPost(t *testing.T) {
	SetupTestDB(t)
	router := blogRouter()
	doJSON(t, router, http.MethodPost, "/blog/posts", models.BlogPost{
		Language: models.LanguageHU, Slug: "araink", Title: "Áraink",
	})

	w := doJSON(t, router, http.MethodDelete, "/blog/posts/hu/araink", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	config.DB.Model(&models.BlogPost{}).Where("id = ?", "hu_araink").Count(&count)
	assert.Zero(t, count)
}
