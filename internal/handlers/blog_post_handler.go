package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"szekhely-portal/config"
	"szekhely-portal/models"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gorm.io/gorm"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// renderPostContent markdown formátumnál renderel, a forrást megőrzi; HTML
// formátumnál a tartalom változatlanul megy át.
func renderPostContent(post *models.BlogPost) error {
	switch post.ContentFormat {
	case models.ContentFormatMarkdown:
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(post.ContentSource), &buf); err != nil {
			return fmt.Errorf("markdown renderelése sikertelen: %w", err)
		}
		post.Content = buf.String()
	case "", models.ContentFormatHTML:
		post.ContentFormat = models.ContentFormatHTML
		post.ContentSource = ""
	default:
		return fmt.Errorf("ismeretlen tartalomformátum: %q", post.ContentFormat)
	}
	return nil
}

func validPostLanguage(language string) bool {
	return language == models.LanguageHU || language == models.LanguageEN
}

// ListBlogPostsHandler lapozott admin lista, nyelv és státusz szűrővel.
func ListBlogPostsHandler(c *gin.Context) {
	query := config.DB.Model(&models.BlogPost{})
	if language := c.Query("language"); language != "" {
		query = query.Where("language = ?", language)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var totalRows int64
	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a bejegyzések számlálása"})
		return
	}

	var posts []models.BlogPost
	if err := query.Scopes(Paginate(c)).Order("created_at desc").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a bejegyzések betöltése"})
		return
	}
	if posts == nil {
		posts = make([]models.BlogPost, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, posts, totalRows))
}

func GetBlogPostHandler(c *gin.Context) {
	var post models.BlogPost
	id := models.PostID(c.Param("language"), c.Param("slug"))
	if err := config.DB.First(&post, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A bejegyzés nem található"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func CreateBlogPostHandler(c *gin.Context) {
	var post models.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hibás adatok: " + err.Error()})
		return
	}

	post.Slug = strings.TrimSpace(strings.ToLower(post.Slug))
	if post.Slug == "" || !validPostLanguage(post.Language) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A nyelv és a slug megadása kötelező"})
		return
	}
	post.ID = models.PostID(post.Language, post.Slug)
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if err := renderPostContent(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Create(&post).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Ezen a nyelven már létezik bejegyzés ezzel a sluggal"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a bejegyzés mentése: " + err.Error()})
		return
	}

	GlobalHub.Notify("posts", "create", post.ID)
	c.JSON(http.StatusCreated, post)
}

func UpdateBlogPostHandler(c *gin.Context) {
	var post models.BlogPost
	id := models.PostID(c.Param("language"), c.Param("slug"))
	if err := config.DB.First(&post, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A módosítandó bejegyzés nem található"})
		return
	}

	var input models.BlogPost
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hibás adatok: " + err.Error()})
		return
	}

	// A kulcs alkotórészei nem módosíthatók, átnevezés = új bejegyzés.
	input.ID = post.ID
	input.Language = post.Language
	input.Slug = post.Slug
	input.CreatedAt = post.CreatedAt
	input.PublishedAt = post.PublishedAt
	if input.Status == "" {
		input.Status = post.Status
	}
	if err := renderPostContent(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Save(&input).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a bejegyzés mentése: " + err.Error()})
		return
	}

	GlobalHub.Notify("posts", "update", post.ID)
	c.JSON(http.StatusOK, input)
}

// PublishBlogPostHandler publikálja a bejegyzést; az első publikáláskor
// rögzíti a PublishedAt időpontot, újrapublikálás nem írja át.
func PublishBlogPostHandler(c *gin.Context) {
	var post models.BlogPost
	id := models.PostID(c.Param("language"), c.Param("slug"))
	if err := config.DB.First(&post, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A bejegyzés nem található"})
		return
	}

	post.Status = models.PostStatusPublished
	if post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := config.DB.Save(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a publikálás"})
		return
	}

	GlobalHub.Notify("posts", "update", post.ID)
	c.JSON(http.StatusOK, post)
}

func DeleteBlogPostHandler(c *gin.Context) {
	id := models.PostID(c.Param("language"), c.Param("slug"))
	result := config.DB.Where("id = ?", id).Delete(&models.BlogPost{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a bejegyzés törlése"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "A bejegyzés nem található"})
		return
	}

	GlobalHub.Notify("posts", "delete", id)
	c.JSON(http.StatusOK, gin.H{"message": "A bejegyzés törölve"})
}

// UploadBlogCoverHandler borítóképet tölt fel az objektumtárba, és elmenti
// az URL-t a bejegyzésre.
func UploadBlogCoverHandler(c *gin.Context) {
	if config.Storage == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "A fájlfeltöltés nincs bekapcsolva"})
		return
	}

	var post models.BlogPost
	id := models.PostID(c.Param("language"), c.Param("slug"))
	if err := config.DB.First(&post, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "A bejegyzés nem található"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hiányzik a feltöltendő fájl"})
		return
	}
	if file.Size > int64(config.GlobalConfig.Uploads.MaxSizeMB)*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A fájl túl nagy"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a fájl megnyitása"})
		return
	}
	defer src.Close()

	objectName := fmt.Sprintf("blog/%s/%s/cover%s", post.Language, post.Slug, path.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if err := config.Storage.Upload(c.Request.Context(), objectName, src, file.Size, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a feltöltés: " + err.Error()})
		return
	}

	// A blog/ prefix publikusan olvasható, így az URL nem jár le.
	url := config.Storage.PublicURL(objectName)
	post.CoverImageURL = url
	if err := config.DB.Model(&post).Updates(map[string]interface{}{"cover_image_url": url}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a bejegyzés frissítése"})
		return
	}

	GlobalHub.Notify("posts", "update", post.ID)
	c.JSON(http.StatusOK, gin.H{"coverImageUrl": url, "objectName": objectName})
}

// PublicBlogPostsHandler a publikált bejegyzések nyelvenkénti listája.
func PublicBlogPostsHandler(c *gin.Context) {
	language := c.Query("language")
	if language == "" {
		language = models.LanguageHU
	}

	var posts []models.BlogPost
	if err := config.DB.
		Where("language = ? AND status = ?", language, models.PostStatusPublished).
		Order("published_at desc").Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a bejegyzések betöltése"})
		return
	}
	if posts == nil {
		posts = make([]models.BlogPost, 0)
	}
	c.JSON(http.StatusOK, posts)
}

// PublicBlogPostHandler egy publikált bejegyzés; a piszkozatok a publikus
// oldalon nem léteznek.
func PublicBlogPostHandler(c *gin.Context) {
	var post models.BlogPost
	id := models.PostID(c.Param("language"), c.Param("slug"))
	err := config.DB.Where("id = ? AND status = ?", id, models.PostStatusPublished).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "A bejegyzés nem található"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Hiba a bejegyzés lekérésekor"})
		return
	}
	c.JSON(http.StatusOK, post)
}
