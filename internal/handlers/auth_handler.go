package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"szekhely-portal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/api/idtoken"
)

type googleLoginInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

// GoogleLoginHandler a Google bejelentkezés tokenjét ellenőrzi, majd az
// engedélyezési lista alapján ad admin munkamenet-sütit. Szerep nincs:
// aki a listán van, az admin.
func GoogleLoginHandler(c *gin.Context) {
	var input googleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Hiányzó bejelentkezési token"})
		return
	}

	payload, err := idtoken.Validate(c.Request.Context(), input.IDToken, config.GoogleClientID)
	if err != nil {
		slog.Warn("Érvénytelen Google token", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Érvénytelen bejelentkezési token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	if email == "" || !config.GlobalConfig.IsAllowedAdmin(email) {
		slog.Warn("Bejelentkezési kísérlet listán kívüli fiókkal", "email", email)
		c.JSON(http.StatusForbidden, gin.H{"error": "A fiók nem jogosult az admin felületre"})
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	claims := jwt.MapClaims{
		"email": strings.ToLower(email),
		"name":  name,
		"exp":   expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(config.JwtKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Nem sikerült a munkamenet létrehozása"})
		return
	}

	c.SetCookie("auth_token", signed, int(time.Until(expiresAt).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"email": strings.ToLower(email), "name": name})
}

// LogoutHandler törli a munkamenet-sütit.
func LogoutHandler(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Kijelentkezve"})
}

// GetCurrentStaffHandler a bejelentkezett munkatárs adatai.
func GetCurrentStaffHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"email": c.GetString("staff_email"),
		"name":  c.GetString("staff_name"),
	})
}
