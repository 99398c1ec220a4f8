package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"szekhely-portal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware az admin API kapuja: sütiből (vagy Bearer fejlécből) olvassa
// a munkamenet-tokent, és minden kérésnél újra ellenőrzi az engedélyezési
// listát, hogy a listáról levett munkatárs azonnal kizáródjon.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				handleAuthError(c, "Hiányzó hitelesítési token")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				handleAuthError(c, "Érvénytelen Authorization fejléc")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return config.JwtKey, nil
		})
		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "Érvénytelen vagy lejárt token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handleAuthError(c, "Érvénytelen token tartalom")
			return
		}

		email, _ := claims["email"].(string)
		if email == "" || !config.GlobalConfig.IsAllowedAdmin(email) {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "A fiók nem szerepel az engedélyezési listán")
			return
		}

		name, _ := claims["name"].(string)
		c.Set("staff_email", strings.ToLower(email))
		c.Set("staff_name", name)
		c.Next()
	}
}

func handleAuthError(c *gin.Context, message string) {
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		c.Redirect(http.StatusFound, "/")
	} else {
		c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	}
	c.Abort()
}
