package middleware

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/cardfolio/cardfolio-api/config"
	"github.com/cardfolio/cardfolio-api/models"
	"github.com/cardfolio/cardfolio-api/utils"
)

// SyncUserMiddleware resolves the token subject to a DB user and
// attaches it to the request context. Auth0 subjects ("auth0|...") are
// provisioned on first sight; local subjects are usernames created by
// the register endpoint and must already exist.
func SyncUserMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return syncUser(next, true)
}

// ResolveUserMiddleware is SyncUserMiddleware for routes that are also
// open to anonymous readers: a request without credentials passes
// through with no user attached instead of being rejected.
func ResolveUserMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return syncUser(next, false)
}

func syncUser(next http.HandlerFunc, required bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
		if !ok || claims.RegisteredClaims.Subject == "" {
			if required {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
			return
		}
		subject := claims.RegisteredClaims.Subject

		var user models.User
		if strings.Contains(subject, "|") {
			// Auth0 subject
			nickname, email := "", ""
			if customClaims, ok := claims.CustomClaims.(*CustomClaims); ok && customClaims != nil {
				nickname = customClaims.Nickname
				email = customClaims.Email
			}

			result := config.Database.Where("auth0_id = ?", subject).First(&user)
			if result.Error != nil {
				user = models.User{
					Auth0ID:  &subject,
					Username: availableUsername(nickname, subject),
				}
				// The email claim is optional and may already belong to a
				// locally registered account; leave it NULL in that case.
				if email != "" && !emailTaken(email, 0) {
					user.Email = &email
				}
				createResult := config.Database.Create(&user)
				if createResult.Error != nil {
					http.Error(w, "Failed to create user", http.StatusInternalServerError)
					log.Println("Database creation error:", createResult.Error)
					return
				}
				log.Printf("Created new user: %s\n", user.Username)
			} else if nickname != "" && user.Username != nickname && !usernameTaken(nickname, user.ID) {
				user.Username = nickname
				saveResult := config.Database.Save(&user)
				if saveResult.Error != nil {
					http.Error(w, "Failed to update user", http.StatusInternalServerError)
					log.Println("Database update error:", saveResult.Error)
					return
				}
				log.Printf("Updated user nickname: %s\n", user.Username)
			}
		} else {
			// Local subject: username registered through /api/register
			if err := config.Database.Where("username = ?", subject).First(&user).Error; err != nil {
				log.Printf("SyncUserMiddleware: no user for subject %s", subject)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}

		ctx := utils.WithUser(r.Context(), &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// availableUsername picks a username for a freshly provisioned user.
// Auth0 tenants may omit the nickname claim, and nicknames are not
// unique across tenants, so fall back to the subject and suffix until
// the name is free.
func availableUsername(nickname, subject string) string {
	base := nickname
	if base == "" {
		base = subject
	}
	candidate := base
	for i := 2; ; i++ {
		if !usernameTaken(candidate, 0) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func usernameTaken(username string, excludeID uint) bool {
	var count int64
	config.Database.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count)
	return count > 0
}

func emailTaken(email string, excludeID uint) bool {
	var count int64
	config.Database.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count)
	return count > 0
}
