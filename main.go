package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/cardfolio/cardfolio-api/config"
	"github.com/cardfolio/cardfolio-api/handlers"
	"github.com/cardfolio/cardfolio-api/middleware"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	// Initialize database connection
	config.Connect()
	authMiddleware := middleware.EnsureValidToken()

	DBHandler := handlers.NewDBHandler(config.Database)
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/register", DBHandler.Register)
	mux.HandleFunc("POST /api/login", DBHandler.Login)
	mux.HandleFunc("GET /api/me", middleware.SyncUserMiddleware(DBHandler.Me))
	mux.HandleFunc("PUT /api/me", middleware.SyncUserMiddleware(DBHandler.UpdateMe))
	mux.HandleFunc("GET /api/users/{username}", DBHandler.GetUserByUsername)

	// Sets
	mux.HandleFunc("POST /api/sets", middleware.SyncUserMiddleware(DBHandler.CreateStudySet))
	mux.HandleFunc("GET /api/sets/{setID}", middleware.ResolveUserMiddleware(DBHandler.GetSetByID))
	mux.HandleFunc("GET /api/sets/public/{publicID}", middleware.ResolveUserMiddleware(DBHandler.GetSetByPublicID))
	mux.HandleFunc("PUT /api/sets/{setID}", middleware.SyncUserMiddleware(DBHandler.UpdateSetByID))
	mux.HandleFunc("DELETE /api/sets/{setID}", middleware.SyncUserMiddleware(DBHandler.DeleteSetByID))
	mux.HandleFunc("GET /api/users/{username}/sets", middleware.ResolveUserMiddleware(DBHandler.GetSetsForUser))

	// Questions
	mux.HandleFunc("POST /api/sets/{setID}/questions", middleware.SyncUserMiddleware(DBHandler.CreateQuestion))
	mux.HandleFunc("GET /api/sets/{setID}/questions", middleware.ResolveUserMiddleware(DBHandler.GetQuestionsForSet))
	mux.HandleFunc("PUT /api/sets/{setID}/questions/{questionID}", middleware.SyncUserMiddleware(DBHandler.UpdateQuestionByID))
	mux.HandleFunc("DELETE /api/sets/{setID}/questions/{questionID}", middleware.SyncUserMiddleware(DBHandler.DeleteQuestionByID))

	// Folders
	mux.HandleFunc("POST /api/folders", middleware.SyncUserMiddleware(DBHandler.CreateFolder))
	mux.HandleFunc("GET /api/folders", middleware.SyncUserMiddleware(DBHandler.GetFolders))
	mux.HandleFunc("PUT /api/folders/{folderID}", middleware.SyncUserMiddleware(DBHandler.UpdateFolderByID))
	mux.HandleFunc("DELETE /api/folders/{folderID}", middleware.SyncUserMiddleware(DBHandler.DeleteFolderByID))
	mux.HandleFunc("POST /api/folders/{folderID}/sets/{setID}", middleware.SyncUserMiddleware(DBHandler.AddSetToFolder))
	mux.HandleFunc("DELETE /api/folders/{folderID}/sets/{setID}", middleware.SyncUserMiddleware(DBHandler.RemoveSetFromFolder))
	mux.HandleFunc("GET /api/folders/{folderID}/sets", middleware.SyncUserMiddleware(DBHandler.GetSetsInFolder))

	// Categories
	mux.HandleFunc("POST /api/categories", middleware.SyncUserMiddleware(DBHandler.CreateCategory))
	mux.HandleFunc("GET /api/categories", DBHandler.GetCategories)
	mux.HandleFunc("DELETE /api/categories/{categoryID}", middleware.SyncUserMiddleware(DBHandler.DeleteCategoryByID))
	mux.HandleFunc("POST /api/sets/{setID}/categories/{categoryID}", middleware.SyncUserMiddleware(DBHandler.AddCategoryToSet))
	mux.HandleFunc("DELETE /api/sets/{setID}/categories/{categoryID}", middleware.SyncUserMiddleware(DBHandler.RemoveCategoryFromSet))
	mux.HandleFunc("GET /api/sets/{setID}/categories", DBHandler.GetCategoriesForSet)

	// Levels
	mux.HandleFunc("POST /api/levels", middleware.SyncUserMiddleware(DBHandler.CreateLevel))
	mux.HandleFunc("GET /api/levels", DBHandler.GetLevels)
	mux.HandleFunc("DELETE /api/levels/{levelID}", middleware.SyncUserMiddleware(DBHandler.DeleteLevelByID))

	// Resources
	mux.HandleFunc("POST /api/resources", middleware.SyncUserMiddleware(DBHandler.CreateResource))
	mux.HandleFunc("GET /api/resources", DBHandler.GetResources)
	mux.HandleFunc("PUT /api/resources/{resourceID}", middleware.SyncUserMiddleware(DBHandler.UpdateResourceByID))
	mux.HandleFunc("DELETE /api/resources/{resourceID}", middleware.SyncUserMiddleware(DBHandler.DeleteResourceByID))

	// Favorites
	mux.HandleFunc("POST /api/favorites", middleware.SyncUserMiddleware(DBHandler.CreateFavorite))
	mux.HandleFunc("GET /api/favorites", middleware.SyncUserMiddleware(DBHandler.GetFavorites))
	mux.HandleFunc("DELETE /api/favorites/{favoriteID}", middleware.SyncUserMiddleware(DBHandler.DeleteFavoriteByID))

	// People
	mux.HandleFunc("POST /api/people/{username}", middleware.SyncUserMiddleware(DBHandler.FollowUser))
	mux.HandleFunc("DELETE /api/people/{username}", middleware.SyncUserMiddleware(DBHandler.UnfollowUser))
	mux.HandleFunc("GET /api/people/following", middleware.SyncUserMiddleware(DBHandler.GetFollowing))
	mux.HandleFunc("GET /api/people/followers", middleware.SyncUserMiddleware(DBHandler.GetFollowers))
	mux.HandleFunc("GET /api/people/friends", middleware.SyncUserMiddleware(DBHandler.GetFriends))

	// Notifications
	mux.HandleFunc("POST /api/notifications", middleware.SyncUserMiddleware(DBHandler.CreateNotification))
	mux.HandleFunc("GET /api/notifications", middleware.SyncUserMiddleware(DBHandler.GetNotifications))
	mux.HandleFunc("PUT /api/notifications/{notificationID}/read", middleware.SyncUserMiddleware(DBHandler.MarkNotificationRead))
	mux.HandleFunc("DELETE /api/notifications/{notificationID}", middleware.SyncUserMiddleware(DBHandler.DeleteNotificationByID))

	// Feedback & complaints
	mux.HandleFunc("POST /api/feedback", middleware.SyncUserMiddleware(DBHandler.CreateFeedback))
	mux.HandleFunc("GET /api/feedback", DBHandler.GetFeedback)
	mux.HandleFunc("POST /api/complaints", middleware.SyncUserMiddleware(DBHandler.CreateComplaint))
	mux.HandleFunc("GET /api/complaints", middleware.SyncUserMiddleware(DBHandler.GetComplaints))

	// Shared sets
	mux.HandleFunc("POST /api/shared-sets", middleware.SyncUserMiddleware(DBHandler.GrantShare))
	mux.HandleFunc("DELETE /api/shared-sets/{shareID}", middleware.SyncUserMiddleware(DBHandler.RevokeShare))
	mux.HandleFunc("GET /api/shared-sets/{shareID}/author", middleware.SyncUserMiddleware(DBHandler.GetShareAuthor))
	mux.HandleFunc("GET /api/shared-sets-all", middleware.SyncUserMiddleware(DBHandler.GetSetsSharedWithMe))
	mux.HandleFunc("GET /api/shared-sets-by-user", middleware.SyncUserMiddleware(DBHandler.GetSetsSharedByMe))
	mux.HandleFunc("GET /api/shared-sets-author/{setID}", middleware.SyncUserMiddleware(DBHandler.GetAccessForSet))

	// Subscription
	mux.HandleFunc("POST /api/subscription", middleware.SyncUserMiddleware(DBHandler.ExtendSubscription))
	mux.HandleFunc("GET /api/subscription", middleware.SyncUserMiddleware(DBHandler.GetSubscriptionPeriods))
	mux.HandleFunc("POST /api/subscription-types", middleware.SyncUserMiddleware(DBHandler.CreateSubscriptionType))
	mux.HandleFunc("GET /api/subscription-types", DBHandler.GetSubscriptionTypes)

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "https://app.cardfolio.study"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(authMiddleware(mux))

	// Server configuration

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // fallback port for local development
	}
	serverAddr := "0.0.0.0:" + port

	http.ListenAndServe(serverAddr, corsHandler)
}
