// szekhely-portal/internal/routes/public_routes.go
package routes

import (
	"szekhely-portal/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes a marketingoldal és a szerződéskötő varázsló
// hitelesítés nélküli végpontjai.
func RegisterPublicRoutes(r *gin.Engine) {
	public := r.Group("/public")
	{
		public.GET("/pricing-cards", handlers.PublicPricingCardsHandler)
		public.GET("/marketing-settings", handlers.PublicMarketingSettingsHandler)

		blog := public.Group("/blog")
		{
			blog.GET("/posts", handlers.PublicBlogPostsHandler)
			blog.GET("/posts/:language/:slug", handlers.PublicBlogPostHandler)
		}

		// --- SZERZŐDÉSKÖTŐ VARÁZSLÓ ---
		wizard := public.Group("/wizard")
		{
			wizard.POST("", handlers.StartWizardHandler)
			wizard.GET("/:id", handlers.GetWizardDraftHandler)
			wizard.PUT("/:id/data", handlers.UpdateWizardDataHandler)
			wizard.GET("/:id/validate", handlers.ValidateWizardStepHandler)

			wizard.POST("/:id/next", handlers.WizardNextHandler)
			wizard.POST("/:id/prev", handlers.WizardPrevHandler)
			wizard.POST("/:id/goto", handlers.WizardGoToHandler)

			wizard.POST("/:id/owners/:index/percent", handlers.SetOwnerPercentHandler)
			wizard.POST("/:id/representative/nationality", handlers.SetRepresentativeNationalityHandler)
			wizard.POST("/:id/representative/foreign", handlers.SetRepresentativeForeignHandler)
			wizard.POST("/:id/representative/copy-owner", handlers.CopyOwnerToRepresentativeHandler)
			wizard.POST("/:id/contact/same-as-owner", handlers.SetContactSameAsOwnerHandler)

			wizard.POST("/:id/documents", handlers.UploadWizardDocumentHandler)
			wizard.DELETE("/:id/documents/:slot", handlers.DeleteWizardDocumentHandler)
			wizard.GET("/:id/preview/:kind", handlers.PreviewWizardDocumentHandler)

			wizard.POST("/:id/submit", handlers.SubmitWizardHandler)
		}
	}

	// Google-bejelentkezés az admin felületre.
	r.POST("/auth/google", handlers.GoogleLoginHandler)
	r.POST("/auth/logout", handlers.LogoutHandler)
}
