// szekhely-portal/internal/routes/api_routes.go
package routes

import (
	"szekhely-portal/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes az engedélylistás admin felület végpontjai; a csoporton
// már fut az AuthMiddleware.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	apiGroup := api.Group("/api")
	{
		apiGroup.GET("/me", handlers.GetCurrentStaffHandler)
		apiGroup.GET("/events/ws", handlers.EventsWSEndpoint)

		// --- SZERZŐDÉSEK ---
		contracts := apiGroup.Group("/contracts")
		{
			contracts.GET("", handlers.ListContractsHandler)
			contracts.GET("/export", handlers.ExportContractsHandler)
			contracts.GET("/:id", handlers.GetContractHandler)
			contracts.PUT("/:id", handlers.UpdateContractHandler)
			contracts.PATCH("/:id/status", handlers.UpdateContractStatusHandler)
			contracts.DELETE("/:id", handlers.DeleteContractHandler)

			contracts.POST("/:id/documents/generate", handlers.GenerateDocumentsHandler)
			contracts.GET("/:id/documents", handlers.ListGeneratedDocumentsHandler)
			contracts.GET("/:id/documents/bundle", handlers.DownloadDocumentBundleHandler)
			contracts.GET("/:id/documents/:kind", handlers.DownloadDocumentHandler)
			contracts.GET("/:id/documents/:kind/pdf", handlers.DownloadDocumentPDFHandler)
			contracts.GET("/:id/uploads/:slot", handlers.ContractDocumentURLHandler)
		}

		// --- ÁRKÁRTYÁK ---
		pricing := apiGroup.Group("/pricing-cards")
		{
			pricing.GET("", handlers.ListPricingCardsHandler)
			pricing.POST("", handlers.CreatePricingCardHandler)
			pricing.POST("/reorder", handlers.ReorderPricingCardsHandler)
			pricing.POST("/preview-price", handlers.PreviewPriceHandler)
			pricing.GET("/:id", handlers.GetPricingCardHandler)
			pricing.PUT("/:id", handlers.UpdatePricingCardHandler)
			pricing.DELETE("/:id", handlers.DeletePricingCardHandler)
		}

		// --- BLOG ---
		blog := apiGroup.Group("/blog/posts")
		{
			blog.GET("", handlers.ListBlogPostsHandler)
			blog.POST("", handlers.CreateBlogPostHandler)
			blog.GET("/:language/:slug", handlers.GetBlogPostHandler)
			blog.PUT("/:language/:slug", handlers.UpdateBlogPostHandler)
			blog.POST("/:language/:slug/publish", handlers.PublishBlogPostHandler)
			blog.POST("/:language/:slug/cover", handlers.UploadBlogCoverHandler)
			blog.DELETE("/:language/:slug", handlers.DeleteBlogPostHandler)
		}

		// --- DOKUMENTUMSABLONOK ---
		templates := apiGroup.Group("/document-templates")
		{
			templates.GET("", handlers.ListDocumentTemplatesHandler)
			templates.POST("", handlers.CreateDocumentTemplateHandler)
			templates.GET("/:id", handlers.GetDocumentTemplateHandler)
			templates.PUT("/:id", handlers.UpdateDocumentTemplateHandler)
			templates.POST("/:id/activate", handlers.ActivateDocumentTemplateHandler)
			templates.DELETE("/:id", handlers.DeleteDocumentTemplateHandler)
		}

		// --- MARKETING ---
		marketing := apiGroup.Group("/marketing-settings")
		{
			marketing.GET("", handlers.GetMarketingSettingsHandler)
			marketing.PUT("", handlers.UpdateMarketingSettingsHandler)
		}
	}
}
