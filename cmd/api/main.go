package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/Andrew-Karvelis/sparkd/internal/ai"
	"github.com/Andrew-Karvelis/sparkd/internal/config"
	"github.com/Andrew-Karvelis/sparkd/internal/database"
	"github.com/Andrew-Karvelis/sparkd/internal/domain"
	"github.com/Andrew-Karvelis/sparkd/internal/middleware"
	"github.com/Andrew-Karvelis/sparkd/internal/modules/auth"
	"github.com/Andrew-Karvelis/sparkd/internal/modules/credits"
	"github.com/Andrew-Karvelis/sparkd/internal/modules/gallery"
	"github.com/Andrew-Karvelis/sparkd/internal/modules/generate"
	"github.com/Andrew-Karvelis/sparkd/internal/modules/payment"
	jwtsvc "github.com/Andrew-Karvelis/sparkd/internal/pkg/jwt"
	"github.com/Andrew-Karvelis/sparkd/internal/repository"
	"github.com/Andrew-Karvelis/sparkd/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.GalleryImage{},
		&domain.CreditTransaction{},
		&domain.PaymentEvent{},
	); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	paymentEventRepo := repository.NewPaymentEventRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j, cfg.FreeCredits)
	authHandler := auth.NewHandler(authService, galleryRepo, cfg.JWTTTL)

	creditsService := credits.NewService(db)
	creditsHandler := credits.NewHandler(creditsService)

	galleryService := gallery.NewService(galleryRepo)
	galleryHandler := gallery.NewHandler(galleryService)

	storageService := storage.NewService(cfg.UploadsDir, cfg.StaticBase)

	aiClient, err := ai.NewClient(ai.Config{
		APIKey:        cfg.OpenAIAPIKey,
		BaseURL:       cfg.OpenAIBaseURL,
		AnalysisModel: cfg.AnalysisModel,
		EditModel:     cfg.EditModel,
	})
	if err != nil {
		log.Fatal(err)
	}

	generateService := generate.NewService(aiClient, aiClient, nil, storageService, creditsService, generate.Options{
		MaxThemes:            cfg.MaxThemes,
		MaxFileSize:          cfg.MaxFileSize,
		RequestDelay:         cfg.RequestDelay,
		Variations:           cfg.Variations,
		FaceValidationPolicy: generate.FailOpen,
	})
	generateHandler := generate.NewHandler(generateService)

	paymentService := payment.NewService(
		payment.NewStripeCheckoutClient(cfg.StripeSecretKey),
		payment.StripeEventVerifier{},
		creditsService,
		paymentEventRepo,
		payment.LoadCatalog(),
		cfg.StripeWebhookSecret,
		cfg.PublicBaseURL,
		log.Printf,
	)
	paymentHandler := payment.NewHandler(paymentService, log.Printf)

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	r.Static(cfg.StaticBase, cfg.UploadsDir)

	public := r.Group("/")
	{
		authHandler.RegisterPublicRoutes(public)
		paymentHandler.RegisterPublicRoutes(public)
	}

	protected := r.Group("/")
	protected.Use(middleware.JWTAuth(j))
	{
		authHandler.RegisterProtectedRoutes(protected)
		creditsHandler.RegisterProtectedRoutes(protected)
		galleryHandler.RegisterProtectedRoutes(protected)
		generateHandler.RegisterProtectedRoutes(protected)
		paymentHandler.RegisterProtectedRoutes(protected)
	}

	addr := ":" + envOrDefault("PORT", "8080")
	log.Printf("level=info msg=starting addr=%s env=%s", addr, cfg.AppEnv)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
