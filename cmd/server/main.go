package main

import (
	"context"
	"log"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kyiku/captcha-engine/internal/assets"
	"github.com/kyiku/captcha-engine/internal/bridge"
	"github.com/kyiku/captcha-engine/internal/captcha"
	"github.com/kyiku/captcha-engine/internal/config"
	"github.com/kyiku/captcha-engine/internal/handler"
	ratelimit "github.com/kyiku/captcha-engine/internal/middleware"
	"github.com/kyiku/captcha-engine/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	e := echo.New()

	// Middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			e.Logger.Infof("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.AllowedOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
	}))

	// S3 client
	var s3Client *storage.S3Client
	if cfg.UseS3() {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Printf("Warning: Failed to load AWS config: %v (S3 assets and backgrounds disabled)", err)
		} else {
			adapter := storage.NewAWSAdapter(s3.NewFromConfig(awsCfg), cfg.S3Bucket)
			s3Client = storage.NewS3Client(adapter, cfg.S3Bucket, cfg.CloudfrontDomain)
		}
	}

	// Assets: local directory, then S3, then the compiled-in defaults
	var providers []assets.Provider
	if cfg.AssetDir != "" {
		providers = append(providers, assets.Dir(cfg.AssetDir))
	}
	if s3Client != nil {
		providers = append(providers, assets.S3(s3Client, cfg.AssetPrefix))
	}
	providers = append(providers, assets.Embedded())

	gen := captcha.NewGenerator(assets.Cached(assets.Chain(providers...)), nil)
	if err := gen.Warmup(); err != nil {
		log.Fatalf("Failed to load captcha assets: %v", err)
	}

	// Background pool
	pool := bridge.NewPool(nil)
	if cfg.BackgroundDir != "" {
		n, err := pool.LoadFromDir(cfg.BackgroundDir)
		if err != nil {
			log.Printf("Warning: Failed to load backgrounds from %s: %v", cfg.BackgroundDir, err)
		}
		log.Printf("Loaded %d backgrounds from %s", n, cfg.BackgroundDir)
	}
	if s3Client != nil {
		n, err := pool.LoadFromStorage(s3Client, cfg.BackgroundPrefix)
		if err != nil {
			log.Printf("Warning: Failed to load backgrounds from s3://%s/%s: %v", s3Client.Bucket(), cfg.BackgroundPrefix, err)
		}
		log.Printf("Loaded %d backgrounds from s3://%s/%s", n, s3Client.Bucket(), cfg.BackgroundPrefix)
	}
	if pool.Len() == 0 {
		log.Println("Warning: background pool is empty; GET /api/captcha/slider will return 503")
	}

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(gen.Warmup, pool)
	captchaHandler := handler.NewCaptchaHandler(bridge.New(gen), pool)
	if cfg.PublishImages && s3Client != nil {
		captchaHandler.SetPublisher(s3Client)
	}

	// Health check (root level for ALB)
	e.GET("/health", healthHandler.Check)

	api := e.Group("/api")
	api.GET("/health", healthHandler.Check)

	limiter := ratelimit.NewRateLimiter(cfg.RateLimit, cfg.RateWindow())
	defer limiter.Stop()

	captchaGroup := api.Group("/captcha", limiter.Middleware())
	captchaGroup.POST("/code", captchaHandler.Code)
	captchaGroup.POST("/slider", captchaHandler.Slider)
	captchaGroup.GET("/slider", captchaHandler.RandomSlider)

	log.Println("Registered endpoints:")
	log.Println("  GET  /health")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/captcha/code")
	log.Println("  POST /api/captcha/slider")
	log.Println("  GET  /api/captcha/slider")

	log.Printf("Starting server on :%s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
