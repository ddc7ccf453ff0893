package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"storefront-service/internal/controllers/http"
	"storefront-service/internal/infra"
	"storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository/memory"
	"storefront-service/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		log.Fatal("BACKEND_URL is required")
	}

	company := 1
	if v := os.Getenv("COMPANY_ID"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid COMPANY_ID %q: %v", v, err)
		}
		company = parsed
	}

	backend := infra.NewBackendClient(backendURL, company, 5*time.Second)
	sessions := memory.NewSessionRepository()

	var publisher rabbitmq.PublisherInterface
	if amqpURL := os.Getenv("RABBITMQ_URL"); amqpURL != "" {
		pub, err := rabbitmq.NewPublisher(amqpURL, "storefront.exchange")
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	s := services.NewStorefrontService(sessions, backend, publisher)

	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         redisHost + ":6379",
			DB:           0,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		s.SetRedisClient(redisClient)

		go func() {
			time.Sleep(5 * time.Second)
			if _, err := s.ListProducts(context.Background()); err != nil {
				log.Printf("Failed to warm up catalog cache: %v", err)
			} else {
				log.Println("Catalog cache warmed up successfully")
			}
		}()
	}

	handler := http.NewHandler(s)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting storefront service on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
