package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/souvenirshop/go-api/internal/router"
	"github.com/souvenirshop/go-api/pkg/ai"
	"github.com/souvenirshop/go-api/pkg/global"
	"github.com/souvenirshop/go-api/pkg/mongo"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	db, err := mongo.Connect(ctx, global.GetMongoURI(), global.GetDatabaseName())
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Println("Connected to MongoDB successfully")

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	ai.InitializeAIService()

	store := mongo.NewStore(db)
	handler := router.NewHandler(store, store)

	engine := router.NewEngine()
	handler.RegisterRoutes(engine)

	port := global.GetEnvOrDefault("PORT", "8000")
	log.Printf("Server is running on port %s", port)

	if err := engine.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
