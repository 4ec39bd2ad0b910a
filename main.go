package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/shafvantalat/ecom/internal/config"
	"github.com/shafvantalat/ecom/internal/database"
	"github.com/shafvantalat/ecom/internal/handlers"
	"github.com/shafvantalat/ecom/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}

	r := gin.Default()

	api := r.Group("/api")
	{
		api.GET("/health", handlers.Health(db))

		api.POST("/auth/login", handlers.AdminLogin(
			config.AppEnv.AdminEmail,
			config.AppEnv.AdminPassword,
			config.AppEnv.JWTSecret,
			config.AppEnv.TokenTTL,
		))

		api.GET("/products", handlers.GetProducts(db))
		api.GET("/products/categories", handlers.GetCategories(db))
		api.GET("/products/:id", handlers.GetProduct(db))

		admin := api.Group("")
		admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
		{
			admin.POST("/products", handlers.CreateProduct(db))
			admin.PUT("/products/:id", handlers.UpdateProduct(db))
			admin.DELETE("/products/:id", handlers.DeleteProduct(db))
		}
	}

	r.Run(":" + config.AppEnv.Port)
}
