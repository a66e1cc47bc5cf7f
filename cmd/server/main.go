package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"vozdobairro.com/voz-do-bairro/auth"
	"vozdobairro.com/voz-do-bairro/config"
	"vozdobairro.com/voz-do-bairro/database"
	"vozdobairro.com/voz-do-bairro/feed"
	"vozdobairro.com/voz-do-bairro/interactions"
	"vozdobairro.com/voz-do-bairro/ranking"
	"vozdobairro.com/voz-do-bairro/routes"
	"vozdobairro.com/voz-do-bairro/store"
)

func main() {
	cfg := config.Load()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	var (
		posts      store.PostRepository
		engagement store.EngagementStore
		profiles   store.ProfileDirectory
	)
	switch cfg.Storage {
	case "memory":
		log.Println("STORAGE=memory: running without a database")
		posts = store.NewMemoryPosts()
		engagement = store.NewMemoryEngagement()
		profiles = store.NewMemoryProfiles()
	default:
		db, err := database.ConnectDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Database connection failed: ", err)
		}
		defer db.Close()
		if err := database.Migrate(db); err != nil {
			log.Fatal("Migration failed: ", err)
		}
		posts = store.NewPostgresPosts(db)
		engagement = store.NewPostgresEngagement(db)
		profiles = store.NewPostgresProfiles(db)
	}

	aggregator := feed.NewAggregator(posts, engagement, profiles)
	toggle := interactions.NewToggle(posts, engagement, profiles)
	engine := ranking.NewEngine(aggregator, profiles, cfg.Ranking)
	sessions := auth.NewSessions(cfg.JWTSecret)

	deps := routes.Deps{
		Posts:      posts,
		Engagement: engagement,
		Profiles:   profiles,
		Aggregator: aggregator,
		Toggle:     toggle,
		Ranking:    engine,
	}

	router := mux.NewRouter()
	router.Use(sessions.Middleware)
	routes.CreatePostRoutes(deps, router)
	routes.CreateRankingRoutes(deps, router)

	log.Printf("Server listening on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
