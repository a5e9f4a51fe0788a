// TV Corporativa - Corporate information display
// Admin console plus a public kiosk screen for lobby TVs
package main

import (
	"context"
	"log"
	"os"

	"tvcorporativa/internal/config"
	"tvcorporativa/internal/domain"
	"tvcorporativa/internal/repository"
	"tvcorporativa/internal/repository/sqlite"
	"tvcorporativa/internal/server"
	"tvcorporativa/internal/templates"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.json")
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	log.Printf("📺 Starting %s...", cfg.Branding.Name)
	log.Printf("📋 Debug mode: %v", cfg.Debug)

	// Initialize database
	db, err := sqlite.New(cfg.GetDatabasePath())
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}
	log.Println("✅ Database initialized")

	// Initialize repositories
	repos := repository.New(db)

	// Create admin user if none exists
	if err := createDefaultAdmin(repos); err != nil {
		log.Printf("⚠️ Could not create default admin: %v", err)
	}

	// Seed demo content for local testing
	if os.Getenv("SEED_DATA") == "true" {
		createSampleData(repos)
	}

	// Initialize template manager
	tmpl, err := templates.NewManager("./templates", cfg.Debug)
	if err != nil {
		log.Fatalf("❌ Failed to initialize templates: %v", err)
	}
	log.Println("✅ Templates loaded")

	// Create and run the server
	srv := server.New(cfg, repos, tmpl)

	log.Printf("🌐 Server listening on http://%s", cfg.Address())

	if err := srv.Run(); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}
}

// createDefaultAdmin creates a default admin user if no users exist
func createDefaultAdmin(repos *repository.Repositories) error {
	ctx := context.Background()

	count, err := repos.Users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil // Users already exist
	}

	// Password: admin123 (CHANGE IN PRODUCTION!)
	hash, err := repository.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := domain.User{
		Username:     "admin",
		DisplayName:  "Administrador",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Active:       true,
	}
	if err := repos.Users.Upsert(ctx, admin); err != nil {
		return err
	}

	log.Println("✅ Default admin user created:")
	log.Println("   Username: admin")
	log.Println("   Password: admin123")
	log.Println("   ⚠️ CHANGE THIS PASSWORD IN PRODUCTION!")

	return nil
}

// createSampleData seeds a handful of rows so the display has content
func createSampleData(repos *repository.Repositories) {
	log.Println("🌱 Creating sample data...")
	ctx := context.Background()

	news := []domain.NewsItem{
		{RowMeta: domain.RowMeta{Active: true, Order: 0}, Title: "Bem-vindos ao novo mural digital", Description: "Acompanhe aqui as novidades da empresa."},
		{RowMeta: domain.RowMeta{Active: true, Order: 1}, Title: "Campanha de vacinação", Description: "A campanha interna começa na próxima segunda-feira."},
	}
	for _, item := range news {
		repos.News.Upsert(ctx, item)
	}

	locations := []domain.WeatherLocation{
		{RowMeta: domain.RowMeta{Active: true, Order: 0}, Label: "São Paulo", Lat: -23.5505, Lon: -46.6333},
		{RowMeta: domain.RowMeta{Active: true, Order: 1}, Label: "Rio de Janeiro", Lat: -22.9068, Lon: -43.1729},
	}
	for _, loc := range locations {
		repos.Weather.Upsert(ctx, loc)
	}

	clocks := []domain.Clock{
		{RowMeta: domain.RowMeta{Active: true, Order: 0}, Label: "Brasília", Timezone: "America/Sao_Paulo"},
		{RowMeta: domain.RowMeta{Active: true, Order: 1}, Label: "Lisboa", Timezone: "Europe/Lisbon"},
	}
	for _, clk := range clocks {
		repos.Clocks.Upsert(ctx, clk)
	}

	log.Println("✅ Sample data created")
}
