package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/dmarkovic/jobster/internal/config"
	"github.com/dmarkovic/jobster/internal/database"
	"github.com/dmarkovic/jobster/internal/mail"
	postgresrepo "github.com/dmarkovic/jobster/internal/repository/postgres"
	"github.com/dmarkovic/jobster/internal/service"
	transporthttp "github.com/dmarkovic/jobster/internal/transport/http"
	"github.com/dmarkovic/jobster/internal/transport/http/handlers"
	"github.com/dmarkovic/jobster/internal/transport/ws"
)

func main() {
	root := &cobra.Command{
		Use:   "jobster",
		Short: "Job board backend",
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending database migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := config.Load()
				if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
					return err
				}
				log.Println("Migrations applied")
				return nil
			},
		},
	)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func serve() error {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Println("Connected to database")

	if err := database.RunMigrations(cfg.DatabaseURL()); err != nil {
		return err
	}

	// Repositories
	principalRepo := postgresrepo.NewPrincipalRepo(pool)
	postingRepo := postgresrepo.NewPostingRepo(pool)
	applicationRepo := postgresrepo.NewApplicationRepo(pool)
	roomRepo := postgresrepo.NewRoomRepo(pool)
	notificationRepo := postgresrepo.NewNotificationRepo(pool)
	contactRepo := postgresrepo.NewContactRepo(pool)

	// Services
	authService := service.NewAuthService(principalRepo, cfg.JWTSecret)
	catalogService := service.NewCatalogService(postingRepo, applicationRepo)
	applicationService := service.NewApplicationService(applicationRepo, postingRepo, notificationRepo)
	roomService := service.NewRoomService(roomRepo, principalRepo)
	notificationService := service.NewNotificationService(notificationRepo)
	profileService := service.NewProfileService(postingRepo, applicationRepo, roomRepo)
	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ContactAddr)
	contactService := service.NewContactService(contactRepo, mailer)

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run()
	roomService.SetNotifier(ws.NewHubNotifier(hub))

	// Scheduled maintenance
	maintenance := service.NewMaintenanceService(notificationRepo, cfg.PruneRetentionDays)
	if err := maintenance.Start(cfg.PruneSchedule); err != nil {
		return err
	}
	defer maintenance.Stop()

	// Router
	router := transporthttp.NewRouter(transporthttp.RouterDeps{
		Auth:          handlers.NewAuthHandler(authService),
		Catalog:       handlers.NewCatalogHandler(catalogService),
		Applications:  handlers.NewApplicationHandler(applicationService),
		Rooms:         handlers.NewRoomHandler(roomService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Profile:       handlers.NewProfileHandler(profileService),
		Contact:       handlers.NewContactHandler(contactService),
		Hub:           hub,
		JWTSecret:     cfg.JWTSecret,
		Principal:     authService.GetPrincipal,
	})

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	return http.ListenAndServe(addr, router)
}
