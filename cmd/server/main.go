package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/crossdeckhq/crossdeck/configs"
	"github.com/crossdeckhq/crossdeck/internal/api/handlers"
	"github.com/crossdeckhq/crossdeck/internal/autosave"
	job "github.com/crossdeckhq/crossdeck/internal/jobs"
	"github.com/crossdeckhq/crossdeck/internal/queue"
	"github.com/crossdeckhq/crossdeck/internal/repository"
	"github.com/crossdeckhq/crossdeck/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	postRepo := repository.NewPostRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	launchRepo := repository.NewLaunchPostRepository(db)
	blogRepo := repository.NewBlogDraftRepository(db)
	historyRepo := repository.NewPublishHistoryRepository(db)

	postService := service.NewPostService(postRepo)
	lifecycleService := service.NewLifecycleService(postRepo)
	crosspostService := service.NewCrosspostService(postRepo)
	campaignService := service.NewCampaignService(campaignRepo)
	projectService := service.NewProjectService(projectRepo, cfg.ProjectSoftLimit)
	launchService := service.NewLaunchPostService(launchRepo)
	blogService := service.NewBlogDraftService(blogRepo)
	publisher := service.NewHTTPPublisher(*cfg)

	autosaveCtrl := autosave.NewController(time.Duration(cfg.AutosaveDebounceMS) * time.Millisecond)

	api := app.Group("/api")

	post := handlers.NewPostHandler(postService, lifecycleService, historyRepo, client)
	api.Post("/posts/create", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/update", post.UpdatePost)
	api.Post("/posts/schedule", post.SchedulePost)
	api.Post("/posts/unschedule", post.UnschedulePost)
	api.Post("/posts/archive", post.ArchivePost)
	api.Post("/posts/restore", post.RestorePost)
	api.Post("/posts/remove", post.RemovePost)
	api.Get("/posts/history", post.PublishHistory)

	crosspost := handlers.NewCrosspostHandler(crosspostService, client)
	api.Post("/posts/crosspost", crosspost.CreateCrosspost)

	autosaveHandler := handlers.NewAutoSaveHandler(autosaveCtrl, postRepo)
	api.Post("/autosave/attach", autosaveHandler.Attach)
	api.Post("/autosave/:session_id/snapshot", autosaveHandler.PushSnapshot)
	api.Get("/autosave/:session_id", autosaveHandler.SessionStatus)
	api.Post("/autosave/:session_id/detach", autosaveHandler.Detach)

	campaign := handlers.NewCampaignHandler(campaignService)
	api.Post("/campaigns/create", campaign.CreateCampaign)
	api.Get("/campaigns", campaign.ListCampaigns)
	api.Post("/campaigns/remove", campaign.RemoveCampaign)

	project := handlers.NewProjectHandler(projectService)
	api.Post("/projects/create", project.CreateProject)
	api.Get("/projects", project.ListProjects)
	api.Post("/projects/remove", project.RemoveProject)

	launch := handlers.NewLaunchHandler(launchService)
	api.Post("/launches/create", launch.CreateLaunch)
	api.Get("/launches", launch.ListLaunches)
	api.Post("/launches/update", launch.UpdateLaunch)
	api.Post("/launches/remove", launch.RemoveLaunch)

	blog := handlers.NewBlogHandler(blogService)
	api.Post("/blog/create", blog.CreateDraft)
	api.Get("/blog", blog.ListDrafts)
	api.Post("/blog/update", blog.UpdateDraft)
	api.Post("/blog/remove", blog.RemoveDraft)

	// cron jobs
	sweepJob := job.NewScheduleSweepJob(postRepo, &asynqEnqueuer{client: client})

	// queue worker
	queueW := queue.NewQueue(postRepo, historyRepo, lifecycleService, publisher)

	c := cron.New()
	c.AddFunc("@every 00h05m00s", sweepJob.Sweep)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

type asynqEnqueuer struct {
	client *asynq.Client
}

func (e *asynqEnqueuer) Enqueue(payload queue.PublishPostPayload, delay time.Duration) error {
	return queue.EnqueuePost(e.client, payload, delay)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
