package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"bylines/app/controllers"
	"bylines/app/repositories"
	"bylines/app/routes"
	"bylines/app/services"
	"bylines/config"
	"bylines/llm"
	"bylines/logger"

	"github.com/dgraph-io/badger/v4"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("bylines version %s\n", cliVersion)
	case "serve":
		serve()
	case "generate":
		generate()
	case "schedule":
		schedule()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: bylines <command>
Commands:
  help       Display this help message.
  version    Show version information.
  serve      Run the JSON API server.
  generate   Generate and publish a single blog post, then exit.
  schedule   Run the generation pipeline on the configured cron schedule.
`
	fmt.Println(helpText)
}

// app bundles the wired services a command needs.
type app struct {
	db        *badger.DB
	posts     repositories.PostRepository
	directory *services.AuthorDirectory
	personas  *services.PersonaService
	pipeline  *services.Pipeline
}

func buildApp() (*app, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Init(cfg.App.Environment)

	db, err := repositories.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, err
	}

	postRepo := repositories.NewBadgerPostRepository(db)
	personaRepo := repositories.NewBadgerPersonaRepository(db)
	directory := services.NewAuthorDirectory(personaRepo)

	client := llm.NewOpenAIClient(cfg.OpenAI.APIKey, time.Duration(cfg.OpenAI.TimeoutSeconds)*time.Second)
	personaService := services.NewPersonaService(directory, client, cfg.OpenAI.PersonaModel)
	writer := services.NewWriterService(client, cfg.OpenAI.WriterModel)
	notifier := services.NewSyndicationNotifier(cfg.Syndication.WebhookURL)

	pipeline := services.NewPipeline(
		services.NewStaticTopicSource(nil),
		directory,
		writer,
		postRepo,
		notifier,
	)

	return &app{
		db:        db,
		posts:     postRepo,
		directory: directory,
		personas:  personaService,
		pipeline:  pipeline,
	}, cfg, nil
}

func serve() {
	a, cfg, err := buildApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.db.Close()

	blogController := controllers.NewBlogController(a.posts, a.directory, a.pipeline)
	authorController := controllers.NewAuthorController(a.directory, a.personas, a.posts)
	router := routes.Setup(blogController, authorController)

	log.Info().Str("addr", cfg.App.Addr).Msg("starting API server")
	if err := http.ListenAndServe(cfg.App.Addr, router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func generate() {
	a, _, err := buildApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.db.Close()

	a.pipeline.RunOnce(context.Background())
}

func schedule() {
	a, cfg, err := buildApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.db.Close()

	c := cron.New()
	if _, err := c.AddFunc(cfg.Scheduler.CronSpec, func() {
		a.pipeline.RunOnce(context.Background())
	}); err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Scheduler.CronSpec).Msg("invalid cron spec")
	}

	log.Info().Str("spec", cfg.Scheduler.CronSpec).Msg("starting generation scheduler")
	c.Run()
}
