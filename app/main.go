package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	gocache "github.com/patrickmn/go-cache"

	"github.com/growse/www.growse.com/internal/articleservice"
	"github.com/growse/www.growse.com/internal/commentservice"
	"github.com/growse/www.growse.com/internal/common"
	"github.com/growse/www.growse.com/internal/locationservice"
	"github.com/growse/www.growse.com/internal/mailservice"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	articleService *articleservice.ArticleService
	commentService *commentservice.CommentService
	locateService  *locationservice.LocationService
	mailService    *mailservice.MailService
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("could not load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 25, 25, 15*time.Minute)
	if err != nil {
		logger.Error("could not connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	if cfg.MigrationsURL != "" {
		if err := migrateDB(cfg); err != nil {
			logger.Error("could not run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	mqURI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(mqURI)
	if err != nil {
		logger.Error("could not connect to message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	if err := common.SetupCommentExchange(broker); err != nil {
		logger.Error("could not declare comment exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(gocache.NoExpiration, 0)

	app := &application{
		config:         cfg,
		logger:         logger,
		articleService: articleservice.NewArticleService(db, cache),
		commentService: commentservice.NewCommentService(db, broker, logger),
		locateService:  locationservice.NewLocationService(db),
		mailService:    mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailOperator, cfg.MailPort, logger),
	}
	defer app.mailService.Close()

	go app.mailService.SendCommentNotifications()

	if err := app.serve(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func migrateDB(cfg *Config) error {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	m, err := migrate.New(cfg.MigrationsURL, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
