package main

import (
	"context"
	"flag"
	"log/syslog"
	"os"
	"os/signal"
	"time"

	"github.com/edikoyo/jamhub"
	"github.com/edikoyo/jamhub/persistent"
	"github.com/edikoyo/jamhub/pgdb"
	"github.com/edikoyo/jamhub/transport/rest"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	logrusys "github.com/sirupsen/logrus/hooks/syslog"
	"github.com/tidwall/buntdb"
	"github.com/uptrace/bun"
)

func listenAndServe(config jamhub.Config, bdb *buntdb.DB, db *bun.DB) func() error {
	userStore := &persistent.UserStore{DB: db}
	activityStore := &persistent.ActivityStore{DB: db}
	jamStore := &persistent.JamStore{DB: db}
	sessionStore := &persistent.SessionStore{Buntdb: bdb, ActivityStore: activityStore}
	imageStore := &persistent.DiskImageStore{Dir: config.UploadDir, BaseURL: config.BaseURL}

	authController := rest.AuthController{
		UserStore:    userStore,
		SessionStore: sessionStore,
	}
	userController := rest.UserController{Store: userStore, ActivityStore: activityStore}
	imageController := rest.ImageController{Store: imageStore, ActivityStore: activityStore}
	jamController := rest.JamController{Store: jamStore}
	activityController := rest.ActivityController{Store: activityStore}

	server := fiber.New()
	server.Use(rest.LogHandler())

	api := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: rest.ErrorHandler,
	})

	allowOrigins := "https://edikoyo.com"
	if config.Dev() {
		allowOrigins += ", http://localhost:3000"
	}
	api.Use(cors.New(cors.Config{AllowOrigins: allowOrigins}))

	requestAuthorizer := rest.RequestAuthorizer(sessionStore, userStore)
	api.Get("/status", rest.CombineHandlers(
		requestAuthorizer,
		rest.RequirePermissions(jamhub.PermissionAdminDashboard),
		monitor.New()))
	authController.InstallTo(api)
	jamController.InstallTo(api)
	userController.InstallTo(requestAuthorizer, api)
	imageController.InstallTo(requestAuthorizer, api)
	activityController.InstallTo(requestAuthorizer, api)

	api.Static("/uploads", config.UploadDir)

	server.Mount("/api/v1/", api)

	server.Static("/", config.StaticDir, fiber.Static{
		Browse: false,
		Index:  "index.html",
	})

	server.Use(rest.NotFoundHandler)

	go func() {
		if err := server.Listen(config.Addr); err != nil {
			logrus.WithError(err).Fatalln("Could not listen.")
		}
	}()

	return server.Shutdown
}

func setupLogger(verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: time.Stamp,
		FullTimestamp:   true,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	syslogHook, err := logrusys.NewSyslogHook("", "", syslog.LOG_USER, "jamhub")
	if err != nil {
		logrus.WithError(err).Warningln("Could not create syslog hook.")
		return
	}
	logrus.AddHook(syslogHook)
}

func configFromEnv() jamhub.Config {
	requireEnv := func(key string) string {
		value := os.Getenv(key)
		if value == "" {
			logrus.Fatalln(key + " not set!")
		}
		return value
	}
	envOr := func(key string, fallback string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return fallback
	}

	mode := jamhub.ModeProd
	if os.Getenv("MODE") == string(jamhub.ModeDev) {
		mode = jamhub.ModeDev
	}

	addr := envOr("LISTEN_ADDR", ":2137")
	if mode == jamhub.ModeDev && os.Getenv("LISTEN_ADDR") == "" {
		addr = "127.0.0.1:2137"
	}

	return jamhub.Config{
		Mode:          mode,
		Addr:          addr,
		BaseURL:       envOr("BASE_URL", "https://edikoyo.com/api/v1"),
		PostgresDSN:   requireEnv("POSTGRES_DSN"),
		SessionDBPath: envOr("SESSION_DB_PATH", "sessions.db"),
		UploadDir:     envOr("UPLOAD_DIR", "./uploads/"),
		StaticDir:     envOr("STATIC_DIR", "./www/"),
	}
}

func awaitInterruption() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
}

func main() {
	flag.Parse()
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warningln("Could not load .env file.")
	}

	config := configFromEnv()
	setupLogger(config.Dev())
	logrus.Infoln("Starting jamhub backend.")

	bdb, err := buntdb.Open(config.SessionDBPath)
	if err != nil {
		logrus.WithError(err).Fatalln("Could not open session db.")
	}
	defer bdb.Close()

	if err := os.MkdirAll(config.UploadDir, 0o755); err != nil {
		logrus.WithError(err).Fatalln("Could not create upload dir.")
	}

	logrus.Infoln("Opening database.")
	db := pgdb.Open(context.Background(), config.PostgresDSN)
	defer db.Close()

	logrus.Infoln("Starting listening... To shut down use ^C")
	shutdown := listenAndServe(config, bdb, db)

	awaitInterruption()

	logrus.Infoln("Shutting down...")
	if err := shutdown(); err != nil {
		logrus.WithError(err).Warningln("Fiber shutdown failed.")
	}
	logrus.Exit(0)
}
