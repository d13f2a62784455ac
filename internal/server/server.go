// Package server exposes the quiz generation pipeline over HTTP.
package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/quillium/quillium/internal/config"
	"github.com/quillium/quillium/internal/quizgen"
)

// Version is reported by the root endpoint. Set at build time.
var Version = "1.0.0"

// Server wires the HTTP layer to the generation service.
type Server struct {
	app    *fiber.App
	quiz   *quizgen.Service
	config config.Config
	log    *logrus.Logger
}

// New builds a configured Fiber application around the quiz service.
func New(quiz *quizgen.Service, cfg config.Config, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}

	s := &Server{quiz: quiz, config: cfg, log: log}

	app := fiber.New(fiber.Config{
		AppName:      "Quillium",
		BodyLimit:    int(cfg.MaxUploadBytes) + 1024*1024, // headroom for multipart framing
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // generation can be slow
		ErrorHandler: s.errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", s.handleRoot)
	app.Get("/health", s.handleHealth)
	app.Get("/languages", s.handleLanguages)
	app.Post("/process-pdf", s.handleProcessPDF)
	app.Post("/generate", s.handleGenerate)

	s.app = app
	return s
}

// App exposes the underlying Fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen starts serving on the configured address and blocks.
func (s *Server) Listen() error {
	s.log.WithField("addr", s.config.Addr).Info("starting server")
	return s.app.Listen(s.config.Addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// errorHandler maps errors to a consistent JSON error envelope.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	s.log.WithFields(logrus.Fields{
		"path":   c.Path(),
		"method": c.Method(),
		"status": code,
	}).WithError(err).Error("request failed")

	return c.Status(code).JSON(fiber.Map{
		"status":  "error",
		"code":    code,
		"message": err.Error(),
	})
}
