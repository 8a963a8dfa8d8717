package app

import (
	"fmt"
	"strings"
	"time"

	"talentswipe/internal/config"
	"talentswipe/internal/delivery/http/handler"
	"talentswipe/internal/delivery/http/middleware"
	"talentswipe/internal/delivery/http/routes"
	"talentswipe/internal/pkg/jwt"
	"talentswipe/internal/ws"

	"github.com/go-co-op/gocron/v2"
	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap wires the full application and returns it together with a
// cleanup function that releases every resource it started.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	a := New(c)
	cleanup, err := a.Start()
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return a, cleanup, nil
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	jwtSvc := jwt.NewHMACService(
		c.Config.JWT.AccessSecret,
		c.Config.JWT.RefreshSecret,
		c.Config.JWT.AccessExpiresIn,
		c.Config.JWT.RefreshExpiresIn,
	)

	errMw := middleware.NewErrorMiddleware(c.Logger)
	f.Use(errMw.Middleware())
	f.Use(middleware.AccessLog(c.Logger))

	registry := &routes.Registry{
		Health:    handler.NewHealthHandler(c.DB, c.Cache),
		Swipes:    handler.NewSwipeHandler(c.Swipes),
		Matches:   handler.NewMatchHandler(c.Matches),
		Messages:  handler.NewMessageHandler(c.Messages),
		Discovery: handler.NewDiscoveryHandler(c.Discovery),
		Settings:  handler.NewSettingsHandler(c.Cooldown),
		Auth:      middleware.NewAuthMiddleware(jwtSvc),
	}
	registry.Register(f)

	wsHandler := ws.NewHandler(c.Hub, c.Notifier, jwtSvc, c.Matches, c.Messages, c.Logger)
	f.Get("/ws", wsHandler.HandleWS)

	return &App{Fiber: f, Container: c}
}

// Start launches the background workers: the connection hub and the
// periodic health report job.
func (a *App) Start() (func() error, error) {
	go a.Container.Hub.Run()

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(func() {
			a.Container.Logger.Printf("stats | ws_clients=%d analytics_queue=%d",
				a.Container.Hub.ClientCount(), a.Container.Tracker.QueueDepth())
		}),
	)
	if err != nil {
		return nil, err
	}
	scheduler.Start()

	cleanup := func() error {
		if err := scheduler.Shutdown(); err != nil {
			a.Container.Logger.Printf("scheduler shutdown error | error=%v", err)
		}
		return a.Container.Close()
	}
	return cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
