package connection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"checksync/config"
	"checksync/controller"
	"checksync/controller/activity"
	"checksync/controller/auth"
	"checksync/controller/checklist"
	"checksync/controller/dashboard"
	"checksync/controller/task"
	"checksync/controller/user"
	"checksync/notifier"
	"checksync/repository"
	"checksync/scheduler"
	"checksync/seed"
	"checksync/services"
	"checksync/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// Server owns the store, its observers, the simulator and the HTTP router.
type Server struct {
	cfg       config.Config
	log       *slog.Logger
	store     *store.Store
	router    *gin.Engine
	scheduler *scheduler.Scheduler
	closers   []io.Closer
}

// NewServer connects every configured backend and builds the router.
// Optional sinks that fail to connect are skipped with a warning.
func NewServer(ctx context.Context, cfg config.Config, log *slog.Logger) (*Server, error) {
	s := &Server{cfg: cfg, log: log}

	db, err := DBConnection(cfg.DB)
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		s.closers = append(s.closers, sqlDB)
	}

	mirror := repository.NewMirror(db, log.With("component", "mirror"))
	initial, err := bootState(ctx, cfg, mirror)
	if err != nil {
		s.Close()
		return nil, err
	}

	fanout, feed := s.sinks(ctx)
	observers := []store.Observer{mirror}
	if fanout.Len() > 0 {
		observers = append(observers, fanout)
	}
	s.store = store.New(initial, store.DefaultEnv(), observers...)

	var gen services.Generator
	if cfg.Gemini.APIKey != "" {
		g, err := services.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Warn("gemini disabled", "err", err)
		} else {
			gen = g
		}
	}
	suggester := services.NewSuggester(gen, log.With("component", "suggestions"))

	gin.SetMode(cfg.HTTP.GinMode)
	s.router = NewRouter(s.store, cfg.Auth, suggester, feed)
	return s, nil
}

// bootState loads the mirrored state, seeding the database first when it
// is empty.
func bootState(ctx context.Context, cfg config.Config, mirror *repository.Mirror) (store.State, error) {
	if err := mirror.Migrate(); err != nil {
		return store.State{}, err
	}
	empty, err := mirror.Empty(ctx)
	if err != nil {
		return store.State{}, err
	}
	if !empty {
		return mirror.Load(ctx)
	}

	now := time.Now().UTC()
	var initial store.State
	if cfg.App.SeedFile != "" {
		initial, err = seed.Load(cfg.App.SeedFile, now)
	} else {
		initial, err = seed.Default(now)
	}
	if err != nil {
		return store.State{}, err
	}
	if err := mirror.Seed(ctx, initial); err != nil {
		return store.State{}, fmt.Errorf("seed database: %w", err)
	}
	return initial, nil
}

func (s *Server) sinks(ctx context.Context) (*notifier.Fanout, activity.FeedReader) {
	var sinks []notifier.Sink
	var feed activity.FeedReader

	if s.cfg.Firebase.Enabled() {
		if app, err := FirebaseApp(ctx, s.cfg.Firebase); err != nil {
			s.log.Warn("firebase disabled", "err", err)
		} else {
			if fs, err := FBConnection(ctx, app); err != nil {
				s.log.Warn("firestore disabled", "err", err)
			} else {
				s.closers = append(s.closers, fs)
				ff := notifier.NewFirestoreFeed(fs)
				sinks = append(sinks, ff)
				feed = ff
			}
			if s.cfg.Firebase.PushEnabled {
				if fcm, err := FCMConnection(ctx, app); err != nil {
					s.log.Warn("fcm disabled", "err", err)
				} else {
					sinks = append(sinks, notifier.NewPush(fcm))
				}
			}
		}
	}
	if s.cfg.Redis.Enabled() {
		if rdb, err := RedisConnection(ctx, s.cfg.Redis); err != nil {
			s.log.Warn("redis disabled", "err", err)
		} else {
			s.closers = append(s.closers, rdb)
			sinks = append(sinks, notifier.NewRedisPublisher(rdb))
		}
	}
	if s.cfg.Slack.Enabled() {
		sinks = append(sinks, notifier.NewSlack(SlackConnection(s.cfg.Slack), s.cfg.Slack.Channel))
	}

	for _, sk := range sinks {
		s.log.Info("sink enabled", "sink", sk.Name())
	}
	return notifier.NewFanout(s.log.With("component", "notifier"), sinks...), feed
}

// NewRouter registers every route on a gin.Default engine.
func NewRouter(st *store.Store, authCfg config.AuthConfig, suggester *services.Suggester, feed activity.FeedReader) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	secret := []byte(authCfg.Secret)

	controller.HealthController(router)
	auth.AuthController(router, st, authCfg)
	user.UserController(router, st, secret)
	dashboard.DashboardController(router, st, secret)
	checklist.ChecklistController(router, st, secret, suggester)
	task.TaskController(router, st, secret)
	activity.ActivityController(router, st, secret, feed)

	return router
}

func (s *Server) Router() *gin.Engine { return s.router }

func (s *Server) Store() *store.Store { return s.store }

// Run serves HTTP and the simulator until ctx is cancelled, then shuts
// both down.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Simulator.Enabled {
		sim := scheduler.NewSimulator(s.store, s.cfg.Simulator, nil, s.log.With("component", "simulator"))
		sched, err := scheduler.StartScheduler(s.cfg.Simulator.Spec, sim)
		if err != nil {
			return err
		}
		s.scheduler = sched
	}

	server := &http.Server{
		Addr:         s.cfg.HTTP.ListenAddr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: s.cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  s.cfg.HTTP.IdleTimeout.Duration(),
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			s.stopScheduler()
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.stopScheduler()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

func (s *Server) stopScheduler() {
	if s.scheduler == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.scheduler.Stop(ctx)
	s.scheduler = nil
}

// Close releases database and client connections.
func (s *Server) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			s.log.Warn("close failed", "err", err)
		}
	}
	s.closers = nil
}
