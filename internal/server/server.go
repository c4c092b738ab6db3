package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/scriptura/studyref/internal/cache"
	"github.com/scriptura/studyref/internal/config"
	"github.com/scriptura/studyref/internal/jobs"
	"github.com/scriptura/studyref/internal/service"
	"github.com/scriptura/studyref/internal/store"
)

// Server represents the server
type Server struct {
	httpPort string
}

// NewServer creates a new server
func NewServer(httpPort string) *Server {
	return &Server{
		httpPort: httpPort,
	}
}

// Start starts the server
func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start starts the http server
func Start(httpPort string) error {
	httpPort = ":" + httpPort

	cnf := config.LoadConfig()
	logrus.Infof("starting studyref in %s mode", cnf.Env)

	db := config.GetDb(cnf)

	rl, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	refStore := store.NewGormStore(db)
	if err := refStore.Migrate(); err != nil {
		return err
	}

	var lookupCache cache.StudyCache
	if cnf.RedisAddr != "" {
		lookupCache = cache.NewRedisStudyCache(cnf.RedisAddr)
	} else {
		lookupCache = cache.NewNop()
	}

	provider := store.NewDefaultProvider(refStore)
	refs := service.NewReferenceService(provider)
	studies := service.NewStudyService(provider, lookupCache)

	executor := jobs.NewTaskExecutor(nil, []jobs.CronJob{
		jobs.NewMirrorAuditTask("@every 10m", refStore),
		jobs.NewCacheWarmTask("@every 15m", refStore, lookupCache),
	})
	executor.Run()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // All origins are allowed
		AllowedMethods:   []string{"GET", "POST", "DELETE", "PUT"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router := NewRouter(refs, studies, StaticIdentity())
	restServer := &http.Server{
		Addr:    httpPort,
		Handler: c.Handler(router),
	}

	// make sure to wait for the server to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting http server on: ", httpPort)
		if err := restServer.Serve(rl); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting http server: %v", err)
			}
		}
		logrus.Infof("http server stopped")
	}()

	time.Sleep(1 * time.Second)
	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	executor.Stop()

	if err := restServer.Shutdown(context.Background()); err != nil {
		logrus.Errorf("error stopping http server: %v", err)
	}

	wg.Wait()

	return nil
}
