package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"mayagen-web/config"
	"mayagen-web/internal/api"
	"mayagen-web/internal/backend"
	"mayagen-web/internal/notify"
	"mayagen-web/internal/pkg/logger"
	"mayagen-web/internal/session"
	"mayagen-web/internal/view"
)

func main() {
	// Load Config
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Diagnostic log file under the base dir
	logPath := filepath.Join(config.GetBaseDir(), "mayagen-web.log")
	diag, err := logger.NewDiagLogger(logPath)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer diag.Close()

	// Session + backend client. The client pulls the token from the
	// session on every request; the session persists it to the config.
	sess := session.New(config.GlobalConfig.Token, config.UpdateToken)
	client := backend.NewClient(config.GlobalConfig.BackendURL, sess.Token)

	// Startup session check: restores the persisted login if the token
	// is still good, otherwise we start logged out
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	sess.Restore(ctx, client)
	cancel()
	if u := sess.User(); u != nil {
		log.Printf("Session restored for %s", u.Username)
	} else {
		log.Println("Starting logged out")
	}

	deps := &api.Deps{
		API:     client,
		Session: sess,
		Notices: notify.NewCenter(),
		Log:     diag,
		Filter:  view.LocalFilter{},
		Batches: view.NewBatchLoader(client),
	}

	r := api.SetupRouter(deps)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.GlobalConfig.ListenPort),
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	log.Printf("MayaGen web started on port %d (backend %s)", config.GlobalConfig.ListenPort, config.GlobalConfig.BackendURL)

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Server exiting")
}
