package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fernandomartin18/UbicAir/backend"
	"github.com/fernandomartin18/UbicAir/config"
	"github.com/fernandomartin18/UbicAir/events"
	"github.com/fernandomartin18/UbicAir/favorites"
	"github.com/fernandomartin18/UbicAir/flights"
	"github.com/fernandomartin18/UbicAir/radar"
	"github.com/fernandomartin18/UbicAir/session"
	"github.com/fernandomartin18/UbicAir/stats"
	"github.com/fernandomartin18/UbicAir/users"
)

func main() {
	settings := config.Load()

	events.Init()

	store, err := session.Open(filepath.Join(settings.DataDir, "session.db"))
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}

	client := backend.NewClient(
		backend.WithBaseURL(settings.APIURL),
		backend.WithTokenSource(store),
	)

	if err := stats.Init(client, settings.DataDir); err != nil {
		log.Fatalf("Failed to initialize stats: %v", err)
	}

	favorites.Init(client)
	users.Init(client, store)
	flights.Init(client)
	radar.Init(client, settings.PollInterval, settings.StatsInterval)

	monitor := backend.NewMonitor(client, settings.MonitorInterval, func(healthy bool) {
		eventType := events.TypeBackendDown
		if healthy {
			eventType = events.TypeBackendUp
		}
		events.LogEvent(events.Event{Type: eventType, Source: "monitor", Detail: settings.APIURL, Timestamp: time.Now()})
	})

	ctx, cancel := context.WithCancel(context.Background())
	radar.Start(ctx)
	monitor.Start(ctx)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Println("Shutting down gracefully...")
		cancel()
		radar.Stop()
		monitor.Stop()
		if err := stats.Close(); err != nil {
			log.Printf("Error closing stats database: %v", err)
		}
		if err := store.Close(); err != nil {
			log.Printf("Error closing session store: %v", err)
		}
		events.Close()
		os.Exit(0)
	}()

	// Serve static files
	http.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))
	http.HandleFunc("/", serveFrontend)

	events.SetupHandlers()
	radar.SetupHandlers()
	favorites.SetupHandlers()
	flights.SetupHandlers()
	users.SetupHandlers()
	stats.SetupHandlers()

	log.Printf("Server started at http://127.0.0.1%s", settings.Addr)
	http.ListenAndServe(settings.Addr, nil)
}

func serveFrontend(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/", "/home":
		http.ServeFile(w, r, "web/home.html")
	case "/radar":
		http.ServeFile(w, r, "web/radar.html")
	case "/login":
		http.ServeFile(w, r, "web/login.html")
	case "/signup":
		http.ServeFile(w, r, "web/signup.html")
	case "/profile":
		http.ServeFile(w, r, "web/profile.html")
	default:
		http.NotFound(w, r)
	}
}
