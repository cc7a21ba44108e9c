package main

import (
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"

	"github.com/minaorangina/belote/internal/config"
	"github.com/minaorangina/belote/internal/room"
	"github.com/minaorangina/belote/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err.Error())
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	coordinator := room.NewCoordinator(nil, logger)

	handler := transport.NewHandler(
		coordinator,
		cfg.ReadBufferSize,
		cfg.WriteBufferSize,
		cfg.AllowedOrigin,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	coordinator.SetBroadcaster(handler)

	mux := http.NewServeMux()
	mux.Handle("/ws", handler)

	wrapped := handlers.CombinedLoggingHandler(os.Stdout, handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.AllowedOrigin}),
	)(mux))

	log.Printf("listening on %s...", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, wrapped))
}
