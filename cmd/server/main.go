package main

import (
	"net/http"
	"os"

	"go.uber.org/zap"

	"liarspoker/internal/room"
	"liarspoker/internal/server"
	"liarspoker/internal/storage"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}

	dbPath := "liarspoker.db"
	if p := os.Getenv("DB_PATH"); p != "" {
		dbPath = p
	}

	store, err := storage.New(dbPath)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer store.Close()

	mgr := room.NewManager(store, log)
	srv := server.New(mgr, log)

	log.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, srv); err != nil {
		log.Fatal("server", zap.Error(err))
	}
}
