// README: Entry point; loads config, wires clients and services, starts the
// HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zotra/internal/ai"
	"zotra/internal/config"
	"zotra/internal/geocode"
	httptransport "zotra/internal/http"
	"zotra/internal/infra"
	"zotra/internal/modules/trip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer provider.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	client := geocode.NewClient(geocode.Config{
		BaseURL:        cfg.Geocode.BaseURL,
		UserAgent:      cfg.Geocode.UserAgent,
		AcceptLanguage: cfg.Geocode.AcceptLanguage,
		CountryCode:    cfg.Geocode.CountryCode,
		CountryName:    cfg.Geocode.CountryName,
		Locality:       cfg.Geocode.Locality,
		Limit:          cfg.Geocode.Limit,
		AddressDetails: true,
	})
	cache := geocode.NewCache(redisClient, cfg.Geocode.CacheTTL)
	geocoder := geocode.NewCachedGeocoder(client, cache)

	tripStore := trip.NewStore()
	tripSvc := trip.NewService(tripStore, provider)

	router := httptransport.NewRouter(tripSvc, geocoder)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
