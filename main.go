package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"lifedeck/internal/config"
	"lifedeck/internal/serverapp"
)

type serverEnv struct {
	Addr       string `env:"LIFEDECK_ADDR" envDefault:":8080"`
	DataDir    string `env:"LIFEDECK_DATA_DIR" envDefault:"data"`
	ConfigPath string `env:"LIFEDECK_CONFIG"`
}

func main() {
	var cfgEnv serverEnv
	if err := env.Parse(&cfgEnv); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	cfg := config.Default()
	if cfgEnv.ConfigPath != "" {
		loaded, err := config.Load(cfgEnv.ConfigPath)
		if err != nil {
			log.Fatalf("load config %s: %v", cfgEnv.ConfigPath, err)
		}
		cfg = loaded
	}
	cfg, err := config.FromEnv(cfg)
	if err != nil {
		log.Fatalf("config overrides: %v", err)
	}

	logger := log.New(os.Stdout, "", 0)

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:  cfg,
		DataDir: cfgEnv.DataDir,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	srv := &http.Server{
		Addr:              cfgEnv.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Printf("lifedeck listening on %s", cfgEnv.Addr)
	log.Fatal(srv.ListenAndServe())
}
