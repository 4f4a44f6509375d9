package main

import (
	"fmt"
	"log"

	"github.com/Predaotor/AI-content-Generator/internal/config"
	"github.com/Predaotor/AI-content-Generator/internal/database"
	"github.com/Predaotor/AI-content-Generator/internal/fedauth"
	"github.com/Predaotor/AI-content-Generator/internal/openai"
	"github.com/Predaotor/AI-content-Generator/internal/router"
	"github.com/Predaotor/AI-content-Generator/internal/service"
	"github.com/Predaotor/AI-content-Generator/internal/util"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// a missing JWT secret would make every deployment share ""; generate
	// one per process instead (tokens won't survive a restart)
	if cfg.JWT.Secret == "" {
		secret, err := util.RandomString(48)
		if err != nil {
			log.Fatalf("generate jwt secret: %v", err)
		}
		cfg.JWT.Secret = secret
		log.Print("jwt.secret not configured, using a random per-process secret")
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// Google sign-in is optional; without a client id the route rejects
	// all federated tokens
	var federated service.FederatedVerifier
	if cfg.Google.ClientID != "" {
		verifier, err := fedauth.NewVerifier(cfg.Google)
		if err != nil {
			log.Fatalf("init google verifier: %v", err)
		}
		federated = verifier
	} else {
		log.Print("google.client_id not configured, Google sign-in disabled")
	}

	identity := service.NewIdentity(db, cfg.JWT, federated)
	ledger := service.NewLedger(db)
	invoker := openai.New(cfg.OpenAI)
	gate := service.NewGate(identity, ledger, invoker, cfg.Quota)

	r := router.SetupRouter(cfg, db, identity, gate, ledger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}
