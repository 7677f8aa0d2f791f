package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"eats-backend/graph"
	"eats-backend/internal/app/account"
	"eats-backend/internal/app/restaurant"
	"eats-backend/internal/auth"
	"eats-backend/internal/config"
	"eats-backend/internal/mail"
	"eats-backend/internal/store"
	httptransport "eats-backend/internal/transport/http"
)

func main() {
	// A .env file is a local convenience; deploys set real env vars.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("load config")
	}

	st, err := store.Open(cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("open store")
	}

	var mailer mail.Mailer = mail.Noop{}
	if cfg.MailConfigured() {
		mailer = mail.NewMailgun(cfg.Mail.Domain, cfg.Mail.APIKey, cfg.Mail.From)
	} else {
		log.Warn("mail credentials not set, verification emails are dropped")
	}

	tokens := auth.Manager{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
	}

	accountSvc := account.NewService(st, mailer, tokens, account.BcryptHasher{}, log.WithField("svc", "account"))
	restaurantSvc := restaurant.NewService(st, log.WithField("svc", "restaurant"))

	gqlHandler := graph.NewHandler(&graph.Resolver{
		AccountSvc:    accountSvc,
		RestaurantSvc: restaurantSvc,
		Log:           log.WithField("svc", "graph"),
	})

	mux := http.NewServeMux()
	mux.Handle("/graphql", gqlHandler)

	authMw := httptransport.AuthMiddleware{
		Tokens:   tokens,
		Accounts: st.Accounts,
	}

	log.WithField("port", cfg.HTTP.Port).Info("listening")
	log.Fatal(http.ListenAndServe(":"+cfg.HTTP.Port, authMw.Wrap(mux)))
}
