package handler

import (
	"hotelres/config"
	"hotelres/di"
	"hotelres/shared/logger"
	"net/http"
	"sync"
)

var (
	app  *di.App
	once sync.Once
)

// Handler serves the API from a serverless function. Checkouts live as long
// as the warm instance does.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app = di.InitializeService()
	})

	app.HTTP.ServeHTTP(w, r)
}
