package routes

import (
	_ "github.com/rajansharma08/lyftr-webhook-api/internal/docs" // swagger docs
	"github.com/rajansharma08/lyftr-webhook-api/internal/response"
	swaggerHandler "github.com/swaggo/http-swagger"
	"net/http"
)

type AppDeps struct {
	Home    HomeHandler
	Health  HealthHandler
	Webhook WebhookHandler
	Message MessageHandler
	Metrics MetricsHandler
}

type HomeHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
}

type HealthHandler interface {
	Live(w http.ResponseWriter, r *http.Request)
	Ready(w http.ResponseWriter, r *http.Request)
}

type WebhookHandler interface {
	Receive(w http.ResponseWriter, r *http.Request)
}

type MessageHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type MetricsHandler interface {
	Export(w http.ResponseWriter, r *http.Request)
}

func Register(mux *http.ServeMux, d AppDeps) {
	mux.HandleFunc("GET /{$}", d.Home.Index)

	mux.HandleFunc("POST /webhook", d.Webhook.Receive)
	mux.HandleFunc("GET /messages", d.Message.List)
	mux.HandleFunc("GET /stats", d.Message.Stats)

	mux.HandleFunc("GET /health/live", d.Health.Live)
	mux.HandleFunc("GET /health/ready", d.Health.Ready)
	mux.HandleFunc("GET /metrics", d.Metrics.Export)

	//Swagger
	mux.HandleFunc("GET /swagger/", swaggerHandler.WrapHandler)

	// Fallback handler for undefined routes (404)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.RespondError(w, http.StatusNotFound, "route not found")
	}))
}
