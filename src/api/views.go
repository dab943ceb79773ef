package api

import (
	"net/http"
	"time"

	"tradeledger/src/api/handlers"
	"tradeledger/src/clients/quotes"
	"tradeledger/src/config"
	"tradeledger/src/controllers"
	"tradeledger/src/database"
	redis_utils "tradeledger/src/utils/redis"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
}

func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	var redisHandler *redis_utils.RedisHandler
	if cfg.Databases.Redis.Enabled {
		redisHandler, err = redis_utils.NewRedisHandler(cfg)
		if err != nil {
			return nil, err
		}
	}

	quotesClient := quotes.NewClient(cfg, redisHandler)
	controller := controllers.NewController(db, quotesClient)

	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(controller),
	}
	server.InitRoutes(logger)
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes(logger *logrus.Logger) {
	s.Router.Use(RequestLogger(logger))
	s.Router.Use(cors.AllowAll().Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api", func(r chi.Router) {
		r.Get("/stock/{ticker}", s.Handler.GetStock)
		r.Get("/stock_history/{ticker}", s.Handler.GetStockHistory)

		r.Post("/buy", s.Handler.Buy)
		r.Post("/sell", s.Handler.Sell)

		r.Get("/portfolio", s.Handler.GetPortfolio)
		r.Get("/portfolio_details", s.Handler.GetPortfolioDetails)
		r.Get("/portfolio_history", s.Handler.GetPortfolioHistory)

		r.Get("/preference", s.Handler.GetPreference)
		r.Put("/preference", s.Handler.PutPreference)
	})
}

func NewHTTPServer(server *Server, port string) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		Handler:      server,
	}
}
