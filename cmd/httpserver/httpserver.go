// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-lend/lendbank/internal/accountdelivery"
	"github.com/go-lend/lendbank/internal/accountrepo"
	"github.com/go-lend/lendbank/internal/accountservice"
	"github.com/go-lend/lendbank/internal/customerdelivery"
	"github.com/go-lend/lendbank/internal/customerrepo"
	"github.com/go-lend/lendbank/internal/customerservice"
	"github.com/go-lend/lendbank/internal/lendingdelivery"
	"github.com/go-lend/lendbank/internal/lendingrepo"
	"github.com/go-lend/lendbank/internal/lendingservice"
	"github.com/go-lend/lendbank/internal/loanrepo"
	"github.com/go-lend/lendbank/internal/loanservice"
	"github.com/go-lend/lendbank/internal/middleware"
	"github.com/go-lend/lendbank/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	customerRepo := customerrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	loanRepo := loanrepo.NewRepoPGS(conn)
	lendingRepo := lendingrepo.NewRepoPGS(conn)

	customerService := customerservice.New(customerRepo)
	accountService := accountservice.New(accountRepo)
	loanService := loanservice.New(loanRepo)
	lendingService := lendingservice.New(lendingRepo, accountService, loanService, customerService)

	customerHandler := customerdelivery.NewHandler(customerService)
	accountHandler := accountdelivery.NewHandler(accountService)
	lendingHandler := lendingdelivery.NewHandler(lendingService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/customers", customerHandler.Create)
	engine.GET("/customers/:id", customerHandler.Get)
	engine.GET("/customers/:id/loans", lendingHandler.ListLoans)

	engine.POST("/accounts", accountHandler.Open)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.GET("/accounts", accountHandler.List)
	engine.POST("/accounts/:id/deposit", accountHandler.Deposit)
	engine.POST("/accounts/:id/withdraw", accountHandler.Withdraw)
	engine.DELETE("/accounts/:id", accountHandler.Close)

	engine.POST("/loans", lendingHandler.Disburse)
	engine.POST("/loans/:id/payments", lendingHandler.Settle)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
