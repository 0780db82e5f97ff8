package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi"

	"techfix-hub/internal/config"
	"techfix-hub/internal/handlers"
	"techfix-hub/internal/logging"
	"techfix-hub/internal/middleware"
)

type Server struct {
	Serv *http.Server
}

func New(cfg config.Config, handler *handlers.Server) (*Server, error) {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.LoggingMiddleware(logging.Logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", handler.LoginUser)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(cfg.Secret))
				r.Post("/logout", handler.LogoutUser)
				r.Get("/me", handler.Me)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.Secret))
			r.Use(middleware.AdminOnly)

			r.Get("/dashboard", handler.Dashboard)

			r.Get("/users", handler.GetUsers)
			r.Post("/users", handler.CreateUser)
			r.Patch("/users/{id}", handler.UpdateUser)
			r.Delete("/users/{id}", handler.DeleteUser)
			r.Post("/users/{id}/credits", handler.AddCredits)

			r.Get("/roles", handler.GetRoles)
			r.Post("/roles", handler.CreateRole)
			r.Delete("/roles/{name}", handler.DeleteRole)

			r.Get("/products", handler.GetProducts)
			r.Post("/products", handler.CreateProduct)
			r.Get("/products/{id}", handler.GetProduct)
			r.Patch("/products/{id}", handler.UpdateProduct)
			r.Delete("/products/{id}", handler.DeleteProduct)

			r.Get("/orders", handler.GetOrders)
			r.Get("/orders/{id}", handler.GetOrder)
			r.Patch("/orders/{id}", handler.UpdateOrder)
			r.Delete("/orders/{id}", handler.DeleteOrder)

			r.Get("/topups", handler.GetTopUpRequests)
			r.Get("/topups/{id}", handler.GetTopUpRequest)
			r.Post("/topups/{id}/approve", handler.ApproveTopUp)
			r.Post("/topups/{id}/reject", handler.RejectTopUp)
			r.Delete("/topups/{id}", handler.DeleteTopUpRequest)
			r.Get("/topups/{id}/receipt", handler.TopUpReceipt)

			r.Get("/bank", handler.GetBankDetails)
			r.Put("/bank", handler.UpdateBankDetails)

			r.Get("/settings", handler.GetSettings)
			r.Put("/settings", handler.SaveSettings)

			r.Get("/notifications", handler.GetNotifications)
			r.Post("/notifications/{id}/read", handler.MarkNotificationRead)
			r.Post("/notifications/read-all", handler.MarkAllNotificationsRead)
			r.Delete("/notifications", handler.ClearNotifications)
		})

		r.Route("/user", func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.Secret))

			r.Get("/products", handler.GetCatalog)
			r.Post("/orders", handler.PlaceOrder)
			r.Get("/orders", handler.GetMyOrders)
			r.Post("/topups", handler.SubmitTopUp)
			r.Get("/topups", handler.GetMyTopUps)
			r.Get("/bank", handler.GetBankDetails)
			r.Patch("/profile", handler.UpdateProfile)
		})
	})

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{Serv: serv}, nil
}

func (s *Server) Start() {
	go func() {
		logging.Logg.Info("Starting server", "address", s.Serv.Addr)
		if err := s.Serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logg.Error("Server failed to start", "error", err)
			fmt.Println("Server failed to start:", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	logging.Logg.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.Serv.Shutdown(shutdownCtx); err != nil {
		logging.Logg.Error("Server shutdown error", "error", err)
		return err
	}

	logging.Logg.Info("Server stopped")
	return nil
}
