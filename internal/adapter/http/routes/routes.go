package routes

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	_ "corretora_seguros/docs"
	"corretora_seguros/internal/adapter/http/handlers"
	"corretora_seguros/internal/adapter/http/middleware"
	"corretora_seguros/internal/adapter/persistence/repository"
	"corretora_seguros/internal/config"
	"corretora_seguros/internal/infrastructure/auth"
	"corretora_seguros/internal/infrastructure/database"
	"corretora_seguros/internal/infrastructure/metrics"
	"corretora_seguros/internal/infrastructure/payments"
	"corretora_seguros/internal/usecase"
	"corretora_seguros/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// Handlers bundles everything the router mounts.
type Handlers struct {
	AuthUseCase usecase.IAuthUseCase
	Auth        *handlers.AuthHandler
	Proposal    *handlers.ProposalHandler
	Dashboard   *handlers.DashboardHandler
	Payment     *handlers.PremiumPaymentHandler
	// Policy is nil when the policies API is disabled.
	Policy *handlers.PolicyHandler
}

// Run wires the DynamoDB-backed dependencies and serves until ctx is cancelled.
func Run(ctx context.Context, cfg config.ServerConfig) error {
	h, err := buildHandlers(ctx, cfg)
	if err != nil {
		return err
	}

	router := NewRouter(h)
	srv := &http.Server{
		Addr: ":" + strconv.Itoa(cfg.Port),
		Handler: cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
			AllowCredentials: true,
		}).Handler(router),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening port=%d policies_api=%t", cfg.Port, cfg.PoliciesAPIEnabled)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Printf("[server] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// NewRouter builds the gin engine with every route group mounted under /v1.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", metrics.Handler())

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addAuthRoutes(v1, h.AuthUseCase, h.Auth)

	private := v1.Group("", middleware.Authenticate(h.AuthUseCase))
	addProposalRoutes(private, h.Proposal, h.Payment)
	addCustomerRoutes(private, h.Proposal)
	addDashboardRoutes(private, h.Dashboard)
	if h.Policy != nil {
		addPolicyRoutes(private, h.Policy)
	}
	return router
}

func buildHandlers(ctx context.Context, cfg config.ServerConfig) (Handlers, error) {
	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return Handlers{}, err
	}

	proposalRepo := repository.NewProposalDynamoRepository(ddb, cfg.Tables.Proposals, cfg.Tables.Counters)
	userRepo := repository.NewUserDynamoRepository(ddb, cfg.Tables.Users)
	paymentRepo := repository.NewPremiumPaymentDynamoRepository(ddb, cfg.Tables.Payments)

	authUseCase := usecase.NewAuthUseCase(userRepo, auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL))
	proposalUseCase := usecase.NewProposalUseCase(proposalRepo)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.Payments)
	if err != nil {
		log.Printf("[payment][setup] Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}
	paymentUseCase := usecase.NewPremiumPaymentUseCase(paymentRepo, proposalRepo, paymentGateway, cfg.Payments)

	h := Handlers{
		AuthUseCase: authUseCase,
		Auth:        handlers.NewAuthHandler(authUseCase),
		Proposal:    handlers.NewProposalHandler(proposalUseCase),
		Dashboard:   handlers.NewDashboardHandler(proposalUseCase),
		Payment:     handlers.NewPremiumPaymentHandler(paymentUseCase, proposalUseCase, cfg.Payments.MockMode),
	}
	if cfg.PoliciesAPIEnabled {
		policyRepo := repository.NewPolicyDynamoRepository(ddb, cfg.Tables.Policies)
		h.Policy = handlers.NewPolicyHandler(usecase.NewPolicyUseCase(policyRepo))
	}
	return h, nil
}

func setMiddlewares(router *gin.Engine) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(middleware.RequestID())
	router.Use(metrics.Middleware())
}
