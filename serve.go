package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-qlearn/api"
	agentapi "github.com/beka-birhanu/vinom-qlearn/api/agent"
	api_i "github.com/beka-birhanu/vinom-qlearn/api/i"
	"github.com/beka-birhanu/vinom-qlearn/api/identity"
	"github.com/beka-birhanu/vinom-qlearn/config"
	opidentity "github.com/beka-birhanu/vinom-qlearn/identity"
	"github.com/beka-birhanu/vinom-qlearn/infrastruture/metrics"
	"github.com/beka-birhanu/vinom-qlearn/infrastruture/token"
	"github.com/beka-birhanu/vinom-qlearn/service"
	"github.com/beka-birhanu/vinom-qlearn/service/i"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	metricsRegistry *prometheus.Registry
	jwtTokenizer    i.Tokenizer
	authService     i.Authenticator
	authController  api_i.Controller
	agentController api_i.Controller
	router          *api.Router
)

func initMetrics() {
	metricsRegistry = prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	runRecorder = metrics.NewRecorder(metricsRegistry)
	appLogger.Info("Metrics initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(cfg.JWTSecret, cfg.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	operator, err := opidentity.NewOperator(opidentity.OperatorConfig{
		Name:          cfg.OperatorName,
		PlainPassword: cfg.OperatorPassword,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating operator: %v", err))
		os.Exit(1)
	}

	authService, err = service.NewAuthService(operator, jwtTokenizer, 0)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)

	var err error
	agentController, err = agentapi.NewAgentController(agentService, trainer, runRepo)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating agent controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    cfg.RESTAddr(),
		BaseURL:                 "/api",
		Mode:                    cfg.GinMode,
		Controllers:             []api_i.Controller{authController, agentController},
		AuthorizationMiddleware: identity.Authoriz(t, service.OperatorRole),
		MetricsHandler:          promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}),
	})
	appLogger.Info("Router initialized")
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the agent over HTTP",
		Run: func(cmd *cobra.Command, args []string) {
			initAppLogger()
			cfg = config.MustLoadServer()

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			initBackend(ctx, cfg.StoreBackend)
			defer closeBackend(context.Background())

			initMetrics()
			initTrainer()
			initAgent()
			initJWTTokenizer()
			initAuthService()
			initControllers()
			initRouter(jwtTokenizer)

			// Run HTTP server
			if err := router.Run(); err != nil {
				appLogger.Error(fmt.Sprintf("Starting server: %v", err))
				os.Exit(1)
			}
		},
	}
}
