package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"corretora_seguros/internal/adapter/http/routes"
	"corretora_seguros/internal/adapter/persistence/repository"
	"corretora_seguros/internal/config"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/infrastructure/auth"
	"corretora_seguros/internal/infrastructure/database"
	"corretora_seguros/internal/usecase"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

// @title           Corretora de Seguros API
// @version         1.0
// @description     Insurance brokerage API: quote simulation, proposal lifecycle and policies, backed by DynamoDB.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const (
	appName = "corretora-api"
	Version = "1.0.0"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Insurance brokerage API",
		Long: `Serves quote simulation, the proposal approval workflow and the
customer and staff dashboards. Running without a subcommand starts the server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})
	cmd.AddCommand(createTablesCmd())
	cmd.AddCommand(createStaffCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})
	return cmd
}

func serve(ctx context.Context) error {
	cfg, err := config.LoadServer()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return routes.Run(ctx, cfg)
}

func createTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-tables",
		Short: "Create the DynamoDB tables (existing ones are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
			if err != nil {
				return err
			}
			return repository.CreateTables(ctx, ddb, cfg.Tables)
		},
	}
}

func createStaffCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "create-staff",
		Short: "Create a staff (funcionario) account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
			if err != nil {
				return err
			}

			uc := usecase.NewAuthUseCase(
				repository.NewUserDynamoRepository(ddb, cfg.Tables.Users),
				auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
			)
			user, err := uc.Register(ctx, usecase.RegisterCommand{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     entities.RoleFuncionario,
			})
			if err != nil {
				return err
			}
			fmt.Printf("staff account created id=%s email=%s\n", user.ID, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Login e-mail")
	cmd.Flags().StringVar(&password, "password", "", "Initial password (min. 8 chars)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
