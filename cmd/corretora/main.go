package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"corretora_seguros/internal/client"
	"corretora_seguros/internal/config"
	"corretora_seguros/internal/domain/entities"
	"corretora_seguros/internal/domain/views"
	"corretora_seguros/internal/domain/wizard"

	_ "github.com/joho/godotenv/autoload"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const appName = "corretora"

type app struct {
	client  *client.Client
	session *client.Session
}

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:          appName,
		Short:        "Command line client of the brokerage API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClient()
			if err != nil {
				return err
			}
			a.client = client.New(cfg, nil)
			a.session = client.NewSession(a.client, client.FileStore{Path: cfg.SessionFile})
			return nil
		},
	}
	cmd.AddCommand(a.loginCmd(), a.logoutCmd(), a.whoamiCmd(), a.simulateCmd(),
		a.pendingCmd(), a.decideCmd("approve", views.ActionApprove), a.decideCmd("reject", views.ActionReject),
		a.portfolioCmd(), a.policiesCmd(), a.policyDocCmd())
	return cmd
}

// report prints a Result and turns a failure into a command error.
func report(res client.Result) error {
	if !res.Success {
		return fmt.Errorf("%s", res.Error)
	}
	if res.Message != "" {
		fmt.Println(res.Message)
	}
	return nil
}

// restore loads the persisted session; commands below need one.
func (a *app) restore(cmd *cobra.Command) error {
	return report(a.session.Restore(cmd.Context()))
}

func (a *app) loginCmd() *cobra.Command {
	var staff bool
	cmd := &cobra.Command{
		Use:   "login <email> <senha>",
		Short: "Sign in and persist the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := entities.RoleCliente
			if staff {
				role = entities.RoleFuncionario
			}
			return report(a.session.Login(cmd.Context(), args[0], args[1], role))
		},
	}
	cmd.Flags().BoolVar(&staff, "funcionario", false, "Sign in as staff")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.session.Logout()
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.restore(cmd); err != nil {
				return err
			}
			u, _ := a.session.User()
			fmt.Printf("%s <%s> role=%s\n", u.Name, u.Email, u.Role)
			return nil
		},
	}
}

func (a *app) simulateCmd() *cobra.Command {
	var fields []string
	cmd := &cobra.Command{
		Use:   "simulate <vehicle|home|phone>",
		Short: "Submit a quote, e.g. simulate vehicle -f marca=honda -f ano=2022",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := entities.ParseProductKind(args[0])
			if !ok {
				return fmt.Errorf("unknown product %q", args[0])
			}
			if err := a.restore(cmd); err != nil {
				return err
			}

			w := wizard.New(kind, a.client)
			for _, f := range fields {
				name, value, found := strings.Cut(f, "=")
				if !found {
					return fmt.Errorf("field %q is not name=value", f)
				}
				w.SetField(name, value)
			}
			res := w.Submit(cmd.Context())
			if !res.Success {
				return fmt.Errorf("%s", res.Message)
			}
			fmt.Println(res.Message)
			fmt.Printf("proposta %d: %dx %s\n", res.Simulation.ApoliceID, res.Simulation.Parcelas, entities.FormatBRL(res.Simulation.VlrParcela))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "Quote field as name=value (repeatable)")
	return cmd
}

func (a *app) pendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List pending proposals (the whole queue for staff)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.restore(cmd); err != nil {
				return err
			}
			if !a.session.IsStaff() {
				u, _ := a.session.User()
				list, err := a.client.FetchPendingByCustomer(cmd.Context(), u.CPF)
				if err != nil {
					return report(client.Normalize(err))
				}
				for _, p := range list {
					printProposal(p)
				}
				return nil
			}
			b := client.NewProposalBoard(a.client)
			defer b.Close()
			if err := report(b.Load(cmd.Context())); err != nil {
				return err
			}
			for _, p := range b.Pending() {
				printProposal(p)
			}
			m := b.Metrics()
			fmt.Printf("pendentes=%d aprovadas=%d rejeitadas=%d total=%d\n", m.PendingCount, m.ApprovedCount, m.RejectedCount, m.Total)
			return nil
		},
	}
}

func (a *app) decideCmd(use string, action views.Action) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <apoliceId>",
		Short: action.Label + " a pending proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid apolice id %q", args[0])
			}
			if err := a.restore(cmd); err != nil {
				return err
			}
			b := client.NewProposalBoard(a.client)
			defer b.Close()
			if err := report(b.Load(cmd.Context())); err != nil {
				return err
			}
			for _, p := range b.Proposals(views.Filter{}) {
				if p.ApoliceID == id {
					return report(b.Effectuate(cmd.Context(), p, action))
				}
			}
			return fmt.Errorf("proposta %d não encontrada", id)
		},
	}
}

func (a *app) portfolioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio [cpf]",
		Short: "Show active policies and pending proposals",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.restore(cmd); err != nil {
				return err
			}
			u, _ := a.session.User()
			cpf := u.CPF
			if len(args) == 1 {
				cpf = args[0]
			}
			v := client.NewPortfolioView(a.client, cpf)
			defer v.Close()
			if err := report(v.Load(cmd.Context())); err != nil {
				return err
			}
			fmt.Println("Apólices ativas:")
			for _, p := range v.Active() {
				printProposal(p)
			}
			fmt.Println("Propostas pendentes:")
			for _, p := range v.Pending() {
				printProposal(p)
			}
			return nil
		},
	}
}

func (a *app) policiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policies",
		Short: "Manage records of the policies API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			if !a.client.PoliciesEnabled() {
				return fmt.Errorf("policies API disabled (POLICIES_API_ENABLED)")
			}
			return a.restore(cmd)
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List policies",
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := a.client.ListPolicies(cmd.Context())
			if err != nil {
				return report(client.Normalize(err))
			}
			for _, p := range ps {
				printPolicy(p)
			}
			return nil
		},
	}

	var (
		cpf, name, kind, desc, premium, coverage, start, end string
	)
	create := &cobra.Command{
		Use:   "create",
		Short: "Issue a policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := policyFromFlags(cpf, name, kind, desc, premium, coverage, start, end)
			if err != nil {
				return err
			}
			created, err := a.client.CreatePolicy(cmd.Context(), p)
			if err != nil {
				return report(client.Normalize(err))
			}
			printPolicy(created)
			return nil
		},
	}
	create.Flags().StringVar(&cpf, "cpf", "", "Customer CPF")
	create.Flags().StringVar(&name, "name", "", "Customer name")
	create.Flags().StringVar(&kind, "type", "", "Product (vehicle, home, phone)")
	create.Flags().StringVar(&desc, "description", "", "Description")
	create.Flags().StringVar(&premium, "premium", "0", "Premium")
	create.Flags().StringVar(&coverage, "coverage", "0", "Coverage")
	create.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	create.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")

	cancel := &cobra.Command{
		Use:   "cancel <policyId>",
		Short: "Mark a policy as cancelled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.client.GetPolicy(cmd.Context(), args[0])
			if err != nil {
				return report(client.Normalize(err))
			}
			p.Status = entities.PolicyStatusCancelled
			updated, err := a.client.UpdatePolicy(cmd.Context(), p)
			if err != nil {
				return report(client.Normalize(err))
			}
			printPolicy(updated)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <policyId>",
		Short: "Delete a policy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeletePolicy(cmd.Context(), args[0]); err != nil {
				return report(client.Normalize(err))
			}
			fmt.Printf("apólice %s removida\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, create, cancel, del)
	return cmd
}

func policyFromFlags(cpf, name, kind, desc, premium, coverage, start, end string) (entities.Policy, error) {
	k, ok := entities.ParseProductKind(kind)
	if !ok {
		return entities.Policy{}, fmt.Errorf("unknown product %q", kind)
	}
	p := entities.Policy{CustomerCPF: cpf, CustomerName: name, Type: k, Description: desc, Status: entities.PolicyStatusActive}
	var err error
	if p.Premium, err = decimal.NewFromString(premium); err != nil {
		return entities.Policy{}, fmt.Errorf("invalid premium %q", premium)
	}
	if p.Coverage, err = decimal.NewFromString(coverage); err != nil {
		return entities.Policy{}, fmt.Errorf("invalid coverage %q", coverage)
	}
	if p.StartDate, err = time.Parse(time.DateOnly, start); err != nil {
		return entities.Policy{}, fmt.Errorf("invalid start date %q", start)
	}
	if end != "" {
		if p.EndDate, err = time.Parse(time.DateOnly, end); err != nil {
			return entities.Policy{}, fmt.Errorf("invalid end date %q", end)
		}
	}
	return p, nil
}

func printPolicy(p entities.Policy) {
	fmt.Printf("  %s %-18s %-9s %s %s..%s\n", p.ID, p.Type.Label(), p.Status.Label(), entities.FormatBRL(p.Premium), entities.FormatDate(p.StartDate), entities.FormatDate(p.EndDate))
}

func (a *app) policyDocCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "policy-doc <policyId>",
		Short: "Save the policy PDF, or its printable page when no PDF is available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.restore(cmd); err != nil {
				return err
			}
			p := entities.Policy{ID: args[0]}
			if a.client.PoliciesEnabled() {
				if full, err := a.client.GetPolicy(cmd.Context(), args[0]); err == nil {
					p = full
				}
			}
			return report(client.PolicyDocument(cmd.Context(), a.client, p, fileOpener{dir: dir}))
		},
	}
	cmd.Flags().StringVar(&dir, "out", ".", "Output directory")
	return cmd
}

func printProposal(p entities.Proposal) {
	fmt.Printf("  #%d %-18s %-10s %s %s\n", p.ApoliceID, p.ProdutoNome, p.Status.Label(), entities.FormatBRL(p.PremioBruto), p.ProdutoSegurado)
}

// fileOpener writes the document to dir and prints where it went.
type fileOpener struct {
	dir string
}

func (o fileOpener) Open(_ context.Context, doc client.Document) error {
	path := filepath.Join(o.dir, doc.Name)
	if err := os.WriteFile(path, doc.Body, 0o644); err != nil {
		return err
	}
	fmt.Printf("documento salvo em %s\n", path)
	return nil
}
