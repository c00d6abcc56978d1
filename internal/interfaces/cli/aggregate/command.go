// Package aggregate exposes the on-demand metric computation CLI.
package aggregate

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"spyglass/internal/domain/tenant"
	"spyglass/internal/interfaces/cli/bootstrap"
	"spyglass/internal/shared/biztime"
)

var (
	env       string
	tenantSID string
	courseID  string
	date      string
	month     string
	overwrite bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Compute metrics on demand",
		Long:  `Compute daily or monthly metrics for one tenant, or sweep all tenants the way the scheduler does.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&tenantSID, "tenant", "t", "", "Tenant SID (tn_...)")
	cmd.PersistentFlags().BoolVar(&overwrite, "overwrite", false, "Recompute and replace existing records")

	cmd.AddCommand(
		newDailyCommand(),
		newMonthlyCommand(),
		newSweepCommand(),
	)

	return cmd
}

func newDailyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Compute daily metrics for a tenant and date",
		RunE:  runDaily,
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Date to compute (YYYY-MM-DD, default yesterday)")
	cmd.Flags().StringVar(&courseID, "course", "", "Restrict to one course (default: all courses plus the site rollup)")

	return cmd
}

func newMonthlyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Compute the site monthly metric for a tenant and month",
		RunE:  runMonthly,
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to compute (YYYY-MM, default previous month)")

	return cmd
}

func newSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run the daily sweep across every tenant",
		RunE:  runSweep,
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func resolveTenant(ctx context.Context, rt *bootstrap.Runtime) (*tenant.Tenant, error) {
	if tenantSID == "" {
		return nil, fmt.Errorf("--tenant is required")
	}
	t, err := rt.Tenants.FindBySID(ctx, tenantSID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("tenant %q not found", tenantSID)
	}
	return t, nil
}

func runDaily(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Setup(env, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signalContext()
	defer cancel()

	t, err := resolveTenant(ctx, rt)
	if err != nil {
		return err
	}

	dateFor := biztime.StartOfDayUTC(biztime.NowUTC().AddDate(0, 0, -1))
	if date != "" {
		dateFor, err = biztime.ParseDateInBizTimezone(date)
		if err != nil {
			return err
		}
	}

	if courseID != "" {
		metric, created, err := rt.CourseDaily.Execute(ctx, t, courseID, dateFor, overwrite)
		if err != nil {
			return err
		}
		fmt.Printf("course %s: active_users=%d created=%v\n", courseID, metric.Counters().ActiveUsers, created)
		return nil
	}

	courseKeys, err := rt.Resolver.CourseKeysForTenant(ctx, t)
	if err != nil {
		return err
	}
	for _, c := range courseKeys {
		if _, _, err := rt.CourseDaily.Execute(ctx, t, c, dateFor, overwrite); err != nil {
			return fmt.Errorf("course %q: %w", c, err)
		}
	}
	metric, created, err := rt.SiteDaily.Execute(ctx, t, dateFor, overwrite)
	if err != nil {
		return err
	}
	fmt.Printf("site: active_users=%d registered_users=%d created=%v (%d courses)\n",
		metric.Counters().ActiveUsers, metric.Counters().RegisteredUsers, created, len(courseKeys))
	return nil
}

func runMonthly(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Setup(env, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signalContext()
	defer cancel()

	t, err := resolveTenant(ctx, rt)
	if err != nil {
		return err
	}

	monthFor := biztime.PreviousMonth(biztime.NowUTC())
	if month != "" {
		monthFor, err = biztime.ParseDateInBizTimezone(month + "-01")
		if err != nil {
			return err
		}
	}

	metric, created, err := rt.FillMonth.Execute(ctx, t, monthFor, overwrite)
	if err != nil {
		return err
	}
	fmt.Printf("month %s: mau=%d created=%v\n",
		metric.MonthFor().Format("2006-01"), metric.MonthlyActiveUsers(), created)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Setup(env, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signalContext()
	defer cancel()

	return rt.Sweeper.AggregateDaily(ctx)
}
