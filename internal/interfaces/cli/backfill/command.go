// Package backfill exposes the historical backfill CLI.
package backfill

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"spyglass/internal/domain/tenant"
	"spyglass/internal/interfaces/cli/bootstrap"
)

var (
	env       string
	tenantSID string
	overwrite bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Historical backfill tools",
		Long:  `Fill historical monthly metrics, refresh enrollment snapshots and learner progress, and run the one-time activity cutover.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&tenantSID, "tenant", "t", "", "Tenant SID (tn_...), omit to process every tenant")

	cmd.AddCommand(
		newMonthlyCommand(),
		newEnrollmentsCommand(),
		newProgressCommand(),
		newActivityCutoverCommand(),
	)

	return cmd
}

func newMonthlyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Backfill site monthly metrics from the earliest recorded activity",
		RunE:  runMonthly,
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Recompute months that already have a record")

	return cmd
}

func newEnrollmentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "enrollments",
		Short: "Refresh the denormalized enrollment snapshots",
		RunE:  runEnrollments,
	}
}

func newProgressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Refresh learner progress on the latest monthly records",
		RunE:  runProgress,
	}
}

func newActivityCutoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activity-cutover",
		Short: "Seed last-course-activity timestamps on user profiles",
		Long:  `One-time migration: stamps every user that has recorded activity with the timestamp of their most recent record. Safe to re-run.`,
		RunE:  runActivityCutover,
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// targetTenants returns the tenant named by --tenant, or every tenant when
// the flag is unset.
func targetTenants(ctx context.Context, rt *bootstrap.Runtime) ([]*tenant.Tenant, error) {
	if tenantSID != "" {
		t, err := rt.Tenants.FindBySID(ctx, tenantSID)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, fmt.Errorf("tenant %q not found", tenantSID)
		}
		return []*tenant.Tenant{t}, nil
	}
	return rt.Tenants.List(ctx)
}

func runMonthly(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Setup(env, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signalContext()
	defer cancel()

	tenants, err := targetTenants(ctx, rt)
	if err != nil {
		return err
	}

	for _, t := range tenants {
		results, err := rt.BackfillMonthly.Execute(ctx, t, overwrite)
		if err != nil {
			return fmt.Errorf("tenant %s: %w", t.SID(), err)
		}
		created := 0
		for _, r := range results {
			if r.Created {
				created++
			}
		}
		fmt.Printf("tenant %s: %d months processed, %d created\n", t.SID(), len(results), created)
	}
	return nil
}

func runEnrollments(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Setup(env, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signalContext()
	defer cancel()

	tenants, err := targetTenants(ctx, rt)
	if err != nil {
		return err
	}

	for _, t := range tenants {
		results, failures, err := rt.BackfillEnrollment.Execute(ctx, t)
		if err != nil {
			return fmt.Errorf("tenant %s: %w", t.SID(), err)
		}
		fmt.Printf("tenant %s: %d snapshots refreshed, %d failed\n", t.SID(), len(results), len(failures))
		for _, f := range failures {
			fmt.Printf("  failed: user=%d course=%s: %v\n", f.UserID, f.CourseID, f.Err)
		}
	}
	return nil
}

func runProgress(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Setup(env, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signalContext()
	defer cancel()

	tenants, err := targetTenants(ctx, rt)
	if err != nil {
		return err
	}

	for _, t := range tenants {
		updated, skipped, failures, err := rt.BackfillProgress.Execute(ctx, t)
		if err != nil {
			return fmt.Errorf("tenant %s: %w", t.SID(), err)
		}
		fmt.Printf("tenant %s: %d updated, %d skipped, %d failed\n", t.SID(), updated, skipped, len(failures))
	}
	return nil
}

func runActivityCutover(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Setup(env, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := signalContext()
	defer cancel()

	updated, err := rt.ActivityCutover.Execute(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("activity cutover: %d profiles updated\n", updated)
	return nil
}
