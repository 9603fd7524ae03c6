package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tripbudget/internal/cli"
	"github.com/theirongolddev/tripbudget/internal/config"
	"github.com/theirongolddev/tripbudget/internal/model"
	"github.com/theirongolddev/tripbudget/internal/store"
)

var snapshotCmd = &cobra.Command{
	Use:     "snapshot",
	Aliases: []string{"snap"},
	Short:   "Save and compare budget scenarios",
	RunE:    runSnapshotList,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save NAME",
	Short: "Save the current trip and its budget (replaces a snapshot of the same name)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotSave,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved snapshots, newest first",
	RunE:  runSnapshotList,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show NAME|ID",
	Short: "Recompute a snapshot and compare it with the current trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotShow,
}

var snapshotRmCmd = &cobra.Command{
	Use:   "rm NAME|ID",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotRm,
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore NAME|ID",
	Short: "Overwrite the trip file with a snapshot's trip",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotRestore,
}

func init() {
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotListCmd, snapshotShowCmd, snapshotRmCmd, snapshotRestoreCmd)
	rootCmd.AddCommand(snapshotCmd)
}

// withStore opens the snapshot database for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, s *store.Store) error) error {
	s, err := store.Open(config.SnapshotDBPath())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return fn(cmd.Context(), s)
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	c, err := loadAndCompute()
	if err != nil {
		return err
	}
	return withStore(cmd, func(ctx context.Context, s *store.Store) error {
		snap, err := s.Save(ctx, args[0], c.Trip, c.Result)
		if err != nil {
			return err
		}
		logger.Debug().Str("id", snap.ID).Str("name", snap.Name).Msg("snapshot saved")
		return emit(snap, func() {
			fmt.Printf("  Saved snapshot %q (%s)\n", snap.Name, snap.ID)
			fmt.Printf("  Total cost %s, net profit %s\n",
				money(snap.TotalCost, c.Conv), cli.RenderSigned(snap.NetProfit, money(snap.NetProfit, c.Conv)))
		})
	})
}

func runSnapshotList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, s *store.Store) error {
		snaps, err := s.List(ctx)
		if err != nil {
			return err
		}
		total, err := s.Count(ctx)
		if err != nil {
			return err
		}
		return emit(snaps, func() {
			if len(snaps) == 0 {
				fmt.Println("  No snapshots yet. Save one with `tripbudget snapshot save NAME`.")
				return
			}
			rows := make([][]string, 0, len(snaps))
			for _, sn := range snaps {
				rows = append(rows, []string{
					sn.Name,
					sn.CreatedAt.Local().Format("2006-01-02 15:04"),
					fmt.Sprintf("%d+%d", sn.Students, sn.Mentors),
					sn.Lodging,
					cli.FormatNumber(int64(sn.TotalCost)),
					cli.RenderSigned(sn.NetProfit, cli.FormatNumber(int64(sn.NetProfit))),
				})
			}
			fmt.Println()
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   fmt.Sprintf("Snapshots (%d)", total),
				Headers: []string{"Name", "Saved", "Group", "Lodging", "Total cost", "Net profit"},
				Rows:    rows,
			}))
			fmt.Println()
		})
	})
}

// snapshotView is a snapshot recomputed under the current engine next to
// the current trip's figures.
type snapshotView struct {
	Snapshot store.Snapshot     `json:"snapshot" yaml:"snapshot"`
	Result   model.BudgetResult `json:"result" yaml:"result"`
	Drifted  bool               `json:"drifted" yaml:"drifted"`
	Current  model.BudgetResult `json:"current" yaml:"current"`
	ShownAt  time.Time          `json:"shown_at" yaml:"shown_at"`
	TripFile string             `json:"trip_file" yaml:"trip_file"`
}

func runSnapshotShow(cmd *cobra.Command, args []string) error {
	cur, err := loadAndCompute()
	if err != nil {
		return err
	}
	return withStore(cmd, func(ctx context.Context, s *store.Store) error {
		snap, err := s.Get(ctx, args[0])
		if err != nil {
			return err
		}
		then := compute(snap.Trip)
		view := snapshotView{
			Snapshot: snap,
			Result:   then.Result,
			Drifted:  then.Result.TotalCost != snap.TotalCost || then.Result.NetProfit != snap.NetProfit,
			Current:  cur.Result,
			ShownAt:  time.Now(),
			TripFile: flagTripFile,
		}
		return emit(view, func() { printSnapshot(view, then, cur) })
	})
}

func printSnapshot(v snapshotView, then, cur computed) {
	base := then.Conv.Base
	m := func(x float64) string { return cli.FormatMoney(x, base) }
	row := func(label string, a, b float64) []string {
		return []string{label, m(a), m(b), cli.FormatDelta(b, a, base)}
	}

	rows := make([][]string, 0, 16)
	curLines := cur.Result.Costs.Lines()
	for i, line := range then.Result.Costs.Lines() {
		rows = append(rows, row(line.Category, line.Total, curLines[i].Total))
	}
	rows = append(rows, cli.Separator,
		row("Total cost", then.Result.TotalCost, cur.Result.TotalCost),
		row("Revenue", then.Result.Revenue.Total, cur.Result.Revenue.Total),
		row("Gross profit", then.Result.GrossProfit, cur.Result.GrossProfit),
		row("Net profit", then.Result.NetProfit, cur.Result.NetProfit),
		row("Break-even", then.Result.BreakEvenPrice, cur.Result.BreakEvenPrice),
	)

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title: fmt.Sprintf("%s (%s) vs current trip", v.Snapshot.Name,
			v.Snapshot.CreatedAt.Local().Format("2006-01-02 15:04")),
		Headers: []string{"", "Snapshot", "Current", "Change"},
		Rows:    rows,
	}))
	if v.Drifted {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("stored total was %s; the engine now gives %s",
			m(v.Snapshot.TotalCost), m(then.Result.TotalCost))))
	}
	fmt.Println()
}

func runSnapshotRm(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, s *store.Store) error {
		if err := s.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("  Deleted snapshot %s\n", args[0])
		return nil
	})
}

func runSnapshotRestore(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, s *store.Store) error {
		snap, err := s.Get(ctx, args[0])
		if err != nil {
			return err
		}
		if err := saveTrip(snap.Trip); err != nil {
			return err
		}
		fmt.Printf("  Restored %q into %s\n", snap.Name, flagTripFile)
		return nil
	})
}
