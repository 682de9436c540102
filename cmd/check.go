package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chloebrgr/docksched/config"
	"github.com/chloebrgr/docksched/core/model"
	"github.com/chloebrgr/docksched/core/registry"
	"github.com/chloebrgr/docksched/core/scheduling"
	"github.com/chloebrgr/docksched/infra/logger"
)

var (
	checkMission   string
	checkPort      string
	checkStart     string
	checkEnd       string
	checkTeam      string
	checkRefueling bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry-run a mission request against an empty schedule",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkMission, "mission", "", "mission identifier")
	checkCmd.Flags().StringVar(&checkPort, "port", "", "requested docking port")
	checkCmd.Flags().StringVar(&checkStart, "start", "", "window start (RFC3339)")
	checkCmd.Flags().StringVar(&checkEnd, "end", "", "window end (RFC3339)")
	checkCmd.Flags().StringVar(&checkTeam, "team", "", "responsible team")
	checkCmd.Flags().BoolVar(&checkRefueling, "refueling", false, "mission requires refueling")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	start, err := time.Parse(time.RFC3339, checkStart)
	if err != nil {
		return fmt.Errorf("parse start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, checkEnd)
	if err != nil {
		return fmt.Errorf("parse end: %w", err)
	}

	reg, err := registry.New(cfg.Registry.Ports)
	if err != nil {
		return fmt.Errorf("port registry: %w", err)
	}
	logg := logger.New("check-command")
	engine, err := scheduling.NewEngine(reg, cfg.Scheduling, nil, nil, nil, logg)
	if err != nil {
		return fmt.Errorf("scheduling engine: %w", err)
	}

	decision, err := engine.Schedule(model.MissionRequest{
		MissionID:         checkMission,
		RequestedPort:     checkPort,
		StartTime:         start,
		EndTime:           end,
		Team:              checkTeam,
		RefuelingRequired: checkRefueling,
	})
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(decision, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
