package control

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strings"

	"voxnote/internal/config"
	"voxnote/internal/doctor"

	"github.com/spf13/cobra"
)

func dial(cfg *config.Config) (net.Conn, error) {
	conn, err := net.Dial("unix", cfg.Paths.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to daemon (start it with 'voxnote start'): %w", err)
	}
	return conn, nil
}

// roundTrip sends one request and decodes a generic result.
func roundTrip(cfg *config.Config, req Request) (Result, error) {
	conn, err := dial(cfg)
	if err != nil {
		return Result{}, err
	}
	defer conn.Close()
	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return Result{}, err
	}
	var res Result
	if err := json.NewDecoder(conn).Decode(&res); err != nil {
		return Result{}, err
	}
	return res, nil
}

func fetchStatus(cfg *config.Config) (Status, error) {
	conn, err := dial(cfg)
	if err != nil {
		return Status{}, err
	}
	defer conn.Close()
	if err := json.NewEncoder(conn).Encode(Request{Op: "status"}); err != nil {
		return Status{}, err
	}
	var status Status
	if err := json.NewDecoder(conn).Decode(&status); err != nil {
		return Status{}, err
	}
	return status, nil
}

// printResult prints the localized message and turns a failed op into an
// exit error.
func printResult(cmd *cobra.Command, res Result) error {
	if res.Text != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	} else if res.Message != "" {
		fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	}
	if !res.OK {
		return fmt.Errorf("%s", res.Message)
	}
	return nil
}

// NewStatusCmd queries daemon status.
func NewStatusCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			status, err := fetchStatus(cfg)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(status)
			}
			fmt.Printf("running: %v\nuptime: %.1fs\nlang: %s (%s)\nstate: %s\n", status.Running, status.UptimeSec, status.Lang, status.Direction, status.StatusText)
			if status.Transcript != "" {
				fmt.Printf("transcript:\n%s\n", status.Transcript)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "output JSON")
	return cmd
}

// NewHealthCmd pings the control socket.
func NewHealthCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Control-socket liveness ping",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			res, err := roundTrip(cfg, Request{Op: "health"})
			if err != nil {
				return err
			}
			fmt.Println(res.Message)
			return nil
		},
	}
}

// NewTailLogCmd tails the main log file (simple last N lines).
func NewTailLogCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tail-log",
		Short: "Show last 50 log lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			return tailFile(cfg.Paths.LogPath, 50)
		},
	}
}

func tailFile(path string, n int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			fmt.Println(l)
		}
	}
	return nil
}

// NewDoctorCmd runs environment checks.
func NewDoctorCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check dependencies and config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgPath)
			if err != nil {
				return err
			}
			results := doctor.Run(cfg)
			exitCode := 0
			for _, r := range results {
				status := "ok"
				if !r.Pass {
					status = "fail"
					exitCode = 1
				}
				fmt.Printf("%-12s %-4s %s\n", r.Name, status, r.Detail)
			}
			if exitCode != 0 {
				return fmt.Errorf("doctor found issues")
			}
			return nil
		},
	}
}
