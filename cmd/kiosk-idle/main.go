// kiosk-idle runs the bakery kiosk's idle attract screen: a seeker collecting
// pastries while chasers roam the floor.
//
// Usage:
//
//	kiosk-idle list               - List available variants
//	kiosk-idle play <id>          - Run the idle screen in this terminal
//	kiosk-idle serve              - Serve the idle screen to remote kiosks over SSH
//	kiosk-idle stream <id>        - Run headless and stream snapshots over WebSocket
//	kiosk-idle simulate <id>      - Run headless for N ticks and print a summary
//	kiosk-idle scores [id]        - Show recorded runs
//	kiosk-idle config             - Print the attract configuration
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible sessions
//	--db <path>     - Set database path (default: ~/.kiosk-idle/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the attract variants
	_ "github.com/vovakirdan/kiosk-idle/internal/games/attract"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kiosk-idle",
	Short: "Kiosk Idle - the bakery attract screen",
	Long: `Kiosk Idle runs the attract screen shown while the bakery kiosk waits
for a customer: a seeker wanders the shop floor collecting pastries while
chasers roam around, and a special cake turns the tables for a while.

Available commands:
  list      - Show available variants
  play      - Run the idle screen in this terminal
  serve     - Start SSH server for remote kiosks
  stream    - Headless run streamed over WebSocket
  simulate  - Headless run with a summary
  scores    - View recorded runs
  config    - Print the attract configuration

Examples:
  kiosk-idle list
  kiosk-idle play attract
  kiosk-idle serve --ssh :2222
  kiosk-idle stream attract --addr :8080
  kiosk-idle simulate attract --ticks 36000 --seed 7
  kiosk-idle scores attract`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.kiosk-idle/scores.db", "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
}
