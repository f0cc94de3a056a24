package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hapticglove/host/glove"
	"hapticglove/host/serial"
	"hapticglove/protocol"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports present on this machine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serial.ListPorts()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(ports) == 0 {
			fmt.Fprintln(out, "No serial ports found")
			return nil
		}
		for _, p := range ports {
			fmt.Fprintln(out, p)
		}
		return nil
	},
}

var pulseCmd = &cobra.Command{
	Use:   "pulse <hand> <finger> <strength> <duration>",
	Short: "Send one pulse",
	Example: `  glove-host pulse both ring 0.8 0.3 --left 3 --right 4
  glove-host pulse left index 0.5 0.2 --dry-run --left 3 --right 4`,
	Args: cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := parsePulse(args)
		if err != nil {
			return err
		}

		ctrl, err := startController(cmd)
		if err != nil {
			return err
		}
		defer closeController(ctrl, logger)

		result, err := ctrl.ApplyFeedback(req)
		if err != nil {
			return err
		}

		printResult(cmd.OutOrStdout(), result)
		return nil
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive pulse shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := startController(cmd)
		if err != nil {
			return err
		}
		defer closeController(ctrl, logger)

		return runShell(ctrl, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// parsePulse builds a request from <hand> <finger> <strength> <duration>
func parsePulse(args []string) (protocol.PulseRequest, error) {
	var req protocol.PulseRequest

	if len(args) != 4 {
		return req, fmt.Errorf("expected <hand> <finger> <strength> <duration>, got %d arguments", len(args))
	}

	hand, err := protocol.ParseHand(args[0])
	if err != nil {
		return req, err
	}

	finger, err := protocol.ParseFingerLocation(args[1])
	if err != nil {
		return req, err
	}

	strength, err := strconv.ParseFloat(args[2], 32)
	if err != nil {
		return req, fmt.Errorf("invalid strength %q: %w", args[2], err)
	}

	duration, err := strconv.ParseFloat(args[3], 32)
	if err != nil {
		return req, fmt.Errorf("invalid duration %q: %w", args[3], err)
	}

	return protocol.PulseRequest{
		Hand:     hand,
		Location: finger,
		Strength: float32(strength),
		Duration: float32(duration),
	}, nil
}

func printResult(out io.Writer, result glove.FeedbackResult) {
	fmt.Fprintf(out, "left: %s, right: %s\n", result.Left, result.Right)
}

// runShell reads pulse commands until quit or end of input
func runShell(ctrl *glove.Controller, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]

		switch cmd {
		case "quit", "exit", "q":
			fmt.Fprintln(out, "Goodbye!")
			return nil

		case "help", "?":
			printHelp(out)

		case "status":
			status := ctrl.Status()
			fmt.Fprintf(out, "state: %s, left ready: %t, right ready: %t\n",
				status.State, status.LeftReady, status.RightReady)

		case "pulse", "p":
			req, err := parsePulse(parts[1:])
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			result, err := ctrl.ApplyFeedback(req)
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			printResult(out, result)

		default:
			fmt.Fprintf(out, "Unknown command: %s (type 'help' for available commands)\n", cmd)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "\nAvailable commands:")
	fmt.Fprintln(out, "  help                                   - Show this help message")
	fmt.Fprintln(out, "  status                                 - Show port readiness")
	fmt.Fprintln(out, "  pulse <hand> <finger> <strength> <dur> - Send a pulse (hand: left|right|both)")
	fmt.Fprintln(out, "  quit/exit/q                            - Exit the shell")
	fmt.Fprintln(out)
}
