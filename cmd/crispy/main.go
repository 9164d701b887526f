// Command crispy compiles melodic mini-notation and linear percussion
// notation into patterns and dispatches them to the external plugin
// listening on dispatch.BaseURL.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crispy-lang/crispy/internal/dispatch"
	"github.com/crispy-lang/crispy/internal/duration"
	"github.com/crispy-lang/crispy/internal/melody"
	"github.com/crispy-lang/crispy/internal/notenames"
	"github.com/crispy-lang/crispy/internal/pattern"
	"github.com/crispy-lang/crispy/internal/percussion"
)

var debug bool

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Fatalln(err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "crispy",
		Short: "Compile and dispatch melodic and percussion patterns",
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "log a MIDI hex rendering of every dispatched pattern")
	root.AddCommand(patCmd(), percCmd(), silenceCmd())
	return root
}

// patCmd reads "NAME = definition" lines from stdin, one melodic
// pattern per line, and dispatches every non-empty result.
func patCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pat",
		Short: "Compile melodic mini-notation lines from stdin and dispatch them",
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				name, definition, ok := strings.Cut(line, "=")
				if !ok {
					return fmt.Errorf("crispy pat: malformed line %q, expected NAME = definition", line)
				}
				p, err := melody.Compile(strings.TrimSpace(definition), duration.Bar)
				if err != nil {
					return fmt.Errorf("crispy pat: %q: %w", line, err)
				}
				if len(p.Events) == 0 {
					continue
				}
				p.Name = strings.TrimSpace(name)
				if err := dispatchPattern(p); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}
}

// percCmd reads a whole percussion block from stdin and dispatches
// every non-empty lane it compiles to.
func percCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "perc",
		Short: "Compile a percussion block from stdin and dispatch its lanes",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readAll(os.Stdin)
			if err != nil {
				return err
			}
			patterns, err := percussion.Compile(data)
			if err != nil {
				return fmt.Errorf("crispy perc: %w", err)
			}
			for _, p := range patterns {
				if len(p.Events) == 0 {
					continue
				}
				if err := dispatchPattern(p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func silenceCmd() *cobra.Command {
	var name string
	var notes bool
	cmd := &cobra.Command{
		Use:   "silence",
		Short: "Stop a named pattern, or every known note lane with --notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if notes {
				for _, n := range notenames.Names() {
					if err := dispatch.Stop(n); err != nil {
						log.Printf("crispy silence: %v", err)
					}
				}
				return nil
			}
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("crispy silence: --name or --notes is required")
			}
			return dispatch.Stop(strings.TrimSpace(name))
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "pattern name to stop")
	cmd.Flags().BoolVar(&notes, "notes", false, "stop every known note lane")
	return cmd
}

// dispatchPattern sends p to the plugin, logging a MIDI hex rendering
// first when --debug is set.
func dispatchPattern(p pattern.Pattern) error {
	if debug {
		for _, line := range dispatch.DebugHex(p) {
			log.Printf("crispy: %s %s", p.Name, line)
		}
	}
	return dispatch.Start(p)
}

func readAll(f *os.File) (string, error) {
	var sb strings.Builder
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteString("\n")
	}
	return sb.String(), scanner.Err()
}
