package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/quenchwood/blend/internal/config"
	"github.com/quenchwood/blend/internal/errors"
	"github.com/quenchwood/blend/internal/gen"
	"github.com/quenchwood/blend/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "blend",
		Usage:   "Community voice profiler and post pipeline",
		Version: Version,
		Commands: []*cli.Command{
			ingestCmd(db),
			scoreCmd(),
			analyzeCmd(db, cfg),
			gateCmd(db),
			generateCmd(db, cfg),
			validateCmd(db),
			feedbackCmd(db),
			profileCmd(db),
			profilesCmd(db),
			patternsCmd(db),
			patternAddCmd(db),
			patternRemoveCmd(db),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// ingestCmd creates the ingest command.
func ingestCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "ingest",
		Usage: "Ingest collected posts (reads a JSON array of posts from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "community", Aliases: []string{"c"}, Required: true, Usage: "Community name"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("posts must be piped via stdin as a JSON array"))
			}

			raw, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			var posts []ops.IngestPost
			if err := json.Unmarshal([]byte(raw), &posts); err != nil {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid posts JSON: %v", err)))
			}

			output, err := ops.Ingest(c.Context, db, ops.IngestInput{
				Community: c.String("community"),
				Posts:     posts,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// scoreCmd creates the score command.
func scoreCmd() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "Score a single text through the feature scorer (reads text from stdin)",
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("text must be piped via stdin"))
			}

			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			output, err := ops.Score(ops.ScoreInput{Text: text})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// analyzeCmd creates the analyze command.
func analyzeCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Score stored posts and build the community profile",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "community", Aliases: []string{"c"}, Required: true, Usage: "Community name"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Analyze(c.Context, db, cfg, ops.AnalyzeInput{
				Community: c.String("community"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// gateCmd creates the gate command.
func gateCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "gate",
		Usage: "Decide which archetype and constraints a community allows",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "community", Aliases: []string{"c"}, Required: true, Usage: "Community name"},
			&cli.StringFlag{Name: "archetype", Aliases: []string{"a"}, Value: "Journey", Usage: "Requested post archetype: Journey|ProblemSolution|Feedback"},
			&cli.StringFlag{Name: "account-status", Value: "established", Usage: "Posting account status: new|established"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Gate(c.Context, db, ops.GateInput{
				Community:     c.String("community"),
				Archetype:     c.String("archetype"),
				AccountStatus: c.String("account-status"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// generateCmd creates the generate command.
func generateCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a conditioned draft for a community",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "community", Aliases: []string{"c"}, Required: true, Usage: "Community name"},
			&cli.StringFlag{Name: "topic", Aliases: []string{"t"}, Required: true, Usage: "Topic to write about"},
			&cli.StringFlag{Name: "archetype", Aliases: []string{"a"}, Value: "Journey", Usage: "Requested post archetype: Journey|ProblemSolution|Feedback"},
			&cli.StringFlag{Name: "account-status", Value: "established", Usage: "Posting account status: new|established"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the conditioning spec and prompts without calling the model"},
			&cli.BoolFlag{Name: "humanize", Usage: "Loosen the draft with casual-voice transforms before validation"},
		},
		Action: func(c *cli.Context) error {
			input := ops.GenerateInput{
				Community:     c.String("community"),
				Topic:         c.String("topic"),
				Archetype:     c.String("archetype"),
				AccountStatus: c.String("account-status"),
				DryRun:        c.Bool("dry-run"),
				Humanize:      c.Bool("humanize"),
			}

			var drafter ops.Drafter
			if !input.DryRun {
				client, err := gen.NewClient(cfg)
				if err != nil {
					return outputError(err)
				}
				drafter = client
			}

			output, err := ops.Generate(c.Context, db, cfg, drafter, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// validateCmd creates the validate command.
func validateCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check a draft against the community blacklist (reads text from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "community", Aliases: []string{"c"}, Required: true, Usage: "Community name"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("text must be piped via stdin"))
			}

			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			output, err := ops.Validate(c.Context, db, ops.ValidateInput{
				Community: c.String("community"),
				Text:      text,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// feedbackCmd creates the feedback command.
func feedbackCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "feedback",
		Usage: "Mine a rejected post for new blacklist patterns (reads text from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "community", Aliases: []string{"c"}, Required: true, Usage: "Community name"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("text must be piped via stdin"))
			}

			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			output, err := ops.Feedback(c.Context, db, ops.FeedbackInput{
				Community: c.String("community"),
				Text:      text,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// profileCmd creates the profile command.
func profileCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "profile",
		Usage:     "Show the stored profile for a community",
		ArgsUsage: "<community>",
		Action: func(c *cli.Context) error {
			community := c.Args().First()
			if community == "" {
				return outputError(errors.NewInvalidRequest("community argument is required"))
			}

			output, err := ops.ProfileGet(c.Context, db, ops.ProfileGetInput{Community: community})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// profilesCmd creates the profiles command.
func profilesCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "List all stored community profiles",
		Action: func(c *cli.Context) error {
			output, err := ops.ProfileList(c.Context, db)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// patternsCmd creates the patterns command.
func patternsCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "patterns",
		Usage: "List blacklist patterns for a community",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "community", Aliases: []string{"c"}, Required: true, Usage: "Community name"},
			&cli.BoolFlag{Name: "global", Usage: "Include global patterns"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.PatternList(c.Context, db, ops.PatternListInput{
				Community:     c.String("community"),
				IncludeGlobal: c.Bool("global"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// patternAddCmd creates the pattern-add command.
func patternAddCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "pattern-add",
		Usage: "Add a blacklist pattern for a community",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "community", Aliases: []string{"c"}, Required: true, Usage: "Community name"},
			&cli.StringFlag{Name: "pattern", Aliases: []string{"p"}, Required: true, Usage: "Pattern text"},
			&cli.StringFlag{Name: "category", Usage: "Pattern category (auto-categorized when omitted)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.PatternAdd(c.Context, db, ops.PatternAddInput{
				Community: c.String("community"),
				Pattern:   c.String("pattern"),
				Category:  c.String("category"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// patternRemoveCmd creates the pattern-remove command.
func patternRemoveCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "pattern-remove",
		Usage: "Remove a user-added blacklist pattern",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "community", Aliases: []string{"c"}, Required: true, Usage: "Community name"},
			&cli.StringFlag{Name: "pattern", Aliases: []string{"p"}, Required: true, Usage: "Pattern text"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.PatternRemove(c.Context, db, ops.PatternRemoveInput{
				Community: c.String("community"),
				Pattern:   c.String("pattern"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if blendErr, ok := err.(*errors.BlendError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", blendErr.Code, blendErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
