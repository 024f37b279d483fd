package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gonzoleeman/disc-golf-scoring-app/app"
	moneyservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/money/application"
	reportdomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/report/domain"
	roundservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/application"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
	"github.com/urfave/cli/v2"
)

func playersCommand() *cli.Command {
	return &cli.Command{
		Name:  "players",
		Usage: "list the roster",
		Action: withApp(true, func(c *cli.Context, a *app.App) error {
			players, err := a.RoundModule.RoundService.ListPlayers(c.Context)
			if err != nil {
				return err
			}
			return renderPlayers(players)
		}),
	}
}

func coursesCommand() *cli.Command {
	return &cli.Command{
		Name:  "courses",
		Usage: "list the courses",
		Action: withApp(true, func(c *cli.Context, a *app.App) error {
			courses, err := a.RoundModule.RoundService.ListCourses(c.Context)
			if err != nil {
				return err
			}
			return renderCourses(courses)
		}),
	}
}

// parseDay accepts the fixed layouts and natural language such as "last friday".
func parseDay(s string) (time.Time, error) {
	return reportdomain.ParseDate(s, time.Now())
}

func roundCommand() *cli.Command {
	return &cli.Command{
		Name:  "round",
		Usage: "schedule, score and inspect rounds",
		Subcommands: []*cli.Command{
			{
				Name:  "create",
				Usage: "schedule a round",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "course", Required: true, Usage: "course id"},
					&cli.StringFlag{Name: "date", Value: "today", Usage: "round date, e.g. 2015-01-12 or \"last monday\""},
					&cli.Int64SliceFlag{Name: "player", Aliases: []string{"p"}, Required: true, Usage: "participant id, repeatable"},
				},
				Action: withApp(true, func(c *cli.Context, a *app.App) error {
					day, err := parseDay(c.String("date"))
					if err != nil {
						return err
					}
					var ids []rounddomain.PlayerID
					for _, id := range c.Int64Slice("player") {
						ids = append(ids, rounddomain.PlayerID(id))
					}
					view, err := a.RoundModule.RoundService.CreateRound(c.Context, roundservice.CreateRoundRequest{
						CourseID:  rounddomain.CourseID(c.Int64("course")),
						Date:      day,
						PlayerIDs: ids,
					})
					if err != nil {
						return err
					}
					return renderRound(view)
				}),
			},
			{
				Name:  "list",
				Usage: "list rounds, optionally between two dates",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "from"},
					&cli.StringFlag{Name: "to"},
				},
				Action: withApp(true, func(c *cli.Context, a *app.App) error {
					var start, end time.Time
					var err error
					if v := c.String("from"); v != "" {
						if start, err = parseDay(v); err != nil {
							return err
						}
					}
					if v := c.String("to"); v != "" {
						if end, err = parseDay(v); err != nil {
							return err
						}
					}
					svc := a.RoundModule.RoundService
					rounds, err := svc.ListRounds(c.Context, start, end)
					if err != nil {
						return err
					}
					courses, err := svc.ListCourses(c.Context)
					if err != nil {
						return err
					}
					return renderRounds(rounds, courses)
				}),
			},
			{
				Name:      "show",
				Usage:     "show a round with its points",
				ArgsUsage: "ROUND_ID",
				Action: withApp(true, func(c *cli.Context, a *app.App) error {
					id, err := parseRoundID(c.Args().First())
					if err != nil {
						return err
					}
					view, err := a.RoundModule.RoundService.GetRound(c.Context, id)
					if err != nil {
						return err
					}
					return renderRound(view)
				}),
			},
			{
				Name:      "score",
				Usage:     "record raw scores and recalculate points",
				ArgsUsage: "ROUND_ID",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "score", Aliases: []string{"s"}, Required: true, Usage: "PLAYER:FRONT:BACK[:ACES[:EAGLES[:ACE_EAGLES]]], repeatable"},
				},
				Action: withApp(true, func(c *cli.Context, a *app.App) error {
					id, err := parseRoundID(c.Args().First())
					if err != nil {
						return err
					}
					var entries []roundservice.ScoreEntry
					for _, spec := range c.StringSlice("score") {
						e, err := parseScore(spec)
						if err != nil {
							return err
						}
						entries = append(entries, e)
					}
					res, err := a.RoundModule.RoundService.RecordScores(c.Context, id, entries)
					if err != nil {
						return err
					}
					return renderScoreResult(res)
				}),
			},
			{
				Name:      "import",
				Usage:     "import a CSV, TSV or XLSX scorecard",
				ArgsUsage: "ROUND_ID FILE",
				Action: withApp(true, func(c *cli.Context, a *app.App) error {
					id, err := parseRoundID(c.Args().Get(0))
					if err != nil {
						return err
					}
					path := c.Args().Get(1)
					data, err := os.ReadFile(path)
					if err != nil {
						return fmt.Errorf("failed to read scorecard: %w", err)
					}
					res, err := a.RoundModule.RoundService.ImportScorecard(c.Context, id, filepath.Base(path), data)
					if err != nil {
						return err
					}
					return renderScoreResult(res)
				}),
			},
			{
				Name:      "reschedule",
				Usage:     "move a round to another day or course",
				ArgsUsage: "ROUND_ID",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "course", Usage: "new course id; defaults to the current one"},
					&cli.StringFlag{Name: "date", Usage: "new date; defaults to the current one"},
				},
				Action: withApp(true, func(c *cli.Context, a *app.App) error {
					id, err := parseRoundID(c.Args().First())
					if err != nil {
						return err
					}
					svc := a.RoundModule.RoundService
					current, err := svc.GetRound(c.Context, id)
					if err != nil {
						return err
					}
					req := roundservice.RescheduleRequest{RoundID: id, CourseID: current.Round.CourseID, Date: current.Round.Day()}
					if c.IsSet("course") {
						req.CourseID = rounddomain.CourseID(c.Int64("course"))
					}
					if v := c.String("date"); v != "" {
						if req.Date, err = parseDay(v); err != nil {
							return err
						}
					}
					view, err := svc.RescheduleRound(c.Context, req)
					if err != nil {
						return err
					}
					return renderRound(view)
				}),
			},
		},
	}
}

func moneyCommand() *cli.Command {
	return &cli.Command{
		Name:  "money",
		Usage: "record and inspect money rounds",
		Subcommands: []*cli.Command{
			{
				Name:      "settle",
				Usage:     "record a money round; stage codes are 0 not played, 1-6 winning attempt, 7 house",
				ArgsUsage: "ROUND_ID",
				Flags: []cli.Flag{
					&cli.IntSliceFlag{Name: "stages", Required: true, Usage: "stage codes, e.g. 2,7,0"},
					&cli.StringSliceFlag{Name: "player", Aliases: []string{"p"}, Required: true, Usage: "PLAYER[:STAGE1[:STAGE2[:STAGE3]]] winnings, repeatable"},
				},
				Action: withApp(true, func(c *cli.Context, a *app.App) error {
					id, err := parseRoundID(c.Args().First())
					if err != nil {
						return err
					}
					stages, err := parseStages(c.IntSlice("stages"))
					if err != nil {
						return err
					}
					req := moneyservice.SettleRequest{RoundID: id, Stages: stages}
					for _, spec := range c.StringSlice("player") {
						w, err := parseWinnings(spec)
						if err != nil {
							return err
						}
						req.Winnings = append(req.Winnings, w)
					}
					settlement, err := a.MoneyModule.MoneyService.SettleMoneyRound(c.Context, req)
					if err != nil {
						return err
					}
					players, err := a.RoundModule.RoundService.ListPlayers(c.Context)
					if err != nil {
						return err
					}
					return renderSettlement(settlement, players)
				}),
			},
			{
				Name:      "show",
				Usage:     "show a stored money round",
				ArgsUsage: "ROUND_ID",
				Action: withApp(true, func(c *cli.Context, a *app.App) error {
					id, err := parseRoundID(c.Args().First())
					if err != nil {
						return err
					}
					settlement, err := a.MoneyModule.MoneyService.GetMoneyRound(c.Context, id)
					if err != nil {
						return err
					}
					players, err := a.RoundModule.RoundService.ListPlayers(c.Context)
					if err != nil {
						return err
					}
					return renderSettlement(settlement, players)
				}),
			},
		},
	}
}
