package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/noah-isme/academic-quality-api/internal/models"
	"github.com/noah-isme/academic-quality-api/pkg/apiclient"
)

type app struct {
	out         io.Writer
	profilePath string
	server      string
	profile     *profile
	client      *apiclient.Client
}

func newApp(out io.Writer) *app {
	return &app{out: out}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:  "qualityctl",
		Usage: "Inspect institutional quality analytics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "profile",
				Usage:       "Path of the TOML profile holding server and session",
				Value:       defaultProfilePath(),
				Sources:     cli.EnvVars("QUALITYCTL_PROFILE"),
				Destination: &a.profilePath,
			},
			&cli.StringFlag{
				Name:        "server",
				Usage:       "API base URL, overrides the profile",
				Sources:     cli.EnvVars("QUALITYCTL_SERVER"),
				Destination: &a.server,
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{
			a.cmdLogin(),
			a.cmdLogout(),
			a.cmdReport(),
			a.cmdDepartments(),
			a.cmdRisks(),
			a.cmdSync(),
			a.cmdExport(),
		},
	}
}

func (a *app) setup(ctx context.Context, _ *cli.Command) (context.Context, error) {
	p, err := loadProfile(a.profilePath)
	if err != nil {
		return ctx, err
	}
	if a.server != "" {
		p.Server = a.server
	}
	a.profile = p
	a.client = apiclient.New(apiclient.Config{BaseURL: p.Server, APIPrefix: p.APIPrefix})
	a.client.SetTokens(p.AccessToken, p.RefreshToken)
	return ctx, nil
}

// persist stores rotated tokens. ErrLoginRequired clears the saved session.
func (a *app) persist(callErr error) error {
	access, refresh := a.client.Tokens()
	if access != a.profile.AccessToken || refresh != a.profile.RefreshToken {
		a.profile.AccessToken, a.profile.RefreshToken = access, refresh
		if err := a.profile.save(a.profilePath); err != nil {
			return errors.Join(callErr, err)
		}
	}
	if errors.Is(callErr, apiclient.ErrLoginRequired) {
		return fmt.Errorf("%w: run `qualityctl login`", callErr)
	}
	return callErr
}

func (a *app) cmdLogin() *cli.Command {
	var email, password string
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate and save the session to the profile",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true, Destination: &email},
			&cli.StringFlag{Name: "password", Sources: cli.EnvVars("QUALITYCTL_PASSWORD"), Destination: &password},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			if password == "" {
				return errors.New("password is required (flag --password or QUALITYCTL_PASSWORD)")
			}
			res, err := a.client.Login(ctx, email, password)
			if err != nil {
				return err
			}
			a.profile.Email = email
			if err := a.persist(nil); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "logged in as %s (%s)\n", res.User.FullName, res.User.Role)
			return nil
		},
	}
}

func (a *app) cmdLogout() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Revoke the saved session",
		Action: func(ctx context.Context, _ *cli.Command) error {
			if err := a.persist(a.client.Logout(ctx)); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "logged out")
			return nil
		},
	}
}

func (a *app) cmdReport() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Print the integrated quality report",
		Action: func(ctx context.Context, _ *cli.Command) error {
			report, meta, err := a.client.Quality(ctx)
			if err := a.persist(err); err != nil {
				return err
			}
			printMetrics(a.out, report.Metrics, meta)
			fmt.Fprintln(a.out)
			printDepartments(a.out, report.Departments)
			fmt.Fprintln(a.out)
			printRisks(a.out, report.Risks)
			if n := len(report.Issues); n > 0 {
				fmt.Fprintf(a.out, "\n%d input issues, see /analytics/validation\n", n)
			}
			return nil
		},
	}
}

func (a *app) cmdDepartments() *cli.Command {
	var department string
	return &cli.Command{
		Name:  "departments",
		Usage: "Print per-department quality",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "department", Aliases: []string{"d"}, Destination: &department},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			departments, err := a.client.Departments(ctx, department)
			if err := a.persist(err); err != nil {
				return err
			}
			printDepartments(a.out, departments)
			return nil
		},
	}
}

func (a *app) cmdRisks() *cli.Command {
	var level string
	return &cli.Command{
		Name:  "risks",
		Usage: "Print triggered risk rules",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "level", Usage: "Low, Medium or High", Destination: &level},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			risks, err := a.client.Risks(ctx, models.RiskLevel(level))
			if err := a.persist(err); err != nil {
				return err
			}
			printRisks(a.out, risks)
			return nil
		},
	}
}

func (a *app) cmdSync() *cli.Command {
	var wait bool
	return &cli.Command{
		Name:  "sync",
		Usage: "Reload the dataset from the configured source",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "wait", Usage: "Wait for the job to finish", Destination: &wait},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			job, err := a.client.TriggerSync(ctx)
			if err == nil && wait {
				job, err = a.client.WaitJob(ctx, job.ID, time.Second)
			}
			if err := a.persist(err); err != nil {
				return err
			}
			printJob(a.out, job)
			return nil
		},
	}
}

func (a *app) cmdExport() *cli.Command {
	var format, out string
	return &cli.Command{
		Name:  "export",
		Usage: "Render the report as CSV or PDF and download it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: string(models.ReportFormatCSV), Destination: &format},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file, defaults to quality_report.<format>", Destination: &out},
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			job, err := a.client.TriggerReport(ctx, models.ReportFormat(format))
			if err == nil {
				job, err = a.client.WaitJob(ctx, job.ID, time.Second)
			}
			if err := a.persist(err); err != nil {
				return err
			}
			if job.Status != models.ETLStatusFinished || job.ResultURL == nil {
				printJob(a.out, job)
				return errors.New("export did not finish")
			}
			if out == "" {
				out = "quality_report." + format
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()
			n, err := a.client.Download(ctx, *job.ResultURL, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "wrote %s (%d bytes)\n", out, n)
			return nil
		},
	}
}
