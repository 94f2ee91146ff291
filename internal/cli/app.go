// Package cli implements the interactive jobctl shell over the API client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jobdesk/jobdesk-be/internal/client"
	"github.com/jobdesk/jobdesk-be/internal/models"
)

// App wires the API client to interactive commands.
type App struct {
	api    *client.Client
	reader *bufio.Reader
	out    io.Writer
}

// NewApp creates a CLI app talking to the given server address.
func NewApp(baseURL string) *App {
	return &App{
		api:    client.New(baseURL),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run starts the read-eval-print loop. It exits on EOF, "quit", or when ctx
// is cancelled. Reads from stdin block, so cancellation is only noticed
// between commands.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "jobctl — type 'help' for commands")
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(a.out, "jobctl%s> ", a.status())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		if err := a.dispatch(ctx, parts[0], parts[1:]); err != nil {
			if err == errQuit {
				return
			}
			fmt.Fprintln(a.out, "error:", err)
		}
	}
}

var errQuit = fmt.Errorf("quit")

func (a *App) status() string {
	if a.api.Session().Active() {
		return " (logged in)"
	}
	return ""
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Fprintln(a.out, "commands: register, login, logout, whoami, jobs, alljobs, show <id>, add, update <id>, delete <id>, events, quit")
		return nil
	case "register":
		return a.register(ctx)
	case "login":
		return a.login(ctx)
	case "logout":
		a.api.Logout()
		return nil
	case "whoami":
		return a.whoami(ctx)
	case "jobs":
		return a.listJobs(ctx, false)
	case "alljobs":
		return a.listJobs(ctx, true)
	case "show":
		return a.showJob(ctx, args)
	case "add":
		return a.addJob(ctx)
	case "update":
		return a.updateJob(ctx, args)
	case "delete":
		return a.deleteJob(ctx, args)
	case "events":
		return a.events(ctx)
	case "exit", "quit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) credentials() (string, string, error) {
	email, err := promptLine(a.reader, "Email", a.out)
	if err != nil {
		return "", "", err
	}
	password, err := promptPassword(a.out)
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

func (a *App) register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	user, err := a.api.Register(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "registered %s (%s)\n", user.Email, user.ID)
	return nil
}

func (a *App) login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	if err := a.api.Login(ctx, email, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged in")
	return nil
}

func (a *App) whoami(ctx context.Context) error {
	id, err := a.api.Verify(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", id.Email, id.ID)
	return nil
}

func (a *App) listJobs(ctx context.Context, all bool) error {
	var jobs []models.Job
	var err error
	if all {
		jobs, err = a.api.AllJobs(ctx)
	} else {
		jobs, err = a.api.Jobs(ctx)
	}
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "no jobs")
		return nil
	}
	for _, job := range jobs {
		fmt.Fprintf(a.out, "%s  %-30s %-15s %-12s %s\n", job.ID, job.Title, job.Location, job.JobType, job.Salary)
	}
	return nil
}

func (a *App) showJob(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: show <id>")
	}
	job, err := a.api.GetJob(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s — %s\n%s\ncategory: %s  type: %s  location: %s  salary: %s\n",
		job.ID, job.Title, job.Description, job.Category, job.JobType, job.Location, job.Salary)
	return nil
}

func (a *App) promptFields() (models.JobFields, error) {
	var fields models.JobFields
	prompts := []struct {
		label string
		dst   *string
	}{
		{"Title", &fields.Title},
		{"Description", &fields.Description},
		{"Category", &fields.Category},
		{"Type", &fields.JobType},
		{"Location", &fields.Location},
		{"Salary", &fields.Salary},
	}
	for _, p := range prompts {
		value, err := promptLine(a.reader, p.label, a.out)
		if err != nil {
			return fields, err
		}
		*p.dst = value
	}
	return fields, nil
}

func (a *App) addJob(ctx context.Context) error {
	fields, err := a.promptFields()
	if err != nil {
		return err
	}
	job, err := a.api.CreateJob(ctx, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created %s\n", job.ID)
	return nil
}

func (a *App) updateJob(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: update <id>")
	}
	fields, err := a.promptFields()
	if err != nil {
		return err
	}
	job, err := a.api.UpdateJob(ctx, args[0], fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "updated %s\n", job.ID)
	return nil
}

func (a *App) deleteJob(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: delete <id>")
	}
	if err := a.api.DeleteJob(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "deleted")
	return nil
}

func (a *App) events(ctx context.Context) error {
	events, err := a.api.Events(ctx, 20)
	if err != nil {
		return err
	}
	for _, ev := range events {
		fmt.Fprintf(a.out, "%s  [%s] %s\n", ev.CreatedAt.Format("2006-01-02 15:04:05"), ev.Type, ev.Message)
	}
	return nil
}
