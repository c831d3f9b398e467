package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"taskboard/client"
	"taskboard/config"
	"taskboard/ui"

	"github.com/spf13/cobra"
)

// api is everything the commands need from the client data layer.
type api interface {
	ui.TaskAPI
	DeleteTask(ctx context.Context, id string) client.Result[client.DeleteResult]
	CreateUser(ctx context.Context, draft client.UserDraft) client.Result[client.User]
	GetUser(ctx context.Context, id string) client.Result[client.User]
}

var (
	errUsage = errors.New("usage")
	// errAlerted marks a failure the components already reported.
	errAlerted = errors.New("")
)

// commandError is a failure of a command that parsed correctly.
type commandError struct {
	err error
}

func (e *commandError) Error() string { return e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

// runE marks errors returned by fn as command failures so run can tell them
// apart from argument errors.
func runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &commandError{err: err}
		}
		return nil
	}
}

func alerterFor(cmd *cobra.Command) ui.Alerter {
	return ui.WriterAlerter{W: cmd.ErrOrStderr()}
}

func main() {
	cfg := config.LoadClient()

	var opts []client.Option
	if cfg.Language != "" {
		opts = append(opts, client.WithLanguage(cfg.Language))
	}
	c := client.New(cfg.APIURL, opts...)

	os.Exit(run(context.Background(), os.Args[1:], c, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code: 0 on
// success, 1 when the command failed, 2 on bad usage.
func run(ctx context.Context, args []string, c api, stdout, stderr io.Writer) int {
	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	var failed *commandError
	if errors.As(err, &failed) {
		if !errors.Is(err, errAlerted) {
			ui.WriterAlerter{W: stderr}.Alert(err.Error())
		}
		return 1
	}

	if !errors.Is(err, errUsage) {
		fmt.Fprintf(stderr, "error: %s\n", err)
	}
	if cmd == nil {
		cmd = root
	}
	fmt.Fprint(stderr, cmd.UsageString())
	return 2
}

func newRootCmd(c api) *cobra.Command {
	root := &cobra.Command{
		Use:   "taskcli",
		Short: "Manage tasks on a taskboard server",
		Long: `Manage tasks on a taskboard server.

Environment:
  TASKBOARD_URL   API root (default http://localhost:8080/api/v1)
  TASKBOARD_LANG  Accept-Language for error messages`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(*cobra.Command, []string) error {
			return errUsage
		},
	}

	root.AddCommand(
		newListCmd(c),
		newShowCmd(c),
		newCreateCmd(c),
		newEditCmd(c),
		newToggleCmd(c),
		newDeleteCmd(c),
		newUserCmd(c),
	)
	return root
}

func newListCmd(c api) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			list := ui.NewTaskList(c, alerterFor(cmd), "All tasks")
			list.Load(cmd.Context())
			list.Render(cmd.OutOrStdout())
			return nil
		}),
	}
}

func newShowCmd(c api) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			detail := ui.NewTaskDetail(c, alerterFor(cmd), args[0])
			ok := detail.Load(cmd.Context())
			detail.Render(cmd.OutOrStdout())
			if !ok {
				return errAlerted
			}
			return nil
		}),
	}
}

func newCreateCmd(c api) *cobra.Command {
	var title, description, assignee string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			alerter := alerterFor(cmd)
			form := ui.NewCreateForm(c, alerter)
			form.Title, form.Description, form.Assignee = title, description, assignee
			form.OnSubmit = func(task client.Task) {
				ui.NewTaskItem(c, alerter, task).Render(cmd.OutOrStdout())
			}
			return submitError(form.Submit(cmd.Context()), form)
		}),
	}

	cmd.Flags().StringVar(&title, "title", "", "task title")
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "assignee user id")
	return cmd
}

func newEditCmd(c api) *cobra.Command {
	var title, description, assignee string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task; only the given flags change",
		Args:  cobra.ExactArgs(1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			detail := ui.NewTaskDetail(c, alerterFor(cmd), args[0])
			if !detail.Load(cmd.Context()) {
				detail.Render(cmd.OutOrStdout())
				return errAlerted
			}

			form := detail.Edit()
			flags := cmd.Flags()
			if flags.Changed("title") {
				form.Title = title
			}
			if flags.Changed("description") {
				form.Description = description
			}
			if flags.Changed("assignee") {
				form.Assignee = assignee
			}
			if err := submitError(form.Submit(cmd.Context()), form); err != nil {
				return err
			}
			detail.Render(cmd.OutOrStdout())
			return nil
		}),
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&assignee, "assignee", "", "new assignee user id, empty to unassign")
	return cmd
}

// submitError turns a failed form submission into the error to report.
func submitError(ok bool, form *ui.TaskForm) error {
	if ok {
		return nil
	}
	if form.Errors.Title != "" {
		return errors.New(form.Errors.Title)
	}
	return errAlerted
}

func newToggleCmd(c api) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip the done mark of a task",
		Args:  cobra.ExactArgs(1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			result := c.GetTask(cmd.Context(), args[0])
			if !result.Success {
				return errors.New(result.Error)
			}
			item := ui.NewTaskItem(c, alerterFor(cmd), result.Data)
			if !item.Toggle(cmd.Context()) {
				return errAlerted
			}
			item.Render(cmd.OutOrStdout())
			return nil
		}),
	}
}

func newDeleteCmd(c api) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			result := c.DeleteTask(cmd.Context(), args[0])
			if !result.Success {
				return errors.New(result.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d task(s)\n", result.Data.DeletedCount)
			return nil
		}),
	}
}

func newUserCmd(c api) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
		RunE: func(*cobra.Command, []string) error {
			return errUsage
		},
	}
	cmd.AddCommand(newUserCreateCmd(c), newUserShowCmd(c))
	return cmd
}

func newUserCreateCmd(c api) *cobra.Command {
	var name, picture string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: runE(func(cmd *cobra.Command, _ []string) error {
			result := c.CreateUser(cmd.Context(), client.UserDraft{Name: name, ProfilePictureURL: picture})
			if !result.Success {
				return errors.New(result.Error)
			}
			renderUser(cmd.OutOrStdout(), result.Data)
			return nil
		}),
	}

	cmd.Flags().StringVar(&name, "name", "", "user name")
	cmd.Flags().StringVar(&picture, "picture", "", "profile picture URL")
	return cmd
}

func newUserShowCmd(c api) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: runE(func(cmd *cobra.Command, args []string) error {
			result := c.GetUser(cmd.Context(), args[0])
			if !result.Success {
				return errors.New(result.Error)
			}
			renderUser(cmd.OutOrStdout(), result.Data)
			return nil
		}),
	}
}

func renderUser(w io.Writer, user client.User) {
	fmt.Fprintf(w, "%s  (%s)\n", user.Name, user.ID)
	if user.ProfilePictureURL != "" {
		fmt.Fprintf(w, "    %s\n", user.ProfilePictureURL)
	}
}
