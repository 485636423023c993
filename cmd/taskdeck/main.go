// Package main implements taskdeck, a small CLI client for the task
// API server.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/lunarhall/taskdeck-api/internal/client"
	"github.com/lunarhall/taskdeck-api/internal/domain"
)

const defaultServerURL = "http://localhost:8080"

var rootCmd = &cobra.Command{
	Use:           "taskdeck",
	Short:         "taskdeck - manage tasks from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single task",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

var reopenCmd = &cobra.Command{
	Use:   "reopen <id>",
	Short: "Mark a completed task as pending again",
	Args:  cobra.ExactArgs(1),
	RunE:  runReopen,
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

var (
	serverFlag      string
	descriptionFlag string
	dueFlag         string
)

func init() {
	rootCmd.PersistentFlags().
		StringVarP(&serverFlag, "server", "s", "", "Server base URL (defaults to $TASKDECK_SERVER or "+defaultServerURL+")")

	addCmd.Flags().StringVarP(&descriptionFlag, "description", "d", "", "Task description")
	addCmd.Flags().StringVar(&dueFlag, "due", "", "Due date (YYYY-MM-DD or RFC 3339; defaults to today)")

	rootCmd.AddCommand(listCmd, getCmd, addCmd, doneCmd, reopenCmd, rmCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newClient builds the API client from the --server flag, the
// TASKDECK_SERVER environment variable, or the default URL.
func newClient() *client.Client {
	url := serverFlag
	if url == "" {
		url = os.Getenv("TASKDECK_SERVER")
	}
	if url == "" {
		url = defaultServerURL
	}
	return client.New(url)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task ID %q: expected a positive number", arg)
	}
	return id, nil
}

func runList(cmd *cobra.Command, args []string) error {
	tasks, err := newClient().List(context.Background())
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tDUE\tTITLE")
	for _, task := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			task.ID, task.Status, task.DueDate.Local().Format("2006-01-02"), task.Title)
	}
	return w.Flush()
}

func runGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	task, err := newClient().Get(context.Background(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:     %d\n", task.ID)
	fmt.Fprintf(out, "Title:  %s\n", task.Title)
	if task.Description != nil {
		fmt.Fprintf(out, "Desc:   %s\n", *task.Description)
	}
	fmt.Fprintf(out, "Status: %s\n", task.Status)
	fmt.Fprintf(out, "Due:    %s\n", task.DueDate.Local().Format(time.RFC1123))
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	params := client.CreateTaskParams{Title: args[0]}
	if descriptionFlag != "" {
		params.Description = &descriptionFlag
	}
	if dueFlag != "" {
		due, err := parseDueDate(dueFlag)
		if err != nil {
			return err
		}
		params.DueDate = due.Format(time.RFC3339)
	}

	task, err := newClient().Create(context.Background(), params)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created task %d: %s\n", task.ID, task.Title)
	return nil
}

func runDone(cmd *cobra.Command, args []string) error {
	return updateStatus(cmd, args[0], domain.TaskStatusCompleted)
}

func runReopen(cmd *cobra.Command, args []string) error {
	return updateStatus(cmd, args[0], domain.TaskStatusPending)
}

func updateStatus(cmd *cobra.Command, arg string, status domain.TaskStatus) error {
	id, err := parseID(arg)
	if err != nil {
		return err
	}

	updatedID, err := newClient().UpdateStatus(context.Background(), id, status)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Task %d marked as %s\n", updatedID, status)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	deletedID, err := newClient().Delete(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", deletedID)
	return nil
}

// parseDueDate accepts a bare date or a full RFC 3339 timestamp.
func parseDueDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid due date %q: expected YYYY-MM-DD or RFC 3339", value)
}
