package cli

import (
	"context"
	"fmt"
)

func (r *Runner) runNodes(ctx context.Context, app *App, args []string) error {
	const usage = "usage: vouchers nodes [list | create NAME | rename OLD NEW | delete [-yes] NAME]"

	sess, err := app.Session(ctx)
	if err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		list, err := app.Nodes.List(ctx, sess)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(r.Stdout, "No nodes yet. Create one with 'vouchers nodes create NAME'.")
			return nil
		}
		for _, n := range list {
			fmt.Fprintln(r.Stdout, n)
		}
	case "create":
		if len(args) != 1 {
			return usageError(usage)
		}
		name, err := app.Nodes.Create(ctx, sess, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(r.Stdout, "Created node %q\n", name)
	case "rename":
		if len(args) != 2 {
			return usageError(usage)
		}
		res, err := app.Nodes.Rename(ctx, sess, args[0], args[1])
		if err != nil {
			return err
		}
		r.ack(res, fmt.Sprintf("Renamed %q to %q", args[0], args[1]))
	case "delete":
		fs := r.flagSet("nodes delete")
		yes := fs.Bool("yes", false, "Skip the confirmation prompt")
		if err := parseFlags(fs, args); err != nil {
			return err
		}
		if fs.NArg() != 1 {
			return usageError(usage)
		}
		name := fs.Arg(0)
		if err := app.Nodes.Require(ctx, sess, name); err != nil {
			return err
		}
		if !*yes && !r.confirm(fmt.Sprintf("Delete node %q and all its transactions?", name)) {
			fmt.Fprintln(r.Stdout, "Cancelled.")
			return nil
		}
		res, err := app.Nodes.Delete(ctx, sess, name)
		if err != nil {
			return err
		}
		r.ack(res, fmt.Sprintf("Deleted node %q", name))
	default:
		return usageError(usage)
	}
	return nil
}
