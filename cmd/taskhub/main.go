package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dalemusser/taskhub/internal/app/bootstrap"
	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Thin operator CLI over the coordinator. Interactive menus, table rendering,
// and calendars live outside this repository; this surface only exposes the
// coordinator's operations for scripting and inspection.
func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return errors.New("missing command")
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if err := bootstrap.ValidateConfig(cfg); err != nil {
		return err
	}
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sys, err := bootstrap.BuildSystem(cfg, logger)
	if err != nil {
		return err
	}

	cmd, rest := args[0], args[1:]
	save := func() error {
		if cfg.Autosave {
			return nil
		}
		return sys.Save()
	}

	switch cmd {
	case "adduser":
		fs := flag.NewFlagSet("adduser", flag.ExitOnError)
		name := fs.String("name", "", "display name")
		email := fs.String("email", "", "email address (unique)")
		fs.Parse(rest)
		u, err := sys.CreateUser(*name, *email)
		if err != nil {
			return err
		}
		fmt.Printf("created user %s <%s> (%s)\n", u.Name, u.Email, u.ID)
		return save()

	case "addtask":
		fs := flag.NewFlagSet("addtask", flag.ExitOnError)
		title := fs.String("title", "", "task title")
		desc := fs.String("desc", "", "description")
		due := fs.String("due", "", "due date, RFC 3339 (e.g. 2026-09-15T17:00:00Z)")
		owner := fs.String("owner", "", "owner email (optional)")
		prio := fs.String("priority", "low", "priority: low, medium, high")
		fs.Parse(rest)
		dueAt, err := time.Parse(time.RFC3339, *due)
		if err != nil {
			return fmt.Errorf("invalid -due: %w", err)
		}
		t, err := sys.CreateTask(*title, *desc, dueAt, *owner, models.Priority(*prio))
		if err != nil {
			return err
		}
		fmt.Printf("created task %q due %s (%s)\n", t.Title, t.DueAt.Format(time.RFC3339), t.ID)
		return save()

	case "assign":
		fs := flag.NewFlagSet("assign", flag.ExitOnError)
		task := fs.String("task", "", "task id")
		user := fs.String("user", "", "user id")
		fs.Parse(rest)
		if err := sys.AssignTask(*task, *user); err != nil {
			return err
		}
		return save()

	case "status":
		fs := flag.NewFlagSet("status", flag.ExitOnError)
		task := fs.String("task", "", "task id")
		status := fs.String("to", "", "new status: pending, in_progress, completed")
		fs.Parse(rest)
		if err := sys.ChangeStatus(*task, models.Status(*status)); err != nil {
			return err
		}
		return save()

	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		what := fs.String("what", "tasks", "users or tasks")
		fs.Parse(rest)
		switch *what {
		case "users":
			for _, u := range sys.Users() {
				fmt.Printf("%s  %s <%s>  %d task(s)\n", u.ID, u.Name, u.Email, len(u.AssignedTaskIDs))
			}
		case "tasks":
			for _, t := range sys.Tasks() {
				owner := t.OwnerID
				if owner == "" {
					owner = "-"
				}
				fmt.Printf("%s  [%s] %s  due %s  owner %s\n",
					t.ID, t.Status, t.Title, t.DueAt.Format("2006-01-02"), owner)
			}
		default:
			return fmt.Errorf("unknown -what %q", *what)
		}
		return nil

	case "search":
		fs := flag.NewFlagSet("search", flag.ExitOnError)
		term := fs.String("term", "", "search term")
		fs.Parse(rest)
		for _, t := range sys.SearchTasks(*term) {
			fmt.Printf("%s  [%s] %s\n", t.ID, t.Status, t.Title)
		}
		return nil

	case "stats":
		st := sys.Stats()
		fmt.Printf("users: %d (%d active)\n", st.TotalUsers, st.ActiveUsers)
		fmt.Printf("tasks: %d (pending %d, in_progress %d, completed %d)\n",
			st.TotalTasks, st.Pending, st.InProgress, st.Completed)
		fmt.Printf("completed: %.2f%%  overdue: %d  due soon: %d\n",
			st.PercentCompleted, st.Overdue, st.DueSoon)
		disk, err := sys.StorageStats()
		if err != nil {
			return err
		}
		fmt.Printf("disk: %d bytes (%d json, %d binary, %d backup file(s))\n",
			disk.TotalBytes, disk.JSONFiles, disk.BinaryFiles, disk.Backups)
		return nil

	case "save":
		return sys.Save()

	case "prune":
		removed, err := sys.PruneBackups()
		if err != nil {
			return err
		}
		fmt.Printf("removed %d backup(s)\n", removed)
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: taskhub <command> [flags]

commands:
  adduser  -name NAME -email EMAIL
  addtask  -title TITLE -due RFC3339 [-desc TEXT] [-owner EMAIL] [-priority P]
  assign   -task ID -user ID
  status   -task ID -to STATUS
  list     [-what users|tasks]
  search   -term TEXT
  stats
  save
  prune`)
}
