package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// ErrUnknownMigrateAction is returned by RunMigrate for an unrecognised action.
var ErrUnknownMigrateAction = errors.New("unknown migrate action")

// RunMigrate handles the 'migrate' subcommand against the store at dbPath.
// Actions are up, down and status; progress is written to w.
func RunMigrate(w io.Writer, dbPath string, args []string) error {
	if len(args) < 1 {
		PrintMigrateHelp(w)
		return errors.New("migrate: missing action")
	}
	action := args[0]
	if action == "help" {
		PrintMigrateHelp(w)
		return nil
	}

	s, err := OpenDB(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	migrations := Migrations()

	switch action {
	case "up":
		fmt.Fprintln(w, "Running migrations...")
		if err := s.MigrateUp(migrations); err != nil {
			return err
		}
	case "down":
		fmt.Fprintln(w, "Rolling back one migration...")
		if err := s.MigrateDown(migrations); err != nil {
			return err
		}
	case "status":
	default:
		PrintMigrateHelp(w)
		return fmt.Errorf("%w: %s", ErrUnknownMigrateAction, action)
	}
	return printMigrateStatus(w, s, migrations)
}

func printMigrateStatus(w io.Writer, s *Store, migrations fs.FS) error {
	version, dirty, err := s.MigrateVersion(migrations)
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	fmt.Fprintf(w, "Current version: %d (dirty: %v)\n", version, dirty)
	if dirty {
		fmt.Fprintln(w, "WARNING: a migration failed mid-execution; inspect the database before recording again.")
	}
	return nil
}

// PrintMigrateHelp writes usage for the migrate subcommand.
func PrintMigrateHelp(w io.Writer) {
	fmt.Fprintln(w, `Usage: modelboard [-store path] migrate <action>

Actions:
  up       Apply all pending migrations
  down     Roll back the most recent migration
  status   Show the current schema version
  help     Show this help`)
}
