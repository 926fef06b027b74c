package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/teacherlms/internal/buildinfo"
	"github.com/dmitrijs2005/teacherlms/internal/client/config"
	"github.com/dmitrijs2005/teacherlms/internal/client/router"
)

// newAppFn builds the App behind every command. Tests replace it with an App
// over a fake API.
var newAppFn = NewApp

// NewRootCommand returns the lms command tree. cfg already holds defaults,
// the JSON file and the environment; its fields are bound to persistent
// flags so the command line has the last word.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lms",
		Short: "Teacher LMS command-line client",
		Long: `lms manages the learning content of a Teacher LMS account: sections,
uploaded files, downloads and the dashboard overview.

Run without a subcommand to start the interactive shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *App) error {
				return a.Shell(ctx)
			})
		},
	}
	cfg.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newShellCmd(cfg),
		newVersionCmd(),
		newLoginCmd(cfg),
		newLogoutCmd(cfg),
		newStatusCmd(cfg),
		newDashboardCmd(cfg),
		newSectionsCmd(cfg),
		newContentCmd(cfg),
	)
	return cmd
}

// withApp builds an App on the command's input and output, runs fn and
// closes the App.
func withApp(cmd *cobra.Command, cfg *config.Config, fn func(ctx context.Context, a *App) error) error {
	ctx := cmd.Context()
	a, err := newAppFn(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func newShellCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *App) error {
				return a.Shell(ctx)
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

func newLoginCmd(cfg *config.Config) *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *App) error {
				return a.login(ctx, strings.TrimSpace(email), passwordStdin)
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email (prompted when empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password as a line from stdin")
	return cmd
}

func newLogoutCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *App) error {
				return a.Logout(ctx)
			})
		},
	}
}

func newStatusCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session without contacting the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *App) error {
				return a.Status(ctx)
			})
		},
	}
}

func newDashboardCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show statistics and recent uploads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *App) error {
				return a.visit(ctx, router.DashboardPath)
			})
		},
	}
}

func newSectionsCmd(cfg *config.Config) *cobra.Command {
	list := func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, cfg, func(ctx context.Context, a *App) error {
			if err := a.signedIn(ctx); err != nil {
				return err
			}
			return a.Categories(ctx)
		})
	}

	cmd := &cobra.Command{
		Use:     "sections",
		Aliases: []string{"categories", "cats"},
		Short:   "List and manage sections",
		Args:    cobra.NoArgs,
		RunE:    list,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sections",
		Args:  cobra.NoArgs,
		RunE:  list,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name...>",
		Short: "Create a section",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *App) error {
				if err := a.signedIn(ctx); err != nil {
					return err
				}
				return a.AddCategory(ctx, strings.Join(args, " "))
			})
		},
	})

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a section and its content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *App) error {
				if err := a.signedIn(ctx); err != nil {
					return err
				}
				a.assumeYes = yes
				return a.DeleteCategory(ctx, args[0])
			})
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.AddCommand(del)

	return cmd
}

func newContentCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Work with the files of a section",
	}

	var filter string
	list := &cobra.Command{
		Use:   "list <section-id>",
		Short: "List the files of a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, cfg, func(ctx context.Context, a *App) error {
				if err := a.openCategory(ctx, args[0]); err != nil {
					return err
				}
				return a.Filter(ctx, filter)
			})
		},
	}
	list.Flags().StringVarP(&filter, "filter", "f", "all", "all, images, pdfs, ppts, videos or documents")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "upload <section-id> <file...>",
		Short: "Upload files to a section",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inSection(cmd, cfg, args[0], func(ctx context.Context, a *App) error {
				return a.Upload(ctx, args[1:])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "drop <section-id> <dir>",
		Short: "Upload every file directly inside a directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inSection(cmd, cfg, args[0], func(ctx context.Context, a *App) error {
				return a.Drop(ctx, args[1])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "download <section-id> <id...>",
		Short: "Download files into the download directory",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inSection(cmd, cfg, args[0], func(ctx context.Context, a *App) error {
				if len(args) == 2 {
					return a.Download(ctx, args[1])
				}
				if err := a.selectOnly(args[1:]); err != nil {
					return err
				}
				return a.BulkDownload(ctx)
			})
		},
	})

	var yes bool
	del := &cobra.Command{
		Use:   "delete <section-id> <id...>",
		Short: "Delete files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inSection(cmd, cfg, args[0], func(ctx context.Context, a *App) error {
				a.assumeYes = yes
				if len(args) == 2 {
					return a.Remove(ctx, args[1])
				}
				if err := a.selectOnly(args[1:]); err != nil {
					return err
				}
				return a.BulkDelete(ctx)
			})
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.AddCommand(del)

	cmd.AddCommand(&cobra.Command{
		Use:   "open <section-id> <id>",
		Short: "Open a file with the system viewer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return inSection(cmd, cfg, args[0], func(ctx context.Context, a *App) error {
				return a.OpenItem(ctx, args[1])
			})
		},
	})

	return cmd
}

// inSection opens section id and runs fn on it.
func inSection(cmd *cobra.Command, cfg *config.Config, id string, fn func(ctx context.Context, a *App) error) error {
	return withApp(cmd, cfg, func(ctx context.Context, a *App) error {
		if err := a.openCategory(ctx, id); err != nil {
			return fmt.Errorf("open section %s: %w", id, err)
		}
		return fn(ctx, a)
	})
}
