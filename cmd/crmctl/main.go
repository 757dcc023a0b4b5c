// Package main provides crmctl, the operator CLI for pocket-crm.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"pocket-crm/internal/config"
	"pocket-crm/internal/database"
	"pocket-crm/internal/features/audit"
	"pocket-crm/internal/features/backup"
	"pocket-crm/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "crmctl",
		Short:         "Operator tools for pocket-crm",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(tokenCmd(), backupCmd(), seedCmd())
	return cmd
}

func tokenCmd() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a bearer token signed with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			utils.SetSecret(cfg.JWTSecret)
			token, err := utils.GenerateToken(args[0], ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}

// restartNotice stands in for the server's reminder scheduler, which only a
// running server holds.
type restartNotice struct {
	log *zap.Logger
}

func (r restartNotice) Reload(ctx context.Context) error {
	r.log.Warn("restart the API server to reschedule reminders from the restored data")
	return nil
}

// withDatabase connects to Mongo and runs fn with a console logger.
func withDatabase(ctx context.Context, fn func(*database.MongodbDB, *zap.Logger) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}
	defer db.Client.Disconnect(context.Background())

	return fn(db, log)
}

// withBackupService runs fn against a backup service bound to the database.
func withBackupService(ctx context.Context, fn func(backup.BackupService) error) error {
	return withDatabase(ctx, func(db *database.MongodbDB, log *zap.Logger) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		local, err := backup.NewLocalStore(cfg.BackupPath)
		if err != nil {
			return err
		}
		cloud, err := backup.NewCloudStore(cfg)
		if err != nil {
			return err
		}

		auditService := audit.NewAuditService(audit.NewAuditRepository(db), log)
		service := backup.NewBackupService(backup.NewDataRepository(db), local, cloud, restartNotice{log: log}, auditService, cfg, log)
		return fn(service)
	})
}

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create, list, restore and upload backups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Write a new backup archive to BACKUP_PATH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackupService(cmd.Context(), func(s backup.BackupService) error {
				file, err := s.CreateBackup(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", file.Name, file.Size)
				return nil
			})
		},
	})

	var cloud bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List local backups, or cloud backups with --cloud",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackupService(cmd.Context(), func(s backup.BackupService) error {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				defer w.Flush()
				if cloud {
					objects, err := s.ListCloudBackups(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintln(w, "KEY\tSIZE\tMODIFIED")
					for _, o := range objects {
						fmt.Fprintf(w, "%s\t%d\t%s\n", o.Key, o.Size, o.LastModified.Format(time.RFC3339))
					}
					return nil
				}
				files, err := s.ListBackups(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "NAME\tSIZE\tMODIFIED")
				for _, f := range files {
					fmt.Fprintf(w, "%s\t%d\t%s\n", f.Name, f.Size, f.CreatedAt.Format(time.RFC3339))
				}
				return nil
			})
		},
	}
	list.Flags().BoolVar(&cloud, "cloud", false, "List the cloud bucket instead of BACKUP_PATH")
	cmd.AddCommand(list)

	var yes bool
	restore := &cobra.Command{
		Use:   "restore <name>",
		Short: "Replace all CRM data with a local backup archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("restore overwrites every collection; pass --yes to continue")
			}
			return withBackupService(cmd.Context(), func(s backup.BackupService) error {
				manifest, err := s.RestoreBackup(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				for _, name := range backup.Collections {
					fmt.Fprintf(cmd.OutOrStdout(), "%-14s %d\n", name, manifest.Collections[name])
				}
				return nil
			})
		},
	}
	restore.Flags().BoolVar(&yes, "yes", false, "Confirm the restore")
	cmd.AddCommand(restore)

	cmd.AddCommand(&cobra.Command{
		Use:   "upload <name>",
		Short: "Upload a local backup archive to the cloud bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackupService(cmd.Context(), func(s backup.BackupService) error {
				obj, err := s.UploadBackup(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), obj.Key)
				return nil
			})
		},
	})

	return cmd
}
