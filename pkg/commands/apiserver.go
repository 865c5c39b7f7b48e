package commands

import (
	"strings"

	"github.com/basalt-io/basalt-cms/pkg/apiserver"
	"github.com/basalt-io/basalt-cms/pkg/auth"
	"github.com/basalt-io/basalt-cms/pkg/backend"
	"github.com/basalt-io/basalt-cms/pkg/clock"
	"github.com/basalt-io/basalt-cms/pkg/db"
	"github.com/basalt-io/basalt-cms/pkg/geo"
	"github.com/basalt-io/basalt-cms/pkg/mail"
	"github.com/basalt-io/basalt-cms/pkg/version"
	"github.com/rancher/wrangler/pkg/signals"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

type apiServerCommand struct{}

func (s *apiServerCommand) Execute(c *cli.Context) error {
	ctx := signals.SetupSignalContext()

	log := logrus.WithField("command", "api-server")

	log.Infof("version: %v", version.Get())

	database, err := db.New(ctx, c.String("sql-dialect"), c.String("sql-dsn"), &gorm.Config{
		Logger: db.NewLogger(c.String("log-level")),
	})
	if err != nil {
		return err
	}

	authSvc := auth.NewService(database, c.String("jwt-secret"))
	if err := authSvc.EnsureAdmin(c.String("admin-username"), c.String("admin-password")); err != nil {
		return err
	}

	uploader, err := backend.NewUploader(backend.UploadConfig{
		Bucket:       c.String("s3-bucket"),
		Region:       c.String("s3-region"),
		LocalDir:     c.String("upload-dir"),
		MaxSizeBytes: c.Int64("max-upload-size"),
	})
	if err != nil {
		return err
	}

	notifier := mail.NewNotifier(mail.Config{
		Host:       c.String("smtp-host"),
		Port:       c.Int("smtp-port"),
		Username:   c.String("smtp-user"),
		Password:   c.String("smtp-password"),
		From:       c.String("mail-from"),
		FromName:   c.String("mail-from-name"),
		AdminEmail: c.String("admin-email"),
	})

	back := backend.NewBackend(database, clock.New(), geo.NewResolver(), uploader, notifier, backend.Options{
		VisitMaxAgeDays:      c.Int64("visit-max-age-days"),
		PurgeIntervalSeconds: c.Int64("purge-interval-seconds"),
	})

	apiServer := apiserver.NewAPIServer(ctx, log, apiserver.Config{
		Port:        c.Int("port"),
		CORSOrigins: splitCSV(c.String("cors-origins")),
		StaticDir:   c.String("static-dir"),
	})

	return apiServer.Start(back, authSvc)
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func serverCommand() *cli.Command {
	cmd := apiServerCommand{}

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Usage:   "Port for the HTTP Server Port",
			EnvVars: []string{"BASALT_PORT", "PORT"},
			Value:   8000,
		},
		&cli.StringFlag{
			Name:    "sql-dialect",
			Usage:   "The type of sql to use, sqlite or mysql",
			EnvVars: []string{"BASALT_SQL_DIALECT", "SQL_DIALECT"},
			Value:   "sqlite",
		},
		&cli.StringFlag{
			Name:    "sql-dsn",
			Usage:   "The DSN to use to connect to",
			EnvVars: []string{"BASALT_SQL_DSN", "SQL_DSN"},
			Value:   "file:basalt.sqlite?_pragma=foreign_keys(1)",
		},
		&cli.StringFlag{
			Name:    "jwt-secret",
			Usage:   "Secret used to sign admin tokens",
			EnvVars: []string{"BASALT_JWT_SECRET", "JWT_SECRET"},
			Value:   "change-me",
		},
		&cli.StringFlag{
			Name:    "admin-username",
			Usage:   "Username for the initial admin account",
			EnvVars: []string{"BASALT_ADMIN_USERNAME", "ADMIN_USERNAME"},
			Value:   "admin",
		},
		&cli.StringFlag{
			Name:    "admin-password",
			Usage:   "Password for the initial admin account, generated when empty",
			EnvVars: []string{"BASALT_ADMIN_PASSWORD", "ADMIN_PASSWORD"},
		},
		&cli.StringFlag{
			Name:    "cors-origins",
			Usage:   "Comma separated list of allowed CORS origins",
			EnvVars: []string{"BASALT_CORS_ORIGINS", "CORS_ORIGINS"},
			Value:   "http://localhost:3000",
		},
		&cli.StringFlag{
			Name:    "static-dir",
			Usage:   "Directory served under /static",
			EnvVars: []string{"BASALT_STATIC_DIR", "STATIC_DIR"},
			Value:   "static",
		},
		&cli.StringFlag{
			Name:    "upload-dir",
			Usage:   "Local directory for uploads when object storage is off",
			EnvVars: []string{"BASALT_UPLOAD_DIR", "UPLOAD_DIR"},
			Value:   "static/uploads",
		},
		&cli.Int64Flag{
			Name:    "max-upload-size",
			Usage:   "Maximum upload size in bytes",
			EnvVars: []string{"BASALT_MAX_UPLOAD_SIZE", "MAX_UPLOAD_SIZE"},
			Value:   10 << 20,
		},
		&cli.StringFlag{
			Name:    "s3-bucket",
			Usage:   "S3 bucket for uploads, empty disables object storage",
			EnvVars: []string{"BASALT_S3_BUCKET", "AWS_S3_BUCKET"},
		},
		&cli.StringFlag{
			Name:    "s3-region",
			Usage:   "S3 region for uploads",
			EnvVars: []string{"BASALT_S3_REGION", "AWS_REGION"},
			Value:   "us-east-1",
		},
		&cli.StringFlag{
			Name:    "smtp-host",
			Usage:   "SMTP host for inquiry notifications, empty disables them",
			EnvVars: []string{"SMTP_HOST"},
		},
		&cli.IntFlag{
			Name:    "smtp-port",
			Usage:   "SMTP port",
			EnvVars: []string{"SMTP_PORT"},
			Value:   587,
		},
		&cli.StringFlag{
			Name:    "smtp-user",
			Usage:   "SMTP username",
			EnvVars: []string{"SMTP_USER"},
		},
		&cli.StringFlag{
			Name:    "smtp-password",
			Usage:   "SMTP password",
			EnvVars: []string{"SMTP_PASSWORD"},
		},
		&cli.StringFlag{
			Name:    "mail-from",
			Usage:   "From address for notification mail",
			EnvVars: []string{"MAIL_FROM"},
			Value:   "noreply@localhost",
		},
		&cli.StringFlag{
			Name:    "mail-from-name",
			Usage:   "From display name for notification mail",
			EnvVars: []string{"MAIL_FROM_NAME"},
		},
		&cli.StringFlag{
			Name:    "admin-email",
			Usage:   "Address that receives inquiry notifications",
			EnvVars: []string{"ADMIN_EMAIL"},
		},
		&cli.Int64Flag{
			Name:    "visit-max-age-days",
			Usage:   "Purge visit records older than this many days, 0 keeps them forever",
			EnvVars: []string{"BASALT_VISIT_MAX_AGE_DAYS", "VISIT_MAX_AGE_DAYS"},
			Value:   0,
		},
		&cli.Int64Flag{
			Name:    "purge-interval-seconds",
			Usage:   "How often the visit purge daemon runs",
			EnvVars: []string{"BASALT_PURGE_INTERVAL_SECONDS", "PURGE_INTERVAL_SECONDS"},
			Value:   3600,
		},
	}

	return &cli.Command{
		Name:   "api-server",
		Usage:  "basalt api server",
		Action: cmd.Execute,
		Flags:  append(flags, GlobalFlags()...),
		Before: Before,
	}
}
