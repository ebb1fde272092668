package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"

	"github.com/quckapp/audit/internal/archive"
	"github.com/quckapp/audit/internal/auditlog"
	"github.com/quckapp/audit/internal/common"
	"github.com/quckapp/audit/internal/config"
	"github.com/quckapp/audit/internal/export"
	"github.com/quckapp/audit/internal/handlers/api"
	"github.com/quckapp/audit/internal/ingest"
	"github.com/quckapp/audit/internal/middlewares"
	"github.com/quckapp/audit/internal/report"
	"github.com/quckapp/audit/internal/retention"
	"github.com/quckapp/audit/internal/search"
	"github.com/quckapp/audit/model"
	"github.com/quckapp/audit/params"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "audit - audit trail, retention and compliance reporting service"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name: "version",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
	}
	app.Action = run
}

func mustInitLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func mustInitDatabase(dbConfig config.MySQLConfig) *gorm.DB {
	db, err := gorm.Open(mysql.Open(dbConfig.Dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dbConfig.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if dbConfig.ReplicaDsn != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{mysql.Open(dbConfig.ReplicaDsn)},
		}))
		if err != nil {
			slog.Error("Failed to register read replica", "error", err)
			os.Exit(1)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Failed to access database pool", "error", err)
		os.Exit(1)
	}
	if dbConfig.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	}
	if dbConfig.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	}
	if dbConfig.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(dbConfig.ConnMaxIdleTime) * time.Second)
	}
	if dbConfig.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Second)
	}

	if err := db.AutoMigrate(model.Models...); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	return db
}

func mustInitRedis(redisCfg config.RedisConfig) redis.UniversalClient {
	opts, err := redis.ParseURL(redisCfg.URL)
	if err != nil {
		slog.Error("Invalid redis URL", "error", err)
		os.Exit(1)
	}
	if redisCfg.PoolSize > 0 {
		opts.PoolSize = redisCfg.PoolSize
	}
	if redisCfg.ClusterMode {
		return redis.NewUniversalClient(&redis.UniversalOptions{
			Addrs:    []string{opts.Addr},
			Username: opts.Username,
			Password: opts.Password,
			PoolSize: opts.PoolSize,
		})
	}
	return redis.NewClient(opts)
}

func mustInitSnowflakeNode() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		slog.Error("Failed to initialize snowflake node", "error", err)
		os.Exit(1)
	}
	return node
}

func mustInitReportRegistry(recordRepo auditlog.AuditRecordRepository) *report.Registry {
	registry, err := report.NewRegistry(
		report.NewLoginHistoryGenerator(recordRepo),
		report.NewAccessLogGenerator(recordRepo),
		report.NewUserActivityGenerator(recordRepo),
		report.NewSecurityAuditGenerator(recordRepo),
		report.NewAdminActionsGenerator(recordRepo),
		report.NewDataExportGenerator(recordRepo),
		report.NewComplianceSummaryGenerator(recordRepo),
	)
	if err != nil {
		slog.Error("Failed to build report generator registry", "error", err)
		os.Exit(1)
	}
	return registry
}

func run(ctx *cli.Context) error {
	config, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		return err
	}

	mustInitLogger(config.Debug || ctx.IsSet(debugFlag.Name))

	db := mustInitDatabase(config.MySQL)
	rdb := mustInitRedis(config.Redis)
	node := mustInitSnowflakeNode()

	// repositories
	var (
		recordRepo   = auditlog.NewAuditRecordRepository(db)
		archivedRepo = auditlog.NewArchivedRecordRepository(db)
		policyRepo   = retention.NewPolicyRepository(db)
		reportRepo   = report.NewReportRepository(db)
	)

	// services
	var (
		searchIndex      = search.NewRedisIndex(rdb)
		archiver         = archive.NewArchiver(recordRepo, archivedRepo)
		auditService     = auditlog.NewService(recordRepo, archivedRepo, searchIndex)
		retentionService = retention.NewService(policyRepo, recordRepo, searchIndex, archiver)
		registry         = mustInitReportRegistry(recordRepo)
		exporter         = export.NewCSVExporter(config.Report.ExportDir, node)
		reportService    = report.NewService(reportRepo, registry, exporter, config.Report.Workers, config.Report.QueueSize)
	)

	scheduler := retention.NewScheduler(retentionService, config.Retention.Schedule)
	if err := scheduler.Start(ctx.Context); err != nil {
		return err
	}
	defer scheduler.Stop()
	defer reportService.Pool().Shutdown()

	if config.Ingest.Enabled {
		consumer := ingest.NewConsumer(rdb, auditService, config.Ingest.Streams, config.Ingest.Group, config.Ingest.ConsumerName)
		if err := consumer.Start(ctx.Context); err != nil {
			return err
		}
		defer consumer.Stop()
	}

	router := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		BodyLimit:     params.ServerBodyLimit,
		IdleTimeout:   params.ServerIdleTimeout,
		ReadTimeout:   params.ServerReadTimeout,
		WriteTimeout:  params.ServerWriteTimeout,
		ErrorHandler:  middlewares.ErrorHandler,
	})

	router.Use(recover.New())
	router.Use(logger.New())
	router.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(config.AllowOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api.RegisterRoutes(
		router,
		api.NewAuditHandler(auditService),
		api.NewRetentionHandler(retentionService),
		api.NewReportHandler(reportService),
	)

	opsCtx, term := context.WithCancel(ctx.Context)
	done := make(chan struct{})
	go common.StartOpsServer(opsCtx, done, rdb, db)
	defer func() {
		term()
		<-done
	}()
	return router.Listen(config.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
