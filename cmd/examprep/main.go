package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/xxxsen/examprep/internal/ai"
	"github.com/xxxsen/examprep/internal/config"
	"github.com/xxxsen/examprep/internal/curriculum"
	"github.com/xxxsen/examprep/internal/document"
	"github.com/xxxsen/examprep/internal/filestore"
	"github.com/xxxsen/examprep/internal/gencache"
	"github.com/xxxsen/examprep/internal/handler"
	"github.com/xxxsen/examprep/internal/job"
	"github.com/xxxsen/examprep/internal/middleware"
	"github.com/xxxsen/examprep/internal/model"
	"github.com/xxxsen/examprep/internal/render"
	"github.com/xxxsen/examprep/internal/repo"
	"github.com/xxxsen/examprep/internal/schedule"
	"github.com/xxxsen/examprep/internal/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "examprep",
		Short: "exam study material backend",
	}
	rootCmd.AddCommand(newRunCmd(), newRenderCmd())

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func newRunCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run examprep server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	return cmd
}

func buildGenerator(ctx context.Context, cfg config.AIConfig, cacheCfg gencache.Config) (ai.IGenerator, error) {
	providers := append([]config.ProviderConfig{cfg.ProviderConfig}, cfg.Fallbacks...)
	entries := make([]ai.GeneratorEntry, 0, len(providers))
	for _, pc := range providers {
		args := pc.Data
		if args == nil {
			args = map[string]interface{}{}
		}
		p, err := ai.NewProvider(pc.Provider, args)
		if err != nil {
			return nil, fmt.Errorf("init ai provider %s: %w", pc.Provider, err)
		}
		entries = append(entries, ai.GeneratorEntry{Name: p.Name(), Generator: ai.NewGenerator(p, pc.Model)})
	}
	return gencache.Wrap(ctx, ai.NewGroupGenerator(entries), cacheCfg)
}

func buildAssembler(rcfg render.Config, store filestore.Store) (*document.Assembler, error) {
	rasterizer, err := render.New(rcfg)
	if err != nil {
		return nil, fmt.Errorf("init rasterizer: %w", err)
	}
	renderer := &render.MindMapRenderer{Diagram: rasterizer, Tree: render.NewTreeRenderer(rcfg.Scale)}
	return document.NewAssembler(renderer, store), nil
}

func runServer(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logutil.GetLogger(ctx)
	log.Info("starting server",
		zap.Int("port", cfg.Port),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("rasterizer", cfg.Rasterizer.Type),
		zap.String("staging", cfg.Staging.Type),
		zap.String("gen_cache", cfg.GenCache.Type),
	)

	gen, err := buildGenerator(ctx, cfg.AI, cfg.GenCache)
	if err != nil {
		return err
	}
	client := ai.NewClient(gen, ai.ClientConfig{
		Timeout:        cfg.AI.Timeout,
		StreamTimeout:  cfg.AI.StreamTimeout,
		FragmentBuffer: cfg.AI.FragmentBuffer,
	})
	store, err := filestore.New(cfg.Staging)
	if err != nil {
		return fmt.Errorf("init staging store: %w", err)
	}
	assembler, err := buildAssembler(cfg.Rasterizer, store)
	if err != nil {
		return err
	}

	subjects := repo.NewSubjectRepo(cfg.Data.SubjectsFile, cfg.Data.PYQsFile, time.Duration(cfg.Data.CacheTTLSeconds)*time.Second)
	studyService := service.NewStudyService(subjects, client, service.StudyConfig{
		MindMapFormat: model.MindMapKind(cfg.AI.MindMapFormat),
		ScopePolicy:   curriculum.Policy(cfg.AI.ScopePolicy),
	})
	deps := handler.RouterDeps{
		Subjects: handler.NewSubjectHandler(service.NewSubjectService(subjects, repo.NewResourceRepo())),
		Study:    handler.NewStudyHandler(studyService),
		Schedule: handler.NewScheduleHandler(service.NewScheduleService(client)),
		Chat:     handler.NewChatHandler(service.NewChatService(client), cfg.CORSAllowlist),
		Export:   handler.NewExportHandler(service.NewExportService(assembler, document.HTMLOptions{MermaidScript: cfg.MermaidScript})),
		Sessions: handler.NewSessionHandler(service.NewSessionService()),
	}

	scheduler := schedule.NewCronScheduler()
	sweep := job.NewStagingSweepJob(store, time.Duration(cfg.StagingSweep.MaxAgeSeconds)*time.Second)
	if err := scheduler.AddJob(sweep, cfg.StagingSweep.Cron); err != nil {
		return err
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	engine, err := webapi.NewEngine(
		"/api",
		addr,
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			middleware.RateLimit(time.Duration(cfg.RateLimitMs)*time.Millisecond, handler.GenerationPaths...),
			gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(handler.StreamPaths)),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	log.Info("http server listening", zap.String("addr", addr))

	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("server stopping...")
	return nil
}
