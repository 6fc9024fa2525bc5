package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sehatmu/amalan/internal/approval"
	approvaldomain "github.com/sehatmu/amalan/internal/approval/domain"
	"github.com/sehatmu/amalan/internal/cache"
	"github.com/sehatmu/amalan/internal/catalog"
	"github.com/sehatmu/amalan/internal/config"
	"github.com/sehatmu/amalan/internal/employee"
	employeedomain "github.com/sehatmu/amalan/internal/employee/domain"
	"github.com/sehatmu/amalan/internal/event"
	"github.com/sehatmu/amalan/internal/observability"
	obsmiddleware "github.com/sehatmu/amalan/internal/observability/logger"
	"github.com/sehatmu/amalan/internal/ratelimit"
	"github.com/sehatmu/amalan/internal/report"
	reportdomain "github.com/sehatmu/amalan/internal/report/domain"
)

var Module = fx.Module("http.server",
	catalog.Module,
	event.Module,
	approval.Module,
	employee.Module,
	report.Module,
	ratelimit.Module,
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterAPIRoutes() }),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsCfg.Debug()))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	reportSvc   reportdomain.Service
	approvalSvc approvaldomain.Service
	directory   employeedomain.Directory
	limiter     *ratelimit.ReportLimiter
	reportCache *cache.ReportCache
}

type ServerParam struct {
	fx.In

	Engine      *gin.Engine
	ReportSvc   reportdomain.Service
	ApprovalSvc approvaldomain.Service
	Directory   employeedomain.Directory
	Limiter     *ratelimit.ReportLimiter `optional:"true"`
	ReportCache *cache.ReportCache       `optional:"true"`
}

func NewServer(p ServerParam) *Server {
	return &Server{
		engine:      p.Engine,
		reportSvc:   p.ReportSvc,
		approvalSvc: p.ApprovalSvc,
		directory:   p.Directory,
		limiter:     p.Limiter,
		reportCache: p.ReportCache,
	}
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api/v1")

	api.GET("/employees", s.ListEmployees)
	api.GET("/employees/:id", s.GetEmployee)
	api.GET("/employees/:id/progress", s.rateLimited, s.GetPersonalProgress)
	api.GET("/employees/:id/kpi", s.rateLimited, s.GetOfficialKpi)

	api.GET("/rollup", s.rateLimited, s.GetRollup)

	api.POST("/employees/:id/submissions", s.CreateSubmission)
	api.GET("/employees/:id/submissions/:month", s.GetSubmissionStatus)
	api.POST("/employees/:id/submissions/:month/mentor-review", s.ReviewMentor)
	api.POST("/employees/:id/submissions/:month/unit-head-review", s.ReviewUnitHead)
}
