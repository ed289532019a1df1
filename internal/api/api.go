package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ougirez/malaria-analytics/internal/api/controller"
	"github.com/ougirez/malaria-analytics/internal/config"
	"github.com/ougirez/malaria-analytics/internal/pkg/logger"
	"github.com/ougirez/malaria-analytics/internal/service/analytics"
)

type APIService struct {
	router *echo.Echo
	secret string
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// Handler exposes the router, mostly for httptest.
func (svc *APIService) Handler() http.Handler {
	return svc.router
}

func NewAPIService(cfg config.Config, service *analytics.Service, regions controller.RegionLister) (*APIService, error) {
	svc := &APIService{router: echo.New(), secret: cfg.Auth.Secret}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(gommonLevel(cfg.Log.Level))
	svc.router.JSONSerializer = SonicSerializer{}
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.router.Use(middleware.Recover())
	svc.router.Use(svc.RequestIDMiddleware)
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.AllowedOrigins,
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(service, regions, cfg.Auth)

	a := api.Group("/analytics")
	a.POST("/validate", cntrl.ValidateRequest)
	a.POST("/payload", cntrl.GetPayload)
	a.POST("/payload/validate", cntrl.ValidatePayload)
	a.POST("/dashboard", cntrl.GetDashboard)

	charts := api.Group("/charts")
	charts.POST("/resolve", cntrl.ResolveChart)
	charts.POST("/series", cntrl.GetSeries)
	charts.GET("/compatibility", cntrl.GetCompatibility)

	corr := api.Group("/correlation")
	corr.POST("/pearson", cntrl.Pearson)
	corr.POST("/effectiveness", cntrl.Effectiveness)

	risk := api.Group("/risk")
	risk.POST("/distribution", cntrl.RiskDistribution)
	risk.POST("/indicators", cntrl.VulnerabilityIndicators)

	regionsGroup := api.Group("/regions")
	regionsGroup.GET("/list", cntrl.GetRegions)

	admin := api.Group("/admin")
	admin.POST("/login", cntrl.LoginAdmin)
	admin.GET("/heuristics", cntrl.GetHeuristics, svc.AdminMiddleware)

	return svc, nil
}

func gommonLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
