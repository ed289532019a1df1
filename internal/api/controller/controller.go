package controller

import (
	"context"

	"github.com/ougirez/malaria-analytics/internal/config"
	"github.com/ougirez/malaria-analytics/internal/domain"
	"github.com/ougirez/malaria-analytics/internal/service/analytics"
)

type RegionLister interface {
	ListRegions(ctx context.Context) ([]*domain.Region, error)
}

type Controller struct {
	service *analytics.Service
	regions RegionLister
	auth    config.AuthConfig
}

func NewController(service *analytics.Service, regions RegionLister, auth config.AuthConfig) *Controller {
	return &Controller{service: service, regions: regions, auth: auth}
}
