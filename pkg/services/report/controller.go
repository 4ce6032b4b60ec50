package report

import (
	"context"
	"errors"
	"time"

	"github.com/costguard/costguard/pkg/models/domain"
	"github.com/costguard/costguard/pkg/services/mapping"
	"github.com/costguard/costguard/pkg/services/metering"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds parallel vendor calls per request.
const maxConcurrentFetches = 3

// CommitmentSource supplies contracted quantities. A dimension without a
// contract yields a zero-value commitment, not an error.
type CommitmentSource interface {
	GetCommitment(ctx context.Context, service, dimension string) (domain.Commitment, error)
}

// Controller assembles display-ready usage records for services and
// dimensions.
type Controller interface {
	GetServiceUsage(ctx context.Context, service string) (domain.ServiceUsage, error)
	GetDimensionUsage(ctx context.Context, dimension string) (domain.DimensionUsage, error)
}

type controller struct {
	registry    mapping.Registry
	client      metering.Client
	commitments CommitmentSource
	now         func() time.Time
}

func NewController(registry mapping.Registry, client metering.Client, commitments CommitmentSource) Controller {
	return &controller{
		registry:    registry,
		client:      client,
		commitments: commitments,
		now:         time.Now,
	}
}

// GetServiceUsage fetches every dimension of the service concurrently. A
// rate-limit error from any fetch cancels the rest of the batch and
// propagates; other fetch failures degrade to per-dimension error
// records so one broken dimension does not hide the others.
func (c *controller) GetServiceUsage(ctx context.Context, service string) (domain.ServiceUsage, error) {
	svc, err := c.registry.Service(service)
	if err != nil {
		return domain.ServiceUsage{}, err
	}

	today := c.now().UTC()
	records := make([]domain.DimensionUsage, len(svc.Dimensions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, key := range svc.Dimensions {
		g.Go(func() error {
			record, err := c.dimensionUsage(gctx, svc.Key, key, today)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.ServiceUsage{}, err
	}

	return domain.ServiceUsage{Service: svc.Key, Name: svc.Name, Dimensions: records}, nil
}

func (c *controller) GetDimensionUsage(ctx context.Context, dimension string) (domain.DimensionUsage, error) {
	m, err := c.registry.Dimension(dimension)
	if err != nil {
		return domain.DimensionUsage{}, err
	}
	return c.dimensionUsage(ctx, m.Category, dimension, c.now().UTC())
}

func (c *controller) dimensionUsage(ctx context.Context, service, dimension string, today time.Time) (domain.DimensionUsage, error) {
	logger := zerolog.Ctx(ctx)

	m, err := c.registry.Dimension(dimension)
	if err != nil {
		return domain.DimensionUsage{}, err
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	raw, err := c.client.FetchHourlyUsage(ctx, m.ProductFamily, monthStart, today)
	if err != nil {
		if errors.Is(err, metering.ErrRateLimited) {
			return domain.DimensionUsage{}, err
		}
		logger.Warn().Err(err).Str("dimension", dimension).Msg("usage fetch failed")
		return domain.NewDimensionUsageError(m, err.Error()), nil
	}

	commitment, err := c.commitments.GetCommitment(ctx, service, dimension)
	if err != nil {
		logger.Warn().Err(err).Str("dimension", dimension).Msg("commitment lookup failed")
		commitment = domain.Commitment{Service: service, Dimension: dimension}
	}

	return BuildDimensionUsage(raw, m, commitment, today), nil
}
