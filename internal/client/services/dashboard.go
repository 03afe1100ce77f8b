package services

import (
	"context"

	"github.com/dmitrijs2005/examhub/internal/client/client"
	"github.com/dmitrijs2005/examhub/internal/client/credentials"
	"github.com/dmitrijs2005/examhub/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// DashboardService aggregates per-student data. Each call issues its
// backend requests concurrently and fails as a whole if any of them fails.
type DashboardService interface {
	Dashboard(ctx context.Context) (*models.Dashboard, error)
	// Profile loads a student with their posts. An empty id means the
	// logged-in user.
	Profile(ctx context.Context, userID string) (*models.Profile, error)
}

type dashboardService struct {
	api   client.API
	store credentials.Store
}

func NewDashboardService(api client.API, store credentials.Store) DashboardService {
	return &dashboardService{api: api, store: store}
}

func (s *dashboardService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	id, err := currentUserID(ctx, s.store)
	if err != nil {
		return nil, err
	}

	var (
		d         models.Dashboard
		analytics *models.Analytics
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		analytics, err = s.api.Analytics(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		d.RecentActivity, err = s.api.RecentActivity(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		d.Withdrawals, err = s.api.WithdrawalRequests(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if analytics != nil {
		d.Analytics = *analytics
	}
	return &d, nil
}

func (s *dashboardService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		id, err := currentUserID(ctx, s.store)
		if err != nil {
			return nil, err
		}
		userID = id
	}

	var (
		p    models.Profile
		user *models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.api.GetUserDetails(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		p.Questions, err = s.api.StudentPosts(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if user != nil {
		p.User = *user
	}
	return &p, nil
}
