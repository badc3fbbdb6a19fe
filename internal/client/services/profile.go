package services

import (
	"context"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
	"github.com/dmitrijs2005/alumnet/internal/logging"
)

type ProfileService interface {
	// Current is the logged-in user as last resolved.
	Current() (models.Identity, bool)
	// Update saves the changed fields and refreshes the session's copy of
	// the user.
	Update(ctx context.Context, u models.ProfileUpdate) (string, models.Identity, error)
}

type profileService struct {
	session Session
	api     client.Client
	log     logging.Logger
}

func NewProfileService(session Session, api client.Client, log logging.Logger) ProfileService {
	return &profileService{session: session, api: api, log: log}
}

func (p *profileService) Current() (models.Identity, bool) {
	return p.session.Identity()
}

func (p *profileService) Update(ctx context.Context, u models.ProfileUpdate) (string, models.Identity, error) {
	if err := validate(u); err != nil {
		return "", models.Identity{}, err
	}

	msg, saved, err := p.api.UpdateProfile(ctx, u)
	if err != nil {
		return "", models.Identity{}, err
	}

	fresh, err := p.session.Refresh(ctx)
	if err != nil {
		// the update itself went through
		p.log.Warn(ctx, "profile saved but session refresh failed", "err", err)
		if saved != nil {
			return msg, *saved, nil
		}
		current, _ := p.session.Identity()
		return msg, current, nil
	}
	return msg, fresh, nil
}
