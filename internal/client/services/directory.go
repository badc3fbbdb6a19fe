package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/alumnet/internal/client/client"
	"github.com/dmitrijs2005/alumnet/internal/client/models"
)

// DirectoryPage is a filtered view over the full directory listing.
type DirectoryPage struct {
	All   []models.Identity
	Shown []models.Identity
	Years []int
}

func (p DirectoryPage) Summary() string {
	return fmt.Sprintf("Showing %d of %d alumni", len(p.Shown), len(p.All))
}

type DirectoryService interface {
	// List fetches the directory and filters it locally.
	List(ctx context.Context, f models.DirectoryFilter) (DirectoryPage, error)
	// Search lets the API do the matching.
	Search(ctx context.Context, text string, limit int) ([]models.Identity, error)
	Get(ctx context.Context, id string) (models.Identity, error)
}

type directoryService struct {
	api client.Client
}

func NewDirectoryService(api client.Client) DirectoryService {
	return &directoryService{api: api}
}

func (d *directoryService) List(ctx context.Context, f models.DirectoryFilter) (DirectoryPage, error) {
	all, err := d.api.Directory(ctx, client.DirectoryQuery{})
	if err != nil {
		return DirectoryPage{}, err
	}
	return DirectoryPage{All: all, Shown: f.Apply(all), Years: models.Years(all)}, nil
}

func (d *directoryService) Search(ctx context.Context, text string, limit int) ([]models.Identity, error) {
	return d.api.Directory(ctx, client.DirectoryQuery{Limit: limit, Search: strings.TrimSpace(text)})
}

func (d *directoryService) Get(ctx context.Context, id string) (models.Identity, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Identity{}, client.ErrNotFound
	}
	u, err := d.api.User(ctx, id)
	if err != nil {
		return models.Identity{}, err
	}
	return *u, nil
}
