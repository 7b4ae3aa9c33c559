package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/edikoyo/jamhub"
	"github.com/uptrace/bun"
)

type Jam struct {
	bun.BaseModel `bun:"table:jam"`

	Id       int64     `bun:",pk,autoincrement"`
	Slug     string    `bun:",notnull,unique"`
	Name     string    `bun:",notnull"`
	Theme    string    `bun:",nullzero"`
	StartsAt time.Time `bun:",notnull"`
	EndsAt   time.Time `bun:",notnull"`
}

func (j Jam) ToDomain() jamhub.Jam {
	return jamhub.Jam{
		Id:       j.Id,
		Slug:     j.Slug,
		Name:     j.Name,
		Theme:    j.Theme,
		StartsAt: j.StartsAt,
		EndsAt:   j.EndsAt,
	}
}

type JamStore struct {
	DB *bun.DB
}

var _ jamhub.JamStore = (*JamStore)(nil)

func (s *JamStore) BySlug(ctx context.Context, slug string) (jamhub.Jam, error) {
	jam := new(Jam)
	err := s.DB.NewSelect().
		Model(jam).
		Where("slug=?", slug).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jamhub.Jam{}, jamhub.ErrJamNotFound
		}
		return jamhub.Jam{}, fmt.Errorf("select jam: %w", err)
	}
	return jam.ToDomain(), nil
}

func (s *JamStore) Upcoming(ctx context.Context, now time.Time) ([]jamhub.Jam, error) {
	var jams []Jam
	err := s.DB.NewSelect().
		Model((*Jam)(nil)).
		Where("ends_at > ?", now).
		Order("starts_at ASC").
		Scan(ctx, &jams)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	mj := make([]jamhub.Jam, len(jams))
	for i, j := range jams {
		mj[i] = j.ToDomain()
	}
	return mj, nil
}

func (s *JamStore) Current(ctx context.Context, now time.Time) (jamhub.Jam, error) {
	jams, err := s.Upcoming(ctx, now)
	if err != nil {
		return jamhub.Jam{}, err
	}
	if len(jams) == 0 {
		return jamhub.Jam{}, jamhub.ErrJamNotFound
	}
	return jams[0], nil
}
