package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/edikoyo/jamhub"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	bun.BaseModel `bun:"table:user"`

	Id             int64           `bun:",pk,autoincrement"`
	CreatedAt      time.Time       `bun:",nullzero,notnull,default:current_timestamp"`
	Slug           string          `bun:",notnull,unique"`
	Name           string          `bun:",notnull"`
	Email          string          `bun:"email,notnull,unique"`
	PasswordHash   []byte          `bun:",notnull"`
	Bio            string          `bun:",nullzero"`
	ProfilePicture string          `bun:",nullzero"`
	BannerPicture  string          `bun:",nullzero"`
	RolesNames     []jamhub.RoleId `bun:",notnull,array"`

	// Mapped (in AfterScanRow hook) roles from RolesNames.
	Roles jamhub.Roles `bun:"-"`
}

func (u User) ToDomain() jamhub.User {
	return jamhub.User{
		Id:             jamhub.UserId(u.Id),
		CreatedAt:      u.CreatedAt,
		Slug:           u.Slug,
		Name:           u.Name,
		Email:          u.Email,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		BannerPicture:  u.BannerPicture,
		Roles:          u.Roles,
	}
}

var _ bun.AfterScanRowHook = (*User)(nil)

func (u *User) AfterScanRow(ctx context.Context) error {
	u.Roles = make(jamhub.Roles, 0, len(u.RolesNames))
	for _, n := range u.RolesNames {
		role, ok := jamhub.AllRoles[n]
		if ok {
			u.Roles = append(u.Roles, role)
		}
	}
	return nil
}

type UserStore struct {
	DB *bun.DB
}

var _ jamhub.UserStore = (*UserStore)(nil)

func (s *UserStore) Register(ctx context.Context, r jamhub.Registration) (jamhub.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), bcrypt.DefaultCost)
	if err != nil {
		return jamhub.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: hash,
		RolesNames:   []jamhub.RoleId{},
	}

	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		taken, err := tx.NewSelect().
			Model((*User)(nil)).
			Where("email=?", r.Email).
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("email lookup: %w", err)
		}
		if taken {
			return jamhub.ErrEmailTaken
		}

		user.Slug, err = s.freeSlug(ctx, tx, jamhub.Slugify(r.Name))
		if err != nil {
			return fmt.Errorf("pick slug: %w", err)
		}

		_, err = tx.NewInsert().
			Model(user).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return jamhub.User{}, err
	}
	return user.ToDomain(), nil
}

func (s *UserStore) freeSlug(ctx context.Context, tx bun.Tx, base string) (string, error) {
	if base == "" {
		base = "jammer"
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := tx.NewSelect().
			Model((*User)(nil)).
			Where("slug=?", slug).
			Exists(ctx)
		if err != nil {
			return "", fmt.Errorf("slug lookup: %w", err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (s *UserStore) ById(ctx context.Context, userId jamhub.UserId) (jamhub.User, error) {
	user := new(User)
	err := s.DB.NewSelect().
		Model(user).
		Where(`"user"."id"=?`, userId).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jamhub.User{}, jamhub.ErrUserNotFound
		}
		return jamhub.User{}, fmt.Errorf("select user: %w", err)
	}
	return user.ToDomain(), nil
}

func (s *UserStore) BySlug(ctx context.Context, slug string) (jamhub.User, error) {
	user := new(User)
	err := s.DB.NewSelect().
		Model(user).
		Where("slug=?", slug).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jamhub.User{}, jamhub.ErrUserNotFound
		}
		return jamhub.User{}, fmt.Errorf("select user: %w", err)
	}
	return user.ToDomain(), nil
}

func (s *UserStore) Authenticate(ctx context.Context, email string, password string) (jamhub.User, error) {
	user := new(User)
	err := s.DB.NewSelect().
		Model(user).
		Where("email=?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return jamhub.User{}, jamhub.ErrBadCredentials
		}
		return jamhub.User{}, fmt.Errorf("select user: %w", err)
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return jamhub.User{}, jamhub.ErrBadCredentials
	}
	return user.ToDomain(), nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, update jamhub.ProfileUpdate) (jamhub.User, error) {
	user := new(User)
	err := s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().
			Model((*User)(nil)).
			Set("name=?", update.Name).
			Set("bio=?", update.Bio).
			Set("profile_picture=?", update.ProfilePicture).
			Set("banner_picture=?", update.BannerPicture).
			Where("slug=?", update.Slug).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return jamhub.ErrUserNotFound
		}

		err = tx.NewSelect().
			Model(user).
			Where("slug=?", update.Slug).
			Scan(ctx)
		if err != nil {
			return fmt.Errorf("reload user: %w", err)
		}
		return nil
	})
	if err != nil {
		return jamhub.User{}, err
	}
	return user.ToDomain(), nil
}
