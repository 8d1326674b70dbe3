package auth_test

import (
	"context"
	"testing"

	"vthr/internal/auth"
	autherrors "vthr/internal/auth/errors"
	"vthr/internal/employee"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn     func(ctx context.Context, user *auth.User) error
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeDirectory struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeDirectory) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

const testSecret = "test-secret"

func hrUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &auth.User{
		ID:           uuid.New(),
		Email:        "hr@valourtech.com",
		PasswordHash: string(hashed),
		Role:         "hr",
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success - issues both tokens", func(t *testing.T) {
		user := hrUser(t, "s3cret-pass")
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				assert.Equal(t, "hr@valourtech.com", email)
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeDirectory{}, testSecret)
		access, refresh, resp, err := svc.Login(ctx, "hr@valourtech.com", "s3cret-pass")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.NotEqual(t, access, refresh)
		assert.Equal(t, "hr", resp.Role)
		assert.Equal(t, user.ID.String(), resp.ID)
	})

	t.Run("negative - wrong password", func(t *testing.T) {
		user := hrUser(t, "s3cret-pass")
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeDirectory{}, testSecret)
		_, _, _, err := svc.Login(ctx, "hr@valourtech.com", "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative - unknown email gives the same error", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, &fakeDirectory{}, testSecret)

		_, _, _, err := svc.Login(ctx, "ghost@valourtech.com", "whatever")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("success - rotates the pair", func(t *testing.T) {
		user := hrUser(t, "s3cret-pass")
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				assert.Equal(t, user.ID, id)
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeDirectory{}, testSecret)
		_, refresh, _, err := svc.Login(ctx, "hr@valourtech.com", "s3cret-pass")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("negative - garbage token", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, &fakeDirectory{}, testSecret)

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("negative - token signed with another secret", func(t *testing.T) {
		user := hrUser(t, "s3cret-pass")
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}

		other := auth.NewService(repo, &fakeDirectory{}, "different-secret")
		_, refresh, _, err := other.Login(ctx, "hr@valourtech.com", "s3cret-pass")
		assert.NoError(t, err)

		svc := auth.NewService(repo, &fakeDirectory{}, testSecret)
		_, _, _, err = svc.RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success - defaults to employee role", func(t *testing.T) {
		var created *auth.User
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				created = user
				return nil
			},
		}

		svc := auth.NewService(repo, &fakeDirectory{}, testSecret)
		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Email:    "asha@valourtech.com",
			Password: "long-enough-pass",
		})

		assert.NoError(t, err)
		assert.Equal(t, "employee", resp.Role)
		assert.NotEqual(t, "long-enough-pass", created.PasswordHash)
	})

	t.Run("success - links an existing employee", func(t *testing.T) {
		employeeID := uuid.New()
		dir := &fakeDirectory{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				assert.Equal(t, employeeID.String(), id)
				return &employee.Employee{ID: employeeID}, nil
			},
		}

		svc := auth.NewService(&fakeUserRepository{}, dir, testSecret)
		resp, err := svc.Register(ctx, auth.RegisterRequest{
			Email:      "asha@valourtech.com",
			Password:   "long-enough-pass",
			Role:       "hr",
			EmployeeID: employeeID.String(),
		})

		assert.NoError(t, err)
		assert.Equal(t, employeeID.String(), resp.EmployeeID)
	})

	t.Run("negative - unknown role", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, &fakeDirectory{}, testSecret)

		_, err := svc.Register(ctx, auth.RegisterRequest{
			Email:    "asha@valourtech.com",
			Password: "long-enough-pass",
			Role:     "superadmin",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidRole)
	})

	t.Run("negative - duplicate email maps to conflict", func(t *testing.T) {
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_user_email"}
			},
		}

		svc := auth.NewService(repo, &fakeDirectory{}, testSecret)
		_, err := svc.Register(ctx, auth.RegisterRequest{
			Email:    "hr@valourtech.com",
			Password: "long-enough-pass",
		})

		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}

func TestAuthService_GetMe(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		user := hrUser(t, "s3cret-pass")
		repo := &fakeUserRepository{
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeDirectory{}, testSecret)
		resp, err := svc.GetMe(ctx, user.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("negative - unknown user", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, &fakeDirectory{}, testSecret)

		_, err := svc.GetMe(ctx, uuid.NewString())

		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})
}
