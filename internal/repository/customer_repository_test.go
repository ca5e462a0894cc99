package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/sweetshop/internal/domain"
	"github.com/nikolayk812/sweetshop/internal/port"
	"github.com/nikolayk812/sweetshop/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type customerRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	repo      port.CustomerRepository
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestCustomerRepositorySuite(t *testing.T) {
	suite.Run(t, new(customerRepositorySuite))
}

// before all tests in the suite
func (suite *customerRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.repo = repository.NewCustomer(suite.pool)
}

// after all tests in the suite
func (suite *customerRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *customerRepositorySuite) TestInsertCustomer() {
	t := suite.T()
	ctx := t.Context()

	customer := domain.Customer{
		UserID:  gofakeit.UUID(),
		Phone:   gofakeit.Phone(),
		Address: gofakeit.Address().Address,
	}

	id, err := suite.repo.InsertCustomer(ctx, customer)
	require.NoError(t, err)
	assert.NotZero(t, id)

	actual, err := suite.repo.GetCustomer(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, customer.UserID, actual.UserID)
	assert.Equal(t, customer.Phone, actual.Phone)
	assert.Equal(t, customer.Address, actual.Address)
	// New accounts start inactive until verified.
	assert.False(t, actual.IsActive)

	_, err = suite.repo.InsertCustomer(ctx, customer)
	require.ErrorIs(t, err, repository.ErrAlreadyExists)
}

func (suite *customerRepositorySuite) TestInsertCustomerEmptyUserID() {
	t := suite.T()

	_, err := suite.repo.InsertCustomer(t.Context(), domain.Customer{})
	require.EqualError(t, err, "user ID is empty")
}

func (suite *customerRepositorySuite) TestGetCustomerByUserID() {
	t := suite.T()
	ctx := t.Context()

	inserted := insertCustomer(t, suite.pool)

	actual, err := suite.repo.GetCustomerByUserID(ctx, inserted.UserID)
	require.NoError(t, err)
	assert.Equal(t, inserted.ID, actual.ID)

	_, err = suite.repo.GetCustomerByUserID(ctx, gofakeit.UUID())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func (suite *customerRepositorySuite) TestActivateCustomer() {
	t := suite.T()
	ctx := t.Context()

	inserted := insertCustomer(t, suite.pool)

	err := suite.repo.ActivateCustomer(ctx, inserted.UserID)
	require.NoError(t, err)

	actual, err := suite.repo.GetCustomer(ctx, inserted.ID)
	require.NoError(t, err)
	assert.True(t, actual.IsActive)

	// Activation is idempotent.
	require.NoError(t, suite.repo.ActivateCustomer(ctx, inserted.UserID))

	err = suite.repo.ActivateCustomer(ctx, gofakeit.UUID())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func (suite *customerRepositorySuite) TestGetCustomerNotFound() {
	t := suite.T()

	_, err := suite.repo.GetCustomer(t.Context(), 987654321)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
