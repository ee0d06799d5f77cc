package sharebox

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eurachacha/achacha-api/internal/domain"
)

// MockShareBoxRepository mocks the ShareBoxRepository interface
type MockShareBoxRepository struct {
	mock.Mock
}

func (m *MockShareBoxRepository) Create(ctx context.Context, box *domain.ShareBox) error {
	args := m.Called(ctx, box)
	return args.Error(0)
}

func (m *MockShareBoxRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ShareBox, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareBox), args.Error(1)
}

func (m *MockShareBoxRepository) GetByInviteCode(
	ctx context.Context,
	inviteCode string,
) (*domain.ShareBox, error) {
	args := m.Called(ctx, inviteCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShareBox), args.Error(1)
}

func (m *MockShareBoxRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockShareBoxRepository) Update(ctx context.Context, box *domain.ShareBox) error {
	args := m.Called(ctx, box)
	return args.Error(0)
}

func (m *MockShareBoxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShareBoxRepository) WithTx(tx *sql.Tx) ShareBoxRepository {
	m.Called(tx)
	return m
}

func (m *MockShareBoxRepository) DB() *sql.DB {
	args := m.Called()
	return args.Get(0).(*sql.DB)
}

// MockParticipationRepository mocks the ParticipationRepository interface
type MockParticipationRepository struct {
	mock.Mock
}

func (m *MockParticipationRepository) Create(ctx context.Context, p *domain.Participation) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParticipationRepository) Exists(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, userID, shareBoxID)
	return args.Bool(0), args.Error(1)
}

func (m *MockParticipationRepository) ListByShareBox(
	ctx context.Context,
	shareBoxID uuid.UUID,
) ([]*domain.Participation, error) {
	args := m.Called(ctx, shareBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Participation), args.Error(1)
}

func (m *MockParticipationRepository) Delete(ctx context.Context, userID, shareBoxID uuid.UUID) error {
	args := m.Called(ctx, userID, shareBoxID)
	return args.Error(0)
}

func (m *MockParticipationRepository) DeleteAllByShareBox(
	ctx context.Context,
	shareBoxID uuid.UUID,
) (int64, error) {
	args := m.Called(ctx, shareBoxID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockParticipationRepository) WithTx(tx *sql.Tx) ParticipationRepository {
	m.Called(tx)
	return m
}

// MockGifticonRepository mocks the GifticonRepository interface
type MockGifticonRepository struct {
	mock.Mock
}

func (m *MockGifticonRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Gifticon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gifticon), args.Error(1)
}

func (m *MockGifticonRepository) Update(ctx context.Context, gifticon *domain.Gifticon) error {
	args := m.Called(ctx, gifticon)
	return args.Error(0)
}

func (m *MockGifticonRepository) ListByShareBox(
	ctx context.Context,
	shareBoxID uuid.UUID,
) ([]*domain.Gifticon, error) {
	args := m.Called(ctx, shareBoxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Gifticon), args.Error(1)
}

func (m *MockGifticonRepository) UnshareAllByShareBox(
	ctx context.Context,
	shareBoxID uuid.UUID,
) (int64, error) {
	args := m.Called(ctx, shareBoxID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGifticonRepository) UnshareAvailableByUserAndShareBox(
	ctx context.Context,
	userID, shareBoxID uuid.UUID,
) (int64, error) {
	args := m.Called(ctx, userID, shareBoxID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGifticonRepository) WithTx(tx *sql.Tx) GifticonRepository {
	m.Called(tx)
	return m
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// stubDriver is a minimal database/sql driver whose connections only know
// how to begin, commit, and roll back transactions. It lets the service's
// transaction plumbing run for real while the repositories stay mocked.
type stubDriver struct{}

func (stubDriver) Open(name string) (driver.Conn, error) { return &stubConn{}, nil }

type stubConn struct{}

func (*stubConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("stub driver does not prepare statements")
}
func (*stubConn) Close() error              { return nil }
func (*stubConn) Begin() (driver.Tx, error) { return stubTx{}, nil }

type stubTx struct{}

func (stubTx) Commit() error   { return nil }
func (stubTx) Rollback() error { return nil }

var registerStubDriver sync.Once

// newStubDB returns a real *sql.DB backed by the stub driver.
func newStubDB(t *testing.T) *sql.DB {
	t.Helper()
	registerStubDriver.Do(func() {
		sql.Register("sharebox-stub", stubDriver{})
	})
	db, err := sql.Open("sharebox-stub", "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
