package backend

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/MKhiriev/mini-capstone/internal/config"
	"github.com/MKhiriev/mini-capstone/internal/logger"
	"github.com/MKhiriev/mini-capstone/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// fakeDriver builds clients through func fields and counts the builds.
type fakeDriver struct {
	analytics func(ctx context.Context, app *App) (AnalyticsClient, error)
	store     func(ctx context.Context, app *App) (DocumentStore, error)
	auth      func(ctx context.Context, app *App) (AuthClient, error)

	builds atomic.Int32
}

func (d *fakeDriver) Analytics(ctx context.Context, app *App) (AnalyticsClient, error) {
	d.builds.Add(1)
	return d.analytics(ctx, app)
}

func (d *fakeDriver) DocumentStore(ctx context.Context, app *App) (DocumentStore, error) {
	d.builds.Add(1)
	return d.store(ctx, app)
}

func (d *fakeDriver) Auth(ctx context.Context, app *App) (AuthClient, error) {
	d.builds.Add(1)
	return d.auth(ctx, app)
}

// switchDriver forwards to the fakeDriver installed by the current test, so
// the package-level registry needs a single registration.
type switchDriver struct {
	mu      sync.Mutex
	current *fakeDriver
}

func (s *switchDriver) get() *fakeDriver {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *switchDriver) Analytics(ctx context.Context, app *App) (AnalyticsClient, error) {
	return s.get().Analytics(ctx, app)
}

func (s *switchDriver) DocumentStore(ctx context.Context, app *App) (DocumentStore, error) {
	return s.get().DocumentStore(ctx, app)
}

func (s *switchDriver) Auth(ctx context.Context, app *App) (AuthClient, error) {
	return s.get().Auth(ctx, app)
}

const testDriverName = "test"

var testDriver = &switchDriver{}

func init() {
	Register(testDriverName, testDriver)
}

func useDriver(t *testing.T, d *fakeDriver) {
	t.Helper()
	testDriver.mu.Lock()
	testDriver.current = d
	testDriver.mu.Unlock()
}

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{Version: "test"},
		Backend: config.Backend{
			Driver:            testDriverName,
			APIKey:            "api-key",
			AuthDomain:        "blog.example.com",
			ProjectID:         "blog",
			StorageBucket:     "blog.appspot.com",
			MessagingSenderID: "1234567890",
			AppID:             "1:1234567890:web:abc",
		},
	}
}

func mockDriver(ctrl *gomock.Controller) (*fakeDriver, *mock.MockAnalyticsClient, *mock.MockDocumentStore, *mock.MockAuthClient) {
	analytics := mock.NewMockAnalyticsClient(ctrl)
	store := mock.NewMockDocumentStore(ctrl)
	auth := mock.NewMockAuthClient(ctrl)

	d := &fakeDriver{
		analytics: func(context.Context, *App) (AnalyticsClient, error) { return analytics, nil },
		store:     func(context.Context, *App) (DocumentStore, error) { return store, nil },
		auth:      func(context.Context, *App) (AuthClient, error) { return auth, nil },
	}
	return d, analytics, store, auth
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// ── Register ──────────────────────────────────────────────────────────────────

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	assert.Panics(t, func() { Register(testDriverName, &fakeDriver{}) })
}

func TestRegister_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { Register("nil-driver", nil) })
}

func TestDrivers_ListsRegistered(t *testing.T) {
	assert.Contains(t, Drivers(), testDriverName)
}

// ── Initialize ────────────────────────────────────────────────────────────────

func TestInitialize_Success(t *testing.T) {
	app, err := Initialize(testConfig(), logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, testDriverName, app.Name())
	assert.Equal(t, "blog", app.Config().Backend.ProjectID)
	assert.NotNil(t, app.Logger())
}

func TestInitialize_NilLogger(t *testing.T) {
	app, err := Initialize(testConfig(), nil)

	require.NoError(t, err)
	assert.NotNil(t, app.Logger())
}

func TestInitialize_IncompleteRecord(t *testing.T) {
	fields := map[string]func(b *config.Backend){
		"api key":             func(b *config.Backend) { b.APIKey = "" },
		"auth domain":         func(b *config.Backend) { b.AuthDomain = "" },
		"project id":          func(b *config.Backend) { b.ProjectID = "" },
		"storage bucket":      func(b *config.Backend) { b.StorageBucket = "" },
		"messaging sender id": func(b *config.Backend) { b.MessagingSenderID = "" },
		"app id":              func(b *config.Backend) { b.AppID = "" },
	}

	for name, mutate := range fields {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			mutate(&cfg.Backend)

			app, err := Initialize(cfg, logger.Nop())

			assert.Nil(t, app)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.ErrorIs(t, err, config.ErrInvalidBackendConfigs)
		})
	}
}

func TestInitialize_UnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Backend.Driver = "no-such-driver"

	app, err := Initialize(cfg, logger.Nop())

	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

// ── derive ────────────────────────────────────────────────────────────────────

func TestDerive_ReturnsSameInstance(t *testing.T) {
	ctrl := gomock.NewController(t)
	d, analytics, store, auth := mockDriver(ctrl)
	useDriver(t, d)

	app, err := Initialize(testConfig(), logger.Nop())
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		gotAnalytics, err := GetAnalytics(ctx, app)
		require.NoError(t, err)
		assert.Same(t, analytics, gotAnalytics)

		gotStore, err := GetDocumentStore(ctx, app)
		require.NoError(t, err)
		assert.Same(t, store, gotStore)

		gotAuth, err := GetAuth(ctx, app)
		require.NoError(t, err)
		assert.Same(t, auth, gotAuth)
	}

	assert.Equal(t, int32(3), d.builds.Load())
}

func TestDerive_ConcurrentCallsBuildOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	d, _, store, _ := mockDriver(ctrl)
	useDriver(t, d)

	app, err := Initialize(testConfig(), logger.Nop())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := GetDocumentStore(context.Background(), app)
			assert.NoError(t, err)
			assert.Same(t, store, got)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), d.builds.Load())
}

func TestDerive_ErrorIsNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	d, _, _, auth := mockDriver(ctrl)
	fail := true
	d.auth = func(context.Context, *App) (AuthClient, error) {
		if fail {
			return nil, assert.AnError
		}
		return auth, nil
	}
	useDriver(t, d)

	app, err := Initialize(testConfig(), logger.Nop())
	require.NoError(t, err)

	_, err = GetAuth(context.Background(), app)
	require.ErrorIs(t, err, assert.AnError)

	fail = false
	got, err := GetAuth(context.Background(), app)
	require.NoError(t, err)
	assert.Same(t, auth, got)
	assert.Equal(t, int32(2), d.builds.Load())
}

// ── Shared / Close ────────────────────────────────────────────────────────────

func TestShared_OpensOnceAndClosesInReverse(t *testing.T) {
	app, err := Initialize(testConfig(), logger.Nop())
	require.NoError(t, err)

	var order []string
	opens := 0
	open := func(name string) func() (closerFunc, error) {
		return func() (closerFunc, error) {
			opens++
			return func() error { order = append(order, name); return nil }, nil
		}
	}

	_, err = Shared(app, "first", open("first"))
	require.NoError(t, err)
	_, err = Shared(app, "first", open("first"))
	require.NoError(t, err)
	_, err = Shared(app, "second", open("second"))
	require.NoError(t, err)

	assert.Equal(t, 2, opens)
	require.NoError(t, app.Close())
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestShared_OpenErrorIsReturned(t *testing.T) {
	app, err := Initialize(testConfig(), logger.Nop())
	require.NoError(t, err)

	_, err = Shared(app, "db", func() (int, error) { return 0, assert.AnError })
	require.ErrorIs(t, err, assert.AnError)

	v, err := Shared(app, "db", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestShared_TypeMismatch(t *testing.T) {
	app, err := Initialize(testConfig(), logger.Nop())
	require.NoError(t, err)

	_, err = Shared(app, "key", func() (int, error) { return 1, nil })
	require.NoError(t, err)

	_, err = Shared(app, "key", func() (string, error) { return "x", nil })
	assert.Error(t, err)
}

func TestApp_CloseJoinsErrors(t *testing.T) {
	app, err := Initialize(testConfig(), logger.Nop())
	require.NoError(t, err)

	_, err = Shared(app, "broken", func() (closerFunc, error) {
		return func() error { return assert.AnError }, nil
	})
	require.NoError(t, err)

	assert.ErrorIs(t, app.Close(), assert.AnError)
}

// ── Bootstrap ─────────────────────────────────────────────────────────────────

func TestBootstrap_ExposesDBAndAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	d, analytics, store, auth := mockDriver(ctrl)
	useDriver(t, d)

	analytics.EXPECT().LogEvent(gomock.Any(), EventAppStart, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, params map[string]any) error {
			assert.Equal(t, testDriverName, params["driver"])
			assert.Equal(t, "test", params["version"])
			return nil
		})

	clients, err := Bootstrap(context.Background(), testConfig(), logger.Nop())
	require.NoError(t, err)

	assert.Same(t, store, clients.DB)
	assert.Same(t, auth, clients.Auth)

	analytics.EXPECT().Close().Return(nil)
	assert.NoError(t, clients.Close())
}

func TestBootstrap_ExactlyTwoExportedHandles(t *testing.T) {
	typ := reflect.TypeOf(Clients{})

	var exported []string
	for i := 0; i < typ.NumField(); i++ {
		if typ.Field(i).IsExported() {
			exported = append(exported, typ.Field(i).Name)
		}
	}

	assert.Equal(t, []string{"DB", "Auth"}, exported)
}

func TestBootstrap_AnalyticsFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	d, analytics, _, _ := mockDriver(ctrl)
	useDriver(t, d)

	analytics.EXPECT().LogEvent(gomock.Any(), EventAppStart, gomock.Any()).Return(assert.AnError)

	clients, err := Bootstrap(context.Background(), testConfig(), logger.Nop())
	require.NoError(t, err)
	assert.NotNil(t, clients.DB)
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Backend.APIKey = ""

	clients, err := Bootstrap(context.Background(), cfg, logger.Nop())

	assert.Nil(t, clients)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestBootstrap_ClientBuildFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	d, analytics, _, _ := mockDriver(ctrl)
	d.auth = func(context.Context, *App) (AuthClient, error) {
		return nil, errors.New("identity endpoint unreachable")
	}
	useDriver(t, d)

	analytics.EXPECT().Close().Return(nil)

	clients, err := Bootstrap(context.Background(), testConfig(), logger.Nop())

	assert.Nil(t, clients)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identity endpoint unreachable")
}
