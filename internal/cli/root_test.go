package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fitu/dashboard/internal/config"
	"fitu/dashboard/internal/domain"
	"fitu/dashboard/internal/repository"
	"fitu/dashboard/internal/repository/memory"
	"fitu/dashboard/internal/service"
	"fitu/dashboard/internal/storage"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		Auth: config.AuthConfig{
			Secret:           "cli-test-secret",
			Issuer:           "fitu-test",
			TokenTTL:         time.Hour,
			InstructorDomain: "@dict.gov.ph",
		},
	}
}

// newTestOptions wires the commands to a shared in-memory store.
func newTestOptions(t *testing.T) (*RootOptions, repository.Store) {
	t.Helper()
	store := memory.NewStore(memory.Open())
	return &RootOptions{
		loadConfig: func(string) (config.Config, error) { return testConfig(), nil },
		openStore: func(config.DatabaseConfig) (repository.Store, func(), error) {
			return store, func() {}, nil
		},
		openStorage: func(context.Context, config.S3Config) (storage.FileStorage, error) {
			return nil, nil
		},
	}, store
}

func execute(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "fituctl", cmd.Use)
	for _, name := range []string{"classify", "provision", "token", "export-roster"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, ".", configFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	opts, _ := newTestOptions(t)
	_, err := execute(t, opts, "--format", "yaml", "classify", "a@b.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestClassify(t *testing.T) {
	opts, _ := newTestOptions(t)

	out, err := execute(t, opts, "classify", "Coach@DICT.gov.ph")
	require.NoError(t, err)
	assert.Equal(t, "instructor\n", out)

	out, err = execute(t, opts, "classify", "juan@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "student\n", out)
}

func TestClassify_JSON(t *testing.T) {
	opts, _ := newTestOptions(t)

	out, err := execute(t, opts, "--format", "json", "classify", "coach@dict.gov.ph")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "instructor", got["kind"])
	assert.Equal(t, "coach@dict.gov.ph", got["email"])
}

func TestClassify_RequiresEmail(t *testing.T) {
	opts, _ := newTestOptions(t)
	_, err := execute(t, opts, "classify")
	assert.Error(t, err)
}

func TestProvision(t *testing.T) {
	opts, store := newTestOptions(t)

	out, err := execute(t, opts, "provision", "--uid", "s1", "--email", "juan@gmail.com", "--name", "Juan")
	require.NoError(t, err)
	assert.Equal(t, "provisioned student s1\n", out)

	student, err := store.Students.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "Juan", student.Name)
	assert.Equal(t, domain.StatusPending, student.Status)

	out, err = execute(t, opts, "provision", "--uid", "i1", "--email", "coach@dict.gov.ph")
	require.NoError(t, err)
	assert.Equal(t, "provisioned instructor i1\n", out)

	_, err = store.Instructors.GetByID(context.Background(), "i1")
	assert.NoError(t, err)
}

func TestProvision_MissingFlags(t *testing.T) {
	opts, _ := newTestOptions(t)
	_, err := execute(t, opts, "provision", "--uid", "s1")
	assert.Error(t, err)
}

func TestToken(t *testing.T) {
	opts, _ := newTestOptions(t)

	out, err := execute(t, opts, "token", "--uid", "i1", "--email", "coach@dict.gov.ph", "--name", "Coach")
	require.NoError(t, err)

	cfg := testConfig()
	auth := service.NewAuthService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, cfg.Auth.InstructorDomain)
	sess, err := auth.ParseToken(string(bytes.TrimSpace([]byte(out))))
	require.NoError(t, err)
	assert.Equal(t, "i1", sess.UID)
	assert.Equal(t, "Coach", sess.DisplayName)
	assert.True(t, sess.IsInstructor())
}

func TestToken_EmptySecret(t *testing.T) {
	opts, _ := newTestOptions(t)
	opts.loadConfig = func(string) (config.Config, error) {
		cfg := testConfig()
		cfg.Auth.Secret = ""
		return cfg, nil
	}

	_, err := execute(t, opts, "token", "--uid", "i1", "--email", "coach@dict.gov.ph")
	assert.ErrorIs(t, err, config.ErrAuthSecretMissing)
}

func TestExportRoster_File(t *testing.T) {
	opts, store := newTestOptions(t)
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.Students.Save(ctx, &domain.StudentProfile{
		ID: "s1", Name: "Ana Cruz", Email: "ana@gmail.com", Course: "BSIT", YearLevel: "2",
		Status: domain.StatusActive, CreatedAt: now, LastActive: now,
	}))
	require.NoError(t, store.Rosters.Replace(ctx, &domain.ClassRoster{
		InstructorID: "i1", Students: []string{"s1"}, UpdatedAt: now,
	}))

	path := filepath.Join(t.TempDir(), "roster.csv")
	out, err := execute(t, opts, "export-roster", "--instructor", "i1", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Name,Email,Year Level,Course,Status")
	assert.Contains(t, string(data), "Ana Cruz,ana@gmail.com,2,BSIT,active")
}

func TestExportRoster_InvalidFileFormat(t *testing.T) {
	opts, _ := newTestOptions(t)
	_, err := execute(t, opts, "export-roster", "--instructor", "i1", "--file-format", "pdf")
	assert.ErrorIs(t, err, service.ErrInvalidFormat)
}

func TestExportRoster_PublishWithoutBucket(t *testing.T) {
	opts, _ := newTestOptions(t)
	_, err := execute(t, opts, "export-roster", "--instructor", "i1", "--publish")
	assert.ErrorIs(t, err, service.ErrStorageUnavailable)
}
