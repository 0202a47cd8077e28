package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName         = "config"
	configType         = "toml"
	SettingsPathKey    = "settings.path"
	settingsFileMode   = 0o600
	settingsDirMode    = 0o700
	settingsConfigDir  = ".tradebot"
	settingsConfigFile = "settings.toml"
	tempFilePattern    = ".settings-*.toml.tmp"
)

type Repository struct {
	settingsPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.IdentityRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, settingsConfigDir, settingsConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, settingsConfigDir))
	cfg.SetDefault(SettingsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	settingsPath := cfg.GetString(SettingsPathKey)
	if settingsPath == "" {
		return nil, errors.New("settings path is empty")
	}
	settingsPath, err = normalizeSettingsPath(settingsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{settingsPath: settingsPath, mu: lockForPath(settingsPath)}, nil
}

func (r *Repository) Path() string {
	return r.settingsPath
}

func (r *Repository) Save(ctx context.Context, identity domain.Identity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	identity.NormalizeAdmins()
	if err := identity.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(identity)
	updated := false
	for i := range file.Identities {
		if file.Identities[i].ID == encoded.ID {
			file.Identities[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Identities = append(file.Identities, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.IdentityID) (domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return domain.Identity{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Identity{}, err
	}

	for _, entry := range file.Identities {
		if entry.ID == string(id) {
			return fromSchema(entry)
		}
	}

	return domain.Identity{}, domain.ErrIdentityNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	identities := make([]domain.Identity, 0, len(file.Identities))
	for _, entry := range file.Identities {
		identity, err := fromSchema(entry)
		if err != nil {
			return nil, err
		}
		identities = append(identities, identity)
	}

	return identities, nil
}

// Settings returns the process-wide values with defaults applied.
func (r *Repository) Settings(ctx context.Context) (domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return domain.Settings{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Settings{}, err
	}

	stagger, err := parseDuration("stagger", file.Stagger)
	if err != nil {
		return domain.Settings{}, err
	}

	return domain.Settings{
		APIKeyRef:    file.APIKeyRef,
		Stagger:      stagger,
		CrashCeiling: file.CrashCeiling,
	}.WithDefaults(), nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.settingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read settings file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode settings file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeSettingsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.settingsPath), settingsDirMode); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode settings file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.settingsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp settings file: %w", err)
	}

	if err := tempFile.Chmod(settingsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp settings file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp settings file: %w", err)
	}

	if err := os.Rename(tempName, r.settingsPath); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	cleanup = false

	return nil
}

func toSchema(identity domain.Identity) identitySchema {
	return identitySchema{
		ID:            string(identity.ID),
		DisplayName:   identity.DisplayName,
		SteamID:       identity.SteamID,
		Handler:       identity.Handler,
		Admins:        append([]string(nil), identity.Admins...),
		EventsPath:    identity.EventsPath,
		ResponsesPath: identity.ResponsesPath,
		PollInterval:  formatDuration(identity.PollInterval),
		MaxIdle:       formatDuration(identity.MaxIdle),
	}
}

func fromSchema(entry identitySchema) (domain.Identity, error) {
	pollInterval, err := parseDuration("poll_interval", entry.PollInterval)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("identity %s: %w", entry.ID, err)
	}
	maxIdle, err := parseDuration("max_idle", entry.MaxIdle)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("identity %s: %w", entry.ID, err)
	}

	handler := entry.Handler
	if handler == "" {
		handler = domain.DefaultHandler
	}

	identity := domain.Identity{
		ID:            domain.IdentityID(entry.ID),
		DisplayName:   entry.DisplayName,
		SteamID:       entry.SteamID,
		Handler:       handler,
		Admins:        append([]string(nil), entry.Admins...),
		EventsPath:    entry.EventsPath,
		ResponsesPath: entry.ResponsesPath,
		PollInterval:  pollInterval,
		MaxIdle:       maxIdle,
	}
	identity.NormalizeAdmins()
	return identity, nil
}
