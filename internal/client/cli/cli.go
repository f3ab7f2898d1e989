package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/iudanet/geocheckin/internal/client/api"
	"github.com/iudanet/geocheckin/internal/client/iocli"
	"github.com/iudanet/geocheckin/internal/client/queue"
	"github.com/iudanet/geocheckin/internal/client/storage"
	"github.com/iudanet/geocheckin/internal/cluster"
	"github.com/iudanet/geocheckin/internal/gps"
	"github.com/iudanet/geocheckin/internal/viewport"
)

// TokenEnv переменная окружения с токеном курьера
const TokenEnv = "GEOCHECKIN_TOKEN"

// ErrNotAuthenticated is returned by commands that talk to the server before login
var ErrNotAuthenticated = errors.New("not authenticated. Please run 'geocheckin login' first")

// Tokens источники токена для login
type Tokens struct {
	FromFile string
	FromArgs string
}

// Store локальное хранилище клиента: сессия, очередь и состояние синхронизации
type Store interface {
	storage.AuthStorage
	storage.QueueStorage
	storage.MetadataStorage
}

// ClientFactory создает API клиент для сервера и токена
type ClientFactory func(serverURL, token string) api.ClientAPI

// Config зависимости и политики CLI
type Config struct {
	IO        iocli.IO
	Logger    *slog.Logger
	Store     Store
	NewClient ClientFactory
	ServerURL string
	Tokens    Tokens
	Queue     queue.Config
	Viewport  viewport.Config
	Cluster   cluster.Options
	GPS       gps.Config
}

type Cli struct {
	io        iocli.IO
	logger    *slog.Logger
	store     Store
	newClient ClientFactory
	// markers кэш карты текущей сессии; пересоздается при смене сервера или токена
	markers    *viewport.MarkerService
	markersFor string
	cfg        Config
	mu         sync.Mutex
}

func New(cfg Config) *Cli {
	if cfg.NewClient == nil {
		cfg.NewClient = func(serverURL, token string) api.ClientAPI {
			return api.NewClient(serverURL, token)
		}
	}
	if cfg.Queue == (queue.Config{}) {
		cfg.Queue = queue.DefaultConfig()
	}
	if cfg.Viewport == (viewport.Config{}) {
		cfg.Viewport = viewport.DefaultConfig()
	}
	if cfg.Cluster == (cluster.Options{}) {
		cfg.Cluster = cluster.DefaultOptions()
	}
	return &Cli{
		io:        cfg.IO,
		logger:    cfg.Logger,
		store:     cfg.Store,
		newClient: cfg.NewClient,
		cfg:       cfg,
	}
}

// session загружает сохраненный токен и создает клиент для сервера, на котором выполнен login
func (c *Cli) session(ctx context.Context) (*storage.AuthData, api.ClientAPI, error) {
	ok, err := c.store.IsAuthenticated(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check authentication: %w", err)
	}
	if !ok {
		return nil, nil, ErrNotAuthenticated
	}

	authData, err := c.store.GetAuth(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get auth data: %w", err)
	}

	serverURL := authData.ServerURL
	if serverURL == "" {
		serverURL = c.cfg.ServerURL
	}
	return authData, c.newClient(serverURL, authData.AccessToken), nil
}

// markerService returns the map cache bound to the session, reusing it across
// commands while the server and token stay the same.
func (c *Cli) markerService(authData *storage.AuthData, client api.ClientAPI) *viewport.MarkerService {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := authData.ServerURL + "|" + authData.AccessToken
	if c.markers == nil || c.markersFor != key {
		c.markers = viewport.NewMarkerService(client, c.cfg.Viewport, c.logger)
		c.markersFor = key
	}
	return c.markers
}

// queueService создает сервис очереди. submitter может быть nil для команд,
// которые не отправляют записи.
func (c *Cli) queueService(submitter queue.Submitter) *queue.Service {
	return queue.NewService(c.store, c.store, submitter, c.cfg.Queue, c.logger)
}

// getToken retrieves the shipper token from various sources with priority:
// 1. Environment variable GEOCHECKIN_TOKEN
// 2. File specified in Tokens.FromFile
// 3. Command-line parameter Tokens.FromArgs
// 4. Interactive prompt (fallback)
func (c *Cli) getToken(tokens Tokens) (string, error) {
	// Priority 1: Environment variable
	if envToken := os.Getenv(TokenEnv); envToken != "" {
		return envToken, nil
	}

	// Priority 2: File
	if tokens.FromFile != "" {
		content, err := os.ReadFile(tokens.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read token file: %w", err)
		}
		token := strings.TrimSpace(string(content))
		if token == "" {
			return "", fmt.Errorf("token file is empty")
		}
		return token, nil
	}

	// Priority 3: CLI parameter
	if tokens.FromArgs != "" {
		return tokens.FromArgs, nil
	}

	// Priority 4: Interactive prompt (fallback)
	token, err := c.io.ReadPassword("Shipper token: ")
	if err != nil {
		return "", fmt.Errorf("failed to read token from stdin: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("token cannot be empty")
	}
	return token, nil
}
