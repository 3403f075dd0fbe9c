package commands

import (
	"context"
	"sync"
)

// ConfigPersister writes refreshed access tokens back to the config file.
type ConfigPersister struct {
	mutex sync.Mutex
	save  func(*Config) error
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{save: saveConfigStruct}
}

// PersistAccessToken stores token as the current access token.
func (p *ConfigPersister) PersistAccessToken(_ context.Context, token string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config := loadConfig()
	config.Token = token

	return p.save(config)
}
