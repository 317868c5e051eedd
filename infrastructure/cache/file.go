package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vfg2006/sales-quest-api/internal/domain"
)

type FileCache struct {
	path string
}

func NewFileCache(dir string) *FileCache {
	return &FileCache{path: filepath.Join(dir, Key+".json")}
}

func (c *FileCache) Path() string {
	return c.path
}

// Load retorna nil quando ainda não existe cache
func (c *FileCache) Load(_ context.Context) (*domain.CachedDataset, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao ler cache %s: %w", c.path, err)
	}

	var dataset domain.CachedDataset
	if err := json.Unmarshal(raw, &dataset); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	return &dataset, nil
}

// Save grava em arquivo temporário e renomeia para não deixar cache pela metade
func (c *FileCache) Save(_ context.Context, dataset *domain.CachedDataset) error {
	raw, err := json.Marshal(dataset)
	if err != nil {
		return fmt.Errorf("erro ao serializar cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("erro ao criar diretório do cache: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), Key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo temporário: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("erro ao gravar cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("erro ao gravar cache: %w", err)
	}

	return os.Rename(tmp.Name(), c.path)
}
