package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/IT-Nick/healthbot/internal/domain/model"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultQuestions []byte

// file формат YAML-файла с вопросами
type file struct {
	Questions []model.Question `yaml:"questions"`
}

// Parse разбирает YAML и строит каталог
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("failed to parse yaml: %v", err)}
	}
	return New(f.Questions)
}

// LoadFile загружает каталог из YAML-файла
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Load возвращает каталог из файла, а при пустом пути - встроенный
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultQuestions)
	}
	return LoadFile(path)
}

// Default встроенный каталог. Паникует, если встроенный файл некорректен.
func Default() *Catalog {
	c, err := Parse(defaultQuestions)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}
