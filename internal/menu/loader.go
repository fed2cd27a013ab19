package menu

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/smartdrive/voicebot-backend/internal/models"
)

//go:embed menu.json
var defaultMenu []byte

// Load decodes a menu snapshot and builds its index
func Load(r io.Reader) (*Index, error) {
	var m models.Menu
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode menu: %w", err)
	}
	return Build(m.Items), nil
}

// LoadFile reads a menu snapshot from disk
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Default returns the index of the catalog bundled with the binary
func Default() (*Index, error) {
	return Load(bytes.NewReader(defaultMenu))
}
