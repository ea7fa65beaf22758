package configs

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/PolarWolf314/triplo-webui/internal/utils"
)

// SaveTOML saves a struct to a TOML file readable only by the owner.
func SaveTOML(filePath string, data interface{}) error {
	if err := utils.EnsureParentDir(filePath); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return err
	}

	return os.WriteFile(filePath, buf.Bytes(), 0600)
}

// LoadTOML loads a TOML file into a struct and returns the keys that did not
// match any field.
func LoadTOML(filePath string, data interface{}) ([]string, error) {
	md, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return nil, err
	}

	var undecoded []string
	for _, key := range md.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return undecoded, nil
}
