package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"skeyedit/internal/skey"
)

// Descriptions maps a symbol name to its [group, subgroup] labels.
type Descriptions map[string][]string

// LoadDescriptions reads a descriptions file: a JSON object of symbol name
// to a list whose first two entries are the group and subgroup.
func LoadDescriptions(r io.Reader) (Descriptions, error) {
	var d Descriptions
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("descriptions: %w", err)
	}
	return d, nil
}

func LoadDescriptionsFile(path string) (Descriptions, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadDescriptions(f)
}

// Classify returns the group and subgroup keys of a symbol, "unknown" for
// names without a description.
func (d Descriptions) Classify(name string) (group, subgroup string) {
	desc := d[name]
	if len(desc) < 2 {
		return "unknown", "unknown"
	}
	return skey.NormalizeKey(desc[0]), skey.NormalizeKey(desc[1])
}
