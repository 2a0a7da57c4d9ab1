package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/triviawire/scoreboard/internal/model"
)

// LoadDefinitions reads game definitions from a JSON content file. The file
// holds an array of games:
//
//	[
//	  {
//	    "id": "G1",
//	    "questions": [
//	      {"id": "Q1", "text": "...", "points": 10, "answer": "Paris"}
//	    ]
//	  }
//	]
func LoadDefinitions(path string) ([]model.GameDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var defs []model.GameDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse games file %s: %w", path, err)
	}
	return defs, nil
}

// LoadFromFile builds a Catalog directly from a JSON content file
func LoadFromFile(path string) (*Catalog, error) {
	defs, err := LoadDefinitions(path)
	if err != nil {
		return nil, err
	}
	return New(defs)
}
