// Package classifier assigns category, product, and platform labels to new
// transactions using an ordered list of keyword rules.
package classifier

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// KeywordList holds a rule's match substrings. The rules file allows either
// a single string or an array of strings for the "keyword" field.
type KeywordList []string

// UnmarshalJSON accepts "keyword": "x" and "keyword": ["x", "y"].
func (k *KeywordList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*k = KeywordList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.Wrap(err, "keyword must be a string or an array of strings")
	}
	*k = KeywordList(many)
	return nil
}

// Rule maps merchant keywords to classification labels. Rules are evaluated
// in file order; the first match wins.
type Rule struct {
	Keywords KeywordList `json:"keyword"`
	Category string      `json:"category"`
	Product  string      `json:"product"`
	Platform string      `json:"platform,omitempty"`
}

// LoadRules reads and parses the rules file (a JSON array of rules).
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read rules file %s", path)
	}
	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, errors.Wrapf(err, "malformed rules file %s", path)
	}
	return rules, nil
}
