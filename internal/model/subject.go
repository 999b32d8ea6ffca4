package model

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Subject struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Modules []Module `json:"modules"`
}

type SubjectSummary struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Module is one curriculum unit. Number is the canonical identifier; it is
// zero when the source data carries nothing that normalizes to an integer.
type Module struct {
	Number int      `json:"number"`
	RawID  string   `json:"id"`
	Name   string   `json:"name"`
	Topics []string `json:"topics"`
}

var moduleNumberRe = regexp.MustCompile(`(?i)^\s*(?:module\s*:?\s*)?(\d+)\s*$`)

type rawModule struct {
	ID     interface{} `json:"id" yaml:"id"`
	Module interface{} `json:"module" yaml:"module"`
	Name   string      `json:"name" yaml:"name"`
	Topics []string    `json:"topics" yaml:"topics"`
}

func (m *Module) UnmarshalJSON(data []byte) error {
	var raw rawModule
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.fromRaw(raw)
	return nil
}

func (m *Module) UnmarshalYAML(value *yaml.Node) error {
	var raw rawModule
	if err := value.Decode(&raw); err != nil {
		return err
	}
	m.fromRaw(raw)
	return nil
}

func (m *Module) fromRaw(raw rawModule) {
	m.Name = strings.TrimSpace(raw.Name)
	m.Topics = raw.Topics
	m.RawID = identifierString(raw.ID)
	if m.RawID == "" {
		m.RawID = identifierString(raw.Module)
	}
	m.Number = NormalizeModuleNumber(raw.ID)
	if m.Number == 0 {
		m.Number = NormalizeModuleNumber(raw.Module)
	}
}

// Label is the "Module: N" form used by label-based scope matching.
func (m Module) Label() string {
	if m.Number <= 0 {
		return ""
	}
	return ModuleLabel(m.Number)
}

func ModuleLabel(n int) string {
	return fmt.Sprintf("Module: %d", n)
}

// DisplayID is the identifier shown in prompts.
func (m Module) DisplayID() string {
	if m.Number > 0 {
		return strconv.Itoa(m.Number)
	}
	return m.RawID
}

// NormalizeModuleNumber maps 3, 3.0, "3", "Module 3" and "Module: 3" to 3.
func NormalizeModuleNumber(v interface{}) int {
	switch t := v.(type) {
	case int:
		return positive(t)
	case int64:
		return positive(int(t))
	case uint64:
		return positive(int(t))
	case float64:
		if t != float64(int(t)) {
			return 0
		}
		return positive(int(t))
	case json.Number:
		n, err := strconv.Atoi(t.String())
		if err != nil {
			return 0
		}
		return positive(n)
	case string:
		match := moduleNumberRe.FindStringSubmatch(t)
		if match == nil {
			return 0
		}
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return 0
		}
		return positive(n)
	default:
		return 0
	}
}

func positive(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func identifierString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
