package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Flag is a boolean rule field. Rule files written for the recorder tooling
// mix real booleans with the strings "true" and "false"; both decode.
type Flag bool

func parseFlag(s string) (Flag, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "null", "false":
		return false, nil
	case "true":
		return true, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// UnmarshalJSON accepts true, false, "true", "false" and null.
func (f *Flag) UnmarshalJSON(b []byte) error {
	v, err := parseFlag(string(bytes.Trim(b, `"`)))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// UnmarshalYAML accepts both scalar booleans and quoted strings.
func (f *Flag) UnmarshalYAML(node *yaml.Node) error {
	v, err := parseFlag(node.Value)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// UnmarshalText is used by go-toml for both bool and string nodes.
func (f *Flag) UnmarshalText(b []byte) error {
	v, err := parseFlag(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Int is an integer rule field that may also be written as a numeric string.
type Int int

func parseInt(s string) (Int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return Int(n), nil
}

func (i *Int) UnmarshalJSON(b []byte) error {
	v, err := parseInt(string(bytes.Trim(b, `"`)))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (i *Int) UnmarshalYAML(node *yaml.Node) error {
	v, err := parseInt(node.Value)
	if err != nil {
		return err
	}
	*i = v
	return nil
}

func (i *Int) UnmarshalText(b []byte) error {
	v, err := parseInt(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}

var (
	_ json.Unmarshaler = (*Flag)(nil)
	_ yaml.Unmarshaler = (*Flag)(nil)
	_ json.Unmarshaler = (*Int)(nil)
	_ yaml.Unmarshaler = (*Int)(nil)
)
