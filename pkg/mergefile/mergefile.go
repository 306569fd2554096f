// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of Cilium

// Package mergefile evaluates batches of address block pairs read from
// YAML or JSON files.
package mergefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"

	"github.com/cilium/ipmerge/pkg/cidr"
	"github.com/cilium/ipmerge/pkg/logging"
	"github.com/cilium/ipmerge/pkg/logging/logfields"
)

var log = logging.DefaultLogger.WithField(logfields.LogSubsys, "mergefile")

const (
	// FormatYAML renders results as YAML
	FormatYAML = "yaml"
	// FormatJSON renders results as indented JSON
	FormatJSON = "json"
)

// ErrUnknownFormat is returned by Marshal for formats other than
// FormatYAML and FormatJSON.
var ErrUnknownFormat = errors.New("unknown output format")

// Pair is one pair of blocks to merge, in text form.
type Pair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// File is the content of a batch file:
//
//	pairs:
//	- a: 10.0.0.0/24
//	  b: 10.0.1.0/24
type File struct {
	Pairs []Pair `json:"pairs"`
}

// Result is the outcome of merging one Pair. Exactly one of Block and
// Error is set, unless the pair parsed but could not be merged.
type Result struct {
	A         string `json:"a"`
	B         string `json:"b"`
	Merged    bool   `json:"merged"`
	Case      string `json:"case,omitempty"`
	Block     string `json:"block,omitempty"`
	ErrorKind string `json:"errorKind,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Decode parses a batch file. YAML and JSON are both accepted, unknown
// fields are rejected.
func Decode(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("unable to decode merge file: %w", err)
	}
	return &f, nil
}

// Load reads and decodes the batch file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.WithFields(logrus.Fields{
		logfields.File:  path,
		logfields.Count: len(f.Pairs),
	}).Debug("Loaded merge file")
	return f, nil
}

// Evaluate merges every pair of f, in order. Merged blocks are rendered
// with Format(b, alwaysOutputPrefix).
func Evaluate(f *File, alwaysOutputPrefix bool) []Result {
	results := make([]Result, 0, len(f.Pairs))
	for _, p := range f.Pairs {
		results = append(results, evaluate(p, alwaysOutputPrefix))
	}
	return results
}

func evaluate(p Pair, alwaysOutputPrefix bool) Result {
	res := Result{A: p.A, B: p.B}
	a, err := cidr.Parse(p.A)
	if err == nil {
		var b cidr.Block
		b, err = cidr.Parse(p.B)
		if err == nil {
			m, c := cidr.MergeWithCase(a, b)
			res.Case = c.String()
			if c != cidr.MergeNone {
				res.Merged = true
				res.Block = cidr.Format(m, alwaysOutputPrefix)
			}
			log.WithFields(logrus.Fields{
				logfields.Blocks:    []string{p.A, p.B},
				logfields.MergeCase: res.Case,
			}).Debug("Merged pair")
			return res
		}
	}

	res.Error = err.Error()
	if kind, ok := cidr.KindOf(err); ok {
		res.ErrorKind = kind.String()
	}
	log.WithError(err).WithField(logfields.Blocks, []string{p.A, p.B}).Debug("Skipping invalid pair")
	return res
}

// Marshal renders results in the given format.
func Marshal(results []Result, format string) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(results)
	case FormatJSON:
		return json.MarshalIndent(results, "", "  ")
	}
	return nil, fmt.Errorf("%w %q, expected %q or %q", ErrUnknownFormat, format, FormatYAML, FormatJSON)
}
