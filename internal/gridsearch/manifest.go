package gridsearch

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/nomoriel/phase2vec/internal/configstore"
)

// ScanParam is one scanned parameter and its candidate values.
type ScanParam struct {
	Name   string
	Values []any
}

// ScanGroup is a named group of scanned parameters. Parameters within one
// group are linked: values at index i across all of them apply together, so
// the group contributes one axis whose size is the shared list length.
// Separate groups combine combinatorially.
type ScanGroup struct {
	Label  string
	Params []ScanParam
}

// Size returns the number of points the group contributes to the scan, i.e.
// the shared value-list length. Validate must have passed first.
func (g ScanGroup) Size() int {
	if len(g.Params) == 0 {
		return 0
	}
	return len(g.Params[0].Values)
}

// Validate checks the structural invariants of a group.
func (g ScanGroup) Validate() error {
	if len(g.Params) == 0 {
		return &MalformedScanError{Scan: g.Label, Reason: "scan group has no parameters"}
	}
	want := len(g.Params[0].Values)
	for _, p := range g.Params {
		if len(p.Values) == 0 {
			return &MalformedScanError{Scan: g.Label, Reason: fmt.Sprintf("parameter %q has an empty value list", p.Name)}
		}
		if len(p.Values) != want {
			return &MalformedScanError{
				Scan: g.Label,
				Reason: fmt.Sprintf("linked parameters must share list length: %q has %d values, %q has %d",
					g.Params[0].Name, want, p.Name, len(p.Values)),
			}
		}
	}
	return nil
}

// Manifest is the top-level gridsearch artifact: a unique run-group name,
// the ordered scan groups and the base parameter set every job starts from.
// It is created once by config generation and never mutated afterwards.
type Manifest struct {
	GSName     string
	Scans      []ScanGroup
	Parameters *configstore.Document
}

// LoadManifest reads and validates a gridsearch scan file.
//
// The file holds a top-level gs_name attribute, zero or more labeled
// scan blocks (each attribute a parameter bound to a list of values) and a
// single parameters block carrying the base training configuration.
func LoadManifest(path string) (*Manifest, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	body, err := configstore.ParseBody(src, path)
	if err != nil {
		return nil, err
	}

	top, err := configstore.DecodeAttributes(body)
	if err != nil {
		return nil, err
	}
	gsNameVal, ok := top.Get("gs_name")
	if !ok {
		return nil, fmt.Errorf("%s: missing required attribute gs_name", path)
	}
	gsName, ok := gsNameVal.(string)
	if !ok || gsName == "" {
		return nil, fmt.Errorf("%s: gs_name must be a non-empty string", path)
	}

	m := &Manifest{GSName: gsName}
	for _, block := range body.Blocks {
		switch block.Type {
		case "scan":
			if len(block.Labels) != 1 {
				return nil, fmt.Errorf("%s: scan blocks require exactly one label", path)
			}
			group, err := decodeScanGroup(block.Labels[0], block)
			if err != nil {
				return nil, err
			}
			m.Scans = append(m.Scans, group)
		case "parameters":
			if m.Parameters != nil {
				return nil, fmt.Errorf("%s: only one parameters block is allowed", path)
			}
			params, err := configstore.DecodeAttributes(block.Body)
			if err != nil {
				return nil, err
			}
			m.Parameters = params
		default:
			return nil, fmt.Errorf("%s: unsupported block type %q", path, block.Type)
		}
	}
	if m.Parameters == nil {
		return nil, fmt.Errorf("%s: missing parameters block", path)
	}

	for _, group := range m.Scans {
		if err := group.Validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func decodeScanGroup(label string, block *hclsyntax.Block) (ScanGroup, error) {
	doc, err := configstore.DecodeAttributes(block.Body)
	if err != nil {
		return ScanGroup{}, err
	}

	group := ScanGroup{Label: label}
	for _, name := range doc.Keys() {
		raw, _ := doc.Get(name)
		values, ok := raw.([]any)
		if !ok {
			return ScanGroup{}, &MalformedScanError{
				Scan:   label,
				Reason: fmt.Sprintf("parameter %q must be bound to a list of values", name),
			}
		}
		group.Params = append(group.Params, ScanParam{Name: name, Values: values})
	}
	return group, nil
}

// WriteManifest renders a manifest to HCL and writes it atomically.
func WriteManifest(path string, m *Manifest) error {
	file := hclwrite.NewEmptyFile()
	body := file.Body()

	gsName, err := configstore.NativeToCty(m.GSName)
	if err != nil {
		return err
	}
	body.SetAttributeValue("gs_name", gsName)
	body.AppendNewline()

	for _, group := range m.Scans {
		block := body.AppendNewBlock("scan", []string{group.Label})
		for _, p := range group.Params {
			v, err := configstore.NativeToCty(p.Values)
			if err != nil {
				return fmt.Errorf("scan %q parameter %q: %w", group.Label, p.Name, err)
			}
			block.Body().SetAttributeValue(p.Name, v)
		}
		body.AppendNewline()
	}

	params := body.AppendNewBlock("parameters", nil)
	for _, key := range m.Parameters.Keys() {
		raw, _ := m.Parameters.Get(key)
		v, err := configstore.NativeToCty(raw)
		if err != nil {
			return fmt.Errorf("parameter %q: %w", key, err)
		}
		params.Body().SetAttributeValue(key, v)
	}

	return configstore.WriteRawFile(path, file.Bytes())
}
