package proctree

import "strings"

// DefaultMaxDepth is the default number of generations an ancestry walk
// examines before giving up.
const DefaultMaxDepth = 8

// Signature maps a tool identifier to lowercase substrings that identify it
// in a command line.
type Signature struct {
	Tool       string
	Substrings []string
}

// builtinSignatures is the static signature table. Order matters: tools are
// tested in declared order and the first substring match wins, so overlapping
// substrings resolve predictably. Read-only after init.
var builtinSignatures = []Signature{
	{Tool: "cursor", Substrings: []string{"cursor", "/cursor/"}},
	{Tool: "opencode", Substrings: []string{"opencode", "/opencode/"}},
	{Tool: "gemini", Substrings: []string{"gemini", "/gemini/"}},
	{Tool: "windsurf", Substrings: []string{"windsurf", "/windsurf/"}},
	{Tool: "zed", Substrings: []string{"/zed/", "zed.app"}},
}

// BuiltinTools returns the tool identifiers of the static signature table,
// in matching order.
func BuiltinTools() []string {
	tools := make([]string, len(builtinSignatures))
	for i, sig := range builtinSignatures {
		tools[i] = sig.Tool
	}
	return tools
}

// ProcessNode describes one ancestor examined during a walk. Produced only
// for debugging output; never persisted.
type ProcessNode struct {
	PID      int
	Cmdline  string
	Detected string
}

// Detector walks process ancestry looking for known tool signatures.
type Detector struct {
	insp     Inspector
	sigs     []Signature
	maxDepth int
}

// NewDetector builds a Detector over the given inspector. Extra signatures
// are appended after the built-in table, so built-ins always match first.
// maxDepth <= 0 selects DefaultMaxDepth.
func NewDetector(insp Inspector, extra []Signature, maxDepth int) *Detector {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	sigs := make([]Signature, 0, len(builtinSignatures)+len(extra))
	sigs = append(sigs, builtinSignatures...)
	sigs = append(sigs, extra...)
	return &Detector{insp: insp, sigs: sigs, maxDepth: maxDepth}
}

// Tools returns the tool identifiers known to this detector, in matching
// order.
func (d *Detector) Tools() []string {
	tools := make([]string, len(d.sigs))
	for i, sig := range d.sigs {
		tools[i] = sig.Tool
	}
	return tools
}

// Detect climbs the process tree starting at startPID (normally the current
// process's parent) for up to maxDepth generations. Matching is
// case-insensitive. An unreadable command line stops the walk: an opaque
// ancestor means the rest of the chain cannot be trusted either. Returns
// ("", false) when no known tool is found; absence, not an error.
func (d *Detector) Detect(startPID int) (string, bool) {
	pid := startPID

	for range d.maxDepth {
		if pid <= 1 {
			break
		}

		cmdline := strings.ToLower(d.insp.Cmdline(pid))
		if cmdline == "" {
			break
		}

		if tool, ok := d.match(cmdline); ok {
			return tool, true
		}

		next, ok := d.insp.ParentPID(pid)
		if !ok {
			break
		}
		pid = next
	}

	return "", false
}

// Tree returns the ancestry chain starting at startPID with per-node
// detection results. Unlike Detect it does not stop at the first match, so
// the full visible chain can be printed.
func (d *Detector) Tree(startPID int) []ProcessNode {
	var nodes []ProcessNode
	pid := startPID

	for range d.maxDepth {
		if pid <= 1 {
			break
		}

		cmdline := d.insp.Cmdline(pid)
		if cmdline == "" {
			break
		}

		node := ProcessNode{PID: pid, Cmdline: cmdline}
		if tool, ok := d.match(strings.ToLower(cmdline)); ok {
			node.Detected = tool
		}
		nodes = append(nodes, node)

		next, ok := d.insp.ParentPID(pid)
		if !ok {
			break
		}
		pid = next
	}

	return nodes
}

func (d *Detector) match(cmdline string) (string, bool) {
	for _, sig := range d.sigs {
		for _, sub := range sig.Substrings {
			if strings.Contains(cmdline, sub) {
				return sig.Tool, true
			}
		}
	}
	return "", false
}
