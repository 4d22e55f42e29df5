package graph

import (
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Patterns are compiled once per process and reused across every file. They
// are ported pattern-for-pattern from the original PHP-analysis prototype's
// `re` expressions (original_source/infrastructure/parser_bridge.py) — this
// is a deliberate, documented simplification, not a full PHP parser.
var (
	namespacePattern  = regexp.MustCompile(`(?m)^\s*namespace\s+([\w\\]+)\s*;`)
	classPattern      = regexp.MustCompile(`\bclass\s+([A-Za-z0-9_]+)(?:\s+extends\s+([A-Za-z0-9_\\]+))?(?:\s+implements\s+([\w,\s\\]+?))?\s*\{`)
	interfacePattern  = regexp.MustCompile(`\binterface\s+([A-Za-z0-9_]+)`)
	traitPattern      = regexp.MustCompile(`\btrait\s+([A-Za-z0-9_]+)`)
	useTraitPattern   = regexp.MustCompile(`(?m)^\s*use\s+([\w,\s\\]+?);`)
	methodPattern     = regexp.MustCompile(`\bfunction\s+([A-Za-z0-9_]+)`)
	instantiatePattern = regexp.MustCompile(`\bnew\s+([\w\\]+)\s*\(`)
	staticCallPattern  = regexp.MustCompile(`\b([\w\\]+)::[\w]+\s*\(`)

	splitListPattern = regexp.MustCompile(`[\s,]+`)
)

// ExtractResult holds everything one file's lexical pass produced.
type ExtractResult struct {
	Nodes []Node
	Edges []Edge
}

// ExtractFile reads path and extracts its structural declarations and
// references using resolver to qualify names. Read failures are returned
// as *FileReadError so the caller can swallow them and keep the run going;
// malformed UTF-8 is replaced rather than reported as an error.
func ExtractFile(path string, resolver *Resolver) (*ExtractResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}

	content := toValidUTF8(raw)

	var namespace string
	if m := namespacePattern.FindStringSubmatch(content); m != nil {
		namespace = strings.TrimSpace(m[1])
	}

	fq := func(name string) string {
		return resolver.Qualify(name, namespace, path)
	}

	methodsFound := findAllGroup1(methodPattern, content)

	var nodes []Node
	var edges []Edge
	var lastClassID string
	var sawClass bool

	for _, m := range classPattern.FindAllStringSubmatch(content, -1) {
		className := m[1]
		extendsName := strings.TrimSpace(m[2])
		implementsRaw := strings.TrimSpace(m[3])

		nodeID := fq(className)
		node := Node{
			ID:        nodeID,
			Name:      className,
			Namespace: namespace,
			Type:      NodeClass,
			FilePath:  path,
			Methods:   methodsFound,
		}
		nodes = append(nodes, node)
		lastClassID = nodeID
		sawClass = true

		if extendsName != "" {
			target := fq(extendsName)
			if target != nodeID {
				edges = append(edges, Edge{SourceID: nodeID, TargetID: target, Type: EdgeInherits, Weight: 1})
			}
		}

		if implementsRaw != "" {
			for _, iface := range splitListPattern.Split(implementsRaw, -1) {
				iface = strings.TrimSpace(iface)
				if iface == "" {
					continue
				}
				target := fq(iface)
				if target != nodeID {
					edges = append(edges, Edge{SourceID: nodeID, TargetID: target, Type: EdgeImplements, Weight: 1})
				}
			}
		}

		for _, tgt := range findAllGroup1(instantiatePattern, content) {
			targetID := fq(tgt)
			if targetID != nodeID {
				edges = append(edges, Edge{SourceID: nodeID, TargetID: targetID, Type: EdgeInstantiation, Weight: 1})
			}
		}

		for _, tgt := range findAllGroup1(staticCallPattern, content) {
			targetID := fq(tgt)
			if targetID != nodeID {
				edges = append(edges, Edge{SourceID: nodeID, TargetID: targetID, Type: EdgeMethodCall, Weight: 1})
			}
		}
	}

	for _, m := range interfacePattern.FindAllStringSubmatch(content, -1) {
		name := m[1]
		nodes = append(nodes, Node{
			ID:        fq(name),
			Name:      name,
			Namespace: namespace,
			Type:      NodeInterface,
			FilePath:  path,
			Methods:   methodsFound,
		})
	}

	for _, m := range traitPattern.FindAllStringSubmatch(content, -1) {
		name := m[1]
		nodes = append(nodes, Node{
			ID:        fq(name),
			Name:      name,
			Namespace: namespace,
			Type:      NodeTrait,
			FilePath:  path,
			Methods:   methodsFound,
		})
	}

	// use TRAIT; has no enclosing-class information available from a purely
	// lexical pass, so it attaches to the most recently declared class in
	// the file, never to an interface or trait the file also declares. This
	// over-attributes trait usage in multi-class files; kept as-is rather
	// than papered over with heuristics that would only move the error
	// elsewhere. A file with no class at all has nothing to attach to, so
	// the use-trait clause contributes no edge.
	if sawClass {
		for _, useLine := range findAllGroup1(useTraitPattern, content) {
			for _, traitName := range splitListPattern.Split(strings.TrimSpace(useLine), -1) {
				traitName = strings.TrimSpace(traitName)
				if traitName == "" {
					continue
				}
				target := fq(traitName)
				if target != lastClassID {
					edges = append(edges, Edge{SourceID: lastClassID, TargetID: target, Type: EdgeUsesTrait, Weight: 1})
				}
			}
		}
	}

	return &ExtractResult{Nodes: nodes, Edges: edges}, nil
}

// findAllGroup1 returns every capture group 1 across all matches of p in s.
func findAllGroup1(p *regexp.Regexp, s string) []string {
	matches := p.FindAllStringSubmatch(s, -1)
	if matches == nil {
		return nil
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// toValidUTF8 best-effort decodes raw bytes as UTF-8, replacing malformed
// sequences rather than failing the file outright.
func toValidUTF8(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	return strings.ToValidUTF8(string(raw), "�")
}
