package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/juanmicrosoft/calor/internal/effects"
	calerrors "github.com/juanmicrosoft/calor/internal/errors"
	"gopkg.in/yaml.v3"
)

// layer pairs a parsed Document with the source tier it was loaded from,
// preserving load order for the resolution rules in §4.1.
type layer struct {
	source Source
	path   string
	doc    Document
}

// Store is the merged, queryable view over every layer loaded so far.
// Mirrors the teacher's layered-documentation-manifest idea generalized
// from a single example manifest to the four-tier effect manifest the
// spec describes.
type Store struct {
	layers []layer
}

// New returns an empty Store. BuiltIn entries are added with AddBuiltIn.
func New() *Store {
	return &Store{}
}

// LoadAll discovers and parses every manifest file named in paths,
// associating each with its declared Source. A malformed file does not
// abort loading of the others — parse errors are appended to the
// returned bag and that file's mappings are skipped (spec §4.1 error
// model).
func (s *Store) LoadAll(paths map[Source][]string) *calerrors.Bag {
	var bag calerrors.Bag

	order := []Source{SourceUserLevel, SourceSolutionLevel, SourceProjectLocal}
	for _, src := range order {
		for _, path := range paths[src] {
			data, err := os.ReadFile(path)
			if err != nil {
				bag.Add(calerrors.New(calerrors.ManifestParseError, calerrors.PhaseManifest,
					calerrors.SeverityError, fmt.Sprintf("%s: %v", path, err), nil))
				continue
			}

			jsonData, err := toJSONBytes(path, data)
			if err != nil {
				bag.Add(calerrors.New(calerrors.ManifestParseError, calerrors.PhaseManifest,
					calerrors.SeverityError, fmt.Sprintf("%s: %v", path, err), nil))
				continue
			}
			if err := ValidateAgainstSchema(jsonData); err != nil {
				bag.Add(calerrors.New(calerrors.ManifestValidationError, calerrors.PhaseManifest,
					calerrors.SeverityError, fmt.Sprintf("%s: schema validation failed: %v", path, err), nil))
				continue
			}

			doc, err := parseDocument(path, data)
			if err != nil {
				bag.Add(calerrors.New(calerrors.ManifestParseError, calerrors.PhaseManifest,
					calerrors.SeverityError, fmt.Sprintf("%s: %v", path, err), nil))
				continue
			}
			if errs := validateDocument(path, doc); len(errs) > 0 {
				for _, e := range errs {
					bag.Add(e)
				}
				continue
			}
			s.layers = append(s.layers, layer{source: src, path: path, doc: *doc})
		}
	}
	return &bag
}

// AddBuiltIn registers an in-memory built-in manifest, ranked below every
// file-loaded layer.
func (s *Store) AddBuiltIn(doc Document) {
	s.layers = append([]layer{{source: SourceBuiltIn, path: "<built-in>", doc: doc}}, s.layers...)
}

// parseDocument unmarshals a manifest file's raw bytes per its extension.
func parseDocument(path string, data []byte) (*Document, error) {
	var doc Document
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
	}
	return &doc, nil
}

// toJSONBytes normalizes a manifest file's raw bytes to JSON, so
// ValidateAgainstSchema can run the same JSON-Schema document over both
// JSON- and YAML-authored manifests (spec §4.1 "validate()").
func toJSONBytes(path string, data []byte) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return data, nil
	}
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return json.Marshal(generic)
}

// Resolution is what Lookup returns: the winning effect set plus which
// layer it came from, for diagnostics and for the Effect Resolver's
// cache key.
type Resolution struct {
	Set    *effects.Set
	Source Source
	Found  bool
}

// Lookup implements the six-step priority order of spec §4.1: built-in
// catalog, specific member, wildcard, type default, longest-prefix
// namespace default, unknown. Among layers that define the same step,
// the highest-priority Source wins.
func (s *Store) Lookup(typ, member string, kind MemberKind, signatureKey string) Resolution {
	if r, ok := s.lookupMember(typ, member, kind, signatureKey); ok {
		return r
	}
	if kind == MemberMethod {
		if r, ok := s.lookupMember(typ, wildcard, MemberMethod, ""); ok {
			return r
		}
	}
	if r, ok := s.lookupDefault(typ); ok {
		return r
	}
	if r, ok := s.lookupNamespace(typ); ok {
		return r
	}
	return Resolution{}
}

func (s *Store) lookupMember(typ, member string, kind MemberKind, signatureKey string) (Resolution, bool) {
	best := -1
	var bestCodes []string
	var bestSource Source
	for _, l := range s.layers {
		for _, m := range l.doc.Mappings {
			if m.Type != typ {
				continue
			}
			var table map[string][]string
			var key string
			switch kind {
			case MemberMethod:
				table, key = m.Methods, member
			case MemberGetter:
				table, key = m.Getters, member
			case MemberSetter:
				table, key = m.Setters, member
			case MemberConstructor:
				table, key = m.Constructors, signatureKey
			}
			codes, ok := table[key]
			if !ok {
				continue
			}
			if pr := sourcePriority[l.source]; pr > best {
				best, bestCodes, bestSource = pr, codes, l.source
			}
		}
	}
	if best < 0 {
		return Resolution{}, false
	}
	return Resolution{Set: resolveCodes(bestCodes), Source: bestSource, Found: true}, true
}

func (s *Store) lookupDefault(typ string) (Resolution, bool) {
	best := -1
	var bestCodes []string
	var bestSource Source
	for _, l := range s.layers {
		for _, m := range l.doc.Mappings {
			if m.Type != typ || m.DefaultEffects == nil {
				continue
			}
			if pr := sourcePriority[l.source]; pr > best {
				best, bestCodes, bestSource = pr, m.DefaultEffects, l.source
			}
		}
	}
	if best < 0 {
		return Resolution{}, false
	}
	return Resolution{Set: resolveCodes(bestCodes), Source: bestSource, Found: true}, true
}

func (s *Store) lookupNamespace(typ string) (Resolution, bool) {
	bestLen := -1
	best := -1
	var bestCodes []string
	var bestSource Source
	for _, l := range s.layers {
		for prefix, codes := range l.doc.NamespaceDefaults {
			if !strings.HasPrefix(typ, prefix) {
				continue
			}
			pr := sourcePriority[l.source]
			if len(prefix) > bestLen || (len(prefix) == bestLen && pr > best) {
				bestLen, best, bestCodes, bestSource = len(prefix), pr, codes, l.source
			}
		}
	}
	if bestLen < 0 {
		return Resolution{}, false
	}
	return Resolution{Set: resolveCodes(bestCodes), Source: bestSource, Found: true}, true
}

func resolveCodes(codes []string) *effects.Set {
	effs := make([]effects.Effect, 0, len(codes))
	for _, c := range codes {
		if eff, ok := effects.ResolveCode(c); ok {
			effs = append(effs, eff)
		}
	}
	return effects.FromEffects(effs...)
}

// Digest returns a short digest of the merged layer set's sources and
// file paths. File contents are not hashed, so an edit to a manifest
// file that keeps its path does not change the digest.
func (s *Store) Digest() string {
	var paths []string
	for _, l := range s.layers {
		paths = append(paths, string(l.source)+":"+l.path)
	}
	sort.Strings(paths)
	h := sha256.Sum256([]byte(strings.Join(paths, "|")))
	return "sha256:" + hex.EncodeToString(h[:])[:16]
}
