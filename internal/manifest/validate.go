package manifest

import (
	"fmt"

	"github.com/juanmicrosoft/calor/internal/effects"
	calerrors "github.com/juanmicrosoft/calor/internal/errors"
)

// validateDocument returns structural errors for one parsed manifest:
// unknown version, empty type name, or an unrecognized effect code
// (spec §4.1 "validate()"). A malformed manifest is reported, not
// raised — the caller decides whether to skip it.
func validateDocument(path string, doc *Document) []*calerrors.Report {
	var reports []*calerrors.Report
	report := func(format string, args ...any) {
		reports = append(reports, calerrors.New(calerrors.ManifestValidationError, calerrors.PhaseManifest,
			calerrors.SeverityError, fmt.Sprintf("%s: "+format, append([]any{path}, args...)...), nil))
	}

	if doc.Version != SchemaVersion {
		report("unsupported manifest version %q (expected %q)", doc.Version, SchemaVersion)
	}

	seenTypes := make(map[string]bool)
	for _, m := range doc.Mappings {
		if m.Type == "" {
			report("mapping has empty type name")
			continue
		}
		if seenTypes[m.Type] {
			report("duplicate mapping for type %q", m.Type)
		}
		seenTypes[m.Type] = true

		validateCodes(m.Type, "defaultEffects", m.DefaultEffects, report)
		for name, codes := range m.Methods {
			validateCodes(m.Type, "methods["+name+"]", codes, report)
		}
		for name, codes := range m.Getters {
			validateCodes(m.Type, "getters["+name+"]", codes, report)
		}
		for name, codes := range m.Setters {
			validateCodes(m.Type, "setters["+name+"]", codes, report)
		}
		for sig, codes := range m.Constructors {
			validateCodes(m.Type, "constructors["+sig+"]", codes, report)
		}
	}

	for prefix, codes := range doc.NamespaceDefaults {
		if prefix == "" {
			report("namespaceDefaults has empty prefix")
			continue
		}
		validateCodes(prefix, "namespaceDefaults", codes, report)
	}

	return reports
}

func validateCodes(typ, field string, codes []string, report func(string, ...any)) {
	for _, c := range codes {
		if _, ok := effects.ResolveCode(c); !ok {
			report("%s on %q has unknown effect code %q (known: %v)", field, typ, c, effects.KnownSurfaceCodes())
		}
	}
}
