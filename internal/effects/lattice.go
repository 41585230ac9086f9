package effects

// encompasses[broader] is the set of narrower canonical effect values
// that broader subsumes, per spec §3's subtyping lattice: "for each root
// read/write category (filesystem, network, database, environment), the
// readwrite effect encompasses read and write; file_write encompasses
// file_delete; exact match encompasses itself."
var encompasses = map[string][]string{
	"filesystem_readwrite":   {"filesystem_read", "filesystem_write", "file_delete"},
	"filesystem_write":       {"file_delete"},
	"network_readwrite":      {"network_read", "network_write"},
	"database_readwrite":     {"database_read", "database_write"},
	"environment_readwrite":  {"environment_read", "environment_write"},
}

// Encompasses reports whether broader subsumes narrower under the
// subtyping lattice: reflexive, antisymmetric, transitive by
// construction (every entry above is a direct cover; the transitive
// closure falls out because filesystem_readwrite already lists
// file_delete directly).
func Encompasses(broader, narrower Effect) bool {
	if broader.Kind != narrower.Kind {
		return false
	}
	if broader.Value == narrower.Value {
		return true
	}
	for _, v := range encompasses[broader.Value] {
		if v == narrower.Value {
			return true
		}
	}
	return false
}
