package observe

// Op describes one remote store operation for telemetry purposes.
type Op struct {
	Name    string // scan_page, get_by_id, scan_all, ping
	Table   string // remote table, e.g. "tools"
	Backend string // postgres, rest, ...
}

// SpanName returns the deterministic span name for the operation.
// Format: store.<table>.<name> or store.<name>
func (o Op) SpanName() string {
	if o.Table != "" {
		return "store." + o.Table + "." + o.Name
	}
	return "store." + o.Name
}

// Validate reports whether the operation can be recorded.
func (o Op) Validate() error {
	if o.Name == "" {
		return ErrMissingOpName
	}
	return nil
}

func (o Op) fields() []Field {
	fields := []Field{{Key: "op", Value: o.Name}}
	if o.Table != "" {
		fields = append(fields, Field{Key: "table", Value: o.Table})
	}
	if o.Backend != "" {
		fields = append(fields, Field{Key: "backend", Value: o.Backend})
	}
	return fields
}
