package catalog

import (
	"fmt"
	"slices"
	"strings"

	"facturx/internal/diagnostic"
	"facturx/internal/match"
	"facturx/internal/xmlpath"
)

// Validate checks the structure of a catalog definition. It does not open
// any of the referenced resources; a missing template or schema is reported
// when it is first used.
func Validate(fields *FieldsFile, flavors *FlavorsFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if fields == nil {
		res.AddError("fields_is_nil", "fields file is nil", FieldsFileName, "")
		return res
	}

	if flavors == nil {
		res.AddError("flavors_is_nil", "flavors file is nil", FlavorsFileName, "")
		return res
	}

	known := validateFlavors(res, flavors)
	fieldIdx := validateFields(res, fields, known)

	for id, f := range known {
		if _, ok := fieldIdx[VersionField].pathFor(id); !ok {
			res.AddError("missing_version_path",
				fmt.Sprintf("flavor %q has no path for the %q field", id, VersionField), id, VersionField)
		}

		for i := range f.Levels {
			validateRequired(res, &f.Levels[i], fieldIdx)
		}
	}

	return res
}

func validateFlavors(res *diagnostic.Diagnostics, ff *FlavorsFile) map[string]*Flavor {
	known := map[string]*Flavor{}

	if len(ff.Flavors) == 0 {
		res.AddError("no_flavors", "catalog defines no flavors", FlavorsFileName, "")
		return known
	}

	for i := range ff.Flavors {
		f := &ff.Flavors[i]
		if f.ID == "" {
			res.AddError("empty_flavor_id", fmt.Sprintf("flavor #%d has no id", i+1), FlavorsFileName, "")
			continue
		}

		if _, dup := known[f.ID]; dup {
			res.AddError("duplicate_flavor", fmt.Sprintf("duplicate flavor %q", f.ID), f.ID, "")
			continue
		}

		known[f.ID] = f

		validateFlavor(res, f)
	}

	validateNamespacePrefixes(res, ff)

	return known
}

func validateFlavor(res *diagnostic.Diagnostics, f *Flavor) {
	if f.NamespacePrefix == "" {
		res.AddError("missing_namespace_prefix", "flavor has no namespace_prefix", f.ID, "")
	}

	if f.Attachment == "" {
		res.AddError("missing_attachment", "flavor has no attachment filename", f.ID, "")
	}

	if f.Date.Layout == "" {
		res.AddError("missing_date_layout", "flavor has no date layout", f.ID, "")
	}

	for prefix, uri := range f.Namespaces {
		if uri == "" {
			res.AddError("empty_namespace_uri", fmt.Sprintf("prefix %q is bound to an empty URI", prefix), f.ID, "")
		}
	}

	if p := f.Packet; p != nil {
		if p.Template == "" || p.Namespace == "" || p.Prefix == "" {
			res.AddError("incomplete_packet", "packet needs template, namespace and prefix", f.ID, "")
		}
	}

	validateOrder(res, f)
	validateLevels(res, f)
}

// validateNamespacePrefixes rejects flavors whose detection prefixes overlap,
// which would make detection depend on declaration order.
func validateNamespacePrefixes(res *diagnostic.Diagnostics, ff *FlavorsFile) {
	for i := range ff.Flavors {
		for j := range ff.Flavors {
			a, b := &ff.Flavors[i], &ff.Flavors[j]
			if i == j || a.NamespacePrefix == "" || b.NamespacePrefix == "" {
				continue
			}

			if strings.HasPrefix(b.NamespacePrefix, a.NamespacePrefix) && (i < j || a.NamespacePrefix != b.NamespacePrefix) {
				res.AddError("ambiguous_namespace_prefix",
					fmt.Sprintf("namespace prefix of %q overlaps with %q", b.ID, a.ID), b.ID, b.NamespacePrefix)
			}
		}
	}
}

func validateLevels(res *diagnostic.Diagnostics, f *Flavor) {
	if len(f.Levels) == 0 {
		res.AddError("no_levels", "flavor defines no levels", f.ID, "")
		return
	}

	seen := map[string]struct{}{}

	for i := range f.Levels {
		l := &f.Levels[i]
		if l.ID == "" {
			res.AddError("empty_level_id", fmt.Sprintf("level #%d has no id", i+1), f.ID, "")
			continue
		}

		if strings.Contains(l.ID, ":") {
			res.AddError("invalid_level_id", fmt.Sprintf("level id %q must not contain ':'", l.ID), f.ID, "")
		}

		if _, dup := seen[l.ID]; dup {
			res.AddError("duplicate_level", fmt.Sprintf("duplicate level %q", l.ID), f.ID, "")
			continue
		}

		seen[l.ID] = struct{}{}

		if l.Schema == "" {
			res.AddError("missing_schema", "level has no schema", l.Key(), "")
		}

		if !slices.Contains(afRelationships, l.Relationship) {
			res.AddError("invalid_relationship",
				fmt.Sprintf("relationship %q is not one of %s", l.Relationship, strings.Join(afRelationships, ", ")),
				l.Key(), "")
		}

		if f.Packet != nil && l.PacketLevel == "" {
			res.AddWarning("missing_packet_level", "level has no packet_level", l.Key(), "")
		}
	}
}

func validateOrder(res *diagnostic.Diagnostics, f *Flavor) {
	check := func(qname string) {
		prefix, _, ok := strings.Cut(qname, ":")
		if !ok {
			res.AddError("invalid_order_entry", fmt.Sprintf("order entry %q has no prefix", qname), f.ID, qname)
			return
		}

		if _, bound := f.Namespaces[prefix]; !bound {
			res.AddError("unbound_prefix", fmt.Sprintf("order entry %q uses unbound prefix %q", qname, prefix), f.ID, qname)
		}
	}

	for parent, children := range f.Order {
		check(parent)

		for _, c := range children {
			check(c)
		}
	}
}

func validateFields(res *diagnostic.Diagnostics, ff *FieldsFile, flavors map[string]*Flavor) map[string]*Field {
	idx := map[string]*Field{}

	for i := range ff.Fields {
		fd := &ff.Fields[i]
		if fd.Name == "" {
			res.AddError("empty_field_name", fmt.Sprintf("field #%d has no name", i+1), FieldsFileName, "")
			continue
		}

		if _, dup := idx[fd.Name]; dup {
			res.AddError("duplicate_field", fmt.Sprintf("duplicate field %q", fd.Name), FieldsFileName, fd.Name)
			continue
		}

		idx[fd.Name] = fd

		if !fd.Kind.Valid() {
			res.AddError("invalid_kind", fmt.Sprintf("unknown kind %q", fd.Kind), FieldsFileName, fd.Name)
		}

		if fd.Name == VersionField && fd.Kind != KindText {
			res.AddError("invalid_kind", "the version field must be text", FieldsFileName, fd.Name)
		}

		if len(fd.Paths) == 0 {
			res.AddWarning("field_without_paths", "field has no path in any flavor", FieldsFileName, fd.Name)
		}

		validateFieldPaths(res, fd, flavors)
	}

	return idx
}

func validateFieldPaths(res *diagnostic.Diagnostics, fd *Field, flavors map[string]*Flavor) {
	for flavorID, raw := range fd.Paths {
		fl, ok := flavors[flavorID]
		if !ok {
			res.AddErrorWithSuggestions("unknown_flavor",
				fmt.Sprintf("path refers to unknown flavor %q", flavorID), FieldsFileName, fd.Name,
				match.Suggest(flavorID, flavorIDs(flavors), 2))

			continue
		}

		p, err := xmlpath.Parse(raw)
		if err != nil {
			res.AddError("invalid_path", err.Error(), flavorID, fd.Name)
			continue
		}

		if p.Descendant {
			res.AddWarning("descendant_path", "descendant paths cannot be written", flavorID, fd.Name)
		}

		for _, prefix := range p.Prefixes() {
			if _, bound := fl.Namespaces[prefix]; !bound {
				res.AddError("unbound_prefix", fmt.Sprintf("path %s uses unbound prefix %q", raw, prefix), flavorID, fd.Name)
			}
		}
	}
}

func validateRequired(res *diagnostic.Diagnostics, l *Level, fields map[string]*Field) {
	for _, name := range l.Required {
		fd, ok := fields[name]
		if !ok {
			res.AddErrorWithSuggestions("unknown_required_field",
				fmt.Sprintf("required field %q is not defined", name), l.Key(), name,
				match.Suggest(name, fieldNames(fields), 3))

			continue
		}

		if _, ok := fd.pathFor(l.Flavor); !ok {
			res.AddError("required_field_without_path",
				fmt.Sprintf("required field %q has no path for flavor %q", name, l.Flavor), l.Key(), name)
		}
	}
}
