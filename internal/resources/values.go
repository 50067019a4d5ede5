package resources

import (
	"maps"
	"slices"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, 0, len(items))
	for _, item := range items {
		vals = append(vals, cty.StringVal(item))
	}
	return cty.ListVal(vals)
}

func stringMap(m map[string]string) cty.Value {
	if len(m) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	vals := make(map[string]cty.Value, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		vals[k] = cty.StringVal(m[k])
	}
	return cty.MapVal(vals)
}

// object builds an object value, dropping null attributes so optional
// properties disappear from the rendered output.
func object(attrs map[string]cty.Value) cty.Value {
	out := make(map[string]cty.Value, len(attrs))
	for k, v := range attrs {
		if v.IsNull() {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return cty.EmptyObjectVal
	}
	return cty.ObjectVal(out)
}

func optionalString(s string) cty.Value {
	if s == "" {
		return cty.NullVal(cty.String)
	}
	return cty.StringVal(s)
}

func optionalNumber(n int) cty.Value {
	if n == 0 {
		return cty.NullVal(cty.Number)
	}
	return cty.NumberIntVal(int64(n))
}

// jsonString encodes a document value as a compact JSON string, the form
// Terraform expects for policy and pattern attributes.
func jsonString(v cty.Value) cty.Value {
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		// Values handed in here are built from strings and lists only.
		panic(err)
	}
	return cty.StringVal(string(b))
}
