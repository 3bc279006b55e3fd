/*
Package schema validates loosely typed documents before they are decoded into Go types.

Definition files arrive as map[string]any from JSON, YAML or a Loam repository, where a
wrong type would otherwise surface as an opaque decoding failure. A Schema describes
the expected shape field by field and Validate reports every mismatch at once, with the
path of the offending field:

	s := schema.Schema{
		"type":   schema.Required(schema.String()),
		"states": schema.Required(schema.Slice(schema.String())),
	}
	if err := schema.Validate(s, doc); err != nil {
		for _, e := range schema.ValidationErrors(err) {
			fmt.Println(e)
		}
	}
*/
package schema
