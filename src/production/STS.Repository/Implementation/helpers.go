package implementation

// asString reads a document field that should hold a string. Missing
// or differently typed fields decay to "" rather than failing the
// whole read; the store is schemaless and older documents may lack
// fields added later (last_login in particular).
func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asBool reads a document field that should hold a boolean.
func asBool(v interface{}) bool {
	b, _ := v.(bool)
	return b
}
